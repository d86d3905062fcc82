package httpapi

import (
	"database/sql"
	"net/http"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	"github.com/dentchartzz/clinic-service/internal/appointment"
	"github.com/dentchartzz/clinic-service/internal/auth"
	"github.com/dentchartzz/clinic-service/internal/messaging"
	"github.com/dentchartzz/clinic-service/internal/patient"
	"github.com/dentchartzz/clinic-service/internal/payment"
	"github.com/dentchartzz/clinic-service/internal/telemetry"
	"github.com/dentchartzz/clinic-service/internal/tooth"
	"github.com/dentchartzz/clinic-service/internal/treatment"
	"github.com/dentchartzz/clinic-service/internal/users"
)

// SetupRouter initializes all routes for the application
func SetupRouter(db *sql.DB, verifier *auth.Verifier, perms auth.Permissions, publisher messaging.PublisherInterface, metrics *telemetry.Metrics) *mux.Router {
	// Patient components
	patientRepo := patient.NewRepository(db)
	patientService := patient.NewService(patientRepo, publisher)
	patientHandler := patient.NewHandler(patientService)

	// Appointment components
	var conflicts appointment.ConflictRecorder
	if metrics != nil {
		conflicts = metrics
	}
	appointmentRepo := appointment.NewRepository(db)
	appointmentService := appointment.NewService(appointmentRepo, &patientRecordsAdapter{service: patientService}, publisher, conflicts)
	appointmentHandler := appointment.NewHandler(appointmentService)

	// Treatment components, which also feed the dental chart aggregates
	toothRepo := tooth.NewRepository(db)
	treatmentRepo := treatment.NewRepository(db)
	treatmentService := treatment.NewService(treatmentRepo, toothRepo, publisher)
	treatmentHandler := treatment.NewHandler(treatmentService)

	// Payment components
	paymentRepo := payment.NewRepository(db)
	var recorder payment.Recorder
	if metrics != nil {
		recorder = metrics
	}
	paymentService := payment.NewService(paymentRepo, publisher, recorder)
	paymentHandler := payment.NewHandler(paymentService)

	// Dental chart components. The payment repository doubles as the
	// patient existence check.
	toothService := tooth.NewService(toothRepo, treatmentRepo, paymentRepo)
	toothHandler := tooth.NewHandler(toothService)

	// User components
	userRepo := users.NewRepository(db)
	userService := users.NewService(userRepo, appointmentService)
	userHandler := users.NewHandler(userService)

	r := mux.NewRouter()
	r.Use(otelmux.Middleware("clinic-service"))

	// Public health endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"clinic-service"}`))
	}).Methods("GET")

	protect := func(capability string, handler http.HandlerFunc) http.Handler {
		return auth.MiddlewareWithMetrics(verifier, metricsRecorder(metrics))(
			auth.RequireCapabilityWithMetrics(capability, perms, capabilityRecorder(metrics))(
				handler,
			),
		)
	}

	// Patient routes
	r.Handle("/patients", protect("patient:create", patientHandler.CreatePatient)).Methods("POST")
	r.Handle("/patients", protect("patient:view", patientHandler.ListPatients)).Methods("GET")
	r.Handle("/patients/{id}", protect("patient:view", patientHandler.GetPatient)).Methods("GET")
	r.Handle("/patients/{id}", protect("patient:update", patientHandler.UpdatePatient)).Methods("PUT")
	r.Handle("/patients/{id}", protect("patient:delete", patientHandler.DeletePatient)).Methods("DELETE")
	r.Handle("/patients/{id}/complaints", protect("patient:view", patientHandler.GetComplaints)).Methods("GET")

	// Dental chart routes
	r.Handle("/patients/{id}/chart", protect("chart:view", toothHandler.GetChart)).Methods("GET")
	r.Handle("/tooth-conditions", protect("chart:view", toothHandler.ListConditions)).Methods("GET")

	// Treatment routes
	r.Handle("/patients/{id}/treatments", protect("treatment:create", treatmentHandler.CreateTreatments)).Methods("POST")
	r.Handle("/teeth/{number}/treatments", protect("treatment:view", treatmentHandler.GetToothTreatments)).Methods("GET")
	r.Handle("/treatments/{id}", protect("treatment:view", treatmentHandler.GetTreatment)).Methods("GET")
	r.Handle("/treatments/{id}", protect("treatment:update", treatmentHandler.UpdateStatus)).Methods("PUT")

	// Payment routes
	r.Handle("/patients/{id}/balance", protect("payment:view", paymentHandler.GetBalance)).Methods("GET")
	r.Handle("/patients/{id}/payments", protect("payment:view", paymentHandler.ListPayments)).Methods("GET")
	r.Handle("/patients/{id}/payments", protect("payment:create", paymentHandler.CreatePayment)).Methods("POST")
	r.Handle("/patients/{id}/payments/balance", protect("payment:create", paymentHandler.CreateBalancePayment)).Methods("POST")
	r.Handle("/payments/{id}", protect("payment:view", paymentHandler.GetPayment)).Methods("GET")

	// Appointment routes
	r.Handle("/appointments", protect("appointment:create", appointmentHandler.CreateAppointment)).Methods("POST")
	r.Handle("/appointments", protect("appointment:view", appointmentHandler.ListAppointments)).Methods("GET")
	r.Handle("/appointments/calendar", protect("appointment:view", appointmentHandler.Calendar)).Methods("GET")
	r.Handle("/appointments/{id}", protect("appointment:view", appointmentHandler.GetAppointment)).Methods("GET")
	r.Handle("/appointments/{id}", protect("appointment:update", appointmentHandler.UpdateAppointment)).Methods("PUT")
	r.Handle("/appointments/{id}/cancel", protect("appointment:update", appointmentHandler.CancelAppointment)).Methods("POST")
	r.Handle("/api/time-slots", protect("appointment:view", appointmentHandler.TimeSlots)).Methods("GET")

	// User and dashboard routes
	r.Handle("/users", protect("user:create", userHandler.CreateUser)).Methods("POST")
	r.Handle("/users", protect("user:view", userHandler.ListUsers)).Methods("GET")
	r.Handle("/users/dentists", protect("user:view", userHandler.ListDentists)).Methods("GET")
	r.Handle("/dashboard", protect("dashboard:view", userHandler.Dashboard)).Methods("GET")

	return r
}

// metricsRecorder avoids handing a typed nil to the auth middleware
func metricsRecorder(metrics *telemetry.Metrics) auth.MetricsRecorder {
	if metrics == nil {
		return nil
	}
	return metrics
}

func capabilityRecorder(metrics *telemetry.Metrics) auth.CapabilityMetricsRecorder {
	if metrics == nil {
		return nil
	}
	return metrics
}
