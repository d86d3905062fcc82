package telemetry

import (
	"context"
	"log"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds custom application metrics
type Metrics struct {
	HTTPRequestsTotal       metric.Int64Counter
	HTTPDurationMs          metric.Float64Histogram
	PatientTotal            metric.Int64Counter
	AppointmentTotal        metric.Int64Counter
	SlotConflictsTotal      metric.Int64Counter
	TreatmentTotal          metric.Int64Counter
	PaymentTotal            metric.Int64Counter
	PaymentAmount           metric.Float64Counter
	UserTotal               metric.Int64Counter
	AuthFailuresTotal       metric.Int64Counter
	PermissionCheckDuration metric.Float64Histogram
}

// NewMetrics creates and registers custom application metrics
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter("github.com/dentchartzz/clinic-service")

	// HTTP request counter
	httpRequestsTotal, err := meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	// HTTP duration histogram
	httpDurationMs, err := meter.Float64Histogram(
		"http_request_duration_ms",
		metric.WithDescription("HTTP request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	// Patient counter
	patientTotal, err := meter.Int64Counter(
		"patient_total",
		metric.WithDescription("Total number of patient operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, err
	}

	// Appointment counter
	appointmentTotal, err := meter.Int64Counter(
		"appointment_total",
		metric.WithDescription("Total number of appointment operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, err
	}

	// Slot conflict counter
	slotConflictsTotal, err := meter.Int64Counter(
		"slot_conflicts_total",
		metric.WithDescription("Total number of rejected overlapping appointment requests"),
		metric.WithUnit("{conflict}"),
	)
	if err != nil {
		return nil, err
	}

	// Treatment counter
	treatmentTotal, err := meter.Int64Counter(
		"treatment_total",
		metric.WithDescription("Total number of treatment operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, err
	}

	// Payment counter
	paymentTotal, err := meter.Int64Counter(
		"payment_total",
		metric.WithDescription("Total number of payment operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, err
	}

	// Payment amount counter
	paymentAmount, err := meter.Float64Counter(
		"payment_amount_total",
		metric.WithDescription("Total amount collected through recorded payments"),
		metric.WithUnit("{currency}"),
	)
	if err != nil {
		return nil, err
	}

	// User counter
	userTotal, err := meter.Int64Counter(
		"user_total",
		metric.WithDescription("Total number of user operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, err
	}

	// Auth failures counter
	authFailuresTotal, err := meter.Int64Counter(
		"auth_failures_total",
		metric.WithDescription("Total number of authentication failures"),
		metric.WithUnit("{failure}"),
	)
	if err != nil {
		return nil, err
	}

	// Permission check duration histogram
	permissionCheckDuration, err := meter.Float64Histogram(
		"permission_check_duration_ms",
		metric.WithDescription("Permission check duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	log.Println("✓ Custom metrics initialized")

	return &Metrics{
		HTTPRequestsTotal:       httpRequestsTotal,
		HTTPDurationMs:          httpDurationMs,
		PatientTotal:            patientTotal,
		AppointmentTotal:        appointmentTotal,
		SlotConflictsTotal:      slotConflictsTotal,
		TreatmentTotal:          treatmentTotal,
		PaymentTotal:            paymentTotal,
		PaymentAmount:           paymentAmount,
		UserTotal:               userTotal,
		AuthFailuresTotal:       authFailuresTotal,
		PermissionCheckDuration: permissionCheckDuration,
	}, nil
}

// RecordHTTPRequest records an HTTP request metric
func (m *Metrics) RecordHTTPRequest(ctx context.Context, method, route string, statusCode int, durationMs float64) {
	attrs := []attribute.KeyValue{
		attribute.String("http_method", method),
		attribute.String("http_route", route),
		attribute.Int("http_status_code", statusCode),
	}

	m.HTTPRequestsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.HTTPDurationMs.Record(ctx, durationMs, metric.WithAttributes(attrs...))
}

// RecordPatientOperation records a patient operation metric
func (m *Metrics) RecordPatientOperation(ctx context.Context, operation string) {
	m.PatientTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
	))
}

// RecordAppointmentOperation records an appointment operation metric
func (m *Metrics) RecordAppointmentOperation(ctx context.Context, operation string) {
	m.AppointmentTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
	))
}

// RecordSlotConflict records a rejected overlapping appointment request
func (m *Metrics) RecordSlotConflict(ctx context.Context, dentistID string) {
	m.SlotConflictsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("dentist_id", dentistID),
	))
}

// RecordTreatmentOperation records a treatment operation metric
func (m *Metrics) RecordTreatmentOperation(ctx context.Context, operation string) {
	m.TreatmentTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
	))
}

// RecordPayment records a payment operation together with the paid amount
func (m *Metrics) RecordPayment(ctx context.Context, operation string, amountPaid float64) {
	m.PaymentTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
	))
	if amountPaid > 0 {
		m.PaymentAmount.Add(ctx, amountPaid, metric.WithAttributes(
			attribute.String("operation", operation),
		))
	}
}

// RecordUserOperation records a user operation metric
func (m *Metrics) RecordUserOperation(ctx context.Context, operation string) {
	m.UserTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
	))
}

// RecordAuthFailure records an authentication failure metric
func (m *Metrics) RecordAuthFailure(ctx context.Context, reason string) {
	m.AuthFailuresTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("reason", reason),
	))
}

// RecordCapabilityCheck records a capability check duration metric
func (m *Metrics) RecordCapabilityCheck(ctx context.Context, capability string, durationMs float64, allowed bool) {
	m.PermissionCheckDuration.Record(ctx, durationMs, metric.WithAttributes(
		attribute.String("capability", capability),
		attribute.Bool("allowed", allowed),
	))
}
