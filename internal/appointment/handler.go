package appointment

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dentchartzz/clinic-service/internal/auth"
	"github.com/gorilla/mux"
)

type Handler struct {
	service ServiceInterface
}

func NewHandler(service ServiceInterface) *Handler {
	return &Handler{service: service}
}

type AppointmentSuccessResponse struct {
	Success     bool                 `json:"success"`
	Message     string               `json:"message"`
	Appointment *AppointmentResponse `json:"appointment,omitempty"`
}

type AppointmentListResponse struct {
	Success      bool                  `json:"success"`
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

func isValidationError(err error) bool {
	return errors.Is(err, ErrMissingPatient) ||
		errors.Is(err, ErrMissingDentist) ||
		errors.Is(err, ErrMissingDate) ||
		errors.Is(err, ErrMissingStartTime) ||
		errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrInvalidTime) ||
		errors.Is(err, ErrInvalidDuration) ||
		errors.Is(err, ErrInvalidStatus)
}

func (h *Handler) respondServiceError(w http.ResponseWriter, err error, fallbackType string) {
	var conflict *ConflictError
	if errors.As(err, &conflict) {
		respondError(w, http.StatusConflict, "appointment_conflict", conflict.Error())
		return
	}
	if errors.Is(err, ErrNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "Appointment not found")
		return
	}
	if isValidationError(err) {
		respondError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	respondError(w, http.StatusInternalServerError, fallbackType, err.Error())
}

func (h *Handler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	created, err := h.service.CreateAppointment(r.Context(), req)
	if err != nil {
		h.respondServiceError(w, err, "creation_failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(AppointmentSuccessResponse{
		Success:     true,
		Message:     "Appointment scheduled successfully",
		Appointment: created,
	})
}

func (h *Handler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := Filters{
		Date:      q.Get("date"),
		DentistID: q.Get("dentist"),
		Status:    q.Get("status"),
	}

	// Omitted filters default to today's scheduled appointments, scoped to
	// the requesting dentist's own schedule. An explicit empty value
	// (e.g. ?date=) clears the filter instead.
	if !q.Has("date") {
		f.Date = time.Now().Format("2006-01-02")
	}
	if !q.Has("status") {
		f.Status = StatusScheduled
	}
	if !q.Has("dentist") {
		if principal, ok := auth.FromContext(r.Context()); ok && strings.EqualFold(principal.Role, "dentist") {
			f.DentistID = principal.UserID
		}
	}

	appointments, err := h.service.ListAppointments(r.Context(), f)
	if err != nil {
		h.respondServiceError(w, err, "list_failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(AppointmentListResponse{
		Success:      true,
		Appointments: appointments,
		Total:        len(appointments),
	})
}

func (h *Handler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "Appointment ID is required")
		return
	}

	appt, err := h.service.GetAppointment(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err, "get_failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(AppointmentSuccessResponse{
		Success:     true,
		Message:     "Appointment retrieved successfully",
		Appointment: appt,
	})
}

func (h *Handler) Calendar(w http.ResponseWriter, r *http.Request) {
	weekStart := r.URL.Query().Get("week_start")

	calendar, err := h.service.Calendar(r.Context(), weekStart)
	if err != nil {
		h.respondServiceError(w, err, "calendar_failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(calendar)
}

func (h *Handler) UpdateAppointment(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "Appointment ID is required")
		return
	}

	var req UpdateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	updated, err := h.service.UpdateAppointment(r.Context(), id, req)
	if err != nil {
		h.respondServiceError(w, err, "update_failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(AppointmentSuccessResponse{
		Success:     true,
		Message:     "Appointment updated successfully",
		Appointment: updated,
	})
}

func (h *Handler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "Appointment ID is required")
		return
	}

	cancelled, err := h.service.CancelAppointment(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err, "cancel_failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(AppointmentSuccessResponse{
		Success:     true,
		Message:     "Appointment cancelled successfully",
		Appointment: cancelled,
	})
}

// TimeSlots serves GET /api/time-slots?date=...&dentist=...
// Optional: appointment_id (excluded from blocking) and selected_time.
func (h *Handler) TimeSlots(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	dentist := r.URL.Query().Get("dentist")
	if date == "" || dentist == "" {
		respondError(w, http.StatusBadRequest, "missing_parameter", "date and dentist are required")
		return
	}

	slots, err := h.service.TimeSlots(r.Context(),
		dentist,
		date,
		r.URL.Query().Get("appointment_id"),
		r.URL.Query().Get("selected_time"),
	)
	if err != nil {
		if errors.Is(err, ErrInvalidDate) {
			respondError(w, http.StatusBadRequest, "parse_error", err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "slots_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(slots)
}

func respondError(w http.ResponseWriter, statusCode int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":   errorType,
		"message": message,
	})
}
