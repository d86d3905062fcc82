package treatment

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/dentchartzz/clinic-service/internal/auth"
	"github.com/dentchartzz/clinic-service/internal/tooth"
)

// Handler handles HTTP requests for treatments
type Handler struct {
	service ServiceInterface
}

// NewHandler creates a new treatment handler
func NewHandler(service ServiceInterface) *Handler {
	return &Handler{service: service}
}

// TreatmentSuccessResponse wraps a single treatment
type TreatmentSuccessResponse struct {
	Success   bool               `json:"success"`
	Treatment *TreatmentResponse `json:"treatment"`
}

func isValidationError(err error) bool {
	return errors.Is(err, ErrMissingTeeth) ||
		errors.Is(err, ErrMissingCondition) ||
		errors.Is(err, ErrInvalidStatus)
}

func actingDentistID(r *http.Request) string {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		return ""
	}
	return principal.UserID
}

// appointmentIDFromReferer extracts an appointment ID from a referring
// appointment page URL such as /appointments/{id}
func appointmentIDFromReferer(referer string) string {
	if referer == "" {
		return ""
	}
	parsed, err := url.Parse(referer)
	if err != nil {
		return ""
	}

	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	for i, segment := range segments {
		if segment == "appointments" && i+1 < len(segments) && segments[i+1] != "" {
			return segments[i+1]
		}
	}
	return ""
}

// CreateTreatments handles POST /patients/{id}/treatments
func (h *Handler) CreateTreatments(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	patientID := vars["id"]

	var req CreateTreatmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload")
		return
	}

	treatments, err := h.service.CreateTreatments(r.Context(), patientID, &req, actingDentistID(r))
	if err != nil {
		if isValidationError(err) {
			respondError(w, http.StatusBadRequest, "validation_error", err.Error())
			return
		}
		log.Printf("Error creating treatments: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "Failed to create treatments")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(TreatmentListResponse{Success: true, Treatments: treatments})
}

// GetTreatment handles GET /treatments/{id}
func (h *Handler) GetTreatment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	treatment, err := h.service.GetTreatment(r.Context(), vars["id"])
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "Treatment not found")
			return
		}
		log.Printf("Error getting treatment: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "Failed to get treatment")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(TreatmentSuccessResponse{Success: true, Treatment: treatment})
}

// UpdateStatus handles PUT /treatments/{id}
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload")
		return
	}

	// Context appointment resolution: explicit request value, then the
	// referring appointment page, then the treatment's existing link.
	if req.CurrentAppointmentID == "" {
		req.CurrentAppointmentID = r.URL.Query().Get("current_appointment")
	}
	if req.CurrentAppointmentID == "" {
		req.CurrentAppointmentID = appointmentIDFromReferer(r.Header.Get("Referer"))
	}

	treatment, err := h.service.UpdateStatus(r.Context(), vars["id"], &req, actingDentistID(r))
	if err != nil {
		if isValidationError(err) {
			respondError(w, http.StatusBadRequest, "validation_error", err.Error())
			return
		}
		if errors.Is(err, ErrNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "Treatment not found")
			return
		}
		log.Printf("Error updating treatment status: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "Failed to update treatment")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(TreatmentSuccessResponse{Success: true, Treatment: treatment})
}

// GetToothTreatments handles GET /teeth/{number}/treatments
func (h *Handler) GetToothTreatments(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	number, err := strconv.Atoi(vars["number"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_parameter", "Tooth number must be an integer")
		return
	}

	patientID := r.URL.Query().Get("patient_id")

	resp, err := h.service.GetToothTreatments(r.Context(), number, patientID)
	if err != nil {
		if errors.Is(err, tooth.ErrNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "Tooth not found")
			return
		}
		log.Printf("Error listing tooth treatments: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "Failed to list tooth treatments")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}

func respondError(w http.ResponseWriter, status int, errType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"error":   errType,
		"message": message,
	})
}
