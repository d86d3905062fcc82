package tooth

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"
)

// Handler handles HTTP requests for dental charts
type Handler struct {
	service ServiceInterface
}

// NewHandler creates a new tooth handler
func NewHandler(service ServiceInterface) *Handler {
	return &Handler{service: service}
}

// ConditionsResponse wraps the condition master data
type ConditionsResponse struct {
	Success    bool             `json:"success"`
	Conditions []ToothCondition `json:"conditions"`
}

// GetChart handles GET /patients/{id}/chart
func (h *Handler) GetChart(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	patientID := vars["id"]
	appointmentID := r.URL.Query().Get("appointment")

	chart, err := h.service.GetChart(r.Context(), patientID, appointmentID)
	if err != nil {
		if errors.Is(err, ErrPatientNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "Patient not found")
			return
		}
		log.Printf("Error building dental chart: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "Failed to build dental chart")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(chart)
}

// ListConditions handles GET /tooth-conditions
func (h *Handler) ListConditions(w http.ResponseWriter, r *http.Request) {
	conditions, err := h.service.ListConditions(r.Context())
	if err != nil {
		log.Printf("Error listing tooth conditions: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "Failed to list tooth conditions")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(ConditionsResponse{Success: true, Conditions: conditions})
}

func respondError(w http.ResponseWriter, status int, errType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"error":   errType,
		"message": message,
	})
}
