package payment

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dentchartzz/clinic-service/internal/auth"
)

// Handler handles HTTP requests for payments
type Handler struct {
	service ServiceInterface
}

// NewHandler creates a new payment handler
func NewHandler(service ServiceInterface) *Handler {
	return &Handler{service: service}
}

func isValidationError(err error) bool {
	return errors.Is(err, ErrInvalidMethod) ||
		errors.Is(err, ErrNegativeAmount) ||
		errors.Is(err, ErrInvalidDate)
}

func createdByID(r *http.Request) string {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		return ""
	}
	return principal.UserID
}

func (h *Handler) respondServiceError(w http.ResponseWriter, err error, action string) {
	if isValidationError(err) {
		respondError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	if errors.Is(err, ErrPatientNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "Patient not found")
		return
	}
	if errors.Is(err, ErrNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "Payment not found")
		return
	}
	log.Printf("Error %s: %v", action, err)
	respondError(w, http.StatusInternalServerError, "internal_error", "Failed to "+action)
}

// CreatePayment handles POST /patients/{id}/payments
func (h *Handler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload")
		return
	}

	payment, err := h.service.CreatePayment(r.Context(), vars["id"], &req, createdByID(r))
	if err != nil {
		h.respondServiceError(w, err, "record payment")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(PaymentSuccessResponse{Success: true, Payment: payment})
}

// CreateBalancePayment handles POST /patients/{id}/payments/balance
func (h *Handler) CreateBalancePayment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req CreateBalancePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload")
		return
	}

	payment, suggested, err := h.service.CreateBalancePayment(r.Context(), vars["id"], &req, createdByID(r))
	if err != nil {
		h.respondServiceError(w, err, "record balance payment")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(PaymentSuccessResponse{Success: true, Payment: payment, SuggestedAmount: &suggested})
}

// ListPayments handles GET /patients/{id}/payments
func (h *Handler) ListPayments(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	payments, err := h.service.ListPayments(r.Context(), vars["id"])
	if err != nil {
		h.respondServiceError(w, err, "list payments")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(PaymentListResponse{Success: true, Payments: payments, Total: len(payments)})
}

// GetBalance handles GET /patients/{id}/balance
func (h *Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	balance, err := h.service.GetPatientBalance(r.Context(), vars["id"])
	if err != nil {
		h.respondServiceError(w, err, "get patient balance")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(BalanceResponse{Success: true, Balance: balance})
}

// GetPayment handles GET /payments/{id}
func (h *Handler) GetPayment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	payment, err := h.service.GetPayment(r.Context(), vars["id"])
	if err != nil {
		h.respondServiceError(w, err, "get payment")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(PaymentSuccessResponse{Success: true, Payment: payment})
}

func respondError(w http.ResponseWriter, status int, errType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"error":   errType,
		"message": message,
	})
}
