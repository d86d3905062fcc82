package users

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/dentchartzz/clinic-service/internal/auth"
)

// Handler handles HTTP requests for user accounts
type Handler struct {
	service ServiceInterface
}

// NewHandler creates a new users handler
func NewHandler(service ServiceInterface) *Handler {
	return &Handler{service: service}
}

func isValidationError(err error) bool {
	return errors.Is(err, ErrMissingUsername) ||
		errors.Is(err, ErrMissingFullName) ||
		errors.Is(err, ErrInvalidRole)
}

// CreateUser handles POST /users
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload")
		return
	}

	user, err := h.service.CreateAccount(r.Context(), &req)
	if err != nil {
		if isValidationError(err) {
			respondError(w, http.StatusBadRequest, "validation_error", err.Error())
			return
		}
		if errors.Is(err, ErrUsernameTaken) {
			respondError(w, http.StatusConflict, "username_taken", "Username already taken")
			return
		}
		log.Printf("Error creating user: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "Failed to create user")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(UserSuccessResponse{Success: true, User: user})
}

// ListUsers handles GET /users
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	role := r.URL.Query().Get("role")

	out, err := h.service.ListUsers(r.Context(), role)
	if err != nil {
		if errors.Is(err, ErrInvalidRole) {
			respondError(w, http.StatusBadRequest, "validation_error", err.Error())
			return
		}
		log.Printf("Error listing users: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "Failed to list users")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(UserListResponse{Success: true, Users: out, Total: len(out)})
}

// ListDentists handles GET /users/dentists
func (h *Handler) ListDentists(w http.ResponseWriter, r *http.Request) {
	dentists, err := h.service.ListDentists(r.Context())
	if err != nil {
		log.Printf("Error listing dentists: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "Failed to list dentists")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(UserListResponse{Success: true, Users: dentists, Total: len(dentists)})
}

// Dashboard handles GET /dashboard
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
		return
	}

	dashboard, err := h.service.Dashboard(r.Context(), principal.UserID, principal.Role)
	if err != nil {
		log.Printf("Error building dashboard: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "Failed to build dashboard")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(dashboard)
}

func respondError(w http.ResponseWriter, status int, errType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"error":   errType,
		"message": message,
	})
}
