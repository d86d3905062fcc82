package users

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dentchartzz/clinic-service/internal/appointment"
	"github.com/dentchartzz/clinic-service/internal/auth"
)

type mockService struct {
	createAccountFunc func(ctx context.Context, req *CreateUserRequest) (*UserResponse, error)
	getUserFunc       func(ctx context.Context, id string) (*UserResponse, error)
	listUsersFunc     func(ctx context.Context, role string) ([]UserResponse, error)
	listDentistsFunc  func(ctx context.Context) ([]UserResponse, error)
	dashboardFunc     func(ctx context.Context, userID, role string) (*DashboardResponse, error)
}

func (m *mockService) CreateAccount(ctx context.Context, req *CreateUserRequest) (*UserResponse, error) {
	if m.createAccountFunc != nil {
		return m.createAccountFunc(ctx, req)
	}
	return nil, ErrInvalidRole
}

func (m *mockService) GetUser(ctx context.Context, id string) (*UserResponse, error) {
	if m.getUserFunc != nil {
		return m.getUserFunc(ctx, id)
	}
	return nil, ErrNotFound
}

func (m *mockService) ListUsers(ctx context.Context, role string) ([]UserResponse, error) {
	if m.listUsersFunc != nil {
		return m.listUsersFunc(ctx, role)
	}
	return []UserResponse{}, nil
}

func (m *mockService) ListDentists(ctx context.Context) ([]UserResponse, error) {
	if m.listDentistsFunc != nil {
		return m.listDentistsFunc(ctx)
	}
	return []UserResponse{}, nil
}

func (m *mockService) Dashboard(ctx context.Context, userID, role string) (*DashboardResponse, error) {
	if m.dashboardFunc != nil {
		return m.dashboardFunc(ctx, userID, role)
	}
	return &DashboardResponse{Success: true, Role: role, Appointments: []appointment.AppointmentResponse{}}, nil
}

func TestCreateUserHandler_Success(t *testing.T) {
	service := &mockService{
		createAccountFunc: func(ctx context.Context, req *CreateUserRequest) (*UserResponse, error) {
			return &UserResponse{ID: "user-1", Username: req.Username, Role: req.Role}, nil
		},
	}
	handler := NewHandler(service)

	body, _ := json.Marshal(CreateUserRequest{Username: "drsmith", FullName: "Dr. Smith", Role: RoleDentist})
	req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.CreateUser(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d", rec.Code)
	}
}

func TestCreateUserHandler_UsernameTaken(t *testing.T) {
	service := &mockService{
		createAccountFunc: func(ctx context.Context, req *CreateUserRequest) (*UserResponse, error) {
			return nil, ErrUsernameTaken
		},
	}
	handler := NewHandler(service)

	body, _ := json.Marshal(CreateUserRequest{Username: "drsmith", FullName: "Dr. Smith", Role: RoleDentist})
	req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.CreateUser(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("Expected status 409, got %d", rec.Code)
	}

	var resp map[string]string
	json.NewDecoder(rec.Body).Decode(&resp)
	if resp["error"] != "username_taken" {
		t.Errorf("Expected username_taken, got %q", resp["error"])
	}
}

func TestListDentistsHandler(t *testing.T) {
	service := &mockService{
		listDentistsFunc: func(ctx context.Context) ([]UserResponse, error) {
			return []UserResponse{
				{ID: "user-1", FullName: "Dr. Smith", Role: RoleDentist},
				{ID: "user-2", FullName: "Dr. Jones", Role: RoleDentist},
			}, nil
		},
	}
	handler := NewHandler(service)

	req := httptest.NewRequest(http.MethodGet, "/users/dentists", nil)
	rec := httptest.NewRecorder()

	handler.ListDentists(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var resp UserListResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Total != 2 {
		t.Errorf("Expected 2 dentists, got %d", resp.Total)
	}
}

func TestDashboardHandler_UsesPrincipal(t *testing.T) {
	var gotUserID, gotRole string
	service := &mockService{
		dashboardFunc: func(ctx context.Context, userID, role string) (*DashboardResponse, error) {
			gotUserID = userID
			gotRole = role
			return &DashboardResponse{Success: true, Role: role, Appointments: []appointment.AppointmentResponse{}}, nil
		},
	}
	handler := NewHandler(service)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	ctx := auth.ContextWithPrincipal(req.Context(), &auth.Principal{UserID: "dentist-1", Role: "dentist"})
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()

	handler.Dashboard(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	if gotUserID != "dentist-1" || gotRole != "dentist" {
		t.Errorf("Expected principal dentist-1/dentist, got %q/%q", gotUserID, gotRole)
	}
}

func TestDashboardHandler_RequiresPrincipal(t *testing.T) {
	handler := NewHandler(&mockService{})

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	rec := httptest.NewRecorder()

	handler.Dashboard(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("Expected status 401, got %d", rec.Code)
	}
}
