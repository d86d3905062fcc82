package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dentchartzz/clinic-service/internal/auth"
	"github.com/dentchartzz/clinic-service/internal/testutil"
)

func testPermissions() auth.Permissions {
	return auth.Permissions{
		"admin":   {"patient:view", "user:create", "dashboard:view"},
		"dentist": {"patient:view", "treatment:update", "dashboard:view"},
		"staff":   {"patient:view"},
	}
}

// The router is built with a nil database: these tests only cover the
// authentication and capability gates, which reject before any handler runs.
func setupTestRouter(t *testing.T) (http.Handler, string, string) {
	t.Helper()

	verifier, privateKey := testutil.CreateTestVerifier(t)
	router := SetupRouter(nil, verifier, testPermissions(), testutil.NewMockPublisher(), nil)

	adminToken := testutil.GenerateAdminToken(t, privateKey)
	staffToken := testutil.GenerateStaffToken(t, privateKey)
	return router, adminToken, staffToken
}

func TestRouter_HealthIsPublic(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
}

func TestRouter_RejectsMissingToken(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/patients", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("Expected status 401, got %d", rec.Code)
	}
}

func TestRouter_RejectsGarbageToken(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/patients", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("Expected status 401, got %d", rec.Code)
	}
}

func TestRouter_ForbidsMissingCapability(t *testing.T) {
	router, _, staffToken := setupTestRouter(t)

	// Staff cannot manage user accounts
	req := httptest.NewRequest(http.MethodPost, "/users", nil)
	req.Header.Set("Authorization", "Bearer "+staffToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("Expected status 403, got %d", rec.Code)
	}
}

func TestRouter_ForbidsStaffDashboard(t *testing.T) {
	router, _, staffToken := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+staffToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("Expected status 403, got %d", rec.Code)
	}
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	router, _, _ := setupTestRouter(t)
	handler := CORSMiddleware(router)

	req := httptest.NewRequest(http.MethodOptions, "/patients", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("Expected status 204, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "http://localhost:3000" {
		t.Errorf("Expected allowed origin header, got %q", rec.Header().Get("Access-Control-Allow-Origin"))
	}
}
