package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// TestVerifier_ParseAndVerifyToken_Success tests successful token parsing
func TestVerifier_ParseAndVerifyToken_Success(t *testing.T) {
	privateKey, publicKey := generateTestKeyPair(t)
	mockJWKS := newMockJWKS(publicKey)

	cfg := Config{
		Issuer: "https://test-idp.com/realms/clinic",
	}
	verifier := NewVerifier(cfg, mockJWKS)

	claims := jwt.MapClaims{
		"sub":                "user-123",
		"iss":                cfg.Issuer,
		"exp":                time.Now().Add(1 * time.Hour).Unix(),
		"iat":                time.Now().Unix(),
		"role":               "dentist",
		"preferred_username": "drsmith",
		"name":               "Doctor Smith",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = "test-key-id"

	tokenString, err := token.SignedString(privateKey)
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}

	principal, err := verifier.ParseAndVerifyToken(tokenString)

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if principal == nil {
		t.Fatal("Expected principal, got nil")
	}
	if principal.UserID != "user-123" {
		t.Errorf("Expected UserID 'user-123', got '%s'", principal.UserID)
	}
	if principal.Role != "dentist" {
		t.Errorf("Expected role 'dentist', got '%s'", principal.Role)
	}
	if principal.Username != "drsmith" {
		t.Errorf("Expected username 'drsmith', got '%s'", principal.Username)
	}
	if principal.FullName != "Doctor Smith" {
		t.Errorf("Expected full name 'Doctor Smith', got '%s'", principal.FullName)
	}
}

// TestVerifier_ParseAndVerifyToken_RoleLowercased tests role normalization
func TestVerifier_ParseAndVerifyToken_RoleLowercased(t *testing.T) {
	privateKey, publicKey := generateTestKeyPair(t)
	mockJWKS := newMockJWKS(publicKey)

	cfg := Config{Issuer: "https://test-idp.com/realms/clinic"}
	verifier := NewVerifier(cfg, mockJWKS)

	claims := jwt.MapClaims{
		"sub":  "user-123",
		"iss":  cfg.Issuer,
		"exp":  time.Now().Add(1 * time.Hour).Unix(),
		"role": "Admin",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = "test-key-id"
	tokenString, err := token.SignedString(privateKey)
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}

	principal, err := verifier.ParseAndVerifyToken(tokenString)

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if principal.Role != RoleAdmin {
		t.Errorf("Expected role 'admin', got '%s'", principal.Role)
	}
}

// TestVerifier_ParseAndVerifyToken_EmptyToken tests empty token
func TestVerifier_ParseAndVerifyToken_EmptyToken(t *testing.T) {
	cfg := Config{Issuer: "https://test.com"}
	verifier := NewVerifier(cfg, nil)

	principal, err := verifier.ParseAndVerifyToken("")

	if err != ErrNoToken {
		t.Errorf("Expected ErrNoToken, got: %v", err)
	}
	if principal != nil {
		t.Error("Expected nil principal")
	}
}

// TestVerifier_ParseAndVerifyToken_InvalidIssuer tests wrong issuer
func TestVerifier_ParseAndVerifyToken_InvalidIssuer(t *testing.T) {
	privateKey, publicKey := generateTestKeyPair(t)
	mockJWKS := newMockJWKS(publicKey)

	cfg := Config{
		Issuer: "https://correct-issuer.com/realms/clinic",
	}
	verifier := NewVerifier(cfg, mockJWKS)

	claims := jwt.MapClaims{
		"sub":  "user-123",
		"iss":  "https://wrong-issuer.com/realms/clinic",
		"exp":  time.Now().Add(1 * time.Hour).Unix(),
		"role": "staff",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = "test-key-id"
	tokenString, err := token.SignedString(privateKey)
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}

	principal, err := verifier.ParseAndVerifyToken(tokenString)

	if err != ErrInvalidIssuer {
		t.Errorf("Expected ErrInvalidIssuer, got: %v", err)
	}
	if principal != nil {
		t.Error("Expected nil principal")
	}
}

// TestVerifier_ParseAndVerifyToken_ExpiredToken tests expired token rejection
func TestVerifier_ParseAndVerifyToken_ExpiredToken(t *testing.T) {
	privateKey, publicKey := generateTestKeyPair(t)
	mockJWKS := newMockJWKS(publicKey)

	cfg := Config{Issuer: "https://test-idp.com/realms/clinic"}
	verifier := NewVerifier(cfg, mockJWKS)

	claims := jwt.MapClaims{
		"sub":  "user-123",
		"iss":  cfg.Issuer,
		"exp":  time.Now().Add(-1 * time.Hour).Unix(),
		"role": "staff",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = "test-key-id"
	tokenString, err := token.SignedString(privateKey)
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}

	principal, err := verifier.ParseAndVerifyToken(tokenString)

	if err == nil {
		t.Error("Expected error for expired token, got nil")
	}
	if principal != nil {
		t.Error("Expected nil principal")
	}
}

// TestVerifier_ParseAndVerifyToken_MissingRole tests token without role claim
func TestVerifier_ParseAndVerifyToken_MissingRole(t *testing.T) {
	privateKey, publicKey := generateTestKeyPair(t)
	mockJWKS := newMockJWKS(publicKey)

	cfg := Config{Issuer: "https://test-idp.com/realms/clinic"}
	verifier := NewVerifier(cfg, mockJWKS)

	claims := jwt.MapClaims{
		"sub": "user-123",
		"iss": cfg.Issuer,
		"exp": time.Now().Add(1 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = "test-key-id"
	tokenString, err := token.SignedString(privateKey)
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}

	principal, err := verifier.ParseAndVerifyToken(tokenString)

	if err != ErrMissingRole {
		t.Errorf("Expected ErrMissingRole, got: %v", err)
	}
	if principal != nil {
		t.Error("Expected nil principal")
	}
}

// TestVerifier_ParseAndVerifyToken_WrongSigningMethod tests HMAC token rejection
func TestVerifier_ParseAndVerifyToken_WrongSigningMethod(t *testing.T) {
	_, publicKey := generateTestKeyPair(t)
	mockJWKS := newMockJWKS(publicKey)

	cfg := Config{Issuer: "https://test-idp.com/realms/clinic"}
	verifier := NewVerifier(cfg, mockJWKS)

	claims := jwt.MapClaims{
		"sub":  "user-123",
		"iss":  cfg.Issuer,
		"exp":  time.Now().Add(1 * time.Hour).Unix(),
		"role": "admin",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token.Header["kid"] = "test-key-id"
	tokenString, err := token.SignedString([]byte("hmac-secret"))
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}

	principal, err := verifier.ParseAndVerifyToken(tokenString)

	if err != ErrInvalidToken {
		t.Errorf("Expected ErrInvalidToken, got: %v", err)
	}
	if principal != nil {
		t.Error("Expected nil principal")
	}
}

// Test helpers

func generateTestKeyPair(t *testing.T) (*rsa.PrivateKey, *rsa.PublicKey) {
	t.Helper()

	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("Failed to generate RSA key: %v", err)
	}
	return privateKey, &privateKey.PublicKey
}

func newMockJWKS(publicKey *rsa.PublicKey) *JWKS {
	return &JWKS{
		keys: map[string]*rsa.PublicKey{
			"test-key-id": publicKey,
		},
	}
}
