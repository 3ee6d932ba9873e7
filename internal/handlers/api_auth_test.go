package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"mutfago/internal/auth"
)

func TestAPISignupAndLogin(t *testing.T) {
	_, cleanup := withTestDatabase(t)
	t.Cleanup(cleanup)
	t.Cleanup(withTestAuthSecret(t))

	rec := httptest.NewRecorder()
	APISignup(rec, apiRequest(t, http.MethodPost, "/api/auth/signup", map[string]string{
		"name":     "Elif Aksoy",
		"email":    "Elif@Example.com",
		"password": "parola1",
	}, nil))
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup status = %d body=%s", rec.Code, rec.Body.String())
	}
	var signedUp apiAuthResponse
	dataAs(t, decodeEnvelope(t, rec), &signedUp)
	if signedUp.Token == "" || signedUp.Email != "elif@example.com" {
		t.Fatalf("signup response = %+v", signedUp)
	}
	claims, err := auth.ValidateToken(testAuthSecret, signedUp.Token)
	if err != nil || claims.UserID != signedUp.UserID {
		t.Fatalf("token does not validate: %v claims=%+v", err, claims)
	}

	// Same address again is a conflict regardless of case.
	rec = httptest.NewRecorder()
	APISignup(rec, apiRequest(t, http.MethodPost, "/api/auth/signup", map[string]string{
		"name":     "Elif",
		"email":    "ELIF@example.com",
		"password": "parola1",
	}, nil))
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate signup status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	APILogin(rec, apiRequest(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "elif@example.com",
		"password": "parola1",
	}, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d body=%s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	APILogin(rec, apiRequest(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "elif@example.com",
		"password": "yanlış",
	}, nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad password status = %d", rec.Code)
	}
}

func TestAPISignupValidation(t *testing.T) {
	_, cleanup := withTestDatabase(t)
	t.Cleanup(cleanup)
	t.Cleanup(withTestAuthSecret(t))

	cases := []struct {
		name    string
		payload map[string]string
	}{
		{"missing name", map[string]string{"email": "a@b.com", "password": "parola1"}},
		{"missing email", map[string]string{"name": "A", "password": "parola1"}},
		{"short password", map[string]string{"name": "A", "email": "a@b.com", "password": "abc"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			APISignup(rec, apiRequest(t, http.MethodPost, "/api/auth/signup", tc.payload, nil))
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestAPILoginUnknownUser(t *testing.T) {
	_, cleanup := withTestDatabase(t)
	t.Cleanup(cleanup)
	t.Cleanup(withTestAuthSecret(t))

	rec := httptest.NewRecorder()
	APILogin(rec, apiRequest(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "yok@example.com",
		"password": "parola1",
	}, nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}
