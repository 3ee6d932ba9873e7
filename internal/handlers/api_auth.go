package handlers

import (
	"errors"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"mutfago/internal/audit"
	"mutfago/internal/auth"
	applog "mutfago/internal/log"
)

type apiCredentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type apiAuthResponse struct {
	Token   string `json:"token"`
	UserID  uint   `json:"user_id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	IsAdmin bool   `json:"is_admin"`
}

// APILogin exchanges credentials for a bearer token.
func APILogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var payload apiCredentials
	if err := decodeJSON(r, &payload); err != nil {
		writeAPIError(w, http.StatusBadRequest, "VALIDATION", "invalid request payload")
		return
	}
	email := strings.TrimSpace(payload.Email)
	if email == "" || payload.Password == "" {
		writeAPIError(w, http.StatusBadRequest, "VALIDATION", "email and password are required")
		return
	}

	user, err := findUserByEmail(r, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeAPIError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid credentials")
			return
		}
		applog.Error(r.Context(), "failed to load user for api login", "error", err)
		writeAPIError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(payload.Password)); err != nil {
		writeAPIError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid credentials")
		return
	}

	token, err := auth.GenerateToken(authSecret, user.ID, user.Email, user.IsAdmin)
	if err != nil {
		applog.Error(r.Context(), "failed to issue token", "error", err)
		writeAPIError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}

	writeAPIData(w, http.StatusOK, apiAuthResponse{
		Token:   token,
		UserID:  user.ID,
		Email:   user.Email,
		Name:    user.Name,
		IsAdmin: user.IsAdmin,
	})
}

// APISignup registers a user and returns a bearer token straight away.
func APISignup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var payload apiCredentials
	if err := decodeJSON(r, &payload); err != nil {
		writeAPIError(w, http.StatusBadRequest, "VALIDATION", "invalid request payload")
		return
	}
	email := strings.TrimSpace(payload.Email)
	name := strings.TrimSpace(payload.Name)
	if email == "" || payload.Password == "" || name == "" {
		writeAPIError(w, http.StatusBadRequest, "VALIDATION", "name, email and password are required")
		return
	}
	if len(payload.Password) < 6 {
		writeAPIError(w, http.StatusBadRequest, "VALIDATION", "password must be at least 6 characters")
		return
	}

	if _, err := findUserByEmail(r, email); err == nil {
		writeAPIError(w, http.StatusConflict, "CONFLICT", "email already registered")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		applog.Error(r.Context(), "failed to check existing user", "error", err)
		writeAPIError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}

	user, err := createUser(r, email, name, payload.Password)
	if err != nil {
		applog.Error(r.Context(), "failed to create user", "error", err)
		writeAPIError(w, http.StatusInternalServerError, "INTERNAL", "unable to create account")
		return
	}

	audit.Record(r.Context(), database, "auth", "user_signup", &user.ID, map[string]any{"email": user.Email})

	token, err := auth.GenerateToken(authSecret, user.ID, user.Email, user.IsAdmin)
	if err != nil {
		applog.Error(r.Context(), "failed to issue token", "error", err)
		writeAPIError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}

	writeAPIData(w, http.StatusCreated, apiAuthResponse{
		Token:   token,
		UserID:  user.ID,
		Email:   user.Email,
		Name:    user.Name,
		IsAdmin: user.IsAdmin,
	})
}
