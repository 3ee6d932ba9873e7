package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"mutfago/internal/apperr"
	"mutfago/internal/auth"
	"mutfago/internal/kitchen"
	applog "mutfago/internal/log"
	"mutfago/models"
)

type apiErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Success bool          `json:"success"`
	Data    any           `json:"data,omitempty"`
	Error   *apiErrorBody `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		applog.Error(context.Background(), "failed to encode json response", "error", err)
	}
}

func writeAPIData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, apiEnvelope{Success: true, Data: data})
}

func writeAPIError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, apiEnvelope{Success: false, Error: &apiErrorBody{Code: code, Message: message}})
}

// writeAppError maps a domain error onto the API envelope.
func writeAppError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperr.Status(err)
	if status >= http.StatusInternalServerError {
		applog.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeAPIError(w, status, apperr.Code(err), "internal error")
		return
	}
	applog.Debug(r.Context(), "request rejected", "path", r.URL.Path, "error", err)
	writeAPIError(w, status, apperr.Code(err), err.Error())
}

type apiUserKey struct{}

// apiUser is the identity carried by a validated bearer token.
type apiUser struct {
	ID      uint
	Email   string
	IsAdmin bool
}

// RequireAPIUser validates the bearer token and stores the caller's identity
// on the request context.
func RequireAPIUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			writeAPIError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing bearer token")
			return
		}

		claims, err := auth.ValidateToken(authSecret, strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			applog.Debug(r.Context(), "bearer token rejected", "error", err)
			writeAPIError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid bearer token")
			return
		}

		user := apiUser{ID: claims.UserID, Email: claims.Email, IsAdmin: claims.IsAdmin}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), apiUserKey{}, user)))
	})
}

// RequireAdmin layers an admin check on top of RequireAPIUser.
func RequireAdmin(next http.Handler) http.Handler {
	return RequireAPIUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentAPIUser(r)
		if !ok || !user.IsAdmin {
			writeAPIError(w, http.StatusForbidden, "FORBIDDEN", "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	}))
}

func currentAPIUser(r *http.Request) (apiUser, bool) {
	user, ok := r.Context().Value(apiUserKey{}).(apiUser)
	return user, ok
}

// pathSegments splits the request path after the given prefix.
func pathSegments(r *http.Request, prefix string) []string {
	path := strings.Trim(strings.TrimPrefix(r.URL.Path, prefix), "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

func parseID(segment string) (uint, bool) {
	value, err := strconv.ParseUint(segment, 10, 64)
	if err != nil || value == 0 {
		return 0, false
	}
	return uint(value), true
}

func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

// kitchenIDFromRequest resolves the kitchen scope from the query string or a
// decoded body field and verifies the caller's membership.
func kitchenIDFromRequest(w http.ResponseWriter, r *http.Request, userID uint, explicit uint) (uint, bool) {
	kitchenID := explicit
	if kitchenID == 0 {
		if raw := r.URL.Query().Get("kitchenId"); raw != "" {
			if id, ok := parseID(raw); ok {
				kitchenID = id
			}
		}
	}
	if kitchenID == 0 {
		// Fall back to the caller's default kitchen.
		var user models.User
		if err := database.WithContext(r.Context()).First(&user, userID).Error; err == nil && user.DefaultKitchenID != nil {
			kitchenID = *user.DefaultKitchenID
		}
	}
	if kitchenID == 0 {
		writeAPIError(w, http.StatusBadRequest, "VALIDATION", "kitchenId is required")
		return 0, false
	}

	member, err := kitchen.IsMember(r.Context(), database, kitchenID, userID)
	if err != nil {
		applog.Error(r.Context(), "membership check failed", "kitchen", kitchenID, "error", err)
		writeAPIError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return 0, false
	}
	if !member {
		writeAPIError(w, http.StatusForbidden, "FORBIDDEN", "not a member of this kitchen")
		return 0, false
	}
	return kitchenID, true
}
