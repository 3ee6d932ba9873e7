package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"gorm.io/gorm"

	"mutfago/internal/audit"
	applog "mutfago/internal/log"
	"mutfago/internal/views/pages"
)

// Signup renders the registration view and processes new accounts.
func Signup(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	switch r.Method {
	case http.MethodGet, http.MethodHead:
		if ActiveSession(r) {
			redirectToApp(w, r)
			return
		}
		renderSignup(w, r, "", "", "")
	case http.MethodPost:
		if sessionManager == nil || database == nil {
			http.Error(w, "registration not available", http.StatusServiceUnavailable)
			return
		}
		if err := r.ParseForm(); err != nil {
			applog.Debug(r.Context(), "failed to parse signup form", "error", err)
			http.Error(w, "invalid form submission", http.StatusBadRequest)
			return
		}
		name := strings.TrimSpace(r.PostFormValue("name"))
		email := strings.TrimSpace(r.PostFormValue("email"))
		password := r.PostFormValue("password")

		if name == "" || email == "" || password == "" {
			renderSignup(w, r, "İsim, e-posta ve şifre gereklidir.", name, email)
			return
		}
		if len(password) < 6 {
			renderSignup(w, r, "Şifre en az 6 karakter olmalıdır.", name, email)
			return
		}

		if _, err := findUserByEmail(r, email); err == nil {
			renderSignup(w, r, "Bu e-posta adresi zaten kayıtlı.", name, email)
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			applog.Error(r.Context(), "failed to check existing user", "error", err)
			renderSignup(w, r, "Kayıt oluşturulamadı, lütfen tekrar deneyin.", name, email)
			return
		}

		user, err := createUser(r, email, name, password)
		if err != nil {
			applog.Error(r.Context(), "failed to create user", "error", err)
			renderSignup(w, r, "Kayıt oluşturulamadı, lütfen tekrar deneyin.", name, email)
			return
		}

		audit.Record(r.Context(), database, "auth", "user_signup", &user.ID, map[string]any{"email": user.Email})

		if err := establishSession(r, user); err != nil {
			applog.Error(r.Context(), "failed to establish session after signup", "error", err)
			redirectToLogin(w, r)
			return
		}
		redirectToApp(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func renderSignup(w http.ResponseWriter, r *http.Request, message, name, email string) {
	var component templ.Component
	if isHTMX(r) {
		component = pages.SignupPartial(message, name, email)
	} else {
		component = pages.Signup(message, name, email)
	}

	if err := component.Render(r.Context(), w); err != nil {
		applog.Error(r.Context(), "failed to render signup component", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
