package handlers

import (
	"net/http"
	"strings"

	"github.com/a-h/templ"

	applog "mutfago/internal/log"
	"mutfago/internal/views/pages"
)

// Login renders the authentication view and processes sign-in submissions.
func Login(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	applog.Debug(r.Context(), "handling login request", "method", r.Method, "htmx", isHTMX(r))

	switch r.Method {
	case http.MethodGet, http.MethodHead:
		if ActiveSession(r) {
			redirectToApp(w, r)
			return
		}
		message := ""
		if sessionManager != nil {
			message = sessionManager.PopString(r.Context(), sessionLoginMessageKey)
		}
		renderLogin(w, r, message, "")
	case http.MethodPost:
		if sessionManager == nil || database == nil {
			http.Error(w, "authentication not available", http.StatusServiceUnavailable)
			return
		}
		if err := r.ParseForm(); err != nil {
			applog.Debug(r.Context(), "failed to parse login form", "error", err)
			http.Error(w, "invalid form submission", http.StatusBadRequest)
			return
		}
		email := strings.TrimSpace(r.PostFormValue("email"))
		password := r.PostFormValue("password")

		if email == "" || password == "" {
			renderLogin(w, r, "E-posta ve şifre gereklidir.", email)
			return
		}

		if !authenticate(w, r, email, password) {
			message := ""
			if sessionManager != nil {
				message = sessionManager.PopString(r.Context(), sessionLoginMessageKey)
			}
			if message == "" {
				message = "Giriş yapılamadı, lütfen tekrar deneyin."
			}
			renderLogin(w, r, message, email)
			return
		}

		applog.Debug(r.Context(), "authentication succeeded", "email", strings.ToLower(email))
		redirectToApp(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func renderLogin(w http.ResponseWriter, r *http.Request, message, email string) {
	var component templ.Component
	if isHTMX(r) {
		component = pages.LoginPartial(message, email)
	} else {
		component = pages.Login(message, email)
	}

	if err := component.Render(r.Context(), w); err != nil {
		applog.Error(r.Context(), "failed to render login component", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
