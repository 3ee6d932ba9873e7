package handlers

import (
	"net/http"

	applog "mutfago/internal/log"
	"mutfago/internal/views/pages"
)

// App renders the authenticated application shell.
func App(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	userName := ""
	if sessionManager != nil {
		userName = sessionManager.GetString(r.Context(), sessionUserNameKey)
	}

	if err := pages.App(userName).Render(r.Context(), w); err != nil {
		applog.Error(r.Context(), "failed to render app shell", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
