package handlers

import (
	"net/http"

	"mutfago/internal/notify"
)

// NotificationsResource lists the caller's notifications and marks them read.
func NotificationsResource(w http.ResponseWriter, r *http.Request) {
	if database == nil {
		writeAPIError(w, http.StatusServiceUnavailable, "INTERNAL", "service unavailable")
		return
	}
	user, ok := currentAPIUser(r)
	if !ok {
		writeAPIError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return
	}

	segments := pathSegments(r, "/api/notifications")
	if len(segments) == 0 {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		notifications, err := notify.ListForUser(r.Context(), database, user.ID)
		if err != nil {
			writeAppError(w, r, err)
			return
		}
		writeAPIData(w, http.StatusOK, notifications)
		return
	}

	if len(segments) != 2 || segments[1] != "read" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	notificationID, ok := parseID(segments[0])
	if !ok {
		http.NotFound(w, r)
		return
	}

	if err := notify.MarkRead(r.Context(), database, user.ID, notificationID); err != nil {
		writeAppError(w, r, err)
		return
	}
	writeAPIData(w, http.StatusOK, map[string]any{"id": notificationID, "is_read": true})
}
