package handlers

import (
	"net/http"

	"mutfago/internal/audit"
	"mutfago/internal/modules"
)

// ModulesResource handles /api/modules and the per-module toggle.
func ModulesResource(w http.ResponseWriter, r *http.Request) {
	if database == nil {
		writeAPIError(w, http.StatusServiceUnavailable, "INTERNAL", "service unavailable")
		return
	}
	user, ok := currentAPIUser(r)
	if !ok {
		writeAPIError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return
	}

	segments := pathSegments(r, "/api/modules")
	if len(segments) == 0 {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		moduleStatus(w, r, user.ID)
		return
	}

	moduleID, ok := parseID(segments[0])
	if !ok || len(segments) != 2 || segments[1] != "toggle" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	toggleModule(w, r, user.ID, moduleID)
}

func moduleStatus(w http.ResponseWriter, r *http.Request, userID uint) {
	kitchenID, ok := kitchenIDFromRequest(w, r, userID, 0)
	if !ok {
		return
	}

	statuses, err := modules.StatusForKitchen(r.Context(), database, kitchenID)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeAPIData(w, http.StatusOK, statuses)
}

func toggleModule(w http.ResponseWriter, r *http.Request, userID, moduleID uint) {
	var payload struct {
		KitchenID uint `json:"kitchen_id"`
	}
	_ = decodeJSON(r, &payload)

	kitchenID, ok := kitchenIDFromRequest(w, r, userID, payload.KitchenID)
	if !ok {
		return
	}

	entitlement, err := modules.Toggle(r.Context(), database, kitchenID, moduleID)
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	audit.Record(r.Context(), database, "modules", "module_toggled", &userID, map[string]any{
		"kitchen_id": kitchenID,
		"module_id":  moduleID,
		"is_enabled": entitlement.IsEnabled,
	})
	writeAPIData(w, http.StatusOK, entitlement)
}
