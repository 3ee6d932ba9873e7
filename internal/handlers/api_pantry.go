package handlers

import (
	"context"
	"net/http"
	"time"

	"gorm.io/gorm"

	"mutfago/internal/pantry"
	"mutfago/models"
)

type pantryLinePayload struct {
	Name       string     `json:"name"`
	Category   string     `json:"category"`
	Quantity   float64    `json:"quantity"`
	Unit       string     `json:"unit"`
	ExpiryDate *time.Time `json:"expiry_date,omitempty"`
}

func (p pantryLinePayload) toInput() pantry.AddInput {
	return pantry.AddInput{
		Name:       p.Name,
		Category:   p.Category,
		Quantity:   p.Quantity,
		Unit:       p.Unit,
		ExpiryDate: p.ExpiryDate,
	}
}

// PantryResource handles /api/pantry and its sub-resources.
func PantryResource(w http.ResponseWriter, r *http.Request) {
	if database == nil {
		writeAPIError(w, http.StatusServiceUnavailable, "INTERNAL", "service unavailable")
		return
	}
	user, ok := currentAPIUser(r)
	if !ok {
		writeAPIError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return
	}

	segments := pathSegments(r, "/api/pantry")
	if len(segments) == 0 {
		switch r.Method {
		case http.MethodGet:
			listPantry(w, r, user.ID)
		case http.MethodPost:
			addPantryItem(w, r, user.ID)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	if segments[0] == "bulk" {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		bulkAddPantry(w, r, user.ID)
		return
	}

	itemID, ok := parseID(segments[0])
	if !ok {
		http.NotFound(w, r)
		return
	}

	if len(segments) == 1 {
		if r.Method != http.MethodDelete {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		deletePantryItem(w, r, user.ID, itemID)
		return
	}

	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	switch segments[1] {
	case "consume":
		adjustPantryItem(w, r, user.ID, itemID, pantry.Consume)
	case "restock":
		adjustPantryItem(w, r, user.ID, itemID, pantry.Restock)
	default:
		http.NotFound(w, r)
	}
}

func listPantry(w http.ResponseWriter, r *http.Request, userID uint) {
	kitchenID, ok := kitchenIDFromRequest(w, r, userID, 0)
	if !ok {
		return
	}

	items, err := pantry.List(r.Context(), database, kitchenID)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeAPIData(w, http.StatusOK, items)
}

func addPantryItem(w http.ResponseWriter, r *http.Request, userID uint) {
	var payload struct {
		KitchenID uint `json:"kitchen_id"`
		pantryLinePayload
	}
	if err := decodeJSON(r, &payload); err != nil {
		writeAPIError(w, http.StatusBadRequest, "VALIDATION", "invalid request payload")
		return
	}

	kitchenID, ok := kitchenIDFromRequest(w, r, userID, payload.KitchenID)
	if !ok {
		return
	}

	item, err := pantry.Add(r.Context(), database, kitchenID, payload.toInput())
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeAPIData(w, http.StatusCreated, item)
}

func bulkAddPantry(w http.ResponseWriter, r *http.Request, userID uint) {
	var payload struct {
		KitchenID uint                `json:"kitchen_id"`
		Category  string              `json:"category"`
		Items     []pantryLinePayload `json:"items"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		writeAPIError(w, http.StatusBadRequest, "VALIDATION", "invalid request payload")
		return
	}
	if len(payload.Items) == 0 {
		writeAPIError(w, http.StatusBadRequest, "VALIDATION", "items are required")
		return
	}

	kitchenID, ok := kitchenIDFromRequest(w, r, userID, payload.KitchenID)
	if !ok {
		return
	}

	lines := make([]pantry.AddInput, 0, len(payload.Items))
	for _, item := range payload.Items {
		lines = append(lines, item.toInput())
	}

	results := pantry.BulkAdd(r.Context(), database, kitchenID, payload.Category, lines)
	writeAPIData(w, http.StatusOK, results)
}

type pantryAdjuster func(ctx context.Context, db *gorm.DB, kitchenID, itemID uint, amount float64) (*models.PantryItem, error)

func adjustPantryItem(w http.ResponseWriter, r *http.Request, userID, itemID uint, op pantryAdjuster) {
	var payload struct {
		KitchenID uint    `json:"kitchen_id"`
		Amount    float64 `json:"amount"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		writeAPIError(w, http.StatusBadRequest, "VALIDATION", "invalid request payload")
		return
	}

	kitchenID, ok := kitchenIDFromRequest(w, r, userID, payload.KitchenID)
	if !ok {
		return
	}

	item, err := op(r.Context(), database, kitchenID, itemID, payload.Amount)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeAPIData(w, http.StatusOK, item)
}

func deletePantryItem(w http.ResponseWriter, r *http.Request, userID, itemID uint) {
	kitchenID, ok := kitchenIDFromRequest(w, r, userID, 0)
	if !ok {
		return
	}

	if err := pantry.Delete(r.Context(), database, kitchenID, itemID); err != nil {
		writeAppError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
