package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"mutfago/internal/apperr"
	"mutfago/internal/catalog"
	applog "mutfago/internal/log"
	"mutfago/internal/pantry"
	"mutfago/models"
)

// MarketResource handles /api/market and its sub-resources.
func MarketResource(w http.ResponseWriter, r *http.Request) {
	if database == nil {
		writeAPIError(w, http.StatusServiceUnavailable, "INTERNAL", "service unavailable")
		return
	}
	user, ok := currentAPIUser(r)
	if !ok {
		writeAPIError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return
	}

	segments := pathSegments(r, "/api/market")
	if len(segments) == 0 {
		switch r.Method {
		case http.MethodGet:
			listMarket(w, r, user.ID)
		case http.MethodPost:
			createMarketItem(w, r, user.ID)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
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
		deleteMarketItem(w, r, user.ID, itemID)
		return
	}

	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	switch segments[1] {
	case "done":
		markMarketItemDone(w, r, user.ID, itemID, false)
	case "purchase":
		markMarketItemDone(w, r, user.ID, itemID, true)
	default:
		http.NotFound(w, r)
	}
}

func loadMarketItem(r *http.Request, kitchenID, itemID uint) (*models.MarketItem, error) {
	var item models.MarketItem
	err := database.WithContext(r.Context()).
		Where("id = ? AND kitchen_id = ?", itemID, kitchenID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("market item %d: %w", itemID, apperr.ErrNotFound)
		}
		return nil, err
	}
	return &item, nil
}

func listMarket(w http.ResponseWriter, r *http.Request, userID uint) {
	kitchenID, ok := kitchenIDFromRequest(w, r, userID, 0)
	if !ok {
		return
	}

	query := database.WithContext(r.Context()).
		Where("kitchen_id = ?", kitchenID).
		Order("status ASC, created_at DESC")
	if status := strings.ToUpper(r.URL.Query().Get("status")); status == models.MarketStatusPending || status == models.MarketStatusDone {
		query = query.Where("status = ?", status)
	}

	var items []models.MarketItem
	if err := query.Find(&items).Error; err != nil {
		writeAppError(w, r, err)
		return
	}
	writeAPIData(w, http.StatusOK, items)
}

func createMarketItem(w http.ResponseWriter, r *http.Request, userID uint) {
	var payload struct {
		KitchenID uint    `json:"kitchen_id"`
		Name      string  `json:"name"`
		Category  string  `json:"category"`
		Quantity  float64 `json:"quantity"`
		Unit      string  `json:"unit"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		writeAPIError(w, http.StatusBadRequest, "VALIDATION", "invalid request payload")
		return
	}

	name := catalog.NormalizeItemName(payload.Name)
	if name == "" {
		writeAPIError(w, http.StatusBadRequest, "VALIDATION", "name is required")
		return
	}
	if payload.Quantity <= 0 {
		writeAPIError(w, http.StatusBadRequest, "VALIDATION", "quantity must be positive")
		return
	}

	kitchenID, ok := kitchenIDFromRequest(w, r, userID, payload.KitchenID)
	if !ok {
		return
	}

	unit := payload.Unit
	if unit == "" {
		unit = catalog.InferDefaultUnit(name, payload.Category)
	}

	item := models.MarketItem{
		KitchenID: kitchenID,
		Name:      name,
		Category:  catalog.NormalizeCategoryName(payload.Category),
		Quantity:  payload.Quantity,
		Unit:      unit,
		Status:    models.MarketStatusPending,
	}
	if err := database.WithContext(r.Context()).Create(&item).Error; err != nil {
		writeAppError(w, r, err)
		return
	}
	writeAPIData(w, http.StatusCreated, item)
}

// markMarketItemDone closes a shopping-list entry. With purchase set, the
// bought quantity also lands in the pantry.
func markMarketItemDone(w http.ResponseWriter, r *http.Request, userID, itemID uint, purchase bool) {
	var payload struct {
		KitchenID uint `json:"kitchen_id"`
	}
	// Body is optional for these transitions.
	_ = decodeJSON(r, &payload)

	kitchenID, ok := kitchenIDFromRequest(w, r, userID, payload.KitchenID)
	if !ok {
		return
	}

	item, err := loadMarketItem(r, kitchenID, itemID)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	if item.Status == models.MarketStatusDone {
		writeAppError(w, r, fmt.Errorf("market item %d is already done: %w", itemID, apperr.ErrConflict))
		return
	}

	if err := database.WithContext(r.Context()).
		Model(item).
		Update("status", models.MarketStatusDone).Error; err != nil {
		writeAppError(w, r, err)
		return
	}

	response := map[string]any{"item": item}
	if purchase {
		added, err := pantry.Add(r.Context(), database, kitchenID, pantry.AddInput{
			Name:     item.Name,
			Category: item.Category,
			Quantity: item.Quantity,
			Unit:     item.Unit,
		})
		if err != nil {
			applog.Error(r.Context(), "purchase could not stock the pantry", "item", itemID, "error", err)
			writeAppError(w, r, err)
			return
		}
		response["pantry_item"] = added
	}

	writeAPIData(w, http.StatusOK, response)
}

func deleteMarketItem(w http.ResponseWriter, r *http.Request, userID, itemID uint) {
	kitchenID, ok := kitchenIDFromRequest(w, r, userID, 0)
	if !ok {
		return
	}

	result := database.WithContext(r.Context()).
		Where("id = ? AND kitchen_id = ?", itemID, kitchenID).
		Delete(&models.MarketItem{})
	if result.Error != nil {
		writeAppError(w, r, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		writeAppError(w, r, fmt.Errorf("market item %d: %w", itemID, apperr.ErrNotFound))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
