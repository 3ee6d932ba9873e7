package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"mutfago/internal/audit"
	"mutfago/internal/catalog"
	"mutfago/models"
)

type adminUserResponse struct {
	ID      uint   `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	IsAdmin bool   `json:"is_admin"`
}

// AdminResource serves the back-office endpoints. The router wraps it with
// RequireAdmin, so every caller here is an authenticated administrator.
func AdminResource(w http.ResponseWriter, r *http.Request) {
	if database == nil {
		writeAPIError(w, http.StatusServiceUnavailable, "INTERNAL", "service unavailable")
		return
	}
	admin, ok := currentAPIUser(r)
	if !ok {
		writeAPIError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return
	}

	segments := pathSegments(r, "/api/admin")
	if len(segments) != 1 {
		http.NotFound(w, r)
		return
	}

	switch segments[0] {
	case "users":
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		adminListUsers(w, r)
	case "logs":
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		adminListLogs(w, r)
	case "categories":
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		adminUpsertCategory(w, r, admin.ID)
	case "ingredients":
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		adminUpsertIngredient(w, r, admin.ID)
	case "modules":
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		adminUpsertModule(w, r, admin.ID)
	default:
		http.NotFound(w, r)
	}
}

func adminListUsers(w http.ResponseWriter, r *http.Request) {
	var users []models.User
	if err := database.WithContext(r.Context()).Order("id ASC").Find(&users).Error; err != nil {
		writeAppError(w, r, err)
		return
	}
	responses := make([]adminUserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, adminUserResponse{
			ID:      user.ID,
			Email:   user.Email,
			Name:    user.Name,
			IsAdmin: user.IsAdmin,
		})
	}
	writeAPIData(w, http.StatusOK, responses)
}

func adminListLogs(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}

	entries, err := audit.Recent(r.Context(), database, limit)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeAPIData(w, http.StatusOK, entries)
}

func adminUpsertCategory(w http.ResponseWriter, r *http.Request, adminID uint) {
	var payload struct {
		Name string `json:"name"`
		Icon string `json:"icon"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		writeAPIError(w, http.StatusBadRequest, "VALIDATION", "invalid request payload")
		return
	}

	category, err := catalog.UpsertCategory(r.Context(), database, payload.Name, payload.Icon)
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	audit.Record(r.Context(), database, "admin", "category_upserted", &adminID, map[string]any{"category": category.Name})
	writeAPIData(w, http.StatusOK, category)
}

func adminUpsertIngredient(w http.ResponseWriter, r *http.Request, adminID uint) {
	var payload struct {
		Name          string `json:"name"`
		Category      string `json:"category"`
		Unit          string `json:"unit"`
		ShelfLifeDays *int   `json:"shelf_life_days"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		writeAPIError(w, http.StatusBadRequest, "VALIDATION", "invalid request payload")
		return
	}

	ingredient, err := catalog.UpsertIngredient(r.Context(), database, payload.Name, payload.Category, payload.Unit, payload.ShelfLifeDays)
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	audit.Record(r.Context(), database, "admin", "ingredient_upserted", &adminID, map[string]any{"ingredient": ingredient.Name})
	writeAPIData(w, http.StatusOK, ingredient)
}

func adminUpsertModule(w http.ResponseWriter, r *http.Request, adminID uint) {
	var payload struct {
		Name        string   `json:"name"`
		Slug        string   `json:"slug"`
		Description string   `json:"description"`
		Icon        string   `json:"icon"`
		IsCore      bool     `json:"is_core"`
		IsActive    bool     `json:"is_active"`
		PricingType string   `json:"pricing_type"`
		Price       *float64 `json:"price"`
		TrialDays   *int     `json:"trial_days"`
		Badge       string   `json:"badge"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		writeAPIError(w, http.StatusBadRequest, "VALIDATION", "invalid request payload")
		return
	}

	slug := strings.ToLower(strings.TrimSpace(payload.Slug))
	name := strings.TrimSpace(payload.Name)
	if slug == "" || name == "" {
		writeAPIError(w, http.StatusBadRequest, "VALIDATION", "name and slug are required")
		return
	}
	pricing := payload.PricingType
	if pricing == "" {
		pricing = models.PricingFree
	}

	var module models.Module
	err := database.WithContext(r.Context()).Where("slug = ?", slug).First(&module).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		module = models.Module{
			Name:        name,
			Slug:        slug,
			Description: payload.Description,
			Icon:        payload.Icon,
			IsCore:      payload.IsCore,
			IsActive:    payload.IsActive,
			PricingType: pricing,
			Price:       payload.Price,
			TrialDays:   payload.TrialDays,
			Badge:       payload.Badge,
		}
		if err := database.WithContext(r.Context()).Create(&module).Error; err != nil {
			writeAppError(w, r, err)
			return
		}
	case err != nil:
		writeAppError(w, r, err)
		return
	default:
		updates := map[string]any{
			"name":         name,
			"description":  payload.Description,
			"icon":         payload.Icon,
			"is_core":      payload.IsCore,
			"is_active":    payload.IsActive,
			"pricing_type": pricing,
			"badge":        payload.Badge,
		}
		if payload.Price != nil {
			updates["price"] = *payload.Price
		}
		if payload.TrialDays != nil {
			updates["trial_days"] = *payload.TrialDays
		}
		if err := database.WithContext(r.Context()).Model(&module).Updates(updates).Error; err != nil {
			writeAppError(w, r, err)
			return
		}
	}

	audit.Record(r.Context(), database, "admin", "module_upserted", &adminID, map[string]any{"slug": module.Slug})
	writeAPIData(w, http.StatusOK, module)
}
