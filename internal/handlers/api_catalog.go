package handlers

import (
	"net/http"
	"strings"

	"mutfago/internal/catalog"
	"mutfago/models"
)

// CatalogResource serves the shared reference data: categories, ingredients
// and the default-unit inference endpoint.
func CatalogResource(w http.ResponseWriter, r *http.Request) {
	if database == nil {
		writeAPIError(w, http.StatusServiceUnavailable, "INTERNAL", "service unavailable")
		return
	}
	if _, ok := currentAPIUser(r); !ok {
		writeAPIError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return
	}
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	segments := pathSegments(r, "/api/catalog")
	if len(segments) != 1 {
		http.NotFound(w, r)
		return
	}

	switch segments[0] {
	case "categories":
		listCategories(w, r)
	case "ingredients":
		listIngredients(w, r)
	case "infer-unit":
		inferUnit(w, r)
	default:
		http.NotFound(w, r)
	}
}

func listCategories(w http.ResponseWriter, r *http.Request) {
	var categories []models.Category
	if err := database.WithContext(r.Context()).Order("name ASC").Find(&categories).Error; err != nil {
		writeAppError(w, r, err)
		return
	}
	writeAPIData(w, http.StatusOK, categories)
}

func listIngredients(w http.ResponseWriter, r *http.Request) {
	query := database.WithContext(r.Context()).Preload("Category").Order("name ASC")
	if category := strings.TrimSpace(r.URL.Query().Get("category")); category != "" {
		query = query.
			Joins("JOIN categories ON categories.id = ingredients.category_id").
			Where("categories.name = ?", catalog.NormalizeCategoryName(category))
	}

	var ingredients []models.Ingredient
	if err := query.Find(&ingredients).Error; err != nil {
		writeAppError(w, r, err)
		return
	}
	writeAPIData(w, http.StatusOK, ingredients)
}

func inferUnit(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		writeAPIError(w, http.StatusBadRequest, "VALIDATION", "name is required")
		return
	}
	category := r.URL.Query().Get("category")

	writeAPIData(w, http.StatusOK, map[string]any{
		"name":            name,
		"category":        catalog.NormalizeCategoryName(category),
		"unit":            catalog.InferDefaultUnit(name, category),
		"shelf_life_days": catalog.InferShelfLifeDays(name, category),
	})
}
