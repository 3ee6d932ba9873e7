package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"mutfago/internal/apperr"
	"mutfago/models"
)

type recipeIngredientPayload struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

type recipePayload struct {
	Title        string                    `json:"title"`
	Description  string                    `json:"description"`
	Servings     int                       `json:"servings"`
	PrepMinutes  int                       `json:"prep_minutes"`
	CookMinutes  int                       `json:"cook_minutes"`
	Image        string                    `json:"image"`
	Ingredients  []recipeIngredientPayload `json:"ingredients"`
	Instructions []string                  `json:"instructions"`
	Tags         []string                  `json:"tags"`
}

// RecipesResource handles /api/recipes and single-recipe operations.
func RecipesResource(w http.ResponseWriter, r *http.Request) {
	if database == nil {
		writeAPIError(w, http.StatusServiceUnavailable, "INTERNAL", "service unavailable")
		return
	}
	user, ok := currentAPIUser(r)
	if !ok {
		writeAPIError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return
	}

	segments := pathSegments(r, "/api/recipes")
	if len(segments) == 0 {
		switch r.Method {
		case http.MethodGet:
			listRecipes(w, r, user.ID)
		case http.MethodPost:
			createRecipe(w, r, user.ID)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	recipeID, ok := parseID(segments[0])
	if !ok || len(segments) != 1 {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		showRecipe(w, r, user.ID, recipeID)
	case http.MethodPut:
		updateRecipe(w, r, user.ID, recipeID)
	case http.MethodDelete:
		deleteRecipe(w, r, user.ID, recipeID)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func loadOwnedRecipe(r *http.Request, userID, recipeID uint, preload bool) (*models.Recipe, error) {
	query := database.WithContext(r.Context())
	if preload {
		query = query.
			Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("\"order\" ASC") }).
			Preload("Instructions", func(db *gorm.DB) *gorm.DB { return db.Order("step_number ASC") }).
			Preload("Tags")
	}

	var recipe models.Recipe
	err := query.Where("id = ? AND user_id = ?", recipeID, userID).First(&recipe).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("recipe %d: %w", recipeID, apperr.ErrNotFound)
		}
		return nil, err
	}
	return &recipe, nil
}

func listRecipes(w http.ResponseWriter, r *http.Request, userID uint) {
	query := database.WithContext(r.Context()).
		Preload("Tags").
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if tag := strings.TrimSpace(r.URL.Query().Get("tag")); tag != "" {
		query = query.
			Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Where("recipe_tags.name = ? AND recipe_tags.deleted_at IS NULL", tag)
	}

	var recipes []models.Recipe
	if err := query.Find(&recipes).Error; err != nil {
		writeAppError(w, r, err)
		return
	}
	writeAPIData(w, http.StatusOK, recipes)
}

func showRecipe(w http.ResponseWriter, r *http.Request, userID, recipeID uint) {
	recipe, err := loadOwnedRecipe(r, userID, recipeID, true)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeAPIData(w, http.StatusOK, recipe)
}

func buildRecipeChildren(recipe *models.Recipe, payload recipePayload) {
	recipe.Ingredients = make([]models.RecipeIngredient, 0, len(payload.Ingredients))
	for i, ingredient := range payload.Ingredients {
		name := strings.TrimSpace(ingredient.Name)
		if name == "" {
			continue
		}
		recipe.Ingredients = append(recipe.Ingredients, models.RecipeIngredient{
			Order:    i + 1,
			Name:     name,
			Quantity: ingredient.Quantity,
			Unit:     ingredient.Unit,
		})
	}

	recipe.Instructions = make([]models.RecipeInstruction, 0, len(payload.Instructions))
	for i, text := range payload.Instructions {
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			continue
		}
		recipe.Instructions = append(recipe.Instructions, models.RecipeInstruction{
			StepNumber: i + 1,
			Text:       trimmed,
		})
	}

	recipe.Tags = make([]models.RecipeTag, 0, len(payload.Tags))
	for _, tag := range payload.Tags {
		trimmed := strings.TrimSpace(tag)
		if trimmed == "" {
			continue
		}
		recipe.Tags = append(recipe.Tags, models.RecipeTag{Name: trimmed})
	}
}

func createRecipe(w http.ResponseWriter, r *http.Request, userID uint) {
	var payload recipePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeAPIError(w, http.StatusBadRequest, "VALIDATION", "invalid request payload")
		return
	}
	title := strings.TrimSpace(payload.Title)
	if title == "" {
		writeAPIError(w, http.StatusBadRequest, "VALIDATION", "title is required")
		return
	}

	recipe := models.Recipe{
		UserID:      userID,
		Title:       title,
		Description: strings.TrimSpace(payload.Description),
		Servings:    payload.Servings,
		PrepMinutes: payload.PrepMinutes,
		CookMinutes: payload.CookMinutes,
		Image:       strings.TrimSpace(payload.Image),
	}
	buildRecipeChildren(&recipe, payload)

	if err := database.WithContext(r.Context()).Create(&recipe).Error; err != nil {
		writeAppError(w, r, err)
		return
	}
	writeAPIData(w, http.StatusCreated, recipe)
}

func updateRecipe(w http.ResponseWriter, r *http.Request, userID, recipeID uint) {
	recipe, err := loadOwnedRecipe(r, userID, recipeID, false)
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	var payload recipePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeAPIError(w, http.StatusBadRequest, "VALIDATION", "invalid request payload")
		return
	}
	title := strings.TrimSpace(payload.Title)
	if title == "" {
		writeAPIError(w, http.StatusBadRequest, "VALIDATION", "title is required")
		return
	}

	err = database.WithContext(r.Context()).Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{
			"title":        title,
			"description":  strings.TrimSpace(payload.Description),
			"servings":     payload.Servings,
			"prep_minutes": payload.PrepMinutes,
			"cook_minutes": payload.CookMinutes,
			"image":        strings.TrimSpace(payload.Image),
		}
		if err := tx.Model(recipe).Updates(updates).Error; err != nil {
			return err
		}

		// Children are replaced wholesale on update.
		for _, child := range []any{&models.RecipeIngredient{}, &models.RecipeInstruction{}, &models.RecipeTag{}} {
			if err := tx.Unscoped().Where("recipe_id = ?", recipe.ID).Delete(child).Error; err != nil {
				return err
			}
		}

		replacement := models.Recipe{}
		buildRecipeChildren(&replacement, payload)
		for i := range replacement.Ingredients {
			replacement.Ingredients[i].RecipeID = recipe.ID
		}
		for i := range replacement.Instructions {
			replacement.Instructions[i].RecipeID = recipe.ID
		}
		for i := range replacement.Tags {
			replacement.Tags[i].RecipeID = recipe.ID
		}
		if len(replacement.Ingredients) > 0 {
			if err := tx.Create(&replacement.Ingredients).Error; err != nil {
				return err
			}
		}
		if len(replacement.Instructions) > 0 {
			if err := tx.Create(&replacement.Instructions).Error; err != nil {
				return err
			}
		}
		if len(replacement.Tags) > 0 {
			if err := tx.Create(&replacement.Tags).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	updated, err := loadOwnedRecipe(r, userID, recipeID, true)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeAPIData(w, http.StatusOK, updated)
}

func deleteRecipe(w http.ResponseWriter, r *http.Request, userID, recipeID uint) {
	recipe, err := loadOwnedRecipe(r, userID, recipeID, false)
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	if err := database.WithContext(r.Context()).Delete(recipe).Error; err != nil {
		writeAppError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
