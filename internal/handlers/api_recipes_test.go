package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"mutfago/models"
)

func TestRecipeLifecycle(t *testing.T) {
	db, cleanup := withTestDatabase(t)
	t.Cleanup(cleanup)
	t.Cleanup(withTestAuthSecret(t))

	owner := createTestUser(t, db, "owner@example.com", false)

	rec := doAPI(t, RecipesResource, apiRequest(t, http.MethodPost, "/api/recipes", map[string]any{
		"title":    "Menemen",
		"servings": 2,
		"ingredients": []map[string]any{
			{"name": "Yumurta", "quantity": 3, "unit": "adet"},
			{"name": "Domates", "quantity": 2, "unit": "adet"},
		},
		"instructions": []string{"Domatesleri doğrayın.", "Yumurtaları ekleyin."},
		"tags":         []string{"kahvaltı"},
	}, owner))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d body=%s", rec.Code, rec.Body.String())
	}
	var recipe models.Recipe
	dataAs(t, decodeEnvelope(t, rec), &recipe)
	if len(recipe.Ingredients) != 2 || len(recipe.Instructions) != 2 || len(recipe.Tags) != 1 {
		t.Fatalf("recipe = %+v", recipe)
	}

	// Update replaces the children wholesale.
	rec = doAPI(t, RecipesResource, apiRequest(t, http.MethodPut, fmt.Sprintf("/api/recipes/%d", recipe.ID), map[string]any{
		"title": "Menemen (soğanlı)",
		"ingredients": []map[string]any{
			{"name": "Yumurta", "quantity": 3, "unit": "adet"},
			{"name": "Domates", "quantity": 2, "unit": "adet"},
			{"name": "Soğan", "quantity": 1, "unit": "adet"},
		},
		"instructions": []string{"Soğanları kavurun.", "Domatesleri doğrayın.", "Yumurtaları ekleyin."},
		"tags":         []string{"kahvaltı", "pratik"},
	}, owner))
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d body=%s", rec.Code, rec.Body.String())
	}
	dataAs(t, decodeEnvelope(t, rec), &recipe)
	if recipe.Title != "Menemen (soğanlı)" || len(recipe.Ingredients) != 3 || len(recipe.Tags) != 2 {
		t.Fatalf("updated recipe = %+v", recipe)
	}
	if recipe.Ingredients[2].Name != "Soğan" || recipe.Ingredients[2].Order != 3 {
		t.Fatalf("ingredient order = %+v", recipe.Ingredients)
	}

	var ingredientCount int64
	db.Model(&models.RecipeIngredient{}).Where("recipe_id = ?", recipe.ID).Count(&ingredientCount)
	if ingredientCount != 3 {
		t.Fatalf("stored ingredients = %d, want 3", ingredientCount)
	}

	// Recipes are private to their author.
	other := createTestUser(t, db, "other@example.com", false)
	rec = doAPI(t, RecipesResource, apiRequest(t, http.MethodGet, fmt.Sprintf("/api/recipes/%d", recipe.ID), nil, other))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("foreign show status = %d, want 404", rec.Code)
	}

	rec = doAPI(t, RecipesResource, apiRequest(t, http.MethodDelete, fmt.Sprintf("/api/recipes/%d", recipe.ID), nil, owner))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}
	rec = doAPI(t, RecipesResource, apiRequest(t, http.MethodGet, fmt.Sprintf("/api/recipes/%d", recipe.ID), nil, owner))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("show after delete status = %d, want 404", rec.Code)
	}
}

func TestRecipeListFiltersByTag(t *testing.T) {
	db, cleanup := withTestDatabase(t)
	t.Cleanup(cleanup)
	t.Cleanup(withTestAuthSecret(t))

	owner := createTestUser(t, db, "owner@example.com", false)

	for _, seed := range []map[string]any{
		{"title": "Menemen", "tags": []string{"kahvaltı"}},
		{"title": "Mercimek Çorbası", "tags": []string{"çorba"}},
	} {
		rec := doAPI(t, RecipesResource, apiRequest(t, http.MethodPost, "/api/recipes", seed, owner))
		if rec.Code != http.StatusCreated {
			t.Fatalf("seed status = %d body=%s", rec.Code, rec.Body.String())
		}
	}

	rec := doAPI(t, RecipesResource, apiRequest(t, http.MethodGet, "/api/recipes?tag=çorba", nil, owner))
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d body=%s", rec.Code, rec.Body.String())
	}
	var recipes []models.Recipe
	dataAs(t, decodeEnvelope(t, rec), &recipes)
	if len(recipes) != 1 || recipes[0].Title != "Mercimek Çorbası" {
		t.Fatalf("recipes = %+v", recipes)
	}
}
