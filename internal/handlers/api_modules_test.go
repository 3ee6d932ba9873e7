package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"mutfago/models"
)

func TestModuleStatusDefaults(t *testing.T) {
	db, cleanup := withTestDatabase(t)
	t.Cleanup(cleanup)
	t.Cleanup(withTestAuthSecret(t))

	owner := createTestUser(t, db, "owner@example.com", false)
	created := createKitchenWithOwner(t, owner)

	trialDays := 14
	for _, module := range []models.Module{
		{Slug: "pantry", Name: "Kiler", IsCore: true, IsActive: true},
		{Slug: "recipes", Name: "Tarifler", IsActive: true, PricingType: models.PricingTrial, TrialDays: &trialDays},
		{Slug: "legacy", Name: "Eski", IsActive: false},
	} {
		if err := db.Create(&module).Error; err != nil {
			t.Fatalf("create module: %v", err)
		}
	}

	rec := doAPI(t, ModulesResource, apiRequest(t, http.MethodGet, fmt.Sprintf("/api/modules?kitchenId=%d", created.ID), nil, owner))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}

	var statuses []struct {
		Module    models.Module `json:"module"`
		IsEnabled bool          `json:"isEnabled"`
		CanToggle bool          `json:"canToggle"`
	}
	dataAs(t, decodeEnvelope(t, rec), &statuses)

	bySlug := map[string]struct {
		enabled, toggle bool
	}{}
	for _, status := range statuses {
		bySlug[status.Module.Slug] = struct{ enabled, toggle bool }{status.IsEnabled, status.CanToggle}
	}

	// Core modules are always on and never togglable; optional ones default off.
	if got := bySlug["pantry"]; !got.enabled || got.toggle {
		t.Fatalf("pantry = %+v", got)
	}
	if got := bySlug["recipes"]; got.enabled || !got.toggle {
		t.Fatalf("recipes = %+v", got)
	}
	if got := bySlug["legacy"]; got.enabled || got.toggle {
		t.Fatalf("legacy = %+v", got)
	}
}

func TestToggleCoreModuleRefused(t *testing.T) {
	db, cleanup := withTestDatabase(t)
	t.Cleanup(cleanup)
	t.Cleanup(withTestAuthSecret(t))

	owner := createTestUser(t, db, "owner@example.com", false)
	created := createKitchenWithOwner(t, owner)

	core := models.Module{Slug: "pantry", Name: "Kiler", IsCore: true, IsActive: true}
	if err := db.Create(&core).Error; err != nil {
		t.Fatalf("create module: %v", err)
	}

	rec := doAPI(t, ModulesResource, apiRequest(t, http.MethodPost, fmt.Sprintf("/api/modules/%d/toggle", core.ID), map[string]uint{"kitchen_id": created.ID}, owner))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	envelope := decodeEnvelope(t, rec)
	if envelope.Error == nil || envelope.Error.Code != "CORE_MODULE" {
		t.Fatalf("error = %+v", envelope.Error)
	}
}

func TestToggleOptionalModuleStartsTrial(t *testing.T) {
	db, cleanup := withTestDatabase(t)
	t.Cleanup(cleanup)
	t.Cleanup(withTestAuthSecret(t))

	owner := createTestUser(t, db, "owner@example.com", false)
	created := createKitchenWithOwner(t, owner)

	trialDays := 14
	module := models.Module{Slug: "recipes", Name: "Tarifler", IsActive: true, PricingType: models.PricingTrial, TrialDays: &trialDays}
	if err := db.Create(&module).Error; err != nil {
		t.Fatalf("create module: %v", err)
	}

	rec := doAPI(t, ModulesResource, apiRequest(t, http.MethodPost, fmt.Sprintf("/api/modules/%d/toggle", module.ID), map[string]uint{"kitchen_id": created.ID}, owner))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	var entitlement models.KitchenModule
	dataAs(t, decodeEnvelope(t, rec), &entitlement)
	if !entitlement.IsEnabled || entitlement.TrialEndsAt == nil {
		t.Fatalf("entitlement = %+v", entitlement)
	}

	// A second toggle turns it off without creating a second row.
	rec = doAPI(t, ModulesResource, apiRequest(t, http.MethodPost, fmt.Sprintf("/api/modules/%d/toggle", module.ID), map[string]uint{"kitchen_id": created.ID}, owner))
	if rec.Code != http.StatusOK {
		t.Fatalf("second toggle status = %d body=%s", rec.Code, rec.Body.String())
	}
	dataAs(t, decodeEnvelope(t, rec), &entitlement)
	if entitlement.IsEnabled {
		t.Fatalf("entitlement still enabled: %+v", entitlement)
	}
	var count int64
	db.Model(&models.KitchenModule{}).Where("kitchen_id = ?", created.ID).Count(&count)
	if count != 1 {
		t.Fatalf("entitlement rows = %d, want 1", count)
	}
}
