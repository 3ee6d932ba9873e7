package modules

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"mutfago/internal/apperr"
	"mutfago/models"
)

// Status is a module annotated with the kitchen's entitlement.
type Status struct {
	Module      models.Module `json:"module"`
	IsEnabled   bool          `json:"isEnabled"`
	CanToggle   bool          `json:"canToggle"`
	TrialEndsAt *time.Time    `json:"trialEndsAt,omitempty"`
}

// Toggle flips a kitchen's opt-in to a non-core module. The first enable of a
// trial module starts its clock.
func Toggle(ctx context.Context, db *gorm.DB, kitchenID, moduleID uint) (*models.KitchenModule, error) {
	var module models.Module
	if err := db.WithContext(ctx).First(&module, moduleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("module %d: %w", moduleID, apperr.ErrNotFound)
		}
		return nil, err
	}
	if module.IsCore {
		return nil, fmt.Errorf("module %q is core and always enabled: %w", module.Slug, apperr.ErrCoreModule)
	}

	var entitlement models.KitchenModule
	err := db.WithContext(ctx).
		Where("kitchen_id = ? AND module_id = ?", kitchenID, moduleID).
		First(&entitlement).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		entitlement = models.KitchenModule{
			KitchenID: kitchenID,
			ModuleID:  moduleID,
			IsEnabled: true,
		}
		if module.PricingType == models.PricingTrial && module.TrialDays != nil {
			ends := time.Now().UTC().AddDate(0, 0, *module.TrialDays)
			entitlement.TrialEndsAt = &ends
		}
		if err := db.WithContext(ctx).Create(&entitlement).Error; err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		updates := map[string]any{"is_enabled": !entitlement.IsEnabled}
		if !entitlement.IsEnabled && entitlement.TrialEndsAt == nil &&
			module.PricingType == models.PricingTrial && module.TrialDays != nil {
			ends := time.Now().UTC().AddDate(0, 0, *module.TrialDays)
			updates["trial_ends_at"] = ends
		}
		if err := db.WithContext(ctx).Model(&entitlement).Updates(updates).Error; err != nil {
			return nil, err
		}
		if err := db.WithContext(ctx).First(&entitlement, entitlement.ID).Error; err != nil {
			return nil, err
		}
	}

	return &entitlement, nil
}

// StatusForKitchen returns every module annotated with the kitchen's state.
// Core modules report enabled regardless of stored rows; canToggle holds only
// for active non-core modules.
func StatusForKitchen(ctx context.Context, db *gorm.DB, kitchenID uint) ([]Status, error) {
	var all []models.Module
	if err := db.WithContext(ctx).Order("is_core DESC, id ASC").Find(&all).Error; err != nil {
		return nil, err
	}

	var entitlements []models.KitchenModule
	if err := db.WithContext(ctx).Where("kitchen_id = ?", kitchenID).Find(&entitlements).Error; err != nil {
		return nil, err
	}
	byModule := make(map[uint]models.KitchenModule, len(entitlements))
	for _, e := range entitlements {
		byModule[e.ModuleID] = e
	}

	statuses := make([]Status, 0, len(all))
	for _, module := range all {
		status := Status{
			Module:    module,
			CanToggle: !module.IsCore && module.IsActive,
		}
		if module.IsCore {
			status.IsEnabled = true
		} else if entitlement, ok := byModule[module.ID]; ok {
			status.IsEnabled = entitlement.IsEnabled
			status.TrialEndsAt = entitlement.TrialEndsAt
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

// TrialsEndingWithin returns enabled trial entitlements expiring inside the
// window, with modules preloaded. The sweep job turns these into owner
// notifications.
func TrialsEndingWithin(ctx context.Context, db *gorm.DB, window time.Duration) ([]models.KitchenModule, error) {
	now := time.Now().UTC()
	deadline := now.Add(window)

	var entitlements []models.KitchenModule
	err := db.WithContext(ctx).
		Preload("Module").
		Where("is_enabled = ? AND trial_ends_at IS NOT NULL AND trial_ends_at > ? AND trial_ends_at <= ?", true, now, deadline).
		Find(&entitlements).Error
	return entitlements, err
}
