package catalog

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"mutfago/internal/apperr"
	applog "mutfago/internal/log"
	"mutfago/models"
)

// UpsertCategory creates the category under its canonical name or updates the
// icon of an existing row.
func UpsertCategory(ctx context.Context, db *gorm.DB, name, icon string) (*models.Category, error) {
	canonical := NormalizeCategoryName(name)
	if canonical == "" {
		return nil, fmt.Errorf("category name is required: %w", apperr.ErrValidation)
	}

	var category models.Category
	err := db.WithContext(ctx).Where("name = ?", canonical).First(&category).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		category = models.Category{Name: canonical, Icon: icon}
		if err := db.WithContext(ctx).Create(&category).Error; err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		if icon != "" && icon != category.Icon {
			if err := db.WithContext(ctx).Model(&category).Update("icon", icon).Error; err != nil {
				return nil, err
			}
		}
	}

	return &category, nil
}

// UpsertIngredient creates or updates catalogue reference data keyed by the
// (name, category) natural key. An empty unit is inferred; a nil shelf life is
// inferred as well.
func UpsertIngredient(ctx context.Context, db *gorm.DB, name, categoryName, unit string, shelfLifeDays *int) (*models.Ingredient, error) {
	name = NormalizeItemName(name)
	if name == "" {
		return nil, fmt.Errorf("ingredient name is required: %w", apperr.ErrValidation)
	}

	category, err := UpsertCategory(ctx, db, categoryName, "")
	if err != nil {
		return nil, err
	}

	if unit == "" {
		unit = InferDefaultUnit(name, category.Name)
	}
	if shelfLifeDays == nil {
		shelfLifeDays = InferShelfLifeDays(name, category.Name)
	}

	var ingredient models.Ingredient
	err = db.WithContext(ctx).
		Where("name = ? AND category_id = ?", name, category.ID).
		First(&ingredient).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		ingredient = models.Ingredient{
			Name:          name,
			CategoryID:    category.ID,
			DefaultUnit:   unit,
			ShelfLifeDays: shelfLifeDays,
		}
		if err := db.WithContext(ctx).Create(&ingredient).Error; err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		updates := map[string]any{"default_unit": unit}
		if shelfLifeDays != nil {
			updates["shelf_life_days"] = *shelfLifeDays
		}
		if err := db.WithContext(ctx).Model(&ingredient).Updates(updates).Error; err != nil {
			return nil, err
		}
		applog.Debug(ctx, "ingredient updated in place", "name", name, "category", category.Name)
	}

	return &ingredient, nil
}
