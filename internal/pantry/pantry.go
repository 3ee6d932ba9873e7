package pantry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"mutfago/internal/apperr"
	"mutfago/internal/catalog"
	applog "mutfago/internal/log"
	"mutfago/models"
)

// AddInput is one pantry line as supplied by the caller. An empty Unit is
// inferred from the name and category.
type AddInput struct {
	Name       string
	Category   string
	Quantity   float64
	Unit       string
	ExpiryDate *time.Time
}

// Add creates a stock row with InitialQuantity set to the added quantity, or
// increments the row already tracking (kitchenID, name). The stored unit wins
// on increment; mismatched-unit adds are not reconciled.
func Add(ctx context.Context, db *gorm.DB, kitchenID uint, input AddInput) (*models.PantryItem, error) {
	name := catalog.NormalizeItemName(input.Name)
	if name == "" {
		return nil, fmt.Errorf("item name is required: %w", apperr.ErrValidation)
	}
	if input.Quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive: %w", apperr.ErrValidation)
	}

	unit := input.Unit
	if unit == "" {
		unit = catalog.InferDefaultUnit(name, input.Category)
	}

	var item models.PantryItem
	err := db.WithContext(ctx).
		Where("kitchen_id = ? AND name = ?", kitchenID, name).
		First(&item).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		item = models.PantryItem{
			KitchenID:       kitchenID,
			Name:            name,
			Category:        catalog.NormalizeCategoryName(input.Category),
			Quantity:        input.Quantity,
			InitialQuantity: input.Quantity,
			Unit:            unit,
			ExpiryDate:      input.ExpiryDate,
		}
		if err := db.WithContext(ctx).Create(&item).Error; err != nil {
			// A concurrent Add for the same name may have created the row
			// between the lookup and this insert; retry into the increment.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return addToExisting(ctx, db, kitchenID, name, input)
			}
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		return addToExisting(ctx, db, kitchenID, name, input)
	}

	return &item, nil
}

// addToExisting increments the row tracking (kitchenID, name). The stored
// unit and InitialQuantity are untouched.
func addToExisting(ctx context.Context, db *gorm.DB, kitchenID uint, name string, input AddInput) (*models.PantryItem, error) {
	var item models.PantryItem
	if err := db.WithContext(ctx).
		Where("kitchen_id = ? AND name = ?", kitchenID, name).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("pantry row for %q vanished during add: %w", name, apperr.ErrConflict)
		}
		return nil, err
	}

	updates := map[string]any{"quantity": gorm.Expr("quantity + ?", input.Quantity)}
	if input.ExpiryDate != nil {
		updates["expiry_date"] = *input.ExpiryDate
	}
	if err := db.WithContext(ctx).Model(&item).Updates(updates).Error; err != nil {
		return nil, err
	}
	if err := db.WithContext(ctx).First(&item, item.ID).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Consume atomically decrements the stored quantity, flooring at zero.
// Zero-quantity rows stay on the shelf as out of stock.
func Consume(ctx context.Context, db *gorm.DB, kitchenID, itemID uint, amount float64) (*models.PantryItem, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("consume amount must be positive: %w", apperr.ErrValidation)
	}

	result := db.WithContext(ctx).
		Model(&models.PantryItem{}).
		Where("id = ? AND kitchen_id = ?", itemID, kitchenID).
		Update("quantity", gorm.Expr("CASE WHEN quantity - ? < 0 THEN 0 ELSE quantity - ? END", amount, amount))
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("pantry item %d: %w", itemID, apperr.ErrNotFound)
	}

	var item models.PantryItem
	if err := db.WithContext(ctx).First(&item, itemID).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Restock increments the stored quantity without touching InitialQuantity or
// the unit.
func Restock(ctx context.Context, db *gorm.DB, kitchenID, itemID uint, amount float64) (*models.PantryItem, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("restock amount must be positive: %w", apperr.ErrValidation)
	}

	result := db.WithContext(ctx).
		Model(&models.PantryItem{}).
		Where("id = ? AND kitchen_id = ?", itemID, kitchenID).
		Update("quantity", gorm.Expr("quantity + ?", amount))
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("pantry item %d: %w", itemID, apperr.ErrNotFound)
	}

	var item models.PantryItem
	if err := db.WithContext(ctx).First(&item, itemID).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// BulkLineResult reports the outcome of one BulkAdd line.
type BulkLineResult struct {
	Name  string             `json:"name"`
	Error string             `json:"error,omitempty"`
	Item  *models.PantryItem `json:"item,omitempty"`
}

// BulkAdd applies Add per line with no all-or-nothing guarantee. A bad line
// fails alone and the rest still apply.
func BulkAdd(ctx context.Context, db *gorm.DB, kitchenID uint, category string, lines []AddInput) []BulkLineResult {
	results := make([]BulkLineResult, 0, len(lines))
	for _, line := range lines {
		if line.Category == "" {
			line.Category = category
		}
		item, err := Add(ctx, db, kitchenID, line)
		if err != nil {
			applog.Warn(ctx, "bulk add line failed", "name", line.Name, "error", err)
			results = append(results, BulkLineResult{Name: line.Name, Error: err.Error()})
			continue
		}
		results = append(results, BulkLineResult{Name: item.Name, Item: item})
	}
	return results
}

// List returns a kitchen's stock ordered by name.
func List(ctx context.Context, db *gorm.DB, kitchenID uint) ([]models.PantryItem, error) {
	var items []models.PantryItem
	err := db.WithContext(ctx).
		Where("kitchen_id = ?", kitchenID).
		Order("name ASC").
		Find(&items).Error
	return items, err
}

// Delete removes a stock row explicitly. The delete is unscoped: a
// soft-deleted row would keep occupying the (kitchen_id, name) unique index
// and block tracking the same item again later.
func Delete(ctx context.Context, db *gorm.DB, kitchenID, itemID uint) error {
	result := db.WithContext(ctx).
		Unscoped().
		Where("id = ? AND kitchen_id = ?", itemID, kitchenID).
		Delete(&models.PantryItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("pantry item %d: %w", itemID, apperr.ErrNotFound)
	}
	return nil
}

// ExpiringSoon returns items whose expiry date falls within the window.
func ExpiringSoon(ctx context.Context, db *gorm.DB, window time.Duration) ([]models.PantryItem, error) {
	deadline := time.Now().UTC().Add(window)
	var items []models.PantryItem
	err := db.WithContext(ctx).
		Where("expiry_date IS NOT NULL AND expiry_date <= ? AND quantity > 0", deadline).
		Find(&items).Error
	return items, err
}
