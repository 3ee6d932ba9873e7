package catalog

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"mutfago/internal/apperr"
	"mutfago/models"
)

// Convert resolves a display conversion between two units using the seeded
// lookup table. Only explicitly seeded pairs resolve; there is no transitive
// path-finding, and stored quantities are never rewritten through this.
func Convert(ctx context.Context, db *gorm.DB, unitFrom, unitTo string, quantity float64) (float64, error) {
	if unitFrom == unitTo {
		return quantity, nil
	}

	var conversion models.UnitConversion
	err := db.WithContext(ctx).
		Where("unit_from = ? AND unit_to = ?", unitFrom, unitTo).
		First(&conversion).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("no conversion from %q to %q: %w", unitFrom, unitTo, apperr.ErrNotFound)
		}
		return 0, err
	}

	return quantity * conversion.Multiplier, nil
}
