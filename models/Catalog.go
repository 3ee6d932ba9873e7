package models

import "gorm.io/gorm"

// Category groups catalogue ingredients. Name is stored in canonical
// diacritic-preserving uppercase form.
type Category struct {
	gorm.Model
	Name string `gorm:"uniqueIndex;not null" json:"name"`
	Icon string `gorm:"size:64" json:"icon"`
}

// Ingredient is catalogue reference data. The same name may exist in two
// categories only as distinct rows.
type Ingredient struct {
	gorm.Model
	Name          string `gorm:"uniqueIndex:idx_ingredient_name_category;not null" json:"name"`
	CategoryID    uint   `gorm:"uniqueIndex:idx_ingredient_name_category;not null" json:"category_id"`
	DefaultUnit   string `gorm:"size:16;not null" json:"default_unit"`
	ShelfLifeDays *int   `json:"shelf_life_days,omitempty"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// UnitConversion is a flat display-only lookup between two units. Only the
// seeded pairs are resolvable; there is no transitive path-finding.
type UnitConversion struct {
	gorm.Model
	UnitFrom   string  `gorm:"uniqueIndex:idx_unit_pair;size:16;not null" json:"unit_from"`
	UnitTo     string  `gorm:"uniqueIndex:idx_unit_pair;size:16;not null" json:"unit_to"`
	Multiplier float64 `gorm:"not null" json:"multiplier"`
}

// SeedMigration records an applied catalogue seed step so seeding stays idempotent.
type SeedMigration struct {
	gorm.Model
	Key string `gorm:"uniqueIndex;not null"`
}
