package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	PricingFree     = "free"
	PricingPaid     = "paid"
	PricingTrial    = "trial"
	PricingFreemium = "freemium"
)

// Module is an optionally-enabled feature unit. Core modules are permanently
// enabled and cannot be toggled off.
type Module struct {
	gorm.Model
	Name        string   `gorm:"not null" json:"name"`
	Slug        string   `gorm:"uniqueIndex;not null" json:"slug"`
	Description string   `gorm:"type:text" json:"description"`
	Icon        string   `gorm:"size:64" json:"icon"`
	IsCore bool `gorm:"not null;default:false" json:"is_core"`
	// No column default: gorm drops zero-valued fields that carry one from the
	// INSERT, which would store an explicit false as true.
	IsActive    bool     `gorm:"not null" json:"is_active"`
	PricingType string   `gorm:"size:16;not null;default:free" json:"pricing_type"`
	Price       *float64 `json:"price,omitempty"`
	TrialDays   *int     `json:"trial_days,omitempty"`
	Badge       string   `gorm:"size:32" json:"badge"`
}

// KitchenModule is a kitchen's opt-in to a non-core module. Absence of a row
// means disabled.
type KitchenModule struct {
	gorm.Model
	KitchenID   uint       `gorm:"uniqueIndex:idx_kitchen_module;not null" json:"kitchen_id"`
	ModuleID    uint       `gorm:"uniqueIndex:idx_kitchen_module;not null" json:"module_id"`
	IsEnabled   bool       `gorm:"not null;default:false" json:"is_enabled"`
	TrialEndsAt *time.Time `json:"trial_ends_at,omitempty"`
	Module      Module     `gorm:"foreignKey:ModuleID" json:"module,omitempty"`
}
