package models

import (
	"time"

	"gorm.io/gorm"
)

// PantryItem is a tracked quantity of an ingredient physically on hand in a
// kitchen. Quantity never drops below zero; zero-quantity rows stay visible as
// out of stock.
type PantryItem struct {
	gorm.Model
	KitchenID       uint       `gorm:"uniqueIndex:idx_pantry_kitchen_name;not null" json:"kitchen_id"`
	Name            string     `gorm:"uniqueIndex:idx_pantry_kitchen_name;not null" json:"name"`
	Category        string     `json:"category"`
	Quantity        float64    `gorm:"not null" json:"quantity"`
	InitialQuantity float64    `gorm:"not null" json:"initial_quantity"`
	Unit            string     `gorm:"size:16;not null" json:"unit"`
	ExpiryDate      *time.Time `json:"expiry_date,omitempty"`
}
