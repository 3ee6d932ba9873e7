package models

import "gorm.io/gorm"

const (
	MarketStatusPending = "PENDING"
	MarketStatusDone    = "DONE"
)

// MarketItem is a shopping-list entry awaiting purchase.
type MarketItem struct {
	gorm.Model
	KitchenID uint    `gorm:"index;not null" json:"kitchen_id"`
	Name      string  `gorm:"not null" json:"name"`
	Category  string  `json:"category"`
	Quantity  float64 `gorm:"not null" json:"quantity"`
	Unit      string  `gorm:"size:16;not null" json:"unit"`
	Status    string  `gorm:"size:16;not null;default:PENDING" json:"status"`
}
