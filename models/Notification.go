package models

import "gorm.io/gorm"

const (
	NotificationJoinRequest    = "join_request"
	NotificationJoinResolved   = "join_resolved"
	NotificationTrialEnding    = "trial_ending"
	NotificationPantryExpiring = "pantry_expiring"
)

// Notification is a per-user message row polled by the client.
type Notification struct {
	gorm.Model
	UserID  uint   `gorm:"index;not null" json:"user_id"`
	Type    string `gorm:"size:32;not null" json:"type"`
	Title   string `gorm:"not null" json:"title"`
	Message string `gorm:"type:text" json:"message"`
	IsRead  bool   `gorm:"not null;default:false" json:"is_read"`
}
