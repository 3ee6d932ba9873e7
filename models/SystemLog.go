package models

import "gorm.io/gorm"

// SystemLog is an append-only audit row written on admin actions and system events.
type SystemLog struct {
	gorm.Model
	Type    string `gorm:"size:32;index;not null" json:"type"`
	Action  string `gorm:"size:64;not null" json:"action"`
	Details string `gorm:"type:text" json:"details"`
	UserID  *uint  `gorm:"index" json:"user_id,omitempty"`
}
