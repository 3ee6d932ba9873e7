package audit

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"

	applog "mutfago/internal/log"
	"mutfago/models"
)

// Record appends a SystemLog row. Details marshal to JSON; a failed write is
// logged but never fails the action being audited.
func Record(ctx context.Context, db *gorm.DB, logType, action string, userID *uint, details any) {
	payload := "{}"
	if details != nil {
		raw, err := json.Marshal(details)
		if err != nil {
			applog.Warn(ctx, "audit details not serialisable", "action", action, "error", err)
		} else {
			payload = string(raw)
		}
	}

	entry := models.SystemLog{
		Type:    logType,
		Action:  action,
		Details: payload,
		UserID:  userID,
	}
	if err := db.WithContext(ctx).Create(&entry).Error; err != nil {
		applog.Error(ctx, "audit write failed", "action", action, "error", err)
	}
}

// Recent returns the newest audit entries for the admin back-office.
func Recent(ctx context.Context, db *gorm.DB, limit int) ([]models.SystemLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var entries []models.SystemLog
	err := db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}
