package notify

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"mutfago/internal/apperr"
	"mutfago/models"
)

// Create appends a notification row for a user. Failures here are never fatal
// to the triggering workflow; callers log and move on.
func Create(ctx context.Context, db *gorm.DB, userID uint, kind, title, message string) error {
	notification := models.Notification{
		UserID:  userID,
		Type:    kind,
		Title:   title,
		Message: message,
	}
	return db.WithContext(ctx).Create(&notification).Error
}

// ListForUser returns a user's notifications, newest first.
func ListForUser(ctx context.Context, db *gorm.DB, userID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(100).
		Find(&notifications).Error
	return notifications, err
}

// MarkRead flips a single notification owned by the user.
func MarkRead(ctx context.Context, db *gorm.DB, userID, notificationID uint) error {
	result := db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("notification %d: %w", notificationID, apperr.ErrNotFound)
	}
	return nil
}

// ExistsSince reports whether the user already has a notification of the given
// type created at or after the cutoff. Sweep jobs use it to avoid repeating
// themselves within a day.
func ExistsSince(ctx context.Context, db *gorm.DB, userID uint, kind, title string, cutoff time.Time) (bool, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND type = ? AND title = ? AND created_at >= ?", userID, kind, title, cutoff).
		Count(&count).Error
	return count > 0, err
}
