package kitchen

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"mutfago/internal/apperr"
	applog "mutfago/internal/log"
	"mutfago/internal/notify"
	"mutfago/models"
)

const inviteCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const inviteCodeLength = 6

// newInviteCode returns a random 6-character uppercase code. Ambiguous glyphs
// (O/0, I/1) are left out of the alphabet.
func newInviteCode() (string, error) {
	buf := make([]byte, inviteCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate invite code: %w", err)
	}
	var sb strings.Builder
	for _, b := range buf {
		sb.WriteByte(inviteCodeAlphabet[int(b)%len(inviteCodeAlphabet)])
	}
	return sb.String(), nil
}

// Create opens a kitchen owned by the given user. The invite code and the
// owner's member row are written in one transaction; a code collision is
// retried a few times before giving up.
func Create(ctx context.Context, db *gorm.DB, ownerID uint, name string) (*models.Kitchen, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("kitchen name is required: %w", apperr.ErrValidation)
	}

	var created models.Kitchen
	for attempt := 0; attempt < 5; attempt++ {
		code, err := newInviteCode()
		if err != nil {
			return nil, err
		}

		err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			kitchen := models.Kitchen{
				Name:       name,
				InviteCode: code,
				OwnerID:    ownerID,
				Status:     models.KitchenStatusActive,
			}
			if err := tx.Create(&kitchen).Error; err != nil {
				return err
			}
			member := models.KitchenMember{
				KitchenID: kitchen.ID,
				UserID:    ownerID,
				Role:      models.RoleOwner,
			}
			if err := tx.Create(&member).Error; err != nil {
				return err
			}
			// The first kitchen becomes the user's default scope.
			if err := tx.Model(&models.User{}).
				Where("id = ? AND default_kitchen_id IS NULL", ownerID).
				Update("default_kitchen_id", kitchen.ID).Error; err != nil {
				return err
			}
			created = kitchen
			return nil
		})
		if err == nil {
			return &created, nil
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			applog.Warn(ctx, "invite code collision, retrying", "code", code)
			continue
		}
		return nil, err
	}
	return nil, fmt.Errorf("could not allocate a unique invite code: %w", apperr.ErrConflict)
}

// ForUser returns the kitchens the user belongs to, owned first.
func ForUser(ctx context.Context, db *gorm.DB, userID uint) ([]models.Kitchen, error) {
	var kitchens []models.Kitchen
	err := db.WithContext(ctx).
		Joins("JOIN kitchen_members ON kitchen_members.kitchen_id = kitchens.id").
		Where("kitchen_members.user_id = ? AND kitchen_members.deleted_at IS NULL", userID).
		Order("kitchens.id ASC").
		Find(&kitchens).Error
	return kitchens, err
}

// IsMember reports whether the user holds any role in the kitchen.
func IsMember(ctx context.Context, db *gorm.DB, kitchenID, userID uint) (bool, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&models.KitchenMember{}).
		Where("kitchen_id = ? AND user_id = ?", kitchenID, userID).
		Count(&count).Error
	return count > 0, err
}

// RequireOwner loads the kitchen and checks the caller owns it.
func RequireOwner(ctx context.Context, db *gorm.DB, kitchenID, userID uint) (*models.Kitchen, error) {
	var kitchen models.Kitchen
	if err := db.WithContext(ctx).First(&kitchen, kitchenID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("kitchen %d: %w", kitchenID, apperr.ErrNotFound)
		}
		return nil, err
	}
	if kitchen.OwnerID != userID {
		return nil, fmt.Errorf("user %d does not own kitchen %d: %w", userID, kitchenID, apperr.ErrForbidden)
	}
	return &kitchen, nil
}

// Members lists a kitchen's member rows with their users preloaded.
func Members(ctx context.Context, db *gorm.DB, kitchenID uint) ([]models.KitchenMember, error) {
	var members []models.KitchenMember
	err := db.WithContext(ctx).
		Preload("User").
		Where("kitchen_id = ?", kitchenID).
		Order("role ASC, id ASC").
		Find(&members).Error
	return members, err
}

// SubmitJoinRequest files a PENDING request against the kitchen behind the
// invite code. A second submission while one is already PENDING conflicts.
func SubmitJoinRequest(ctx context.Context, db *gorm.DB, userID uint, inviteCode string) (*models.KitchenJoinRequest, error) {
	inviteCode = strings.ToUpper(strings.TrimSpace(inviteCode))
	if inviteCode == "" {
		return nil, fmt.Errorf("invite code is required: %w", apperr.ErrValidation)
	}

	var kitchen models.Kitchen
	err := db.WithContext(ctx).Where("invite_code = ?", inviteCode).First(&kitchen).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("no kitchen with invite code %q: %w", inviteCode, apperr.ErrNotFound)
		}
		return nil, err
	}

	member, err := IsMember(ctx, db, kitchen.ID, userID)
	if err != nil {
		return nil, err
	}
	if member {
		return nil, fmt.Errorf("already a member of kitchen %d: %w", kitchen.ID, apperr.ErrAlreadyMember)
	}

	// The partial unique index on (kitchen_id, user_id) WHERE status = PENDING
	// is the real guard; concurrent submissions lose with a duplicate key.
	request := models.KitchenJoinRequest{
		KitchenID: kitchen.ID,
		UserID:    userID,
		Status:    models.JoinRequestPending,
	}
	if err := db.WithContext(ctx).Create(&request).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("join request already pending: %w", apperr.ErrConflict)
		}
		return nil, err
	}

	if err := notify.Create(ctx, db, kitchen.OwnerID, models.NotificationJoinRequest,
		"Yeni katılım isteği", fmt.Sprintf("%s mutfağına yeni bir katılım isteği var.", kitchen.Name)); err != nil {
		applog.Warn(ctx, "join request notification failed", "kitchen", kitchen.ID, "error", err)
	}

	return &request, nil
}

// MyJoinRequests lists a user's requests with kitchens preloaded.
func MyJoinRequests(ctx context.Context, db *gorm.DB, userID uint) ([]models.KitchenJoinRequest, error) {
	var requests []models.KitchenJoinRequest
	err := db.WithContext(ctx).
		Preload("Kitchen").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

// PendingRequests lists PENDING requests for a kitchen the caller owns.
func PendingRequests(ctx context.Context, db *gorm.DB, kitchenID, ownerID uint) ([]models.KitchenJoinRequest, error) {
	if _, err := RequireOwner(ctx, db, kitchenID, ownerID); err != nil {
		return nil, err
	}

	var requests []models.KitchenJoinRequest
	err := db.WithContext(ctx).
		Preload("User").
		Where("kitchen_id = ? AND status = ?", kitchenID, models.JoinRequestPending).
		Order("created_at ASC").
		Find(&requests).Error
	return requests, err
}

// resolveRequest loads a PENDING request and checks the caller owns its
// kitchen. A request in a terminal state is reported, not re-resolved.
func resolveRequest(ctx context.Context, tx *gorm.DB, ownerID, requestID uint) (*models.KitchenJoinRequest, *models.Kitchen, error) {
	var request models.KitchenJoinRequest
	if err := tx.WithContext(ctx).First(&request, requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("join request %d: %w", requestID, apperr.ErrNotFound)
		}
		return nil, nil, err
	}

	var kitchen models.Kitchen
	if err := tx.WithContext(ctx).First(&kitchen, request.KitchenID).Error; err != nil {
		return nil, nil, err
	}
	if kitchen.OwnerID != ownerID {
		return nil, nil, fmt.Errorf("user %d does not own kitchen %d: %w", ownerID, kitchen.ID, apperr.ErrForbidden)
	}
	if request.Status != models.JoinRequestPending {
		return nil, nil, fmt.Errorf("join request %d is %s: %w", requestID, request.Status, apperr.ErrAlreadyResolved)
	}
	return &request, &kitchen, nil
}

// ApproveRequest transitions a PENDING request to APPROVED and adds the
// requester as a MEMBER.
func ApproveRequest(ctx context.Context, db *gorm.DB, ownerID, requestID uint) error {
	var requesterID uint
	var kitchenName string

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		request, kitchen, err := resolveRequest(ctx, tx, ownerID, requestID)
		if err != nil {
			return err
		}

		// Guarded update so two concurrent approvals cannot both win.
		result := tx.Model(&models.KitchenJoinRequest{}).
			Where("id = ? AND status = ?", request.ID, models.JoinRequestPending).
			Update("status", models.JoinRequestApproved)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("join request %d: %w", request.ID, apperr.ErrAlreadyResolved)
		}

		member := models.KitchenMember{
			KitchenID: kitchen.ID,
			UserID:    request.UserID,
			Role:      models.RoleMember,
		}
		if err := tx.Create(&member).Error; err != nil {
			return err
		}
		requesterID = request.UserID
		kitchenName = kitchen.Name
		return nil
	})
	if err != nil {
		return err
	}

	if err := notify.Create(ctx, db, requesterID, models.NotificationJoinResolved,
		"Katılım isteği onaylandı", fmt.Sprintf("%s mutfağına katıldınız.", kitchenName)); err != nil {
		applog.Warn(ctx, "approval notification failed", "request", requestID, "error", err)
	}
	return nil
}

// RejectRequest transitions a PENDING request to REJECTED. No member row is
// written.
func RejectRequest(ctx context.Context, db *gorm.DB, ownerID, requestID uint) error {
	var requesterID uint
	var kitchenName string

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		request, kitchen, err := resolveRequest(ctx, tx, ownerID, requestID)
		if err != nil {
			return err
		}

		result := tx.Model(&models.KitchenJoinRequest{}).
			Where("id = ? AND status = ?", request.ID, models.JoinRequestPending).
			Update("status", models.JoinRequestRejected)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("join request %d: %w", request.ID, apperr.ErrAlreadyResolved)
		}
		requesterID = request.UserID
		kitchenName = kitchen.Name
		return nil
	})
	if err != nil {
		return err
	}

	if err := notify.Create(ctx, db, requesterID, models.NotificationJoinResolved,
		"Katılım isteği reddedildi", fmt.Sprintf("%s mutfağına katılım isteğiniz reddedildi.", kitchenName)); err != nil {
		applog.Warn(ctx, "rejection notification failed", "request", requestID, "error", err)
	}
	return nil
}

// CancelRequest lets the requester withdraw their own request while it is
// still PENDING.
func CancelRequest(ctx context.Context, db *gorm.DB, userID, requestID uint) error {
	var request models.KitchenJoinRequest
	if err := db.WithContext(ctx).First(&request, requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("join request %d: %w", requestID, apperr.ErrNotFound)
		}
		return err
	}
	if request.UserID != userID {
		return fmt.Errorf("join request %d belongs to another user: %w", requestID, apperr.ErrForbidden)
	}

	result := db.WithContext(ctx).
		Model(&models.KitchenJoinRequest{}).
		Where("id = ? AND status = ?", requestID, models.JoinRequestPending).
		Update("status", models.JoinRequestCancelled)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("join request %d is %s: %w", requestID, request.Status, apperr.ErrAlreadyResolved)
	}
	return nil
}

// RemoveMember drops a member from a kitchen the caller owns. The owner
// cannot remove themselves.
func RemoveMember(ctx context.Context, db *gorm.DB, ownerID, kitchenID, memberUserID uint) error {
	kitchen, err := RequireOwner(ctx, db, kitchenID, ownerID)
	if err != nil {
		return err
	}
	if memberUserID == kitchen.OwnerID {
		return fmt.Errorf("owner cannot remove themselves: %w", apperr.ErrSelfRemoval)
	}

	// Hard delete so the unique (kitchen, user) index does not block a
	// later re-join.
	result := db.WithContext(ctx).
		Unscoped().
		Where("kitchen_id = ? AND user_id = ?", kitchenID, memberUserID).
		Delete(&models.KitchenMember{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("user %d is not a member of kitchen %d: %w", memberUserID, kitchenID, apperr.ErrNotFound)
	}
	return nil
}
