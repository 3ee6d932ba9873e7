package models

import "gorm.io/gorm"

const (
	KitchenStatusActive  = "ACTIVE"
	KitchenStatusPassive = "PASSIVE"

	RoleOwner  = "OWNER"
	RoleMember = "MEMBER"

	JoinRequestPending   = "PENDING"
	JoinRequestApproved  = "APPROVED"
	JoinRequestRejected  = "REJECTED"
	JoinRequestCancelled = "CANCELLED"
)

// Kitchen is a household workspace owning pantry items, market items and membership.
type Kitchen struct {
	gorm.Model
	Name       string `gorm:"not null" json:"name"`
	InviteCode string `gorm:"uniqueIndex;size:6;not null" json:"invite_code"`
	OwnerID    uint   `gorm:"not null" json:"owner_id"`
	Status     string `gorm:"size:16;not null;default:ACTIVE" json:"status"`

	Members []KitchenMember `gorm:"foreignKey:KitchenID" json:"members,omitempty"`
}

// KitchenMember links a user to a kitchen. Exactly one member per kitchen holds
// the OWNER role, matching Kitchen.OwnerID.
type KitchenMember struct {
	gorm.Model
	KitchenID uint   `gorm:"uniqueIndex:idx_kitchen_user;not null" json:"kitchen_id"`
	UserID    uint   `gorm:"uniqueIndex:idx_kitchen_user;not null" json:"user_id"`
	Role      string `gorm:"size:16;not null;default:MEMBER" json:"role"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// KitchenJoinRequest tracks a user's request to join a kitchen via invite code.
// Status moves out of PENDING exactly once. The partial unique index lets the
// database reject a second PENDING row even under concurrent submissions,
// while resolved requests pile up freely.
type KitchenJoinRequest struct {
	gorm.Model
	KitchenID uint   `gorm:"index:idx_join_once,unique,where:status = 'PENDING';not null" json:"kitchen_id"`
	UserID    uint   `gorm:"index:idx_join_once,unique;not null" json:"user_id"`
	Status    string `gorm:"size:16;not null;default:PENDING" json:"status"`

	Kitchen *Kitchen `gorm:"foreignKey:KitchenID" json:"kitchen,omitempty"`
	User    *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
