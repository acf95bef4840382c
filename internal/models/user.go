package models

import (
	"time"

	"gorm.io/gorm"
)

// Role is a platform-wide permission level attached to a user.
type Role string

const (
	RoleUser      Role = "user"
	RoleMiddleman Role = "middleman"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
	RoleBanned    Role = "banned"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleUser, RoleMiddleman, RoleModerator, RoleAdmin, RoleBanned:
		return true
	}
	return false
}

// User represents a member of the BloxMarket community.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"unique;not null" json:"username"`
	Email    string `gorm:"unique;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	Bio      string `json:"bio"`
	Avatar   string `json:"avatar"`
	Role     Role   `gorm:"type:varchar(20);not null;default:'user';index" json:"role"`
	// CredibilityScore is a running counter adjusted by vouch creation/removal.
	CredibilityScore   int            `gorm:"not null;default:0" json:"credibility_score"`
	MiddlemanRequested bool           `gorm:"not null;default:false" json:"middleman_requested"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
	Trades             []Trade        `gorm:"foreignKey:UserID" json:"trades,omitempty"`
}

// RoleHistory is an append-only log of role changes with the acting user and reason.
type RoleHistory struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	ActorID   uint      `gorm:"not null" json:"actor_id"`
	OldRole   Role      `gorm:"type:varchar(20);not null" json:"old_role"`
	NewRole   Role      `gorm:"type:varchar(20);not null" json:"new_role"`
	Reason    string    `gorm:"type:text" json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}
