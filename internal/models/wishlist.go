package models

import (
	"time"

	"gorm.io/gorm"
)

// WishlistItem is an item a user is hunting for.
type WishlistItem struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	UserID   uint   `gorm:"not null;index" json:"user_id"`
	ItemName string `gorm:"not null" json:"item_name"`
	Note     string `gorm:"type:text" json:"note"`
	// Priority orders the wishlist; higher means wanted more.
	Priority  int            `gorm:"not null;default:0" json:"priority"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
