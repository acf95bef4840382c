package models

import (
	"time"

	"gorm.io/gorm"
)

// TradeStatus is the lifecycle state of a trade listing.
type TradeStatus string

const (
	TradeStatusOpen       TradeStatus = "open"
	TradeStatusInProgress TradeStatus = "in_progress"
	TradeStatusCompleted  TradeStatus = "completed"
	TradeStatusCancelled  TradeStatus = "cancelled"
)

// ValidTradeStatus reports whether s is a known trade status.
func ValidTradeStatus(s TradeStatus) bool {
	switch s {
	case TradeStatusOpen, TradeStatusInProgress, TradeStatusCompleted, TradeStatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further status transitions are allowed.
func (s TradeStatus) Terminal() bool {
	return s == TradeStatusCompleted || s == TradeStatusCancelled
}

// CanTransitionTo enforces the trade lifecycle:
// open -> in_progress -> completed, and any non-terminal state -> cancelled.
func (s TradeStatus) CanTransitionTo(next TradeStatus) bool {
	if s.Terminal() {
		return false
	}
	switch next {
	case TradeStatusInProgress:
		return s == TradeStatusOpen
	case TradeStatusCompleted:
		return s == TradeStatusInProgress
	case TradeStatusCancelled:
		return true
	}
	return false
}

// Trade is a listing offering one set of items for another.
type Trade struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	UserID      uint        `gorm:"not null;index" json:"user_id"`
	User        User        `gorm:"foreignKey:UserID" json:"user"`
	Offering    string      `gorm:"not null" json:"offering"`
	Seeking     string      `gorm:"not null" json:"seeking"`
	Description string      `gorm:"type:text" json:"description"`
	Status      TradeStatus `gorm:"type:varchar(20);not null;default:'open';index" json:"status"`
	Images      []TradeImage `gorm:"foreignKey:TradeID" json:"images,omitempty"`
	// Upvotes/Downvotes/CommentsCount are not persisted; computed at query time
	Upvotes       int64 `gorm:"->" json:"upvotes"`
	Downvotes     int64 `gorm:"->" json:"downvotes"`
	CommentsCount int64 `gorm:"->" json:"comments_count"`
	// UserVoteValue is the requesting user's stored vote value (computed)
	UserVoteValue int            `gorm:"->;column:user_vote_value" json:"-"`
	UserVote      *string        `gorm:"-" json:"user_vote"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// TradeImage is an uploaded screenshot attached to a trade.
type TradeImage struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	TradeID    uint      `gorm:"not null;index" json:"trade_id"`
	Path       string    `gorm:"not null" json:"path"`
	UploadedAt time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
}
