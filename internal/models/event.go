package models

import (
	"time"

	"gorm.io/gorm"
)

// Event lifecycle states, derived from the clock at read time and never stored.
type EventStatus string

const (
	EventStatusUpcoming   EventStatus = "upcoming"
	EventStatusActive     EventStatus = "active"
	EventStatusEndingSoon EventStatus = "ending-soon"
	EventStatusEnded      EventStatus = "ended"
)

// EndingSoonWindow is how close to ends_at an active event flips to ending-soon.
const EndingSoonWindow = time.Hour

// Event is a community event or giveaway with a timed lifecycle.
type Event struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	User        User      `gorm:"foreignKey:UserID" json:"user"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Prize       string    `json:"prize"`
	StartsAt    time.Time `gorm:"not null;index" json:"starts_at"`
	EndsAt      time.Time `gorm:"not null;index" json:"ends_at"`
	// Status is computed from StartsAt/EndsAt on every read
	Status EventStatus `gorm:"-" json:"status"`
	// Upvotes/Downvotes/CommentsCount are not persisted; computed at query time
	Upvotes       int64          `gorm:"->" json:"upvotes"`
	Downvotes     int64          `gorm:"->" json:"downvotes"`
	CommentsCount int64          `gorm:"->" json:"comments_count"`
	UserVoteValue int            `gorm:"->;column:user_vote_value" json:"-"`
	UserVote      *string        `gorm:"-" json:"user_vote"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// ComputeStatus derives the lifecycle state at the given instant.
func (e *Event) ComputeStatus(now time.Time) EventStatus {
	switch {
	case now.Before(e.StartsAt):
		return EventStatusUpcoming
	case !now.Before(e.EndsAt):
		return EventStatusEnded
	case e.EndsAt.Sub(now) <= EndingSoonWindow:
		return EventStatusEndingSoon
	default:
		return EventStatusActive
	}
}

// ValidEventStatus reports whether s is a known lifecycle state.
func ValidEventStatus(s EventStatus) bool {
	switch s {
	case EventStatusUpcoming, EventStatusActive, EventStatusEndingSoon, EventStatusEnded:
		return true
	}
	return false
}
