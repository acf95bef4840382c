package models

import (
	"time"

	"gorm.io/gorm"
)

// ForumPost is a discussion thread with the same vote/comment surface as a trade.
type ForumPost struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	UserID   uint   `gorm:"not null;index" json:"user_id"`
	User     User   `gorm:"foreignKey:UserID" json:"user"`
	Title    string `gorm:"not null" json:"title"`
	Content  string `gorm:"type:text;not null" json:"content"`
	Category string `gorm:"type:varchar(40);index" json:"category"`
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
