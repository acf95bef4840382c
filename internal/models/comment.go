package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment is attached to a trade, forum post, or event via a polymorphic
// (subject_type, subject_id) pair.
type Comment struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	SubjectType VoteSubject    `gorm:"type:varchar(20);not null;index:idx_comments_subject" json:"subject_type"`
	SubjectID   uint           `gorm:"not null;index:idx_comments_subject" json:"subject_id"`
	UserID      uint           `gorm:"not null;index" json:"user_id"`
	User        User           `gorm:"foreignKey:UserID" json:"user"`
	Content     string         `gorm:"type:text;not null" json:"content"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
