package models

import "time"

// ApplicationStatus is the lifecycle of a middleman application.
// pending is the only non-terminal state.
type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusApproved ApplicationStatus = "approved"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// Review actions as carried on the wire.
const (
	ReviewActionApprove = "approve"
	ReviewActionReject  = "reject"
)

// MiddlemanApplication is a user's request to become a verified middleman.
type MiddlemanApplication struct {
	ID              uint                   `gorm:"primaryKey" json:"id"`
	UserID          uint                   `gorm:"not null;index" json:"user_id"`
	User            *User                  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Reason          string                 `gorm:"type:text;not null" json:"reason"`
	Experience      string                 `gorm:"type:text" json:"experience"`
	Status          ApplicationStatus      `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	ReviewerID      *uint                  `json:"reviewer_id,omitempty"`
	Reviewer        *User                  `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
	RejectionReason string                 `gorm:"type:text" json:"rejection_reason,omitempty"`
	ReviewedAt      *time.Time             `json:"reviewed_at,omitempty"`
	Documents       []VerificationDocument `gorm:"foreignKey:ApplicationID" json:"documents,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}

// VerificationDocument is an uploaded proof file attached to an application.
type VerificationDocument struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ApplicationID uint      `gorm:"not null;index" json:"application_id"`
	Path          string    `gorm:"not null" json:"path"`
	OriginalName  string    `json:"original_name"`
	SizeBytes     int64     `json:"size_bytes"`
	UploadedAt    time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
}
