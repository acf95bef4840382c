package models

import "time"

// ReportStatus is the moderation lifecycle of a user report.
type ReportStatus string

const (
	ReportStatusPending  ReportStatus = "pending"
	ReportStatusReviewed ReportStatus = "reviewed"
	ReportStatusResolved ReportStatus = "resolved"
)

// ValidReportStatus reports whether s is a known report status.
func ValidReportStatus(s ReportStatus) bool {
	switch s {
	case ReportStatusPending, ReportStatusReviewed, ReportStatusResolved:
		return true
	}
	return false
}

// Report is a user-filed complaint about another user or a piece of content.
type Report struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	ReporterID     uint         `gorm:"not null;index" json:"reporter_id"`
	Reporter       User         `gorm:"foreignKey:ReporterID" json:"reporter"`
	ReportedUserID *uint        `gorm:"index" json:"reported_user_id,omitempty"`
	ReportedUser   *User        `gorm:"foreignKey:ReportedUserID" json:"reported_user,omitempty"`
	SubjectType    *VoteSubject `gorm:"type:varchar(20)" json:"subject_type,omitempty"`
	SubjectID      *uint        `json:"subject_id,omitempty"`
	Reason         string       `gorm:"type:text;not null" json:"reason"`
	Status         ReportStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	ReviewerID     *uint        `json:"reviewer_id,omitempty"`
	Notes          string       `gorm:"type:text" json:"notes"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}
