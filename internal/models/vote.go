package models

import "time"

// VoteSubject identifies which kind of resource a vote or comment targets.
type VoteSubject string

const (
	SubjectTrade     VoteSubject = "trade"
	SubjectForumPost VoteSubject = "forum_post"
	SubjectEvent     VoteSubject = "event"
)

// ValidSubject reports whether s names a votable resource type.
func ValidSubject(s VoteSubject) bool {
	switch s {
	case SubjectTrade, SubjectForumPost, SubjectEvent:
		return true
	}
	return false
}

// Vote directions as carried on the wire.
const (
	VoteUp   = "up"
	VoteDown = "down"
)

// Vote is a single per-(user, subject) record. A user has at most one row per
// subject; the unique index makes the up/down/none state impossible to
// double-count under concurrent writers.
type Vote struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	UserID      uint        `gorm:"not null;uniqueIndex:idx_votes_user_subject" json:"user_id"`
	SubjectType VoteSubject `gorm:"type:varchar(20);not null;uniqueIndex:idx_votes_user_subject" json:"subject_type"`
	SubjectID   uint        `gorm:"not null;uniqueIndex:idx_votes_user_subject;index" json:"subject_id"`
	// Value is +1 for an upvote, -1 for a downvote.
	Value     int       `gorm:"not null" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// VoteState is the API response after a vote toggle and on resource reads.
type VoteState struct {
	Upvotes   int64   `json:"upvotes"`
	Downvotes int64   `json:"downvotes"`
	UserVote  *string `json:"user_vote"`
}

// DirectionValue maps a wire direction onto a stored vote value.
func DirectionValue(direction string) (int, bool) {
	switch direction {
	case VoteUp:
		return 1, true
	case VoteDown:
		return -1, true
	}
	return 0, false
}

// ValueDirection maps a stored value back to the wire direction; zero maps to nil.
func ValueDirection(value int) *string {
	switch value {
	case 1:
		up := VoteUp
		return &up
	case -1:
		down := VoteDown
		return &down
	}
	return nil
}
