package models

import "time"

// Vouch is a rating one user gives another after trading, feeding the
// ratee's credibility score.
type Vouch struct {
	ID      uint  `gorm:"primaryKey" json:"id"`
	RaterID uint  `gorm:"not null;uniqueIndex:idx_vouches_rater_ratee_trade" json:"rater_id"`
	Rater   User  `gorm:"foreignKey:RaterID" json:"rater"`
	RateeID uint  `gorm:"not null;uniqueIndex:idx_vouches_rater_ratee_trade;index" json:"ratee_id"`
	TradeID *uint `gorm:"uniqueIndex:idx_vouches_rater_ratee_trade" json:"trade_id,omitempty"`
	// Rating is 1-5.
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `gorm:"type:text" json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CredibilityDelta is the adjustment a vouch applies to the ratee's score:
// ratings of 3 and above count for, below 3 against.
func (v *Vouch) CredibilityDelta() int {
	if v.Rating >= 3 {
		return 1
	}
	return -1
}
