package repository

import (
	"context"
	"errors"
	"time"

	"bloxmarket/internal/cache"
	"bloxmarket/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VoteRepository defines the interface for vote data operations. One row per
// (user, subject); the unique index resolves concurrent writers.
type VoteRepository interface {
	Get(ctx context.Context, userID uint, subject models.VoteSubject, subjectID uint) (*models.Vote, error)
	Set(ctx context.Context, vote *models.Vote) error
	Delete(ctx context.Context, userID uint, subject models.VoteSubject, subjectID uint) error
	Counts(ctx context.Context, subject models.VoteSubject, subjectID uint) (up, down int64, err error)
}

type voteRepository struct {
	db *gorm.DB
}

// NewVoteRepository creates a new vote repository
func NewVoteRepository(db *gorm.DB) VoteRepository {
	return &voteRepository{db: db}
}

// Get returns the user's vote on the subject, or nil when no vote exists.
func (r *voteRepository) Get(ctx context.Context, userID uint, subject models.VoteSubject, subjectID uint) (*models.Vote, error) {
	var vote models.Vote
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND subject_type = ? AND subject_id = ?", userID, subject, subjectID).
		First(&vote).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &vote, nil
}

// Set upserts the vote row. ON CONFLICT keeps concurrent toggles from
// producing duplicate key errors.
func (r *voteRepository) Set(ctx context.Context, vote *models.Vote) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_id"},
			{Name: "subject_type"},
			{Name: "subject_id"},
		},
		DoUpdates: clause.Assignments(map[string]any{
			"value":      vote.Value,
			"updated_at": time.Now(),
		}),
	}).Create(vote).Error
	if err != nil {
		return err
	}
	cache.InvalidateSubject(ctx, string(vote.SubjectType), vote.SubjectID)
	return nil
}

func (r *voteRepository) Delete(ctx context.Context, userID uint, subject models.VoteSubject, subjectID uint) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND subject_type = ? AND subject_id = ?", userID, subject, subjectID).
		Delete(&models.Vote{}).Error
	if err != nil {
		return err
	}
	cache.InvalidateSubject(ctx, string(subject), subjectID)
	return nil
}

func (r *voteRepository) Counts(ctx context.Context, subject models.VoteSubject, subjectID uint) (int64, int64, error) {
	var up, down int64
	if err := r.db.WithContext(ctx).
		Model(&models.Vote{}).
		Where("subject_type = ? AND subject_id = ? AND value = 1", subject, subjectID).
		Count(&up).Error; err != nil {
		return 0, 0, err
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Vote{}).
		Where("subject_type = ? AND subject_id = ? AND value = -1", subject, subjectID).
		Count(&down).Error; err != nil {
		return 0, 0, err
	}
	return up, down, nil
}
