package repository

import (
	"context"
	"errors"

	"bloxmarket/internal/cache"
	"bloxmarket/internal/models"

	"gorm.io/gorm"
)

// VouchRepository defines interface for vouch operations. Creation and
// deletion adjust the ratee's credibility score inside one transaction so
// the counter can never drift from the vouch rows.
type VouchRepository interface {
	Create(ctx context.Context, vouch *models.Vouch) error
	GetByID(ctx context.Context, id uint) (*models.Vouch, error)
	ListByRatee(ctx context.Context, rateeID uint, limit, offset int) ([]*models.Vouch, error)
	CountByRatee(ctx context.Context, rateeID uint) (int64, error)
	Exists(ctx context.Context, raterID, rateeID uint, tradeID *uint) (bool, error)
	Delete(ctx context.Context, vouch *models.Vouch) error
}

type vouchRepository struct {
	db *gorm.DB
}

// NewVouchRepository creates a new VouchRepository
func NewVouchRepository(db *gorm.DB) VouchRepository {
	return &vouchRepository{db: db}
}

func (r *vouchRepository) Create(ctx context.Context, vouch *models.Vouch) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(vouch).Error; err != nil {
			if isUniqueConstraintError(err) {
				return models.NewConflictError("You have already vouched for this user")
			}
			return err
		}

		res := tx.Model(&models.User{}).
			Where("id = ?", vouch.RateeID).
			Update("credibility_score", gorm.Expr("credibility_score + ?", vouch.CredibilityDelta()))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("User", vouch.RateeID)
		}
		return nil
	})
	if err != nil {
		return err
	}

	cache.InvalidateUser(ctx, vouch.RateeID)
	return nil
}

func (r *vouchRepository) GetByID(ctx context.Context, id uint) (*models.Vouch, error) {
	var vouch models.Vouch
	if err := r.db.WithContext(ctx).Preload("Rater").First(&vouch, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Vouch", id)
		}
		return nil, err
	}
	return &vouch, nil
}

func (r *vouchRepository) ListByRatee(ctx context.Context, rateeID uint, limit, offset int) ([]*models.Vouch, error) {
	var vouches []*models.Vouch
	err := r.db.WithContext(ctx).
		Preload("Rater").
		Where("ratee_id = ?", rateeID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&vouches).Error
	return vouches, err
}

func (r *vouchRepository) CountByRatee(ctx context.Context, rateeID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Vouch{}).
		Where("ratee_id = ?", rateeID).
		Count(&count).Error
	return count, err
}

func (r *vouchRepository) Exists(ctx context.Context, raterID, rateeID uint, tradeID *uint) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).
		Model(&models.Vouch{}).
		Where("rater_id = ? AND ratee_id = ?", raterID, rateeID)
	if tradeID == nil {
		q = q.Where("trade_id IS NULL")
	} else {
		q = q.Where("trade_id = ?", *tradeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Delete removes the vouch and reverses its credibility adjustment.
func (r *vouchRepository) Delete(ctx context.Context, vouch *models.Vouch) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Vouch{}, vouch.ID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("Vouch", vouch.ID)
		}

		return tx.Model(&models.User{}).
			Where("id = ?", vouch.RateeID).
			Update("credibility_score", gorm.Expr("credibility_score - ?", vouch.CredibilityDelta())).Error
	})
	if err != nil {
		return err
	}

	cache.InvalidateUser(ctx, vouch.RateeID)
	return nil
}
