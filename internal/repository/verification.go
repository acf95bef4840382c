package repository

import (
	"context"
	"errors"
	"time"

	"bloxmarket/internal/cache"
	"bloxmarket/internal/models"

	"gorm.io/gorm"
)

// VerificationRepository defines interface for middleman application
// operations. Review is transactional: an approval that fails to promote
// the applicant leaves the application untouched.
type VerificationRepository interface {
	CreateApplication(ctx context.Context, app *models.MiddlemanApplication) error
	GetByID(ctx context.Context, id uint) (*models.MiddlemanApplication, error)
	GetPendingByUser(ctx context.Context, userID uint) (*models.MiddlemanApplication, error)
	GetLatestByUser(ctx context.Context, userID uint) (*models.MiddlemanApplication, error)
	List(ctx context.Context, status models.ApplicationStatus, limit, offset int) ([]*models.MiddlemanApplication, error)
	Count(ctx context.Context, status models.ApplicationStatus) (int64, error)
	Approve(ctx context.Context, app *models.MiddlemanApplication, reviewerID uint) error
	Reject(ctx context.Context, app *models.MiddlemanApplication, reviewerID uint, reason string) error
}

type verificationRepository struct {
	db *gorm.DB
}

// NewVerificationRepository creates a new VerificationRepository
func NewVerificationRepository(db *gorm.DB) VerificationRepository {
	return &verificationRepository{db: db}
}

// CreateApplication stores the application and its documents and flags the
// applicant as middleman_requested. Only one pending application per user
// is allowed at a time.
func (r *verificationRepository) CreateApplication(ctx context.Context, app *models.MiddlemanApplication) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var pending int64
		if err := tx.Model(&models.MiddlemanApplication{}).
			Where("user_id = ? AND status = ?", app.UserID, models.ApplicationStatusPending).
			Count(&pending).Error; err != nil {
			return err
		}
		if pending > 0 {
			return models.NewConflictError("You already have a pending application")
		}

		if err := tx.Create(app).Error; err != nil {
			return err
		}

		return tx.Model(&models.User{}).
			Where("id = ?", app.UserID).
			Update("middleman_requested", true).Error
	})
	if err != nil {
		return err
	}

	cache.InvalidateUser(ctx, app.UserID)
	return nil
}

func (r *verificationRepository) GetByID(ctx context.Context, id uint) (*models.MiddlemanApplication, error) {
	var app models.MiddlemanApplication
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Documents").
		First(&app, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Application", id)
		}
		return nil, err
	}
	return &app, nil
}

func (r *verificationRepository) GetPendingByUser(ctx context.Context, userID uint) (*models.MiddlemanApplication, error) {
	var app models.MiddlemanApplication
	err := r.db.WithContext(ctx).
		Preload("Documents").
		Where("user_id = ? AND status = ?", userID, models.ApplicationStatusPending).
		First(&app).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &app, nil
}

func (r *verificationRepository) GetLatestByUser(ctx context.Context, userID uint) (*models.MiddlemanApplication, error) {
	var app models.MiddlemanApplication
	err := r.db.WithContext(ctx).
		Preload("Documents").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&app).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Application", userID)
		}
		return nil, err
	}
	return &app, nil
}

func (r *verificationRepository) List(ctx context.Context, status models.ApplicationStatus, limit, offset int) ([]*models.MiddlemanApplication, error) {
	var apps []*models.MiddlemanApplication
	q := r.db.WithContext(ctx).Model(&models.MiddlemanApplication{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Preload("User").
		Preload("Documents").
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&apps).Error
	return apps, err
}

func (r *verificationRepository) Count(ctx context.Context, status models.ApplicationStatus) (int64, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&models.MiddlemanApplication{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Count(&count).Error
	return count, err
}

// Approve marks the application approved, promotes the applicant to the
// middleman role, records the role change, and clears the request flag.
// All of it happens in one transaction.
func (r *verificationRepository) Approve(ctx context.Context, app *models.MiddlemanApplication, reviewerID uint) error {
	now := time.Now()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.MiddlemanApplication{}).
			Where("id = ? AND status = ?", app.ID, models.ApplicationStatusPending).
			Updates(map[string]interface{}{
				"status":      models.ApplicationStatusApproved,
				"reviewer_id": reviewerID,
				"reviewed_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.NewConflictError("Application has already been reviewed")
		}

		var user models.User
		if err := tx.First(&user, app.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("User", app.UserID)
			}
			return err
		}

		history := models.RoleHistory{
			UserID:  user.ID,
			ActorID: reviewerID,
			OldRole: user.Role,
			NewRole: models.RoleMiddleman,
			Reason:  "Middleman application approved",
		}
		if err := tx.Create(&history).Error; err != nil {
			return err
		}

		return tx.Model(&models.User{}).
			Where("id = ?", user.ID).
			Updates(map[string]interface{}{
				"role":                models.RoleMiddleman,
				"middleman_requested": false,
			}).Error
	})
	if err != nil {
		return err
	}

	app.Status = models.ApplicationStatusApproved
	app.ReviewerID = &reviewerID
	app.ReviewedAt = &now

	cache.InvalidateUser(ctx, app.UserID)
	return nil
}

// Reject marks the application rejected with the given reason and clears
// the applicant's request flag so they can apply again later.
func (r *verificationRepository) Reject(ctx context.Context, app *models.MiddlemanApplication, reviewerID uint, reason string) error {
	now := time.Now()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.MiddlemanApplication{}).
			Where("id = ? AND status = ?", app.ID, models.ApplicationStatusPending).
			Updates(map[string]interface{}{
				"status":           models.ApplicationStatusRejected,
				"reviewer_id":      reviewerID,
				"rejection_reason": reason,
				"reviewed_at":      now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.NewConflictError("Application has already been reviewed")
		}

		return tx.Model(&models.User{}).
			Where("id = ?", app.UserID).
			Update("middleman_requested", false).Error
	})
	if err != nil {
		return err
	}

	app.Status = models.ApplicationStatusRejected
	app.ReviewerID = &reviewerID
	app.RejectionReason = reason
	app.ReviewedAt = &now

	cache.InvalidateUser(ctx, app.UserID)
	return nil
}
