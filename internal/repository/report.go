package repository

import (
	"context"
	"errors"

	"bloxmarket/internal/models"

	"gorm.io/gorm"
)

// ReportRepository defines interface for report operations
type ReportRepository interface {
	Create(ctx context.Context, report *models.Report) error
	GetByID(ctx context.Context, id uint) (*models.Report, error)
	List(ctx context.Context, filter ReportListFilter, limit, offset int) ([]*models.Report, error)
	Count(ctx context.Context, filter ReportListFilter) (int64, error)
	Update(ctx context.Context, report *models.Report) error
}

// ReportListFilter narrows report listings for the moderation queue.
type ReportListFilter struct {
	Status     models.ReportStatus
	ReporterID uint
}

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(ctx context.Context, report *models.Report) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *reportRepository) GetByID(ctx context.Context, id uint) (*models.Report, error) {
	var report models.Report
	err := r.db.WithContext(ctx).
		Preload("Reporter").
		Preload("ReportedUser").
		First(&report, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Report", id)
		}
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) applyFilter(q *gorm.DB, filter ReportListFilter) *gorm.DB {
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.ReporterID != 0 {
		q = q.Where("reporter_id = ?", filter.ReporterID)
	}
	return q
}

func (r *reportRepository) List(ctx context.Context, filter ReportListFilter, limit, offset int) ([]*models.Report, error) {
	var reports []*models.Report
	q := r.applyFilter(r.db.WithContext(ctx).Model(&models.Report{}), filter)
	err := q.Preload("Reporter").
		Preload("ReportedUser").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&reports).Error
	return reports, err
}

func (r *reportRepository) Count(ctx context.Context, filter ReportListFilter) (int64, error) {
	var count int64
	q := r.applyFilter(r.db.WithContext(ctx).Model(&models.Report{}), filter)
	err := q.Count(&count).Error
	return count, err
}

func (r *reportRepository) Update(ctx context.Context, report *models.Report) error {
	return r.db.WithContext(ctx).Save(report).Error
}
