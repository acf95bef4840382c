package service

import (
	"context"

	"bloxmarket/internal/models"
	"bloxmarket/internal/repository"
)

type ReportService struct {
	reportRepo repository.ReportRepository
	userRepo   repository.UserRepository
	ownerOf    SubjectOwnerFunc
}

type CreateReportInput struct {
	ReporterID     uint
	ReportedUserID *uint
	Subject        *models.VoteSubject
	SubjectID      *uint
	Reason         string
}

type ListReportsInput struct {
	Limit  int
	Offset int
	Status models.ReportStatus
}

type ReviewReportInput struct {
	ReviewerID uint
	ReportID   uint
	Status     models.ReportStatus
	Notes      string
}

func NewReportService(
	reportRepo repository.ReportRepository,
	userRepo repository.UserRepository,
	ownerOf SubjectOwnerFunc,
) *ReportService {
	return &ReportService{reportRepo: reportRepo, userRepo: userRepo, ownerOf: ownerOf}
}

// CreateReport files a complaint against a user, a piece of content, or both.
func (s *ReportService) CreateReport(ctx context.Context, in CreateReportInput) (*models.Report, error) {
	const maxReasonLen = 5000

	if in.Reason == "" {
		return nil, models.NewValidationError("Reason is required")
	}
	if len(in.Reason) > maxReasonLen {
		return nil, models.NewValidationError("Reason too long (max 5000 characters)")
	}
	if in.ReportedUserID == nil && (in.Subject == nil || in.SubjectID == nil) {
		return nil, models.NewValidationError("A reported user or content reference is required")
	}

	if in.ReportedUserID != nil {
		if *in.ReportedUserID == in.ReporterID {
			return nil, models.NewValidationError("You cannot report yourself")
		}
		if _, err := s.userRepo.GetByID(ctx, *in.ReportedUserID); err != nil {
			return nil, err
		}
	}
	if in.Subject != nil && in.SubjectID != nil {
		if !models.ValidSubject(*in.Subject) {
			return nil, models.NewValidationError("Invalid subject type")
		}
		if _, err := s.ownerOf(ctx, *in.Subject, *in.SubjectID); err != nil {
			return nil, err
		}
	}

	report := &models.Report{
		ReporterID:     in.ReporterID,
		ReportedUserID: in.ReportedUserID,
		SubjectType:    in.Subject,
		SubjectID:      in.SubjectID,
		Reason:         in.Reason,
		Status:         models.ReportStatusPending,
	}
	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}
	return s.reportRepo.GetByID(ctx, report.ID)
}

func (s *ReportService) GetReport(ctx context.Context, id uint) (*models.Report, error) {
	return s.reportRepo.GetByID(ctx, id)
}

func (s *ReportService) ListReports(ctx context.Context, in ListReportsInput) ([]*models.Report, int64, error) {
	if in.Status != "" && !models.ValidReportStatus(in.Status) {
		return nil, 0, models.NewValidationError("Invalid status filter")
	}
	filter := repository.ReportListFilter{Status: in.Status}
	reports, err := s.reportRepo.List(ctx, filter, in.Limit, in.Offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.reportRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}

// ReviewReport moves a report along pending -> reviewed -> resolved. Reports
// never move backwards once resolved.
func (s *ReportService) ReviewReport(ctx context.Context, in ReviewReportInput) (*models.Report, error) {
	if !models.ValidReportStatus(in.Status) || in.Status == models.ReportStatusPending {
		return nil, models.NewValidationError("Status must be \"reviewed\" or \"resolved\"")
	}

	report, err := s.reportRepo.GetByID(ctx, in.ReportID)
	if err != nil {
		return nil, err
	}
	if report.Status == models.ReportStatusResolved {
		return nil, models.NewConflictError("Report has already been resolved")
	}

	report.Status = in.Status
	report.ReviewerID = &in.ReviewerID
	if in.Notes != "" {
		report.Notes = in.Notes
	}
	if err := s.reportRepo.Update(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}
