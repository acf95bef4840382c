package service

import (
	"context"

	"bloxmarket/internal/models"
	"bloxmarket/internal/observability"
	"bloxmarket/internal/repository"
)

// MaxVerificationDocuments caps how many files one application may attach.
const MaxVerificationDocuments = 5

type VerificationService struct {
	verificationRepo repository.VerificationRepository
	userRepo         repository.UserRepository
}

type ApplyInput struct {
	UserID     uint
	Reason     string
	Experience string
	Documents  []models.VerificationDocument
}

type ReviewApplicationInput struct {
	ReviewerID    uint
	ApplicationID uint
	Action        string
	Reason        string
}

func NewVerificationService(
	verificationRepo repository.VerificationRepository,
	userRepo repository.UserRepository,
) *VerificationService {
	return &VerificationService{verificationRepo: verificationRepo, userRepo: userRepo}
}

// Apply submits a middleman application with supporting documents. One
// pending application per user; users who already hold the role cannot apply.
func (s *VerificationService) Apply(ctx context.Context, in ApplyInput) (*models.MiddlemanApplication, error) {
	const maxTextLen = 5000

	if in.Reason == "" {
		return nil, models.NewValidationError("Reason is required")
	}
	if len(in.Reason) > maxTextLen || len(in.Experience) > maxTextLen {
		return nil, models.NewValidationError("Reason and experience must be at most 5000 characters")
	}
	if len(in.Documents) > MaxVerificationDocuments {
		return nil, models.NewValidationError("At most 5 documents can be attached")
	}

	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if user.Role == models.RoleMiddleman {
		return nil, models.NewConflictError("You are already a verified middleman")
	}

	app := &models.MiddlemanApplication{
		UserID:     in.UserID,
		Reason:     in.Reason,
		Experience: in.Experience,
		Status:     models.ApplicationStatusPending,
		Documents:  in.Documents,
	}
	if err := s.verificationRepo.CreateApplication(ctx, app); err != nil {
		return nil, err
	}
	return s.verificationRepo.GetByID(ctx, app.ID)
}

// MyApplication returns the caller's most recent application.
func (s *VerificationService) MyApplication(ctx context.Context, userID uint) (*models.MiddlemanApplication, error) {
	return s.verificationRepo.GetLatestByUser(ctx, userID)
}

func (s *VerificationService) ListApplications(ctx context.Context, status models.ApplicationStatus, limit, offset int) ([]*models.MiddlemanApplication, int64, error) {
	if status != "" {
		switch status {
		case models.ApplicationStatusPending, models.ApplicationStatusApproved, models.ApplicationStatusRejected:
		default:
			return nil, 0, models.NewValidationError("Invalid status filter")
		}
	}
	apps, err := s.verificationRepo.List(ctx, status, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.verificationRepo.Count(ctx, status)
	if err != nil {
		return nil, 0, err
	}
	return apps, total, nil
}

// Review decides a pending application. Approval promotes the applicant to
// middleman in the same transaction; rejection requires a reason. Reviewing
// an already-decided application is a conflict.
func (s *VerificationService) Review(ctx context.Context, in ReviewApplicationInput) (*models.MiddlemanApplication, error) {
	app, err := s.verificationRepo.GetByID(ctx, in.ApplicationID)
	if err != nil {
		return nil, err
	}
	if app.Status != models.ApplicationStatusPending {
		return nil, models.NewConflictError("Application has already been reviewed")
	}
	if app.UserID == in.ReviewerID {
		return nil, models.NewValidationError("You cannot review your own application")
	}

	switch in.Action {
	case models.ReviewActionApprove:
		if err := s.verificationRepo.Approve(ctx, app, in.ReviewerID); err != nil {
			return nil, err
		}
	case models.ReviewActionReject:
		if in.Reason == "" {
			return nil, models.NewValidationError("A reason is required when rejecting")
		}
		if err := s.verificationRepo.Reject(ctx, app, in.ReviewerID, in.Reason); err != nil {
			return nil, err
		}
	default:
		return nil, models.NewValidationError("Action must be \"approve\" or \"reject\"")
	}

	observability.ApplicationsReviewed.WithLabelValues(string(app.Status)).Inc()
	return s.verificationRepo.GetByID(ctx, app.ID)
}
