package service

import (
	"context"

	"bloxmarket/internal/models"
	"bloxmarket/internal/repository"
	"bloxmarket/internal/validation"
)

type VouchService struct {
	vouchRepo repository.VouchRepository
	userRepo  repository.UserRepository
	tradeRepo repository.TradeRepository
	roleOf    func(ctx context.Context, userID uint) (models.Role, error)
}

type CreateVouchInput struct {
	RaterID uint
	RateeID uint
	TradeID *uint
	Rating  int
	Comment string
}

func NewVouchService(
	vouchRepo repository.VouchRepository,
	userRepo repository.UserRepository,
	tradeRepo repository.TradeRepository,
	roleOf func(ctx context.Context, userID uint) (models.Role, error),
) *VouchService {
	return &VouchService{
		vouchRepo: vouchRepo,
		userRepo:  userRepo,
		tradeRepo: tradeRepo,
		roleOf:    roleOf,
	}
}

// CreateVouch records a rating against another user. The ratee's credibility
// score moves with the vouch inside the repository transaction.
func (s *VouchService) CreateVouch(ctx context.Context, in CreateVouchInput) (*models.Vouch, error) {
	const maxCommentLen = 2000

	if in.RaterID == in.RateeID {
		return nil, models.NewValidationError("You cannot vouch for yourself")
	}
	if err := validation.ValidateRating(in.Rating); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if len(in.Comment) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 2000 characters)")
	}

	if _, err := s.userRepo.GetByID(ctx, in.RateeID); err != nil {
		return nil, err
	}

	if in.TradeID != nil {
		trade, err := s.tradeRepo.GetByID(ctx, *in.TradeID, 0)
		if err != nil {
			return nil, err
		}
		if trade.Status != models.TradeStatusCompleted {
			return nil, models.NewValidationError("Vouches can only reference completed trades")
		}
	}

	exists, err := s.vouchRepo.Exists(ctx, in.RaterID, in.RateeID, in.TradeID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, models.NewConflictError("You have already vouched for this user")
	}

	vouch := &models.Vouch{
		RaterID: in.RaterID,
		RateeID: in.RateeID,
		TradeID: in.TradeID,
		Rating:  in.Rating,
		Comment: in.Comment,
	}
	if err := s.vouchRepo.Create(ctx, vouch); err != nil {
		return nil, err
	}
	return s.vouchRepo.GetByID(ctx, vouch.ID)
}

func (s *VouchService) ListUserVouches(ctx context.Context, rateeID uint, limit, offset int) ([]*models.Vouch, int64, error) {
	if _, err := s.userRepo.GetByID(ctx, rateeID); err != nil {
		return nil, 0, err
	}
	vouches, err := s.vouchRepo.ListByRatee(ctx, rateeID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.vouchRepo.CountByRatee(ctx, rateeID)
	if err != nil {
		return nil, 0, err
	}
	return vouches, total, nil
}

// DeleteVouch removes a vouch and reverses its credibility adjustment. Only
// the rater or a moderator may delete.
func (s *VouchService) DeleteVouch(ctx context.Context, userID, vouchID uint) error {
	vouch, err := s.vouchRepo.GetByID(ctx, vouchID)
	if err != nil {
		return err
	}
	if vouch.RaterID != userID {
		role, err := s.roleOf(ctx, userID)
		if err != nil {
			return err
		}
		if !role.CanModerate() {
			return models.NewUnauthorizedError("You can only delete your own vouches")
		}
	}
	return s.vouchRepo.Delete(ctx, vouch)
}
