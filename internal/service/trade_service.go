package service

import (
	"context"

	"bloxmarket/internal/models"
	"bloxmarket/internal/repository"
)

type TradeService struct {
	tradeRepo repository.TradeRepository
	roleOf    func(ctx context.Context, userID uint) (models.Role, error)
}

type CreateTradeInput struct {
	UserID      uint
	Offering    string
	Seeking     string
	Description string
}

type ListTradesInput struct {
	Limit         int
	Offset        int
	CurrentUserID uint
	Status        models.TradeStatus
	Search        string
}

type UpdateTradeInput struct {
	UserID      uint
	TradeID     uint
	Offering    string
	Seeking     string
	Description string
}

type UpdateTradeStatusInput struct {
	UserID  uint
	TradeID uint
	Status  models.TradeStatus
}

func NewTradeService(
	tradeRepo repository.TradeRepository,
	roleOf func(ctx context.Context, userID uint) (models.Role, error),
) *TradeService {
	return &TradeService{tradeRepo: tradeRepo, roleOf: roleOf}
}

func (s *TradeService) CreateTrade(ctx context.Context, in CreateTradeInput) (*models.Trade, error) {
	const maxFieldLen = 500
	const maxDescriptionLen = 5000

	if in.Offering == "" {
		return nil, models.NewValidationError("Offering is required")
	}
	if in.Seeking == "" {
		return nil, models.NewValidationError("Seeking is required")
	}
	if len(in.Offering) > maxFieldLen || len(in.Seeking) > maxFieldLen {
		return nil, models.NewValidationError("Offering and seeking must be at most 500 characters")
	}
	if len(in.Description) > maxDescriptionLen {
		return nil, models.NewValidationError("Description too long (max 5000 characters)")
	}

	trade := &models.Trade{
		UserID:      in.UserID,
		Offering:    in.Offering,
		Seeking:     in.Seeking,
		Description: in.Description,
		Status:      models.TradeStatusOpen,
	}
	if err := s.tradeRepo.Create(ctx, trade); err != nil {
		return nil, err
	}
	return s.tradeRepo.GetByID(ctx, trade.ID, in.UserID)
}

func (s *TradeService) GetTrade(ctx context.Context, id uint, currentUserID uint) (*models.Trade, error) {
	return s.tradeRepo.GetByID(ctx, id, currentUserID)
}

func (s *TradeService) ListTrades(ctx context.Context, in ListTradesInput) ([]*models.Trade, error) {
	if in.Status != "" && !models.ValidTradeStatus(in.Status) {
		return nil, models.NewValidationError("Invalid status filter")
	}
	return s.tradeRepo.List(ctx, in.Limit, in.Offset, in.CurrentUserID, repository.TradeListFilter{
		Status: in.Status,
		Search: in.Search,
	})
}

func (s *TradeService) GetUserTrades(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Trade, error) {
	return s.tradeRepo.GetByUserID(ctx, userID, limit, offset, currentUserID)
}

func (s *TradeService) UpdateTrade(ctx context.Context, in UpdateTradeInput) (*models.Trade, error) {
	trade, err := s.tradeRepo.GetByID(ctx, in.TradeID, in.UserID)
	if err != nil {
		return nil, err
	}
	if trade.UserID != in.UserID {
		return nil, models.NewUnauthorizedError("You can only update your own trades")
	}
	if trade.Status.Terminal() {
		return nil, models.NewConflictError("Completed or cancelled trades cannot be edited")
	}

	if in.Offering != "" {
		trade.Offering = in.Offering
	}
	if in.Seeking != "" {
		trade.Seeking = in.Seeking
	}
	if in.Description != "" {
		trade.Description = in.Description
	}

	if err := s.tradeRepo.Update(ctx, trade); err != nil {
		return nil, err
	}
	return trade, nil
}

// UpdateTradeStatus advances the trade lifecycle. Only the owner may move a
// trade, and only along open -> in_progress -> completed, with cancellation
// allowed from any non-terminal state.
func (s *TradeService) UpdateTradeStatus(ctx context.Context, in UpdateTradeStatusInput) (*models.Trade, error) {
	if !models.ValidTradeStatus(in.Status) {
		return nil, models.NewValidationError("Invalid status")
	}

	trade, err := s.tradeRepo.GetByID(ctx, in.TradeID, in.UserID)
	if err != nil {
		return nil, err
	}
	if trade.UserID != in.UserID {
		return nil, models.NewUnauthorizedError("You can only update your own trades")
	}
	if !trade.Status.CanTransitionTo(in.Status) {
		return nil, models.NewConflictError("Cannot move trade from " + string(trade.Status) + " to " + string(in.Status))
	}

	if err := s.tradeRepo.UpdateStatus(ctx, in.TradeID, in.Status); err != nil {
		return nil, err
	}
	trade.Status = in.Status
	return trade, nil
}

func (s *TradeService) DeleteTrade(ctx context.Context, userID, tradeID uint) error {
	ownerID, err := s.tradeRepo.OwnerID(ctx, tradeID)
	if err != nil {
		return err
	}
	if ownerID != userID {
		role, err := s.roleOf(ctx, userID)
		if err != nil {
			return err
		}
		if !role.CanModerate() {
			return models.NewUnauthorizedError("You can only delete your own trades")
		}
	}
	return s.tradeRepo.Delete(ctx, tradeID)
}

// AttachImage records an already-stored upload against the trade.
func (s *TradeService) AttachImage(ctx context.Context, userID, tradeID uint, path string) (*models.TradeImage, error) {
	ownerID, err := s.tradeRepo.OwnerID(ctx, tradeID)
	if err != nil {
		return nil, err
	}
	if ownerID != userID {
		return nil, models.NewUnauthorizedError("You can only add images to your own trades")
	}

	image := &models.TradeImage{TradeID: tradeID, Path: path}
	if err := s.tradeRepo.AddImage(ctx, image); err != nil {
		return nil, err
	}
	return image, nil
}
