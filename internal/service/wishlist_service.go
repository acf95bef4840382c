package service

import (
	"context"

	"bloxmarket/internal/models"
	"bloxmarket/internal/repository"
)

type WishlistService struct {
	wishlistRepo repository.WishlistRepository
}

type CreateWishlistItemInput struct {
	UserID   uint
	ItemName string
	Note     string
	Priority int
}

type UpdateWishlistItemInput struct {
	UserID   uint
	ItemID   uint
	ItemName string
	Note     string
	Priority *int
}

func NewWishlistService(wishlistRepo repository.WishlistRepository) *WishlistService {
	return &WishlistService{wishlistRepo: wishlistRepo}
}

func (s *WishlistService) CreateItem(ctx context.Context, in CreateWishlistItemInput) (*models.WishlistItem, error) {
	const maxItemNameLen = 200

	if in.ItemName == "" {
		return nil, models.NewValidationError("item_name is required")
	}
	if len(in.ItemName) > maxItemNameLen {
		return nil, models.NewValidationError("item_name too long (max 200 characters)")
	}
	if in.Priority < 0 {
		return nil, models.NewValidationError("priority cannot be negative")
	}

	item := &models.WishlistItem{
		UserID:   in.UserID,
		ItemName: in.ItemName,
		Note:     in.Note,
		Priority: in.Priority,
	}
	if err := s.wishlistRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// ListItems returns a user's wishlist, highest priority first. Wishlists are
// public so anyone can browse what a trader is hunting for.
func (s *WishlistService) ListItems(ctx context.Context, userID uint) ([]*models.WishlistItem, error) {
	return s.wishlistRepo.ListByUser(ctx, userID)
}

func (s *WishlistService) UpdateItem(ctx context.Context, in UpdateWishlistItemInput) (*models.WishlistItem, error) {
	item, err := s.wishlistRepo.GetByID(ctx, in.ItemID)
	if err != nil {
		return nil, err
	}
	if item.UserID != in.UserID {
		return nil, models.NewUnauthorizedError("You can only update your own wishlist")
	}

	if in.ItemName != "" {
		item.ItemName = in.ItemName
	}
	if in.Note != "" {
		item.Note = in.Note
	}
	if in.Priority != nil {
		if *in.Priority < 0 {
			return nil, models.NewValidationError("priority cannot be negative")
		}
		item.Priority = *in.Priority
	}

	if err := s.wishlistRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *WishlistService) DeleteItem(ctx context.Context, userID, itemID uint) error {
	item, err := s.wishlistRepo.GetByID(ctx, itemID)
	if err != nil {
		return err
	}
	if item.UserID != userID {
		return models.NewUnauthorizedError("You can only delete your own wishlist items")
	}
	return s.wishlistRepo.Delete(ctx, itemID)
}
