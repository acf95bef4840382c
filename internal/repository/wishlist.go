package repository

import (
	"context"
	"errors"

	"bloxmarket/internal/models"

	"gorm.io/gorm"
)

// WishlistRepository defines interface for wishlist item operations
type WishlistRepository interface {
	Create(ctx context.Context, item *models.WishlistItem) error
	GetByID(ctx context.Context, id uint) (*models.WishlistItem, error)
	ListByUser(ctx context.Context, userID uint) ([]*models.WishlistItem, error)
	Update(ctx context.Context, item *models.WishlistItem) error
	Delete(ctx context.Context, id uint) error
}

type wishlistRepository struct {
	db *gorm.DB
}

// NewWishlistRepository creates a new WishlistRepository
func NewWishlistRepository(db *gorm.DB) WishlistRepository {
	return &wishlistRepository{db: db}
}

func (r *wishlistRepository) Create(ctx context.Context, item *models.WishlistItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *wishlistRepository) GetByID(ctx context.Context, id uint) (*models.WishlistItem, error) {
	var item models.WishlistItem
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Wishlist item", id)
		}
		return nil, err
	}
	return &item, nil
}

func (r *wishlistRepository) ListByUser(ctx context.Context, userID uint) ([]*models.WishlistItem, error) {
	var items []*models.WishlistItem
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("priority DESC, created_at DESC").
		Find(&items).Error
	return items, err
}

func (r *wishlistRepository) Update(ctx context.Context, item *models.WishlistItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *wishlistRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.WishlistItem{}, id).Error
}
