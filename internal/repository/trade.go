package repository

import (
	"context"
	"errors"

	"bloxmarket/internal/cache"
	"bloxmarket/internal/models"

	"gorm.io/gorm"
)

// TradeListFilter narrows trade listings.
type TradeListFilter struct {
	Status models.TradeStatus
	Search string
}

// TradeRepository defines the interface for trade data operations
type TradeRepository interface {
	Create(ctx context.Context, trade *models.Trade) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Trade, error)
	GetByUserID(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Trade, error)
	List(ctx context.Context, limit, offset int, currentUserID uint, filter TradeListFilter) ([]*models.Trade, error)
	Update(ctx context.Context, trade *models.Trade) error
	UpdateStatus(ctx context.Context, id uint, status models.TradeStatus) error
	Delete(ctx context.Context, id uint) error
	AddImage(ctx context.Context, image *models.TradeImage) error
	OwnerID(ctx context.Context, id uint) (uint, error)
}

type tradeRepository struct {
	db *gorm.DB
}

// NewTradeRepository creates a new trade repository
func NewTradeRepository(db *gorm.DB) TradeRepository {
	return &tradeRepository{db: db}
}

func (r *tradeRepository) Create(ctx context.Context, trade *models.Trade) error {
	return r.db.WithContext(ctx).Create(trade).Error
}

// GetByID loads the trade with its computed vote/comment details. Anonymous
// reads go through the cache; per-user reads always hit the database because
// user_vote_value is caller-specific.
func (r *tradeRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Trade, error) {
	var trade models.Trade

	if currentUserID == 0 {
		err := cache.Aside(ctx, cache.TradeKey(id), &trade, cache.TradeTTL, func() error {
			return r.fetchByID(ctx, &trade, id, 0)
		})
		if err != nil {
			return nil, err
		}
	} else if err := r.fetchByID(ctx, &trade, id, currentUserID); err != nil {
		return nil, err
	}

	trade.UserVote = models.ValueDirection(trade.UserVoteValue)
	return &trade, nil
}

func (r *tradeRepository) fetchByID(ctx context.Context, dest *models.Trade, id, currentUserID uint) error {
	err := applyVoteDetails(r.db.WithContext(ctx), "trades", models.SubjectTrade, currentUserID).
		Preload("User").
		Preload("Images").
		First(dest, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError("Trade", id)
	}
	return err
}

func (r *tradeRepository) GetByUserID(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Trade, error) {
	var trades []*models.Trade
	err := applyVoteDetails(r.db.WithContext(ctx), "trades", models.SubjectTrade, currentUserID).
		Preload("User").
		Preload("Images").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&trades).Error
	if err != nil {
		return nil, err
	}
	resolveTradeVotes(trades)
	return trades, nil
}

func (r *tradeRepository) List(ctx context.Context, limit, offset int, currentUserID uint, filter TradeListFilter) ([]*models.Trade, error) {
	var trades []*models.Trade
	q := applyVoteDetails(r.db.WithContext(ctx), "trades", models.SubjectTrade, currentUserID).
		Preload("User").
		Preload("Images")

	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("offering ILIKE ? OR seeking ILIKE ? OR description ILIKE ?", like, like, like)
	}

	err := q.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&trades).Error
	if err != nil {
		return nil, err
	}
	resolveTradeVotes(trades)
	return trades, nil
}

func (r *tradeRepository) Update(ctx context.Context, trade *models.Trade) error {
	if err := r.db.WithContext(ctx).Save(trade).Error; err != nil {
		return err
	}
	cache.InvalidateTrade(ctx, trade.ID)
	return nil
}

func (r *tradeRepository) UpdateStatus(ctx context.Context, id uint, status models.TradeStatus) error {
	err := r.db.WithContext(ctx).
		Model(&models.Trade{}).
		Where("id = ?", id).
		Update("status", status).Error
	if err != nil {
		return err
	}
	cache.InvalidateTrade(ctx, id)
	return nil
}

func (r *tradeRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Trade{}, id).Error; err != nil {
		return err
	}
	cache.InvalidateTrade(ctx, id)
	return nil
}

func (r *tradeRepository) AddImage(ctx context.Context, image *models.TradeImage) error {
	if err := r.db.WithContext(ctx).Create(image).Error; err != nil {
		return err
	}
	cache.InvalidateTrade(ctx, image.TradeID)
	return nil
}

func (r *tradeRepository) OwnerID(ctx context.Context, id uint) (uint, error) {
	var trade models.Trade
	if err := r.db.WithContext(ctx).Select("id", "user_id").First(&trade, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, models.NewNotFoundError("Trade", id)
		}
		return 0, err
	}
	return trade.UserID, nil
}

func resolveTradeVotes(trades []*models.Trade) {
	for _, t := range trades {
		t.UserVote = models.ValueDirection(t.UserVoteValue)
	}
}
