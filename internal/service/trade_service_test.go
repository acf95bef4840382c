package service

import (
	"context"
	"strings"
	"testing"

	"bloxmarket/internal/models"
	"bloxmarket/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tradeRepoStub struct {
	createFn       func(context.Context, *models.Trade) error
	getByIDFn      func(context.Context, uint, uint) (*models.Trade, error)
	getByUserIDFn  func(context.Context, uint, int, int, uint) ([]*models.Trade, error)
	listFn         func(context.Context, int, int, uint, repository.TradeListFilter) ([]*models.Trade, error)
	updateFn       func(context.Context, *models.Trade) error
	updateStatusFn func(context.Context, uint, models.TradeStatus) error
	deleteFn       func(context.Context, uint) error
	addImageFn     func(context.Context, *models.TradeImage) error
	ownerIDFn      func(context.Context, uint) (uint, error)
}

func (s *tradeRepoStub) Create(ctx context.Context, trade *models.Trade) error {
	return s.createFn(ctx, trade)
}
func (s *tradeRepoStub) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Trade, error) {
	return s.getByIDFn(ctx, id, currentUserID)
}
func (s *tradeRepoStub) GetByUserID(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Trade, error) {
	return s.getByUserIDFn(ctx, userID, limit, offset, currentUserID)
}
func (s *tradeRepoStub) List(ctx context.Context, limit, offset int, currentUserID uint, filter repository.TradeListFilter) ([]*models.Trade, error) {
	return s.listFn(ctx, limit, offset, currentUserID, filter)
}
func (s *tradeRepoStub) Update(ctx context.Context, trade *models.Trade) error {
	return s.updateFn(ctx, trade)
}
func (s *tradeRepoStub) UpdateStatus(ctx context.Context, id uint, status models.TradeStatus) error {
	return s.updateStatusFn(ctx, id, status)
}
func (s *tradeRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *tradeRepoStub) AddImage(ctx context.Context, image *models.TradeImage) error {
	return s.addImageFn(ctx, image)
}
func (s *tradeRepoStub) OwnerID(ctx context.Context, id uint) (uint, error) {
	return s.ownerIDFn(ctx, id)
}

func noopTradeRepo() *tradeRepoStub {
	return &tradeRepoStub{
		createFn: func(_ context.Context, trade *models.Trade) error {
			trade.ID = 1
			return nil
		},
		getByIDFn: func(_ context.Context, id uint, _ uint) (*models.Trade, error) {
			return &models.Trade{ID: id, UserID: 1, Offering: "Frost Dragon", Seeking: "Shadow Dragon", Status: models.TradeStatusOpen}, nil
		},
		getByUserIDFn: func(_ context.Context, _ uint, _, _ int, _ uint) ([]*models.Trade, error) {
			return nil, nil
		},
		listFn: func(_ context.Context, _, _ int, _ uint, _ repository.TradeListFilter) ([]*models.Trade, error) {
			return nil, nil
		},
		updateFn:       func(_ context.Context, _ *models.Trade) error { return nil },
		updateStatusFn: func(_ context.Context, _ uint, _ models.TradeStatus) error { return nil },
		deleteFn:       func(_ context.Context, _ uint) error { return nil },
		addImageFn: func(_ context.Context, image *models.TradeImage) error {
			image.ID = 1
			return nil
		},
		ownerIDFn: func(_ context.Context, _ uint) (uint, error) { return 1, nil },
	}
}

func TestCreateTrade_Success(t *testing.T) {
	repo := noopTradeRepo()
	var created *models.Trade
	repo.createFn = func(_ context.Context, trade *models.Trade) error {
		trade.ID = 7
		created = trade
		return nil
	}
	svc := NewTradeService(repo, roleOfStub(models.RoleUser))

	_, err := svc.CreateTrade(context.Background(), CreateTradeInput{
		UserID:   1,
		Offering: "Neon Unicorn",
		Seeking:  "Mega Kangaroo",
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, models.TradeStatusOpen, created.Status)
}

func TestCreateTrade_OfferingRequired(t *testing.T) {
	svc := NewTradeService(noopTradeRepo(), roleOfStub(models.RoleUser))

	_, err := svc.CreateTrade(context.Background(), CreateTradeInput{UserID: 1, Seeking: "anything"})
	assertValidationError(t, err)
}

func TestCreateTrade_FieldTooLong(t *testing.T) {
	svc := NewTradeService(noopTradeRepo(), roleOfStub(models.RoleUser))

	_, err := svc.CreateTrade(context.Background(), CreateTradeInput{
		UserID:   1,
		Offering: strings.Repeat("a", 501),
		Seeking:  "anything",
	})
	assertValidationError(t, err)
}

func TestListTrades_InvalidStatusFilter(t *testing.T) {
	svc := NewTradeService(noopTradeRepo(), roleOfStub(models.RoleUser))

	_, err := svc.ListTrades(context.Background(), ListTradesInput{Status: "haggling"})
	assertValidationError(t, err)
}

func TestUpdateTrade_NotOwner(t *testing.T) {
	svc := NewTradeService(noopTradeRepo(), roleOfStub(models.RoleUser))

	_, err := svc.UpdateTrade(context.Background(), UpdateTradeInput{
		UserID:  2,
		TradeID: 1,
		Seeking: "something else",
	})
	assertUnauthorizedError(t, err)
}

func TestUpdateTrade_TerminalStatusConflict(t *testing.T) {
	repo := noopTradeRepo()
	repo.getByIDFn = func(_ context.Context, id uint, _ uint) (*models.Trade, error) {
		return &models.Trade{ID: id, UserID: 1, Status: models.TradeStatusCompleted}, nil
	}
	svc := NewTradeService(repo, roleOfStub(models.RoleUser))

	_, err := svc.UpdateTrade(context.Background(), UpdateTradeInput{
		UserID:  1,
		TradeID: 1,
		Seeking: "something else",
	})
	assertConflictError(t, err)
}

func TestUpdateTradeStatus_ValidTransition(t *testing.T) {
	repo := noopTradeRepo()
	var set models.TradeStatus
	repo.updateStatusFn = func(_ context.Context, _ uint, status models.TradeStatus) error {
		set = status
		return nil
	}
	svc := NewTradeService(repo, roleOfStub(models.RoleUser))

	trade, err := svc.UpdateTradeStatus(context.Background(), UpdateTradeStatusInput{
		UserID: 1, TradeID: 1, Status: models.TradeStatusInProgress,
	})
	require.NoError(t, err)
	assert.Equal(t, models.TradeStatusInProgress, set)
	assert.Equal(t, models.TradeStatusInProgress, trade.Status)
}

func TestUpdateTradeStatus_InvalidTransition(t *testing.T) {
	repo := noopTradeRepo()
	repo.getByIDFn = func(_ context.Context, id uint, _ uint) (*models.Trade, error) {
		return &models.Trade{ID: id, UserID: 1, Status: models.TradeStatusCompleted}, nil
	}
	svc := NewTradeService(repo, roleOfStub(models.RoleUser))

	_, err := svc.UpdateTradeStatus(context.Background(), UpdateTradeStatusInput{
		UserID: 1, TradeID: 1, Status: models.TradeStatusOpen,
	})
	assertConflictError(t, err)
}

func TestDeleteTrade_ModeratorCanDelete(t *testing.T) {
	repo := noopTradeRepo()
	deleted := false
	repo.deleteFn = func(_ context.Context, _ uint) error {
		deleted = true
		return nil
	}
	svc := NewTradeService(repo, roleOfStub(models.RoleModerator))

	err := svc.DeleteTrade(context.Background(), 99, 1)
	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestDeleteTrade_StrangerRejected(t *testing.T) {
	svc := NewTradeService(noopTradeRepo(), roleOfStub(models.RoleUser))

	err := svc.DeleteTrade(context.Background(), 99, 1)
	assertUnauthorizedError(t, err)
}

func TestAttachImage_OwnerOnly(t *testing.T) {
	svc := NewTradeService(noopTradeRepo(), roleOfStub(models.RoleUser))

	_, err := svc.AttachImage(context.Background(), 2, 1, "/uploads/trades/x.png")
	assertUnauthorizedError(t, err)
}

func TestAttachImage_Success(t *testing.T) {
	svc := NewTradeService(noopTradeRepo(), roleOfStub(models.RoleUser))

	image, err := svc.AttachImage(context.Background(), 1, 1, "/uploads/trades/x.png")
	require.NoError(t, err)
	assert.Equal(t, uint(1), image.TradeID)
	assert.Equal(t, "/uploads/trades/x.png", image.Path)
}
