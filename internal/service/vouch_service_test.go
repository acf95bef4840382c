package service

import (
	"context"
	"testing"

	"bloxmarket/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type vouchRepoStub struct {
	createFn       func(context.Context, *models.Vouch) error
	getByIDFn      func(context.Context, uint) (*models.Vouch, error)
	listByRateeFn  func(context.Context, uint, int, int) ([]*models.Vouch, error)
	countByRateeFn func(context.Context, uint) (int64, error)
	existsFn       func(context.Context, uint, uint, *uint) (bool, error)
	deleteFn       func(context.Context, *models.Vouch) error
}

func (s *vouchRepoStub) Create(ctx context.Context, vouch *models.Vouch) error {
	return s.createFn(ctx, vouch)
}
func (s *vouchRepoStub) GetByID(ctx context.Context, id uint) (*models.Vouch, error) {
	return s.getByIDFn(ctx, id)
}
func (s *vouchRepoStub) ListByRatee(ctx context.Context, rateeID uint, limit, offset int) ([]*models.Vouch, error) {
	return s.listByRateeFn(ctx, rateeID, limit, offset)
}
func (s *vouchRepoStub) CountByRatee(ctx context.Context, rateeID uint) (int64, error) {
	return s.countByRateeFn(ctx, rateeID)
}
func (s *vouchRepoStub) Exists(ctx context.Context, raterID, rateeID uint, tradeID *uint) (bool, error) {
	return s.existsFn(ctx, raterID, rateeID, tradeID)
}
func (s *vouchRepoStub) Delete(ctx context.Context, vouch *models.Vouch) error {
	return s.deleteFn(ctx, vouch)
}

func noopVouchRepo() *vouchRepoStub {
	return &vouchRepoStub{
		createFn: func(_ context.Context, vouch *models.Vouch) error {
			vouch.ID = 1
			return nil
		},
		getByIDFn: func(_ context.Context, id uint) (*models.Vouch, error) {
			return &models.Vouch{ID: id, RaterID: 1, RateeID: 2, Rating: 5}, nil
		},
		listByRateeFn: func(_ context.Context, _ uint, _, _ int) ([]*models.Vouch, error) {
			return nil, nil
		},
		countByRateeFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		existsFn:       func(_ context.Context, _, _ uint, _ *uint) (bool, error) { return false, nil },
		deleteFn:       func(_ context.Context, _ *models.Vouch) error { return nil },
	}
}

func TestCreateVouch_Success(t *testing.T) {
	repo := noopVouchRepo()
	var created *models.Vouch
	repo.createFn = func(_ context.Context, vouch *models.Vouch) error {
		vouch.ID = 3
		created = vouch
		return nil
	}
	svc := NewVouchService(repo, noopUserRepo(), noopTradeRepo(), roleOfStub(models.RoleUser))

	_, err := svc.CreateVouch(context.Background(), CreateVouchInput{
		RaterID: 1, RateeID: 2, Rating: 5, Comment: "Smooth trade",
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, uint(2), created.RateeID)
	assert.Equal(t, 5, created.Rating)
}

func TestCreateVouch_SelfVouchRejected(t *testing.T) {
	svc := NewVouchService(noopVouchRepo(), noopUserRepo(), noopTradeRepo(), roleOfStub(models.RoleUser))

	_, err := svc.CreateVouch(context.Background(), CreateVouchInput{
		RaterID: 1, RateeID: 1, Rating: 5,
	})
	assertValidationError(t, err)
}

func TestCreateVouch_InvalidRating(t *testing.T) {
	svc := NewVouchService(noopVouchRepo(), noopUserRepo(), noopTradeRepo(), roleOfStub(models.RoleUser))

	_, err := svc.CreateVouch(context.Background(), CreateVouchInput{
		RaterID: 1, RateeID: 2, Rating: 6,
	})
	assertValidationError(t, err)
}

func TestCreateVouch_DuplicateConflict(t *testing.T) {
	repo := noopVouchRepo()
	repo.existsFn = func(_ context.Context, _, _ uint, _ *uint) (bool, error) { return true, nil }
	svc := NewVouchService(repo, noopUserRepo(), noopTradeRepo(), roleOfStub(models.RoleUser))

	_, err := svc.CreateVouch(context.Background(), CreateVouchInput{
		RaterID: 1, RateeID: 2, Rating: 4,
	})
	assertConflictError(t, err)
}

func TestCreateVouch_TradeMustBeCompleted(t *testing.T) {
	trades := noopTradeRepo()
	trades.getByIDFn = func(_ context.Context, id uint, _ uint) (*models.Trade, error) {
		return &models.Trade{ID: id, UserID: 2, Status: models.TradeStatusOpen}, nil
	}
	svc := NewVouchService(noopVouchRepo(), noopUserRepo(), trades, roleOfStub(models.RoleUser))

	tradeID := uint(7)
	_, err := svc.CreateVouch(context.Background(), CreateVouchInput{
		RaterID: 1, RateeID: 2, TradeID: &tradeID, Rating: 5,
	})
	assertValidationError(t, err)
}

func TestCreateVouch_CompletedTradeAccepted(t *testing.T) {
	trades := noopTradeRepo()
	trades.getByIDFn = func(_ context.Context, id uint, _ uint) (*models.Trade, error) {
		return &models.Trade{ID: id, UserID: 2, Status: models.TradeStatusCompleted}, nil
	}
	svc := NewVouchService(noopVouchRepo(), noopUserRepo(), trades, roleOfStub(models.RoleUser))

	tradeID := uint(7)
	vouch, err := svc.CreateVouch(context.Background(), CreateVouchInput{
		RaterID: 1, RateeID: 2, TradeID: &tradeID, Rating: 5,
	})
	require.NoError(t, err)
	assert.NotNil(t, vouch)
}

func TestDeleteVouch_RaterCanDelete(t *testing.T) {
	repo := noopVouchRepo()
	deleted := false
	repo.deleteFn = func(_ context.Context, _ *models.Vouch) error {
		deleted = true
		return nil
	}
	svc := NewVouchService(repo, noopUserRepo(), noopTradeRepo(), roleOfStub(models.RoleUser))

	err := svc.DeleteVouch(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestDeleteVouch_StrangerRejected(t *testing.T) {
	svc := NewVouchService(noopVouchRepo(), noopUserRepo(), noopTradeRepo(), roleOfStub(models.RoleUser))

	err := svc.DeleteVouch(context.Background(), 5, 1)
	assertUnauthorizedError(t, err)
}

func TestDeleteVouch_ModeratorCanDelete(t *testing.T) {
	svc := NewVouchService(noopVouchRepo(), noopUserRepo(), noopTradeRepo(), roleOfStub(models.RoleModerator))

	err := svc.DeleteVouch(context.Background(), 5, 1)
	require.NoError(t, err)
}
