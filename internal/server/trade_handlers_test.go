package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"bloxmarket/internal/models"
	"bloxmarket/internal/repository"
	"bloxmarket/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockTradeRepository is a mock of the TradeRepository interface
type MockTradeRepository struct {
	mock.Mock
}

func (m *MockTradeRepository) Create(ctx context.Context, trade *models.Trade) error {
	args := m.Called(ctx, trade)
	return args.Error(0)
}

func (m *MockTradeRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Trade, error) {
	args := m.Called(ctx, id, currentUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Trade), args.Error(1)
}

func (m *MockTradeRepository) GetByUserID(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Trade, error) {
	args := m.Called(ctx, userID, limit, offset, currentUserID)
	return args.Get(0).([]*models.Trade), args.Error(1)
}

func (m *MockTradeRepository) List(ctx context.Context, limit, offset int, currentUserID uint, filter repository.TradeListFilter) ([]*models.Trade, error) {
	args := m.Called(ctx, limit, offset, currentUserID, filter)
	return args.Get(0).([]*models.Trade), args.Error(1)
}

func (m *MockTradeRepository) Update(ctx context.Context, trade *models.Trade) error {
	args := m.Called(ctx, trade)
	return args.Error(0)
}

func (m *MockTradeRepository) UpdateStatus(ctx context.Context, id uint, status models.TradeStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockTradeRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTradeRepository) AddImage(ctx context.Context, image *models.TradeImage) error {
	args := m.Called(ctx, image)
	return args.Error(0)
}

func (m *MockTradeRepository) OwnerID(ctx context.Context, id uint) (uint, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(uint), args.Error(1)
}

func tradeTestServer(mockRepo *MockTradeRepository) *Server {
	roleOf := func(context.Context, uint) (models.Role, error) {
		return models.RoleUser, nil
	}
	return &Server{
		tradeRepo:    mockRepo,
		tradeService: service.NewTradeService(mockRepo, roleOf),
	}
}

func withUserID(app *fiber.App, userID uint) {
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", userID)
		return c.Next()
	})
}

func TestCreateTrade(t *testing.T) {
	app := fiber.New()
	mockRepo := new(MockTradeRepository)
	s := tradeTestServer(mockRepo)

	withUserID(app, 1)
	app.Post("/trades", s.CreateTrade)

	tests := []struct {
		name           string
		body           map[string]string
		mockSetup      func()
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]string{
				"offering": "Frost Dragon",
				"seeking":  "Shadow Dragon",
			},
			mockSetup: func() {
				mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
				mockRepo.On("GetByID", mock.Anything, mock.Anything, uint(1)).
					Return(&models.Trade{ID: 1, Offering: "Frost Dragon"}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Missing Seeking",
			body: map[string]string{
				"offering": "Frost Dragon",
			},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/trades", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, _ := app.Test(req)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestGetTrade_NotFound(t *testing.T) {
	app := fiber.New()
	mockRepo := new(MockTradeRepository)
	s := tradeTestServer(mockRepo)

	app.Get("/trades/:id", s.GetTrade)

	mockRepo.On("GetByID", mock.Anything, uint(404), uint(0)).
		Return(nil, models.NewNotFoundError("Trade", 404))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/trades/404", nil))
	assert.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpdateTradeStatus_Conflict(t *testing.T) {
	app := fiber.New()
	mockRepo := new(MockTradeRepository)
	s := tradeTestServer(mockRepo)

	withUserID(app, 1)
	app.Patch("/trades/:id/status", s.UpdateTradeStatus)

	mockRepo.On("GetByID", mock.Anything, uint(1), uint(1)).
		Return(&models.Trade{ID: 1, UserID: 1, Status: models.TradeStatusCompleted}, nil)

	body, _ := json.Marshal(map[string]string{"status": "open"})
	req := httptest.NewRequest(http.MethodPatch, "/trades/1/status", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestDeleteTrade_NotOwner(t *testing.T) {
	app := fiber.New()
	mockRepo := new(MockTradeRepository)
	s := tradeTestServer(mockRepo)

	withUserID(app, 2)
	app.Delete("/trades/:id", s.DeleteTrade)

	mockRepo.On("OwnerID", mock.Anything, uint(1)).Return(uint(1), nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/trades/1", nil))
	assert.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
