package server

import (
	"bloxmarket/internal/models"
	"bloxmarket/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateTrade handles POST /api/trades
func (s *Server) CreateTrade(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Offering    string `json:"offering"`
		Seeking     string `json:"seeking"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	trade, err := s.tradeService.CreateTrade(c.Context(), service.CreateTradeInput{
		UserID:      userID,
		Offering:    req.Offering,
		Seeking:     req.Seeking,
		Description: req.Description,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(trade)
}

// GetTrades handles GET /api/trades
func (s *Server) GetTrades(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	currentUserID, _ := s.optionalUserID(c)

	trades, err := s.tradeService.ListTrades(c.Context(), service.ListTradesInput{
		Limit:         p.Limit,
		Offset:        p.Offset,
		CurrentUserID: currentUserID,
		Status:        models.TradeStatus(c.Query("status")),
		Search:        c.Query("search"),
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"trades": trades,
		"limit":  p.Limit,
		"offset": p.Offset,
	})
}

// GetTrade handles GET /api/trades/:id
func (s *Server) GetTrade(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	currentUserID, _ := s.optionalUserID(c)

	trade, err := s.tradeService.GetTrade(c.Context(), id, currentUserID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(trade)
}

// GetUserTrades handles GET /api/users/:id/trades
func (s *Server) GetUserTrades(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	p := parsePagination(c, 20)
	currentUserID, _ := s.optionalUserID(c)

	trades, err := s.tradeService.GetUserTrades(c.Context(), userID, p.Limit, p.Offset, currentUserID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"trades": trades,
		"limit":  p.Limit,
		"offset": p.Offset,
	})
}

// UpdateTrade handles PATCH /api/trades/:id
func (s *Server) UpdateTrade(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Offering    string `json:"offering"`
		Seeking     string `json:"seeking"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	trade, err := s.tradeService.UpdateTrade(c.Context(), service.UpdateTradeInput{
		UserID:      userID,
		TradeID:     id,
		Offering:    req.Offering,
		Seeking:     req.Seeking,
		Description: req.Description,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(trade)
}

// UpdateTradeStatus handles PATCH /api/trades/:id/status
func (s *Server) UpdateTradeStatus(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	trade, err := s.tradeService.UpdateTradeStatus(c.Context(), service.UpdateTradeStatusInput{
		UserID:  userID,
		TradeID: id,
		Status:  models.TradeStatus(req.Status),
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(trade)
}

// DeleteTrade handles DELETE /api/trades/:id
func (s *Server) DeleteTrade(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.tradeService.DeleteTrade(c.Context(), userID, id); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Trade deleted",
	})
}

// UploadTradeImage handles POST /api/trades/:id/images (multipart)
func (s *Server) UploadTradeImage(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	file, err := c.FormFile("image")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("An image file is required"))
	}

	path, err := s.storeUpload(c, file, "trades")
	if err != nil {
		return respondServiceError(c, err)
	}

	image, err := s.tradeService.AttachImage(c.Context(), userID, id, path)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(image)
}
