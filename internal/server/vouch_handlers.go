package server

import (
	"bloxmarket/internal/models"
	"bloxmarket/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateVouch handles POST /api/vouches
func (s *Server) CreateVouch(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	if !s.featureFlags.EnabledOrDefault("vouching", userID, true) {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewUnauthorizedError("Vouching is not available right now"))
	}

	var req struct {
		RateeID uint   `json:"ratee_id"`
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
		TradeID *uint  `json:"trade_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.RateeID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("ratee_id is required"))
	}

	vouch, err := s.vouchService.CreateVouch(c.Context(), service.CreateVouchInput{
		RaterID: userID,
		RateeID: req.RateeID,
		TradeID: req.TradeID,
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(vouch)
}

// GetUserVouches handles GET /api/users/:id/vouches
func (s *Server) GetUserVouches(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	p := parsePagination(c, 20)

	vouches, total, err := s.vouchService.ListUserVouches(c.Context(), userID, p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"vouches": vouches,
		"total":   total,
		"limit":   p.Limit,
		"offset":  p.Offset,
	})
}

// DeleteVouch handles DELETE /api/vouches/:id
func (s *Server) DeleteVouch(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.vouchService.DeleteVouch(c.Context(), userID, id); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Vouch deleted",
	})
}
