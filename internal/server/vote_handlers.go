package server

import (
	"bloxmarket/internal/models"
	"bloxmarket/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Vote returns the handler for POST /api/{trades|forum|events}/:id/vote.
// The subject type is fixed per route group.
func (s *Server) Vote(subject models.VoteSubject) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Locals("userID").(uint)
		id, err := s.parseID(c, "id")
		if err != nil {
			return nil
		}

		var req struct {
			Direction string `json:"direction"`
		}
		if err := c.BodyParser(&req); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid request body"))
		}

		state, err := s.voteService.Vote(c.Context(), service.VoteInput{
			UserID:    userID,
			Subject:   subject,
			SubjectID: id,
			Direction: req.Direction,
		})
		if err != nil {
			return respondServiceError(c, err)
		}
		return c.JSON(state)
	}
}
