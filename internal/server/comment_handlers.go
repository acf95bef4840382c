package server

import (
	"bloxmarket/internal/models"
	"bloxmarket/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateComment returns the handler for POST /api/{trades|forum|events}/:id/comments.
func (s *Server) CreateComment(subject models.VoteSubject) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Locals("userID").(uint)
		id, err := s.parseID(c, "id")
		if err != nil {
			return nil
		}

		var req struct {
			Content string `json:"content"`
		}
		if err := c.BodyParser(&req); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid request body"))
		}

		comment, err := s.commentService.CreateComment(c.Context(), service.CreateCommentInput{
			UserID:    userID,
			Subject:   subject,
			SubjectID: id,
			Content:   req.Content,
		})
		if err != nil {
			return respondServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(comment)
	}
}

// GetComments returns the handler for GET /api/{trades|forum|events}/:id/comments.
func (s *Server) GetComments(subject models.VoteSubject) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := s.parseID(c, "id")
		if err != nil {
			return nil
		}

		comments, err := s.commentService.ListComments(c.Context(), subject, id)
		if err != nil {
			return respondServiceError(c, err)
		}
		return c.JSON(fiber.Map{
			"comments": comments,
		})
	}
}

// DeleteComment handles DELETE /api/comments/:commentId
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	if err := s.commentService.DeleteComment(c.Context(), userID, commentID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Comment deleted",
	})
}
