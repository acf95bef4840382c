package server

import (
	"bloxmarket/internal/models"
	"bloxmarket/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ApplyForVerification handles POST /api/verification/apply (multipart).
// Accepts up to 5 supporting documents under the "documents" field.
func (s *Server) ApplyForVerification(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	form, err := c.MultipartForm()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Multipart form expected"))
	}

	reason := c.FormValue("reason")
	experience := c.FormValue("experience")

	files := form.File["documents"]
	if len(files) > service.MaxVerificationDocuments {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("At most 5 documents can be attached"))
	}

	var documents []models.VerificationDocument
	for _, file := range files {
		path, err := s.storeUpload(c, file, "documents")
		if err != nil {
			return respondServiceError(c, err)
		}
		documents = append(documents, models.VerificationDocument{
			Path:         path,
			OriginalName: file.Filename,
			SizeBytes:    file.Size,
		})
	}

	app, err := s.verifyService.Apply(c.Context(), service.ApplyInput{
		UserID:     userID,
		Reason:     reason,
		Experience: experience,
		Documents:  documents,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(app)
}

// GetMyApplication handles GET /api/verification/my-application
func (s *Server) GetMyApplication(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	app, err := s.verifyService.MyApplication(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(app)
}

// GetApplications handles GET /api/verification/applications (moderator)
func (s *Server) GetApplications(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	apps, total, err := s.verifyService.ListApplications(c.Context(),
		models.ApplicationStatus(c.Query("status")), p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"applications": apps,
		"total":        total,
		"limit":        p.Limit,
		"offset":       p.Offset,
	})
}

// ReviewApplication handles POST /api/verification/applications/:id/review (moderator)
func (s *Server) ReviewApplication(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Action string `json:"action"`
		Reason string `json:"reason"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	app, err := s.verifyService.Review(c.Context(), service.ReviewApplicationInput{
		ReviewerID:    userID,
		ApplicationID: id,
		Action:        req.Action,
		Reason:        req.Reason,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(app)
}
