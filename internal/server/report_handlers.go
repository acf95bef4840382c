package server

import (
	"bloxmarket/internal/models"
	"bloxmarket/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateReport handles POST /api/reports
func (s *Server) CreateReport(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		ReportedUserID *uint   `json:"reported_user_id"`
		SubjectType    *string `json:"subject_type"`
		SubjectID      *uint   `json:"subject_id"`
		Reason         string  `json:"reason"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	var subject *models.VoteSubject
	if req.SubjectType != nil {
		st := models.VoteSubject(*req.SubjectType)
		subject = &st
	}

	report, err := s.reportService.CreateReport(c.Context(), service.CreateReportInput{
		ReporterID:     userID,
		ReportedUserID: req.ReportedUserID,
		Subject:        subject,
		SubjectID:      req.SubjectID,
		Reason:         req.Reason,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(report)
}

// GetReports handles GET /api/reports (moderator)
func (s *Server) GetReports(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	reports, total, err := s.reportService.ListReports(c.Context(), service.ListReportsInput{
		Limit:  p.Limit,
		Offset: p.Offset,
		Status: models.ReportStatus(c.Query("status")),
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"reports": reports,
		"total":   total,
		"limit":   p.Limit,
		"offset":  p.Offset,
	})
}

// ResolveReport handles POST /api/reports/:id/resolve (moderator)
func (s *Server) ResolveReport(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Status string `json:"status"`
		Notes  string `json:"notes"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	report, err := s.reportService.ReviewReport(c.Context(), service.ReviewReportInput{
		ReviewerID: userID,
		ReportID:   id,
		Status:     models.ReportStatus(req.Status),
		Notes:      req.Notes,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(report)
}
