package server

import (
	"playlsd/internal/featureflags"
	"playlsd/internal/models"
	"playlsd/internal/repository"
	"playlsd/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateSubmission handles POST /api/submissions (public form).
func (s *Server) CreateSubmission(c *fiber.Ctx) error {
	if !s.featureFlags.Enabled(featureflags.FlagSubmissions, 0) {
		return models.RespondWithError(c, fiber.StatusServiceUnavailable,
			models.NewValidationError("Submissions are temporarily closed"))
	}

	var req service.SubmitInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	sub, err := s.submissionService.Submit(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(sub)
}

// GetSubmissions handles GET /api/admin/submissions with optional type,
// status, and q filters.
func (s *Server) GetSubmissions(c *fiber.Ctx) error {
	p := parsePagination(c, 50)
	filter := repository.SubmissionFilter{
		Type:   models.SubmissionType(c.Query("type")),
		Status: models.SubmissionStatus(c.Query("status")),
		Query:  c.Query("q"),
		Limit:  p.Limit,
		Offset: p.Offset,
	}

	subs, err := s.submissionService.List(c.Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(subs)
}

// GetSubmission handles GET /api/admin/submissions/:id
func (s *Server) GetSubmission(c *fiber.Ctx) error {
	sub, err := s.submissionService.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sub)
}

// ApproveSubmission handles POST /api/admin/submissions/:id/approve
func (s *Server) ApproveSubmission(c *fiber.Ctx) error {
	return s.reviewSubmission(c, models.SubmissionStatusApproved)
}

// RejectSubmission handles POST /api/admin/submissions/:id/reject
func (s *Server) RejectSubmission(c *fiber.Ctx) error {
	return s.reviewSubmission(c, models.SubmissionStatusRejected)
}

// SetSubmissionStatus handles PUT /api/admin/submissions/:id/status, which
// also allows moving a reviewed submission back to pending.
func (s *Server) SetSubmissionStatus(c *fiber.Ctx) error {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	return s.reviewSubmission(c, models.SubmissionStatus(req.Status))
}

func (s *Server) reviewSubmission(c *fiber.Ctx, status models.SubmissionStatus) error {
	sub, err := s.submissionService.SetStatus(c.Context(), c.Params("id"), status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sub)
}
