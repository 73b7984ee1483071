package server

import (
	"playlsd/internal/models"
	"playlsd/internal/repository"
	"playlsd/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPublishedNews handles GET /api/news
func (s *Server) GetPublishedNews(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	published := true
	filter := repository.PostFilter{
		Published: &published,
		Featured:  parseBoolQuery(c, "featured"),
		Query:     c.Query("q"),
		Limit:     p.Limit,
		Offset:    p.Offset,
	}

	posts, err := s.newsService.List(c.Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(posts)
}

// GetPublishedNewsPost handles GET /api/news/:id
func (s *Server) GetPublishedNewsPost(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	post, err := s.newsService.GetPublished(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}

// GetAllNews handles GET /api/admin/news, drafts included.
func (s *Server) GetAllNews(c *fiber.Ctx) error {
	p := parsePagination(c, 50)
	filter := repository.PostFilter{
		Published: parseBoolQuery(c, "published"),
		Featured:  parseBoolQuery(c, "featured"),
		Query:     c.Query("q"),
		Limit:     p.Limit,
		Offset:    p.Offset,
	}

	posts, err := s.newsService.List(c.Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(posts)
}

// GetNewsPost handles GET /api/admin/news/:id
func (s *Server) GetNewsPost(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	post, err := s.newsService.Get(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}

// CreateNews handles POST /api/admin/news
func (s *Server) CreateNews(c *fiber.Ctx) error {
	var req service.CreateNewsInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	author, err := s.actingAuthorName(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	post, err := s.newsService.Create(c.Context(), author, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// UpdateNews handles PUT /api/admin/news/:id
func (s *Server) UpdateNews(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	var req service.UpdateNewsInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.newsService.Update(c.Context(), id, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}

// DeleteNews handles DELETE /api/admin/news/:id
func (s *Server) DeleteNews(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	if err := s.newsService.Delete(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SetNewsPublished handles PUT /api/admin/news/:id/published
func (s *Server) SetNewsPublished(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	var req struct {
		Published bool `json:"published"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.newsService.SetPublished(c.Context(), id, req.Published)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}

// SetNewsFeatured handles PUT /api/admin/news/:id/featured
func (s *Server) SetNewsFeatured(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	var req struct {
		Featured bool `json:"featured"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.newsService.SetFeatured(c.Context(), id, req.Featured)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}
