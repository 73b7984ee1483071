package server

import (
	"playlsd/internal/models"
	"playlsd/internal/repository"
	"playlsd/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPublishedPlaylists handles GET /api/playlists. Only published posts are
// visible; featured and q filters narrow the listing.
func (s *Server) GetPublishedPlaylists(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	published := true
	filter := repository.PostFilter{
		Published: &published,
		Featured:  parseBoolQuery(c, "featured"),
		Query:     c.Query("q"),
		Limit:     p.Limit,
		Offset:    p.Offset,
	}

	posts, err := s.playlistService.List(c.Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(posts)
}

// GetPlaylistBySlug handles GET /api/playlists/:slug
func (s *Server) GetPlaylistBySlug(c *fiber.Ctx) error {
	post, err := s.playlistService.FindBySlug(c.Context(), c.Params("slug"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}

// GetAllPlaylists handles GET /api/admin/playlists, drafts included.
func (s *Server) GetAllPlaylists(c *fiber.Ctx) error {
	p := parsePagination(c, 50)
	filter := repository.PostFilter{
		Published: parseBoolQuery(c, "published"),
		Featured:  parseBoolQuery(c, "featured"),
		Query:     c.Query("q"),
		Limit:     p.Limit,
		Offset:    p.Offset,
	}

	posts, err := s.playlistService.List(c.Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(posts)
}

// GetPlaylist handles GET /api/admin/playlists/:id
func (s *Server) GetPlaylist(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	post, err := s.playlistService.Get(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}

// CreatePlaylist handles POST /api/admin/playlists
func (s *Server) CreatePlaylist(c *fiber.Ctx) error {
	var req service.CreatePlaylistInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	author, err := s.actingAuthorName(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	post, err := s.playlistService.Create(c.Context(), author, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// UpdatePlaylist handles PUT /api/admin/playlists/:id
func (s *Server) UpdatePlaylist(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	var req service.UpdatePlaylistInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.playlistService.Update(c.Context(), id, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}

// DeletePlaylist handles DELETE /api/admin/playlists/:id
func (s *Server) DeletePlaylist(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	if err := s.playlistService.Delete(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SetPlaylistPublished handles PUT /api/admin/playlists/:id/published
func (s *Server) SetPlaylistPublished(c *fiber.Ctx) error {
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

	post, err := s.playlistService.SetPublished(c.Context(), id, req.Published)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}

// SetPlaylistFeatured handles PUT /api/admin/playlists/:id/featured
func (s *Server) SetPlaylistFeatured(c *fiber.Ctx) error {
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

	post, err := s.playlistService.SetFeatured(c.Context(), id, req.Featured)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}
