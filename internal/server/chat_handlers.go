package server

import (
	"playlsd/internal/featureflags"
	"playlsd/internal/models"
	"playlsd/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetChatMessages handles GET /api/chat/messages, returning the live
// transcript oldest first.
func (s *Server) GetChatMessages(c *fiber.Ctx) error {
	userID := currentUserID(c)
	if !s.featureFlags.Enabled(featureflags.FlagChat, userID) {
		return models.RespondWithError(c, fiber.StatusServiceUnavailable,
			models.NewValidationError("Chat is temporarily unavailable"))
	}

	messages, err := s.chatService.Recent(c.Context(), c.QueryInt("limit", 50))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(messages)
}

// PostChatMessage handles POST /api/chat/messages
func (s *Server) PostChatMessage(c *fiber.Ctx) error {
	userID := currentUserID(c)
	if !s.featureFlags.Enabled(featureflags.FlagChat, userID) {
		return models.RespondWithError(c, fiber.StatusServiceUnavailable,
			models.NewValidationError("Chat is temporarily unavailable"))
	}

	var req service.PostMessageInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	msg, err := s.chatService.Post(c.Context(), userID, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(msg)
}
