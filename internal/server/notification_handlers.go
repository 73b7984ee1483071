package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetNotifications handles GET /api/admin/notifications with an optional
// unread=true filter.
func (s *Server) GetNotifications(c *fiber.Ctx) error {
	unreadOnly := c.Query("unread") == "true"
	p := parsePagination(c, 50)

	notifications, err := s.notificationService.List(c.Context(), unreadOnly, p.Limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(notifications)
}

// MarkNotificationRead handles POST /api/admin/notifications/:id/read
func (s *Server) MarkNotificationRead(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	if err := s.notificationService.MarkRead(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// MarkAllNotificationsRead handles POST /api/admin/notifications/read-all
func (s *Server) MarkAllNotificationsRead(c *fiber.Ctx) error {
	updated, err := s.notificationService.MarkAllRead(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"updated": updated})
}

// GetFeatureFlags handles GET /api/admin/feature-flags
func (s *Server) GetFeatureFlags(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"raw":       s.featureFlags.Raw(),
		"evaluated": s.featureFlags.Snapshot(currentUserID(c)),
	})
}
