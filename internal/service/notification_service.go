package service

import (
	"context"
	"errors"

	"playlsd/internal/models"
	"playlsd/internal/repository"

	"gorm.io/gorm"
)

// NotificationService exposes the admin notification center.
type NotificationService struct {
	repo repository.NotificationRepository
}

// NewNotificationService creates a new notification service.
func NewNotificationService(repo repository.NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

// List returns notifications, newest first.
func (s *NotificationService) List(ctx context.Context, unreadOnly bool, limit int) ([]*models.AdminNotification, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.repo.List(ctx, unreadOnly, limit)
}

// MarkRead marks one notification as read.
func (s *NotificationService) MarkRead(ctx context.Context, id uint) error {
	err := s.repo.MarkRead(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError("Notification", id)
	}
	return err
}

// MarkAllRead marks every unread notification as read and reports how many.
func (s *NotificationService) MarkAllRead(ctx context.Context) (int64, error) {
	return s.repo.MarkAllRead(ctx)
}
