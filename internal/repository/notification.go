package repository

import (
	"context"

	"playlsd/internal/models"

	"gorm.io/gorm"
)

// NotificationRepository defines the interface for admin notification data operations
type NotificationRepository interface {
	Create(ctx context.Context, n *models.AdminNotification) error
	List(ctx context.Context, unreadOnly bool, limit int) ([]*models.AdminNotification, error)
	MarkRead(ctx context.Context, id uint) error
	MarkAllRead(ctx context.Context) (int64, error)
}

// notificationRepository implements NotificationRepository
type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new admin notification repository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *models.AdminNotification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *notificationRepository) List(ctx context.Context, unreadOnly bool, limit int) ([]*models.AdminNotification, error) {
	q := r.db.WithContext(ctx).Model(&models.AdminNotification{})
	if unreadOnly {
		q = q.Where("read = ?", false)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var notifications []*models.AdminNotification
	err := q.Order("created_at DESC").Find(&notifications).Error
	return notifications, err
}

func (r *notificationRepository) MarkRead(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).
		Model(&models.AdminNotification{}).
		Where("id = ?", id).
		Update("read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.AdminNotification{}).
		Where("read = ?", false).
		Update("read", true)
	return res.RowsAffected, res.Error
}
