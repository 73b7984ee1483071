package repository

import (
	"context"
	"time"

	"playlsd/internal/models"

	"gorm.io/gorm"
)

// ChatRepository defines the interface for chat message data operations
type ChatRepository interface {
	Create(ctx context.Context, msg *models.ChatMessage) error
	Recent(ctx context.Context, limit int, now time.Time) ([]*models.ChatMessage, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// chatRepository implements ChatRepository
type chatRepository struct {
	db *gorm.DB
}

// NewChatRepository creates a new chat message repository
func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) Create(ctx context.Context, msg *models.ChatMessage) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

// Recent returns the newest non-expired messages, author preloaded.
func (r *chatRepository) Recent(ctx context.Context, limit int, now time.Time) ([]*models.ChatMessage, error) {
	var messages []*models.ChatMessage
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("expires_at > ?", now).
		Order("created_at DESC").
		Limit(limit).
		Find(&messages).Error
	return messages, err
}

// DeleteExpired removes messages past their expiry and reports how many.
func (r *chatRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at <= ?", now).
		Delete(&models.ChatMessage{})
	return res.RowsAffected, res.Error
}
