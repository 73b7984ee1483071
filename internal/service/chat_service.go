package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"playlsd/internal/models"
	"playlsd/internal/observability"
	"playlsd/internal/repository"
	"playlsd/internal/validation"

	"gorm.io/gorm"
)

// maxChatMessageLen bounds a single chat message, in runes.
const maxChatMessageLen = 1000

// ChatBroadcaster fans a freshly posted message out to connected clients.
type ChatBroadcaster interface {
	ChatMessagePosted(ctx context.Context, msg *models.ChatMessage)
}

// ChatService is the ephemeral community chat: messages carry an expiry
// stamped at write time and a background sweeper deletes them once past it.
type ChatService struct {
	repo        repository.ChatRepository
	userRepo    repository.UserRepository
	broadcaster ChatBroadcaster
	ttl         time.Duration
	now         func() time.Time
}

// NewChatService creates a new chat service. ttl must be positive.
func NewChatService(
	repo repository.ChatRepository,
	userRepo repository.UserRepository,
	broadcaster ChatBroadcaster,
	ttl time.Duration,
) *ChatService {
	return &ChatService{
		repo:        repo,
		userRepo:    userRepo,
		broadcaster: broadcaster,
		ttl:         ttl,
		now:         time.Now,
	}
}

// PostMessageInput is the payload for a new chat message.
type PostMessageInput struct {
	Content  string `json:"content"`
	TrackURL string `json:"track_url"`
}

// Post persists a message for the given user with ExpiresAt set ttl from now,
// then broadcasts it. TrackURL is an optional absolute link to a track the
// message embeds.
func (s *ChatService) Post(ctx context.Context, userID uint, in PostMessageInput) (*models.ChatMessage, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, models.NewFieldValidationError("content", "message content is required")
	}
	if utf8.RuneCountInString(content) > maxChatMessageLen {
		return nil, models.NewFieldValidationError("content", "message content is too long")
	}

	trackURL := strings.TrimSpace(in.TrackURL)
	if trackURL != "" {
		if err := validation.ValidateURL(trackURL); err != nil {
			return nil, models.NewFieldValidationError("track_url", err.Error())
		}
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewUnauthorizedError("account no longer exists")
	}
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	msg := &models.ChatMessage{
		UserID:    userID,
		Content:   content,
		TrackURL:  trackURL,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, err
	}
	msg.User = user

	observability.ChatMessagesPosted.Inc()
	if s.broadcaster != nil {
		s.broadcaster.ChatMessagePosted(ctx, msg)
	}
	return msg, nil
}

// Recent returns the newest non-expired messages in chronological order,
// oldest first, ready to render as a transcript.
func (s *ChatService) Recent(ctx context.Context, limit int) ([]*models.ChatMessage, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	messages, err := s.repo.Recent(ctx, limit, s.now().UTC())
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

// Sweep deletes messages past their expiry and returns how many were removed.
func (s *ChatService) Sweep(ctx context.Context) (int64, error) {
	removed, err := s.repo.DeleteExpired(ctx, s.now().UTC())
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		observability.ChatMessagesExpired.Add(float64(removed))
		observability.Logger.InfoContext(ctx, "swept expired chat messages", "removed", removed)
	}
	return removed, nil
}

// RunSweeper sweeps on the given interval until ctx is cancelled.
func (s *ChatService) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.Sweep(ctx); err != nil {
				observability.Logger.ErrorContext(ctx, "chat sweep failed", "error", err.Error())
			}
		}
	}
}
