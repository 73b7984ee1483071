package service

import (
	"context"
	"testing"
	"time"

	"playlsd/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chatRepoStub struct {
	createFn        func(ctx context.Context, msg *models.ChatMessage) error
	recentFn        func(ctx context.Context, limit int, now time.Time) ([]*models.ChatMessage, error)
	deleteExpiredFn func(ctx context.Context, now time.Time) (int64, error)
}

func (s *chatRepoStub) Create(ctx context.Context, msg *models.ChatMessage) error {
	return s.createFn(ctx, msg)
}

func (s *chatRepoStub) Recent(ctx context.Context, limit int, now time.Time) ([]*models.ChatMessage, error) {
	return s.recentFn(ctx, limit, now)
}

func (s *chatRepoStub) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	return s.deleteExpiredFn(ctx, now)
}

// userRepoStub's nil function fields behave as "absent" lookups and no-op writes.
type userRepoStub struct {
	createFn        func(ctx context.Context, user *models.User) error
	getByIDFn       func(ctx context.Context, id uint) (*models.User, error)
	getByEmailFn    func(ctx context.Context, email string) (*models.User, error)
	getByUsernameFn func(ctx context.Context, username string) (*models.User, error)
	updateFn        func(ctx context.Context, user *models.User) error
	setAdminFn      func(ctx context.Context, id uint, isAdmin bool) error
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	if s.createFn == nil {
		user.ID = 1
		return nil
	}
	return s.createFn(ctx, user)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	if s.getByIDFn == nil {
		return nil, nil
	}
	return s.getByIDFn(ctx, id)
}

func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.getByEmailFn == nil {
		return nil, nil
	}
	return s.getByEmailFn(ctx, email)
}

func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if s.getByUsernameFn == nil {
		return nil, nil
	}
	return s.getByUsernameFn(ctx, username)
}

func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	if s.updateFn == nil {
		return nil
	}
	return s.updateFn(ctx, user)
}

func (s *userRepoStub) SetAdmin(ctx context.Context, id uint, isAdmin bool) error {
	if s.setAdminFn == nil {
		return nil
	}
	return s.setAdminFn(ctx, id, isAdmin)
}

type chatBroadcastRecorder struct {
	posted []*models.ChatMessage
}

func (b *chatBroadcastRecorder) ChatMessagePosted(_ context.Context, msg *models.ChatMessage) {
	b.posted = append(b.posted, msg)
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func TestChatPost_StampsExpiryAndBroadcasts(t *testing.T) {
	var saved *models.ChatMessage
	repo := &chatRepoStub{
		createFn: func(_ context.Context, msg *models.ChatMessage) error {
			saved = msg
			return nil
		},
	}
	users := &userRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Username: "wavesrider"}, nil
		},
	}
	broadcaster := &chatBroadcastRecorder{}

	svc := NewChatService(repo, users, broadcaster, 24*time.Hour)
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = fixedClock(at)

	msg, err := svc.Post(context.Background(), 5, PostMessageInput{
		Content:  "this mix goes hard",
		TrackURL: "https://open.spotify.com/track/xyz",
	})
	require.NoError(t, err)
	require.NotNil(t, saved)

	assert.Equal(t, at.Add(24*time.Hour), msg.ExpiresAt)
	assert.Equal(t, "wavesrider", msg.User.Username)
	require.Len(t, broadcaster.posted, 1)
	assert.Same(t, msg, broadcaster.posted[0])
}

func TestChatPost_Validation(t *testing.T) {
	repo := &chatRepoStub{
		createFn: func(_ context.Context, _ *models.ChatMessage) error {
			t.Fatal("create should not be called for invalid input")
			return nil
		},
	}
	users := &userRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id}, nil
		},
	}
	svc := NewChatService(repo, users, nil, time.Hour)

	_, err := svc.Post(context.Background(), 5, PostMessageInput{Content: "   "})
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "content", appErr.Field)

	_, err = svc.Post(context.Background(), 5, PostMessageInput{
		Content:  "check this out",
		TrackURL: "not-a-url",
	})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "track_url", appErr.Field)
}

func TestChatRecent_ReturnsChronologicalOrder(t *testing.T) {
	now := time.Now().UTC()
	repo := &chatRepoStub{
		recentFn: func(_ context.Context, limit int, _ time.Time) ([]*models.ChatMessage, error) {
			assert.Equal(t, 50, limit)
			return []*models.ChatMessage{
				{ID: 3, CreatedAt: now},
				{ID: 2, CreatedAt: now.Add(-time.Minute)},
				{ID: 1, CreatedAt: now.Add(-2 * time.Minute)},
			}, nil
		},
	}
	svc := NewChatService(repo, &userRepoStub{}, nil, time.Hour)

	messages, err := svc.Recent(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, uint(1), messages[0].ID)
	assert.Equal(t, uint(3), messages[2].ID)
}

func TestChatSweep_ReportsRemovedCount(t *testing.T) {
	repo := &chatRepoStub{
		deleteExpiredFn: func(_ context.Context, _ time.Time) (int64, error) {
			return 7, nil
		},
	}
	svc := NewChatService(repo, &userRepoStub{}, nil, time.Hour)

	removed, err := svc.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), removed)
}
