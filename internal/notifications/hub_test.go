package notifications

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"playlsd/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testEventuallyTimeout = time.Second
	testPollInterval      = 10 * time.Millisecond
)

func TestHub_RegisterAndBroadcast(t *testing.T) {
	hub := NewHub()

	alice, err := hub.Register(1, nil)
	require.NoError(t, err)
	bob, err := hub.Register(2, nil)
	require.NoError(t, err)

	assert.True(t, hub.IsOnline(1))
	assert.Equal(t, 2, hub.ConnectionCount())

	hub.BroadcastAll([]byte(`{"type":"chat_message"}`))

	assert.Len(t, alice.Send, 1)
	assert.Len(t, bob.Send, 1)

	hub.Unregister(alice)
	assert.False(t, hub.IsOnline(1))
	assert.Equal(t, 1, hub.ConnectionCount())
}

func TestHub_PerUserConnectionLimit(t *testing.T) {
	hub := NewHub()

	for i := 0; i < maxConnsPerUser; i++ {
		_, err := hub.Register(1, nil)
		require.NoError(t, err)
	}

	_, err := hub.Register(1, nil)
	assert.Error(t, err)

	_, err = hub.Register(2, nil)
	assert.NoError(t, err)
}

func TestHub_AdminEventsOnlyReachAdmins(t *testing.T) {
	hub := NewHub()
	hub.SetAdminFilter(func(userID uint) bool { return userID == 1 })

	admin, err := hub.Register(1, nil)
	require.NoError(t, err)
	visitor, err := hub.Register(2, nil)
	require.NoError(t, err)

	notifier := NewNotifier(nil, hub)
	notifier.SubmissionReceived(context.Background(), &models.Submission{
		ID:   "a1",
		Type: models.SubmissionTypeSong,
	})

	require.Len(t, admin.Send, 1)
	assert.Empty(t, visitor.Send)

	var event Event
	require.NoError(t, json.Unmarshal(<-admin.Send, &event))
	assert.Equal(t, "submission_received", event.Type)
}

func TestNotifier_NilRedisFallsBackToLocalHub(t *testing.T) {
	hub := NewHub()
	client, err := hub.Register(3, nil)
	require.NoError(t, err)

	notifier := NewNotifier(nil, hub)
	notifier.ChatMessagePosted(context.Background(), &models.ChatMessage{
		UserID:  3,
		Content: "hello",
	})

	require.Len(t, client.Send, 1)

	var event Event
	require.NoError(t, json.Unmarshal(<-client.Send, &event))
	assert.Equal(t, "chat_message", event.Type)
}

func TestHub_RedisWiringDeliversAcrossInstances(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	hub := NewHub()
	notifier := NewNotifier(rdb, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, hub.StartWiring(ctx, notifier))

	client, err := hub.Register(4, nil)
	require.NoError(t, err)

	// Subscription setup races with the publish; retry until delivered.
	assert.Eventually(t, func() bool {
		notifier.ChatMessagePosted(ctx, &models.ChatMessage{UserID: 4, Content: "ping"})
		return len(client.Send) > 0
	}, testEventuallyTimeout, testPollInterval)

	_ = hub.Shutdown(context.Background())
}
