package notifications

import (
	"context"
	"encoding/json"
	"log"
	"runtime/debug"

	"playlsd/internal/models"

	"github.com/redis/go-redis/v9"
)

const (
	// chatChannel carries chat messages to every connected client.
	chatChannel = "playlsd:chat"
	// adminChannel carries submission lifecycle events to admin clients.
	adminChannel = "playlsd:admin"
)

// Event is the envelope every websocket payload travels in.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// Notifier publishes realtime events into Redis channels so every app
// instance can fan them out to its own websocket clients. With a nil Redis
// client it degrades to local-only delivery through the fallback hub.
type Notifier struct {
	rdb *redis.Client

	// fallback receives events directly when Redis is unavailable.
	fallback *Hub
}

// NewNotifier creates a Notifier. hub may be nil when no local fallback is
// wanted (tests exercising the Redis path only).
func NewNotifier(rdb *redis.Client, hub *Hub) *Notifier {
	return &Notifier{rdb: rdb, fallback: hub}
}

func (n *Notifier) publish(ctx context.Context, channel string, event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("notifier: marshal %s event: %v", event.Type, err)
		return
	}

	if n.rdb == nil {
		n.deliverLocal(channel, payload)
		return
	}
	if err := n.rdb.Publish(ctx, channel, string(payload)).Err(); err != nil {
		log.Printf("notifier: publish to %s: %v", channel, err)
		n.deliverLocal(channel, payload)
	}
}

func (n *Notifier) deliverLocal(channel string, payload []byte) {
	if n.fallback == nil {
		return
	}
	switch channel {
	case chatChannel:
		n.fallback.BroadcastAll(payload)
	case adminChannel:
		n.fallback.broadcastAdmins(payload)
	}
}

// ChatMessagePosted implements service.ChatBroadcaster.
func (n *Notifier) ChatMessagePosted(ctx context.Context, msg *models.ChatMessage) {
	n.publish(ctx, chatChannel, Event{Type: "chat_message", Payload: msg})
}

// SubmissionReceived implements service.SubmissionEvents.
func (n *Notifier) SubmissionReceived(ctx context.Context, sub *models.Submission) {
	n.publish(ctx, adminChannel, Event{Type: "submission_received", Payload: sub})
}

// SubmissionReviewed implements service.SubmissionEvents.
func (n *Notifier) SubmissionReviewed(ctx context.Context, sub *models.Submission) {
	n.publish(ctx, adminChannel, Event{Type: "submission_reviewed", Payload: sub})
}

// StartSubscriber subscribes to the chat and admin channels and calls
// onMessage for each incoming message. No-op when Redis is unavailable;
// events then flow through the local fallback instead.
func (n *Notifier) StartSubscriber(
	ctx context.Context, onMessage func(channel string, payload string),
) error {
	if n.rdb == nil {
		return nil
	}
	sub := n.rdb.Subscribe(ctx, chatChannel, adminChannel)
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				func() {
					defer func() {
						if r := recover(); r != nil {
							log.Printf("PANIC in subscriber: %v\n%s", r, debug.Stack())
						}
					}()
					onMessage(msg.Channel, msg.Payload)
				}()
			}
		}
	}()

	return nil
}
