package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "playlsd_redis_error_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// SubmissionsReceived counts submissions accepted by the registry, by type.
	SubmissionsReceived = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "playlsd_submissions_received_total",
		Help: "Total number of submissions accepted, by submission type",
	}, []string{"type"})

	// SubmissionsReviewed counts moderation decisions, by resulting status.
	SubmissionsReviewed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "playlsd_submissions_reviewed_total",
		Help: "Total number of moderation decisions, by resulting status",
	}, []string{"status"})

	// ChatMessagesPosted counts messages written to the music chat.
	ChatMessagesPosted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "playlsd_chat_messages_posted_total",
		Help: "Total number of chat messages posted",
	})

	// ChatMessagesExpired counts messages removed by the expiry sweeper.
	ChatMessagesExpired = promauto.NewCounter(prometheus.CounterOpts{
		Name: "playlsd_chat_messages_expired_total",
		Help: "Total number of chat messages deleted after expiry",
	})

	// WebSocketConnections is the gauge of active chat WebSocket connections.
	WebSocketConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "playlsd_websocket_connections",
		Help: "Number of active WebSocket connections",
	})

	// WebSocketBackpressureDrops counts messages dropped due to slow clients.
	WebSocketBackpressureDrops = promauto.NewCounter(prometheus.CounterOpts{
		Name: "playlsd_websocket_backpressure_drops_total",
		Help: "Total number of WebSocket messages dropped due to backpressure",
	})
)
