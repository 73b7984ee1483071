package server

import (
	"context"
	"encoding/json"
	"log"

	"playlsd/internal/featureflags"
	"playlsd/internal/notifications"
	"playlsd/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// WebsocketHandler handles GET /api/ws: the realtime feed of chat messages
// and, for admins, submission events. Incoming frames may carry chat
// messages, which go through the same validation path as the REST endpoint.
func (s *Server) WebsocketHandler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		userIDVal := conn.Locals("userID")
		if userIDVal == nil {
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"unauthorized"}`))
			_ = conn.Close()
			return
		}
		userID := userIDVal.(uint)

		client, err := s.hub.Register(userID, conn)
		if err != nil {
			log.Printf("WebSocket: failed to register user %d: %v", userID, err)
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"`+err.Error()+`"}`))
			_ = conn.Close()
			return
		}

		client.IncomingHandler = func(_ *notifications.Client, message []byte) {
			s.handleChatFrame(userID, client, message)
		}

		go client.WritePump()
		client.ReadPump()
	})
}

// handleChatFrame processes one incoming websocket frame. Chat messages go
// through the same feature gate and validation path as the REST endpoint.
func (s *Server) handleChatFrame(userID uint, client *notifications.Client, message []byte) {
	var frame struct {
		Type    string                   `json:"type"`
		Payload service.PostMessageInput `json:"payload"`
	}
	if err := json.Unmarshal(message, &frame); err != nil {
		log.Printf("WebSocket: invalid frame from user %d", userID)
		return
	}
	if frame.Type != "chat_message" {
		return
	}

	if !s.featureFlags.Enabled(featureflags.FlagChat, userID) {
		resp, _ := json.Marshal(fiber.Map{"type": "error", "payload": "Chat is temporarily unavailable"})
		client.TrySend(resp)
		return
	}

	if _, err := s.chatService.Post(context.Background(), userID, frame.Payload); err != nil {
		resp, _ := json.Marshal(fiber.Map{"type": "error", "payload": err.Error()})
		client.TrySend(resp)
	}
}
