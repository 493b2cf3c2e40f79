package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"ai-writing-assistant-be/internal/pkg/logger"
	"ai-writing-assistant-be/internal/repository/memory"
	internalWS "ai-writing-assistant-be/internal/websocket"
	"ai-writing-assistant-be/pkg/bus"
	"ai-writing-assistant-be/pkg/events"
)

// NotificationHandler owns the websocket feed clients subscribe to for
// session toasts, plus a debug endpoint for injecting raw events.
type NotificationHandler struct {
	sessionRepo *memory.SessionRepository
	publisher   *bus.Publisher
	hub         *internalWS.Hub
	logger      logger.ILogger
}

func NewNotificationHandler(sessionRepo *memory.SessionRepository, pub *bus.Publisher, hub *internalWS.Hub, log logger.ILogger) *NotificationHandler {
	return &NotificationHandler{
		sessionRepo: sessionRepo,
		publisher:   pub,
		hub:         hub,
		logger:      log,
	}
}

// ServeWs handles websocket requests from the peer. The connection is scoped
// to one session; only that session's notifications are pushed down it.
func (h *NotificationHandler) ServeWs(c *fiber.Ctx) error {
	sessionId, err := uuid.Parse(c.Params("session_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session ID"})
	}

	if _, found := h.sessionRepo.Get(sessionId); !found {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Session not found"})
	}

	// Upgrade via Fiber WebSocket Middleware
	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("NotificationHandler", "Starting WebSocket session", map[string]interface{}{"session_id": sessionId})
			internalWS.ServeWs(h.hub, conn, sessionId)
			h.logger.Info("NotificationHandler", "WebSocket session ended", map[string]interface{}{"session_id": sessionId})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

// DebugTriggerEvent publishes a raw event onto the bus to test the
// notification flow end to end.
func (h *NotificationHandler) DebugTriggerEvent(c *fiber.Ctx) error {
	type Request struct {
		Type    string                 `json:"type"`
		Payload map[string]interface{} `json:"payload"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if req.Type == "" {
		req.Type = "TEST_EVENT"
	}
	if req.Payload == nil {
		req.Payload = make(map[string]interface{})
	}

	evt := events.BaseEvent{
		Type:       req.Type,
		Data:       req.Payload,
		OccurredAt: time.Now(),
	}

	if h.publisher == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Event publisher not configured"})
	}

	if err := h.publisher.Publish(c.UserContext(), evt); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"status": "Event Published", "event": evt})
}

// RegisterRoutes registers the websocket and debug routes. These sit outside
// the /api prefix, so they are registered on the app itself.
func (h *NotificationHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/ws/:session_id", h.ServeWs)

	debug := router.Group("/debug")
	debug.Post("/trigger-event", h.DebugTriggerEvent)
}
