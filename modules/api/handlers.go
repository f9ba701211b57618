package api

import (
	"log"
	"strconv"

	"github.com/example/chat-relay/modules/broadcast"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 1000
)

// setupRoutes configures all HTTP routes.
func (m *APIModule) setupRoutes() {
	// Liveness probe
	m.app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "WebSocket relay server is running"})
	})

	// Health check
	m.app.Get("/health", m.healthHandler)

	// WebSocket endpoint
	m.app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	m.app.Get("/ws", websocket.New(m.handleWebSocket))

	// REST API v1 (read-only)
	api := m.app.Group("/api/v1")

	api.Get("/rooms", m.listRooms)
	api.Get("/rooms/:code", m.getRoom)
	api.Get("/rooms/:code/history", m.getHistory)
	api.Get("/stats", m.getStats)
}

// healthHandler handles GET /health.
func (m *APIModule) healthHandler(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status: "healthy",
		Details: map[string]any{
			"module":            "api",
			"connected_clients": m.hub.ClientCount(),
		},
	})
}

// listRooms handles GET /api/v1/rooms.
func (m *APIModule) listRooms(c *fiber.Ctx) error {
	rooms := m.relay.Registry().Rooms()

	response := RoomListResponse{
		Rooms: make([]RoomResponse, 0, len(rooms)),
	}
	for _, room := range rooms {
		response.Rooms = append(response.Rooms, RoomResponse{
			RoomCode:   room.Code,
			Members:    room.Members,
			Messages:   room.Messages,
			LastActive: room.LastActive,
		})
	}

	return c.JSON(response)
}

// getRoom handles GET /api/v1/rooms/:code.
func (m *APIModule) getRoom(c *fiber.Ctx) error {
	code := c.Params("code")

	room, ok := m.relay.Registry().Room(code)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error:   "not_found",
			Message: "Room not found",
		})
	}

	return c.JSON(RoomResponse{
		RoomCode:   room.Code,
		Members:    room.Members,
		Messages:   room.Messages,
		LastActive: room.LastActive,
	})
}

// getHistory handles GET /api/v1/rooms/:code/history.
func (m *APIModule) getHistory(c *fiber.Ctx) error {
	code := c.Params("code")
	limit := defaultHistoryLimit
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= maxHistoryLimit {
			limit = parsed
		}
	}

	messages, err := m.relay.Registry().Messages(code)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error:   "not_found",
			Message: "Room not found",
		})
	}

	if len(messages) > limit {
		messages = messages[len(messages)-limit:]
	}

	return c.JSON(HistoryResponse{
		RoomCode: code,
		Messages: messages,
	})
}

// getStats handles GET /api/v1/stats.
func (m *APIModule) getStats(c *fiber.Ctx) error {
	summary, err := m.statsQuery.GetSummary(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "stats_unavailable",
			Message: "Failed to fetch stats",
		})
	}

	return c.JSON(StatsResponse{
		ConnectedClients: m.hub.ClientCount(),
		Rooms:            m.relay.Registry().RoomCount(),
		Summary:          summary,
	})
}

// handleWebSocket handles WebSocket connections at /ws.
func (m *APIModule) handleWebSocket(c *websocket.Conn) {
	connID := uuid.New().String()
	client := broadcast.NewClient(connID, c)

	dispatcher := m.relay.Dispatcher()

	m.hub.Register(client)
	sess := dispatcher.Connect(connID)
	defer func() {
		m.hub.Unregister(client)
		dispatcher.Disconnect(sess)
		log.Printf("[api] WebSocket client disconnected: %s", connID)
	}()

	log.Printf("[api] WebSocket client connected: %s", connID)

	// Message loop
	for {
		_, data, err := c.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[api] Client %s closed connection", connID)
			} else {
				log.Printf("[api] Read error from %s: %v", connID, err)
			}
			break
		}

		dispatcher.Dispatch(sess, client, data)
	}
}
