package api

import (
	"time"

	domain "github.com/example/chat-relay/domain/relay"
	"github.com/example/chat-relay/modules/stats"
)

// RoomResponse is the API response for a room snapshot.
type RoomResponse struct {
	RoomCode   string    `json:"roomCode"`
	Members    int       `json:"members"`
	Messages   int       `json:"messages"`
	LastActive time.Time `json:"lastActive"`
}

// RoomListResponse is the API response for listing rooms.
type RoomListResponse struct {
	Rooms []RoomResponse `json:"rooms"`
}

// HistoryResponse is the API response for a room's message history.
type HistoryResponse struct {
	RoomCode string           `json:"roomCode"`
	Messages []domain.Message `json:"messages"`
}

// StatsResponse is the API response for relay activity statistics.
type StatsResponse struct {
	ConnectedClients int           `json:"connectedClients"`
	Rooms            int           `json:"rooms"`
	Summary          stats.Summary `json:"summary"`
}

// ErrorResponse is the API error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// HealthResponse is the API health check response.
type HealthResponse struct {
	Status  string         `json:"status"`
	Details map[string]any `json:"details,omitempty"`
}
