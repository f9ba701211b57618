package relay

import "time"

// Message is a chat message as it appears on the wire and in a room's log.
// SenderID is bound server-side to the sending connection's identity;
// Sender is the caller-supplied display name.
type Message struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Sender    string    `json:"sender"`
	SenderID  string    `json:"senderId"`
	Timestamp time.Time `json:"timestamp"`
}

// RoomInfo is a read-only snapshot of a room.
type RoomInfo struct {
	Code       string    `json:"roomCode"`
	Members    int       `json:"members"`
	Messages   int       `json:"messages"`
	LastActive time.Time `json:"lastActive"`
}
