package relay

import domain "github.com/example/chat-relay/domain/relay"

// Frame type discriminators.
const (
	FrameSetIdentity = "set-identity"
	FrameCreateRoom  = "create-room"
	FrameJoinRoom    = "join-room"
	FrameChatMessage = "chat-message"

	FrameIdentitySet = "identity-set"
	FrameRoomCreated = "room-created"
	FrameJoinedRoom  = "joined-room"
	FrameUserJoined  = "user-joined"
	FrameNewMessage  = "new-message"
	FrameUserLeft    = "user-left"
	FrameError       = "error"
)

// InboundFrame is the superset of fields a client may send; Type selects
// which ones are meaningful.
type InboundFrame struct {
	Type     string `json:"type"`
	UserID   string `json:"userId,omitempty"`
	RoomCode string `json:"roomCode,omitempty"`
	Content  string `json:"content,omitempty"`
	Sender   string `json:"sender,omitempty"`
}

// IdentitySetFrame acknowledges set-identity.
type IdentitySetFrame struct {
	Type   string `json:"type"`
	UserID string `json:"userId"`
}

// RoomCreatedFrame acknowledges create-room.
type RoomCreatedFrame struct {
	Type     string `json:"type"`
	RoomCode string `json:"roomCode"`
}

// JoinedRoomFrame acknowledges join-room and carries the full message
// backlog for the joiner.
type JoinedRoomFrame struct {
	Type     string           `json:"type"`
	RoomCode string           `json:"roomCode"`
	Messages []domain.Message `json:"messages"`
}

// UserCountFrame announces the updated member count on user-joined and
// user-left broadcasts.
type UserCountFrame struct {
	Type      string `json:"type"`
	UserCount int    `json:"userCount"`
}

// NewMessageFrame broadcasts an appended message to a room.
type NewMessageFrame struct {
	Type    string         `json:"type"`
	Message domain.Message `json:"message"`
}

// ErrorFrame reports a failure to the originating connection only.
type ErrorFrame struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
