package events

import (
	"time"

	"github.com/go-monolith/mono/pkg/helper"
)

// RoomCreatedEvent is emitted when a connection creates a room.
type RoomCreatedEvent struct {
	RoomCode  string    `json:"room_code"`
	Owner     string    `json:"owner"`
	Timestamp time.Time `json:"timestamp"`
}

// UserJoinedEvent is emitted when an identity joins a room.
type UserJoinedEvent struct {
	RoomCode  string    `json:"room_code"`
	UserID    string    `json:"user_id"`
	UserCount int       `json:"user_count"`
	Timestamp time.Time `json:"timestamp"`
}

// UserLeftEvent is emitted when an identity leaves a room, either by
// switching rooms or by disconnecting.
type UserLeftEvent struct {
	RoomCode  string    `json:"room_code"`
	UserID    string    `json:"user_id"`
	UserCount int       `json:"user_count"`
	Timestamp time.Time `json:"timestamp"`
}

// MessageSentEvent is emitted when a message is appended to a room's log.
type MessageSentEvent struct {
	RoomCode  string    `json:"room_code"`
	MessageID string    `json:"message_id"`
	SenderID  string    `json:"sender_id"`
	Timestamp time.Time `json:"timestamp"`
}

// Event definitions for the relay domain.
var (
	RoomCreatedV1 = helper.EventDefinition[RoomCreatedEvent](
		"relay",
		"RoomCreated",
		"v1",
	)

	UserJoinedV1 = helper.EventDefinition[UserJoinedEvent](
		"relay",
		"UserJoined",
		"v1",
	)

	UserLeftV1 = helper.EventDefinition[UserLeftEvent](
		"relay",
		"UserLeft",
		"v1",
	)

	MessageSentV1 = helper.EventDefinition[MessageSentEvent](
		"relay",
		"MessageSent",
		"v1",
	)
)
