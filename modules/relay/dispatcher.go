package relay

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	domain "github.com/example/chat-relay/domain/relay"
)

// FrameWriter delivers outbound frames to a single connection.
type FrameWriter interface {
	WriteFrame(v any) error
}

// Broadcaster is the fan-out side of the relay: it tracks which room each
// connection is attached to and delivers a frame to every connection
// attached to a room, skipping connections that are closing.
type Broadcaster interface {
	Attach(connID, roomCode string)
	Detach(connID string)
	Broadcast(roomCode string, frame any)
}

// EventSink observes the operations the dispatcher applies. Sinks must not
// feed back into the core; delivery is best-effort.
type EventSink interface {
	RoomCreated(code, owner string)
	UserJoined(code, identity string, count int)
	UserLeft(code, identity string, count int)
	MessageSent(code string, msg domain.Message)
}

// Dispatcher routes inbound frames: it parses each frame, validates the
// session's state against the operation, applies the registry mutation,
// and fans out the resulting frames. Failures are reported as an error
// frame to the originating connection only; the connection stays open.
type Dispatcher struct {
	registry    *Registry
	sessions    *SessionTable
	broadcaster Broadcaster
	events      EventSink
	logger      *slog.Logger

	// Per-room operation locks. Each spans a registry mutation plus its
	// fan-out, so recipients observe one room's events in the order the
	// server applied them. Locks are never nested across rooms.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewDispatcher wires a dispatcher over the registry, session table,
// broadcaster and event sink.
func NewDispatcher(registry *Registry, sessions *SessionTable, b Broadcaster, sink EventSink) *Dispatcher {
	return &Dispatcher{
		registry:    registry,
		sessions:    sessions,
		broadcaster: b,
		events:      sink,
		logger:      slog.Default(),
		locks:       make(map[string]*sync.Mutex),
	}
}

// Connect registers a new anonymous session for a connection id.
func (d *Dispatcher) Connect(connID string) *Session {
	d.logger.Info("session connected", "connId", connID)
	return d.sessions.Create(connID)
}

// Dispatch handles one inbound frame for a session.
func (d *Dispatcher) Dispatch(sess *Session, w FrameWriter, data []byte) {
	var frame InboundFrame
	if err := json.Unmarshal(data, &frame); err != nil {
		d.reportError(sess, w, ErrInvalidFrame)
		return
	}

	var err error
	switch frame.Type {
	case FrameSetIdentity:
		err = d.handleSetIdentity(sess, w, frame)
	case FrameCreateRoom:
		err = d.handleCreateRoom(sess, w)
	case FrameJoinRoom:
		err = d.handleJoinRoom(sess, w, frame)
	case FrameChatMessage:
		err = d.handleChatMessage(sess, frame)
	default:
		err = fmt.Errorf("%w: unknown message type %q", ErrProtocol, frame.Type)
	}

	if err != nil {
		d.reportError(sess, w, err)
	}
}

// Disconnect tears the session down. If the session was in a room its
// identity is removed from the member set and the remaining members are
// told the updated count; a session that never joined a room produces no
// broadcast. Safe to call more than once.
func (d *Dispatcher) Disconnect(sess *Session) {
	identity, code, inRoom := sess.Close()
	d.sessions.Remove(sess.ID())
	d.logger.Info("session disconnected", "connId", sess.ID())
	if !inRoom {
		return
	}

	lock := d.roomLock(code)
	lock.Lock()
	count, err := d.registry.RemoveMember(code, identity)
	if err == nil {
		d.broadcaster.Broadcast(code, UserCountFrame{Type: FrameUserLeft, UserCount: count})
	}
	lock.Unlock()

	if err == nil {
		d.events.UserLeft(code, identity, count)
	}
}

func (d *Dispatcher) handleSetIdentity(sess *Session, w FrameWriter, frame InboundFrame) error {
	if frame.UserID == "" {
		return ErrUserIDRequired
	}

	sess.SetIdentity(frame.UserID)
	d.writeFrame(sess, w, IdentitySetFrame{Type: FrameIdentitySet, UserID: frame.UserID})
	return nil
}

func (d *Dispatcher) handleCreateRoom(sess *Session, w FrameWriter) error {
	identity := sess.Identity()
	if identity == "" {
		return ErrIdentityRequired
	}

	code, err := d.registry.CreateRoom(identity)
	if err != nil {
		d.logger.Error("room code generation failed", "error", err)
		return fmt.Errorf("failed to create room")
	}

	if prev := sess.RoomCode(); prev != "" {
		d.leaveRoom(sess, identity, prev)
	}

	sess.SetRoom(code)
	d.broadcaster.Attach(sess.ID(), code)
	d.writeFrame(sess, w, RoomCreatedFrame{Type: FrameRoomCreated, RoomCode: code})

	d.events.RoomCreated(code, identity)
	d.logger.Info("room created", "roomCode", code, "owner", identity)
	return nil
}

func (d *Dispatcher) handleJoinRoom(sess *Session, w FrameWriter, frame InboundFrame) error {
	code := frame.RoomCode
	if code == "" {
		return ErrRoomCodeRequired
	}
	identity := sess.Identity()
	if identity == "" {
		return ErrIdentityRequired
	}
	if _, ok := d.registry.Room(code); !ok {
		return ErrRoomNotFound
	}

	// Switching rooms leaves the old one first; rejoining the current
	// room is idempotent.
	if prev := sess.RoomCode(); prev != "" && prev != code {
		d.leaveRoom(sess, identity, prev)
	}

	lock := d.roomLock(code)
	lock.Lock()
	defer lock.Unlock()

	count, err := d.registry.AddMember(code, identity)
	if err != nil {
		return err
	}
	backlog, err := d.registry.Messages(code)
	if err != nil {
		return err
	}

	sess.SetRoom(code)
	d.broadcaster.Attach(sess.ID(), code)
	d.writeFrame(sess, w, JoinedRoomFrame{Type: FrameJoinedRoom, RoomCode: code, Messages: backlog})
	d.broadcaster.Broadcast(code, UserCountFrame{Type: FrameUserJoined, UserCount: count})

	d.events.UserJoined(code, identity, count)
	return nil
}

func (d *Dispatcher) handleChatMessage(sess *Session, frame InboundFrame) error {
	if frame.Content == "" || frame.Sender == "" {
		return ErrMessageRequired
	}
	identity := sess.Identity()
	if identity == "" {
		return ErrIdentityRequired
	}
	code := sess.RoomCode()
	if code == "" {
		return ErrNotInRoom
	}

	// senderId comes from the session's bound identity, never from the
	// frame, so the identity field cannot be spoofed.
	msg := domain.Message{
		ID:        uuid.New().String(),
		Content:   frame.Content,
		Sender:    frame.Sender,
		SenderID:  identity,
		Timestamp: time.Now().UTC(),
	}

	lock := d.roomLock(code)
	lock.Lock()
	defer lock.Unlock()

	msg, err := d.registry.AppendMessage(code, msg)
	if err != nil {
		return err
	}
	d.broadcaster.Broadcast(code, NewMessageFrame{Type: FrameNewMessage, Message: msg})

	d.events.MessageSent(code, msg)
	return nil
}

// leaveRoom removes the session's identity from a room it is abandoning,
// detaching the connection first so it does not see the departure frame.
func (d *Dispatcher) leaveRoom(sess *Session, identity, code string) {
	d.broadcaster.Detach(sess.ID())
	sess.SetRoom("")

	lock := d.roomLock(code)
	lock.Lock()
	count, err := d.registry.RemoveMember(code, identity)
	if err == nil {
		d.broadcaster.Broadcast(code, UserCountFrame{Type: FrameUserLeft, UserCount: count})
	}
	lock.Unlock()

	if err == nil {
		d.events.UserLeft(code, identity, count)
	}
}

// reportError converts a failure into an error frame for the originating
// connection. No error here is fatal to the connection.
func (d *Dispatcher) reportError(sess *Session, w FrameWriter, err error) {
	d.logger.Warn("frame rejected", "connId", sess.ID(), "error", err)
	d.writeFrame(sess, w, ErrorFrame{Type: FrameError, Message: err.Error()})
}

// writeFrame sends a frame to one connection, swallowing write failures:
// a connection that is closing simply misses the frame.
func (d *Dispatcher) writeFrame(sess *Session, w FrameWriter, frame any) {
	if err := w.WriteFrame(frame); err != nil {
		d.logger.Debug("frame write failed", "connId", sess.ID(), "error", err)
	}
}

func (d *Dispatcher) roomLock(code string) *sync.Mutex {
	d.mu.Lock()
	defer d.mu.Unlock()
	lock, ok := d.locks[code]
	if !ok {
		lock = &sync.Mutex{}
		d.locks[code] = lock
	}
	return lock
}
