package relay

import (
	"sync"
	"time"

	domain "github.com/example/chat-relay/domain/relay"
)

// room holds one room's shared mutable state. The member set and message
// log are only ever touched under mu, so mutations on a single room are
// serialized while distinct rooms proceed independently.
type room struct {
	mu         sync.Mutex
	members    map[string]struct{}
	messages   []domain.Message
	lastActive time.Time
}

func (r *room) snapshot(code string) domain.RoomInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	return domain.RoomInfo{
		Code:       code,
		Members:    len(r.members),
		Messages:   len(r.messages),
		LastActive: r.lastActive,
	}
}

// Registry owns all Room state. Sessions hold room codes, never references
// to room internals; every mutation goes through the registry. Rooms are
// never deleted; an empty room persists with its message log for the life
// of the process.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*room
}

// NewRegistry creates an empty room registry.
func NewRegistry() *Registry {
	return &Registry{rooms: make(map[string]*room)}
}

// CreateRoom allocates a fresh room with owner as its sole member and
// returns the generated room code. The only failure mode is the entropy
// source.
func (g *Registry) CreateRoom(owner string) (string, error) {
	code, err := GenerateRoomCode()
	if err != nil {
		return "", err
	}

	g.mu.Lock()
	g.rooms[code] = &room{
		members:    map[string]struct{}{owner: {}},
		messages:   make([]domain.Message, 0),
		lastActive: time.Now(),
	}
	g.mu.Unlock()

	return code, nil
}

func (g *Registry) room(code string) (*room, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	r, ok := g.rooms[code]
	return r, ok
}

// Room returns a snapshot of the room with the given code.
func (g *Registry) Room(code string) (domain.RoomInfo, bool) {
	r, ok := g.room(code)
	if !ok {
		return domain.RoomInfo{}, false
	}
	return r.snapshot(code), true
}

// Rooms returns snapshots of all live rooms.
func (g *Registry) Rooms() []domain.RoomInfo {
	g.mu.RLock()
	codes := make([]string, 0, len(g.rooms))
	for code := range g.rooms {
		codes = append(codes, code)
	}
	g.mu.RUnlock()

	result := make([]domain.RoomInfo, 0, len(codes))
	for _, code := range codes {
		if r, ok := g.room(code); ok {
			result = append(result, r.snapshot(code))
		}
	}
	return result
}

// RoomCount returns the number of live rooms.
func (g *Registry) RoomCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.rooms)
}

// AddMember adds identity to the room's member set and returns the updated
// member count. Adding an already-present member is a no-op on the set but
// still touches the activity timestamp.
func (g *Registry) AddMember(code, identity string) (int, error) {
	r, ok := g.room(code)
	if !ok {
		return 0, ErrRoomNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.members[identity] = struct{}{}
	r.lastActive = time.Now()
	return len(r.members), nil
}

// RemoveMember removes identity from the room's member set and returns the
// updated member count. Removing an absent member is a no-op.
func (g *Registry) RemoveMember(code, identity string) (int, error) {
	r, ok := g.room(code)
	if !ok {
		return 0, ErrRoomNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.members, identity)
	r.lastActive = time.Now()
	return len(r.members), nil
}

// AppendMessage appends msg to the room's log. The log is append-only and
// unbounded; messages are immutable once stored.
func (g *Registry) AppendMessage(code string, msg domain.Message) (domain.Message, error) {
	r, ok := g.room(code)
	if !ok {
		return domain.Message{}, ErrRoomNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, msg)
	r.lastActive = time.Now()
	return msg, nil
}

// Messages returns a copy of the room's message log in append order.
func (g *Registry) Messages(code string) ([]domain.Message, error) {
	r, ok := g.room(code)
	if !ok {
		return nil, ErrRoomNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]domain.Message, len(r.messages))
	copy(result, r.messages)
	return result, nil
}
