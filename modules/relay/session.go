package relay

import "sync"

// Session is the per-connection state machine: anonymous until an identity
// is set, identified until a room is adopted, then in-room. It holds only
// the identity string and the current room code, never a reference into
// room state.
type Session struct {
	id string

	mu       sync.Mutex
	identity string
	roomCode string
	closed   bool
}

// ID returns the session's connection id.
func (s *Session) ID() string { return s.id }

// Identity returns the bound identity, or "" while anonymous.
func (s *Session) Identity() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity
}

// RoomCode returns the current room code, or "" when not in a room.
func (s *Session) RoomCode() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roomCode
}

// SetIdentity binds an identity to the session. Overwriting an existing
// identity is permitted.
func (s *Session) SetIdentity(identity string) {
	s.mu.Lock()
	s.identity = identity
	s.mu.Unlock()
}

// SetRoom records the session's current room.
func (s *Session) SetRoom(code string) {
	s.mu.Lock()
	s.roomCode = code
	s.mu.Unlock()
}

// Close marks the session closed and returns the identity and room it held,
// with inRoom reporting whether membership cleanup is due. Only the first
// call observes inRoom == true, so disconnect effects run exactly once.
func (s *Session) Close() (identity, roomCode string, inRoom bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return "", "", false
	}
	s.closed = true
	identity, roomCode = s.identity, s.roomCode
	inRoom = identity != "" && roomCode != ""
	s.identity = ""
	s.roomCode = ""
	return identity, roomCode, inRoom
}

// SessionTable associates connection ids with their sessions, keeping
// session state decoupled from the transport object that carries it.
type SessionTable struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewSessionTable creates an empty session table.
func NewSessionTable() *SessionTable {
	return &SessionTable{sessions: make(map[string]*Session)}
}

// Create registers a new anonymous session for a connection id.
func (t *SessionTable) Create(id string) *Session {
	s := &Session{id: id}
	t.mu.Lock()
	t.sessions[id] = s
	t.mu.Unlock()
	return s
}

// Get returns the session for a connection id.
func (t *SessionTable) Get(id string) (*Session, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	s, ok := t.sessions[id]
	return s, ok
}

// Remove drops the session for a connection id.
func (t *SessionTable) Remove(id string) {
	t.mu.Lock()
	delete(t.sessions, id)
	t.mu.Unlock()
}

// Len returns the number of live sessions.
func (t *SessionTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.sessions)
}
