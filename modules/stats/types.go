package stats

import (
	"sync"
	"time"
)

// RoomStats tracks per-room activity counters.
type RoomStats struct {
	RoomCode     string    `json:"room_code"`
	Messages     int64     `json:"messages"`
	Joins        int64     `json:"joins"`
	Leaves       int64     `json:"leaves"`
	LastActivity time.Time `json:"last_activity,omitempty"`
}

// Summary is the aggregate view returned by the get-relay-stats service.
type Summary struct {
	RoomsCreated  int64 `json:"rooms_created"`
	RoomsTracked  int   `json:"rooms_tracked"`
	TotalJoins    int64 `json:"total_joins"`
	TotalLeaves   int64 `json:"total_leaves"`
	TotalMessages int64 `json:"total_messages"`
}

// RelayStore provides thread-safe storage for relay activity counters.
type RelayStore struct {
	mu           sync.RWMutex
	roomStats    map[string]*RoomStats
	roomsCreated int64
	joins        int64
	leaves       int64
	messages     int64
}

// NewRelayStore creates an empty store.
func NewRelayStore() *RelayStore {
	return &RelayStore{
		roomStats: make(map[string]*RoomStats),
	}
}

func (s *RelayStore) room(code string) *RoomStats {
	rs, exists := s.roomStats[code]
	if !exists {
		rs = &RoomStats{RoomCode: code}
		s.roomStats[code] = rs
	}
	return rs
}

// RecordRoomCreated records a room creation event.
func (s *RelayStore) RecordRoomCreated(code string, createdAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.roomsCreated++
	rs := s.room(code)
	if rs.LastActivity.Before(createdAt) {
		rs.LastActivity = createdAt
	}
}

// RecordJoin records a user joining a room.
func (s *RelayStore) RecordJoin(code string, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.joins++
	rs := s.room(code)
	rs.Joins++
	if rs.LastActivity.Before(at) {
		rs.LastActivity = at
	}
}

// RecordLeave records a user leaving a room.
func (s *RelayStore) RecordLeave(code string, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.leaves++
	rs := s.room(code)
	rs.Leaves++
	if rs.LastActivity.Before(at) {
		rs.LastActivity = at
	}
}

// RecordMessage records a chat message relayed through a room.
func (s *RelayStore) RecordMessage(code string, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages++
	rs := s.room(code)
	rs.Messages++
	if rs.LastActivity.Before(at) {
		rs.LastActivity = at
	}
}

// GetRoomStats returns counters for a specific room.
func (s *RelayStore) GetRoomStats(code string) (*RoomStats, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rs, exists := s.roomStats[code]
	if !exists {
		return nil, false
	}

	// Return a copy to avoid race conditions
	copy := *rs
	return &copy, true
}

// GetAllRoomStats returns counters for every tracked room.
func (s *RelayStore) GetAllRoomStats() []RoomStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]RoomStats, 0, len(s.roomStats))
	for _, rs := range s.roomStats {
		result = append(result, *rs)
	}
	return result
}

// GetSummary returns the aggregate activity summary.
func (s *RelayStore) GetSummary() Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Summary{
		RoomsCreated:  s.roomsCreated,
		RoomsTracked:  len(s.roomStats),
		TotalJoins:    s.joins,
		TotalLeaves:   s.leaves,
		TotalMessages: s.messages,
	}
}
