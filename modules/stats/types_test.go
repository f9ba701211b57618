package stats

import (
	"testing"
	"time"
)

func TestRelayStore_RecordRoomCreated(t *testing.T) {
	store := NewRelayStore()
	now := time.Now()

	store.RecordRoomCreated("A1B2C3D4E5", now)

	rs, exists := store.GetRoomStats("A1B2C3D4E5")
	if !exists {
		t.Fatal("Expected stats to exist after room creation")
	}
	if rs.RoomCode != "A1B2C3D4E5" {
		t.Errorf("Expected RoomCode = 'A1B2C3D4E5', got %q", rs.RoomCode)
	}
	if !rs.LastActivity.Equal(now) {
		t.Errorf("Expected LastActivity = %v, got %v", now, rs.LastActivity)
	}
}

func TestRelayStore_RecordActivity(t *testing.T) {
	store := NewRelayStore()
	now := time.Now()

	store.RecordRoomCreated("ROOM1", now)
	store.RecordJoin("ROOM1", now)
	store.RecordJoin("ROOM1", now)
	store.RecordLeave("ROOM1", now)
	for i := 0; i < 5; i++ {
		store.RecordMessage("ROOM1", now)
	}

	rs, exists := store.GetRoomStats("ROOM1")
	if !exists {
		t.Fatal("Expected stats to exist")
	}
	if rs.Joins != 2 {
		t.Errorf("Expected Joins = 2, got %d", rs.Joins)
	}
	if rs.Leaves != 1 {
		t.Errorf("Expected Leaves = 1, got %d", rs.Leaves)
	}
	if rs.Messages != 5 {
		t.Errorf("Expected Messages = 5, got %d", rs.Messages)
	}
}

func TestRelayStore_GetSummary(t *testing.T) {
	store := NewRelayStore()
	now := time.Now()

	store.RecordRoomCreated("ROOM1", now)
	store.RecordRoomCreated("ROOM2", now)
	store.RecordJoin("ROOM1", now)
	store.RecordJoin("ROOM2", now)
	store.RecordJoin("ROOM2", now)
	store.RecordMessage("ROOM1", now)
	store.RecordMessage("ROOM2", now)
	store.RecordMessage("ROOM2", now)

	summary := store.GetSummary()

	if summary.RoomsCreated != 2 {
		t.Errorf("Expected RoomsCreated = 2, got %d", summary.RoomsCreated)
	}
	if summary.RoomsTracked != 2 {
		t.Errorf("Expected RoomsTracked = 2, got %d", summary.RoomsTracked)
	}
	if summary.TotalJoins != 3 {
		t.Errorf("Expected TotalJoins = 3, got %d", summary.TotalJoins)
	}
	if summary.TotalMessages != 3 {
		t.Errorf("Expected TotalMessages = 3, got %d", summary.TotalMessages)
	}
}

func TestRelayStore_GetAllRoomStats(t *testing.T) {
	store := NewRelayStore()
	now := time.Now()

	store.RecordRoomCreated("ROOM1", now)
	store.RecordRoomCreated("ROOM2", now)
	store.RecordRoomCreated("ROOM3", now)

	all := store.GetAllRoomStats()
	if len(all) != 3 {
		t.Errorf("Expected 3 stats entries, got %d", len(all))
	}
}

func TestRelayStore_LastActivityMonotonic(t *testing.T) {
	store := NewRelayStore()
	earlier := time.Now()
	later := earlier.Add(time.Minute)

	store.RecordMessage("ROOM1", later)
	store.RecordMessage("ROOM1", earlier)

	rs, _ := store.GetRoomStats("ROOM1")
	if !rs.LastActivity.Equal(later) {
		t.Errorf("Expected LastActivity to stay at %v, got %v", later, rs.LastActivity)
	}
}

func TestRelayStore_NonExistentRoom(t *testing.T) {
	store := NewRelayStore()

	rs, exists := store.GetRoomStats("NOSUCH")
	if exists {
		t.Error("Expected exists = false for unknown room")
	}
	if rs != nil {
		t.Error("Expected stats = nil for unknown room")
	}
}
