package relay

import (
	"errors"
	"testing"
	"time"

	domain "github.com/example/chat-relay/domain/relay"
)

func TestRegistry_CreateRoom(t *testing.T) {
	registry := NewRegistry()

	code, err := registry.CreateRoom("alice")
	if err != nil {
		t.Fatalf("CreateRoom() error = %v", err)
	}

	if !IsValidRoomCode(code) {
		t.Errorf("CreateRoom() generated invalid code: %s", code)
	}

	info, ok := registry.Room(code)
	if !ok {
		t.Fatal("Expected room to exist after creation")
	}
	if info.Members != 1 {
		t.Errorf("Expected Members = 1, got %d", info.Members)
	}
	if info.Messages != 0 {
		t.Errorf("Expected Messages = 0, got %d", info.Messages)
	}
}

func TestRegistry_CreateRoom_DistinctCodes(t *testing.T) {
	registry := NewRegistry()

	first, err := registry.CreateRoom("alice")
	if err != nil {
		t.Fatalf("CreateRoom() error = %v", err)
	}
	second, err := registry.CreateRoom("alice")
	if err != nil {
		t.Fatalf("CreateRoom() error = %v", err)
	}

	if first == second {
		t.Errorf("Expected distinct room codes, got %s twice", first)
	}
	if registry.RoomCount() != 2 {
		t.Errorf("Expected RoomCount = 2, got %d", registry.RoomCount())
	}
}

func TestRegistry_AddMember(t *testing.T) {
	registry := NewRegistry()
	code, _ := registry.CreateRoom("alice")

	count, err := registry.AddMember(code, "bob")
	if err != nil {
		t.Fatalf("AddMember() error = %v", err)
	}
	if count != 2 {
		t.Errorf("Expected count = 2, got %d", count)
	}

	// Adding the same identity again is a no-op on the member set
	count, err = registry.AddMember(code, "bob")
	if err != nil {
		t.Fatalf("AddMember() error = %v", err)
	}
	if count != 2 {
		t.Errorf("Expected count = 2 after duplicate add, got %d", count)
	}
}

func TestRegistry_RemoveMember(t *testing.T) {
	registry := NewRegistry()
	code, _ := registry.CreateRoom("alice")
	_, _ = registry.AddMember(code, "bob")

	count, err := registry.RemoveMember(code, "bob")
	if err != nil {
		t.Fatalf("RemoveMember() error = %v", err)
	}
	if count != 1 {
		t.Errorf("Expected count = 1, got %d", count)
	}

	// Removing an absent identity is a no-op
	count, err = registry.RemoveMember(code, "carol")
	if err != nil {
		t.Fatalf("RemoveMember() error = %v", err)
	}
	if count != 1 {
		t.Errorf("Expected count = 1 after absent remove, got %d", count)
	}
}

func TestRegistry_RemoveLastMember_KeepsRoom(t *testing.T) {
	registry := NewRegistry()
	code, _ := registry.CreateRoom("alice")

	count, err := registry.RemoveMember(code, "alice")
	if err != nil {
		t.Fatalf("RemoveMember() error = %v", err)
	}
	if count != 0 {
		t.Errorf("Expected count = 0, got %d", count)
	}

	// An empty room persists and stays joinable
	if _, ok := registry.Room(code); !ok {
		t.Error("Expected empty room to persist")
	}
	if _, err := registry.AddMember(code, "bob"); err != nil {
		t.Errorf("Expected empty room to be joinable, got error: %v", err)
	}
}

func TestRegistry_AppendMessage(t *testing.T) {
	registry := NewRegistry()
	code, _ := registry.CreateRoom("alice")

	for i, content := range []string{"first", "second", "third"} {
		msg := domain.Message{
			ID:        string(rune('a' + i)),
			Content:   content,
			Sender:    "Alice",
			SenderID:  "alice",
			Timestamp: time.Now().UTC(),
		}
		if _, err := registry.AppendMessage(code, msg); err != nil {
			t.Fatalf("AppendMessage() error = %v", err)
		}
	}

	messages, err := registry.Messages(code)
	if err != nil {
		t.Fatalf("Messages() error = %v", err)
	}
	if len(messages) != 3 {
		t.Fatalf("Expected 3 messages, got %d", len(messages))
	}
	for i, want := range []string{"first", "second", "third"} {
		if messages[i].Content != want {
			t.Errorf("Expected messages[%d].Content = %q, got %q", i, want, messages[i].Content)
		}
	}
}

func TestRegistry_Messages_ReturnsCopy(t *testing.T) {
	registry := NewRegistry()
	code, _ := registry.CreateRoom("alice")
	_, _ = registry.AppendMessage(code, domain.Message{ID: "m1", Content: "hello"})

	messages, _ := registry.Messages(code)
	messages[0].Content = "mutated"

	fresh, _ := registry.Messages(code)
	if fresh[0].Content != "hello" {
		t.Errorf("Expected stored message to be immutable, got %q", fresh[0].Content)
	}
}

func TestRegistry_UnknownRoom(t *testing.T) {
	registry := NewRegistry()

	if _, ok := registry.Room("FFFFFFFFFF"); ok {
		t.Error("Expected Room() to report missing room")
	}

	if _, err := registry.AddMember("FFFFFFFFFF", "alice"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound from AddMember, got %v", err)
	}
	if _, err := registry.RemoveMember("FFFFFFFFFF", "alice"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound from RemoveMember, got %v", err)
	}
	if _, err := registry.AppendMessage("FFFFFFFFFF", domain.Message{}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound from AppendMessage, got %v", err)
	}
	if _, err := registry.Messages("FFFFFFFFFF"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound from Messages, got %v", err)
	}
}

func TestRegistry_Rooms(t *testing.T) {
	registry := NewRegistry()
	_, _ = registry.CreateRoom("alice")
	_, _ = registry.CreateRoom("bob")

	rooms := registry.Rooms()
	if len(rooms) != 2 {
		t.Errorf("Expected 2 room snapshots, got %d", len(rooms))
	}
}
