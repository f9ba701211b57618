package relay

import (
	"testing"
)

func TestSession_Lifecycle(t *testing.T) {
	table := NewSessionTable()
	sess := table.Create("conn-1")

	if sess.ID() != "conn-1" {
		t.Errorf("Expected ID = conn-1, got %s", sess.ID())
	}
	if sess.Identity() != "" {
		t.Errorf("Expected new session to be anonymous, got identity %q", sess.Identity())
	}
	if sess.RoomCode() != "" {
		t.Errorf("Expected new session to have no room, got %q", sess.RoomCode())
	}

	sess.SetIdentity("alice")
	if sess.Identity() != "alice" {
		t.Errorf("Expected identity = alice, got %q", sess.Identity())
	}

	sess.SetRoom("A1B2C3D4E5")
	if sess.RoomCode() != "A1B2C3D4E5" {
		t.Errorf("Expected roomCode = A1B2C3D4E5, got %q", sess.RoomCode())
	}
}

func TestSession_IdentityOverwrite(t *testing.T) {
	sess := NewSessionTable().Create("conn-1")

	sess.SetIdentity("alice")
	sess.SetIdentity("alice2")

	if sess.Identity() != "alice2" {
		t.Errorf("Expected identity = alice2, got %q", sess.Identity())
	}
}

func TestSession_Close_InRoom(t *testing.T) {
	sess := NewSessionTable().Create("conn-1")
	sess.SetIdentity("alice")
	sess.SetRoom("A1B2C3D4E5")

	identity, roomCode, inRoom := sess.Close()
	if !inRoom {
		t.Fatal("Expected first Close() to report inRoom = true")
	}
	if identity != "alice" || roomCode != "A1B2C3D4E5" {
		t.Errorf("Expected (alice, A1B2C3D4E5), got (%s, %s)", identity, roomCode)
	}

	// Second close must not report membership again
	_, _, inRoom = sess.Close()
	if inRoom {
		t.Error("Expected second Close() to report inRoom = false")
	}
}

func TestSession_Close_NotInRoom(t *testing.T) {
	sess := NewSessionTable().Create("conn-1")
	sess.SetIdentity("alice")

	_, _, inRoom := sess.Close()
	if inRoom {
		t.Error("Expected Close() of identified session without a room to report inRoom = false")
	}
}

func TestSessionTable(t *testing.T) {
	table := NewSessionTable()

	table.Create("conn-1")
	table.Create("conn-2")
	if table.Len() != 2 {
		t.Errorf("Expected Len = 2, got %d", table.Len())
	}

	sess, ok := table.Get("conn-1")
	if !ok || sess.ID() != "conn-1" {
		t.Error("Expected Get to return the session for conn-1")
	}

	table.Remove("conn-1")
	if _, ok := table.Get("conn-1"); ok {
		t.Error("Expected conn-1 to be removed")
	}
	if table.Len() != 1 {
		t.Errorf("Expected Len = 1, got %d", table.Len())
	}
}
