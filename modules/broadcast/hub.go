package broadcast

import (
	"log"
	"sync"
)

// Hub tracks live connections and which room each one is attached to,
// keeping a room-code -> connection-ids reverse index so fan-out touches
// only a room's members, never every connection.
type Hub struct {
	mu       sync.RWMutex
	clients  map[string]Conn            // connID -> connection
	rooms    map[string]map[string]bool // roomCode -> set of connIDs
	attached map[string]string          // connID -> roomCode
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		clients:  make(map[string]Conn),
		rooms:    make(map[string]map[string]bool),
		attached: make(map[string]string),
	}
}

// Register adds a connection to the hub.
func (h *Hub) Register(c Conn) {
	h.mu.Lock()
	h.clients[c.ID()] = c
	h.mu.Unlock()
	log.Printf("[broadcast] Client %s registered", c.ID())
}

// Unregister removes a connection from the hub and from any room it was
// attached to.
func (h *Hub) Unregister(c Conn) {
	h.mu.Lock()
	if _, ok := h.clients[c.ID()]; ok {
		delete(h.clients, c.ID())
		h.detachLocked(c.ID())
	}
	h.mu.Unlock()
	log.Printf("[broadcast] Client %s unregistered", c.ID())
}

// Attach moves a connection into a room, leaving any previous room.
func (h *Hub) Attach(connID, roomCode string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[connID]; !ok {
		return
	}
	h.detachLocked(connID)

	if h.rooms[roomCode] == nil {
		h.rooms[roomCode] = make(map[string]bool)
	}
	h.rooms[roomCode][connID] = true
	h.attached[connID] = roomCode
}

// Detach removes a connection from its current room, keeping it
// registered.
func (h *Hub) Detach(connID string) {
	h.mu.Lock()
	h.detachLocked(connID)
	h.mu.Unlock()
}

// detachLocked must be called with h.mu held.
func (h *Hub) detachLocked(connID string) {
	roomCode, ok := h.attached[connID]
	if !ok {
		return
	}
	delete(h.attached, connID)
	if h.rooms[roomCode] != nil {
		delete(h.rooms[roomCode], connID)
		if len(h.rooms[roomCode]) == 0 {
			delete(h.rooms, roomCode)
		}
	}
}

// Broadcast delivers a frame to every connection attached to a room,
// including the one that triggered it. Delivery is best-effort: a write
// failure means the connection is closing and it is skipped silently.
func (h *Hub) Broadcast(roomCode string, frame any) {
	h.mu.RLock()
	targets := make([]Conn, 0, len(h.rooms[roomCode]))
	for connID := range h.rooms[roomCode] {
		if c, ok := h.clients[connID]; ok {
			targets = append(targets, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range targets {
		if err := c.WriteFrame(frame); err != nil {
			log.Printf("[broadcast] Skipping client %s: %v", c.ID(), err)
		}
	}
}

// ClientCount returns the total number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// RoomClientCount returns the number of connections attached to a room.
func (h *Hub) RoomClientCount(roomCode string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roomCode])
}

// CloseAll closes every connection and clears the hub.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	clients := make([]Conn, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.clients = make(map[string]Conn)
	h.rooms = make(map[string]map[string]bool)
	h.attached = make(map[string]string)
	h.mu.Unlock()

	for _, c := range clients {
		_ = c.Close()
	}
}
