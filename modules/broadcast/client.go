package broadcast

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/gofiber/contrib/websocket"
)

// ErrClientClosed is returned when writing to a client whose connection
// has been closed.
var ErrClientClosed = errors.New("client closed")

// Conn is a connection the hub can deliver frames to.
type Conn interface {
	ID() string
	WriteFrame(v any) error
	Close() error
}

// Client wraps a websocket connection. All writes go through WriteFrame,
// which serializes them: dispatcher acks and hub broadcasts come from
// different goroutines and must not interleave on the wire.
type Client struct {
	id   string
	conn *websocket.Conn

	mu     sync.Mutex
	closed bool
}

// NewClient wraps a websocket connection for the hub.
func NewClient(id string, conn *websocket.Conn) *Client {
	return &Client{id: id, conn: conn}
}

// ID returns the connection id.
func (c *Client) ID() string { return c.id }

// WriteFrame marshals a frame and writes it as one text message.
func (c *Client) WriteFrame(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClientClosed
	}
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// Close closes the underlying connection. Further writes fail with
// ErrClientClosed.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	return c.conn.Close()
}
