package relay

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-monolith/mono"

	domain "github.com/example/chat-relay/domain/relay"
	"github.com/example/chat-relay/events"
)

// Module is the relay core as a mono module: it owns the room registry,
// the session table and the dispatcher, and publishes relay events for
// observers. The broadcaster is injected from main before Start.
type Module struct {
	registry   *Registry
	sessions   *SessionTable
	dispatcher *Dispatcher
	eventBus   mono.EventBus
	logger     *slog.Logger
}

// Compile-time interface checks
var (
	_ mono.Module                = (*Module)(nil)
	_ mono.EventBusAwareModule   = (*Module)(nil)
	_ mono.EventEmitterModule    = (*Module)(nil)
	_ mono.HealthCheckableModule = (*Module)(nil)
	_ EventSink                  = (*Module)(nil)
)

// NewModule creates the relay module.
func NewModule() *Module {
	return &Module{
		registry: NewRegistry(),
		sessions: NewSessionTable(),
		logger:   slog.Default(),
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "relay"
}

// SetEventBus receives the EventBus from the framework.
func (m *Module) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
}

// EmitEvents declares the events this module can emit.
func (m *Module) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.RoomCreatedV1.ToBase(),
		events.UserJoinedV1.ToBase(),
		events.UserLeftV1.ToBase(),
		events.MessageSentV1.ToBase(),
	}
}

// SetBroadcaster wires the fan-out side in and builds the dispatcher.
// Called from main before the application starts.
func (m *Module) SetBroadcaster(b Broadcaster) {
	m.dispatcher = NewDispatcher(m.registry, m.sessions, b, m)
}

// Start verifies wiring.
func (m *Module) Start(_ context.Context) error {
	if m.dispatcher == nil {
		return fmt.Errorf("broadcaster dependency not set")
	}
	m.logger.Info("relay module started")
	return nil
}

// Stop gracefully shuts down the module.
func (m *Module) Stop(_ context.Context) error {
	m.logger.Info("relay module stopped", "rooms", m.registry.RoomCount(), "sessions", m.sessions.Len())
	return nil
}

// Health returns the health status.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: m.dispatcher != nil,
		Message: "operational",
		Details: map[string]any{
			"rooms":    m.registry.RoomCount(),
			"sessions": m.sessions.Len(),
		},
	}
}

// Dispatcher returns the frame dispatcher for the transport layer.
func (m *Module) Dispatcher() *Dispatcher {
	return m.dispatcher
}

// Registry returns the room registry for read-only HTTP access.
func (m *Module) Registry() *Registry {
	return m.registry
}

// EventSink implementation: operations publish versioned events on the
// bus. Publication is best-effort and never fails the operation.

// RoomCreated publishes a RoomCreated event.
func (m *Module) RoomCreated(code, owner string) {
	m.publish(func() error {
		return events.RoomCreatedV1.Publish(m.eventBus, events.RoomCreatedEvent{
			RoomCode:  code,
			Owner:     owner,
			Timestamp: time.Now().UTC(),
		}, nil)
	}, "RoomCreated")
}

// UserJoined publishes a UserJoined event.
func (m *Module) UserJoined(code, identity string, count int) {
	m.publish(func() error {
		return events.UserJoinedV1.Publish(m.eventBus, events.UserJoinedEvent{
			RoomCode:  code,
			UserID:    identity,
			UserCount: count,
			Timestamp: time.Now().UTC(),
		}, nil)
	}, "UserJoined")
}

// UserLeft publishes a UserLeft event.
func (m *Module) UserLeft(code, identity string, count int) {
	m.publish(func() error {
		return events.UserLeftV1.Publish(m.eventBus, events.UserLeftEvent{
			RoomCode:  code,
			UserID:    identity,
			UserCount: count,
			Timestamp: time.Now().UTC(),
		}, nil)
	}, "UserLeft")
}

// MessageSent publishes a MessageSent event.
func (m *Module) MessageSent(code string, msg domain.Message) {
	m.publish(func() error {
		return events.MessageSentV1.Publish(m.eventBus, events.MessageSentEvent{
			RoomCode:  code,
			MessageID: msg.ID,
			SenderID:  msg.SenderID,
			Timestamp: msg.Timestamp,
		}, nil)
	}, "MessageSent")
}

func (m *Module) publish(fn func() error, event string) {
	if m.eventBus == nil {
		return
	}
	if err := fn(); err != nil {
		m.logger.Warn("failed to publish event", "event", event, "error", err)
	}
}
