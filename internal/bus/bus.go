// Package bus is the in-process event channel runners emit lifecycle
// notifications into. The bus is an injected collaborator, never a global;
// tests construct a fresh instance per test.
package bus

import "sync"

// Event names emitted by the agent runner.
const (
	EventAgentStarted  = "agent:started"
	EventTaskCompleted = "task:completed"
	EventTaskEscalated = "task:escalated"
)

// Event is one emitted notification.
type Event struct {
	Name    string
	Payload map[string]any
}

// Bus receives lifecycle events from runners. Implementations must be safe
// for concurrent use by multiple runners.
type Bus interface {
	Emit(name string, payload map[string]any)
}

// Handler consumes events delivered by an InMemory bus.
type Handler func(Event)

// InMemory is a synchronous fan-out bus. Handlers run on the emitting
// goroutine, so they must not block.
type InMemory struct {
	mu       sync.RWMutex
	handlers []Handler
}

// NewInMemory creates an empty bus.
func NewInMemory() *InMemory {
	return &InMemory{}
}

// Subscribe registers a handler for all subsequent events.
func (b *InMemory) Subscribe(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, h)
}

// Emit delivers the event to every subscribed handler.
func (b *InMemory) Emit(name string, payload map[string]any) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers))
	copy(handlers, b.handlers)
	b.mu.RUnlock()

	evt := Event{Name: name, Payload: payload}
	for _, h := range handlers {
		h(evt)
	}
}
