package event

import (
	"slices"
	"sort"
	"sync"

	"github.com/agency/backend/internal/domain/shared"
)

// AllEvents subscribes a handler to every event type.
const AllEvents = "*"

// HandlerRegistry maps event types to their subscribed handlers.
type HandlerRegistry struct {
	mu     sync.RWMutex
	byType map[string][]shared.EventHandler
}

func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{byType: make(map[string][]shared.EventHandler)}
}

// Register subscribes handler to eventTypes. With none given the handler's own
// EventTypes are used, and a handler declaring none receives every event.
// A handler is held at most once per type.
func (r *HandlerRegistry) Register(handler shared.EventHandler, eventTypes ...string) {
	if len(eventTypes) == 0 {
		eventTypes = handler.EventTypes()
	}
	if len(eventTypes) == 0 {
		eventTypes = []string{AllEvents}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, eventType := range eventTypes {
		if !slices.Contains(r.byType[eventType], handler) {
			r.byType[eventType] = append(r.byType[eventType], handler)
		}
	}
}

// Unregister drops handler from every type it was registered for.
func (r *HandlerRegistry) Unregister(handler shared.EventHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for eventType, handlers := range r.byType {
		kept := slices.DeleteFunc(slices.Clone(handlers), func(h shared.EventHandler) bool { return h == handler })
		if len(kept) == 0 {
			delete(r.byType, eventType)
			continue
		}
		r.byType[eventType] = kept
	}
}

// GetHandlers returns a snapshot of the handlers for eventType followed by the
// AllEvents subscribers.
func (r *HandlerRegistry) GetHandlers(eventType string) []shared.EventHandler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := slices.Clone(r.byType[eventType])
	if eventType != AllEvents {
		out = append(out, r.byType[AllEvents]...)
	}
	return out
}

// EventTypes lists the types with a dedicated subscriber, sorted.
func (r *HandlerRegistry) EventTypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.byType))
	for eventType := range r.byType {
		if eventType != AllEvents {
			types = append(types, eventType)
		}
	}
	sort.Strings(types)
	return types
}
