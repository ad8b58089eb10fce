// Package event handles triggering of operations without direct dependency
package event

import (
	"context"
	"fmt"
	"sync"

	"yogaday/local-app/internal/log"
)

// EventType represents the type of event
type EventType int

const (
	AsanasChanged EventType = iota
	FlowsChanged
	AsanaTagsChanged
	FlowTagsChanged
	LibraryReplaced
	EditFocusChanged
)

// String returns the name of the event type.
func (t EventType) String() string {
	switch t {
	case AsanasChanged:
		return "AsanasChanged"
	case FlowsChanged:
		return "FlowsChanged"
	case AsanaTagsChanged:
		return "AsanaTagsChanged"
	case FlowTagsChanged:
		return "FlowTagsChanged"
	case LibraryReplaced:
		return "LibraryReplaced"
	case EditFocusChanged:
		return "EditFocusChanged"
	default:
		return fmt.Sprintf("EventType(%d)", int(t))
	}
}

// Event represents an event with its type and associated data
type Event struct {
	Type EventType
	Data interface{}
}

// EventHandler is a function type for event handlers
type EventHandler func(Event)

// EventManager manages event subscriptions and publications.
// Handlers run synchronously on the publishing goroutine, in subscription order.
type EventManager struct {
	subscribers map[EventType][]EventHandler
	mu          sync.RWMutex
	logger      *log.Logger
}

// NewEventManager creates a new EventManager instance
func NewEventManager(logger *log.Logger) *EventManager {
	return &EventManager{
		subscribers: make(map[EventType][]EventHandler),
		logger:      logger,
	}
}

// Subscribe adds a new event handler for a specific event type
func (em *EventManager) Subscribe(eventType EventType, handler EventHandler) {
	em.mu.Lock()
	defer em.mu.Unlock()
	em.subscribers[eventType] = append(em.subscribers[eventType], handler)
}

// Publish sends an event to all subscribed handlers
func (em *EventManager) Publish(event Event) {
	em.mu.RLock()
	handlers := append([]EventHandler(nil), em.subscribers[event.Type]...)
	em.mu.RUnlock()

	for _, handler := range handlers {
		em.dispatch(handler, event)
	}
}

// dispatch runs one handler, containing any panic so later handlers still run.
func (em *EventManager) dispatch(h EventHandler, event Event) {
	defer func() {
		if r := recover(); r != nil {
			em.logger.Error(context.Background(), "Panic in event handler", log.Fields{
				"event": event.Type.String(),
				"panic": fmt.Sprint(r),
			})
		}
	}()
	h(event)
}
