package event

import (
	"context"
	"sync"

	"github.com/hearthvale/craftforge/internal/domain"
	"github.com/hearthvale/craftforge/internal/logger"
	"github.com/hearthvale/craftforge/internal/metrics"
)

// Bus publishes craft lifecycle events to in-process subscribers
type Bus interface {
	Publish(ctx context.Context, evt Event)
	Subscribe(eventType domain.EventType, handler Handler)
}

type bus struct {
	mu       sync.RWMutex
	handlers map[domain.EventType][]Handler
}

// NewBus creates an in-process event bus
func NewBus() Bus {
	return &bus{
		handlers: make(map[domain.EventType][]Handler),
	}
}

// Subscribe registers a handler for an event type
func (b *bus) Subscribe(eventType domain.EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// Publish delivers the event to every subscriber synchronously.
// A failing handler never fails the publish; errors are logged and
// counted so the request path stays unaffected.
func (b *bus) Publish(ctx context.Context, evt Event) {
	b.mu.RLock()
	handlers := b.handlers[evt.Type]
	b.mu.RUnlock()

	metrics.EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	log := logger.WithComponent(ctx, "event")
	for _, h := range handlers {
		if err := h(evt); err != nil {
			metrics.EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
			log.Error("Event handler failed", "event_type", evt.Type, "error", err)
		}
	}
}
