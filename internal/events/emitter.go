package events

import (
	"context"
	"log/slog"
	"sync"
)

// InMemoryEmitter is a simple implementation of the ActivityEmitter
// interface that stores registered handlers in memory and dispatches events
// to them synchronously.
type InMemoryEmitter struct {
	handlers []ActivityHandler
	mu       sync.RWMutex
	logger   *slog.Logger
}

// NewInMemoryEmitter creates a new instance of InMemoryEmitter.
func NewInMemoryEmitter(logger *slog.Logger) *InMemoryEmitter {
	if logger == nil {
		logger = slog.Default()
	}

	return &InMemoryEmitter{
		handlers: make([]ActivityHandler, 0),
		logger:   logger.With(slog.String("component", "activity_emitter")),
	}
}

// Ensure InMemoryEmitter implements ActivityEmitter
var _ ActivityEmitter = (*InMemoryEmitter)(nil)

// RegisterHandler adds a new handler to receive activity events.
func (e *InMemoryEmitter) RegisterHandler(handler ActivityHandler) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handlers = append(e.handlers, handler)
	e.logger.Debug("registered activity handler", "handler_count", len(e.handlers))
}

// EmitActivity publishes the given event to all registered handlers.
// If a handler returns an error, the event is still delivered to all other
// handlers, and the first error encountered is returned.
func (e *InMemoryEmitter) EmitActivity(ctx context.Context, event *PlanActivityEvent) error {
	e.mu.RLock()
	handlers := make([]ActivityHandler, len(e.handlers))
	copy(handlers, e.handlers)
	e.mu.RUnlock()

	e.logger.Debug("emitting plan activity",
		"event_id", event.ID,
		"plan_id", event.PlanID,
		"handler_count", len(handlers))

	var firstErr error
	for i, handler := range handlers {
		if err := handler.HandleActivity(ctx, event); err != nil {
			e.logger.Error("handler failed to process activity event",
				"error", err,
				"handler_index", i,
				"event_id", event.ID,
				"plan_id", event.PlanID)
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	return firstErr
}
