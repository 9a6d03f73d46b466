package event

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"parametric-service/internal/models"

	"github.com/google/uuid"
)

// Log is the in-process ordered event record. Appends never fail and
// entries are never mutated or removed, so external auditors reading back
// through the API see the exact emission order.
type Log struct {
	mu     sync.RWMutex
	events []Event
}

func NewLog() *Log {
	return &Log{}
}

func (l *Log) Publish(ctx context.Context, e Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, e)
	return nil
}

// Events returns a copy of the full log in emission order.
func (l *Log) Events() []Event {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Event, len(l.events))
	copy(out, l.events)
	return out
}

// Emitter fans an event out to the log and any configured external sinks.
// External sink failures are logged and swallowed: the settlement path must
// not fail because an indexer is down.
type Emitter struct {
	log   *Log
	sinks []Publisher
}

func NewEmitter(log *Log, sinks ...Publisher) *Emitter {
	return &Emitter{log: log, sinks: sinks}
}

func (e *Emitter) Emit(ctx context.Context, eventType models.EventType, build func(*Event)) {
	evt := Event{
		ID:        uuid.New(),
		Type:      eventType,
		Timestamp: time.Now(),
	}
	if build != nil {
		build(&evt)
	}

	_ = e.log.Publish(ctx, evt)
	for _, sink := range e.sinks {
		if err := sink.Publish(ctx, evt); err != nil {
			slog.Error("failed to publish event to sink", "type", evt.Type, "error", err)
		}
	}
}

// Log exposes the underlying ordered record for read handlers.
func (e *Emitter) Log() *Log {
	return e.log
}
