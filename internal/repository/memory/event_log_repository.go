package memory

import (
	"sync"

	"next-action-be/internal/entity"
)

// IEventLogRepository is the shared historical event log. The request path
// only ever takes snapshots; appends happen through a single consumer
// goroutine (see service.ConsumerService), which keeps the log effectively
// single-writer.
type IEventLogRepository interface {
	Snapshot() []entity.Event
	Append(events []entity.Event)
	Len() int
}

type eventLogRepository struct {
	mu     sync.RWMutex
	events []entity.Event
}

// NewEventLogRepository seeds the log with the loaded dataset snapshot.
func NewEventLogRepository(baseline []entity.Event) IEventLogRepository {
	events := make([]entity.Event, len(baseline))
	copy(events, baseline)
	return &eventLogRepository{events: events}
}

// Snapshot returns a copy of the current log. Callers may merge and sort
// freely without holding any lock.
func (r *eventLogRepository) Snapshot() []entity.Event {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entity.Event, len(r.events))
	copy(out, r.events)
	return out
}

// Append adds events to the log. Append-only: nothing is ever rewritten
// or removed.
func (r *eventLogRepository) Append(events []entity.Event) {
	if len(events) == 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, events...)
}

func (r *eventLogRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.events)
}
