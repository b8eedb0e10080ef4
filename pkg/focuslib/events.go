package focuslib

import (
	"sync"
	"time"
)

// QueueEventType identifies a queue lifecycle event.
type QueueEventType string

const (
	EventItemAdded     QueueEventType = "item-added"
	EventItemStarted   QueueEventType = "item-started"
	EventItemCompleted QueueEventType = "item-completed"
	EventItemSkipped   QueueEventType = "item-skipped"
	EventItemRemoved   QueueEventType = "item-removed"
	EventQueueUpdated  QueueEventType = "queue-updated"
	EventQueueCleared  QueueEventType = "queue-cleared"
)

// QueueEvent is delivered to registered listeners after a queue mutation
// has been persisted.
type QueueEvent struct {
	Type      QueueEventType
	Item      *ScheduleItem
	Timestamp time.Time
}

// QueueListenerFunc receives queue events. Listener panics are not
// recovered: a broken listener should fail loud.
type QueueListenerFunc func(QueueEvent)

// listenerRegistry maps event types to subscribed listeners. Registration
// hands back an unsubscribe func, mirroring the store subscription shape.
type listenerRegistry struct {
	mu   sync.Mutex
	next int
	subs map[QueueEventType]map[int]QueueListenerFunc
}

func newListenerRegistry() *listenerRegistry {
	return &listenerRegistry{
		subs: make(map[QueueEventType]map[int]QueueListenerFunc),
	}
}

func (r *listenerRegistry) on(t QueueEventType, fn QueueListenerFunc) func() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.subs[t] == nil {
		r.subs[t] = make(map[int]QueueListenerFunc)
	}
	id := r.next
	r.next++
	r.subs[t][id] = fn
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.subs[t], id)
	}
}

func (r *listenerRegistry) listeners(t QueueEventType) []QueueListenerFunc {
	r.mu.Lock()
	defer r.mu.Unlock()
	fns := make([]QueueListenerFunc, 0, len(r.subs[t]))
	for _, fn := range r.subs[t] {
		fns = append(fns, fn)
	}
	return fns
}

func (r *listenerRegistry) emit(e QueueEvent) {
	for _, fn := range r.listeners(e.Type) {
		fn(e)
	}
}
