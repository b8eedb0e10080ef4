package scheduler

import "time"

// Entry represents one pending deferred delivery in the scheduler heap.
// It is an in-memory only type.
type Entry struct {
	// Id identifies the delivery; the callback receives it when the entry
	// fires and Remove cancels by it.
	Id string
	// FireAt is the wall-clock time when the entry should fire.
	FireAt time.Time
}
