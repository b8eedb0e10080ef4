package api

import (
	"sync"
	"time"

	"github.com/lofiroom/lofid/internal/scheduler"
	"github.com/lofiroom/lofid/pkg/focuslib"
)

const (
	snoozeDelay   = 5 * time.Minute
	snoozeEntryId = "snoozed-reminder"
)

// recordingSink wraps the daemon notification sink and remembers the most
// recent notification carrying a snooze button, so a snooze click can
// re-deliver it later.
type recordingSink struct {
	inner focuslib.NotificationSink

	mu   sync.Mutex
	last *focuslib.NotificationOptions
}

func (r *recordingSink) Show(o focuslib.NotificationOptions) (focuslib.NotificationResult, error) {
	if hasSnoozeAction(o) {
		c := o
		r.mu.Lock()
		r.last = &c
		r.mu.Unlock()
	}
	return r.inner.Show(o)
}

func (r *recordingSink) peek() *focuslib.NotificationOptions {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

func hasSnoozeAction(o focuslib.NotificationOptions) bool {
	for _, a := range o.Actions {
		if a.Id == focuslib.ActionSnooze {
			return true
		}
	}
	return false
}

// ReminderSink is the sink the reminder engines must deliver through so the
// snooze flow can see what was shown.
func (s *Api) ReminderSink() focuslib.NotificationSink {
	return s.sink
}

// snoozeLast defers the last shown reminder. A new snoozable reminder or a
// second snooze click replaces the pending one; only a single deferred
// delivery is kept.
func (s *Api) snoozeLast() {
	if s.sink.peek() == nil {
		s.log.Printf("api: snooze clicked with no reminder to defer")
		return
	}
	s.snoozer.Remove(snoozeEntryId)
	s.snoozer.Add(scheduler.Entry{Id: snoozeEntryId, FireAt: time.Now().Add(snoozeDelay)})
	s.log.Printf("api: reminder snoozed for %s", snoozeDelay)
}

func (s *Api) onSnoozeFire(string) {
	o := s.sink.peek()
	if o == nil {
		return
	}
	if _, err := s.notifier.Show(*o); err != nil {
		s.log.Printf("api: snoozed reminder redelivery failed: %v", err)
	}
}
