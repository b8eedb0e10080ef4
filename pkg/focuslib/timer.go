package focuslib

import (
	"log"
	"sync"
	"time"
)

// TimerStatus is the run state of the countdown engine.
type TimerStatus string

const (
	TimerIdle    TimerStatus = "idle"
	TimerRunning TimerStatus = "running"
	TimerPaused  TimerStatus = "paused"
)

// TickInterval is the re-evaluation granularity. It is deliberately well
// under a second so completion is detected close to the true deadline even
// when the scheduler is best-effort.
const TickInterval = 200 * time.Millisecond

// TimerHandlers is the mutable handler record the engine publishes through.
// Call sites update it with SetHandlers instead of restarting the engine.
type TimerHandlers struct {
	// OnTick receives the freshly computed remaining seconds. Suppressed
	// while the presentation surface is hidden.
	OnTick func(remaining int)
	// OnComplete receives the item the engine just completed.
	OnComplete func(item *ScheduleItem)
	// OnStatusChange receives every engine status transition.
	OnStatusChange func(status TimerStatus)
}

// TimerState is a read-only snapshot of the engine for display.
type TimerState struct {
	Status    TimerStatus   `json:"status"`
	Remaining int           `json:"remaining"`
	Total     int           `json:"total"`
	Progress  float64       `json:"progress"`
	Current   *ScheduleItem `json:"current,omitempty"`
	Next      *ScheduleItem `json:"next,omitempty"`
}

// Timer drives exactly one queue item at a time. The countdown is defined
// by an absolute wall-clock deadline, not a decrementing counter, so
// irregular tick delivery and renderer throttling cannot accumulate drift:
// every evaluation recomputes remaining = ceil((deadline-now)/1s) from
// scratch.
type Timer struct {
	mu    sync.Mutex
	queue *Queue
	log   *log.Logger
	now   func() time.Time

	status     TimerStatus
	deadline   time.Time // zero unless running
	remaining  int       // seconds; authoritative while not running
	total      int       // nominal seconds of the item driving the clock
	visible    bool
	completing bool

	gen      int
	stop     chan struct{}
	handlers TimerHandlers
}

// NewTimer creates an idle engine over the queue, baselined to the current
// item's duration (or the next pending item's when nothing is active).
func NewTimer(l *log.Logger, q *Queue) *Timer {
	t := &Timer{
		queue:   q,
		log:     l,
		now:     time.Now,
		status:  TimerIdle,
		visible: true,
	}
	t.mu.Lock()
	t.rebaselineLocked()
	t.mu.Unlock()
	return t
}

// SetHandlers replaces the engine's handler record.
func (t *Timer) SetHandlers(h TimerHandlers) {
	t.mu.Lock()
	t.handlers = h
	t.mu.Unlock()
}

func (t *Timer) statusChanged(s TimerStatus, fn func(TimerStatus)) {
	if fn != nil {
		fn(s)
	}
}

// remainingLocked derives the remaining whole seconds from the deadline.
func (t *Timer) remainingLocked() int {
	d := t.deadline.Sub(t.now())
	if d <= 0 {
		return 0
	}
	return int((d + time.Second - 1) / time.Second)
}

// rebaselineLocked resets remaining/total to the nominal duration of the
// item driving the clock: the active item if any, otherwise the first
// pending item, otherwise zero.
func (t *Timer) rebaselineLocked() {
	item := t.queue.CurrentItem()
	if item == nil {
		item = t.queue.NextItem()
	}
	if item == nil {
		t.remaining = 0
		t.total = 0
		return
	}
	t.remaining = item.DurationSeconds()
	t.total = t.remaining
}

// stopLoopLocked halts the recurring evaluation before any state change, so
// a previously scheduled tick can never observe the new state.
func (t *Timer) stopLoopLocked() {
	if t.stop != nil {
		close(t.stop)
		t.stop = nil
	}
	t.gen++
}

// Start begins (or resumes) the countdown. Idempotent while running. With
// no active item it activates the head pending item; with an empty queue it
// is a safe no-op and the engine stays idle. A paused remainder and an idle
// duration override set through SetDuration both survive activation.
func (t *Timer) Start() {
	t.mu.Lock()
	if t.status == TimerRunning {
		t.mu.Unlock()
		return
	}
	item := t.queue.CurrentItem()
	t.mu.Unlock()

	// The queue mutation runs its persistence callbacks synchronously;
	// it must not happen under the engine lock.
	if item == nil {
		item = t.queue.StartCurrent()
		if item == nil {
			return
		}
	}

	t.mu.Lock()
	if t.status == TimerRunning {
		t.mu.Unlock()
		return
	}
	if t.remaining <= 0 || t.total <= 0 {
		t.remaining = item.DurationSeconds()
		t.total = t.remaining
	}
	t.deadline = t.now().Add(time.Duration(t.remaining) * time.Second)
	t.status = TimerRunning
	t.completing = false
	t.stop = make(chan struct{})
	stop := t.stop
	gen := t.gen
	onStatus := t.handlers.OnStatusChange
	t.mu.Unlock()

	safeGo(t.log, nil, "timer-loop", nil, func() {
		ticker := time.NewTicker(TickInterval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				t.evaluate(gen)
			}
		}
	})
	t.statusChanged(TimerRunning, onStatus)
}

// evaluate is one re-evaluation pass. gen ties it to the run it was
// scheduled for; a pass outliving a state change is discarded.
func (t *Timer) evaluate(gen int) {
	t.mu.Lock()
	if gen != t.gen || t.status != TimerRunning {
		t.mu.Unlock()
		return
	}
	rem := t.remainingLocked()
	if rem > 0 {
		var onTick func(int)
		if t.visible {
			onTick = t.handlers.OnTick
		}
		t.mu.Unlock()
		if onTick != nil {
			onTick(rem)
		}
		return
	}
	if t.completing {
		t.mu.Unlock()
		return
	}
	t.completing = true
	t.stopLoopLocked()
	t.status = TimerIdle
	t.deadline = time.Time{}
	t.remaining = 0
	onComplete := t.handlers.OnComplete
	onStatus := t.handlers.OnStatusChange
	t.mu.Unlock()

	item := t.queue.CompleteCurrent()

	t.mu.Lock()
	t.rebaselineLocked()
	t.completing = false
	t.mu.Unlock()

	if item != nil && onComplete != nil {
		onComplete(item)
	}
	t.statusChanged(TimerIdle, onStatus)
}

// tick runs one evaluation pass against the current run.
func (t *Timer) tick() {
	t.mu.Lock()
	gen := t.gen
	t.mu.Unlock()
	t.evaluate(gen)
}

// Pause snapshots the remaining time and discards the deadline; no clock
// runs while paused.
func (t *Timer) Pause() {
	t.mu.Lock()
	if t.status != TimerRunning {
		t.mu.Unlock()
		return
	}
	t.stopLoopLocked()
	t.remaining = t.remainingLocked()
	t.deadline = time.Time{}
	t.status = TimerPaused
	onStatus := t.handlers.OnStatusChange
	t.mu.Unlock()
	t.statusChanged(TimerPaused, onStatus)
}

// Reset stops the clock and restores the full nominal duration of the item
// driving it.
func (t *Timer) Reset() {
	t.mu.Lock()
	t.stopLoopLocked()
	t.deadline = time.Time{}
	t.status = TimerIdle
	t.rebaselineLocked()
	onStatus := t.handlers.OnStatusChange
	t.mu.Unlock()
	t.statusChanged(TimerIdle, onStatus)
}

// Skip stops the clock, applies the queue's skip transition and re-baselines
// to the new next item (zero when the queue ran dry).
func (t *Timer) Skip() {
	t.mu.Lock()
	t.stopLoopLocked()
	t.deadline = time.Time{}
	t.status = TimerIdle
	onStatus := t.handlers.OnStatusChange
	t.mu.Unlock()

	t.queue.SkipCurrent()

	t.mu.Lock()
	t.rebaselineLocked()
	t.mu.Unlock()
	t.statusChanged(TimerIdle, onStatus)
}

// ExtendTime pushes the deadline out while running, or grows the snapshotted
// remaining time otherwise. It never changes the engine status.
func (t *Timer) ExtendTime(minutes int) {
	t.mu.Lock()
	if t.status == TimerRunning {
		t.deadline = t.deadline.Add(time.Duration(minutes) * time.Minute)
	} else {
		t.remaining += minutes * 60
	}
	t.mu.Unlock()
}

// SetDuration overrides the countdown length while idle; ignored otherwise.
func (t *Timer) SetDuration(minutes int) {
	t.mu.Lock()
	if t.status == TimerIdle && minutes > 0 {
		t.remaining = minutes * 60
		t.total = t.remaining
	}
	t.mu.Unlock()
}

// SetVisible records whether the presentation surface can be seen. While
// hidden, tick publication is suppressed; the deadline is wall-clock
// absolute so bookkeeping needs no catch-up. On regaining visibility the
// fresh remaining value is published immediately rather than on the next
// tick, so the display is never stale.
func (t *Timer) SetVisible(visible bool) {
	t.mu.Lock()
	t.visible = visible
	var onTick func(int)
	var rem int
	if visible && t.status == TimerRunning {
		rem = t.remainingLocked()
		onTick = t.handlers.OnTick
	}
	t.mu.Unlock()
	if onTick != nil {
		onTick(rem)
	}
}

// Status returns the engine run state.
func (t *Timer) Status() TimerStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

// Remaining returns the current remaining seconds.
func (t *Timer) Remaining() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.status == TimerRunning {
		return t.remainingLocked()
	}
	return t.remaining
}

// Progress returns 1 - remaining/total, clamped to [0,1].
func (t *Timer) Progress() float64 {
	t.mu.Lock()
	rem := t.remaining
	if t.status == TimerRunning {
		rem = t.remainingLocked()
	}
	total := t.total
	t.mu.Unlock()
	if total <= 0 {
		return 0
	}
	p := 1 - float64(rem)/float64(total)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// Snapshot returns the engine state together with the queue items driving
// it, for display surfaces.
func (t *Timer) Snapshot() TimerState {
	st := TimerState{
		Status:    t.Status(),
		Remaining: t.Remaining(),
		Total:     t.totalSeconds(),
		Progress:  t.Progress(),
		Current:   t.queue.CurrentItem(),
		Next:      t.queue.NextItem(),
	}
	return st
}

func (t *Timer) totalSeconds() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.total
}

// Rebaseline re-reads the queue and resets the idle countdown to the item
// now driving the clock. Call sites use it after out-of-band queue changes
// (an item added while idle, a reconciliation reload).
func (t *Timer) Rebaseline() {
	t.mu.Lock()
	if t.status == TimerIdle {
		t.rebaselineLocked()
	}
	t.mu.Unlock()
}
