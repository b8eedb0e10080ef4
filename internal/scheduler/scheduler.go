package scheduler

import (
	"container/heap"
	"context"
	"time"
)

const maxSleepCap = 60 * time.Second

// Scheduler manages deferred deliveries using a min-heap.
// It runs a background goroutine that sleeps until the next entry's
// fire time, then calls the onFire callback with the entry id.
type Scheduler struct {
	addChan    chan Entry
	removeChan chan string
	ctx        context.Context
}

// New creates and starts a new Scheduler.
// The onFire callback is invoked when an entry's time arrives.
// The scheduler goroutine exits when ctx is cancelled.
func New(ctx context.Context, onFire func(string)) *Scheduler {
	s := &Scheduler{
		addChan:    make(chan Entry, 64),
		removeChan: make(chan string, 64),
		ctx:        ctx,
	}
	go s.run(onFire)
	return s
}

// Add enqueues a new entry. An entry whose FireAt is already in the past
// fires on the next wakeup.
func (s *Scheduler) Add(entry Entry) {
	select {
	case s.addChan <- entry:
	case <-s.ctx.Done():
	}
}

// Remove cancels a pending entry by id.
func (s *Scheduler) Remove(id string) {
	select {
	case s.removeChan <- id:
	case <-s.ctx.Done():
	}
}

// run is the core scheduler goroutine implementing the active-object pattern.
// It maintains a min-heap of entries and sleeps with a 60s max-sleep-cap.
func (s *Scheduler) run(onFire func(string)) {
	h := &entryHeap{}
	heap.Init(h)

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	resetTimer := func() <-chan time.Time {
		if timer != nil {
			timer.Stop()
		}
		if h.Len() == 0 {
			// No entries — block indefinitely on channels
			return nil
		}
		next := (*h)[0].FireAt
		dur := time.Until(next)
		if dur > maxSleepCap {
			dur = maxSleepCap
		}
		if dur < 0 {
			dur = 0
		}
		timer = time.NewTimer(dur)
		return timer.C
	}

	timerCh := resetTimer()

	for {
		select {
		case <-s.ctx.Done():
			return

		case entry := <-s.addChan:
			heapPush(h, entry)
			timerCh = resetTimer()

		case id := <-s.removeChan:
			heapRemoveById(h, id)
			timerCh = resetTimer()

		case <-timerCh:
			// Fire all entries whose time has arrived
			now := time.Now()
			for h.Len() > 0 && !(*h)[0].FireAt.After(now) {
				entry := heapPop(h)
				onFire(entry.Id)
			}
			timerCh = resetTimer()
		}
	}
}
