package roomcli

import (
	"encoding/json"
	"sync"

	"github.com/lofiroom/lofid/common"
	"github.com/lofiroom/lofid/pkg/focuslib"
)

// Window mirrors the daemon state for one presentation surface. Pushed sync
// updates replace the mirrored documents wholesale (last full write wins),
// tick updates keep the countdown display fresh, and Reconcile re-fetches
// everything whenever the surface regains focus.
type Window struct {
	mu     sync.Mutex
	client *Client
	queue  common.QueueResponse
	timer  focuslib.TimerState
}

// NewWindow wraps a client and registers its pushed-update handlers. Call
// Attach before reading state.
func NewWindow(c *Client) *Window {
	w := &Window{client: c}
	c.Dispatcher().On(common.UPDATE_SYNC, NewSyncHandler("", w.applySync))
	c.Dispatcher().On(common.UPDATE_TICK, NewTickHandler("", w.applyTick))
	return w
}

// Attach registers with the daemon and seeds the mirrored state.
func (w *Window) Attach() error {
	resp, err := w.client.Attach()
	if err != nil {
		return err
	}
	w.mu.Lock()
	w.queue = resp.Queue
	w.timer = resp.Timer
	w.mu.Unlock()
	return nil
}

func (w *Window) applySync(upd *common.SyncUpdate) error {
	if upd.Key != focuslib.QueueStorageKey {
		return nil
	}
	var items []*focuslib.ScheduleItem
	if err := json.Unmarshal(upd.Value, &items); err != nil {
		return err
	}
	w.mu.Lock()
	w.queue.Items = items
	w.mu.Unlock()
	return nil
}

func (w *Window) applyTick(upd *common.TickUpdate) error {
	w.mu.Lock()
	w.timer.Status = upd.Status
	w.timer.Remaining = upd.Remaining
	w.timer.Progress = upd.Progress
	if upd.Item != nil {
		w.timer.Current = upd.Item
	}
	w.mu.Unlock()
	return nil
}

// Reconcile re-fetches the daemon state wholesale. Windows call it on
// regaining focus so a missed push can never leave the display stale.
func (w *Window) Reconcile() error {
	q, err := w.client.GetQueue()
	if err != nil {
		return err
	}
	t, err := w.client.GetTimer()
	if err != nil {
		return err
	}
	w.mu.Lock()
	w.queue = *q
	w.timer = t.State
	w.mu.Unlock()
	return nil
}

// SetVisible reports visibility to the daemon. Regaining visibility also
// reconciles, since ticks were suppressed while hidden.
func (w *Window) SetVisible(visible bool) error {
	if _, err := w.client.ReportVisibility(visible); err != nil {
		return err
	}
	if visible {
		return w.Reconcile()
	}
	return nil
}

// Queue returns the mirrored queue state.
func (w *Window) Queue() common.QueueResponse {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.queue
}

// Timer returns the mirrored timer state.
func (w *Window) Timer() focuslib.TimerState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.timer
}
