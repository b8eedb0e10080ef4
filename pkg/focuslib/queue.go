package focuslib

import (
	"encoding/json"
	"log"
	"sync"
	"time"
)

// QueueStorageKey is the namespace the schedule queue persists under.
const QueueStorageKey = "lofi-room-schedule-queue"

// QueueStats aggregates the queue for display.
type QueueStats struct {
	TotalItems            int `json:"total_items"`
	PendingItems          int `json:"pending_items"`
	CompletedItems        int `json:"completed_items"`
	TotalFocusMinutes     int `json:"total_focus_minutes"`
	CompletedFocusMinutes int `json:"completed_focus_minutes"`
}

// QueueOpts contains optional parameters for NewQueue.
type QueueOpts struct {
	// StorageKey overrides QueueStorageKey.
	StorageKey string
	// OnItemComplete is invoked with a copy of every focus item that
	// completes. The reward ledger hangs off this callback; the queue
	// makes no assumption about what it does.
	OnItemComplete func(*ScheduleItem)
}

// Queue is the ordered, persisted list of schedule items. It is the sole
// mutator of item state: every transition goes through its methods, is
// written through to the store synchronously, and is announced to listeners
// afterwards. At most one item is active at any time.
type Queue struct {
	mu    sync.Mutex
	items []*ScheduleItem
	store Store
	key   string
	reg   *listenerRegistry

	onItemComplete func(*ScheduleItem)
	log            *log.Logger
}

// NewQueue creates a queue bound to the given store and loads whatever the
// store holds. A missing or corrupt document means an empty queue, never an
// error: a single bad write must not brick the app.
func NewQueue(l *log.Logger, store Store, opts *QueueOpts) *Queue {
	if opts == nil {
		opts = &QueueOpts{}
	}
	key := opts.StorageKey
	if key == "" {
		key = QueueStorageKey
	}
	q := &Queue{
		store:          store,
		key:            key,
		reg:            newListenerRegistry(),
		onItemComplete: opts.OnItemComplete,
		log:            l,
	}
	q.items = q.load()
	return q
}

func (q *Queue) load() []*ScheduleItem {
	raw, err := q.store.Get(q.key)
	if err != nil {
		q.log.Printf("focuslib: warning: failed to read schedule queue, starting fresh: %v", err)
		return nil
	}
	if len(raw) == 0 {
		return nil
	}
	var items []*ScheduleItem
	if err := json.Unmarshal(raw, &items); err != nil {
		q.log.Printf("focuslib: warning: failed to decode schedule queue, starting fresh: %v", err)
		return nil
	}
	return items
}

// persistLocked writes the full ordered list through to the store. Callers
// must hold q.mu. A failed write is logged and the in-memory state stays
// authoritative; the queue never rolls back a transition because a side
// effect failed.
func (q *Queue) persistLocked() {
	raw, err := json.Marshal(q.items)
	if err != nil {
		q.log.Printf("focuslib: failed to encode schedule queue: %v", err)
		return
	}
	if err := q.store.Set(q.key, raw); err != nil {
		q.log.Printf("focuslib: failed to persist schedule queue: %v", err)
	}
}

// On registers a listener for the given event type and returns an
// unsubscribe func. Listener panics are not recovered.
func (q *Queue) On(t QueueEventType, fn QueueListenerFunc) func() {
	return q.reg.on(t, fn)
}

func (q *Queue) emit(t QueueEventType, item *ScheduleItem) {
	q.reg.emit(QueueEvent{Type: t, Item: item, Timestamp: time.Now()})
}

func clone(i *ScheduleItem) *ScheduleItem {
	if i == nil {
		return nil
	}
	cp := *i
	return &cp
}

func (q *Queue) currentLocked() *ScheduleItem {
	for _, i := range q.items {
		if i.Status == StatusActive {
			return i
		}
	}
	return nil
}

func (q *Queue) nextLocked() *ScheduleItem {
	for _, i := range q.items {
		if i.Status == StatusPending {
			return i
		}
	}
	return nil
}

// CurrentItem returns a copy of the single active item, or nil.
func (q *Queue) CurrentItem() *ScheduleItem {
	q.mu.Lock()
	defer q.mu.Unlock()
	return clone(q.currentLocked())
}

// NextItem returns a copy of the first pending item, or nil.
func (q *Queue) NextItem() *ScheduleItem {
	q.mu.Lock()
	defer q.mu.Unlock()
	return clone(q.nextLocked())
}

// PendingItems returns copies of all pending items in queue order.
func (q *Queue) PendingItems() []*ScheduleItem {
	q.mu.Lock()
	defer q.mu.Unlock()
	var items []*ScheduleItem
	for _, i := range q.items {
		if i.Status == StatusPending {
			items = append(items, clone(i))
		}
	}
	return items
}

// Items returns a copy of the whole queue in order.
func (q *Queue) Items() []*ScheduleItem {
	q.mu.Lock()
	defer q.mu.Unlock()
	items := make([]*ScheduleItem, len(q.items))
	for n, i := range q.items {
		items[n] = clone(i)
	}
	return items
}

// Stats returns aggregate counters over the queue.
func (q *Queue) Stats() QueueStats {
	q.mu.Lock()
	defer q.mu.Unlock()
	var st QueueStats
	st.TotalItems = len(q.items)
	for _, i := range q.items {
		switch i.Status {
		case StatusPending:
			st.PendingItems++
		case StatusCompleted:
			st.CompletedItems++
		}
		if i.Type != ItemFocus {
			continue
		}
		st.TotalFocusMinutes += i.DurationMinutes
		if i.Status == StatusCompleted {
			st.CompletedFocusMinutes += i.DurationMinutes
		}
	}
	return st
}

// AddFocusSession appends a pending focus item. The auto-break length is
// computed once, now, from the focus length.
func (q *Queue) AddFocusSession(title string, minutes int, autoInsertBreak bool, emoji string) (*ScheduleItem, error) {
	if minutes <= 0 {
		return nil, ErrDurationInvalid
	}
	item := &ScheduleItem{
		Id:              generateItemId(),
		Type:            ItemFocus,
		Title:           title,
		Emoji:           emoji,
		Status:          StatusPending,
		Source:          SourceManual,
		DurationMinutes: minutes,
		BreakMinutes:    CalculateBreakMinutes(minutes),
		AutoInsertBreak: autoInsertBreak,
		CreatedAt:       time.Now(),
	}
	q.mu.Lock()
	q.items = append(q.items, item)
	q.persistLocked()
	q.mu.Unlock()
	q.emit(EventItemAdded, clone(item))
	q.emit(EventQueueUpdated, nil)
	return clone(item), nil
}

// AddPreset appends a focus session built from a preset.
func (q *Queue) AddPreset(p SchedulePreset) (*ScheduleItem, error) {
	return q.AddFocusSession(p.Name, p.FocusMinutes, true, p.Emoji)
}

// AddBreakSession appends a pending break item, or splices it directly
// after the item with afterItemId when that id is present in the queue.
func (q *Queue) AddBreakSession(minutes int, afterItemId string) (*ScheduleItem, error) {
	if minutes <= 0 {
		return nil, ErrDurationInvalid
	}
	item := newBreakItem(minutes)
	q.mu.Lock()
	q.spliceAfterLocked(item, afterItemId)
	q.persistLocked()
	q.mu.Unlock()
	q.emit(EventItemAdded, clone(item))
	q.emit(EventQueueUpdated, nil)
	return clone(item), nil
}

func newBreakItem(minutes int) *ScheduleItem {
	return &ScheduleItem{
		Id:              generateItemId(),
		Type:            ItemBreak,
		Title:           DefaultBreakTitle,
		Status:          StatusPending,
		Source:          SourceAutoBreak,
		DurationMinutes: minutes,
		CreatedAt:       time.Now(),
	}
}

func (q *Queue) spliceAfterLocked(item *ScheduleItem, afterItemId string) {
	if afterItemId != "" {
		for n, i := range q.items {
			if i.Id != afterItemId {
				continue
			}
			q.items = append(q.items, nil)
			copy(q.items[n+2:], q.items[n+1:])
			q.items[n+1] = item
			return
		}
	}
	q.items = append(q.items, item)
}

// StartCurrent activates the head pending item. It is a no-op returning nil
// when an item is already active with that item returned instead, and a
// no-op returning nil when the queue has no pending item.
func (q *Queue) StartCurrent() *ScheduleItem {
	q.mu.Lock()
	if cur := q.currentLocked(); cur != nil {
		q.mu.Unlock()
		return clone(cur)
	}
	next := q.nextLocked()
	if next == nil {
		q.mu.Unlock()
		return nil
	}
	next.Status = StatusActive
	next.StartedAt = time.Now()
	q.persistLocked()
	q.mu.Unlock()
	q.emit(EventItemStarted, clone(next))
	q.emit(EventQueueUpdated, nil)
	return clone(next)
}

// CompleteCurrent marks the active item completed. When the item is a focus
// session with auto-break enabled, a break item is spliced in directly after
// it as part of the same mutation. A no-op returning nil when nothing is
// active.
func (q *Queue) CompleteCurrent() *ScheduleItem {
	q.mu.Lock()
	cur := q.currentLocked()
	if cur == nil {
		q.mu.Unlock()
		return nil
	}
	cur.Status = StatusCompleted
	cur.CompletedAt = time.Now()
	var inserted *ScheduleItem
	if cur.Type == ItemFocus && cur.AutoInsertBreak && cur.BreakMinutes > 0 {
		inserted = newBreakItem(cur.BreakMinutes)
		q.spliceAfterLocked(inserted, cur.Id)
	}
	q.persistLocked()
	q.mu.Unlock()
	if inserted != nil {
		q.emit(EventItemAdded, clone(inserted))
	}
	q.emit(EventItemCompleted, clone(cur))
	q.emit(EventQueueUpdated, nil)
	if cur.Type == ItemFocus && q.onItemComplete != nil {
		q.onItemComplete(clone(cur))
	}
	return clone(cur)
}

// SkipCurrent skips the active item, or the next pending item when nothing
// is active. Skipping an empty queue is a no-op returning nil.
func (q *Queue) SkipCurrent() *ScheduleItem {
	q.mu.Lock()
	item := q.currentLocked()
	if item == nil {
		item = q.nextLocked()
	}
	if item == nil {
		q.mu.Unlock()
		return nil
	}
	item.Status = StatusSkipped
	item.CompletedAt = time.Now()
	q.persistLocked()
	q.mu.Unlock()
	q.emit(EventItemSkipped, clone(item))
	q.emit(EventQueueUpdated, nil)
	return clone(item)
}

// RemoveItem deletes an item by id regardless of its status.
func (q *Queue) RemoveItem(id string) bool {
	q.mu.Lock()
	var removed *ScheduleItem
	for n, i := range q.items {
		if i.Id != id {
			continue
		}
		removed = i
		q.items = append(q.items[:n], q.items[n+1:]...)
		break
	}
	if removed == nil {
		q.mu.Unlock()
		return false
	}
	q.persistLocked()
	q.mu.Unlock()
	q.emit(EventItemRemoved, clone(removed))
	q.emit(EventQueueUpdated, nil)
	return true
}

// UpdateItemStatus force-sets an item's status, stamping the transition
// timestamps the same way the lifecycle methods do. Items already in a
// terminal state are left untouched.
func (q *Queue) UpdateItemStatus(id string, status ItemStatus) bool {
	q.mu.Lock()
	var item *ScheduleItem
	for _, i := range q.items {
		if i.Id == id {
			item = i
			break
		}
	}
	if item == nil || item.Terminal() {
		q.mu.Unlock()
		return false
	}
	if status == StatusActive && q.currentLocked() != nil {
		q.mu.Unlock()
		return false
	}
	item.Status = status
	switch status {
	case StatusActive:
		item.StartedAt = time.Now()
	case StatusCompleted, StatusSkipped:
		item.CompletedAt = time.Now()
	}
	q.persistLocked()
	q.mu.Unlock()
	q.emit(EventQueueUpdated, nil)
	return true
}

// ClearCompleted drops all completed and skipped items.
func (q *Queue) ClearCompleted() {
	q.mu.Lock()
	kept := q.items[:0]
	for _, i := range q.items {
		if !i.Terminal() {
			kept = append(kept, i)
		}
	}
	q.items = kept
	q.persistLocked()
	q.mu.Unlock()
	q.emit(EventQueueCleared, nil)
	q.emit(EventQueueUpdated, nil)
}

// ClearAll empties the queue.
func (q *Queue) ClearAll() {
	q.mu.Lock()
	q.items = nil
	q.persistLocked()
	q.mu.Unlock()
	q.emit(EventQueueCleared, nil)
	q.emit(EventQueueUpdated, nil)
}

// Reload replaces the in-memory list wholesale from the store. Windows call
// this on a pushed change notification and again whenever they regain
// focus; the last full write wins, no field-level merge is attempted.
func (q *Queue) Reload() {
	q.mu.Lock()
	q.items = q.load()
	q.mu.Unlock()
	q.emit(EventQueueUpdated, nil)
}
