package focuslib

import (
	"encoding/json"
	"log"
	"sort"
	"sync"
	"time"
)

// Storage keys for the calendar event book.
const (
	EventStorageKey         = "lofi-village-events"
	EventSettingsStorageKey = "lofi-village-event-settings"
)

// EventStatus is derived purely from the current time against the event
// window [StartTime, EndTime).
type EventStatus string

const (
	EventUpcoming EventStatus = "upcoming"
	EventOngoing  EventStatus = "ongoing"
	EventPast     EventStatus = "past"
)

// EventItem is a calendar-style entry with an absolute start and end.
type EventItem struct {
	Id          string    `json:"id"`
	Title       string    `json:"title"`
	Location    string    `json:"location,omitempty"`
	Description string    `json:"description,omitempty"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	CreatedAt   time.Time `json:"created_at"`
	// Notified is set once a reminder has fired for this event, and never
	// reverts: a reminder is one-shot per item.
	Notified bool `json:"notified"`
}

// StatusAt derives the event status at the given instant.
func (e *EventItem) StatusAt(now time.Time) EventStatus {
	switch {
	case now.Before(e.StartTime):
		return EventUpcoming
	case now.Before(e.EndTime):
		return EventOngoing
	default:
		return EventPast
	}
}

// ReminderSettings controls the event reminder engine.
type ReminderSettings struct {
	Enabled       bool `json:"enabled"`
	MinutesBefore int  `json:"minutes_before"`
	UseTTS        bool `json:"use_tts"`
}

// DefaultReminderSettings returns the settings used when none are stored.
func DefaultReminderSettings() ReminderSettings {
	return ReminderSettings{Enabled: true, MinutesBefore: 10, UseTTS: true}
}

// EventBook owns the calendar event list. It is the sole mutator; every
// change is written through to the store before returning.
type EventBook struct {
	mu       sync.Mutex
	events   []*EventItem
	settings ReminderSettings
	store    Store
	log      *log.Logger
}

// NewEventBook loads the event list and reminder settings from the store.
// Corrupt or missing documents read as empty/defaults.
func NewEventBook(l *log.Logger, store Store) *EventBook {
	b := &EventBook{store: store, log: l}
	b.events = b.loadEvents()
	b.settings = b.loadSettings()
	return b
}

func (b *EventBook) loadEvents() []*EventItem {
	raw, err := b.store.Get(EventStorageKey)
	if err != nil {
		b.log.Printf("focuslib: warning: failed to read events, starting fresh: %v", err)
		return nil
	}
	if len(raw) == 0 {
		return nil
	}
	var events []*EventItem
	if err := json.Unmarshal(raw, &events); err != nil {
		b.log.Printf("focuslib: warning: failed to decode events, starting fresh: %v", err)
		return nil
	}
	return events
}

func (b *EventBook) loadSettings() ReminderSettings {
	s := DefaultReminderSettings()
	raw, err := b.store.Get(EventSettingsStorageKey)
	if err != nil || len(raw) == 0 {
		return s
	}
	if err := json.Unmarshal(raw, &s); err != nil {
		return DefaultReminderSettings()
	}
	return s
}

func (b *EventBook) persistLocked() {
	raw, err := json.Marshal(b.events)
	if err != nil {
		b.log.Printf("focuslib: failed to encode events: %v", err)
		return
	}
	if err := b.store.Set(EventStorageKey, raw); err != nil {
		b.log.Printf("focuslib: failed to persist events: %v", err)
	}
}

// AddEvent appends an event; the list stays sorted by start time.
func (b *EventBook) AddEvent(title, location, description string, start, end time.Time) *EventItem {
	e := &EventItem{
		Id:          generateItemId(),
		Title:       title,
		Location:    location,
		Description: description,
		StartTime:   start,
		EndTime:     end,
		CreatedAt:   time.Now(),
	}
	b.mu.Lock()
	b.events = append(b.events, e)
	sort.SliceStable(b.events, func(i, j int) bool {
		return b.events[i].StartTime.Before(b.events[j].StartTime)
	})
	b.persistLocked()
	b.mu.Unlock()
	cp := *e
	return &cp
}

// UpdateEvent applies fn to the event with the given id under the book's
// lock and persists the result.
func (b *EventBook) UpdateEvent(id string, fn func(*EventItem)) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, e := range b.events {
		if e.Id != id {
			continue
		}
		fn(e)
		b.persistLocked()
		return true
	}
	return false
}

// DeleteEvent removes an event by id.
func (b *EventBook) DeleteEvent(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for n, e := range b.events {
		if e.Id != id {
			continue
		}
		b.events = append(b.events[:n], b.events[n+1:]...)
		b.persistLocked()
		return true
	}
	return false
}

// MarkNotified flips the one-shot reminder flag. It never clears it.
func (b *EventBook) MarkNotified(id string) bool {
	return b.UpdateEvent(id, func(e *EventItem) {
		e.Notified = true
	})
}

// Events returns a copy of the whole book.
func (b *EventBook) Events() []*EventItem {
	b.mu.Lock()
	defer b.mu.Unlock()
	events := make([]*EventItem, len(b.events))
	for n, e := range b.events {
		cp := *e
		events[n] = &cp
	}
	return events
}

// TodayEvents returns copies of the events starting today, sorted by start
// time.
func (b *EventBook) TodayEvents(now time.Time) []*EventItem {
	y, m, d := now.Date()
	var events []*EventItem
	for _, e := range b.Events() {
		ey, em, ed := e.StartTime.Date()
		if ey == y && em == m && ed == d {
			events = append(events, e)
		}
	}
	return events
}

// ClearPastEvents drops events that ended before the start of today.
func (b *EventBook) ClearPastEvents(now time.Time) int {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	b.mu.Lock()
	defer b.mu.Unlock()
	kept := b.events[:0]
	removed := 0
	for _, e := range b.events {
		if e.EndTime.Before(midnight) {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	b.events = kept
	if removed > 0 {
		b.persistLocked()
	}
	return removed
}

// Settings returns the reminder settings.
func (b *EventBook) Settings() ReminderSettings {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.settings
}

// SetSettings persists new reminder settings.
func (b *EventBook) SetSettings(s ReminderSettings) {
	b.mu.Lock()
	b.settings = s
	raw, err := json.Marshal(s)
	if err == nil {
		if err := b.store.Set(EventSettingsStorageKey, raw); err != nil {
			b.log.Printf("focuslib: failed to persist reminder settings: %v", err)
		}
	}
	b.mu.Unlock()
}

// Reload replaces the book wholesale from the store.
func (b *EventBook) Reload() {
	b.mu.Lock()
	b.events = b.loadEvents()
	b.settings = b.loadSettings()
	b.mu.Unlock()
}
