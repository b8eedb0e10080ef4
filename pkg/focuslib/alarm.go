package focuslib

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"
)

// AlarmStorageKey is the namespace the alarm book persists under.
const AlarmStorageKey = "lofi-village-alarms"

// Weekday is a lowercase three-letter weekday tag.
type Weekday string

const (
	Sun Weekday = "sun"
	Mon Weekday = "mon"
	Tue Weekday = "tue"
	Wed Weekday = "wed"
	Thu Weekday = "thu"
	Fri Weekday = "fri"
	Sat Weekday = "sat"
)

var weekdayIndex = map[Weekday]int{
	Sun: 0, Mon: 1, Tue: 2, Wed: 3, Thu: 4, Fri: 5, Sat: 6,
}

var indexWeekday = [...]Weekday{Sun, Mon, Tue, Wed, Thu, Fri, Sat}

// WeekdayOf tags the weekday of an instant.
func WeekdayOf(t time.Time) Weekday {
	return indexWeekday[int(t.Weekday())]
}

// AlarmItem is a wall-clock alarm. Time carries no date; RepeatDays empty
// means every day.
type AlarmItem struct {
	Id         string    `json:"id"`
	Time       string    `json:"time"` // HH:MM, 24h
	RepeatDays []Weekday `json:"repeat_days"`
	Enabled    bool      `json:"enabled"`
	Label      string    `json:"label,omitempty"`
	UseTTS     bool      `json:"use_tts"`
	// LastTriggered suppresses re-firing within the same minute when poll
	// ticks overlap.
	LastTriggered time.Time `json:"last_triggered,omitempty"`
}

// ActiveOn reports whether the alarm may fire on the given day.
func (a *AlarmItem) ActiveOn(now time.Time) bool {
	if !a.Enabled {
		return false
	}
	if len(a.RepeatDays) == 0 {
		return true
	}
	day := WeekdayOf(now)
	for _, d := range a.RepeatDays {
		if d == day {
			return true
		}
	}
	return false
}

// CronExpr compiles the alarm into a five-field cron expression suitable
// for a due-check against the current minute.
func (a *AlarmItem) CronExpr() (string, error) {
	var h, m int
	if _, err := fmt.Sscanf(a.Time, "%d:%d", &h, &m); err != nil {
		return "", ErrTimeInvalid
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return "", ErrTimeInvalid
	}
	dow := "*"
	if len(a.RepeatDays) > 0 {
		nums := make([]string, 0, len(a.RepeatDays))
		for _, d := range a.RepeatDays {
			n, ok := weekdayIndex[d]
			if !ok {
				return "", ErrTimeInvalid
			}
			nums = append(nums, fmt.Sprint(n))
		}
		dow = strings.Join(nums, ",")
	}
	return fmt.Sprintf("%d %d * * %s", m, h, dow), nil
}

// RepeatText summarizes the repeat days for display.
func (a *AlarmItem) RepeatText() string {
	if len(a.RepeatDays) == 0 || len(a.RepeatDays) == 7 {
		return "every day"
	}
	has := func(days ...Weekday) bool {
		for _, want := range days {
			found := false
			for _, d := range a.RepeatDays {
				if d == want {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
		return true
	}
	if len(a.RepeatDays) == 5 && has(Mon, Tue, Wed, Thu, Fri) {
		return "weekdays"
	}
	if len(a.RepeatDays) == 2 && has(Sat, Sun) {
		return "weekends"
	}
	parts := make([]string, len(a.RepeatDays))
	for n, d := range a.RepeatDays {
		parts[n] = string(d)
	}
	return strings.Join(parts, ", ")
}

// AlarmBook owns the alarm list, persisted write-through like the other
// books.
type AlarmBook struct {
	mu     sync.Mutex
	alarms []*AlarmItem
	store  Store
	log    *log.Logger
}

// NewAlarmBook loads the alarm list from the store; corrupt or missing
// documents read as empty.
func NewAlarmBook(l *log.Logger, store Store) *AlarmBook {
	b := &AlarmBook{store: store, log: l}
	b.alarms = b.load()
	return b
}

func (b *AlarmBook) load() []*AlarmItem {
	raw, err := b.store.Get(AlarmStorageKey)
	if err != nil {
		b.log.Printf("focuslib: warning: failed to read alarms, starting fresh: %v", err)
		return nil
	}
	if len(raw) == 0 {
		return nil
	}
	var alarms []*AlarmItem
	if err := json.Unmarshal(raw, &alarms); err != nil {
		b.log.Printf("focuslib: warning: failed to decode alarms, starting fresh: %v", err)
		return nil
	}
	return alarms
}

func (b *AlarmBook) persistLocked() {
	raw, err := json.Marshal(b.alarms)
	if err != nil {
		b.log.Printf("focuslib: failed to encode alarms: %v", err)
		return
	}
	if err := b.store.Set(AlarmStorageKey, raw); err != nil {
		b.log.Printf("focuslib: failed to persist alarms: %v", err)
	}
}

// AddAlarm creates an enabled alarm. The time string is validated by
// compiling it to a cron expression.
func (b *AlarmBook) AddAlarm(hhmm string, repeatDays []Weekday, label string, useTTS bool) (*AlarmItem, error) {
	a := &AlarmItem{
		Id:         generateItemId(),
		Time:       hhmm,
		RepeatDays: repeatDays,
		Enabled:    true,
		Label:      label,
		UseTTS:     useTTS,
	}
	if _, err := a.CronExpr(); err != nil {
		return nil, err
	}
	b.mu.Lock()
	b.alarms = append(b.alarms, a)
	b.persistLocked()
	b.mu.Unlock()
	cp := *a
	return &cp, nil
}

// UpdateAlarm applies fn to the alarm with the given id and persists.
func (b *AlarmBook) UpdateAlarm(id string, fn func(*AlarmItem)) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, a := range b.alarms {
		if a.Id != id {
			continue
		}
		fn(a)
		b.persistLocked()
		return true
	}
	return false
}

// DeleteAlarm removes an alarm by id.
func (b *AlarmBook) DeleteAlarm(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for n, a := range b.alarms {
		if a.Id != id {
			continue
		}
		b.alarms = append(b.alarms[:n], b.alarms[n+1:]...)
		b.persistLocked()
		return true
	}
	return false
}

// SetEnabled toggles an alarm.
func (b *AlarmBook) SetEnabled(id string, enabled bool) bool {
	return b.UpdateAlarm(id, func(a *AlarmItem) {
		a.Enabled = enabled
	})
}

// MarkTriggered stamps the re-fire guard.
func (b *AlarmBook) MarkTriggered(id string, at time.Time) bool {
	return b.UpdateAlarm(id, func(a *AlarmItem) {
		a.LastTriggered = at
	})
}

// Alarms returns a copy of the book.
func (b *AlarmBook) Alarms() []*AlarmItem {
	b.mu.Lock()
	defer b.mu.Unlock()
	alarms := make([]*AlarmItem, len(b.alarms))
	for n, a := range b.alarms {
		cp := *a
		alarms[n] = &cp
	}
	return alarms
}

// Reload replaces the book wholesale from the store.
func (b *AlarmBook) Reload() {
	b.mu.Lock()
	b.alarms = b.load()
	b.mu.Unlock()
}
