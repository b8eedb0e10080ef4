// Package focuslib provides the core structures and services for managing
// the lofi-room schedule queue: focus/break items, their lifecycle, the
// countdown timer driving them and the reminder books for calendar events
// and alarms.
package focuslib

import (
	"time"

	"github.com/google/uuid"
)

// ItemType classifies a schedule item.
type ItemType string

const (
	// ItemFocus is a timed focus session.
	ItemFocus ItemType = "focus"
	// ItemBreak is a rest interval between focus sessions.
	ItemBreak ItemType = "break"
	// ItemCustom is a user-defined interval.
	ItemCustom ItemType = "custom"
)

// ItemStatus is the lifecycle state of a schedule item.
// Legal transitions: pending -> active -> {completed|skipped},
// and pending -> skipped directly. Completed and skipped are terminal.
type ItemStatus string

const (
	StatusPending   ItemStatus = "pending"
	StatusActive    ItemStatus = "active"
	StatusCompleted ItemStatus = "completed"
	StatusSkipped   ItemStatus = "skipped"
)

// ItemSource records how an item entered the queue.
type ItemSource string

const (
	SourceManual    ItemSource = "manual"
	SourceAutoBreak ItemSource = "auto-break"
	// SourceExternalCalendar is reserved for provider-linked items.
	SourceExternalCalendar ItemSource = "external-calendar"
)

// ScheduleItem represents one focus or break interval managed by the queue.
type ScheduleItem struct {
	// Id is the unique identifier of the item, assigned at creation.
	Id string `json:"id"`
	// Type classifies the item as focus, break or custom.
	Type ItemType `json:"type"`
	// Title is the user-facing name of the item.
	Title string `json:"title"`
	// Emoji is an optional display glyph carried from presets.
	Emoji string `json:"emoji,omitempty"`
	// Status is the current lifecycle state.
	Status ItemStatus `json:"status"`
	// Source records the item's provenance.
	Source ItemSource `json:"source"`
	// DurationMinutes is the nominal length of the item.
	DurationMinutes int `json:"duration_minutes"`
	// BreakMinutes is the break length to auto-insert after this item
	// completes. Only meaningful for focus items.
	BreakMinutes int `json:"break_minutes,omitempty"`
	// AutoInsertBreak controls whether completion inserts a break item.
	AutoInsertBreak bool `json:"auto_insert_break,omitempty"`
	// CreatedAt is when the item was added to the queue.
	CreatedAt time.Time `json:"created_at"`
	// StartedAt is when the item became active.
	StartedAt time.Time `json:"started_at,omitempty"`
	// CompletedAt is when the item reached a terminal state. Skips stamp
	// it too: a skip is a terminal outcome, not an absence.
	CompletedAt time.Time `json:"completed_at,omitempty"`
	// ExternalId is reserved for calendar-provider linkage.
	ExternalId string `json:"external_id,omitempty"`
}

// Terminal reports whether the item is in a terminal state.
func (i *ScheduleItem) Terminal() bool {
	return i.Status == StatusCompleted || i.Status == StatusSkipped
}

// DurationSeconds returns the nominal item length in seconds.
func (i *ScheduleItem) DurationSeconds() int {
	return i.DurationMinutes * 60
}

// CalculateBreakMinutes derives the auto-break length from a focus length:
// one sixth of the focus time, rounded up, floored at 5 minutes. The value
// is fixed at creation time and never recomputed.
func CalculateBreakMinutes(focusMinutes int) int {
	b := (focusMinutes + 5) / 6
	if b < 5 {
		return 5
	}
	return b
}

// DefaultBreakTitle is the title given to auto-inserted break items.
const DefaultBreakTitle = "Break time"

func generateItemId() string {
	return uuid.NewString()
}
