package focuslib

import (
	"fmt"
	"log"
	"time"
)

// NotificationAction is one action button on a notification.
type NotificationAction struct {
	Id    string `json:"id"`
	Label string `json:"label"`
}

// NotificationOptions describes a notification to show.
type NotificationOptions struct {
	Title   string               `json:"title"`
	Body    string               `json:"body"`
	Actions []NotificationAction `json:"actions,omitempty"`
}

// NotificationResult reports how the sink delivered a notification.
type NotificationResult struct {
	Success    bool `json:"success"`
	HasActions bool `json:"has_actions"`
}

// NotificationSink delivers system notifications. Failures never affect
// engine state; call sites log and move on.
type NotificationSink interface {
	Show(NotificationOptions) (NotificationResult, error)
}

// SpeechSink speaks a phrase. Fire-and-forget: failures are logged, never
// fatal.
type SpeechSink interface {
	Speak(text string) error
}

// Known notification action ids. Clicks come back asynchronously as
// {action: id} and are routed to engine calls by ActionRouter.
const (
	ActionStartBreak  = "start-break"
	ActionExtendFocus = "extend-focus"
	ActionStartFocus  = "start-focus"
	ActionSnooze      = "snooze"
	ActionDismiss     = "dismiss"
)

// NotificationKind selects a message template and its action buttons.
type NotificationKind string

const (
	NotifyFocusComplete    NotificationKind = "focus-complete"
	NotifyBreakComplete    NotificationKind = "break-complete"
	NotifyCalendarReminder NotificationKind = "calendar-reminder"
	NotifyScheduleComplete NotificationKind = "schedule-complete"
	NotifyAlarm            NotificationKind = "alarm"
)

// KindActions maps each notification kind to its action button set.
var KindActions = map[NotificationKind][]NotificationAction{
	NotifyFocusComplete: {
		{Id: ActionStartBreak, Label: "Start break"},
		{Id: ActionExtendFocus, Label: "Extend 5 min"},
	},
	NotifyBreakComplete: {
		{Id: ActionStartFocus, Label: "Start focus"},
		{Id: ActionDismiss, Label: "Dismiss"},
	},
	NotifyCalendarReminder: {
		{Id: ActionSnooze, Label: "Snooze"},
		{Id: ActionDismiss, Label: "Dismiss"},
	},
	NotifyScheduleComplete: {
		{Id: ActionDismiss, Label: "Dismiss"},
	},
	NotifyAlarm: {
		{Id: ActionSnooze, Label: "Snooze"},
		{Id: ActionDismiss, Label: "Dismiss"},
	},
}

// NotificationMessage is a rendered notification plus its spoken form.
type NotificationMessage struct {
	Title   string
	Body    string
	TTSText string
}

// ItemCompleteMessage renders the completion notification for a queue item.
func ItemCompleteMessage(item *ScheduleItem) (NotificationKind, NotificationMessage) {
	if item.Type == ItemBreak {
		return NotifyBreakComplete, NotificationMessage{
			Title:   "Break finished",
			Body:    "Ready for the next focus session?",
			TTSText: "Break time is over.",
		}
	}
	return NotifyFocusComplete, NotificationMessage{
		Title:   fmt.Sprintf("%s complete", item.Title),
		Body:    fmt.Sprintf("Focused for %d minutes. Time for a break.", item.DurationMinutes),
		TTSText: fmt.Sprintf("%s is complete. You focused for %d minutes.", item.Title, item.DurationMinutes),
	}
}

// EventReminderMessage renders the calendar reminder notification.
func EventReminderMessage(e *EventItem, minutesBefore int) NotificationMessage {
	body := fmt.Sprintf("%s starts in %d minutes (%s)", e.Title, minutesBefore, e.StartTime.Format("15:04"))
	tts := fmt.Sprintf("%s starts in %d minutes.", e.Title, minutesBefore)
	if e.Location != "" {
		body += "\nLocation: " + e.Location
		tts = fmt.Sprintf("%s starts in %d minutes at %s.", e.Title, minutesBefore, e.Location)
	}
	return NotificationMessage{Title: "Event reminder", Body: body, TTSText: tts}
}

// AlarmMessage renders the alarm notification.
func AlarmMessage(a *AlarmItem) NotificationMessage {
	label := a.Label
	if label == "" {
		label = "Alarm"
	}
	return NotificationMessage{
		Title:   "Alarm",
		Body:    fmt.Sprintf("%s - %s", label, a.Time),
		TTSText: fmt.Sprintf("%s alarm.", label),
	}
}

// ActionRouter maps notification action clicks back onto the timer engine.
type ActionRouter struct {
	Timer *Timer
	Log   *log.Logger
	// OnSnooze, when set, handles snooze clicks. The router itself has no
	// notion of what was shown; the owner re-delivers.
	OnSnooze func()
}

// Handle dispatches one action id. Unknown ids and pure-dismiss ids are
// ignored.
func (r *ActionRouter) Handle(action string) {
	switch action {
	case ActionStartBreak, ActionStartFocus:
		r.Timer.Start()
	case ActionExtendFocus:
		r.Timer.ExtendTime(5)
	case ActionSnooze:
		if r.OnSnooze != nil {
			r.OnSnooze()
		}
	case ActionDismiss:
	default:
		if r.Log != nil {
			r.Log.Printf("focuslib: unknown notification action %q", action)
		}
	}
}

// FormatClock renders seconds as MM:SS for countdown displays.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// FormatEventTime renders an instant as a local HH:MM clock string.
func FormatEventTime(t time.Time) string {
	return t.Format("15:04")
}
