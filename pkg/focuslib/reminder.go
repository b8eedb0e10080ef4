package focuslib

import (
	"context"
	"log"
	"time"

	"github.com/adhocore/gronx"
)

// Poll cadences for the reminder engines. The alarm poller runs faster so a
// minute boundary is never straddled unnoticed.
const (
	EventPollInterval = 30 * time.Second
	AlarmPollInterval = 10 * time.Second
)

// EventReminder scans the event book for entries about to start and fires a
// one-shot notification per entry. Its only mutation is the persisted
// Notified flag.
type EventReminder struct {
	book     *EventBook
	notifier NotificationSink
	speech   SpeechSink
	log      *log.Logger
	now      func() time.Time
	onMutate func()
}

func NewEventReminder(l *log.Logger, book *EventBook, notifier NotificationSink, speech SpeechSink) *EventReminder {
	return &EventReminder{
		book:     book,
		notifier: notifier,
		speech:   speech,
		log:      l,
		now:      time.Now,
	}
}

// SetOnMutate registers fn to run after the engine persists a state change
// (the Notified flag). Call sites use it to fan the new document out to
// attached windows.
func (r *EventReminder) SetOnMutate(fn func()) {
	r.onMutate = fn
}

// Run polls until ctx is cancelled. One check fires immediately so a
// freshly started window does not wait a full interval.
func (r *EventReminder) Run(ctx context.Context) {
	ticker := time.NewTicker(EventPollInterval)
	defer ticker.Stop()
	r.check(r.now())
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.check(r.now())
		}
	}
}

// check fires a reminder for every not-yet-notified event whose start falls
// within the reminder window. The Notified flag is written back before the
// side effects run, so an event can never fire twice even when a sink
// misbehaves.
func (r *EventReminder) check(now time.Time) {
	settings := r.book.Settings()
	if !settings.Enabled {
		return
	}
	window := time.Duration(settings.MinutesBefore) * time.Minute
	for _, e := range r.book.Events() {
		if e.Notified {
			continue
		}
		until := e.StartTime.Sub(now)
		if until < 0 || until > window {
			continue
		}
		r.book.MarkNotified(e.Id)
		if r.onMutate != nil {
			r.onMutate()
		}
		msg := EventReminderMessage(e, settings.MinutesBefore)
		if _, err := r.notifier.Show(NotificationOptions{
			Title:   msg.Title,
			Body:    msg.Body,
			Actions: KindActions[NotifyCalendarReminder],
		}); err != nil {
			r.log.Printf("focuslib: event reminder notification failed: %v", err)
		}
		if settings.UseTTS && r.speech != nil {
			if err := r.speech.Speak(msg.TTSText); err != nil {
				r.log.Printf("focuslib: event reminder speech failed: %v", err)
			}
		}
	}
}

// AlarmReminder fires enabled alarms whose HH:MM matches the current
// minute on an active day. Its only mutation is the LastTriggered stamp.
type AlarmReminder struct {
	book     *AlarmBook
	notifier NotificationSink
	speech   SpeechSink
	log      *log.Logger
	now      func() time.Time
	onMutate func()

	gron       *gronx.Gronx
	lastMinute string
}

func NewAlarmReminder(l *log.Logger, book *AlarmBook, notifier NotificationSink, speech SpeechSink) *AlarmReminder {
	return &AlarmReminder{
		book:     book,
		notifier: notifier,
		speech:   speech,
		log:      l,
		now:      time.Now,
		gron:     gronx.New(),
	}
}

// SetOnMutate registers fn to run after the engine persists a state change
// (the LastTriggered stamp).
func (r *AlarmReminder) SetOnMutate(fn func()) {
	r.onMutate = fn
}

// Run polls until ctx is cancelled.
func (r *AlarmReminder) Run(ctx context.Context) {
	ticker := time.NewTicker(AlarmPollInterval)
	defer ticker.Stop()
	r.check(r.now())
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.check(r.now())
		}
	}
}

// check evaluates every alarm against the current minute. Each minute is
// inspected once per poller; the persisted LastTriggered stamp guards
// against a second poller (another window) firing the same alarm again.
func (r *AlarmReminder) check(now time.Time) {
	minute := now.Format("15:04")
	if r.lastMinute == minute {
		return
	}
	r.lastMinute = minute
	for _, a := range r.book.Alarms() {
		if !a.Enabled {
			continue
		}
		expr, err := a.CronExpr()
		if err != nil {
			r.log.Printf("focuslib: alarm %s has invalid time %q", a.Id, a.Time)
			continue
		}
		// IsDue on a five-field expression only matches at second zero, so
		// the reference time is floored to the minute being inspected.
		due, err := r.gron.IsDue(expr, now.Truncate(time.Minute))
		if err != nil || !due {
			continue
		}
		if !a.LastTriggered.IsZero() && now.Sub(a.LastTriggered) < time.Minute {
			continue
		}
		r.book.MarkTriggered(a.Id, now)
		if r.onMutate != nil {
			r.onMutate()
		}
		msg := AlarmMessage(a)
		if _, err := r.notifier.Show(NotificationOptions{
			Title:   msg.Title,
			Body:    msg.Body,
			Actions: KindActions[NotifyAlarm],
		}); err != nil {
			r.log.Printf("focuslib: alarm notification failed: %v", err)
		}
		if a.UseTTS && r.speech != nil {
			if err := r.speech.Speak(msg.TTSText); err != nil {
				r.log.Printf("focuslib: alarm speech failed: %v", err)
			}
		}
	}
}
