package focuslib

import (
	"errors"
	"sync"
	"testing"
	"time"
)

type sinkRec struct {
	mu    sync.Mutex
	shown []NotificationOptions
	err   error
}

func (s *sinkRec) Show(o NotificationOptions) (NotificationResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shown = append(s.shown, o)
	if s.err != nil {
		return NotificationResult{}, s.err
	}
	return NotificationResult{Success: true, HasActions: len(o.Actions) > 0}, nil
}

func (s *sinkRec) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.shown)
}

type speechRec struct {
	mu     sync.Mutex
	spoken []string
}

func (s *speechRec) Speak(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.spoken = append(s.spoken, text)
	return nil
}

func (s *speechRec) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.spoken)
}

func TestEventReminderFiresInWindow(t *testing.T) {
	now := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	book := NewEventBook(testLogger(), NewMemStore())
	book.AddEvent("Standup", "Room 4", "", now.Add(5*time.Minute), now.Add(20*time.Minute))

	sink := &sinkRec{}
	speech := &speechRec{}
	r := NewEventReminder(testLogger(), book, sink, speech)

	r.check(now)
	if sink.count() != 1 {
		t.Fatalf("notifications = %d, want 1", sink.count())
	}
	if speech.count() != 1 {
		t.Fatalf("speech = %d, want 1", speech.count())
	}

	// The flag is persisted, so re-checks and fresh engines stay silent.
	r.check(now.Add(time.Minute))
	if sink.count() != 1 {
		t.Fatalf("reminder fired twice: %d", sink.count())
	}
	r2 := NewEventReminder(testLogger(), book, sink, speech)
	r2.check(now.Add(2 * time.Minute))
	if sink.count() != 1 {
		t.Fatalf("fresh engine re-fired reminder: %d", sink.count())
	}

	events := book.Events()
	if len(events) != 1 || !events[0].Notified {
		t.Fatalf("Notified flag not persisted: %+v", events)
	}
}

func TestEventReminderOutsideWindow(t *testing.T) {
	now := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	book := NewEventBook(testLogger(), NewMemStore())
	book.AddEvent("Far off", "", "", now.Add(30*time.Minute), now.Add(time.Hour))
	book.AddEvent("Already started", "", "", now.Add(-time.Minute), now.Add(time.Hour))

	sink := &sinkRec{}
	r := NewEventReminder(testLogger(), book, sink, nil)
	r.check(now)
	if sink.count() != 0 {
		t.Fatalf("notifications = %d, want 0", sink.count())
	}
}

func TestEventReminderDisabled(t *testing.T) {
	now := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	book := NewEventBook(testLogger(), NewMemStore())
	book.AddEvent("Standup", "", "", now.Add(5*time.Minute), now.Add(20*time.Minute))
	book.SetSettings(ReminderSettings{Enabled: false, MinutesBefore: 10})

	sink := &sinkRec{}
	r := NewEventReminder(testLogger(), book, sink, nil)
	r.check(now)
	if sink.count() != 0 {
		t.Fatalf("disabled reminder fired: %d", sink.count())
	}
}

func TestEventReminderSinkFailureStillOneShot(t *testing.T) {
	now := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	book := NewEventBook(testLogger(), NewMemStore())
	book.AddEvent("Standup", "", "", now.Add(5*time.Minute), now.Add(20*time.Minute))

	sink := &sinkRec{err: errors.New("display gone")}
	r := NewEventReminder(testLogger(), book, sink, nil)
	r.check(now)
	r.check(now.Add(time.Minute))
	// The flag flips before the sink runs; a broken sink cannot cause a
	// retry storm.
	if sink.count() != 1 {
		t.Fatalf("notification attempts = %d, want 1", sink.count())
	}
}

func TestEventReminderNoTTSWhenDisabled(t *testing.T) {
	now := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	book := NewEventBook(testLogger(), NewMemStore())
	book.AddEvent("Standup", "", "", now.Add(5*time.Minute), now.Add(20*time.Minute))
	s := book.Settings()
	s.UseTTS = false
	book.SetSettings(s)

	sink := &sinkRec{}
	speech := &speechRec{}
	r := NewEventReminder(testLogger(), book, sink, speech)
	r.check(now)
	if sink.count() != 1 || speech.count() != 0 {
		t.Fatalf("sink=%d speech=%d, want 1/0", sink.count(), speech.count())
	}
}

func TestAlarmReminderFiresOnMatchingMinute(t *testing.T) {
	// 2026-08-31 is a Monday.
	now := time.Date(2026, 8, 31, 9, 30, 5, 0, time.Local)
	book := NewAlarmBook(testLogger(), NewMemStore())
	if _, err := book.AddAlarm("09:30", []Weekday{Mon, Fri}, "Wake up", true); err != nil {
		t.Fatalf("AddAlarm: %v", err)
	}

	sink := &sinkRec{}
	speech := &speechRec{}
	r := NewAlarmReminder(testLogger(), book, sink, speech)
	r.check(now)
	if sink.count() != 1 {
		t.Fatalf("notifications = %d, want 1", sink.count())
	}
	if speech.count() != 1 {
		t.Fatalf("speech = %d, want 1", speech.count())
	}

	// Same minute re-checked by the same poller: the minute guard holds.
	r.check(now.Add(20 * time.Second))
	if sink.count() != 1 {
		t.Fatalf("alarm fired twice in one minute: %d", sink.count())
	}

	// A second poller (another window) in the same minute: the persisted
	// LastTriggered stamp holds.
	r2 := NewAlarmReminder(testLogger(), book, sink, speech)
	r2.check(now.Add(30 * time.Second))
	if sink.count() != 1 {
		t.Fatalf("second poller re-fired alarm: %d", sink.count())
	}

	alarms := book.Alarms()
	if len(alarms) != 1 || alarms[0].LastTriggered.IsZero() {
		t.Fatalf("LastTriggered not persisted: %+v", alarms)
	}
}

func TestEventReminderMutateHook(t *testing.T) {
	now := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	book := NewEventBook(testLogger(), NewMemStore())
	book.AddEvent("Standup", "", "", now.Add(5*time.Minute), now.Add(20*time.Minute))

	r := NewEventReminder(testLogger(), book, &sinkRec{}, nil)
	mutations := 0
	r.SetOnMutate(func() { mutations++ })

	r.check(now)
	if mutations != 1 {
		t.Fatalf("mutate hook calls = %d, want 1", mutations)
	}
	// Nothing fires, nothing mutates.
	r.check(now.Add(time.Minute))
	if mutations != 1 {
		t.Fatalf("mutate hook calls after silent check = %d", mutations)
	}
}

func TestAlarmReminderMutateHook(t *testing.T) {
	// 2026-08-31 is a Monday.
	now := time.Date(2026, 8, 31, 9, 30, 5, 0, time.Local)
	book := NewAlarmBook(testLogger(), NewMemStore())
	if _, err := book.AddAlarm("09:30", nil, "", false); err != nil {
		t.Fatalf("AddAlarm: %v", err)
	}

	r := NewAlarmReminder(testLogger(), book, &sinkRec{}, nil)
	mutations := 0
	r.SetOnMutate(func() { mutations++ })

	r.check(now)
	if mutations != 1 {
		t.Fatalf("mutate hook calls = %d, want 1", mutations)
	}
}

func TestAlarmReminderRespectsRepeatDays(t *testing.T) {
	// 2026-09-01 is a Tuesday.
	now := time.Date(2026, 9, 1, 9, 30, 5, 0, time.Local)
	book := NewAlarmBook(testLogger(), NewMemStore())
	book.AddAlarm("09:30", []Weekday{Mon, Fri}, "", false)

	sink := &sinkRec{}
	r := NewAlarmReminder(testLogger(), book, sink, nil)
	r.check(now)
	if sink.count() != 0 {
		t.Fatalf("alarm fired on inactive day: %d", sink.count())
	}
}

func TestAlarmReminderSkipsDisabled(t *testing.T) {
	now := time.Date(2026, 8, 31, 9, 30, 5, 0, time.Local)
	book := NewAlarmBook(testLogger(), NewMemStore())
	a, _ := book.AddAlarm("09:30", nil, "", false)
	book.SetEnabled(a.Id, false)

	sink := &sinkRec{}
	r := NewAlarmReminder(testLogger(), book, sink, nil)
	r.check(now)
	if sink.count() != 0 {
		t.Fatalf("disabled alarm fired: %d", sink.count())
	}
}

func TestAlarmReminderWrongMinute(t *testing.T) {
	now := time.Date(2026, 8, 31, 9, 31, 0, 0, time.Local)
	book := NewAlarmBook(testLogger(), NewMemStore())
	book.AddAlarm("09:30", nil, "", false)

	sink := &sinkRec{}
	r := NewAlarmReminder(testLogger(), book, sink, nil)
	r.check(now)
	if sink.count() != 0 {
		t.Fatalf("alarm fired on wrong minute: %d", sink.count())
	}
}
