package focuslib

import (
	"strings"
	"testing"
	"time"
)

func TestItemCompleteMessage(t *testing.T) {
	focus := &ScheduleItem{Type: ItemFocus, Title: "Deep Work", DurationMinutes: 60}
	kind, msg := ItemCompleteMessage(focus)
	if kind != NotifyFocusComplete {
		t.Fatalf("kind = %q, want %q", kind, NotifyFocusComplete)
	}
	if !strings.Contains(msg.Title, "Deep Work") {
		t.Fatalf("title = %q", msg.Title)
	}
	if !strings.Contains(msg.Body, "60") {
		t.Fatalf("body = %q", msg.Body)
	}

	br := &ScheduleItem{Type: ItemBreak, Title: DefaultBreakTitle, DurationMinutes: 10}
	kind, _ = ItemCompleteMessage(br)
	if kind != NotifyBreakComplete {
		t.Fatalf("kind = %q, want %q", kind, NotifyBreakComplete)
	}
}

func TestKindActions(t *testing.T) {
	acts := KindActions[NotifyFocusComplete]
	if len(acts) != 2 || acts[0].Id != ActionStartBreak || acts[1].Id != ActionExtendFocus {
		t.Fatalf("focus-complete actions = %+v", acts)
	}
	acts = KindActions[NotifyBreakComplete]
	if len(acts) != 2 || acts[0].Id != ActionStartFocus {
		t.Fatalf("break-complete actions = %+v", acts)
	}
}

func TestEventReminderMessageLocation(t *testing.T) {
	start := time.Date(2026, 8, 31, 14, 30, 0, 0, time.UTC)
	e := &EventItem{Title: "Standup", StartTime: start}
	msg := EventReminderMessage(e, 10)
	if !strings.Contains(msg.Body, "Standup") || !strings.Contains(msg.Body, "10") {
		t.Fatalf("body = %q", msg.Body)
	}
	if strings.Contains(msg.Body, "Location") {
		t.Fatalf("location rendered for locationless event: %q", msg.Body)
	}

	e.Location = "Room 4"
	msg = EventReminderMessage(e, 10)
	if !strings.Contains(msg.Body, "Room 4") || !strings.Contains(msg.TTSText, "Room 4") {
		t.Fatalf("location missing: body=%q tts=%q", msg.Body, msg.TTSText)
	}
}

func TestActionRouterStartsTimer(t *testing.T) {
	clk := newFakeClock(time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC))
	tm, q := newTestTimer(t, clk)
	q.AddFocusSession("focus", 25, false, "")
	tm.Rebaseline()

	r := &ActionRouter{Timer: tm, Log: testLogger()}
	r.Handle(ActionStartFocus)
	haltLoop(tm)
	if tm.Status() != TimerRunning {
		t.Fatalf("status after start-focus = %q, want running", tm.Status())
	}

	before := tm.Remaining()
	r.Handle(ActionExtendFocus)
	if got := tm.Remaining() - before; got != 300 {
		t.Fatalf("extend-focus grew remaining by %d, want 300", got)
	}

	// Dismiss and unknown ids are inert.
	r.Handle(ActionDismiss)
	r.Handle("bogus")
	if tm.Status() != TimerRunning {
		t.Fatalf("status after inert actions = %q", tm.Status())
	}
}

func TestActionRouterSnoozeHook(t *testing.T) {
	calls := 0
	r := &ActionRouter{Log: testLogger(), OnSnooze: func() { calls++ }}
	r.Handle(ActionSnooze)
	if calls != 1 {
		t.Fatalf("snooze hook calls = %d, want 1", calls)
	}
	r.Handle(ActionDismiss)
	if calls != 1 {
		t.Fatalf("dismiss invoked snooze hook, calls = %d", calls)
	}

	// Without a hook, snooze is inert.
	bare := &ActionRouter{Log: testLogger()}
	bare.Handle(ActionSnooze)
}

func TestFormatClock(t *testing.T) {
	cases := []struct {
		in   int
		want string
	}{
		{0, "00:00"},
		{-3, "00:00"},
		{59, "00:59"},
		{60, "01:00"},
		{1500, "25:00"},
		{3599, "59:59"},
	}
	for _, c := range cases {
		if got := FormatClock(c.in); got != c.want {
			t.Errorf("FormatClock(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}
