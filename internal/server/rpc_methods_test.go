package server

import (
	"context"
	"testing"

	"github.com/lofiroom/lofid/common"
	"github.com/lofiroom/lofid/pkg/focuslib"
)

// fakeCore records which operations web methods invoked.
type fakeCore struct {
	started  int
	paused   int
	skipped  int
	reset    int
	extended []int
	state    focuslib.TimerState
	added    []common.AddSessionParams
	addErr   error
}

func (c *fakeCore) TimerState() focuslib.TimerState { return c.state }
func (c *fakeCore) StartTimer()                     { c.started++ }
func (c *fakeCore) PauseTimer()                     { c.paused++ }
func (c *fakeCore) ResetTimer()                     { c.reset++ }
func (c *fakeCore) SkipItem()                       { c.skipped++ }
func (c *fakeCore) ExtendTimer(minutes int)         { c.extended = append(c.extended, minutes) }
func (c *fakeCore) QueueSnapshot() common.QueueResponse {
	return common.QueueResponse{Stats: focuslib.QueueStats{TotalItems: 2}}
}
func (c *fakeCore) AddSession(p common.AddSessionParams) (*focuslib.ScheduleItem, error) {
	c.added = append(c.added, p)
	if c.addErr != nil {
		return nil, c.addErr
	}
	return &focuslib.ScheduleItem{Id: "new", Title: p.Title}, nil
}
func (c *fakeCore) ListEvents(todayOnly bool) []*focuslib.EventItem { return nil }
func (c *fakeCore) ListAlarms() []*focuslib.AlarmItem               { return nil }

func newTestRPC(core Core) *RPCServer {
	rs := NewRPCServer(&RPCConfig{Secret: "s3cret", Version: "test"}, core)
	return rs
}

func TestRPCTimerControls(t *testing.T) {
	core := &fakeCore{state: focuslib.TimerState{Status: focuslib.TimerRunning, Remaining: 42}}
	rs := newTestRPC(core)
	defer rs.Close()

	ctx := context.Background()
	if _, err := rs.timerStart(ctx); err != nil {
		t.Fatalf("timer.start: %v", err)
	}
	if _, err := rs.timerPause(ctx); err != nil {
		t.Fatalf("timer.pause: %v", err)
	}
	if _, err := rs.timerSkip(ctx); err != nil {
		t.Fatalf("timer.skip: %v", err)
	}
	if core.started != 1 || core.paused != 1 || core.skipped != 1 {
		t.Fatalf("calls = %+v", core)
	}

	resp, err := rs.timerState(ctx)
	if err != nil {
		t.Fatalf("timer.state: %v", err)
	}
	if resp.State.Remaining != 42 {
		t.Fatalf("state = %+v", resp.State)
	}
}

func TestRPCTimerExtendValidates(t *testing.T) {
	core := &fakeCore{}
	rs := newTestRPC(core)
	defer rs.Close()

	if _, err := rs.timerExtend(context.Background(), &common.ExtendParams{Minutes: 0}); err == nil {
		t.Fatal("expected invalid params error")
	}
	if _, err := rs.timerExtend(context.Background(), &common.ExtendParams{Minutes: 5}); err != nil {
		t.Fatalf("timer.extend: %v", err)
	}
	if len(core.extended) != 1 || core.extended[0] != 5 {
		t.Fatalf("extended = %v", core.extended)
	}
}

func TestRPCQueueAdd(t *testing.T) {
	core := &fakeCore{}
	rs := newTestRPC(core)
	defer rs.Close()

	if _, err := rs.queueAdd(context.Background(), &common.AddSessionParams{}); err == nil {
		t.Fatal("expected missing title error")
	}
	resp, err := rs.queueAdd(context.Background(), &common.AddSessionParams{Title: "Deep Work", Minutes: 60})
	if err != nil {
		t.Fatalf("queue.add: %v", err)
	}
	if resp.Item == nil || resp.Item.Title != "Deep Work" {
		t.Fatalf("item = %+v", resp.Item)
	}
}

func TestRPCGetVersion(t *testing.T) {
	rs := newTestRPC(&fakeCore{})
	defer rs.Close()
	v, err := rs.systemGetVersion(context.Background())
	if err != nil || v.Version != "test" {
		t.Fatalf("version = %+v, %v", v, err)
	}
}

func TestRPCNotifierRegistry(t *testing.T) {
	n := NewRPCNotifier(testLogger())
	if n.Count() != 0 {
		t.Fatalf("count = %d", n.Count())
	}
	// Broadcasting with no registered servers is a safe no-op.
	n.Broadcast("sync.update", &common.SyncUpdate{Key: "k"})
}
