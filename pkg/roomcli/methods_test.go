package roomcli

import (
	"encoding/json"
	"net"
	"testing"

	"github.com/lofiroom/lofid/common"
	"github.com/lofiroom/lofid/pkg/focuslib"
)

// fakeDaemon answers one framed request per registered method over the
// server side of a pipe.
type fakeDaemon struct {
	t    *testing.T
	conn net.Conn
	// replies maps a method to the response written for it. Methods with a
	// nil entry get an error response.
	replies map[common.UpdateType]*Response
	// got records every request received, in order.
	got []Request
}

func newFakeDaemon(t *testing.T) (*fakeDaemon, *Client) {
	t.Helper()
	srvSide, cliSide := net.Pipe()
	t.Cleanup(func() {
		srvSide.Close()
		cliSide.Close()
	})
	d := &fakeDaemon{
		t:       t,
		conn:    srvSide,
		replies: make(map[common.UpdateType]*Response),
	}
	go d.serve()
	return d, newClient(cliSide)
}

func (d *fakeDaemon) serve() {
	for {
		buf, err := read(d.conn)
		if err != nil {
			return
		}
		var req Request
		if err := json.Unmarshal(buf, &req); err != nil {
			return
		}
		d.got = append(d.got, req)
		resp, ok := d.replies[req.Method]
		if !ok || resp == nil {
			resp = &Response{Ok: false, Error: "method not found"}
		}
		raw, err := json.Marshal(resp)
		if err != nil {
			return
		}
		if err := write(d.conn, raw); err != nil {
			return
		}
	}
}

func (d *fakeDaemon) reply(method common.UpdateType, utype common.UpdateType, msg any) {
	raw, err := json.Marshal(msg)
	if err != nil {
		d.t.Fatalf("marshal reply: %v", err)
	}
	d.replies[method] = &Response{
		Ok:     true,
		Update: &Update{Type: utype, Message: raw},
	}
}

func TestClientAddSession(t *testing.T) {
	d, c := newFakeDaemon(t)
	d.reply(common.UPDATE_ADD_SESSION, common.UPDATE_ADD_SESSION, &common.ItemResponse{
		Item: &focuslib.ScheduleItem{Id: "i1", Title: "Deep Work", DurationMinutes: 60},
	})

	resp, err := c.AddSession("Deep Work", 60, true, "")
	if err != nil {
		t.Fatalf("AddSession: %v", err)
	}
	if resp.Item == nil || resp.Item.Id != "i1" {
		t.Fatalf("item = %+v", resp.Item)
	}

	var p common.AddSessionParams
	raw, _ := json.Marshal(d.got[0].Message)
	if err := json.Unmarshal(raw, &p); err != nil {
		t.Fatalf("decode sent params: %v", err)
	}
	if p.Title != "Deep Work" || p.Minutes != 60 || !p.AutoInsertBreak {
		t.Fatalf("sent params = %+v", p)
	}
}

func TestClientErrorResponse(t *testing.T) {
	d, c := newFakeDaemon(t)
	d.replies[common.UPDATE_START] = &Response{Ok: false, Error: "queue is empty"}

	if _, err := c.StartTimer(); err == nil || err.Error() != "queue is empty" {
		t.Fatalf("err = %v", err)
	}
}

func TestClientTimerMethods(t *testing.T) {
	d, c := newFakeDaemon(t)
	state := focuslib.TimerState{Status: focuslib.TimerRunning, Remaining: 1500}
	for _, m := range []common.UpdateType{
		common.UPDATE_START, common.UPDATE_PAUSE, common.UPDATE_RESET,
		common.UPDATE_SKIP, common.UPDATE_EXTEND, common.UPDATE_TIMER,
	} {
		d.reply(m, common.UPDATE_TIMER, &common.TimerResponse{State: state})
	}

	if resp, err := c.StartTimer(); err != nil || resp.State.Remaining != 1500 {
		t.Fatalf("StartTimer = %+v, %v", resp, err)
	}
	if _, err := c.PauseTimer(); err != nil {
		t.Fatalf("PauseTimer: %v", err)
	}
	if _, err := c.ExtendTimer(5); err != nil {
		t.Fatalf("ExtendTimer: %v", err)
	}

	var p common.ExtendParams
	raw, _ := json.Marshal(d.got[len(d.got)-1].Message)
	if err := json.Unmarshal(raw, &p); err != nil || p.Minutes != 5 {
		t.Fatalf("extend params = %+v (%v)", p, err)
	}
}

func TestClientAttach(t *testing.T) {
	d, c := newFakeDaemon(t)
	d.reply(common.UPDATE_ATTACH, common.UPDATE_ATTACH, &common.AttachResponse{
		Queue: common.QueueResponse{Items: []*focuslib.ScheduleItem{{Id: "i1"}}},
		Timer: focuslib.TimerState{Status: focuslib.TimerIdle, Remaining: 1500},
	})

	resp, err := c.Attach()
	if err != nil {
		t.Fatalf("Attach: %v", err)
	}
	if len(resp.Queue.Items) != 1 || resp.Timer.Remaining != 1500 {
		t.Fatalf("attach response = %+v", resp)
	}
}

func TestClientAlarmMethods(t *testing.T) {
	d, c := newFakeDaemon(t)
	d.reply(common.UPDATE_ADD_ALARM, common.UPDATE_ADD_ALARM, &common.AlarmResponse{
		Alarm: &focuslib.AlarmItem{Id: "a1", Time: "07:30", Enabled: true},
	})
	d.reply(common.UPDATE_TOGGLE_ALARM, common.UPDATE_TOGGLE_ALARM, &common.AlarmListResponse{})

	resp, err := c.AddAlarm(&common.AddAlarmParams{Time: "07:30"})
	if err != nil {
		t.Fatalf("AddAlarm: %v", err)
	}
	if resp.Alarm.Id != "a1" {
		t.Fatalf("alarm = %+v", resp.Alarm)
	}
	if _, err := c.ToggleAlarm("a1", false); err != nil {
		t.Fatalf("ToggleAlarm: %v", err)
	}
}
