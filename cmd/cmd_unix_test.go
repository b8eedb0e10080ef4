//go:build !windows

package cmd

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"io"
	"net"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	lcommon "github.com/lofiroom/lofid/common"
	"github.com/lofiroom/lofid/pkg/focuslib"
)

// fakeServer speaks the daemon's length-prefixed frame protocol over a unix
// socket so client commands can run against canned replies.
type fakeServer struct {
	t        *testing.T
	listener net.Listener
	wg       sync.WaitGroup

	mu      sync.Mutex
	replies map[lcommon.UpdateType]any
	fail    map[lcommon.UpdateType]string
	got     []lcommon.UpdateType
}

func startFakeServer(t *testing.T) *fakeServer {
	t.Helper()
	socketPath := filepath.Join(t.TempDir(), "lofid.sock")
	t.Setenv(lcommon.SocketPathEnv, socketPath)

	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	srv := &fakeServer{
		t:        t,
		listener: listener,
		replies:  make(map[lcommon.UpdateType]any),
		fail:     make(map[lcommon.UpdateType]string),
	}
	srv.wg.Add(1)
	go srv.serve()
	t.Cleanup(srv.close)
	return srv
}

func (s *fakeServer) close() {
	_ = s.listener.Close()
	s.wg.Wait()
}

func (s *fakeServer) reply(method lcommon.UpdateType, message any) {
	s.mu.Lock()
	s.replies[method] = message
	s.mu.Unlock()
}

func (s *fakeServer) replyError(method lcommon.UpdateType, msg string) {
	s.mu.Lock()
	s.fail[method] = msg
	s.mu.Unlock()
}

func (s *fakeServer) methods() []lcommon.UpdateType {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]lcommon.UpdateType(nil), s.got...)
}

func (s *fakeServer) serve() {
	defer s.wg.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return
		}
		s.wg.Add(1)
		go func(c net.Conn) {
			defer s.wg.Done()
			defer c.Close()
			for {
				buf, err := readFrame(c)
				if err != nil {
					return
				}
				var req struct {
					Method  lcommon.UpdateType `json:"method"`
					Message json.RawMessage    `json:"message"`
				}
				if err := json.Unmarshal(buf, &req); err != nil {
					return
				}
				s.mu.Lock()
				s.got = append(s.got, req.Method)
				failMsg, failed := s.fail[req.Method]
				message := s.replies[req.Method]
				s.mu.Unlock()

				var resp map[string]any
				if failed {
					resp = map[string]any{"ok": false, "error": failMsg}
				} else {
					resp = map[string]any{
						"ok": true,
						"update": map[string]any{
							"type":    req.Method,
							"message": message,
						},
					}
				}
				out, err := json.Marshal(resp)
				if err != nil {
					return
				}
				if err := writeFrame(c, out); err != nil {
					return
				}
			}
		}(conn)
	}
}

func readFrame(conn net.Conn) ([]byte, error) {
	head := make([]byte, 4)
	if _, err := io.ReadFull(conn, head); err != nil {
		return nil, err
	}
	buf := make([]byte, binary.LittleEndian.Uint32(head))
	if _, err := io.ReadFull(conn, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func writeFrame(conn net.Conn, b []byte) error {
	head := make([]byte, 4)
	binary.LittleEndian.PutUint32(head, uint32(len(b)))
	if _, err := conn.Write(head); err != nil {
		return err
	}
	_, err := conn.Write(b)
	return err
}

// captureOutput runs fn with stdout redirected and returns what it printed.
func captureOutput(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stdout = w
	defer func() { os.Stdout = old }()

	done := make(chan string, 1)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		done <- buf.String()
	}()

	fn()
	_ = w.Close()
	return <-done
}

func TestStatusCommand(t *testing.T) {
	srv := startFakeServer(t)
	srv.reply(lcommon.UPDATE_TIMER, lcommon.TimerResponse{
		State: focuslib.TimerState{
			Status:    focuslib.TimerRunning,
			Remaining: 1500,
			Total:     3000,
			Current:   &focuslib.ScheduleItem{Title: "Deep Work", DurationMinutes: 50},
		},
	})

	out := captureOutput(t, func() {
		if err := Execute([]string{"lofi", "status"}, BuildArgs{Version: "test"}); err != nil {
			t.Errorf("Execute: %v", err)
		}
	})
	if !strings.Contains(out, "running") {
		t.Errorf("output missing status: %q", out)
	}
	if !strings.Contains(out, "25:00 / 50:00") {
		t.Errorf("output missing clock: %q", out)
	}
	if !strings.Contains(out, "Deep Work") {
		t.Errorf("output missing current item: %q", out)
	}
}

func TestQueueCommandEmpty(t *testing.T) {
	srv := startFakeServer(t)
	srv.reply(lcommon.UPDATE_QUEUE, lcommon.QueueResponse{})

	out := captureOutput(t, func() {
		if err := Execute([]string{"lofi", "queue"}, BuildArgs{Version: "test"}); err != nil {
			t.Errorf("Execute: %v", err)
		}
	})
	if !strings.Contains(out, "empty") {
		t.Errorf("output = %q", out)
	}
}

func TestAddCommand(t *testing.T) {
	srv := startFakeServer(t)
	srv.reply(lcommon.UPDATE_ADD_SESSION, lcommon.ItemResponse{
		Item: &focuslib.ScheduleItem{
			Id:              "item-1",
			Title:           "Write report",
			DurationMinutes: 45,
		},
	})

	out := captureOutput(t, func() {
		if err := Execute([]string{"lofi", "add", "-m", "45", "Write report"}, BuildArgs{Version: "test"}); err != nil {
			t.Errorf("Execute: %v", err)
		}
	})
	if !strings.Contains(out, "Write report") || !strings.Contains(out, "item-1") {
		t.Errorf("output = %q", out)
	}

	methods := srv.methods()
	if len(methods) == 0 || methods[0] != lcommon.UPDATE_ADD_SESSION {
		t.Fatalf("daemon saw methods %v", methods)
	}
}

func TestStartCommandError(t *testing.T) {
	srv := startFakeServer(t)
	srv.replyError(lcommon.UPDATE_START, "queue is empty")

	out := captureOutput(t, func() {
		if err := Execute([]string{"lofi", "start"}, BuildArgs{Version: "test"}); err != nil {
			t.Errorf("Execute: %v", err)
		}
	})
	if !strings.Contains(out, "queue is empty") {
		t.Errorf("output = %q", out)
	}
}

func TestAlarmListCommand(t *testing.T) {
	srv := startFakeServer(t)
	srv.reply(lcommon.UPDATE_LIST_ALARMS, lcommon.AlarmListResponse{
		Alarms: []*focuslib.AlarmItem{
			{Id: "al-1", Time: "07:30", Enabled: true, RepeatDays: []focuslib.Weekday{focuslib.Mon}},
		},
	})

	out := captureOutput(t, func() {
		if err := Execute([]string{"lofi", "alarm", "list"}, BuildArgs{Version: "test"}); err != nil {
			t.Errorf("Execute: %v", err)
		}
	})
	if !strings.Contains(out, "07:30") || !strings.Contains(out, "mon") {
		t.Errorf("output = %q", out)
	}
}
