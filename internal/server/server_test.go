package server

import (
	"encoding/json"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/lofiroom/lofid/common"
)

func newTestServer() *Server {
	return NewServer(testLogger(), nil, 0)
}

// roundTrip feeds one framed request through handlerWrapper and returns the
// decoded response read from the peer end.
func roundTrip(t *testing.T, s *Server, method common.UpdateType, msg any) *Response {
	t.Helper()
	serverSide, clientSide := net.Pipe()
	defer serverSide.Close()
	defer clientSide.Close()

	raw, err := json.Marshal(Request{Method: method, Message: mustRaw(t, msg)})
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}

	respCh := make(chan *Response, 1)
	go func() {
		sc := NewSyncConn(clientSide)
		b, err := sc.Read()
		if err != nil {
			return
		}
		var resp Response
		if json.Unmarshal(b, &resp) == nil {
			respCh <- &resp
		}
	}()

	if err := s.handlerWrapper(NewSyncConn(serverSide), raw); err != nil {
		t.Fatalf("handlerWrapper: %v", err)
	}
	select {
	case resp := <-respCh:
		return resp
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for response")
		return nil
	}
}

func mustRaw(t *testing.T, msg any) json.RawMessage {
	t.Helper()
	if msg == nil {
		return nil
	}
	b, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal message: %v", err)
	}
	return b
}

func TestHandlerDispatch(t *testing.T) {
	s := newTestServer()
	var gotBody json.RawMessage
	s.RegisterHandler(common.UPDATE_EXTEND, func(conn *SyncConn, pool *Pool, body json.RawMessage) (common.UpdateType, any, error) {
		gotBody = body
		return common.UPDATE_TIMER, &common.TimerResponse{}, nil
	})

	resp := roundTrip(t, s, common.UPDATE_EXTEND, &common.ExtendParams{Minutes: 5})
	if !resp.Ok {
		t.Fatalf("response not ok: %+v", resp)
	}
	if resp.Update == nil || resp.Update.Type != common.UPDATE_TIMER {
		t.Fatalf("update = %+v", resp.Update)
	}
	var p common.ExtendParams
	if err := json.Unmarshal(gotBody, &p); err != nil || p.Minutes != 5 {
		t.Fatalf("handler body = %s (%v)", gotBody, err)
	}
}

func TestHandlerUnknownMethod(t *testing.T) {
	s := newTestServer()
	resp := roundTrip(t, s, "no_such_method", nil)
	if resp.Ok || resp.Error == "" {
		t.Fatalf("expected error response, got %+v", resp)
	}
}

func TestHandlerErrorResponse(t *testing.T) {
	s := newTestServer()
	s.RegisterHandler(common.UPDATE_START, func(conn *SyncConn, pool *Pool, body json.RawMessage) (common.UpdateType, any, error) {
		return "", nil, errors.New("engine exploded")
	})
	resp := roundTrip(t, s, common.UPDATE_START, nil)
	if resp.Ok {
		t.Fatalf("expected failure response, got %+v", resp)
	}
	if resp.Error != "engine exploded" {
		t.Fatalf("error = %q", resp.Error)
	}
}

func TestHandlerMalformedRequest(t *testing.T) {
	s := newTestServer()
	serverSide, clientSide := net.Pipe()
	defer serverSide.Close()
	defer clientSide.Close()
	if err := s.handlerWrapper(NewSyncConn(serverSide), []byte("{broken")); err == nil {
		t.Fatal("expected parse error")
	}
}
