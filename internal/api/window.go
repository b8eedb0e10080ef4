package api

import (
	"encoding/json"
	"errors"

	"github.com/lofiroom/lofid/common"
	"github.com/lofiroom/lofid/internal/server"
	"github.com/lofiroom/lofid/pkg/focuslib"
)

func (s *Api) attachHandler(sconn *server.SyncConn, pool *server.Pool, body json.RawMessage) (common.UpdateType, any, error) {
	pool.Attach(sconn)
	s.timer.SetVisible(pool.AnyVisible())
	return common.UPDATE_ATTACH, &common.AttachResponse{
		Queue: *s.queueResponse(),
		Timer: s.timer.Snapshot(),
	}, nil
}

// visibilityHandler records one window's visibility. Ticks flow as long as
// at least one attached window can be seen.
func (s *Api) visibilityHandler(sconn *server.SyncConn, pool *server.Pool, body json.RawMessage) (common.UpdateType, any, error) {
	var m common.VisibilityParams
	if err := json.Unmarshal(body, &m); err != nil {
		return common.UPDATE_VISIBILITY, nil, err
	}
	pool.SetVisible(sconn, m.Visible)
	s.timer.SetVisible(pool.AnyVisible())
	return common.UPDATE_TIMER, s.timerResponse(), nil
}

func (s *Api) actionHandler(sconn *server.SyncConn, pool *server.Pool, body json.RawMessage) (common.UpdateType, any, error) {
	var m common.ActionParams
	if err := json.Unmarshal(body, &m); err != nil {
		return common.UPDATE_ACTION, nil, err
	}
	if m.Action == "" {
		return common.UPDATE_ACTION, nil, errors.New("action is required")
	}
	s.router.Handle(m.Action)
	s.broadcastSync(focuslib.QueueStorageKey, sconn)
	return common.UPDATE_TIMER, s.timerResponse(), nil
}
