package api

import (
	"encoding/json"
	"errors"

	"github.com/lofiroom/lofid/common"
	"github.com/lofiroom/lofid/internal/server"
	"github.com/lofiroom/lofid/pkg/focuslib"
)

func (s *Api) timerResponse() *common.TimerResponse {
	return &common.TimerResponse{State: s.timer.Snapshot()}
}

func (s *Api) startHandler(sconn *server.SyncConn, pool *server.Pool, body json.RawMessage) (common.UpdateType, any, error) {
	// Starting may activate the head pending item, which is a queue
	// mutation other windows need to see.
	s.timer.Start()
	s.broadcastSync(focuslib.QueueStorageKey, sconn)
	return common.UPDATE_TIMER, s.timerResponse(), nil
}

func (s *Api) pauseHandler(sconn *server.SyncConn, pool *server.Pool, body json.RawMessage) (common.UpdateType, any, error) {
	s.timer.Pause()
	return common.UPDATE_TIMER, s.timerResponse(), nil
}

func (s *Api) resetHandler(sconn *server.SyncConn, pool *server.Pool, body json.RawMessage) (common.UpdateType, any, error) {
	s.timer.Reset()
	return common.UPDATE_TIMER, s.timerResponse(), nil
}

func (s *Api) skipHandler(sconn *server.SyncConn, pool *server.Pool, body json.RawMessage) (common.UpdateType, any, error) {
	s.timer.Skip()
	s.broadcastSync(focuslib.QueueStorageKey, sconn)
	return common.UPDATE_TIMER, s.timerResponse(), nil
}

func (s *Api) extendHandler(sconn *server.SyncConn, pool *server.Pool, body json.RawMessage) (common.UpdateType, any, error) {
	var m common.ExtendParams
	if err := json.Unmarshal(body, &m); err != nil {
		return common.UPDATE_EXTEND, nil, err
	}
	if m.Minutes <= 0 {
		return common.UPDATE_EXTEND, nil, errors.New("minutes must be positive")
	}
	s.timer.ExtendTime(m.Minutes)
	return common.UPDATE_TIMER, s.timerResponse(), nil
}

func (s *Api) setDurationHandler(sconn *server.SyncConn, pool *server.Pool, body json.RawMessage) (common.UpdateType, any, error) {
	var m common.SetDurationParams
	if err := json.Unmarshal(body, &m); err != nil {
		return common.UPDATE_SET_DURATION, nil, err
	}
	if m.Minutes <= 0 {
		return common.UPDATE_SET_DURATION, nil, errors.New("minutes must be positive")
	}
	s.timer.SetDuration(m.Minutes)
	return common.UPDATE_TIMER, s.timerResponse(), nil
}

func (s *Api) timerHandler(sconn *server.SyncConn, pool *server.Pool, body json.RawMessage) (common.UpdateType, any, error) {
	return common.UPDATE_TIMER, s.timerResponse(), nil
}
