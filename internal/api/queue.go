package api

import (
	"encoding/json"
	"errors"

	"github.com/lofiroom/lofid/common"
	"github.com/lofiroom/lofid/internal/server"
	"github.com/lofiroom/lofid/pkg/focuslib"
)

func (s *Api) queueResponse() *common.QueueResponse {
	return &common.QueueResponse{
		Items: s.queue.Items(),
		Stats: s.queue.Stats(),
	}
}

func (s *Api) addSessionHandler(sconn *server.SyncConn, pool *server.Pool, body json.RawMessage) (common.UpdateType, any, error) {
	var m common.AddSessionParams
	if err := json.Unmarshal(body, &m); err != nil {
		return common.UPDATE_ADD_SESSION, nil, err
	}
	if m.Title == "" {
		return common.UPDATE_ADD_SESSION, nil, errors.New("title is required")
	}
	item, err := s.queue.AddFocusSession(m.Title, m.Minutes, m.AutoInsertBreak, m.Emoji)
	if err != nil {
		return common.UPDATE_ADD_SESSION, nil, err
	}
	s.timer.Rebaseline()
	s.broadcastSync(focuslib.QueueStorageKey, sconn)
	return common.UPDATE_ADD_SESSION, &common.ItemResponse{Item: item}, nil
}

func (s *Api) addPresetHandler(sconn *server.SyncConn, pool *server.Pool, body json.RawMessage) (common.UpdateType, any, error) {
	var m common.AddPresetParams
	if err := json.Unmarshal(body, &m); err != nil {
		return common.UPDATE_ADD_PRESET, nil, err
	}
	p, ok := focuslib.PresetById(m.PresetId)
	if !ok {
		return common.UPDATE_ADD_PRESET, nil, errors.New("preset not found")
	}
	item, err := s.queue.AddPreset(p)
	if err != nil {
		return common.UPDATE_ADD_PRESET, nil, err
	}
	s.timer.Rebaseline()
	s.broadcastSync(focuslib.QueueStorageKey, sconn)
	return common.UPDATE_ADD_PRESET, &common.ItemResponse{Item: item}, nil
}

func (s *Api) addBreakHandler(sconn *server.SyncConn, pool *server.Pool, body json.RawMessage) (common.UpdateType, any, error) {
	var m common.AddBreakParams
	if err := json.Unmarshal(body, &m); err != nil {
		return common.UPDATE_ADD_BREAK, nil, err
	}
	item, err := s.queue.AddBreakSession(m.Minutes, m.AfterItemId)
	if err != nil {
		return common.UPDATE_ADD_BREAK, nil, err
	}
	s.timer.Rebaseline()
	s.broadcastSync(focuslib.QueueStorageKey, sconn)
	return common.UPDATE_ADD_BREAK, &common.ItemResponse{Item: item}, nil
}

func (s *Api) removeItemHandler(sconn *server.SyncConn, pool *server.Pool, body json.RawMessage) (common.UpdateType, any, error) {
	var m common.InputItemId
	if err := json.Unmarshal(body, &m); err != nil {
		return common.UPDATE_REMOVE_ITEM, nil, err
	}
	if m.ItemId == "" {
		return common.UPDATE_REMOVE_ITEM, nil, errors.New("item_id is required")
	}
	if !s.queue.RemoveItem(m.ItemId) {
		return common.UPDATE_REMOVE_ITEM, nil, errors.New("item not found")
	}
	s.timer.Rebaseline()
	s.broadcastSync(focuslib.QueueStorageKey, sconn)
	return common.UPDATE_REMOVE_ITEM, s.queueResponse(), nil
}

func (s *Api) clearCompletedHandler(sconn *server.SyncConn, pool *server.Pool, body json.RawMessage) (common.UpdateType, any, error) {
	s.queue.ClearCompleted()
	s.broadcastSync(focuslib.QueueStorageKey, sconn)
	return common.UPDATE_CLEAR_COMPLETED, s.queueResponse(), nil
}

func (s *Api) clearAllHandler(sconn *server.SyncConn, pool *server.Pool, body json.RawMessage) (common.UpdateType, any, error) {
	s.queue.ClearAll()
	s.timer.Reset()
	s.broadcastSync(focuslib.QueueStorageKey, sconn)
	return common.UPDATE_CLEAR_ALL, s.queueResponse(), nil
}

func (s *Api) queueHandler(sconn *server.SyncConn, pool *server.Pool, body json.RawMessage) (common.UpdateType, any, error) {
	return common.UPDATE_QUEUE, s.queueResponse(), nil
}
