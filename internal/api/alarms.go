package api

import (
	"encoding/json"
	"errors"

	"github.com/lofiroom/lofid/common"
	"github.com/lofiroom/lofid/internal/server"
	"github.com/lofiroom/lofid/pkg/focuslib"
)

func (s *Api) alarmListResponse() *common.AlarmListResponse {
	return &common.AlarmListResponse{Alarms: s.alarms.Alarms()}
}

func (s *Api) addAlarmHandler(sconn *server.SyncConn, pool *server.Pool, body json.RawMessage) (common.UpdateType, any, error) {
	var m common.AddAlarmParams
	if err := json.Unmarshal(body, &m); err != nil {
		return common.UPDATE_ADD_ALARM, nil, err
	}
	a, err := s.alarms.AddAlarm(m.Time, m.RepeatDays, m.Label, m.UseTTS)
	if err != nil {
		return common.UPDATE_ADD_ALARM, nil, err
	}
	s.broadcastSync(focuslib.AlarmStorageKey, sconn)
	return common.UPDATE_ADD_ALARM, &common.AlarmResponse{Alarm: a}, nil
}

func (s *Api) updateAlarmHandler(sconn *server.SyncConn, pool *server.Pool, body json.RawMessage) (common.UpdateType, any, error) {
	var m common.UpdateAlarmParams
	if err := json.Unmarshal(body, &m); err != nil {
		return common.UPDATE_UPDATE_ALARM, nil, err
	}
	if m.AlarmId == "" {
		return common.UPDATE_UPDATE_ALARM, nil, errors.New("alarm_id is required")
	}
	if m.Time != "" {
		probe := focuslib.AlarmItem{Time: m.Time, RepeatDays: m.RepeatDays}
		if _, err := probe.CronExpr(); err != nil {
			return common.UPDATE_UPDATE_ALARM, nil, err
		}
	}
	ok := s.alarms.UpdateAlarm(m.AlarmId, func(a *focuslib.AlarmItem) {
		if m.Time != "" {
			a.Time = m.Time
		}
		if m.RepeatDays != nil {
			a.RepeatDays = m.RepeatDays
		}
		if m.Label != "" {
			a.Label = m.Label
		}
		a.UseTTS = m.UseTTS
	})
	if !ok {
		return common.UPDATE_UPDATE_ALARM, nil, errors.New("alarm not found")
	}
	s.broadcastSync(focuslib.AlarmStorageKey, sconn)
	return common.UPDATE_UPDATE_ALARM, s.alarmListResponse(), nil
}

func (s *Api) deleteAlarmHandler(sconn *server.SyncConn, pool *server.Pool, body json.RawMessage) (common.UpdateType, any, error) {
	var m common.InputAlarmId
	if err := json.Unmarshal(body, &m); err != nil {
		return common.UPDATE_DELETE_ALARM, nil, err
	}
	if m.AlarmId == "" {
		return common.UPDATE_DELETE_ALARM, nil, errors.New("alarm_id is required")
	}
	if !s.alarms.DeleteAlarm(m.AlarmId) {
		return common.UPDATE_DELETE_ALARM, nil, errors.New("alarm not found")
	}
	s.broadcastSync(focuslib.AlarmStorageKey, sconn)
	return common.UPDATE_DELETE_ALARM, s.alarmListResponse(), nil
}

func (s *Api) toggleAlarmHandler(sconn *server.SyncConn, pool *server.Pool, body json.RawMessage) (common.UpdateType, any, error) {
	var m common.ToggleAlarmParams
	if err := json.Unmarshal(body, &m); err != nil {
		return common.UPDATE_TOGGLE_ALARM, nil, err
	}
	if m.AlarmId == "" {
		return common.UPDATE_TOGGLE_ALARM, nil, errors.New("alarm_id is required")
	}
	if !s.alarms.SetEnabled(m.AlarmId, m.Enabled) {
		return common.UPDATE_TOGGLE_ALARM, nil, errors.New("alarm not found")
	}
	s.broadcastSync(focuslib.AlarmStorageKey, sconn)
	return common.UPDATE_TOGGLE_ALARM, s.alarmListResponse(), nil
}

func (s *Api) listAlarmsHandler(sconn *server.SyncConn, pool *server.Pool, body json.RawMessage) (common.UpdateType, any, error) {
	return common.UPDATE_LIST_ALARMS, s.alarmListResponse(), nil
}
