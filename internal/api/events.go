package api

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/lofiroom/lofid/common"
	"github.com/lofiroom/lofid/internal/server"
	"github.com/lofiroom/lofid/pkg/focuslib"
)

func validateEventTimes(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return errors.New("start_time and end_time are required")
	}
	if !end.After(start) {
		return errors.New("end_time must be after start_time")
	}
	return nil
}

func (s *Api) addEventHandler(sconn *server.SyncConn, pool *server.Pool, body json.RawMessage) (common.UpdateType, any, error) {
	var m common.AddEventParams
	if err := json.Unmarshal(body, &m); err != nil {
		return common.UPDATE_ADD_EVENT, nil, err
	}
	if m.Title == "" {
		return common.UPDATE_ADD_EVENT, nil, errors.New("title is required")
	}
	if err := validateEventTimes(m.StartTime, m.EndTime); err != nil {
		return common.UPDATE_ADD_EVENT, nil, err
	}
	e := s.events.AddEvent(m.Title, m.Location, m.Description, m.StartTime, m.EndTime)
	s.broadcastSync(focuslib.EventStorageKey, sconn)
	return common.UPDATE_ADD_EVENT, &common.EventResponse{Event: e}, nil
}

func (s *Api) updateEventHandler(sconn *server.SyncConn, pool *server.Pool, body json.RawMessage) (common.UpdateType, any, error) {
	var m common.UpdateEventParams
	if err := json.Unmarshal(body, &m); err != nil {
		return common.UPDATE_UPDATE_EVENT, nil, err
	}
	if m.EventId == "" {
		return common.UPDATE_UPDATE_EVENT, nil, errors.New("event_id is required")
	}
	if !m.StartTime.IsZero() || !m.EndTime.IsZero() {
		if err := validateEventTimes(m.StartTime, m.EndTime); err != nil {
			return common.UPDATE_UPDATE_EVENT, nil, err
		}
	}
	ok := s.events.UpdateEvent(m.EventId, func(e *focuslib.EventItem) {
		if m.Title != "" {
			e.Title = m.Title
		}
		if m.Location != "" {
			e.Location = m.Location
		}
		if m.Description != "" {
			e.Description = m.Description
		}
		if !m.StartTime.IsZero() {
			e.StartTime = m.StartTime
			e.EndTime = m.EndTime
			// The reminder window moved, so the one-shot applies to the
			// new start.
			e.Notified = false
		}
	})
	if !ok {
		return common.UPDATE_UPDATE_EVENT, nil, errors.New("event not found")
	}
	s.broadcastSync(focuslib.EventStorageKey, sconn)
	return common.UPDATE_UPDATE_EVENT, s.eventListResponse(false), nil
}

func (s *Api) deleteEventHandler(sconn *server.SyncConn, pool *server.Pool, body json.RawMessage) (common.UpdateType, any, error) {
	var m common.InputEventId
	if err := json.Unmarshal(body, &m); err != nil {
		return common.UPDATE_DELETE_EVENT, nil, err
	}
	if m.EventId == "" {
		return common.UPDATE_DELETE_EVENT, nil, errors.New("event_id is required")
	}
	if !s.events.DeleteEvent(m.EventId) {
		return common.UPDATE_DELETE_EVENT, nil, errors.New("event not found")
	}
	s.broadcastSync(focuslib.EventStorageKey, sconn)
	return common.UPDATE_DELETE_EVENT, s.eventListResponse(false), nil
}

func (s *Api) eventListResponse(todayOnly bool) *common.EventListResponse {
	if todayOnly {
		return &common.EventListResponse{Events: s.events.TodayEvents(time.Now())}
	}
	return &common.EventListResponse{Events: s.events.Events()}
}

func (s *Api) listEventsHandler(sconn *server.SyncConn, pool *server.Pool, body json.RawMessage) (common.UpdateType, any, error) {
	var m common.ListEventsParams
	if len(body) > 0 {
		if err := json.Unmarshal(body, &m); err != nil {
			return common.UPDATE_LIST_EVENTS, nil, err
		}
	}
	return common.UPDATE_LIST_EVENTS, s.eventListResponse(m.TodayOnly), nil
}

func (s *Api) clearPastEventsHandler(sconn *server.SyncConn, pool *server.Pool, body json.RawMessage) (common.UpdateType, any, error) {
	removed := s.events.ClearPastEvents(time.Now())
	if removed > 0 {
		s.broadcastSync(focuslib.EventStorageKey, sconn)
	}
	return common.UPDATE_CLEAR_PAST_EVENTS, &common.ClearPastEventsResponse{Removed: removed}, nil
}

func (s *Api) reminderSettingsHandler(sconn *server.SyncConn, pool *server.Pool, body json.RawMessage) (common.UpdateType, any, error) {
	var m common.ReminderSettingsParams
	if len(body) > 0 {
		if err := json.Unmarshal(body, &m); err != nil {
			return common.UPDATE_REMINDER_SETTINGS, nil, err
		}
	}
	if m.Settings != nil {
		if m.Settings.MinutesBefore <= 0 {
			return common.UPDATE_REMINDER_SETTINGS, nil, errors.New("minutes_before must be positive")
		}
		s.events.SetSettings(*m.Settings)
		s.broadcastSync(focuslib.EventSettingsStorageKey, sconn)
	}
	return common.UPDATE_REMINDER_SETTINGS, &common.ReminderSettingsResponse{Settings: s.events.Settings()}, nil
}
