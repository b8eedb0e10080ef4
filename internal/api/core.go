package api

import (
	"errors"
	"time"

	"github.com/lofiroom/lofid/common"
	"github.com/lofiroom/lofid/pkg/focuslib"
)

// Web clients hit the same engine as socket windows; mutations made over
// JSON-RPC broadcast to every attached window (there is no origin to skip).

func (s *Api) TimerState() focuslib.TimerState {
	return s.timer.Snapshot()
}

func (s *Api) StartTimer() {
	s.timer.Start()
	s.broadcastSync(focuslib.QueueStorageKey, nil)
}

func (s *Api) PauseTimer() {
	s.timer.Pause()
}

func (s *Api) ResetTimer() {
	s.timer.Reset()
}

func (s *Api) SkipItem() {
	s.timer.Skip()
	s.broadcastSync(focuslib.QueueStorageKey, nil)
}

func (s *Api) ExtendTimer(minutes int) {
	s.timer.ExtendTime(minutes)
}

func (s *Api) QueueSnapshot() common.QueueResponse {
	return *s.queueResponse()
}

func (s *Api) AddSession(p common.AddSessionParams) (*focuslib.ScheduleItem, error) {
	if p.Title == "" {
		return nil, errors.New("title is required")
	}
	item, err := s.queue.AddFocusSession(p.Title, p.Minutes, p.AutoInsertBreak, p.Emoji)
	if err != nil {
		return nil, err
	}
	s.timer.Rebaseline()
	s.broadcastSync(focuslib.QueueStorageKey, nil)
	return item, nil
}

func (s *Api) ListEvents(todayOnly bool) []*focuslib.EventItem {
	if todayOnly {
		return s.events.TodayEvents(time.Now())
	}
	return s.events.Events()
}

func (s *Api) ListAlarms() []*focuslib.AlarmItem {
	return s.alarms.Alarms()
}
