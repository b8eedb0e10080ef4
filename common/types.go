package common

import (
	"encoding/json"
	"time"

	"github.com/lofiroom/lofid/pkg/focuslib"
)

type AddSessionParams struct {
	Title           string `json:"title"`
	Minutes         int    `json:"minutes"`
	AutoInsertBreak bool   `json:"auto_insert_break"`
	Emoji           string `json:"emoji,omitempty"`
}

type AddPresetParams struct {
	PresetId string `json:"preset_id"`
}

type AddBreakParams struct {
	Minutes     int    `json:"minutes"`
	AfterItemId string `json:"after_item_id,omitempty"`
}

type InputItemId struct {
	ItemId string `json:"item_id"`
}

type ItemResponse struct {
	Item *focuslib.ScheduleItem `json:"item,omitempty"`
}

type QueueResponse struct {
	Items []*focuslib.ScheduleItem `json:"items"`
	Stats focuslib.QueueStats      `json:"stats"`
}

type ExtendParams struct {
	Minutes int `json:"minutes"`
}

type SetDurationParams struct {
	Minutes int `json:"minutes"`
}

type TimerResponse struct {
	State focuslib.TimerState `json:"state"`
}

type AddEventParams struct {
	Title       string    `json:"title"`
	Location    string    `json:"location,omitempty"`
	Description string    `json:"description,omitempty"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
}

type UpdateEventParams struct {
	EventId string `json:"event_id"`
	AddEventParams
}

type InputEventId struct {
	EventId string `json:"event_id"`
}

type ListEventsParams struct {
	TodayOnly bool `json:"today_only,omitempty"`
}

type EventResponse struct {
	Event *focuslib.EventItem `json:"event,omitempty"`
}

type EventListResponse struct {
	Events []*focuslib.EventItem `json:"events"`
}

type ClearPastEventsResponse struct {
	Removed int `json:"removed"`
}

type ReminderSettingsParams struct {
	// Settings nil reads the current settings; non-nil replaces them.
	Settings *focuslib.ReminderSettings `json:"settings,omitempty"`
}

type ReminderSettingsResponse struct {
	Settings focuslib.ReminderSettings `json:"settings"`
}

type AddAlarmParams struct {
	Time       string             `json:"time"`
	RepeatDays []focuslib.Weekday `json:"repeat_days,omitempty"`
	Label      string             `json:"label,omitempty"`
	UseTTS     bool               `json:"use_tts,omitempty"`
}

type UpdateAlarmParams struct {
	AlarmId string `json:"alarm_id"`
	AddAlarmParams
}

type InputAlarmId struct {
	AlarmId string `json:"alarm_id"`
}

type ToggleAlarmParams struct {
	AlarmId string `json:"alarm_id"`
	Enabled bool   `json:"enabled"`
}

type AlarmResponse struct {
	Alarm *focuslib.AlarmItem `json:"alarm,omitempty"`
}

type AlarmListResponse struct {
	Alarms []*focuslib.AlarmItem `json:"alarms"`
}

type VisibilityParams struct {
	Visible bool `json:"visible"`
}

type ActionParams struct {
	Action string `json:"action"`
}

type AttachResponse struct {
	Queue QueueResponse       `json:"queue"`
	Timer focuslib.TimerState `json:"timer"`
}

// SyncUpdate is pushed to every attached window after a document mutation.
// Value is the full new document for Key; receivers replace wholesale.
type SyncUpdate struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

// TickUpdate is pushed to visible attached windows on every timer tick and
// on every engine transition.
type TickUpdate struct {
	Action    TickAction             `json:"action"`
	Status    focuslib.TimerStatus   `json:"status"`
	Remaining int                    `json:"remaining"`
	Progress  float64                `json:"progress"`
	Item      *focuslib.ScheduleItem `json:"item,omitempty"`
}
