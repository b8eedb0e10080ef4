package roomcli

import (
	"encoding/json"

	"github.com/lofiroom/lofid/common"
	"github.com/lofiroom/lofid/pkg/focuslib"
)

func invokeTyped[T any](c *Client, method common.UpdateType, message any) (*T, error) {
	raw, err := c.invoke(method, message)
	if err != nil {
		return nil, err
	}
	var v T
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
	}
	return &v, nil
}

// AddSession appends a focus session to the schedule queue.
func (c *Client) AddSession(title string, minutes int, autoInsertBreak bool, emoji string) (*common.ItemResponse, error) {
	return invokeTyped[common.ItemResponse](c, common.UPDATE_ADD_SESSION, &common.AddSessionParams{
		Title:           title,
		Minutes:         minutes,
		AutoInsertBreak: autoInsertBreak,
		Emoji:           emoji,
	})
}

// AddPreset appends a focus session built from a named preset.
func (c *Client) AddPreset(presetId string) (*common.ItemResponse, error) {
	return invokeTyped[common.ItemResponse](c, common.UPDATE_ADD_PRESET, &common.AddPresetParams{PresetId: presetId})
}

// AddBreak appends a break, optionally spliced after an existing item.
func (c *Client) AddBreak(minutes int, afterItemId string) (*common.ItemResponse, error) {
	return invokeTyped[common.ItemResponse](c, common.UPDATE_ADD_BREAK, &common.AddBreakParams{
		Minutes:     minutes,
		AfterItemId: afterItemId,
	})
}

// RemoveItem deletes a queue item by id.
func (c *Client) RemoveItem(itemId string) (*common.QueueResponse, error) {
	return invokeTyped[common.QueueResponse](c, common.UPDATE_REMOVE_ITEM, &common.InputItemId{ItemId: itemId})
}

// ClearCompleted drops completed and skipped items from the queue.
func (c *Client) ClearCompleted() (*common.QueueResponse, error) {
	return invokeTyped[common.QueueResponse](c, common.UPDATE_CLEAR_COMPLETED, nil)
}

// ClearAll empties the schedule queue.
func (c *Client) ClearAll() (*common.QueueResponse, error) {
	return invokeTyped[common.QueueResponse](c, common.UPDATE_CLEAR_ALL, nil)
}

// GetQueue returns the full queue with aggregate stats.
func (c *Client) GetQueue() (*common.QueueResponse, error) {
	return invokeTyped[common.QueueResponse](c, common.UPDATE_QUEUE, nil)
}

// StartTimer begins or resumes the countdown.
func (c *Client) StartTimer() (*common.TimerResponse, error) {
	return invokeTyped[common.TimerResponse](c, common.UPDATE_START, nil)
}

// PauseTimer snapshots the remaining time and stops the clock.
func (c *Client) PauseTimer() (*common.TimerResponse, error) {
	return invokeTyped[common.TimerResponse](c, common.UPDATE_PAUSE, nil)
}

// ResetTimer restores the full nominal duration.
func (c *Client) ResetTimer() (*common.TimerResponse, error) {
	return invokeTyped[common.TimerResponse](c, common.UPDATE_RESET, nil)
}

// SkipItem skips the current (or next pending) queue item.
func (c *Client) SkipItem() (*common.TimerResponse, error) {
	return invokeTyped[common.TimerResponse](c, common.UPDATE_SKIP, nil)
}

// ExtendTimer pushes the deadline out by the given minutes.
func (c *Client) ExtendTimer(minutes int) (*common.TimerResponse, error) {
	return invokeTyped[common.TimerResponse](c, common.UPDATE_EXTEND, &common.ExtendParams{Minutes: minutes})
}

// SetDuration overrides the idle countdown length.
func (c *Client) SetDuration(minutes int) (*common.TimerResponse, error) {
	return invokeTyped[common.TimerResponse](c, common.UPDATE_SET_DURATION, &common.SetDurationParams{Minutes: minutes})
}

// GetTimer returns the current engine snapshot.
func (c *Client) GetTimer() (*common.TimerResponse, error) {
	return invokeTyped[common.TimerResponse](c, common.UPDATE_TIMER, nil)
}

// AddEvent creates a calendar event.
func (c *Client) AddEvent(p *common.AddEventParams) (*common.EventResponse, error) {
	return invokeTyped[common.EventResponse](c, common.UPDATE_ADD_EVENT, p)
}

// UpdateEvent edits a calendar event in place.
func (c *Client) UpdateEvent(p *common.UpdateEventParams) (*common.EventListResponse, error) {
	return invokeTyped[common.EventListResponse](c, common.UPDATE_UPDATE_EVENT, p)
}

// DeleteEvent removes a calendar event by id.
func (c *Client) DeleteEvent(eventId string) (*common.EventListResponse, error) {
	return invokeTyped[common.EventListResponse](c, common.UPDATE_DELETE_EVENT, &common.InputEventId{EventId: eventId})
}

// ListEvents returns all events, or just today's.
func (c *Client) ListEvents(todayOnly bool) (*common.EventListResponse, error) {
	return invokeTyped[common.EventListResponse](c, common.UPDATE_LIST_EVENTS, &common.ListEventsParams{TodayOnly: todayOnly})
}

// ClearPastEvents drops events that ended before today.
func (c *Client) ClearPastEvents() (*common.ClearPastEventsResponse, error) {
	return invokeTyped[common.ClearPastEventsResponse](c, common.UPDATE_CLEAR_PAST_EVENTS, nil)
}

// GetReminderSettings reads the event reminder settings.
func (c *Client) GetReminderSettings() (*common.ReminderSettingsResponse, error) {
	return invokeTyped[common.ReminderSettingsResponse](c, common.UPDATE_REMINDER_SETTINGS, nil)
}

// SetReminderSettings replaces the event reminder settings.
func (c *Client) SetReminderSettings(s focuslib.ReminderSettings) (*common.ReminderSettingsResponse, error) {
	return invokeTyped[common.ReminderSettingsResponse](c, common.UPDATE_REMINDER_SETTINGS, &common.ReminderSettingsParams{Settings: &s})
}

// AddAlarm creates an enabled alarm.
func (c *Client) AddAlarm(p *common.AddAlarmParams) (*common.AlarmResponse, error) {
	return invokeTyped[common.AlarmResponse](c, common.UPDATE_ADD_ALARM, p)
}

// UpdateAlarm edits an alarm in place.
func (c *Client) UpdateAlarm(p *common.UpdateAlarmParams) (*common.AlarmListResponse, error) {
	return invokeTyped[common.AlarmListResponse](c, common.UPDATE_UPDATE_ALARM, p)
}

// DeleteAlarm removes an alarm by id.
func (c *Client) DeleteAlarm(alarmId string) (*common.AlarmListResponse, error) {
	return invokeTyped[common.AlarmListResponse](c, common.UPDATE_DELETE_ALARM, &common.InputAlarmId{AlarmId: alarmId})
}

// ToggleAlarm enables or disables an alarm.
func (c *Client) ToggleAlarm(alarmId string, enabled bool) (*common.AlarmListResponse, error) {
	return invokeTyped[common.AlarmListResponse](c, common.UPDATE_TOGGLE_ALARM, &common.ToggleAlarmParams{
		AlarmId: alarmId,
		Enabled: enabled,
	})
}

// ListAlarms returns every alarm in the book.
func (c *Client) ListAlarms() (*common.AlarmListResponse, error) {
	return invokeTyped[common.AlarmListResponse](c, common.UPDATE_LIST_ALARMS, nil)
}

// Attach registers this connection for pushed updates and returns the full
// current state for the first paint.
func (c *Client) Attach() (*common.AttachResponse, error) {
	return invokeTyped[common.AttachResponse](c, common.UPDATE_ATTACH, nil)
}

// ReportVisibility tells the daemon whether this window can be seen. Ticks
// are only pushed while at least one attached window is visible.
func (c *Client) ReportVisibility(visible bool) (*common.TimerResponse, error) {
	return invokeTyped[common.TimerResponse](c, common.UPDATE_VISIBILITY, &common.VisibilityParams{Visible: visible})
}

// SendAction forwards a notification action click to the daemon.
func (c *Client) SendAction(action string) (*common.TimerResponse, error) {
	return invokeTyped[common.TimerResponse](c, common.UPDATE_ACTION, &common.ActionParams{Action: action})
}
