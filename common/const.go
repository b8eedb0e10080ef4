package common

// UpdateType names a wire method. Requests carry one to select a handler;
// pushed broadcasts carry one so attached windows can route the payload.
type UpdateType string

const (
	// Schedule queue methods.
	UPDATE_ADD_SESSION     UpdateType = "add_session"
	UPDATE_ADD_PRESET      UpdateType = "add_preset"
	UPDATE_ADD_BREAK       UpdateType = "add_break"
	UPDATE_REMOVE_ITEM     UpdateType = "remove_item"
	UPDATE_CLEAR_COMPLETED UpdateType = "clear_completed"
	UPDATE_CLEAR_ALL       UpdateType = "clear_all"
	UPDATE_QUEUE           UpdateType = "queue"

	// Timer engine methods.
	UPDATE_START        UpdateType = "start"
	UPDATE_PAUSE        UpdateType = "pause"
	UPDATE_RESET        UpdateType = "reset"
	UPDATE_SKIP         UpdateType = "skip"
	UPDATE_EXTEND       UpdateType = "extend"
	UPDATE_SET_DURATION UpdateType = "set_duration"
	UPDATE_TIMER        UpdateType = "timer"

	// Calendar event methods.
	UPDATE_ADD_EVENT         UpdateType = "add_event"
	UPDATE_UPDATE_EVENT      UpdateType = "update_event"
	UPDATE_DELETE_EVENT      UpdateType = "delete_event"
	UPDATE_LIST_EVENTS       UpdateType = "list_events"
	UPDATE_CLEAR_PAST_EVENTS UpdateType = "clear_past_events"
	UPDATE_REMINDER_SETTINGS UpdateType = "reminder_settings"

	// Alarm methods.
	UPDATE_ADD_ALARM    UpdateType = "add_alarm"
	UPDATE_UPDATE_ALARM UpdateType = "update_alarm"
	UPDATE_DELETE_ALARM UpdateType = "delete_alarm"
	UPDATE_TOGGLE_ALARM UpdateType = "toggle_alarm"
	UPDATE_LIST_ALARMS  UpdateType = "list_alarms"

	// Window session methods.
	UPDATE_ATTACH     UpdateType = "attach"
	UPDATE_VISIBILITY UpdateType = "visibility"
	UPDATE_ACTION     UpdateType = "action"

	// Pushed broadcast types.
	UPDATE_SYNC UpdateType = "sync"
	UPDATE_TICK UpdateType = "tick"
)

// MaxMessageSize bounds a single framed wire message. Documents here are
// small; anything past this is a corrupt or hostile frame.
const MaxMessageSize = 8 << 20

// TickAction classifies a pushed tick update.
type TickAction string

const (
	TickProgress  TickAction = "tick_progress"
	TickComplete  TickAction = "tick_complete"
	StatusChanged TickAction = "status_changed"
)
