// Package api wires the schedule queue, timer engine and reminder books to
// the daemon's wire surface: it registers a handler per method, implements
// the web Core surface and pushes sync/tick updates to attached windows.
package api

import (
	"context"
	"log"

	"github.com/lofiroom/lofid/common"
	"github.com/lofiroom/lofid/internal/scheduler"
	"github.com/lofiroom/lofid/internal/server"
	"github.com/lofiroom/lofid/pkg/focuslib"
)

type Api struct {
	log      *log.Logger
	store    focuslib.Store
	queue    *focuslib.Queue
	timer    *focuslib.Timer
	events   *focuslib.EventBook
	alarms   *focuslib.AlarmBook
	notifier focuslib.NotificationSink
	speech   focuslib.SpeechSink
	router   *focuslib.ActionRouter

	sink         *recordingSink
	snoozer      *scheduler.Scheduler
	cancelSnooze context.CancelFunc

	pool *server.Pool
	push *server.RPCNotifier
}

func NewApi(l *log.Logger, store focuslib.Store, q *focuslib.Queue, t *focuslib.Timer, events *focuslib.EventBook, alarms *focuslib.AlarmBook, notifier focuslib.NotificationSink, speech focuslib.SpeechSink) (*Api, error) {
	s := &Api{
		log:      l,
		store:    store,
		queue:    q,
		timer:    t,
		events:   events,
		alarms:   alarms,
		notifier: notifier,
		speech:   speech,
		sink:     &recordingSink{inner: notifier},
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancelSnooze = cancel
	s.snoozer = scheduler.New(ctx, s.onSnoozeFire)
	s.router = &focuslib.ActionRouter{Timer: t, Log: l, OnSnooze: s.snoozeLast}
	return s, nil
}

// SetPushNotifier attaches the web push surface. Sync and tick broadcasts
// are mirrored to it as JSON-RPC notifications.
func (s *Api) SetPushNotifier(n *server.RPCNotifier) {
	s.push = n
}

func (s *Api) RegisterHandlers(server *server.Server) {
	s.pool = server.Pool()
	s.timer.SetHandlers(focuslib.TimerHandlers{
		OnTick:         s.onTick,
		OnComplete:     s.onItemComplete,
		OnStatusChange: s.onStatusChange,
	})

	// schedule queue methods
	server.RegisterHandler(common.UPDATE_ADD_SESSION, s.addSessionHandler)
	server.RegisterHandler(common.UPDATE_ADD_PRESET, s.addPresetHandler)
	server.RegisterHandler(common.UPDATE_ADD_BREAK, s.addBreakHandler)
	server.RegisterHandler(common.UPDATE_REMOVE_ITEM, s.removeItemHandler)
	server.RegisterHandler(common.UPDATE_CLEAR_COMPLETED, s.clearCompletedHandler)
	server.RegisterHandler(common.UPDATE_CLEAR_ALL, s.clearAllHandler)
	server.RegisterHandler(common.UPDATE_QUEUE, s.queueHandler)

	// timer engine methods
	server.RegisterHandler(common.UPDATE_START, s.startHandler)
	server.RegisterHandler(common.UPDATE_PAUSE, s.pauseHandler)
	server.RegisterHandler(common.UPDATE_RESET, s.resetHandler)
	server.RegisterHandler(common.UPDATE_SKIP, s.skipHandler)
	server.RegisterHandler(common.UPDATE_EXTEND, s.extendHandler)
	server.RegisterHandler(common.UPDATE_SET_DURATION, s.setDurationHandler)
	server.RegisterHandler(common.UPDATE_TIMER, s.timerHandler)

	// calendar event methods
	server.RegisterHandler(common.UPDATE_ADD_EVENT, s.addEventHandler)
	server.RegisterHandler(common.UPDATE_UPDATE_EVENT, s.updateEventHandler)
	server.RegisterHandler(common.UPDATE_DELETE_EVENT, s.deleteEventHandler)
	server.RegisterHandler(common.UPDATE_LIST_EVENTS, s.listEventsHandler)
	server.RegisterHandler(common.UPDATE_CLEAR_PAST_EVENTS, s.clearPastEventsHandler)
	server.RegisterHandler(common.UPDATE_REMINDER_SETTINGS, s.reminderSettingsHandler)

	// alarm methods
	server.RegisterHandler(common.UPDATE_ADD_ALARM, s.addAlarmHandler)
	server.RegisterHandler(common.UPDATE_UPDATE_ALARM, s.updateAlarmHandler)
	server.RegisterHandler(common.UPDATE_DELETE_ALARM, s.deleteAlarmHandler)
	server.RegisterHandler(common.UPDATE_TOGGLE_ALARM, s.toggleAlarmHandler)
	server.RegisterHandler(common.UPDATE_LIST_ALARMS, s.listAlarmsHandler)

	// window session methods
	server.RegisterHandler(common.UPDATE_ATTACH, s.attachHandler)
	server.RegisterHandler(common.UPDATE_VISIBILITY, s.visibilityHandler)
	server.RegisterHandler(common.UPDATE_ACTION, s.actionHandler)
}

func (s *Api) Close() error {
	s.cancelSnooze()
	s.timer.Pause()
	return nil
}
