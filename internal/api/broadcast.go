package api

import (
	"github.com/lofiroom/lofid/common"
	"github.com/lofiroom/lofid/internal/server"
	"github.com/lofiroom/lofid/pkg/focuslib"
)

// Push notification method names seen by web clients.
const (
	pushSyncMethod = "sync.update"
	pushTickMethod = "timer.tick"
)

// broadcastSync pushes the full current document for key to every attached
// window except origin, and mirrors it to the web push surface. Receivers
// replace their copy wholesale; the last full write wins.
func (s *Api) broadcastSync(key string, origin *server.SyncConn) {
	raw, err := s.store.Get(key)
	if err != nil {
		s.log.Printf("error: failed to read %s for sync broadcast: %v", key, err)
		return
	}
	upd := &common.SyncUpdate{Key: key, Value: raw}
	if s.pool != nil {
		s.pool.Broadcast(common.UPDATE_SYNC, upd, origin)
	}
	if s.push != nil {
		s.push.Broadcast(pushSyncMethod, upd)
	}
}

// PushSync fans the current document for key out to every attached window
// and the web push surface. Daemon-internal mutation paths (the reminder
// engines, the countdown loop) use it; request handlers broadcast through
// broadcastSync instead so the originating connection, whose reply is still
// pending, is excluded.
func (s *Api) PushSync(key string) {
	s.broadcastSync(key, nil)
}

func (s *Api) broadcastTick(upd *common.TickUpdate) {
	if s.pool != nil {
		s.pool.Broadcast(common.UPDATE_TICK, upd, nil)
	}
	if s.push != nil {
		s.push.Broadcast(pushTickMethod, upd)
	}
}

// onTick relays one countdown evaluation to attached windows. The engine
// already suppresses ticks while no window is visible.
func (s *Api) onTick(remaining int) {
	s.broadcastTick(&common.TickUpdate{
		Action:    common.TickProgress,
		Status:    focuslib.TimerRunning,
		Remaining: remaining,
		Progress:  s.timer.Progress(),
	})
}

func (s *Api) onStatusChange(status focuslib.TimerStatus) {
	s.broadcastTick(&common.TickUpdate{
		Action:    common.StatusChanged,
		Status:    status,
		Remaining: s.timer.Remaining(),
		Progress:  s.timer.Progress(),
	})
}

// onItemComplete runs the completion side effects: the queue mutation has
// already been persisted by the engine, so windows get the new document,
// then the user gets a notification with its action buttons.
func (s *Api) onItemComplete(item *focuslib.ScheduleItem) {
	s.broadcastSync(focuslib.QueueStorageKey, nil)
	s.broadcastTick(&common.TickUpdate{
		Action:    common.TickComplete,
		Status:    s.timer.Status(),
		Remaining: s.timer.Remaining(),
		Progress:  s.timer.Progress(),
		Item:      item,
	})
	s.notifyItemComplete(item)
}

func (s *Api) notifyItemComplete(item *focuslib.ScheduleItem) {
	if s.notifier == nil {
		return
	}
	kind, msg := focuslib.ItemCompleteMessage(item)
	if _, err := s.notifier.Show(focuslib.NotificationOptions{
		Title:   msg.Title,
		Body:    msg.Body,
		Actions: focuslib.KindActions[kind],
	}); err != nil {
		s.log.Printf("error: completion notification failed: %v", err)
	}
	if s.speech != nil {
		if err := s.speech.Speak(msg.TTSText); err != nil {
			s.log.Printf("error: completion speech failed: %v", err)
		}
	}
	if s.queue.NextItem() == nil && s.queue.CurrentItem() == nil {
		if _, err := s.notifier.Show(focuslib.NotificationOptions{
			Title:   "Schedule complete",
			Body:    "Every session in the queue is done.",
			Actions: focuslib.KindActions[focuslib.NotifyScheduleComplete],
		}); err != nil {
			s.log.Printf("error: schedule-complete notification failed: %v", err)
		}
	}
}
