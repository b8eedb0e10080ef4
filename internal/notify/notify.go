// Package notify provides the daemon-side notification and speech sinks.
// The daemon has no display surface of its own; it records every
// notification in the log and relies on attached windows rendering the
// broadcast that accompanies it. Speech is delegated to the platform
// text-to-speech command when one exists.
package notify

import (
	"log"

	"github.com/lofiroom/lofid/pkg/focuslib"
)

// LogSink records notifications in the daemon log.
type LogSink struct {
	log *log.Logger
}

func NewLogSink(l *log.Logger) *LogSink {
	return &LogSink{log: l}
}

func (s *LogSink) Show(o focuslib.NotificationOptions) (focuslib.NotificationResult, error) {
	s.log.Printf("notify: %s: %s", o.Title, o.Body)
	return focuslib.NotificationResult{
		Success:    true,
		HasActions: len(o.Actions) > 0,
	}, nil
}

var _ focuslib.NotificationSink = (*LogSink)(nil)
