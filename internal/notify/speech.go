package notify

import (
	"log"
	"os/exec"
	"runtime"

	"github.com/lofiroom/lofid/pkg/focuslib"
)

// speechCommand returns the platform text-to-speech command, or empty when
// the platform has none on the path.
func speechCommand() string {
	switch runtime.GOOS {
	case "darwin":
		return "say"
	default:
		if _, err := exec.LookPath("espeak"); err == nil {
			return "espeak"
		}
		return ""
	}
}

// Speech speaks phrases through the platform TTS command. When no command
// is available every Speak is a logged no-op.
type Speech struct {
	log *log.Logger
	cmd string
}

func NewSpeech(l *log.Logger) *Speech {
	return &Speech{log: l, cmd: speechCommand()}
}

func (s *Speech) Speak(text string) error {
	if s.cmd == "" {
		s.log.Printf("speech unavailable, skipping: %q", text)
		return nil
	}
	// Fire-and-forget: a slow TTS engine must not stall the caller.
	cmd := exec.Command(s.cmd, text)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

var _ focuslib.SpeechSink = (*Speech)(nil)
