package audio

import (
	"os"
	"os/exec"
	"sync"

	"github.com/rs/zerolog"
)

// ExecSink plays clips by handing them to an external player command
// (e.g. mpv, ffplay). Each clip is written to a temp file that is removed
// when the handle is released.
type ExecSink struct {
	command string
	logger  zerolog.Logger
}

// NewExecSink creates a sink backed by the named player command.
func NewExecSink(command string, logger zerolog.Logger) *ExecSink {
	return &ExecSink{
		command: command,
		logger:  logger.With().Str("component", "audio-sink").Logger(),
	}
}

// Play writes the clip to disk and starts the player process.
func (s *ExecSink) Play(data []byte) (Handle, error) {
	f, err := os.CreateTemp("", "announce-*.mp3")
	if err != nil {
		return nil, err
	}
	path := f.Name()
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(path)
		return nil, err
	}
	f.Close()

	cmd := exec.Command(s.command, path)
	if err := cmd.Start(); err != nil {
		os.Remove(path)
		return nil, err
	}

	h := &execHandle{
		cmd:  cmd,
		path: path,
		done: make(chan struct{}),
	}
	go h.wait(s.logger)
	return h, nil
}

type execHandle struct {
	cmd  *exec.Cmd
	path string

	once sync.Once
	done chan struct{}
}

func (h *execHandle) wait(logger zerolog.Logger) {
	if err := h.cmd.Wait(); err != nil {
		logger.Debug().Err(err).Msg("player exited")
	}
	h.finish()
}

func (h *execHandle) finish() {
	h.once.Do(func() {
		os.Remove(h.path)
		close(h.done)
	})
}

func (h *execHandle) Stop() {
	if h.cmd.Process != nil {
		_ = h.cmd.Process.Kill()
	}
	h.finish()
}

func (h *execHandle) Done() <-chan struct{} {
	return h.done
}

// NopSink discards clips. Used when no player command is configured so the
// rest of the pipeline still exercises arbitration.
type NopSink struct{}

type nopHandle struct{ done chan struct{} }

// Play reports the clip as immediately finished.
func (NopSink) Play(data []byte) (Handle, error) {
	h := nopHandle{done: make(chan struct{})}
	close(h.done)
	return h, nil
}

func (h nopHandle) Stop()                 {}
func (h nopHandle) Done() <-chan struct{} { return h.done }
