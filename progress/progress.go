// Package progress provides a single-line spinner for long-running
// discovery work, with terminal-aware rendering. On a non-terminal
// writer the spinner stays silent so piped output remains clean.
package progress

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"
)

const refreshInterval = 80 * time.Millisecond

var spinnerChars = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner renders an animated message on a single line until stopped.
type Spinner struct {
	message string
	out     io.Writer
	tty     bool

	mu       sync.Mutex
	stopChan chan struct{}
	done     chan struct{}
	started  bool
	stopped  bool
}

// New creates a spinner that writes to stderr. The animation only runs
// when stderr is a terminal.
func New(message string) *Spinner {
	return &Spinner{
		message: message,
		out:     os.Stderr,
		tty:     term.IsTerminal(int(os.Stderr.Fd())),
	}
}

// NewWriter creates a spinner targeting w. Rendering is forced on,
// which makes the animation testable without a pty.
func NewWriter(message string, w io.Writer) *Spinner {
	return &Spinner{message: message, out: w, tty: true}
}

// Start begins the animation. Calling Start on a non-terminal spinner
// or a spinner that is already running is a no-op.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.tty || s.started {
		return
	}
	s.started = true
	s.stopChan = make(chan struct{})
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(refreshInterval)
		defer ticker.Stop()
		for {
			select {
			case <-s.stopChan:
				return
			case t := <-ticker.C:
				fmt.Fprintf(s.out, "\r%s %s", frame(t), s.message)
			}
		}
	}()
}

// Stop halts the animation and clears the spinner line. Safe to call
// multiple times and on a spinner that never started.
func (s *Spinner) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started || s.stopped {
		return
	}
	s.stopped = true
	close(s.stopChan)
	<-s.done
	fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", len(s.message)+2))
}

// frame returns the spinner character for time t.
func frame(t time.Time) string {
	index := (t.UnixNano() / int64(refreshInterval)) % int64(len(spinnerChars))
	return spinnerChars[index]
}
