package tui

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
)

const (
	spinnerFrames   = `/|\- `
	spinnerInterval = 100 * time.Millisecond
)

// Spinner is a one-line progress indicator. It only draws when its writer
// is a terminal; otherwise Start and Stop are no-ops.
type Spinner struct {
	w       io.Writer
	msg     string
	enabled bool

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

// NewSpinner creates a spinner that writes to w.
func NewSpinner(w io.Writer, msg string) *Spinner {
	return &Spinner{w: w, msg: msg, enabled: isTerminal(w)}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Enabled reports whether the spinner will draw anything.
func (s *Spinner) Enabled() bool { return s.enabled }

// Start begins ticking until Stop is called.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.enabled || s.stop != nil {
		return
	}
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	go s.run(s.stop, s.done)
}

func (s *Spinner) run(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	for i := 0; ; i++ {
		frame := spinnerFrames[i%len(spinnerFrames)]
		fmt.Fprintf(s.w, "\r%c %s", frame, s.msg)
		select {
		case <-stop:
			return
		case <-ticker.C:
		}
	}
}

// Stop halts the spinner and replaces its line with final, if non-empty.
func (s *Spinner) Stop(final string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop == nil {
		return
	}
	close(s.stop)
	<-s.done
	s.stop, s.done = nil, nil

	fmt.Fprint(s.w, "\r\033[K")
	if final != "" {
		fmt.Fprintln(s.w, final)
	}
}
