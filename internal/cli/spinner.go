package cli

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

var searchFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const frameInterval = 80 * time.Millisecond

// Spinner is the status line shown while a steering search or simulation
// runs. It draws the label with the elapsed time on statusOut and clears
// itself when the search returns or the command context ends.
type Spinner struct {
	label  string
	parent context.Context

	quit     chan struct{}
	exited   chan struct{}
	stopOnce sync.Once

	mu      sync.Mutex // guards statusOut writes and the fields below
	running bool
	width   int // runes on screen, for clearing
}

// newSpinner prepares a status line for label. It draws nothing until Start.
func newSpinner(ctx context.Context, label string) *Spinner {
	return &Spinner{
		label:  label,
		parent: ctx,
		quit:   make(chan struct{}),
		exited: make(chan struct{}),
	}
}

// Start draws frames until Stop is called or the command context ends.
func (s *Spinner) Start() {
	s.mu.Lock()
	s.running = true
	s.mu.Unlock()

	go func() {
		defer close(s.exited)
		began := time.Now()
		tick := time.NewTicker(frameInterval)
		defer tick.Stop()

		for n := 0; ; n++ {
			select {
			case <-s.quit:
				return
			case <-s.parent.Done():
				s.clearLine()
				return
			case <-tick.C:
				s.draw(searchFrames[n%len(searchFrames)], time.Since(began))
			}
		}
	}()
}

func (s *Spinner) draw(frame string, elapsed time.Duration) {
	clock := fmt.Sprintf("%.1fs", elapsed.Seconds())
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(statusOut, "\r%s %s %s", styleIconSpinner.Render(frame), StyleDim.Render(s.label), StyleDim.Render(clock))
	s.width = len([]rune(frame)) + 1 + len([]rune(s.label)) + 1 + len(clock)
}

// Stop ends the animation and wipes the status line. Repeated calls are no-ops.
func (s *Spinner) Stop() {
	s.stopOnce.Do(func() {
		close(s.quit)
		s.mu.Lock()
		running := s.running
		s.mu.Unlock()
		if running {
			<-s.exited
		}
		s.clearLine()
	})
}

func (s *Spinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.width == 0 {
		return
	}
	fmt.Fprintf(statusOut, "\r%s\r", strings.Repeat(" ", s.width))
	s.width = 0
}

// StopWithSuccess replaces the status line with a success message.
func (s *Spinner) StopWithSuccess(message string) {
	s.Stop()
	printSuccess("%s", message)
}

// StopWithError replaces the status line with an error message.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

// Cancelled reports whether the command context ended before Stop, which
// means the search was interrupted rather than finished.
func (s *Spinner) Cancelled() bool {
	select {
	case <-s.quit:
		return false
	default:
		return s.parent.Err() != nil
	}
}
