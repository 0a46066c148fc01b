package components

import (
	"fmt"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// SpinnerComponent animates while a model request is running and shows how
// long it has been waiting.
type SpinnerComponent struct {
	frame   int
	label   string
	started time.Time
	elapsed time.Duration
}

func NewSpinnerComponent() *SpinnerComponent {
	return &SpinnerComponent{}
}

// Start resets the spinner for a new request.
func (s *SpinnerComponent) Start(label string, now time.Time) {
	s.frame = 0
	s.label = label
	s.started = now
	s.elapsed = 0
}

// Tick advances the frame and the elapsed time.
func (s *SpinnerComponent) Tick(now time.Time) {
	s.frame = (s.frame + 1) % len(spinnerFrames)
	if !s.started.IsZero() {
		s.elapsed = now.Sub(s.started)
	}
}

// Render returns the frame and label, with whole seconds once the request
// has taken longer than one.
func (s *SpinnerComponent) Render() string {
	out := spinnerFrames[s.frame]
	if s.label != "" {
		out += " " + s.label
	}
	if secs := int(s.elapsed / time.Second); secs > 0 {
		out += fmt.Sprintf(" (%ds)", secs)
	}
	return out
}
