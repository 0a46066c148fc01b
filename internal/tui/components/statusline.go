package components

import (
	"time"

	"github.com/charmbracelet/lipgloss"
)

// StatuslineMessageType represents the severity of a status message
type StatuslineMessageType int

const (
	StatuslineInfo StatuslineMessageType = iota
	StatuslineWarning
	StatuslineError
)

// StatuslineMessage is a transient message such as "saved" or a format error
type StatuslineMessage struct {
	Type     StatuslineMessageType
	Text     string
	Duration time.Duration
	ShowTime time.Time
}

// NewStatuslineMessage stamps a message with the current time
func NewStatuslineMessage(kind StatuslineMessageType, text string, d time.Duration) *StatuslineMessage {
	return &StatuslineMessage{Type: kind, Text: text, Duration: d, ShowTime: time.Now()}
}

// StatuslineComponent shows the latest message above the footer
type StatuslineComponent struct {
	message *StatuslineMessage
	width   int
}

func NewStatuslineComponent(width int) *StatuslineComponent {
	return &StatuslineComponent{width: width}
}

func (s *StatuslineComponent) SetMessage(msg *StatuslineMessage) {
	s.message = msg
}

func (s *StatuslineComponent) ClearMessage() {
	s.message = nil
}

// Message returns the current message, or nil
func (s *StatuslineComponent) Message() *StatuslineMessage {
	return s.message
}

// HasExpired reports whether a timed message should be cleared
func (s *StatuslineComponent) HasExpired(now time.Time) bool {
	if s.message == nil || s.message.Duration == 0 {
		return false
	}
	return now.Sub(s.message.ShowTime) > s.message.Duration
}

// Render renders the statusline, a blank bar when there is no message
func (s *StatuslineComponent) Render() string {
	base := lipgloss.NewStyle().Background(lipgloss.Color("0")).Width(s.width)
	if s.message == nil {
		return base.Render(" ")
	}

	var fg lipgloss.Color
	switch s.message.Type {
	case StatuslineWarning:
		fg = lipgloss.Color("226")
	case StatuslineError:
		fg = lipgloss.Color("196")
	default:
		fg = lipgloss.Color("252")
	}
	return base.Foreground(fg).Padding(0, 1).Render(s.message.Text)
}

func (s *StatuslineComponent) SetWidth(width int) {
	s.width = width
}
