package edit

import "codepad/internal/suggest"

// Key is a key the processor may intercept; anything else is left to the
// host's default text handling.
type Key int

const (
	KeyNone Key = iota
	KeyUp
	KeyDown
	KeyEnter
	KeyTab
	KeyEscape
)

// ParseKey maps key names as reported by terminal and browser hosts.
func ParseKey(name string) Key {
	switch name {
	case "up", "ArrowUp":
		return KeyUp
	case "down", "ArrowDown":
		return KeyDown
	case "enter", "Enter":
		return KeyEnter
	case "tab", "Tab":
		return KeyTab
	case "esc", "Escape":
		return KeyEscape
	}
	return KeyNone
}

// Outcome reports what HandleKey did.
type Outcome struct {
	State State
	// Handled means the key was consumed and must not reach the host.
	Handled bool
	// Changed means State.Text differs from the input buffer.
	Changed     bool
	Accepted    *suggest.Suggestion
	PopupClosed bool
}

// HandleKey applies the key precedence: an open popup consumes navigation,
// commit and dismiss keys; otherwise Tab indents and Enter breaks the line.
func HandleKey(s State, popup *suggest.Popup, key Key, ctx Context) Outcome {
	if popup != nil && popup.Active() {
		switch key {
		case KeyDown:
			popup.SelectNext()
			return Outcome{State: s, Handled: true}
		case KeyUp:
			popup.SelectPrev()
			return Outcome{State: s, Handled: true}
		case KeyEnter, KeyTab:
			sug := *popup.SelectedItem()
			popup.Close()
			next := Accept(s, sug, ctx)
			return Outcome{
				State:       next,
				Handled:     true,
				Changed:     next.Text != s.Text,
				Accepted:    &sug,
				PopupClosed: true,
			}
		case KeyEscape:
			popup.Close()
			return Outcome{State: s, Handled: true, PopupClosed: true}
		}
	}

	switch key {
	case KeyTab:
		next := Tab(s, ctx)
		return Outcome{State: next, Handled: true, Changed: true}
	case KeyEnter:
		next := Enter(s, ctx)
		return Outcome{State: next, Handled: true, Changed: true}
	}
	return Outcome{State: s}
}
