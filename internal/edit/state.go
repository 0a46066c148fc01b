// Package edit implements the structural editing rules: indentation, smart
// Enter, bracket pairing and suggestion insertion. Every operation is a pure
// function from one State to the next.
package edit

import (
	"strings"
	"unicode/utf8"

	"codepad/internal/suggest"
)

// Selection is a byte range of the buffer; Start <= End, and Start == End is
// a plain caret.
type Selection struct {
	Start int
	End   int
}

// NewSelection orders a and b.
func NewSelection(a, b int) Selection {
	if a > b {
		a, b = b, a
	}
	return Selection{Start: a, End: b}
}

// Caret returns a collapsed selection at offset.
func Caret(offset int) Selection {
	return Selection{Start: offset, End: offset}
}

func (s Selection) Collapsed() bool { return s.Start == s.End }
func (s Selection) Len() int        { return s.End - s.Start }

// State is the buffer plus selection an operation acts on.
type State struct {
	Text string
	Sel  Selection
}

// Normalize clamps the selection into the buffer, orders it, and moves both
// ends back onto rune boundaries.
func (s State) Normalize() State {
	s.Sel = NewSelection(s.clamp(s.Sel.Start), s.clamp(s.Sel.End))
	return s
}

func (s State) clamp(offset int) int {
	if offset < 0 {
		return 0
	}
	if offset >= len(s.Text) {
		return len(s.Text)
	}
	for offset > 0 && !utf8.RuneStart(s.Text[offset]) {
		offset--
	}
	return offset
}

// Before is the text up to the selection start.
func (s State) Before() string { return s.Text[:s.Sel.Start] }

// After is the text from the selection end.
func (s State) After() string { return s.Text[s.Sel.End:] }

// Selected is the selected text.
func (s State) Selected() string { return s.Text[s.Sel.Start:s.Sel.End] }

// replace swaps [start, end) for insert and puts the caret at caret bytes
// into the inserted text.
func (s State) replace(start, end int, insert string, caret int) State {
	return State{
		Text: s.Text[:start] + insert + s.Text[end:],
		Sel:  Caret(start + caret),
	}
}

// Context carries the per-file settings the rules depend on.
type Context struct {
	Profile suggest.Profile
	TabSize int
}

// DefaultTabSize is the indent width in spaces.
const DefaultTabSize = 2

// Unit is one indentation level.
func (c Context) Unit() string {
	if c.TabSize < 1 {
		return strings.Repeat(" ", DefaultTabSize)
	}
	return strings.Repeat(" ", c.TabSize)
}
