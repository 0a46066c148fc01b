// Package history is a linear undo/redo stack of full-text snapshots.
package history

import "codepad/internal/logger"

// DefaultLimit bounds the number of snapshots kept per file.
const DefaultLimit = 500

// Stack holds buffer snapshots; entries[pointer] is the displayed buffer.
type Stack struct {
	entries []string
	pointer int
	limit   int
}

// New starts a stack at initial. A limit below 2 falls back to DefaultLimit.
func New(initial string, limit int) *Stack {
	if limit < 2 {
		limit = DefaultLimit
	}
	return &Stack{entries: []string{initial}, limit: limit}
}

// Push records buffer as the newest snapshot, discarding any redo branch.
// It reports false when buffer equals the current snapshot.
func (s *Stack) Push(buffer string) bool {
	if buffer == s.entries[s.pointer] {
		return false
	}

	if s.pointer < len(s.entries)-1 {
		logger.Debug("truncating redo history", "from", len(s.entries), "to", s.pointer+1)
		s.entries = s.entries[:s.pointer+1]
	}
	s.entries = append(s.entries, buffer)
	s.pointer++

	if len(s.entries) > s.limit {
		s.entries = s.entries[1:]
		s.pointer--
	}
	return true
}

// Undo steps back one snapshot. At the oldest entry it returns the current
// buffer and false.
func (s *Stack) Undo() (string, bool) {
	if s.pointer == 0 {
		return s.entries[0], false
	}
	s.pointer--
	logger.Debug("undo", "index", s.pointer, "entries", len(s.entries))
	return s.entries[s.pointer], true
}

// Redo steps forward one snapshot, if one exists.
func (s *Stack) Redo() (string, bool) {
	if s.pointer >= len(s.entries)-1 {
		return s.entries[s.pointer], false
	}
	s.pointer++
	logger.Debug("redo", "index", s.pointer, "entries", len(s.entries))
	return s.entries[s.pointer], true
}

func (s *Stack) Current() string { return s.entries[s.pointer] }
func (s *Stack) CanUndo() bool   { return s.pointer > 0 }
func (s *Stack) CanRedo() bool   { return s.pointer < len(s.entries)-1 }
func (s *Stack) Len() int        { return len(s.entries) }

// Reset drops all history and starts over at buffer, e.g. after a reload.
func (s *Stack) Reset(buffer string) {
	s.entries = []string{buffer}
	s.pointer = 0
}
