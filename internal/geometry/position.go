// Package geometry maps buffer offsets to rows, columns and pixels for a
// monospace frame, and back.
package geometry

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

type Position struct {
	Row int
	Col int
}

// PositionOf locates offset in text. Col is the display width of the line
// prefix: wide runes count two cells and tabs advance to the next multiple
// of tabSize.
func PositionOf(text string, offset, tabSize int) Position {
	offset = clampOffset(text, offset)
	before := text[:offset]
	row := strings.Count(before, "\n")
	lineStart := strings.LastIndexByte(before, '\n') + 1
	return Position{Row: row, Col: lineWidth(before[lineStart:], tabSize)}
}

// OffsetAt is the inverse of PositionOf. Rows and columns past the end are
// clamped; a column inside a wide rune or tab resolves to the nearer edge.
func OffsetAt(text string, pos Position, tabSize int) int {
	start, end := lineBounds(text, pos.Row)
	if pos.Col <= 0 {
		return start
	}
	col := 0
	for i, r := range text[start:end] {
		w := runeWidth(r, col, tabSize)
		if pos.Col < col+(w+1)/2 {
			return start + i
		}
		col += w
		if col >= pos.Col {
			return start + i + utf8.RuneLen(r)
		}
	}
	return end
}

// MoveVertical moves offset delta rows up (negative) or down, keeping the
// goal column across short lines. A negative goalCol uses the current
// column. Moving past the first or last row goes to the buffer edge. It
// returns the new offset and the goal column to carry into the next move.
func MoveVertical(text string, offset, delta, goalCol, tabSize int) (int, int) {
	pos := PositionOf(text, offset, tabSize)
	if goalCol < 0 {
		goalCol = pos.Col
	}
	row := pos.Row + delta
	switch {
	case row < 0:
		return 0, goalCol
	case row >= LineCount(text):
		return len(text), goalCol
	}
	return OffsetAt(text, Position{Row: row, Col: goalCol}, tabSize), goalCol
}

// LineCount is the number of rows text occupies; an empty buffer has one.
func LineCount(text string) int {
	return strings.Count(text, "\n") + 1
}

func lineBounds(text string, row int) (int, int) {
	start := 0
	for r := 0; r < row; r++ {
		i := strings.IndexByte(text[start:], '\n')
		if i < 0 {
			break
		}
		start += i + 1
	}
	end := strings.IndexByte(text[start:], '\n')
	if end < 0 {
		return start, len(text)
	}
	return start, start + end
}

func lineWidth(line string, tabSize int) int {
	col := 0
	for _, r := range line {
		col += runeWidth(r, col, tabSize)
	}
	return col
}

func runeWidth(r rune, col, tabSize int) int {
	if r == '\t' {
		if tabSize < 1 {
			tabSize = 1
		}
		return tabSize - col%tabSize
	}
	return runewidth.RuneWidth(r)
}

func clampOffset(text string, offset int) int {
	if offset < 0 {
		return 0
	}
	if offset > len(text) {
		return len(text)
	}
	for offset > 0 && offset < len(text) && !utf8.RuneStart(text[offset]) {
		offset--
	}
	return offset
}
