package geometry

import (
	"math"
	"strconv"
)

// Frame is the measured monospace glyph cell.
type Frame struct {
	CharWidth  float64
	LineHeight float64
}

// Layout holds the fixed padding around the text area.
type Layout struct {
	PaddingTop  float64
	PaddingLeft float64
	GutterWidth float64
	LineNumbers bool
	TabSize     int
}

func (l Layout) left() float64 {
	if l.LineNumbers {
		return l.PaddingLeft + l.GutterWidth
	}
	return l.PaddingLeft
}

type Point struct {
	Top  float64
	Left float64
}

// OffsetToPixel returns the top-left corner of the cell at offset.
func OffsetToPixel(text string, offset int, frame Frame, layout Layout) Point {
	pos := PositionOf(text, offset, layout.TabSize)
	return Point{
		Top:  float64(pos.Row)*frame.LineHeight + layout.PaddingTop,
		Left: float64(pos.Col)*frame.CharWidth + layout.left(),
	}
}

// PixelToOffset maps a point inside the text area to the nearest caret
// position: the row containing the point, the column boundary closest to it.
func PixelToOffset(text string, p Point, frame Frame, layout Layout) int {
	if frame.CharWidth <= 0 || frame.LineHeight <= 0 {
		return 0
	}
	row := int(math.Floor((p.Top - layout.PaddingTop) / frame.LineHeight))
	col := int(math.Round((p.Left - layout.left()) / frame.CharWidth))
	if row < 0 {
		return 0
	}
	if row >= LineCount(text) {
		return len(text)
	}
	return OffsetAt(text, Position{Row: row, Col: max(col, 0)}, layout.TabSize)
}

// GutterWidth is the width of a line-number gutter wide enough for
// lineCount, plus padding on its right.
func GutterWidth(lineCount int, charWidth, padding float64) float64 {
	digits := len(strconv.Itoa(max(lineCount, 1)))
	return float64(digits)*charWidth + padding
}
