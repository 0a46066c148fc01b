// Package render produces the two stacked layers of the editor: the
// transparent input layer and the highlighted display layer. Both are
// styled from one LayerStyle so their glyphs line up exactly.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"codepad/internal/config"
	"codepad/internal/geometry"
)

// LayerStyle is every metric both layers must share.
type LayerStyle struct {
	FontFamily    string
	FontSize      float64
	LineHeight    float64
	LetterSpacing float64
	Padding       float64
	TabSize       int
	Wrap          bool
	CaretColor    string
}

const (
	defaultPadding    = 16
	defaultCaretColor = "#f8f8f2"
)

// NewLayerStyle derives the layer style from the editor configuration.
func NewLayerStyle(cfg config.EditorConfig) LayerStyle {
	return LayerStyle{
		FontFamily: cfg.FontFamily,
		FontSize:   cfg.FontSize,
		LineHeight: cfg.LineHeight,
		Padding:    defaultPadding,
		TabSize:    cfg.TabSize,
		CaretColor: defaultCaretColor,
	}
}

// Frame measures the glyph cell implied by the style.
func (s LayerStyle) Frame() (geometry.Frame, error) {
	return geometry.Measure(s.FontSize, s.LineHeight)
}

// Layout returns the geometry layout for a buffer of lineCount lines.
func (s LayerStyle) Layout(frame geometry.Frame, lineCount int, lineNumbers bool) geometry.Layout {
	l := geometry.Layout{
		PaddingTop:  s.Padding,
		PaddingLeft: s.Padding,
		LineNumbers: lineNumbers,
		TabSize:     s.TabSize,
	}
	if lineNumbers {
		l.GutterWidth = geometry.GutterWidth(lineCount, frame.CharWidth, s.Padding)
	}
	return l
}

// CSS returns the stylesheet for both layers under scope. Shared metrics are
// declared once for both selectors so they cannot drift apart.
func (s LayerStyle) CSS(scope string) string {
	sel := func(class string) string {
		if scope == "" {
			return "." + class
		}
		return scope + " ." + class
	}
	whiteSpace, wrap := "pre", "normal"
	if s.Wrap {
		whiteSpace, wrap = "pre-wrap", "break-word"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s, %s {\n", sel("cp-input"), sel("cp-highlight"))
	fmt.Fprintf(&b, "  position: absolute;\n  inset: 0;\n  margin: 0;\n  border: 0;\n  box-sizing: border-box;\n  overflow: auto;\n")
	fmt.Fprintf(&b, "  font-family: %s;\n", s.FontFamily)
	fmt.Fprintf(&b, "  font-size: %spx;\n", px(s.FontSize))
	fmt.Fprintf(&b, "  line-height: %spx;\n", px(s.FontSize*s.LineHeight))
	fmt.Fprintf(&b, "  letter-spacing: %spx;\n", px(s.LetterSpacing))
	fmt.Fprintf(&b, "  padding: %spx;\n", px(s.Padding))
	fmt.Fprintf(&b, "  tab-size: %d;\n  -moz-tab-size: %d;\n", s.TabSize, s.TabSize)
	fmt.Fprintf(&b, "  white-space: %s;\n  overflow-wrap: %s;\n", whiteSpace, wrap)
	b.WriteString("}\n")

	fmt.Fprintf(&b, "%s {\n", sel("cp-input"))
	fmt.Fprintf(&b, "  z-index: 1;\n  color: transparent;\n  background: transparent;\n  caret-color: %s;\n  resize: none;\n  outline: none;\n", s.CaretColor)
	b.WriteString("}\n")

	fmt.Fprintf(&b, "%s {\n", sel("cp-highlight"))
	b.WriteString("  z-index: 0;\n  pointer-events: none;\n")
	b.WriteString("}\n")
	return b.String()
}

func px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
