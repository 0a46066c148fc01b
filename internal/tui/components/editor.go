package components

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/chroma/v2"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"

	"codepad/internal/edit"
	"codepad/internal/geometry"
	"codepad/internal/render"
)

// EditorComponent paints the visible window of a highlighted buffer: gutter,
// tokens, selection, caret and color previews.
type EditorComponent struct {
	Text        string
	Lines       [][]render.Span
	Selection   edit.Selection
	Caret       int
	Colors      []render.ColorSpan
	Theme       *render.Highlighter
	TabSize     int
	ScrollRow   int
	ScrollCol   int
	Width       int
	Height      int
	LineNumbers bool
	Focused     bool

	starts []int
}

// NewEditorComponent prepares c for rendering.
func NewEditorComponent(c EditorComponent) *EditorComponent {
	if c.TabSize < 1 {
		c.TabSize = edit.DefaultTabSize
	}
	c.starts = lineStarts(c.Text)
	return &c
}

func lineStarts(text string) []int {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// GutterWidth is the width of the line number column including its
// trailing space, or 0 when line numbers are off.
func (c *EditorComponent) GutterWidth() int {
	if !c.LineNumbers {
		return 0
	}
	return int(geometry.GutterWidth(len(c.starts), 1, 1))
}

// TextWidth is the number of columns left for text.
func (c *EditorComponent) TextWidth() int {
	return max(c.Width-c.GutterWidth(), 1)
}

// Rows renders every visible screen row.
func (c *EditorComponent) Rows() []string {
	rows := make([]string, c.Height)
	for i := range rows {
		rows[i] = c.Row(i)
	}
	return rows
}

// Row renders screen row i, gutter included.
func (c *EditorComponent) Row(i int) string {
	return c.gutter(c.ScrollRow+i) + c.Segment(i, 0, c.TextWidth())
}

// RowWithOverlay renders screen row i with overlay painted over the text
// area from column col.
func (c *EditorComponent) RowWithOverlay(i, col int, overlay string) string {
	w := lipgloss.Width(overlay)
	col = min(max(col, 0), max(c.TextWidth()-w, 0))
	right := max(c.TextWidth()-col-w, 0)
	return c.gutter(c.ScrollRow+i) + c.Segment(i, 0, col) + overlay + c.Segment(i, col+w, right)
}

func (c *EditorComponent) gutter(row int) string {
	w := c.GutterWidth()
	if w == 0 {
		return ""
	}
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	if row >= len(c.starts) {
		return style.Render(strings.Repeat(" ", w))
	}
	if c.Focused && row == geometry.PositionOf(c.Text, c.Caret, c.TabSize).Row {
		style = style.Foreground(lipgloss.Color("250"))
	}
	return style.Render(fmt.Sprintf("%*d ", w-1, row+1))
}

type cellKey struct {
	typ      chroma.TokenType
	selected bool
	caret    bool
	color    string
}

// Segment renders width text columns of screen row i starting at screen
// column from, padded with blanks.
func (c *EditorComponent) Segment(i, from, width int) string {
	if width <= 0 {
		return ""
	}
	row := c.ScrollRow + i
	if row < 0 || row >= len(c.starts) {
		return c.blank(width)
	}

	start := c.starts[row]
	end := len(c.Text)
	if row+1 < len(c.starts) {
		end = c.starts[row+1] - 1
	}
	line := c.Text[start:end]
	var spans []render.Span
	if row < len(c.Lines) {
		spans = c.Lines[row]
	}

	lo := c.ScrollCol + from
	hi := lo + width

	var b strings.Builder
	var run strings.Builder
	var key cellKey
	used := 0
	flush := func() {
		if run.Len() > 0 {
			b.WriteString(c.style(key).Render(run.String()))
			run.Reset()
		}
	}
	put := func(k cellKey, cell string, w int) {
		if k != key {
			flush()
			key = k
		}
		run.WriteString(cell)
		used += w
	}

	si, consumed, col := 0, 0, 0
	for j := 0; j < len(line) && col < hi; {
		r, size := utf8.DecodeRuneInString(line[j:])
		for si < len(spans) && consumed >= len(spans[si].Text) {
			consumed -= len(spans[si].Text)
			si++
		}
		typ := chroma.Text
		if si < len(spans) {
			typ = spans[si].Type
		}
		consumed += size
		offset := start + j
		j += size

		w := runewidth.RuneWidth(r)
		cell := string(r)
		if r == '\t' {
			w = c.TabSize - col%c.TabSize
			cell = strings.Repeat(" ", w)
		}
		if w == 0 {
			continue
		}
		next := col + w
		switch {
		case next <= lo:
		case col < lo || next > hi:
			// Wide rune or tab cut by an edge.
			n := min(next, hi) - max(col, lo)
			put(cellKey{typ: chroma.Text}, strings.Repeat(" ", n), n)
		default:
			put(c.key(typ, offset), cell, w)
		}
		col = next
	}

	if c.Focused && c.Caret == end && col >= lo && col < hi && used < width {
		put(cellKey{typ: chroma.Text, caret: true}, " ", 1)
	}
	flush()
	if used < width {
		b.WriteString(c.blank(width - used))
	}
	return b.String()
}

func (c *EditorComponent) key(typ chroma.TokenType, offset int) cellKey {
	k := cellKey{typ: typ}
	sel := c.Selection
	if !sel.Collapsed() && offset >= sel.Start && offset < sel.End {
		k.selected = true
	}
	if c.Focused && offset == c.Caret {
		k.caret = true
	}
	for _, span := range c.Colors {
		if offset >= span.Start && offset < span.End {
			k.color = span.Hex()
			break
		}
	}
	return k
}

func (c *EditorComponent) style(k cellKey) lipgloss.Style {
	s := lipgloss.NewStyle()
	if c.Theme != nil {
		s = TokenStyle(c.Theme, k.typ)
	}
	if k.color != "" {
		s = s.Background(lipgloss.Color(k.color)).Foreground(lipgloss.Color(contrast(k.color)))
	}
	if k.selected {
		s = s.Background(lipgloss.Color("238"))
	}
	if k.caret {
		s = s.Reverse(true)
	}
	return s
}

func (c *EditorComponent) blank(width int) string {
	s := lipgloss.NewStyle()
	if c.Theme != nil {
		if bg := c.Theme.Background(); bg != "" {
			s = s.Background(lipgloss.Color(bg))
		}
	}
	return s.Render(strings.Repeat(" ", width))
}

// TokenStyle converts the theme entry for a token type to a lipgloss style.
func TokenStyle(h *render.Highlighter, typ chroma.TokenType) lipgloss.Style {
	entry := h.Entry(typ)
	s := lipgloss.NewStyle()
	if entry.Colour.IsSet() {
		s = s.Foreground(lipgloss.Color(entry.Colour.String()))
	}
	if entry.Background.IsSet() {
		s = s.Background(lipgloss.Color(entry.Background.String()))
	}
	if entry.Bold == chroma.Yes {
		s = s.Bold(true)
	}
	if entry.Italic == chroma.Yes {
		s = s.Italic(true)
	}
	if entry.Underline == chroma.Yes {
		s = s.Underline(true)
	}
	return s
}

// contrast picks black or white text for a swatch background.
func contrast(hex string) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return "#000000"
	}
	l, _, _ := c.Lab()
	if l > 0.6 {
		return "#000000"
	}
	return "#ffffff"
}
