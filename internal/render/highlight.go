package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"codepad/internal/suggest"
)

// Highlighter tokenises buffers with chroma for the display layer.
type Highlighter struct {
	style     *chroma.Style
	formatter *html.Formatter
}

// NewHighlighter uses the named chroma style, falling back to chroma's
// default for unknown names.
func NewHighlighter(theme string, tabSize int) *Highlighter {
	return &Highlighter{
		style: styles.Get(theme),
		formatter: html.New(
			html.WithClasses(true),
			html.PreventSurroundingPre(true),
			html.TabWidth(tabSize),
		),
	}
}

func lexerFor(p suggest.Profile) chroma.Lexer {
	lexer := lexers.Get(p.Lexer)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	return chroma.Coalesce(lexer)
}

// HTML renders text as highlighted markup for the display layer. A trailing
// newline gets a trailing space so the layer keeps the empty last line the
// input layer shows.
func (h *Highlighter) HTML(text string, p suggest.Profile) (string, error) {
	it, err := lexerFor(p).Tokenise(nil, text)
	if err != nil {
		return "", fmt.Errorf("failed to tokenise %s: %w", p.Name, err)
	}
	var b strings.Builder
	if err := h.formatter.Format(&b, h.style, it); err != nil {
		return "", fmt.Errorf("failed to format highlight: %w", err)
	}
	if strings.HasSuffix(text, "\n") {
		b.WriteString(" ")
	}
	return b.String(), nil
}

// WriteCSS writes the class stylesheet matching HTML output.
func (h *Highlighter) WriteCSS(w io.Writer) error {
	return h.formatter.WriteCSS(w, h.style)
}

// Span is one token of a highlighted line.
type Span struct {
	Text string
	Type chroma.TokenType
}

// Lines splits the highlighted buffer into rows of spans, one row per line of
// text, for hosts that paint cells themselves.
func (h *Highlighter) Lines(text string, p suggest.Profile) [][]Span {
	count := strings.Count(text, "\n") + 1
	out := make([][]Span, count)

	it, err := lexerFor(p).Tokenise(nil, text)
	if err != nil {
		for i, line := range strings.Split(text, "\n") {
			out[i] = []Span{{Text: line, Type: chroma.Text}}
		}
		return out
	}
	for i, tokens := range chroma.SplitTokensIntoLines(it.Tokens()) {
		if i >= count {
			break
		}
		for _, tok := range tokens {
			v := strings.TrimSuffix(tok.Value, "\n")
			if v != "" {
				out[i] = append(out[i], Span{Text: v, Type: tok.Type})
			}
		}
	}
	return out
}

// Entry returns the style for a token type.
func (h *Highlighter) Entry(t chroma.TokenType) chroma.StyleEntry {
	return h.style.Get(t)
}

// Background returns the theme background as "#rrggbb", or "".
func (h *Highlighter) Background() string {
	bg := h.style.Get(chroma.Background).Background
	if !bg.IsSet() {
		return ""
	}
	return bg.String()
}
