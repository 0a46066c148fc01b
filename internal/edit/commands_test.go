package edit

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"codepad/internal/suggest"
)

var (
	htmlCtx = Context{Profile: suggest.HTML, TabSize: 2}
	jsCtx   = Context{Profile: suggest.JavaScript, TabSize: 2}
)

func at(text string, offset int) State {
	return State{Text: text, Sel: Caret(offset)}
}

func TestTab(t *testing.T) {
	assert.Equal(t, at("a  b", 3), Tab(at("ab", 1), jsCtx))
	assert.Equal(t, at("    x", 4), Tab(at("x", 0), Context{TabSize: 4}))

	got := Tab(State{Text: "abc", Sel: Selection{Start: 0, End: 2}}, jsCtx)
	assert.Equal(t, at("  c", 2), got)
}

func TestEnter(t *testing.T) {
	tests := []struct {
		name     string
		in       State
		ctx      Context
		expected State
	}{
		{
			name:     "splits empty braces",
			in:       at("  {}", 3),
			ctx:      jsCtx,
			expected: at("  {\n    \n  }", 8),
		},
		{
			name:     "splits empty parens",
			in:       at("f()", 2),
			ctx:      jsCtx,
			expected: at("f(\n  \n)", 5),
		},
		{
			name:     "indents after open brace",
			in:       at("if (x) {", 8),
			ctx:      jsCtx,
			expected: at("if (x) {\n  ", 11),
		},
		{
			name:     "indents after colon",
			in:       at("  a:", 4),
			ctx:      jsCtx,
			expected: at("  a:\n    ", 9),
		},
		{
			name:     "indents after tag in markup",
			in:       at("  <div>", 7),
			ctx:      htmlCtx,
			expected: at("  <div>\n    ", 12),
		},
		{
			name:     "no tag rule outside markup",
			in:       at("  <div>", 7),
			ctx:      jsCtx,
			expected: at("  <div>\n  ", 10),
		},
		{
			name:     "keeps indentation",
			in:       at("    foo", 7),
			ctx:      jsCtx,
			expected: at("    foo\n    ", 12),
		},
		{
			name:     "quotes are not split",
			in:       at(`""`, 1),
			ctx:      jsCtx,
			expected: at("\"\n\"", 2),
		},
		{
			name:     "replaces selection",
			in:       State{Text: "abXYcd", Sel: Selection{Start: 2, End: 4}},
			ctx:      jsCtx,
			expected: at("ab\ncd", 3),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Enter(tt.in, tt.ctx))
		})
	}
}

func TestInsertToken(t *testing.T) {
	tests := []struct {
		name     string
		in       State
		token    string
		expected State
	}{
		{
			name:     "wraps selection",
			in:       State{Text: "say hello", Sel: Selection{Start: 4, End: 9}},
			token:    "(",
			expected: at("say (hello)", 11),
		},
		{
			name:     "wraps in quotes",
			in:       State{Text: "x", Sel: Selection{Start: 0, End: 1}},
			token:    `"`,
			expected: at(`"x"`, 3),
		},
		{
			name:     "inserts pair around caret",
			in:       at("a", 1),
			token:    "{",
			expected: at("a{}", 2),
		},
		{
			name:     "backtick pair",
			in:       at("", 0),
			token:    "`",
			expected: at("``", 1),
		},
		{
			name:     "closer is literal",
			in:       at("(a", 2),
			token:    ")",
			expected: at("(a)", 3),
		},
		{
			name:     "non pairable replaces selection",
			in:       State{Text: "abc", Sel: Selection{Start: 1, End: 2}},
			token:    "<",
			expected: at("a<c", 2),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, InsertToken(tt.in, tt.token))
		})
	}
}

func TestBackspaceAndDelete(t *testing.T) {
	assert.Equal(t, at("hllo", 1), Backspace(at("héllo", 3)))
	assert.Equal(t, at("abc", 0), Backspace(at("abc", 0)))
	assert.Equal(t, at("ac", 1), Backspace(State{Text: "abc", Sel: Selection{Start: 1, End: 2}}))

	assert.Equal(t, at("hllo", 1), DeleteForward(at("héllo", 1)))
	assert.Equal(t, at("abc", 3), DeleteForward(at("abc", 3)))
	assert.Equal(t, at("ac", 1), DeleteForward(State{Text: "abc", Sel: Selection{Start: 1, End: 2}}))
}

func TestNormalize(t *testing.T) {
	s := State{Text: "héllo", Sel: Selection{Start: 99, End: 2}}.Normalize()
	assert.Equal(t, Selection{Start: 1, End: 5}, s.Sel)

	s = State{Text: "abc", Sel: Selection{Start: -4, End: -1}}.Normalize()
	assert.Equal(t, Caret(0), s.Sel)
}
