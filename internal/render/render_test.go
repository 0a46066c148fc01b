package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/alecthomas/chroma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codepad/internal/config"
	"codepad/internal/suggest"
)

func TestLayerCSSSharesMetrics(t *testing.T) {
	style := NewLayerStyle(config.Default().Editor)
	css := style.CSS(".cp-editor")

	assert.Contains(t, css, ".cp-editor .cp-input, .cp-editor .cp-highlight {")
	assert.Equal(t, 1, strings.Count(css, "font-size:"))
	assert.Equal(t, 1, strings.Count(css, "line-height:"))
	assert.Contains(t, css, "font-size: 14px;")
	assert.Contains(t, css, "line-height: 21px;")
	assert.Contains(t, css, "tab-size: 2;")
	assert.Contains(t, css, "white-space: pre;")
	assert.Contains(t, css, "color: transparent;")
	assert.Contains(t, css, "pointer-events: none;")

	style.Wrap = true
	assert.Contains(t, style.CSS(""), "white-space: pre-wrap;")
	assert.True(t, strings.HasPrefix(style.CSS(""), ".cp-input, .cp-highlight {"))
}

func TestLayerFrameAndLayout(t *testing.T) {
	style := NewLayerStyle(config.Default().Editor)
	frame, err := style.Frame()
	require.NoError(t, err)
	assert.Equal(t, 21.0, frame.LineHeight)
	assert.InDelta(t, 8.4, frame.CharWidth, 0.2)

	layout := style.Layout(frame, 120, true)
	assert.True(t, layout.LineNumbers)
	assert.InDelta(t, 3*frame.CharWidth+16, layout.GutterWidth, 0.001)

	layout = style.Layout(frame, 120, false)
	assert.Zero(t, layout.GutterWidth)
}

func TestHighlightHTML(t *testing.T) {
	h := NewHighlighter("monokai", 2)

	out, err := h.HTML("<div>hi</div>\n", suggest.HTML)
	require.NoError(t, err)
	assert.Contains(t, out, "&lt;")
	assert.Contains(t, out, `class="nt"`)
	assert.NotContains(t, out, "<pre")
	assert.True(t, strings.HasSuffix(out, " "))

	out, err = h.HTML("plain", suggest.PlainText)
	require.NoError(t, err)
	assert.Contains(t, out, "plain")
	assert.False(t, strings.HasSuffix(out, " "))

	var css bytes.Buffer
	require.NoError(t, h.WriteCSS(&css))
	assert.Contains(t, css.String(), ".nt")
}

func TestHighlightLines(t *testing.T) {
	h := NewHighlighter("monokai", 2)
	text := "const a = 1;\n\n  let b = 'x'"

	lines := h.Lines(text, suggest.JavaScript)
	want := strings.Split(text, "\n")
	require.Len(t, lines, len(want))
	for i, spans := range lines {
		var b strings.Builder
		for _, s := range spans {
			b.WriteString(s.Text)
		}
		assert.Equal(t, want[i], b.String(), "line %d", i)
	}
	assert.Equal(t, "const", lines[0][0].Text)
	assert.True(t, lines[0][0].Type.InCategory(chroma.Keyword))

	assert.Len(t, h.Lines("a\n", suggest.JavaScript), 2)
	assert.True(t, h.Entry(chroma.Keyword).Colour.IsSet())
	assert.NotEmpty(t, h.Background())
}

func TestColors(t *testing.T) {
	text := "a { color: #fff; background: rgb(255, 0, 0); border-color: #12345g; fill: rgb(300,0,0); stroke: rgba(0, 128, 0, 0.5) }"
	spans := Colors(text)
	require.Len(t, spans, 3)
	assert.Equal(t, "#ffffff", spans[0].Hex())
	assert.Equal(t, "#fff", text[spans[0].Start:spans[0].End])
	assert.Equal(t, "#ff0000", spans[1].Hex())
	assert.Equal(t, "#008000", spans[2].Hex())

	span, ok := ColorAt(text, spans[1].Start+2)
	require.True(t, ok)
	assert.Equal(t, "#ff0000", span.Hex())

	_, ok = ColorAt(text, 0)
	assert.False(t, ok)
}

func TestWritePage(t *testing.T) {
	style := NewLayerStyle(config.Default().Editor)
	h := NewHighlighter("monokai", style.TabSize)

	data, err := NewPage("site.css", "body { color: #abc; }\n", suggest.CSS, style, h)
	require.NoError(t, err)
	require.Len(t, data.Colors, 1)

	var out bytes.Buffer
	require.NoError(t, WritePage(&out, data))
	page := out.String()

	assert.Contains(t, page, `<title>site.css</title>`)
	assert.Contains(t, page, `class="cp-input"`)
	assert.Contains(t, page, `class="cp-highlight chroma"`)
	assert.Contains(t, page, "readonly")
	assert.Contains(t, page, "layer.scrollTop = input.scrollTop")
	assert.Contains(t, page, ".cp-editor .cp-input, .cp-editor .cp-highlight")
	assert.Contains(t, page, `data-language="css"`)
	assert.Contains(t, page, "#aabbcc")
}
