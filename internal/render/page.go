package render

import (
	"fmt"
	"html/template"
	"io"
	"strings"

	"codepad/internal/suggest"
)

// PageData feeds the standalone editor page.
type PageData struct {
	Title       string
	Language    string
	Text        string
	Highlighted template.HTML
	LayerCSS    template.CSS
	ThemeCSS    template.CSS
	Background  string
	Colors      []ColorSpan
}

// NewPage renders text into a page with both layers filled.
func NewPage(title, text string, p suggest.Profile, style LayerStyle, h *Highlighter) (PageData, error) {
	highlighted, err := h.HTML(text, p)
	if err != nil {
		return PageData{}, err
	}
	var theme strings.Builder
	if err := h.WriteCSS(&theme); err != nil {
		return PageData{}, fmt.Errorf("failed to write theme css: %w", err)
	}
	data := PageData{
		Title:       title,
		Language:    p.Name,
		Text:        text,
		Highlighted: template.HTML(highlighted),
		LayerCSS:    template.CSS(style.CSS(".cp-editor")),
		ThemeCSS:    template.CSS(theme.String()),
		Background:  h.Background(),
	}
	if p.ColorPreview {
		data.Colors = Colors(text)
	}
	return data, nil
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>{{.Title}}</title>
<style>
body { margin: 0; }
.cp-editor { position: relative; height: 100vh;{{if .Background}} background: {{.Background}};{{end}} }
{{.LayerCSS}}
{{.ThemeCSS}}
.cp-swatches { position: fixed; right: 8px; bottom: 8px; display: flex; gap: 4px; }
.cp-swatch { width: 14px; height: 14px; border-radius: 2px; }
</style>
</head>
<body>
<div class="cp-editor" data-language="{{.Language}}">
<pre class="cp-highlight chroma" aria-hidden="true">{{.Highlighted}}</pre>
<textarea class="cp-input" spellcheck="false" autocomplete="off" autocapitalize="off" readonly>{{.Text}}</textarea>
</div>
{{- if .Colors}}
<div class="cp-swatches">
{{- range .Colors}}
<span class="cp-swatch" title="{{.Hex}}" style="background: {{.Hex}}"></span>
{{- end}}
</div>
{{- end}}
<script>
(function () {
  var input = document.querySelector('.cp-input');
  var layer = document.querySelector('.cp-highlight');
  input.addEventListener('scroll', function () {
    layer.scrollTop = input.scrollTop;
    layer.scrollLeft = input.scrollLeft;
  });
})();
</script>
</body>
</html>
`))

// WritePage writes the standalone page. The input layer is read-only there:
// without a live highlighter behind it, edits would make the layers diverge.
func WritePage(w io.Writer, data PageData) error {
	if err := pageTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	return nil
}
