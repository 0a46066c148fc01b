package render

import (
	"regexp"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
)

// ColorSpan is a color literal found in a stylesheet, for preview swatches.
type ColorSpan struct {
	Start int
	End   int
	Color colorful.Color
}

// Hex is the normalized "#rrggbb" form.
func (c ColorSpan) Hex() string { return c.Color.Hex() }

var colorPattern = regexp.MustCompile(`#(?:[0-9a-fA-F]{6}|[0-9a-fA-F]{3})\b|rgba?\(\s*(\d{1,3})\s*,\s*(\d{1,3})\s*,\s*(\d{1,3})\s*(?:,\s*[0-9.]+\s*)?\)`)

// Colors finds hex (#rgb, #rrggbb) and rgb()/rgba() literals in text.
func Colors(text string) []ColorSpan {
	var spans []ColorSpan
	for _, m := range colorPattern.FindAllStringSubmatchIndex(text, -1) {
		lit := text[m[0]:m[1]]
		var (
			c   colorful.Color
			err error
		)
		if lit[0] == '#' {
			c, err = colorful.Hex(lit)
		} else {
			c, err = rgb(text[m[2]:m[3]], text[m[4]:m[5]], text[m[6]:m[7]])
		}
		if err != nil {
			continue
		}
		spans = append(spans, ColorSpan{Start: m[0], End: m[1], Color: c})
	}
	return spans
}

// ColorAt returns the color literal covering offset.
func ColorAt(text string, offset int) (ColorSpan, bool) {
	for _, span := range Colors(text) {
		if offset >= span.Start && offset <= span.End {
			return span, true
		}
	}
	return ColorSpan{}, false
}

func rgb(r, g, b string) (colorful.Color, error) {
	var ch [3]float64
	for i, s := range []string{r, g, b} {
		v, err := strconv.Atoi(s)
		if err != nil {
			return colorful.Color{}, err
		}
		if v > 255 {
			return colorful.Color{}, strconv.ErrRange
		}
		ch[i] = float64(v) / 255
	}
	return colorful.Color{R: ch[0], G: ch[1], B: ch[2]}, nil
}
