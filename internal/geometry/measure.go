package geometry

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
)

// DefaultLineHeight is the line height as a multiple of the font size.
const DefaultLineHeight = 1.5

var parseMono = sync.OnceValues(func() (*opentype.Font, error) {
	return opentype.Parse(gomono.TTF)
})

// Measure computes the frame for a monospace face at fontSize CSS pixels.
// Glyph advances come from Go Mono; any monospace face with the same
// advance-to-em ratio lines up identically.
func Measure(fontSize, lineHeight float64) (Frame, error) {
	if fontSize <= 0 {
		return Frame{}, errors.New("font size must be positive")
	}
	if lineHeight <= 0 {
		lineHeight = DefaultLineHeight
	}

	f, err := parseMono()
	if err != nil {
		return Frame{}, fmt.Errorf("failed to parse monospace font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    fontSize,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return Frame{}, fmt.Errorf("failed to create font face: %w", err)
	}
	defer face.Close()

	advance, ok := face.GlyphAdvance('M')
	if !ok {
		return Frame{}, errors.New("monospace font has no advance for 'M'")
	}
	return Frame{
		CharWidth:  float64(advance) / 64,
		LineHeight: fontSize * lineHeight,
	}, nil
}
