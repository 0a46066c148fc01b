package suggest

import (
	"path"
	"strings"
	"unicode"
	"unicode/utf8"
)

type tableSource int

const (
	sourceNone tableSource = iota
	sourceMarkup
	sourceStyle
	sourceScript
)

// Profile describes how the editor treats one language. It is chosen once
// when a file is opened.
type Profile struct {
	Name         string
	Lexer        string
	Extensions   []string
	Delimiters   string
	Abbreviation bool
	ColorPreview bool
	source       tableSource
}

var (
	HTML = Profile{
		Name:         "html",
		Lexer:        "html",
		Extensions:   []string{".html", ".htm"},
		Delimiters:   `<>{}().,;:'"`,
		Abbreviation: true,
		source:       sourceMarkup,
	}
	CSS = Profile{
		Name:         "css",
		Lexer:        "css",
		Extensions:   []string{".css"},
		Delimiters:   `{}(),;:'">`,
		ColorPreview: true,
		source:       sourceStyle,
	}
	JavaScript = Profile{
		Name:       "javascript",
		Lexer:      "javascript",
		Extensions: []string{".js", ".mjs", ".cjs", ".jsx"},
		Delimiters: `<>{}().,;:'"`,
		source:     sourceScript,
	}
	PlainText = Profile{
		Name:       "text",
		Lexer:      "plaintext",
		Delimiters: `<>{}().,;:'"`,
	}
)

var profiles = []Profile{HTML, CSS, JavaScript}

// ProfileFor resolves a language tag such as "html", "css", "js".
func ProfileFor(language string) Profile {
	switch strings.ToLower(strings.TrimSpace(language)) {
	case "html", "htm":
		return HTML
	case "css":
		return CSS
	case "javascript", "js":
		return JavaScript
	}
	return PlainText
}

// ProfileForPath resolves the profile from a file extension.
func ProfileForPath(p string) Profile {
	ext := strings.ToLower(path.Ext(p))
	for _, prof := range profiles {
		for _, e := range prof.Extensions {
			if e == ext {
				return prof
			}
		}
	}
	return PlainText
}

// Markup reports whether the profile is HTML-like.
func (p Profile) Markup() bool {
	return p.source == sourceMarkup
}

func (p Profile) isDelimiter(r rune) bool {
	return unicode.IsSpace(r) || strings.ContainsRune(p.Delimiters, r)
}

// CurrentWord returns the token immediately before the cursor.
func CurrentWord(before string, p Profile) string {
	i := strings.LastIndexFunc(before, p.isDelimiter)
	if i < 0 {
		return before
	}
	_, size := utf8.DecodeRuneInString(before[i:])
	return before[i+size:]
}
