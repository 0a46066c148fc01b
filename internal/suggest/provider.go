package suggest

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"codepad/internal/abbrev"
)

// MaxSuggestions caps the popup length.
const MaxSuggestions = 50

// Request is everything the provider looks at for one keystroke.
type Request struct {
	Text        string
	Offset      int
	Profile     Profile
	Tables      Tables
	Files       []string
	HTMLContext string
}

// Suggest returns the ordered suggestions for the cursor position in req.
// Path completion inside a quoted src/href value wins outright; otherwise
// the current word is matched against the table the cursor context selects.
func Suggest(req Request) []Suggestion {
	offset := req.Offset
	if offset < 0 {
		offset = 0
	}
	if offset > len(req.Text) {
		offset = len(req.Text)
	}
	for offset > 0 && offset < len(req.Text) && !utf8.RuneStart(req.Text[offset]) {
		offset--
	}
	before := req.Text[:offset]

	if paths := pathCompletions(before, req.Files); len(paths) > 0 {
		return capItems(paths)
	}

	word := CurrentWord(before, req.Profile)
	if word == "" {
		return nil
	}

	var items []Suggestion
	inTag := false
	if req.Profile.Markup() {
		inTag = insideTag(before)
		// "<div.card" is an abbreviation too; accepting it drops the '<'.
		if a := abbrev.Extract(before); a != "" {
			if expanded, ok := abbrev.Expand(a); ok {
				items = append(items, Suggestion{Label: a, Value: expanded, Kind: KindAbbreviation, Detail: "abbreviation"})
			}
		}
	}

	items = append(items, Rank(word, Filter(word, resolveTable(before, inTag, req)))...)

	if req.Profile.Markup() {
		items = append(items, importSnippets(word, req.Files)...)
	}
	return capItems(Dedupe(items))
}

func resolveTable(before string, inTag bool, req Request) []Suggestion {
	switch req.Profile.source {
	case sourceMarkup:
		if inTag && tagNameComplete(before) {
			return req.Tables.HTMLAttributes
		}
		return req.Tables.HTMLTags
	case sourceStyle:
		selectors := Selectors(req.HTMLContext)
		if len(selectors) == 0 {
			return req.Tables.CSSProperties
		}
		return append(selectors, req.Tables.CSSProperties...)
	case sourceScript:
		return req.Tables.JSKeywords
	}
	return nil
}

// insideTag reports whether the nearest '<' before the cursor is unclosed.
func insideTag(before string) bool {
	return strings.LastIndexByte(before, '<') > strings.LastIndexByte(before, '>')
}

// tagNameComplete reports whether whitespace follows the tag name of the
// open tag, i.e. the cursor is in attribute position.
func tagNameComplete(before string) bool {
	open := before[strings.LastIndexByte(before, '<')+1:]
	return strings.IndexFunc(open, unicode.IsSpace) >= 0
}

func capItems(items []Suggestion) []Suggestion {
	if len(items) > MaxSuggestions {
		return items[:MaxSuggestions]
	}
	return items
}
