package edit

import (
	"strings"
	"unicode/utf8"
)

var bracketPairs = map[string]bool{"{}": true, "()": true, "[]": true}

var closers = map[string]string{
	`"`: `"`,
	`'`: `'`,
	"`": "`",
	"(": ")",
	"{": "}",
	"[": "]",
}

// Tab replaces the selection with one indent unit.
func Tab(s State, ctx Context) State {
	s = s.Normalize()
	unit := ctx.Unit()
	return s.replace(s.Sel.Start, s.Sel.End, unit, len(unit))
}

// Enter breaks the line, carrying the current line's indentation. Between an
// empty bracket pair the pair is split over three lines with the caret on
// the indented middle line. After an opening bracket or colon, or after a
// tag in markup, the new line gets one extra level.
func Enter(s State, ctx Context) State {
	s = s.Normalize()
	before := s.Before()
	line := before[strings.LastIndexByte(before, '\n')+1:]
	indent := leadingSpace(line)
	unit := ctx.Unit()

	prev, next := lastRune(before), firstRune(s.After())
	switch {
	case bracketPairs[prev+next]:
		insert := "\n" + indent + unit + "\n" + indent
		return s.replace(s.Sel.Start, s.Sel.End, insert, 1+len(indent)+len(unit))
	case prev != "" && strings.Contains("{([:", prev),
		ctx.Profile.Markup() && strings.HasSuffix(strings.TrimSpace(line), ">"):
		insert := "\n" + indent + unit
		return s.replace(s.Sel.Start, s.Sel.End, insert, len(insert))
	}
	insert := "\n" + indent
	return s.replace(s.Sel.Start, s.Sel.End, insert, len(insert))
}

// InsertToken inserts a toolbar token. Pairable openers wrap a non-empty
// selection, or insert the pair with the caret between; everything else is
// inserted literally.
func InsertToken(s State, token string) State {
	s = s.Normalize()
	closer, pairable := closers[token]
	switch {
	case pairable && !s.Sel.Collapsed():
		wrapped := token + s.Selected() + closer
		return s.replace(s.Sel.Start, s.Sel.End, wrapped, len(wrapped))
	case pairable:
		return s.replace(s.Sel.Start, s.Sel.End, token+closer, len(token))
	}
	return InsertText(s, token)
}

// InsertText replaces the selection with text, leaving the caret after it.
func InsertText(s State, text string) State {
	s = s.Normalize()
	return s.replace(s.Sel.Start, s.Sel.End, text, len(text))
}

// Backspace deletes the selection, or the rune before the caret.
func Backspace(s State) State {
	s = s.Normalize()
	if !s.Sel.Collapsed() {
		return s.replace(s.Sel.Start, s.Sel.End, "", 0)
	}
	if s.Sel.Start == 0 {
		return s
	}
	_, size := utf8.DecodeLastRuneInString(s.Before())
	return s.replace(s.Sel.Start-size, s.Sel.End, "", 0)
}

// DeleteForward deletes the selection, or the rune after the caret.
func DeleteForward(s State) State {
	s = s.Normalize()
	if !s.Sel.Collapsed() {
		return s.replace(s.Sel.Start, s.Sel.End, "", 0)
	}
	if s.Sel.End == len(s.Text) {
		return s
	}
	_, size := utf8.DecodeRuneInString(s.After())
	return s.replace(s.Sel.Start, s.Sel.End+size, "", 0)
}

func leadingSpace(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}

func lastRune(s string) string {
	if s == "" {
		return ""
	}
	_, size := utf8.DecodeLastRuneInString(s)
	return s[len(s)-size:]
}

func firstRune(s string) string {
	if s == "" {
		return ""
	}
	_, size := utf8.DecodeRuneInString(s)
	return s[:size]
}
