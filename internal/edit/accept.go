package edit

import (
	"strings"

	"codepad/internal/abbrev"
	"codepad/internal/suggest"
)

// Accept splices sug into the buffer at the caret. The characters already
// typed for it are replaced, how many depending on the kind. A '<' typed
// before markup is dropped along with any blanks after it. Multi-line values
// take the current line's indentation, and the caret lands on the value's
// cursor marker, or after the value when it has none.
func Accept(s State, sug suggest.Suggestion, ctx Context) State {
	s = s.Normalize()
	before := s.Before()

	start := s.Sel.Start - replaceLength(before, sug, ctx)
	if strings.HasPrefix(sug.Value, "<") {
		trimmed := strings.TrimRight(before[:start], " \t")
		if strings.HasSuffix(trimmed, "<") {
			start = len(trimmed) - 1
		}
	}

	value := reindent(sug.Value, leadingSpace(lineOf(before, start)), ctx.Unit())
	caret := strings.Index(value, abbrev.Marker)
	value = strings.ReplaceAll(value, abbrev.Marker, "")
	if caret < 0 {
		caret = len(value)
	}
	return s.replace(start, s.Sel.End, value, caret)
}

func replaceLength(before string, sug suggest.Suggestion, ctx Context) int {
	switch sug.Kind {
	case suggest.KindFilePath:
		if _, partial, ok := suggest.PathPartial(before); ok {
			return len(partial)
		}
		return 0
	case suggest.KindAbbreviation:
		return len(abbrev.Extract(before))
	case suggest.KindCompletion:
		return 0
	}
	return len(suggest.CurrentWord(before, ctx.Profile))
}

// lineOf returns the line of text that contains offset, up to offset.
func lineOf(text string, offset int) string {
	return text[strings.LastIndexByte(text[:offset], '\n')+1 : offset]
}

// reindent expands leading tabs to unit and prefixes every line after the
// first with indent.
func reindent(value, indent, unit string) string {
	if !strings.Contains(value, "\n") && !strings.HasPrefix(value, "\t") {
		return value
	}
	lines := strings.Split(value, "\n")
	for i, line := range lines {
		rest := strings.TrimLeft(line, "\t")
		line = strings.Repeat(unit, len(line)-len(rest)) + rest
		if i > 0 {
			line = indent + line
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}
