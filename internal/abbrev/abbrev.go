// Package abbrev expands compact markup abbreviations such as
// "ul>li.item$*3" into HTML with a cursor marker.
package abbrev

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"codepad/internal/logger"
)

// Marker is the cursor placeholder left in expanded markup.
const Marker = "$0"

const maxRepeat = 1000

var (
	allowedPattern = regexp.MustCompile(`^[a-zA-Z0-9#.>*+\-$]+$`)
	tagPattern     = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9-]*$`)
	namePattern    = regexp.MustCompile(`^[a-zA-Z0-9_$-]+$`)
	numberPattern  = regexp.MustCompile(`\$+`)

	errEmptyNode = errors.New("empty node")
)

var voidElements = map[string]bool{
	"img":   true,
	"input": true,
	"br":    true,
	"hr":    true,
	"meta":  true,
	"link":  true,
}

const boilerplate = `<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>Document</title>
</head>
<body>
	$0
</body>
</html>`

func isAbbrevChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	return strings.IndexByte("#.>*+-$", c) >= 0
}

// Extract returns the abbreviation immediately before the cursor: the longest
// suffix of textBeforeCursor made of abbreviation characters. A lone "!" is
// returned as is so the document boilerplate can be reached.
func Extract(textBeforeCursor string) string {
	i := len(textBeforeCursor)
	for i > 0 && isAbbrevChar(textBeforeCursor[i-1]) {
		i--
	}
	if i == len(textBeforeCursor) && i > 0 && textBeforeCursor[i-1] == '!' {
		if i == 1 || !isAbbrevChar(textBeforeCursor[i-2]) {
			return "!"
		}
	}
	return textBeforeCursor[i:]
}

// Expand turns abbr into markup. It reports false for bare words (no "#",
// ".", ">" or "*") and for anything that does not parse; such input falls
// through to other suggestion sources.
func Expand(abbr string) (string, bool) {
	if abbr == "!" {
		return boilerplate, true
	}
	if !allowedPattern.MatchString(abbr) || !strings.ContainsAny(abbr, "#.>*") {
		return "", false
	}
	out, err := expand(abbr)
	if err != nil {
		logger.Debug("abbreviation rejected", "abbr", abbr, "error", err)
		return "", false
	}
	return out, true
}

func expand(abbr string) (string, error) {
	levels := strings.Split(abbr, ">")
	inner := Marker
	for i := len(levels) - 1; i >= 0; i-- {
		siblings, err := parseLevel(levels[i])
		if err != nil {
			return "", fmt.Errorf("level %d: %w", i, err)
		}
		innermost := i == len(levels)-1
		rendered := make([]string, 0, len(siblings))
		for j, n := range siblings {
			content := ""
			if innermost || j == len(siblings)-1 {
				content = inner
			}
			rendered = append(rendered, n.render(content))
		}
		inner = keepFirstMarker(strings.Join(rendered, "\n"))
	}
	return inner, nil
}

type node struct {
	tag     string
	id      string
	classes []string
	count   int
}

func parseLevel(level string) ([]node, error) {
	parts := strings.Split(level, "+")
	nodes := make([]node, 0, len(parts))
	for _, part := range parts {
		n, err := parseNode(part)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func parseNode(s string) (node, error) {
	n := node{count: 1}
	if s == "" {
		return n, errEmptyNode
	}

	if star := strings.IndexByte(s, '*'); star >= 0 {
		count, err := strconv.Atoi(s[star+1:])
		if err != nil {
			return n, fmt.Errorf("bad repeat count in %q", s)
		}
		if count < 1 || count > maxRepeat {
			return n, fmt.Errorf("repeat count %d out of range", count)
		}
		n.count = count
		s = s[:star]
	}

	end := strings.IndexAny(s, "#.")
	if end < 0 {
		end = len(s)
	}
	n.tag = s[:end]
	if n.tag == "" {
		n.tag = "div"
	} else if !tagPattern.MatchString(n.tag) {
		return n, fmt.Errorf("bad tag name %q", n.tag)
	}

	rest := s[end:]
	for rest != "" {
		sigil := rest[0]
		rest = rest[1:]
		next := strings.IndexAny(rest, "#.")
		if next < 0 {
			next = len(rest)
		}
		name := rest[:next]
		rest = rest[next:]
		if !namePattern.MatchString(name) {
			return n, fmt.Errorf("empty or invalid name after %q", sigil)
		}
		if sigil == '#' {
			n.id = name
		} else {
			n.classes = append(n.classes, name)
		}
	}
	if n.tag == "div" && s == "" {
		return n, errEmptyNode
	}
	return n, nil
}

// render repeats the node count times; only the first copy keeps the marker.
func (n node) render(content string) string {
	copies := make([]string, 0, n.count)
	for k := 1; k <= n.count; k++ {
		c := content
		if k > 1 {
			c = strings.ReplaceAll(c, Marker, "")
		}
		copies = append(copies, n.element(k, c))
	}
	return strings.Join(copies, "\n")
}

func (n node) element(index int, content string) string {
	var attrs strings.Builder
	if n.id != "" {
		fmt.Fprintf(&attrs, ` id="%s"`, number(n.id, index))
	}
	if len(n.classes) > 0 {
		classes := make([]string, len(n.classes))
		for i, c := range n.classes {
			classes[i] = number(c, index)
		}
		fmt.Fprintf(&attrs, ` class="%s"`, strings.Join(classes, " "))
	}

	open := "<" + n.tag + attrs.String()
	if voidElements[n.tag] {
		return open + " />"
	}
	if strings.ContainsAny(content, "\n<") {
		return open + ">\n" + indent(content) + "\n</" + n.tag + ">"
	}
	return open + ">" + content + "</" + n.tag + ">"
}

// number replaces each run of "$" with index, zero padded to the run length.
func number(name string, index int) string {
	return numberPattern.ReplaceAllStringFunc(name, func(run string) string {
		return fmt.Sprintf("%0*d", len(run), index)
	})
}

func indent(content string) string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = "\t" + line
	}
	return strings.Join(lines, "\n")
}

func keepFirstMarker(s string) string {
	first := strings.Index(s, Marker)
	if first < 0 {
		return s
	}
	end := first + len(Marker)
	return s[:end] + strings.ReplaceAll(s[end:], Marker, "")
}
