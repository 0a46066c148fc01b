package abbrev

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name     string
		before   string
		expected string
	}{
		{name: "stops at angle bracket", before: "hello <div.card", expected: "div.card"},
		{name: "stops at space", before: "text ul>li*3", expected: "ul>li*3"},
		{name: "whole buffer", before: "#main", expected: "#main"},
		{name: "empty buffer", before: "", expected: ""},
		{name: "trailing space", before: "div.card ", expected: ""},
		{name: "bang alone", before: "!", expected: "!"},
		{name: "bang on new line", before: "\n!", expected: "!"},
		{name: "bang after word", before: "hello!", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Extract(tt.before))
		})
	}
}

func TestExpand(t *testing.T) {
	tests := []struct {
		name     string
		abbr     string
		expected string
	}{
		{
			name:     "id and class",
			abbr:     "div.card#main",
			expected: `<div id="main" class="card">$0</div>`,
		},
		{
			name:     "default tag from class",
			abbr:     ".box",
			expected: `<div class="box">$0</div>`,
		},
		{
			name:     "default tag from id",
			abbr:     "#app",
			expected: `<div id="app">$0</div>`,
		},
		{
			name:     "several classes",
			abbr:     "p.lead.muted",
			expected: `<p class="lead muted">$0</p>`,
		},
		{
			name:     "repeat keeps marker in first copy",
			abbr:     "ul>li*3",
			expected: "<ul>\n\t<li>$0</li>\n\t<li></li>\n\t<li></li>\n</ul>",
		},
		{
			name:     "void element",
			abbr:     "img.logo",
			expected: `<img class="logo" />`,
		},
		{
			name:     "void element ignores children",
			abbr:     "div>input#q>span",
			expected: "<div>\n\t<input id=\"q\" />\n</div>",
		},
		{
			name:     "numbering",
			abbr:     "li.item$*2",
			expected: "<li class=\"item1\">$0</li>\n<li class=\"item2\"></li>",
		},
		{
			name:     "zero padded numbering",
			abbr:     "section#s$$*1",
			expected: `<section id="s01">$0</section>`,
		},
		{
			name:     "siblings",
			abbr:     "p.x+p.y",
			expected: "<p class=\"x\">$0</p>\n<p class=\"y\"></p>",
		},
		{
			name:     "siblings wrap inner on last",
			abbr:     "h1+div>span.s",
			expected: "<h1></h1>\n<div>\n\t<span class=\"s\">$0</span>\n</div>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, ok := Expand(tt.abbr)
			require.True(t, ok)
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestExpandRejects(t *testing.T) {
	for _, abbr := range []string{
		"img",      // bare tag, no structural operator
		"div",      // bare tag
		"a+b",      // siblings alone are not structural
		"",         // nothing
		"div>",     // dangling child
		">p",       // dangling parent
		"li*abc",   // bad count
		"li*0",     // zero repeat
		"p.",       // empty class
		"div#",     // empty id
		"9x.y",     // tag cannot start with a digit
		"div.a b",  // outside the alphabet
		"<div.a",   // outside the alphabet
		"*3",       // nothing to repeat
		"ul>li*99999",
	} {
		t.Run(abbr, func(t *testing.T) {
			out, ok := Expand(abbr)
			assert.False(t, ok)
			assert.Empty(t, out)
		})
	}
}

func TestExpandBoilerplate(t *testing.T) {
	out, ok := Expand("!")
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Equal(t, 1, strings.Count(out, Marker))
}

func TestExpandAtMostOneMarker(t *testing.T) {
	for _, abbr := range []string{"ul>li*3>a", "p+p+p.x", "table>tr*2>td*2", "nav>ul>li.i$*4"} {
		out, ok := Expand(abbr)
		require.True(t, ok, abbr)
		assert.Equal(t, 1, strings.Count(out, Marker), abbr)
	}
}

func TestExpandIsDeterministic(t *testing.T) {
	text := "<body>\n  nav>ul>li.item$*3"
	first, ok := Expand(Extract(text))
	require.True(t, ok)
	for i := 0; i < 5; i++ {
		again, _ := Expand(Extract(text))
		assert.Equal(t, first, again)
	}
}
