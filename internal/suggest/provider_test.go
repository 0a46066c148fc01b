package suggest

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggest(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		profile  Profile
		files    []string
		html     string
		expected []string
	}{
		{
			name:     "tag name inside open tag",
			text:     "<di",
			profile:  HTML,
			expected: []string{"div", "audio"},
		},
		{
			name:     "attribute after tag name",
			text:     "<a hr",
			profile:  HTML,
			expected: []string{"href"},
		},
		{
			name:     "bare word outside tag uses tag table",
			text:     "<p></p>\ndi",
			profile:  HTML,
			expected: []string{"div", "audio"},
		},
		{
			name:     "abbreviation first",
			text:     "ul>li*3",
			profile:  HTML,
			expected: []string{"ul>li*3"},
		},
		{
			name:     "abbreviation after open angle bracket",
			text:     "hello <div.card",
			profile:  HTML,
			expected: []string{"div.card"},
		},
		{
			name:     "import snippets inside open tag",
			text:     "<app",
			profile:  HTML,
			files:    []string{"js/app.js"},
			expected: []string{"script: js/app.js"},
		},
		{
			name:     "import snippets appended",
			text:     "app",
			profile:  HTML,
			files:    []string{"js/app.js", "css/app.css", "img/app.png"},
			expected: []string{"script: js/app.js", "link: css/app.css"},
		},
		{
			name:     "src path completion wins",
			text:     `<img src="im`,
			profile:  HTML,
			files:    []string{"img/logo.png", "img/a.css", "js/app.js"},
			expected: []string{"img/logo.png"},
		},
		{
			name:     "href filters by extension",
			text:     `<link href='`,
			profile:  HTML,
			files:    []string{"css/site.css", "index.html", "js/app.js"},
			expected: []string{"css/site.css", "index.html"},
		},
		{
			name:     "css properties with selectors",
			text:     "ma",
			profile:  CSS,
			html:     `<div id="main" class="card wide"><p>`,
			expected: []string{"margin", "max-width", "#main", "animation"},
		},
		{
			name:     "css word keeps hash",
			text:     "body {}\n#ma",
			profile:  CSS,
			html:     `<div id="main">`,
			expected: []string{"#main"},
		},
		{
			name:     "javascript keywords",
			text:     "const x = con",
			profile:  JavaScript,
			expected: []string{"console", "const", "continue"},
		},
		{
			name:     "empty word",
			text:     "div ",
			profile:  HTML,
			expected: nil,
		},
		{
			name:     "plain text has no tables",
			text:     "hello",
			profile:  PlainText,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Suggest(Request{
				Text:        tt.text,
				Offset:      len(tt.text),
				Profile:     tt.profile,
				Tables:      DefaultTables(),
				Files:       tt.files,
				HTMLContext: tt.html,
			})
			if tt.expected == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.expected, labels(got))
		})
	}
}

func TestSuggestKinds(t *testing.T) {
	got := Suggest(Request{Text: "ul>li*3", Offset: 7, Profile: HTML, Tables: DefaultTables()})
	require.Len(t, got, 1)
	assert.Equal(t, KindAbbreviation, got[0].Kind)
	assert.Equal(t, "<ul>\n\t<li>$0</li>\n\t<li></li>\n\t<li></li>\n</ul>", got[0].Value)

	got = Suggest(Request{Text: `<img src="`, Offset: 10, Profile: HTML, Files: []string{"a.png"}})
	require.Len(t, got, 1)
	assert.Equal(t, KindFilePath, got[0].Kind)

	got = Suggest(Request{Text: ".ma", Offset: 3, Profile: CSS, HTMLContext: `<b class="map">`})
	require.NotEmpty(t, got)
	assert.Equal(t, ".map", got[0].Label)
	assert.Equal(t, ".map {\n\t$0\n}", got[0].Value)
	assert.Equal(t, KindSelector, got[0].Kind)
}

func TestSuggestMidRuneOffset(t *testing.T) {
	text := "<p>é con"
	// 4 is inside the two-byte é; the word before the caret is empty.
	assert.Empty(t, Suggest(Request{Text: text, Offset: 4, Profile: JavaScript, Tables: DefaultTables()}))

	text = "conö"
	got := Suggest(Request{Text: text, Offset: 4, Profile: JavaScript, Tables: DefaultTables()})
	assert.Equal(t, labels(Suggest(Request{Text: "con", Offset: 3, Profile: JavaScript, Tables: DefaultTables()})), labels(got))
}

func TestSuggestAbbreviationAfterAngleBracket(t *testing.T) {
	for _, text := range []string{"hello <div.card", "<ul>li*2", "<p>\n<nav>a"} {
		got := Suggest(Request{Text: text, Offset: len(text), Profile: HTML, Tables: DefaultTables()})
		require.NotEmpty(t, got, text)
		assert.Equal(t, KindAbbreviation, got[0].Kind, text)
	}

	got := Suggest(Request{Text: "hello <div.card", Offset: 15, Profile: HTML, Tables: DefaultTables()})
	require.NotEmpty(t, got)
	assert.Equal(t, `<div class="card">$0</div>`, got[0].Value)
}

func TestSuggestUsesOffset(t *testing.T) {
	text := "<di</div>"
	got := Suggest(Request{Text: text, Offset: 3, Profile: HTML, Tables: DefaultTables()})
	assert.Equal(t, []string{"div", "audio"}, labels(got))
}

func TestSuggestCapsResults(t *testing.T) {
	var tags []Suggestion
	for i := 0; i < 60; i++ {
		tags = append(tags, tag(fmt.Sprintf("t%02d", i)))
	}
	got := Suggest(Request{Text: "t", Offset: 1, Profile: HTML, Tables: Tables{HTMLTags: tags}})
	assert.Len(t, got, MaxSuggestions)
	assert.Equal(t, "t00", got[0].Label)
}

func TestCurrentWord(t *testing.T) {
	tests := []struct {
		name     string
		before   string
		profile  Profile
		expected string
	}{
		{name: "html splits on dot", before: "a.b", profile: HTML, expected: "b"},
		{name: "css keeps dot", before: "a .card", profile: CSS, expected: ".card"},
		{name: "after angle bracket", before: "<sp", profile: HTML, expected: "sp"},
		{name: "multibyte", before: "héllo wörld", profile: HTML, expected: "wörld"},
		{name: "delimiter at end", before: "foo(", profile: JavaScript, expected: ""},
		{name: "whole buffer", before: "word", profile: JavaScript, expected: "word"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CurrentWord(tt.before, tt.profile))
		})
	}
}

func TestPathPartial(t *testing.T) {
	attribute, partial, ok := PathPartial(`<script SRC = "js/ap`)
	require.True(t, ok)
	assert.Equal(t, "src", attribute)
	assert.Equal(t, "js/ap", partial)

	_, _, ok = PathPartial(`<a href="x.html">`)
	assert.False(t, ok)
}

func TestSelectorsDeduplicate(t *testing.T) {
	got := Selectors(`<div class="a b"><div class="b" id="x"></div></div>`)
	assert.Equal(t, []string{"#x", ".a", ".b", "div"}, labels(got))
}

func TestProfileForPath(t *testing.T) {
	assert.Equal(t, "html", ProfileForPath("site/index.HTML").Name)
	assert.Equal(t, "css", ProfileForPath("a/b.css").Name)
	assert.Equal(t, "javascript", ProfileForPath("main.mjs").Name)
	assert.Equal(t, "text", ProfileForPath("README").Name)
}
