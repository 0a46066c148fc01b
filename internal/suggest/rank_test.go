package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func labels(items []Suggestion) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Label)
	}
	return out
}

func named(names ...string) []Suggestion {
	items := make([]Suggestion, 0, len(names))
	for _, n := range names {
		items = append(items, Suggestion{Label: n, Value: n})
	}
	return items
}

func TestRank(t *testing.T) {
	tests := []struct {
		name     string
		word     string
		items    []string
		expected []string
	}{
		{
			name:     "prefix tier sorted bytewise",
			word:     "di",
			items:    []string{"division", "div", "divX"},
			expected: []string{"div", "divX", "division"},
		},
		{
			name:     "exact match first",
			word:     "div",
			items:    []string{"division", "divX", "div"},
			expected: []string{"div", "divX", "division"},
		},
		{
			name:     "exact ignores case",
			word:     "DIV",
			items:    []string{"divider", "div"},
			expected: []string{"div", "divider"},
		},
		{
			name:     "contains after prefix",
			word:     "ma",
			items:    []string{"animation", "margin", "#main"},
			expected: []string{"margin", "#main", "animation"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, labels(Rank(tt.word, named(tt.items...))))
		})
	}
}

func TestRankStableForEqualLabels(t *testing.T) {
	items := []Suggestion{
		{Label: "div", Value: "first"},
		{Label: "div", Value: "second"},
	}
	ranked := Rank("div", items)
	assert.Equal(t, "first", ranked[0].Value)
	assert.Equal(t, "second", ranked[1].Value)
}

func TestFilter(t *testing.T) {
	items := named("div", "audio", "video", "span")
	assert.Equal(t, []string{"div", "audio"}, labels(Filter("DI", items)))
	assert.Nil(t, Filter("", items))
	assert.Empty(t, Filter("zz", items))
}

func TestDedupe(t *testing.T) {
	items := []Suggestion{
		{Label: "a", Value: "1"},
		{Label: "b", Value: "2"},
		{Label: "a", Value: "3"},
	}
	out := Dedupe(items)
	assert.Equal(t, []string{"a", "b"}, labels(out))
	assert.Equal(t, "1", out[0].Value)
}
