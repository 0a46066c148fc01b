package suggest

import (
	"sort"
	"strings"
)

const (
	tierExact = iota
	tierPrefix
	tierContains
)

// Filter keeps the entries whose label contains word, ignoring case.
func Filter(word string, items []Suggestion) []Suggestion {
	if word == "" {
		return nil
	}
	needle := strings.ToLower(word)
	var matches []Suggestion
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Label), needle) {
			matches = append(matches, item)
		}
	}
	return matches
}

// Rank orders items for word: exact label match first, then prefix matches,
// then the rest; within a tier labels sort bytewise and equal labels keep
// their table order.
func Rank(word string, items []Suggestion) []Suggestion {
	needle := strings.ToLower(word)
	ranked := make([]Suggestion, len(items))
	copy(ranked, items)
	sort.SliceStable(ranked, func(i, j int) bool {
		ti, tj := tier(needle, ranked[i].Label), tier(needle, ranked[j].Label)
		if ti != tj {
			return ti < tj
		}
		return ranked[i].Label < ranked[j].Label
	})
	return ranked
}

func tier(needle, label string) int {
	l := strings.ToLower(label)
	switch {
	case l == needle:
		return tierExact
	case strings.HasPrefix(l, needle):
		return tierPrefix
	default:
		return tierContains
	}
}

// Dedupe drops later entries whose label was already seen.
func Dedupe(items []Suggestion) []Suggestion {
	seen := make(map[string]bool, len(items))
	out := items[:0:0]
	for _, item := range items {
		if seen[item.Label] {
			continue
		}
		seen[item.Label] = true
		out = append(out, item)
	}
	return out
}
