package suggest

import (
	"regexp"
	"strings"
)

var (
	idAttrPattern    = regexp.MustCompile(`(?i)\bid\s*=\s*["']([^"']+)["']`)
	classAttrPattern = regexp.MustCompile(`(?i)\bclass\s*=\s*["']([^"']+)["']`)
	tagNamePattern   = regexp.MustCompile(`<([a-zA-Z][a-zA-Z0-9-]*)`)
)

// Selectors synthesizes CSS selector suggestions from markup: "#id" for id
// attributes, ".name" for every class and bare tag names, deduplicated.
func Selectors(html string) []Suggestion {
	if html == "" {
		return nil
	}
	seen := make(map[string]bool)
	var items []Suggestion
	add := func(selector, detail string) {
		if seen[selector] {
			return
		}
		seen[selector] = true
		items = append(items, Suggestion{
			Label:  selector,
			Value:  selector + " {\n\t$0\n}",
			Kind:   KindSelector,
			Detail: detail,
		})
	}

	for _, m := range idAttrPattern.FindAllStringSubmatch(html, -1) {
		add("#"+strings.TrimSpace(m[1]), "id")
	}
	for _, m := range classAttrPattern.FindAllStringSubmatch(html, -1) {
		for _, class := range strings.Fields(m[1]) {
			add("."+class, "class")
		}
	}
	for _, m := range tagNamePattern.FindAllStringSubmatch(html, -1) {
		add(strings.ToLower(m[1]), "tag")
	}
	return items
}
