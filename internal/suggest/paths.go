package suggest

import (
	"path"
	"regexp"
	"strings"
)

var attrPathPattern = regexp.MustCompile(`(?i)\b(src|href)\s*=\s*["']([^"']*)$`)

var attrExtensions = map[string][]string{
	"src":  {".js", ".mjs", ".png", ".jpg", ".jpeg", ".gif", ".svg", ".webp", ".ico", ".mp3", ".mp4", ".webm", ".ogg", ".wav"},
	"href": {".css", ".html", ".htm"},
}

const minImportWord = 2

// PathPartial reports whether the cursor sits inside a quoted src/href value
// and returns the attribute name and the partial path typed so far.
func PathPartial(before string) (attribute, partial string, ok bool) {
	m := attrPathPattern.FindStringSubmatch(before)
	if m == nil {
		return "", "", false
	}
	return strings.ToLower(m[1]), m[2], true
}

func pathCompletions(before string, files []string) []Suggestion {
	attribute, partial, ok := PathPartial(before)
	if !ok {
		return nil
	}
	needle := strings.ToLower(partial)
	var items []Suggestion
	for _, f := range files {
		if !hasExtension(f, attrExtensions[attribute]) {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(f), needle) {
			continue
		}
		items = append(items, Suggestion{Label: f, Value: f, Kind: KindFilePath, Detail: attribute})
	}
	if needle == "" {
		return items
	}
	return Rank(partial, items)
}

// importSnippets offers <script>/<link> tags for project files matching word.
func importSnippets(word string, files []string) []Suggestion {
	if len(word) < minImportWord {
		return nil
	}
	needle := strings.ToLower(word)
	var items []Suggestion
	for _, f := range files {
		if !strings.Contains(strings.ToLower(f), needle) {
			continue
		}
		switch strings.ToLower(path.Ext(f)) {
		case ".js", ".mjs":
			items = append(items, snippet("script: "+f, `<script src="`+f+`"></script>`, "import script"))
		case ".css":
			items = append(items, snippet("link: "+f, `<link rel="stylesheet" href="`+f+`">`, "import stylesheet"))
		}
	}
	return items
}

func hasExtension(p string, exts []string) bool {
	ext := strings.ToLower(path.Ext(p))
	for _, e := range exts {
		if e == ext {
			return true
		}
	}
	return false
}
