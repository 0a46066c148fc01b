package suggest

import "strings"

// Kind categorises a suggestion. It drives the popup icon, the ranking of
// merged sources and how many characters an accepted suggestion replaces.
type Kind int

const (
	KindTag Kind = iota
	KindAttribute
	KindProperty
	KindKeyword
	KindSelector
	KindSnippet
	KindAbbreviation
	KindFilePath
	// KindCompletion is the model-generated snippet. It is appended at the
	// caret rather than replacing the current word.
	KindCompletion
)

var kindNames = []string{
	KindTag:          "tag",
	KindAttribute:    "attribute",
	KindProperty:     "property",
	KindKeyword:      "keyword",
	KindSelector:     "selector",
	KindSnippet:      "snippet",
	KindAbbreviation: "emmet",
	KindFilePath:     "file-path",
	KindCompletion:   "completion",
}

func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range kindNames {
		if name == s {
			return Kind(k), true
		}
	}
	return 0, false
}

// Suggestion is one completion candidate. Value is spliced into the buffer
// on acceptance and may carry a single "$0" cursor marker.
type Suggestion struct {
	Label  string
	Value  string
	Kind   Kind
	Detail string
}

// Project is the read-only view of the open project the provider needs.
type Project interface {
	// Files lists project-relative, slash separated paths.
	Files() []string
	// HTMLContext returns markup used to synthesize CSS selectors.
	HTMLContext() string
}

// StaticProject is a fixed Project, for hosts that hand over a file list
// once.
type StaticProject struct {
	Paths []string
	HTML  string
}

func (p StaticProject) Files() []string     { return p.Paths }
func (p StaticProject) HTMLContext() string { return p.HTML }
