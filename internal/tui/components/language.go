package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var languageColors = map[string]string{
	"html":       "208",
	"css":        "33",
	"javascript": "220",
}

// LanguageIndicatorComponent is the colored language badge at the left of
// the footer
type LanguageIndicatorComponent struct {
	language string
	readOnly bool
}

func NewLanguageIndicatorComponent(language string, readOnly bool) *LanguageIndicatorComponent {
	return &LanguageIndicatorComponent{language: language, readOnly: readOnly}
}

func (l *LanguageIndicatorComponent) text() string {
	t := " " + strings.ToUpper(l.language) + " "
	if l.readOnly {
		t += "RO "
	}
	return t
}

// Render renders the badge with the language color as background
func (l *LanguageIndicatorComponent) Render() string {
	color, ok := languageColors[l.language]
	if !ok {
		color = "7"
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color(color)).
		Render(l.text())
}

func (l *LanguageIndicatorComponent) Width() int {
	return lipgloss.Width(l.text())
}
