package components

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// FooterComponent is the status bar: language badge, file, cursor position
// and completion status.
type FooterComponent struct {
	language string
	readOnly bool
	path     string
	dirty    bool
	row, col int
	assist   string
	width    int
}

// FooterInfo is what the footer shows
type FooterInfo struct {
	Language string
	ReadOnly bool
	Path     string
	Dirty    bool
	Row, Col int
	// Assist names the completion model, or says it is off.
	Assist string
}

func NewFooterComponent(info FooterInfo, width int) *FooterComponent {
	return &FooterComponent{
		language: info.Language,
		readOnly: info.ReadOnly,
		path:     info.Path,
		dirty:    info.Dirty,
		row:      info.Row,
		col:      info.Col,
		assist:   info.Assist,
		width:    width,
	}
}

// Render renders the complete footer
func (f *FooterComponent) Render() string {
	badge := NewLanguageIndicatorComponent(f.language, f.readOnly)
	remainingWidth := f.width - badge.Width()

	path := shortenHome(f.path)
	if path == "" {
		path = "[scratch]"
	}
	if f.dirty {
		path += " ●"
	}
	position := fmt.Sprintf("Ln %d, Col %d", f.row+1, f.col+1)

	sections := []string{path, position, f.assist}
	contentWidth := 0
	for _, section := range sections {
		contentWidth += lipgloss.Width(section)
	}
	gaps := len(sections) - 1
	extra := max((remainingWidth-contentWidth-gaps*3-2)/gaps, 0)
	separator := strings.Repeat(" ", 3+extra)

	bar := lipgloss.NewStyle().Background(lipgloss.Color("236"))
	text := bar.Foreground(lipgloss.Color("245"))
	pathStyle := text
	if f.dirty {
		pathStyle = bar.Foreground(lipgloss.Color("214"))
	}

	composed := pathStyle.Render(path) + bar.Render(separator) +
		text.Render(position) + bar.Render(separator) +
		text.Render(f.assist)

	return badge.Render() + bar.Width(max(remainingWidth, 0)).Padding(0, 1).Render(composed)
}

// shortenHome replaces the home directory prefix with ~
func shortenHome(path string) string {
	home, _ := os.UserHomeDir()
	if home != "" && strings.HasPrefix(path, home) {
		return "~" + path[len(home):]
	}
	return path
}
