package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// HelpModal lists the key bindings
type HelpModal struct {
	visible bool
}

func NewHelpModal() *HelpModal {
	return &HelpModal{}
}

func (h *HelpModal) Show()           { h.visible = true }
func (h *HelpModal) Hide()           { h.visible = false }
func (h *HelpModal) IsVisible() bool { return h.visible }

type binding struct {
	keys string
	desc string
}

var helpSections = []struct {
	title    string
	bindings []binding
}{
	{"Editing", []binding{
		{"Tab", "Indent, or accept the selected suggestion"},
		{"Enter", "New line with smart indent, or accept"},
		{"Ctrl+Z / Ctrl+Y", "Undo / redo"},
		{"Alt+( [ { \" ' `", "Insert a pair, or wrap the selection"},
		{"Ctrl+V", "Paste from the system clipboard"},
		{"Ctrl+C", "Copy the selection, or quit when nothing is selected"},
		{"Ctrl+S", "Save"},
		{"Ctrl+F", "Format the file with the model"},
	}},
	{"Suggestions", []binding{
		{"Ctrl+Space", "Show suggestions for the word at the caret"},
		{"Up / Down", "Move through the list"},
		{"Esc", "Close the list"},
	}},
	{"Navigation", []binding{
		{"Arrows, Home, End", "Move the caret"},
		{"Shift+Arrows", "Extend the selection"},
		{"PgUp / PgDn", "Scroll a page"},
		{"Ctrl+P", "Open another project file"},
		{"Ctrl+Q", "Quit"},
	}},
}

// View renders the help modal
func (h *HelpModal) View() string {
	if !h.visible {
		return ""
	}

	modalStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(1, 2).
		Background(lipgloss.Color("235"))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	sectionStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Width(20)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("246"))

	var content strings.Builder
	content.WriteString(titleStyle.Render("codepad"))
	content.WriteString("\n\n")
	for _, section := range helpSections {
		content.WriteString(sectionStyle.Render(section.title))
		content.WriteString("\n")
		for _, b := range section.bindings {
			content.WriteString(keyStyle.Render(b.keys) + descStyle.Render(b.desc))
			content.WriteString("\n")
		}
		content.WriteString("\n")
	}
	content.WriteString(descStyle.Render("Press Esc or F1 to close this help"))

	return modalStyle.Render(content.String())
}
