package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
)

const maxSwitcherRows = 12

// SwitcherModal picks a project file by fuzzy name.
type SwitcherModal struct {
	active   bool
	files    []string
	matches  []string
	selected int
	input    textinput.Model
	width    int
	height   int
	onSubmit func(path string) tea.Cmd
}

func NewSwitcherModal() SwitcherModal {
	ti := textinput.New()
	ti.Placeholder = "Type to search project files..."
	ti.CharLimit = 256
	ti.Width = 50
	ti.Prompt = "› "
	return SwitcherModal{input: ti}
}

// Show opens the modal over files; onSubmit receives the chosen path.
func (m *SwitcherModal) Show(files []string, width, height int, onSubmit func(string) tea.Cmd) tea.Cmd {
	m.active = true
	m.files = files
	m.width = width
	m.height = height
	m.onSubmit = onSubmit
	m.input.Reset()
	m.input.Width = max(10, m.modalWidth()-6)
	m.filter()
	m.input.Focus()
	return textinput.Blink
}

func (m *SwitcherModal) Hide() {
	m.active = false
	m.input.Blur()
	m.input.Reset()
}

func (m SwitcherModal) Active() bool {
	return m.active
}

// Matches returns the files matching the current query, best first.
func (m SwitcherModal) Matches() []string {
	return m.matches
}

func (m *SwitcherModal) filter() {
	query := strings.TrimSpace(m.input.Value())
	m.selected = 0
	if query == "" {
		m.matches = m.files
		return
	}
	found := fuzzy.Find(query, m.files)
	m.matches = make([]string, len(found))
	for i, match := range found {
		m.matches[i] = match.Str
	}
}

func (m SwitcherModal) Update(msg tea.Msg) (SwitcherModal, tea.Cmd) {
	if !m.active {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEnter:
			if len(m.matches) == 0 {
				return m, nil
			}
			path := m.matches[m.selected]
			m.Hide()
			if m.onSubmit != nil {
				return m, m.onSubmit(path)
			}
			return m, nil
		case tea.KeyEsc, tea.KeyCtrlC:
			m.Hide()
			return m, nil
		case tea.KeyUp, tea.KeyCtrlK:
			if len(m.matches) > 0 {
				m.selected = (m.selected - 1 + len(m.matches)) % len(m.matches)
			}
			return m, nil
		case tea.KeyDown, tea.KeyCtrlJ:
			if len(m.matches) > 0 {
				m.selected = (m.selected + 1) % len(m.matches)
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(10, m.modalWidth()-6)
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.filter()
	}
	return m, cmd
}

func (m SwitcherModal) modalWidth() int {
	w := m.width * 70 / 100
	if w < 50 {
		w = min(50, m.width-4)
	}
	return w
}

func (m SwitcherModal) View() string {
	if !m.active {
		return ""
	}
	if m.width < 20 || m.height < 8 {
		return "Terminal too small"
	}

	modalWidth := m.modalWidth()
	modalStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("39")).
		Padding(1, 2).
		Width(modalWidth)
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginBottom(1)
	itemStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	selectedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Background(lipgloss.Color("24"))
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1)

	var content strings.Builder
	content.WriteString(titleStyle.Render("Open file"))
	content.WriteString("\n")
	content.WriteString(m.input.View())
	content.WriteString("\n\n")

	rows := min(maxSwitcherRows, max(m.height-12, 1))
	start := 0
	if m.selected >= rows {
		start = m.selected - rows + 1
	}
	end := min(start+rows, len(m.matches))
	if len(m.matches) == 0 {
		content.WriteString(itemStyle.Render("No matching files"))
		content.WriteString("\n")
	}
	for i := start; i < end; i++ {
		line := m.matches[i]
		if i == m.selected {
			content.WriteString(selectedStyle.Render("  " + line + "  "))
		} else {
			content.WriteString(itemStyle.Render("  " + line))
		}
		content.WriteString("\n")
	}
	content.WriteString(helpStyle.Render("Enter to open • Esc to cancel"))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modalStyle.Render(content.String()))
}
