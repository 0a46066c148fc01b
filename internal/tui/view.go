package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"codepad/internal/geometry"
	"codepad/internal/render"
	"codepad/internal/tui/components"
)

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.helpModal.IsVisible() {
		return lipgloss.Place(m.viewport.width, m.viewport.height, lipgloss.Center, lipgloss.Center, m.helpModal.View())
	}
	if m.switcher.Active() {
		return m.switcher.View()
	}

	editor := m.editor()
	rows := editor.Rows()
	m.overlayPopup(editor, rows)

	status := m.statusline.Render()
	if m.formatting {
		status = lipgloss.NewStyle().
			Background(lipgloss.Color("0")).
			Foreground(lipgloss.Color("252")).
			Width(m.viewport.width).
			Padding(0, 1).
			Render(m.spinner.Render())
	}

	return strings.Join(rows, "\n") + "\n" + status + "\n" + m.footer()
}

// editor builds the viewport component for the current buffer.
func (m Model) editor() *components.EditorComponent {
	st := m.session.State()
	lines, colors := m.highlighted(st.Text)
	return components.NewEditorComponent(components.EditorComponent{
		Text:        st.Text,
		Lines:       lines,
		Selection:   st.Sel,
		Caret:       m.caret(),
		Colors:      colors,
		Theme:       m.highlighter,
		TabSize:     m.opts.Config.Editor.TabSize,
		ScrollRow:   m.scrollRow,
		ScrollCol:   m.scrollCol,
		Width:       m.viewport.width,
		Height:      m.editorHeight(),
		LineNumbers: m.opts.Config.Editor.LineNumbers,
		Focused:     true,
	})
}

// highlighted tokenises text, reusing the previous result when the buffer
// is unchanged.
func (m Model) highlighted(text string) ([][]render.Span, []render.ColorSpan) {
	if m.cache.valid && m.cache.text == text {
		return m.cache.lines, m.cache.colors
	}
	profile := m.session.Profile()
	m.cache.text = text
	m.cache.lines = m.highlighter.Lines(text, profile)
	m.cache.colors = nil
	if profile.ColorPreview {
		m.cache.colors = render.Colors(text)
	}
	m.cache.valid = true
	return m.cache.lines, m.cache.colors
}

// overlayPopup paints the suggestion popup next to the caret, below it in
// the upper half of the screen and above it in the lower half.
func (m Model) overlayPopup(editor *components.EditorComponent, rows []string) {
	popup := m.session.Popup()
	if !popup.Active() {
		return
	}
	text := m.session.Text()
	pos := geometry.PositionOf(text, m.caret(), m.opts.Config.Editor.TabSize)
	component := components.NewPopupComponent(popup, min(editor.TextWidth(), 60))
	lines := component.Lines()

	placement := geometry.PlacePopup(float64(pos.Row), cellFrame, geometry.Viewport{
		ScrollTop: float64(m.scrollRow),
		Height:    float64(len(rows)),
	})
	top := int(placement.Top) - m.scrollRow
	if placement.Above {
		top -= component.Height()
	}
	col := pos.Col - m.scrollCol

	for i, line := range lines {
		row := top + i
		if row < 0 || row >= len(rows) {
			continue
		}
		rows[row] = editor.RowWithOverlay(row, col, line)
	}
}

func (m Model) footer() string {
	st := m.session.State()
	pos := geometry.PositionOf(st.Text, m.caret(), m.opts.Config.Editor.TabSize)
	assist := m.opts.AssistLabel
	if assist == "" {
		assist = "completion off"
	}
	info := components.FooterInfo{
		Language: m.session.Profile().Name,
		ReadOnly: m.session.ReadOnly(),
		Path:     m.path,
		Dirty:    st.Text != m.saved,
		Row:      pos.Row,
		Col:      pos.Col,
		Assist:   assist,
	}
	return components.NewFooterComponent(info, m.viewport.width).Render()
}
