package tui

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"codepad/internal/edit"
	"codepad/internal/geometry"
	"codepad/internal/logger"
	"codepad/internal/tui/components"
)

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.switcher.Active() {
		if _, ok := msg.(tea.KeyMsg); ok {
			var cmd tea.Cmd
			m.switcher, cmd = m.switcher.Update(msg)
			return m, cmd
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewport.width = msg.Width
		m.viewport.height = msg.Height
		m.statusline.SetWidth(msg.Width)
		m.switcher, _ = m.switcher.Update(msg)
		m.ready = true
		m.follow()
		return m, nil

	case tea.KeyMsg:
		if m.helpModal.IsVisible() {
			switch msg.String() {
			case "esc", "f1", "q":
				m.helpModal.Hide()
			}
			return m, nil
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case SuggestionsMsg, ProjectChangedMsg:
		return m, nil

	case FormatDoneMsg:
		m.formatting = false
		if msg.Err != nil {
			logger.Warn("format failed", "path", m.path, "error", msg.Err)
			return m, m.status(components.StatuslineError, "Format failed: "+msg.Err.Error())
		}
		m.follow()
		return m, m.status(components.StatuslineInfo, "Formatted")

	case SavedMsg:
		if msg.Err != nil {
			logger.Error("save failed", "path", msg.Path, "error", msg.Err)
			return m, m.status(components.StatuslineError, "Save failed: "+msg.Err.Error())
		}
		if msg.Path == m.path {
			m.saved = msg.Text
		}
		logger.Info("file saved", "path", msg.Path, "bytes", len(msg.Text))
		return m, m.status(components.StatuslineInfo, "Saved "+filepath.Base(msg.Path))

	case OpenedMsg:
		if msg.Err != nil {
			return m, m.status(components.StatuslineError, "Open failed: "+msg.Err.Error())
		}
		m.open(msg.Path, msg.Text)
		return m, tea.SetWindowTitle("codepad " + msg.Path)

	case TickMsg:
		now := time.Time(msg)
		if m.statusline.HasExpired(now) {
			m.statusline.ClearMessage()
		}
		if m.formatting {
			m.spinner.Tick(now)
		}
		if m.formatting || m.statusline.Message() != nil {
			return m, tick()
		}
		m.ticking = false
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.session

	switch key := msg.String(); key {
	case "ctrl+q":
		return m, tea.Quit
	case "ctrl+c":
		st := s.State()
		if st.Sel.Collapsed() {
			return m, tea.Quit
		}
		if err := clipboard.WriteAll(st.Selected()); err != nil {
			return m, m.status(components.StatuslineWarning, "Clipboard unavailable")
		}
		return m, m.status(components.StatuslineInfo, "Copied")
	case "ctrl+x":
		st := s.State()
		if st.Sel.Collapsed() || s.ReadOnly() {
			return m, nil
		}
		if err := clipboard.WriteAll(st.Selected()); err != nil {
			return m, m.status(components.StatuslineWarning, "Clipboard unavailable")
		}
		s.Type("")
	case "ctrl+v":
		text, err := clipboard.ReadAll()
		if err != nil {
			return m, m.status(components.StatuslineWarning, "Clipboard unavailable")
		}
		s.Type(text)
		s.Dismiss()
	case "f1":
		m.helpModal.Show()
		return m, nil
	case "ctrl+s":
		return m, m.save()
	case "ctrl+f":
		return m.format()
	case "ctrl+p":
		if m.opts.Project == nil {
			return m, m.status(components.StatuslineWarning, "No project open")
		}
		cmd := m.switcher.Show(m.opts.Project.Files(), m.viewport.width, m.viewport.height, m.openFile)
		return m, cmd
	case "ctrl+z":
		s.Undo()
	case "ctrl+y":
		s.Redo()
	case "ctrl+@", "ctrl+ ":
		s.Suggest()
	case "enter", "tab", "esc":
		if !s.Key(edit.ParseKey(key)) && key == "esc" {
			m.collapse()
		}
	case "up", "down":
		if !s.Key(edit.ParseKey(key)) {
			s.MoveVertical(direction(key == "down"))
		}
	case "left", "right":
		s.MoveHorizontal(direction(key == "right"))
	case "home", "end":
		m.extend(m.lineEdge(key == "end", m.caret()), false)
	case "pgup", "pgdown":
		s.MoveVertical(direction(key == "pgdown") * m.editorHeight())
	case "shift+up", "shift+down", "shift+left", "shift+right", "shift+home", "shift+end":
		m.extend(m.moved(key), true)
	case "ctrl+a":
		s.Select(edit.NewSelection(0, len(s.Text())))
	case "backspace":
		s.Backspace()
	case "delete":
		s.Delete()
	default:
		switch msg.Type {
		case tea.KeyRunes, tea.KeySpace:
			text := string(msg.Runes)
			if msg.Alt && len(msg.Runes) == 1 && strings.ContainsRune(pairTokens, msg.Runes[0]) {
				s.InsertToken(text)
				break
			}
			if text == "" && msg.Type == tea.KeySpace {
				text = " "
			}
			s.Type(text)
			if msg.Paste {
				s.Dismiss()
			}
		}
	}

	if !isExtend(msg.String()) {
		m.anchor = -1
	}
	m.follow()
	return m, nil
}

// pairTokens are inserted with alt as a pair around the selection.
const pairTokens = "([{\"'`"

func direction(forward bool) int {
	if forward {
		return 1
	}
	return -1
}

func isExtend(key string) bool {
	switch key {
	case "shift+up", "shift+down", "shift+left", "shift+right", "shift+home", "shift+end":
		return true
	}
	return false
}

// caret is the moving end of the selection.
func (m Model) caret() int {
	if m.anchor >= 0 {
		return m.head
	}
	return m.session.State().Sel.End
}

// moved returns where a shift-move key takes the selection head.
func (m Model) moved(key string) int {
	text := m.session.Text()
	head := m.caret()
	tabSize := m.opts.Config.Editor.TabSize
	switch key {
	case "shift+up", "shift+down":
		offset, _ := geometry.MoveVertical(text, head, direction(key == "shift+down"), -1, tabSize)
		return offset
	case "shift+left":
		if head > 0 {
			_, size := utf8.DecodeLastRuneInString(text[:head])
			return head - size
		}
	case "shift+right":
		if head < len(text) {
			_, size := utf8.DecodeRuneInString(text[head:])
			return head + size
		}
	case "shift+home":
		return m.lineEdge(false, head)
	case "shift+end":
		return m.lineEdge(true, head)
	}
	return head
}

func (m Model) lineEdge(end bool, offset int) int {
	text := m.session.Text()
	tabSize := m.opts.Config.Editor.TabSize
	pos := geometry.PositionOf(text, offset, tabSize)
	col := 0
	if end {
		col = math.MaxInt32
	}
	return geometry.OffsetAt(text, geometry.Position{Row: pos.Row, Col: col}, tabSize)
}

// extend moves the caret to head, keeping the anchor when keep is set.
func (m *Model) extend(head int, keep bool) {
	if !keep {
		m.anchor = -1
		m.session.Select(edit.Caret(head))
		return
	}
	if m.anchor < 0 {
		m.anchor = m.caret()
	}
	m.head = head
	m.session.Select(edit.NewSelection(m.anchor, head))
}

func (m *Model) collapse() {
	m.anchor = -1
	m.session.Select(edit.Caret(m.session.State().Sel.End))
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.scrollRow = max(m.scrollRow-3, 0)
		return
	case tea.MouseButtonWheelDown:
		maxRow := max(geometry.LineCount(m.session.Text())-m.editorHeight(), 0)
		m.scrollRow = min(m.scrollRow+3, maxRow)
		return
	case tea.MouseButtonLeft:
	default:
		return
	}
	if msg.Y >= m.editorHeight() {
		return
	}

	offset := m.offsetAtCell(msg.X, msg.Y)
	switch msg.Action {
	case tea.MouseActionPress:
		m.anchor = offset
		m.head = offset
		m.session.Select(edit.Caret(offset))
	case tea.MouseActionMotion:
		if m.anchor >= 0 {
			m.head = offset
			m.session.Select(edit.NewSelection(m.anchor, offset))
		}
	case tea.MouseActionRelease:
		if m.anchor == offset {
			m.anchor = -1
		}
	}
	m.follow()
}

// offsetAtCell maps a screen cell in the editor area to a buffer offset.
func (m Model) offsetAtCell(x, y int) int {
	text := m.session.Text()
	layout := geometry.Layout{
		GutterWidth: float64(m.editor().GutterWidth()),
		LineNumbers: m.opts.Config.Editor.LineNumbers,
		TabSize:     m.opts.Config.Editor.TabSize,
	}
	point := geometry.Point{
		Top:  float64(y + m.scrollRow),
		Left: float64(x + m.scrollCol),
	}
	return geometry.PixelToOffset(text, point, cellFrame, layout)
}

var cellFrame = geometry.Frame{CharWidth: 1, LineHeight: 1}

func (m Model) editorHeight() int {
	return max(m.viewport.height-2, 1)
}

// follow scrolls so the caret stays visible.
func (m *Model) follow() {
	text := m.session.Text()
	pos := geometry.PositionOf(text, m.caret(), m.opts.Config.Editor.TabSize)
	m.scrollRow = geometry.ScrollRows(pos.Row, m.scrollRow, m.editorHeight(), geometry.LineCount(text))
	width := m.editor().TextWidth()
	m.scrollCol = geometry.ScrollRows(pos.Col, m.scrollCol, width, pos.Col+width)
}

func (m *Model) save() tea.Cmd {
	if m.path == "" {
		return m.status(components.StatuslineWarning, "Scratch buffer: start codepad with a file path to save")
	}
	path, text := m.path, m.session.Text()
	return func() tea.Msg {
		return SavedMsg{Path: path, Text: text, Err: writeFileAtomic(path, text)}
	}
}

func (m Model) format() (tea.Model, tea.Cmd) {
	if m.opts.Formatter == nil || m.formatting {
		return m, m.status(components.StatuslineWarning, "Formatting is not available")
	}
	m.formatting = true
	m.spinner.Start("Formatting "+m.session.Profile().Name, time.Now())
	s := m.session
	timeout := m.opts.Config.Completion.Timeout.Duration
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	run := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 3*timeout)
		defer cancel()
		return FormatDoneMsg{Err: s.Format(ctx)}
	}
	return m, tea.Batch(run, m.startTicking())
}

func (m Model) openFile(rel string) tea.Cmd {
	root := m.opts.Root
	return func() tea.Msg {
		path := filepath.Join(root, filepath.FromSlash(rel))
		text, err := readFile(path)
		if err != nil {
			err = fmt.Errorf("failed to open %s: %w", rel, err)
		}
		return OpenedMsg{Path: path, Text: text, Err: err}
	}
}
