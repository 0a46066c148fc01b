package tui

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codepad/internal/config"
	"codepad/internal/edit"
)

func newTestModel(t *testing.T, path, text string) Model {
	t.Helper()
	m := NewModel(Options{Path: path, Text: text, Config: config.Default()})
	t.Cleanup(func() { m.Session().Dispose() })
	return update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTypingAndAcceptingASuggestion(t *testing.T) {
	m := newTestModel(t, "index.html", "")

	m = update(t, m, runes("di"))
	assert.Equal(t, "di", m.Session().Text())
	assert.True(t, m.Session().Popup().Active())
	assert.Contains(t, m.View(), "div")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "<div></div>", m.Session().Text())
	assert.Equal(t, edit.Caret(5), m.Session().State().Sel)
	assert.True(t, m.dirty())
}

func TestShiftArrowsExtendSelection(t *testing.T) {
	m := newTestModel(t, "notes.txt", "hello")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyShiftRight})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyShiftRight})
	assert.Equal(t, edit.NewSelection(0, 2), m.Session().State().Sel)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyShiftLeft})
	assert.Equal(t, edit.NewSelection(0, 1), m.Session().State().Sel)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, edit.Caret(1), m.Session().State().Sel)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnd})
	assert.Equal(t, edit.Caret(5), m.Session().State().Sel)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyHome})
	assert.Equal(t, edit.Caret(0), m.Session().State().Sel)
}

func TestAltTokenWrapsSelection(t *testing.T) {
	m := newTestModel(t, "notes.txt", "hello world")

	for range 5 {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyShiftRight})
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("("), Alt: true})
	assert.Equal(t, "(hello) world", m.Session().Text())
	assert.Equal(t, edit.Caret(7), m.Session().State().Sel)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnd})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(`"`), Alt: true})
	assert.Equal(t, `(hello) world""`, m.Session().Text())
	assert.Equal(t, edit.Caret(14), m.Session().State().Sel)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x"), Alt: true})
	assert.Equal(t, `(hello) world"x"`, m.Session().Text(), "other alt runes type as usual")
}

func TestMouseClickPlacesCaret(t *testing.T) {
	m := newTestModel(t, "notes.txt", "hello\nworld")

	// Two lines: the gutter is one digit plus a space.
	m = update(t, m, tea.MouseMsg{X: 5, Y: 1, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	assert.Equal(t, edit.Caret(9), m.Session().State().Sel)

	m = update(t, m, tea.MouseMsg{X: 2, Y: 0, Button: tea.MouseButtonLeft, Action: tea.MouseActionMotion})
	assert.Equal(t, edit.NewSelection(0, 9), m.Session().State().Sel)
}

func TestUndoRedoKeys(t *testing.T) {
	m := newTestModel(t, "notes.txt", "")

	m = update(t, m, runes("a"))
	m = update(t, m, runes("b"))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlZ})
	assert.Equal(t, "a", m.Session().Text())
	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlY})
	assert.Equal(t, "ab", m.Session().Text())
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.css")
	m := newTestModel(t, path, "")

	m = update(t, m, runes("a {}"))
	require.True(t, m.dirty())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)
	msg, ok := cmd().(SavedMsg)
	require.True(t, ok)
	require.NoError(t, msg.Err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a {}", string(data))

	m = update(t, m, msg)
	assert.False(t, m.dirty())
	assert.Contains(t, m.View(), "Saved site.css")
}

func TestScratchBufferCannotSave(t *testing.T) {
	m := newTestModel(t, "", "x")
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Contains(t, next.View(), "Scratch buffer")
}

func TestFormatWithoutFormatter(t *testing.T) {
	m := newTestModel(t, "site.css", "a{}")
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlF})
	assert.Contains(t, next.View(), "Formatting is not available")
	assert.Equal(t, "a{}", next.(Model).Session().Text())
}

func TestHelpModal(t *testing.T) {
	m := newTestModel(t, "", "")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyF1})
	assert.Contains(t, m.View(), "Suggestions")
	m = update(t, m, runes("x"))
	assert.Equal(t, "", m.Session().Text())
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.helpModal.IsVisible())
}

func TestScrollFollowsCaret(t *testing.T) {
	text := ""
	for i := 0; i < 100; i++ {
		text += "line\n"
	}
	m := newTestModel(t, "notes.txt", text)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyPgDown})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyPgDown})
	assert.Greater(t, m.scrollRow, 0)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlA})
	m = update(t, m, tea.MouseMsg{Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	assert.GreaterOrEqual(t, m.scrollRow, 0)
}

func TestWriteFileAtomicKeepsMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.sh")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0755))

	require.NoError(t, writeFileAtomic(path, "new"))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())

	text, err := readFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", text)

	text, err = readFile(filepath.Join(t.TempDir(), "missing.html"))
	require.NoError(t, err)
	assert.Equal(t, "", text)
}
