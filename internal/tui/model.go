package tui

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"codepad/internal/assist"
	"codepad/internal/config"
	"codepad/internal/render"
	"codepad/internal/session"
	"codepad/internal/suggest"
	"codepad/internal/tui/components"
)

// Options configures the terminal editor.
type Options struct {
	Path string
	Text string
	// Root is the project directory the switcher opens files from.
	Root    string
	Config  config.Config
	Tables  suggest.Tables
	Project suggest.Project

	Completer assist.Completer
	Formatter assist.Formatter
	// AssistLabel is shown in the footer, e.g. the model name.
	AssistLabel string
}

// Model represents the Bubble Tea model for the editor
type Model struct {
	opts     Options
	notifier *notifier

	session     *session.Session
	path        string
	saved       string
	highlighter *render.Highlighter
	cache       *viewCache

	// anchor is the fixed end of a keyboard or mouse selection and head the
	// moving end; anchor is -1 when no selection is being extended.
	anchor int
	head   int

	scrollRow int
	scrollCol int
	viewport  struct {
		width  int
		height int
	}
	ready bool

	formatting bool
	ticking    bool
	spinner    *components.SpinnerComponent
	statusline *components.StatuslineComponent
	helpModal  *components.HelpModal
	switcher   components.SwitcherModal
}

// viewCache holds the highlighted lines of the last rendered buffer.
type viewCache struct {
	text   string
	lines  [][]render.Span
	colors []render.ColorSpan
	valid  bool
}

// notifier forwards session callbacks, which run on timer goroutines, into
// the Bubble Tea program.
type notifier struct {
	mu   sync.Mutex
	send func(tea.Msg)
}

func (n *notifier) set(send func(tea.Msg)) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.send = send
}

func (n *notifier) notify(msg tea.Msg) {
	n.mu.Lock()
	send := n.send
	n.mu.Unlock()
	if send != nil {
		send(msg)
	}
}

// SuggestionsMsg reports that a model completion reached the popup
type SuggestionsMsg struct{}

// ProjectChangedMsg reports a rescan of the project files
type ProjectChangedMsg struct{}

// FormatDoneMsg carries the result of a format request
type FormatDoneMsg struct {
	Err error
}

// SavedMsg carries the result of writing the buffer to disk
type SavedMsg struct {
	Path string
	Text string
	Err  error
}

// OpenedMsg carries a file read for the switcher
type OpenedMsg struct {
	Path string
	Text string
	Err  error
}

// TickMsg animates the spinner and expires status messages
type TickMsg time.Time

// NewModel creates the editor model with opts.Text loaded
func NewModel(opts Options) Model {
	return newModel(opts, &notifier{})
}

func newModel(opts Options, n *notifier) Model {
	m := Model{
		opts:        opts,
		notifier:    n,
		highlighter: render.NewHighlighter(opts.Config.Editor.Theme, opts.Config.Editor.TabSize),
		cache:       &viewCache{},
		anchor:      -1,
		spinner:     components.NewSpinnerComponent(),
		statusline:  components.NewStatuslineComponent(0),
		helpModal:   components.NewHelpModal(),
		switcher:    components.NewSwitcherModal(),
	}
	m.open(opts.Path, opts.Text)
	return m
}

// open replaces the current session with one editing text.
func (m *Model) open(path, text string) {
	if m.session != nil {
		m.session.Dispose()
	}
	n := m.notifier
	editor := m.opts.Config.Editor
	completion := m.opts.Config.Completion
	m.session = session.New(text, session.Options{
		Path:                path,
		Tables:              m.opts.Tables,
		Project:             m.opts.Project,
		Completer:           m.opts.Completer,
		Formatter:           m.opts.Formatter,
		ReadOnly:            editor.ReadOnly,
		TabSize:             editor.TabSize,
		Debounce:            completion.Debounce.Duration,
		MinCompletionLength: completion.MinLength,
		CompletionTimeout:   completion.Timeout.Duration,
		HistoryLimit:        editor.HistoryLimit,
		HistoryIdle:         editor.HistoryIdle.Duration,
		OnSuggestions: func([]suggest.Suggestion) {
			n.notify(SuggestionsMsg{})
		},
	})
	m.path = path
	m.saved = text
	m.anchor = -1
	m.scrollRow = 0
	m.scrollCol = 0
}

// Session returns the session of the open file
func (m Model) Session() *session.Session {
	return m.session
}

// Init initializes the TUI model
func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle("codepad " + m.path)
}

func (m Model) dirty() bool {
	return m.session.Text() != m.saved
}

func tick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// startTicking starts the animation tick unless it is already running.
func (m *Model) startTicking() tea.Cmd {
	if m.ticking {
		return nil
	}
	m.ticking = true
	return tick()
}

func (m *Model) status(kind components.StatuslineMessageType, text string) tea.Cmd {
	m.statusline.SetMessage(components.NewStatuslineMessage(kind, text, 4*time.Second))
	return m.startTicking()
}
