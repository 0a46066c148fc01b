// Package session owns the editing state of one open file: buffer,
// selection, history, suggestion popup and the pending model completion.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"codepad/internal/assist"
	"codepad/internal/edit"
	"codepad/internal/geometry"
	"codepad/internal/history"
	"codepad/internal/logger"
	"codepad/internal/suggest"
)

const (
	DefaultDebounce            = 1500 * time.Millisecond
	DefaultMinCompletionLength = 10
	DefaultCompletionTimeout   = 10 * time.Second
)

// ErrNoFormatter is returned by Format when the session has no formatter.
var ErrNoFormatter = errors.New("no formatter configured")

// Timer is a pending scheduled call.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d, never before returning. The default is
// time.AfterFunc.
type Scheduler func(d time.Duration, f func()) Timer

func afterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Options configures a Session. The zero value edits plain text with the
// default tables and no model completion.
type Options struct {
	// Language selects the profile by name; Path is used when it is empty.
	Language string
	Path     string

	Tables    suggest.Tables
	Project   suggest.Project
	Completer assist.Completer
	Formatter assist.Formatter

	ReadOnly bool
	TabSize  int

	Debounce            time.Duration
	MinCompletionLength int
	CompletionTimeout   time.Duration

	HistoryLimit int
	// HistoryIdle coalesces edits typed within the interval into one undo
	// step. Zero records every edit.
	HistoryIdle time.Duration

	Scheduler Scheduler

	// OnChange receives the buffer after every committed edit.
	OnChange func(text string)
	// OnSuggestions receives the popup list when a model completion
	// arrives.
	OnSuggestions func(items []suggest.Suggestion)
}

func (o Options) withDefaults() Options {
	if o.Debounce <= 0 {
		o.Debounce = DefaultDebounce
	}
	if o.MinCompletionLength <= 0 {
		o.MinCompletionLength = DefaultMinCompletionLength
	}
	if o.CompletionTimeout <= 0 {
		o.CompletionTimeout = DefaultCompletionTimeout
	}
	if o.TabSize <= 0 {
		o.TabSize = edit.DefaultTabSize
	}
	if o.Scheduler == nil {
		o.Scheduler = afterFunc
	}
	if o.Tables.HTMLTags == nil && o.Tables.HTMLAttributes == nil &&
		o.Tables.CSSProperties == nil && o.Tables.JSKeywords == nil {
		o.Tables = suggest.DefaultTables()
	}
	return o
}

// Session is the editor state of one open file. All methods are safe for
// concurrent use; callbacks run after the session lock is released.
type Session struct {
	id      string
	opts    Options
	profile suggest.Profile
	ctx     edit.Context

	baseCtx context.Context
	cancel  context.CancelFunc

	mu         sync.Mutex
	state      edit.State
	history    *history.Stack
	popup      suggest.Popup
	generation uint64
	goalCol    int
	pending    bool
	completion Timer
	snapshot   Timer
	disposed   bool
}

// New opens a session on text with the caret at the start.
func New(text string, opts Options) *Session {
	opts = opts.withDefaults()

	profile := suggest.ProfileFor(opts.Language)
	if opts.Language == "" {
		profile = suggest.ProfileForPath(opts.Path)
	}

	baseCtx, cancel := context.WithCancel(context.Background())
	s := &Session{
		id:      newID(),
		opts:    opts,
		profile: profile,
		ctx:     edit.Context{Profile: profile, TabSize: opts.TabSize},
		baseCtx: baseCtx,
		cancel:  cancel,
		state:   edit.State{Text: text},
		history: history.New(text, opts.HistoryLimit),
		goalCol: -1,
	}
	logger.Debug("session opened", "session", s.id, "language", profile.Name, "path", opts.Path)
	return s
}

func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf("session_%d", time.Now().UnixNano())
	}
	return id.String()
}

func (s *Session) ID() string               { return s.id }
func (s *Session) Profile() suggest.Profile { return s.profile }
func (s *Session) ReadOnly() bool           { return s.opts.ReadOnly }

func (s *Session) State() edit.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Text() string {
	return s.State().Text
}

// Popup returns a copy of the suggestion popup.
func (s *Session) Popup() suggest.Popup {
	s.mu.Lock()
	defer s.mu.Unlock()
	return suggest.Popup{
		Items:    append([]suggest.Suggestion(nil), s.popup.Items...),
		Selected: s.popup.Selected,
	}
}

// Generation is bumped by every edit, caret move and completion request.
func (s *Session) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

func (s *Session) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending || s.history.CanUndo()
}

func (s *Session) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.pending && s.history.CanRedo()
}

// update runs fn under the lock and reports a changed buffer to OnChange
// once the lock is released.
func (s *Session) update(fn func() bool) bool {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return false
	}
	before := s.state.Text
	ok := fn()
	text := s.state.Text
	s.mu.Unlock()

	if text != before && s.opts.OnChange != nil {
		s.opts.OnChange(text)
	}
	return ok
}

// Sync takes the buffer and selection as the host now sees them, after the
// host applied a keystroke itself.
func (s *Session) Sync(text string, sel edit.Selection) {
	s.update(func() bool {
		if text != s.state.Text && !s.opts.ReadOnly {
			s.commitLocked(edit.State{Text: text, Sel: sel})
			s.refreshLocked()
			return true
		}
		s.selectLocked(sel)
		return true
	})
}

// Select moves the caret or selection. It closes the popup and invalidates
// any pending completion.
func (s *Session) Select(sel edit.Selection) {
	s.update(func() bool {
		s.selectLocked(sel)
		return true
	})
}

// MoveVertical moves the caret delta rows, keeping the goal column across
// consecutive moves.
func (s *Session) MoveVertical(delta int) {
	s.update(func() bool {
		offset, goal := geometry.MoveVertical(s.state.Text, s.state.Sel.End, delta, s.goalCol, s.opts.TabSize)
		s.selectLocked(edit.Caret(offset))
		s.goalCol = goal
		return true
	})
}

// MoveHorizontal moves the caret delta runes, collapsing a selection onto
// the side the move points at.
func (s *Session) MoveHorizontal(delta int) {
	s.update(func() bool {
		text := s.state.Text
		sel := s.state.Sel
		if !sel.Collapsed() {
			if delta < 0 {
				s.selectLocked(edit.Caret(sel.Start))
			} else {
				s.selectLocked(edit.Caret(sel.End))
			}
			return true
		}
		offset := sel.Start
		for ; delta < 0 && offset > 0; delta++ {
			_, size := utf8.DecodeLastRuneInString(text[:offset])
			offset -= size
		}
		for ; delta > 0 && offset < len(text); delta-- {
			_, size := utf8.DecodeRuneInString(text[offset:])
			offset += size
		}
		s.selectLocked(edit.Caret(offset))
		return true
	})
}

// Type inserts text over the selection and refreshes suggestions.
func (s *Session) Type(text string) bool {
	return s.edit(func(st edit.State) edit.State { return edit.InsertText(st, text) }, true)
}

func (s *Session) Backspace() bool {
	return s.edit(edit.Backspace, true)
}

func (s *Session) Delete() bool {
	return s.edit(edit.DeleteForward, true)
}

// InsertToken inserts a toolbar token, pairing brackets and quotes.
func (s *Session) InsertToken(token string) bool {
	return s.edit(func(st edit.State) edit.State { return edit.InsertToken(st, token) }, false)
}

func (s *Session) edit(op func(edit.State) edit.State, refresh bool) bool {
	return s.update(func() bool {
		if s.opts.ReadOnly {
			return false
		}
		next := op(s.state)
		if !s.commitLocked(next) {
			return false
		}
		if refresh {
			s.refreshLocked()
		} else {
			s.closePopupLocked()
		}
		return true
	})
}

// Key runs the key through the popup and the structural rules. It reports
// whether the key was consumed; unconsumed keys belong to the host.
func (s *Session) Key(key edit.Key) bool {
	return s.update(func() bool {
		if s.opts.ReadOnly {
			return false
		}
		out := edit.HandleKey(s.state, &s.popup, key, s.ctx)
		if out.PopupClosed {
			s.stopCompletionLocked()
		}
		if out.Changed {
			s.commitLocked(out.State)
			if out.Accepted == nil {
				s.refreshLocked()
			}
		}
		return out.Handled
	})
}

// Accept inserts popup item i, as a click on the list would.
func (s *Session) Accept(i int) bool {
	return s.update(func() bool {
		if s.opts.ReadOnly || i < 0 || i >= len(s.popup.Items) {
			return false
		}
		sug := s.popup.Items[i]
		s.closePopupLocked()
		s.commitLocked(edit.Accept(s.state, sug, s.ctx))
		return true
	})
}

// Suggest recomputes the popup for the caret, as typing would.
func (s *Session) Suggest() {
	s.update(func() bool {
		s.refreshLocked()
		return true
	})
}

// Dismiss closes the popup and drops any pending completion.
func (s *Session) Dismiss() {
	s.update(func() bool {
		s.closePopupLocked()
		return true
	})
}

func (s *Session) Undo() bool {
	return s.travel((*history.Stack).Undo)
}

func (s *Session) Redo() bool {
	return s.travel((*history.Stack).Redo)
}

func (s *Session) travel(step func(*history.Stack) (string, bool)) bool {
	return s.update(func() bool {
		if s.opts.ReadOnly {
			return false
		}
		s.flushLocked()
		text, ok := step(s.history)
		if !ok {
			return false
		}
		caret := changeEnd(s.state.Text, text)
		s.state = edit.State{Text: text, Sel: edit.Caret(caret)}.Normalize()
		s.generation++
		s.goalCol = -1
		s.closePopupLocked()
		return true
	})
}

// Format replaces the buffer with the formatter's output. A failure, or an
// edit made while the formatter ran, leaves the buffer as it is.
func (s *Session) Format(ctx context.Context) error {
	if s.opts.Formatter == nil {
		return ErrNoFormatter
	}
	s.mu.Lock()
	if s.disposed || s.opts.ReadOnly {
		s.mu.Unlock()
		return nil
	}
	original := s.state.Text
	s.mu.Unlock()

	formatted, err := s.opts.Formatter.Format(ctx, original, s.profile.Name)
	if err != nil {
		return fmt.Errorf("failed to format %s: %w", s.profile.Name, err)
	}
	if formatted == "" || formatted == original {
		return nil
	}

	var stale bool
	s.update(func() bool {
		if s.state.Text != original {
			stale = true
			return false
		}
		s.closePopupLocked()
		s.flushLocked()
		s.commitLocked(edit.State{Text: formatted, Sel: edit.Caret(min(s.state.Sel.Start, len(formatted)))})
		s.flushLocked()
		return true
	})
	if stale {
		return fmt.Errorf("buffer changed while formatting")
	}
	return nil
}

// Dispose stops the session's timers and invalidates any completion in
// flight. Every later call is a no-op.
func (s *Session) Dispose() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed {
		return
	}
	s.disposed = true
	s.stopCompletionLocked()
	if s.snapshot != nil {
		s.snapshot.Stop()
		s.snapshot = nil
	}
	s.flushLocked()
	s.generation++
	s.popup.Close()
	s.cancel()
	logger.Debug("session disposed", "session", s.id)
}

// commitLocked makes next the current state and records it in history. It
// reports whether the buffer changed.
func (s *Session) commitLocked(next edit.State) bool {
	next = next.Normalize()
	if next.Text == s.state.Text {
		s.selectLocked(next.Sel)
		return false
	}
	s.state = next
	s.generation++
	s.goalCol = -1

	if s.opts.HistoryIdle <= 0 {
		s.history.Push(next.Text)
		return true
	}
	s.pending = true
	if s.snapshot != nil {
		s.snapshot.Stop()
	}
	s.snapshot = s.opts.Scheduler(s.opts.HistoryIdle, s.flushSnapshot)
	return true
}

func (s *Session) flushSnapshot() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.disposed {
		s.flushLocked()
	}
}

func (s *Session) flushLocked() {
	if s.snapshot != nil {
		s.snapshot.Stop()
		s.snapshot = nil
	}
	if s.pending {
		s.history.Push(s.state.Text)
		s.pending = false
	}
}

func (s *Session) selectLocked(sel edit.Selection) {
	next := edit.State{Text: s.state.Text, Sel: sel}.Normalize()
	if next.Sel == s.state.Sel {
		return
	}
	s.state = next
	s.generation++
	s.goalCol = -1
	s.closePopupLocked()
}

func (s *Session) closePopupLocked() {
	s.popup.Close()
	s.stopCompletionLocked()
}

func (s *Session) stopCompletionLocked() {
	if s.completion != nil {
		s.completion.Stop()
		s.completion = nil
	}
}

// refreshLocked recomputes the popup from the static sources and falls back
// to scheduling a model completion when they have nothing.
func (s *Session) refreshLocked() {
	s.stopCompletionLocked()

	req := suggest.Request{
		Text:    s.state.Text,
		Offset:  s.state.Sel.Start,
		Profile: s.profile,
		Tables:  s.opts.Tables,
	}
	if s.opts.Project != nil {
		req.Files = s.opts.Project.Files()
		req.HTMLContext = s.opts.Project.HTMLContext()
	}
	items := suggest.Suggest(req)
	s.popup.Show(items)
	if len(items) == 0 {
		s.scheduleCompletionLocked()
	}
}

func (s *Session) scheduleCompletionLocked() {
	if s.opts.Completer == nil || s.opts.ReadOnly || !s.state.Sel.Collapsed() {
		return
	}
	before := s.state.Before()
	if len(strings.TrimSpace(before)) < s.opts.MinCompletionLength {
		return
	}

	s.generation++
	gen := s.generation
	offset := s.state.Sel.Start
	s.completion = s.opts.Scheduler(s.opts.Debounce, func() {
		s.complete(gen, offset, before)
	})
}

// complete asks the completer for text to insert at offset and shows it
// only if nothing happened since the request was scheduled.
func (s *Session) complete(gen uint64, offset int, before string) {
	ctx, cancel := context.WithTimeout(s.baseCtx, s.opts.CompletionTimeout)
	defer cancel()

	text, err := s.opts.Completer.Complete(ctx, before, s.profile.Name)
	if err != nil {
		logger.Debug("completion failed", "session", s.id, "error", err)
		return
	}
	if strings.TrimSpace(text) == "" {
		return
	}

	s.mu.Lock()
	if s.disposed || gen != s.generation || offset != s.state.Sel.Start || !s.state.Sel.Collapsed() {
		s.mu.Unlock()
		logger.Debug("discarding stale completion", "session", s.id, "generation", gen)
		return
	}
	s.completion = nil
	s.popup.Show([]suggest.Suggestion{{
		Label:  completionLabel(text),
		Value:  text,
		Kind:   suggest.KindCompletion,
		Detail: "completion",
	}})
	items := append([]suggest.Suggestion(nil), s.popup.Items...)
	s.mu.Unlock()

	if s.opts.OnSuggestions != nil {
		s.opts.OnSuggestions(items)
	}
}

const labelWidth = 40

// completionLabel is the first non-blank line of text, shortened.
func completionLabel(text string) string {
	label := strings.TrimSpace(text)
	if i := strings.IndexByte(label, '\n'); i >= 0 {
		label = strings.TrimSpace(label[:i]) + " …"
	}
	if utf8.RuneCountInString(label) > labelWidth {
		label = string([]rune(label)[:labelWidth-1]) + "…"
	}
	return label
}

// changeEnd returns the offset in next just past the region that differs
// from prev, where the caret goes after undo or redo.
func changeEnd(prev, next string) int {
	prefix := 0
	for prefix < len(prev) && prefix < len(next) && prev[prefix] == next[prefix] {
		prefix++
	}
	suffix := 0
	for suffix < len(prev)-prefix && suffix < len(next)-prefix &&
		prev[len(prev)-1-suffix] == next[len(next)-1-suffix] {
		suffix++
	}
	return len(next) - suffix
}
