package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"codepad/internal/logger"
	"codepad/internal/project"
	"codepad/internal/suggest"
)

// Run opens opts.Path in the terminal editor and blocks until it quits. The
// project under opts.Root is watched for path completion.
func Run(opts Options) error {
	text, err := readFile(opts.Path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", opts.Path, err)
	}
	opts.Text = text

	n := &notifier{}
	if opts.Project == nil && opts.Root != "" {
		watcher, err := project.Watch(opts.Root, project.DefaultLimit, func() {
			n.notify(ProjectChangedMsg{})
		})
		if err != nil {
			logger.Warn("project watcher unavailable", "root", opts.Root, "error", err)
			opts.Project = suggest.StaticProject{}
		} else {
			defer watcher.Close()
			opts.Project = watcher
		}
	}

	m := newModel(opts, n)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	n.set(p.Send)

	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		fm.session.Dispose()
	} else {
		m.session.Dispose()
	}
	if err != nil {
		return fmt.Errorf("editor exited: %w", err)
	}
	return nil
}
