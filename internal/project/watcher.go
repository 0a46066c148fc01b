package project

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"codepad/internal/logger"
)

const settleDelay = 100 * time.Millisecond

// Watcher keeps a scan of root current as files come and go. It satisfies
// suggest.Project.
type Watcher struct {
	root     string
	limit    int
	onChange func()

	mu    sync.RWMutex
	files []string
	html  string

	fs   *fsnotify.Watcher
	done chan struct{}
	wg   sync.WaitGroup
	once sync.Once
}

// Watch scans root and starts watching it. onChange, if set, runs on the
// watcher goroutine after each rescan.
func Watch(root string, limit int, onChange func()) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	w := &Watcher{
		root:     root,
		limit:    limit,
		onChange: onChange,
		fs:       fw,
		done:     make(chan struct{}),
	}
	if err := w.rescan(); err != nil {
		fw.Close()
		return nil, err
	}
	w.addDirs(root)

	w.wg.Add(1)
	go w.loop()
	return w, nil
}

func (w *Watcher) Files() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.files
}

func (w *Watcher) HTMLContext() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.html
}

// Close stops watching. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fs.Close()
		w.wg.Wait()
	})
	return err
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	settle := time.NewTimer(settleDelay)
	settle.Stop()
	var created []string

	for {
		select {
		case <-w.done:
			settle.Stop()
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if ignored(filepath.Base(ev.Name)) {
				continue
			}
			if ev.Op&fsnotify.Create != 0 {
				created = append(created, ev.Name)
			}
			settle.Reset(settleDelay)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			logger.Warn("file watcher error", "root", w.root, "error", err)
		case <-settle.C:
			for _, p := range created {
				w.addDirs(p)
			}
			created = nil
			if err := w.rescan(); err != nil {
				logger.Warn("project rescan failed", "root", w.root, "error", err)
				continue
			}
			if w.onChange != nil {
				w.onChange()
			}
		}
	}
}

func (w *Watcher) rescan() error {
	files, err := Scan(w.root, w.limit)
	if err != nil {
		return fmt.Errorf("failed to scan %s: %w", w.root, err)
	}
	html := HTMLContext(w.root, files)

	w.mu.Lock()
	w.files = files
	w.html = html
	w.mu.Unlock()
	logger.Debug("project scanned", "root", w.root, "files", len(files))
	return nil
}

// addDirs watches root and every directory below it that is not ignored.
// Non-directories are ignored.
func (w *Watcher) addDirs(root string) {
	_ = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if p != w.root && ignored(d.Name()) {
			return filepath.SkipDir
		}
		if err := w.fs.Add(p); err != nil {
			logger.Debug("cannot watch directory", "dir", p, "error", err)
		}
		return nil
	})
}
