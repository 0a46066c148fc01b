// Package project lists the files of the open project for path completion
// and collects its markup for selector suggestions.
package project

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"codepad/internal/logger"
)

const (
	// DefaultLimit caps how many files a scan returns.
	DefaultLimit = 5000
	// maxHTMLContext caps the markup collected for selector suggestions.
	maxHTMLContext = 256 << 10
)

var ignoredDirs = map[string]bool{
	"node_modules": true,
	"dist":         true,
	"build":        true,
	"vendor":       true,
}

func ignored(name string) bool {
	return strings.HasPrefix(name, ".") || ignoredDirs[name]
}

// Scan walks root and returns the project-relative, slash separated paths of
// its files, sorted. Hidden entries and dependency/build directories are
// skipped. Unreadable entries are skipped, not reported.
func Scan(root string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	var files []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == root {
				return err
			}
			return nil
		}
		if p == root {
			return nil
		}
		if ignored(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return nil
		}
		files = append(files, filepath.ToSlash(rel))
		if len(files) >= limit {
			return filepath.SkipAll
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// HTMLContext concatenates the .html files among files, read relative to
// root, up to a fixed size.
func HTMLContext(root string, files []string) string {
	var b strings.Builder
	for _, f := range files {
		ext := strings.ToLower(path.Ext(f))
		if ext != ".html" && ext != ".htm" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(f)))
		if err != nil {
			logger.Debug("skipping unreadable markup", "file", f, "error", err)
			continue
		}
		if b.Len()+len(data) > maxHTMLContext {
			break
		}
		b.Write(data)
		b.WriteByte('\n')
	}
	return b.String()
}
