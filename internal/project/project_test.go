package project

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codepad/internal/suggest"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
}

func TestScan(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "index.html", "<div id=\"app\"></div>")
	writeFile(t, root, "css/site.css", "")
	writeFile(t, root, "js/app.js", "")
	writeFile(t, root, ".git/HEAD", "")
	writeFile(t, root, ".env", "")
	writeFile(t, root, "node_modules/x/index.js", "")

	files, err := Scan(root, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"css/site.css", "index.html", "js/app.js"}, files)

	files, err = Scan(root, 2)
	require.NoError(t, err)
	assert.Len(t, files, 2)

	_, err = Scan(filepath.Join(root, "missing"), 0)
	assert.Error(t, err)
}

func TestHTMLContext(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.html", `<p class="lead">`)
	writeFile(t, root, "b.css", `.x {}`)

	html := HTMLContext(root, []string{"a.html", "b.css", "missing.html"})
	assert.Contains(t, html, `class="lead"`)
	assert.NotContains(t, html, ".x")
}

func TestWatcherPicksUpNewFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "index.html", `<main id="root">`)

	changed := make(chan struct{}, 16)
	w, err := Watch(root, 0, func() { changed <- struct{}{} })
	require.NoError(t, err)
	defer w.Close()

	var _ suggest.Project = w
	assert.Equal(t, []string{"index.html"}, w.Files())
	assert.Contains(t, w.HTMLContext(), `id="root"`)

	writeFile(t, root, "img/logo.png", "png")
	assert.Eventually(t, func() bool {
		return len(w.Files()) == 2
	}, 5*time.Second, 20*time.Millisecond)
	assert.Equal(t, []string{"img/logo.png", "index.html"}, w.Files())

	require.NoError(t, os.Remove(filepath.Join(root, "index.html")))
	assert.Eventually(t, func() bool {
		return w.HTMLContext() == ""
	}, 5*time.Second, 20*time.Millisecond)

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
}
