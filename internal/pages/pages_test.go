package pages

import (
	"os"
	"path/filepath"
	"testing"

	"djsite/internal/nav"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("# page\n"), 0644))
}

func TestScan(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "about.md")
	writeFile(t, root, "booking/press-kit.md")
	writeFile(t, root, "booking/notes.txt")
	writeFile(t, root, ".hidden/skip.md")

	ids, err := Scan(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"about", "booking/press-kit"}, ids)
}

func TestDiff(t *testing.T) {
	manifest := []nav.PageDef{
		{ID: "home", Kind: "home"},
		{ID: "dj/collection", Kind: "dj"},
		{ID: "about"},
		{ID: "booking/press-kit"},
		{ID: "missing-page"},
		{ID: "custom", Path: "elsewhere/custom.md"},
	}
	sources := []string{"about", "booking/press-kit", "orphan"}

	report := Diff(manifest, sources)
	assert.Equal(t, []string{"missing-page"}, report.MissingSources)
	assert.Equal(t, []string{"orphan"}, report.Unlisted)
	assert.False(t, report.Clean())

	clean := Diff(manifest[:4], []string{"about", "booking/press-kit"})
	assert.True(t, clean.Clean())
}
