package files

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "xwstats/internal/errors"
)

func touch(t *testing.T, dir, name string, mod time.Time) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	require.NoError(t, os.Chtimes(path, mod, mod))
	return path
}

func TestFindLatestExport(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()

	touch(t, dir, "old.csv", now.Add(-2*time.Hour))
	want := touch(t, dir, "recent.xlsx", now.Add(-time.Minute))
	touch(t, dir, "older.CSV", now.Add(-time.Hour))
	touch(t, dir, "notes.txt", now) // wrong extension, ignored

	got, err := FindLatestExport(dir)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFindLatestExportNoExports(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "readme.md", time.Now())

	_, err := FindLatestExport(dir)
	require.Error(t, err)
	assert.True(t, apperrors.IsInputNotFound(err))
}

func TestFindLatestExportMissingDirectory(t *testing.T) {
	_, err := FindLatestExport(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.True(t, apperrors.IsInputNotFound(err))
}

func TestListCardDocuments(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	touch(t, dir, "weekly_summary.json", now)
	touch(t, dir, "manifest.json", now)
	touch(t, dir, "summary.json", now)
	touch(t, dir, "leftover.csv", now)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive.json"), 0755))

	names, err := ListCardDocuments(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"manifest.json", "summary.json", "weekly_summary.json"}, names)
}

func TestListCardDocumentsMissingDirectory(t *testing.T) {
	names, err := ListCardDocuments(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err, "missing output directory reads as empty, not an error")
	assert.Empty(t, names)
}
