package files

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}
}

func TestDiscovery_FindSpreadsheetFiles(t *testing.T) {
	base := t.TempDir()
	inputDir := filepath.Join(base, "input")
	require.NoError(t, os.MkdirAll(inputDir, 0755))
	writeFiles(t, inputDir, "customers.xlsx", "orders.CSV", "macro.xlsm", "notes.txt")
	require.NoError(t, os.MkdirAll(filepath.Join(inputDir, "sub.xlsx"), 0755))

	found, err := NewDiscovery(base).FindSpreadsheetFiles("input")
	require.NoError(t, err)

	names := make([]string, 0, len(found))
	for _, f := range found {
		names = append(names, f.Name)
		assert.False(t, f.IsDir)
	}
	assert.ElementsMatch(t, []string{"customers.xlsx", "orders.CSV", "macro.xlsm"}, names)
}

func TestDiscovery_FindCSVFiles(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.csv", "b.xlsx")

	found, err := NewDiscovery("").FindCSVFiles(dir)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "a.csv", found[0].Name)
}

func TestDiscovery_FindFilesByPattern(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "export_2024.csv", "export_2025.csv", "other.csv")

	found, err := NewDiscovery("").FindFilesByPattern(dir, "export_*.csv")
	require.NoError(t, err)
	assert.Len(t, found, 2)
}

func TestDiscovery_MissingDirectory(t *testing.T) {
	_, err := NewDiscovery(t.TempDir()).FindSpreadsheetFiles("does-not-exist")
	require.Error(t, err)
}

func TestDiscovery_ListDirectories(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(base, "input"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(base, "output"), 0755))
	writeFiles(t, base, "stray.csv")

	dirs, err := NewDiscovery("").ListDirectories(base)
	require.NoError(t, err)

	names := make([]string, 0, len(dirs))
	for _, d := range dirs {
		names = append(names, d.Name)
		assert.True(t, d.IsDir)
	}
	assert.ElementsMatch(t, []string{"input", "output"}, names)
}

func TestGetLatestFile(t *testing.T) {
	now := time.Now()
	files := []FileInfo{
		{Name: "old.csv", ModTime: now.Add(-2 * time.Hour)},
		{Name: "new.csv", ModTime: now},
		{Name: "mid.csv", ModTime: now.Add(-time.Hour)},
	}

	latest, ok := GetLatestFile(files)
	require.True(t, ok)
	assert.Equal(t, "new.csv", latest.Name)

	_, ok = GetLatestFile(nil)
	assert.False(t, ok)
}

func TestFilterFilesByDateRange(t *testing.T) {
	now := time.Now()
	files := []FileInfo{
		{Name: "a", ModTime: now.Add(-3 * time.Hour)},
		{Name: "b", ModTime: now.Add(-time.Hour)},
	}

	filtered := FilterFilesByDateRange(files, now.Add(-2*time.Hour), now)
	require.Len(t, filtered, 1)
	assert.Equal(t, "b", filtered[0].Name)
}
