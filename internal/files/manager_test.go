package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Divis007/data-mapping/internal/config"
)

func testManager(t *testing.T) (*Manager, *config.PathsConfig) {
	t.Helper()
	base := t.TempDir()
	paths := &config.PathsConfig{
		BaseDir:     base,
		InputDir:    filepath.Join(base, "input"),
		OutputDir:   filepath.Join(base, "output"),
		MappingsDir: filepath.Join(base, "mappings"),
		ReportsDir:  filepath.Join(base, "reports"),
		LogsDir:     filepath.Join(base, "logs"),
	}
	return NewManager(paths), paths
}

func TestManager_WriteReadFile(t *testing.T) {
	m, paths := testManager(t)

	require.NoError(t, m.WriteFile("output/result.csv", []byte("a,b\n")))
	assert.True(t, m.FileExists("output/result.csv"))

	data, err := m.ReadFile("output/result.csv")
	require.NoError(t, err)
	assert.Equal(t, "a,b\n", string(data))

	// Written through the output prefix, so it lands in OutputDir.
	_, err = os.Stat(paths.GetOutputPath("result.csv"))
	require.NoError(t, err)
}

func TestManager_CopyFile(t *testing.T) {
	m, _ := testManager(t)

	require.NoError(t, m.WriteFile("input/src.csv", []byte("data")))
	require.NoError(t, m.CopyFile("input/src.csv", "output/dst.csv"))

	data, err := m.ReadFile("output/dst.csv")
	require.NoError(t, err)
	assert.Equal(t, "data", string(data))
	assert.True(t, m.FileExists("input/src.csv"))
}

func TestManager_MoveFile(t *testing.T) {
	m, _ := testManager(t)

	require.NoError(t, m.WriteFile("input/src.csv", []byte("data")))
	require.NoError(t, m.MoveFile("input/src.csv", "output/dst.csv"))

	assert.False(t, m.FileExists("input/src.csv"))
	assert.True(t, m.FileExists("output/dst.csv"))
}

func TestManager_DeleteFile(t *testing.T) {
	m, _ := testManager(t)

	require.NoError(t, m.WriteFile("output/tmp.csv", []byte("x")))
	require.NoError(t, m.DeleteFile("output/tmp.csv"))
	assert.False(t, m.FileExists("output/tmp.csv"))
}

func TestManager_GetFileSize(t *testing.T) {
	m, _ := testManager(t)

	require.NoError(t, m.WriteFile("output/sized.csv", []byte("12345")))
	size, err := m.GetFileSize("output/sized.csv")
	require.NoError(t, err)
	assert.Equal(t, int64(5), size)
}

func TestManager_ListFiles(t *testing.T) {
	m, _ := testManager(t)

	require.NoError(t, m.WriteFile("mappings/rules.yaml", []byte("x")))
	require.NoError(t, m.WriteFile("mappings/rules2.yaml", []byte("x")))

	names, err := m.ListFiles("mappings/")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"rules.yaml", "rules2.yaml"}, names)
}

func TestManager_ResolvePath(t *testing.T) {
	m, paths := testManager(t)

	assert.Equal(t, paths.GetInputPath("a.csv"), m.resolvePath("input/a.csv"))
	assert.Equal(t, paths.GetReportPath("r.json"), m.resolvePath("reports/r.json"))
	assert.Equal(t, paths.GetLogPath("app.log"), m.resolvePath("logs/app.log"))
	assert.Equal(t, filepath.Join(paths.BaseDir, "stray.txt"), m.resolvePath("stray.txt"))

	abs := filepath.Join(t.TempDir(), "x")
	assert.Equal(t, abs, m.resolvePath(abs))
}

func TestManager_EnsureDirectory(t *testing.T) {
	m, paths := testManager(t)

	require.NoError(t, m.EnsureDirectory("output/nested/dir"))
	info, err := os.Stat(filepath.Join(paths.OutputDir, "nested", "dir"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
