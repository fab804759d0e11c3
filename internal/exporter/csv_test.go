package exporter

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Divis007/data-mapping/internal/config"
	"github.com/Divis007/data-mapping/pkg/contracts/domain"
)

func testPaths(t *testing.T) *config.PathsConfig {
	t.Helper()
	base := t.TempDir()
	return &config.PathsConfig{
		BaseDir:     base,
		OutputDir:   filepath.Join(base, "output"),
		MappingsDir: filepath.Join(base, "mappings"),
	}
}

func readCSVFile(t *testing.T, path string) [][]string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	// UTF-8 BOM expected for Excel compatibility.
	require.True(t, bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}), "missing BOM")

	records, err := csv.NewReader(bytes.NewReader(data[3:])).ReadAll()
	require.NoError(t, err)
	return records
}

func TestCSVWriter_WriteDataset(t *testing.T) {
	paths := testPaths(t)
	writer := NewCSVWriter(paths)

	ds := domain.NewDataset("customers", []string{"name", "email"})
	ds.AppendRow([]string{"alice", "alice@acme.com"})
	ds.AppendRow([]string{"bob", "bob@globex.io"})

	require.NoError(t, writer.WriteDataset("customers.csv", ds))

	records := readCSVFile(t, paths.GetOutputPath("customers.csv"))
	require.Len(t, records, 3)
	assert.Equal(t, []string{"name", "email"}, records[0])
	assert.Equal(t, []string{"alice", "alice@acme.com"}, records[1])
	assert.Equal(t, []string{"bob", "bob@globex.io"}, records[2])
}

func TestCSVWriter_WriteDataset_Nil(t *testing.T) {
	require.Error(t, NewCSVWriter(testPaths(t)).WriteDataset("x.csv", nil))
}

func TestCSVWriter_Append(t *testing.T) {
	paths := testPaths(t)
	writer := NewCSVWriter(paths)

	require.NoError(t, writer.WriteCSV("log.csv", WriteOptions{
		Headers:   []string{"a", "b"},
		Records:   [][]string{{"1", "2"}},
		BOMPrefix: true,
	}))
	require.NoError(t, writer.AppendToCSV("log.csv", [][]string{{"3", "4"}}))

	records := readCSVFile(t, paths.GetOutputPath("log.csv"))
	require.Len(t, records, 3)
	assert.Equal(t, []string{"3", "4"}, records[2])
}

func TestCSVWriter_ResolvePath(t *testing.T) {
	paths := testPaths(t)
	writer := NewCSVWriter(paths)

	assert.Equal(t, paths.GetOutputPath("out.csv"), writer.resolvePath("out.csv"))
	assert.Equal(t, paths.GetMappingPath("rules.csv"), writer.resolvePath("mappings/rules.csv"))

	abs := filepath.Join(t.TempDir(), "x.csv")
	assert.Equal(t, abs, writer.resolvePath(abs))
}

func TestStreamWriter(t *testing.T) {
	paths := testPaths(t)
	writer := NewCSVWriter(paths)

	sw, err := writer.CreateStreamWriter("stream.csv", []string{"id", "value"})
	require.NoError(t, err)

	require.NoError(t, sw.WriteRecord([]string{"1", "alpha"}))
	require.NoError(t, sw.WriteRecord([]string{"2", "beta"}))
	require.NoError(t, sw.Close())

	records := readCSVFile(t, paths.GetOutputPath("stream.csv"))
	require.Len(t, records, 3)
	assert.Equal(t, []string{"2", "beta"}, records[2])
}
