package reader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// writeExcelFixture creates an xlsx file with the given rows on Sheet1.
func writeExcelFixture(t *testing.T, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	path := filepath.Join(t.TempDir(), "fixture.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReadExcel_Basic(t *testing.T) {
	path := writeExcelFixture(t, [][]interface{}{
		{"Name", "Email", "Age"},
		{"Alice", "alice@example.com", 34},
		{"Bob", "bob@corp.io", 28},
	})

	ds, err := ReadExcel(path, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, "fixture", ds.Name)
	assert.Equal(t, "Sheet1", ds.Sheet)
	assert.Equal(t, []string{"Name", "Email", "Age"}, ds.Columns)
	require.Equal(t, 2, ds.RowCount())
	assert.Equal(t, "alice@example.com", ds.Rows[0][1])
	assert.Equal(t, "28", ds.Rows[1][2])
}

func TestReadExcel_HeaderBelowTitleRows(t *testing.T) {
	path := writeExcelFixture(t, [][]interface{}{
		{"Customer Export 2024"},
		{},
		{"Cust_number", "Cust_NAME", "Cust_email"},
		{"C001", "JOHN DOE", "john@acme.com"},
	})

	ds, err := ReadExcel(path, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, []string{"Cust_number", "Cust_NAME", "Cust_email"}, ds.Columns)
	require.Equal(t, 1, ds.RowCount())
	assert.Equal(t, "JOHN DOE", ds.Rows[0][1])
}

func TestReadExcel_ExplicitSheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	_, err := f.NewSheet("People")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("People", "A1", &[]interface{}{"Id", "Name"}))
	require.NoError(t, f.SetSheetRow("People", "A2", &[]interface{}{"1", "Jane"}))

	path := filepath.Join(t.TempDir(), "multi.xlsx")
	require.NoError(t, f.SaveAs(path))

	opts := DefaultOptions()
	opts.Sheet = "People"
	ds, err := ReadExcel(path, opts)
	require.NoError(t, err)

	assert.Equal(t, "People", ds.Sheet)
	assert.Equal(t, []string{"Id", "Name"}, ds.Columns)
}

func TestReadExcel_MissingSheet(t *testing.T) {
	path := writeExcelFixture(t, [][]interface{}{{"A", "B"}, {"1", "2"}})

	opts := DefaultOptions()
	opts.Sheet = "Nope"
	_, err := ReadExcel(path, opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Nope")
}

func TestReadCSV_Basic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	content := "Name,City\nAlice,Berlin\nBob,Lagos\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	ds, err := ReadCSV(path, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, []string{"Name", "City"}, ds.Columns)
	require.Equal(t, 2, ds.RowCount())
	assert.Equal(t, "Lagos", ds.Rows[1][1])
}

func TestReadCSV_BOMAndRaggedRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bom.csv")
	content := "\xEF\xBB\xBFName,Email,Dept\nAlice,alice@x.com\nBob,bob@x.com,Sales\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	ds, err := ReadCSV(path, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, "Name", ds.Columns[0], "BOM must not leak into the first header")
	require.Equal(t, 2, ds.RowCount())
	assert.Equal(t, "", ds.Rows[0][2], "short rows pad to header width")
	assert.Equal(t, "Sales", ds.Rows[1][2])
}

func TestOpen_DispatchAndErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte("A,B\n1,2\n"), 0644))

	ds, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, 1, ds.RowCount())

	_, err = Open(filepath.Join(t.TempDir(), "notes.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file type")
}

func TestBuildDataset_DuplicateHeaders(t *testing.T) {
	rows := [][]string{
		{"Name", "Name", "Email"},
		{"a", "b", "c"},
	}

	ds, err := buildDataset("dup", rows, 0)
	require.NoError(t, err)

	assert.Equal(t, []string{"Name", "Name_2", "Email"}, ds.Columns)
}

func TestBuildDataset_EmptyRowsDropped(t *testing.T) {
	rows := [][]string{
		{"A", "B"},
		{"1", "2"},
		{"", ""},
		{"3", "4"},
	}

	ds, err := buildDataset("gaps", rows, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, ds.RowCount())
}

func TestDetectHeaderRow_NoHeader(t *testing.T) {
	assert.Equal(t, -1, detectHeaderRow([][]string{{"1", "2"}, {"3", "4"}}))
	assert.Equal(t, -1, detectHeaderRow(nil))
}
