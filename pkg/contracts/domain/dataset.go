package domain

import "fmt"

// Dataset is an in-memory tabular view of a spreadsheet: an ordered header
// row plus row-major cell values. Cells are kept as strings exactly as read;
// type interpretation happens in the analyzer.
type Dataset struct {
	Name       string     `json:"name"`
	SourcePath string     `json:"source_path,omitempty"`
	Sheet      string     `json:"sheet,omitempty"`
	Columns    []string   `json:"columns"`
	Rows       [][]string `json:"rows"`
}

// NewDataset creates a dataset with the given header. Duplicate header names
// are disambiguated with a positional suffix so lookups stay unambiguous.
func NewDataset(name string, columns []string) *Dataset {
	seen := make(map[string]int, len(columns))
	header := make([]string, len(columns))
	for i, col := range columns {
		if n, dup := seen[col]; dup {
			seen[col] = n + 1
			header[i] = fmt.Sprintf("%s_%d", col, n+1)
		} else {
			seen[col] = 1
			header[i] = col
		}
	}
	return &Dataset{
		Name:    name,
		Columns: header,
		Rows:    [][]string{},
	}
}

// ColumnIndex returns the position of the named column, or -1.
func (d *Dataset) ColumnIndex(name string) int {
	for i, col := range d.Columns {
		if col == name {
			return i
		}
	}
	return -1
}

// ColumnValues returns every cell of the named column, one entry per row.
// Rows shorter than the header yield empty strings.
func (d *Dataset) ColumnValues(name string) ([]string, error) {
	idx := d.ColumnIndex(name)
	if idx < 0 {
		return nil, fmt.Errorf("column %q not found in dataset %q", name, d.Name)
	}
	values := make([]string, len(d.Rows))
	for i, row := range d.Rows {
		if idx < len(row) {
			values[i] = row[idx]
		}
	}
	return values, nil
}

// AppendRow adds a row, padding or truncating it to the header width.
func (d *Dataset) AppendRow(row []string) {
	normalized := make([]string, len(d.Columns))
	copy(normalized, row)
	d.Rows = append(d.Rows, normalized)
}

// RowCount returns the number of data rows (header excluded).
func (d *Dataset) RowCount() int {
	return len(d.Rows)
}

// ColumnCount returns the number of columns.
func (d *Dataset) ColumnCount() int {
	return len(d.Columns)
}
