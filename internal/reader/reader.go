// Package reader loads spreadsheet files (xlsx, csv) into domain datasets.
// Cell values are kept as raw strings; the analyzer interprets types.
package reader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Divis007/data-mapping/pkg/contracts/domain"
)

// Options configures how a file is read.
type Options struct {
	// Sheet selects a worksheet by name; empty means auto-detect.
	Sheet string
	// HeaderRow forces the header row index (0-based); -1 means auto-detect.
	HeaderRow int
}

// DefaultOptions returns reader options with auto-detection enabled.
func DefaultOptions() Options {
	return Options{HeaderRow: -1}
}

// Open reads the file at path into a dataset, dispatching on extension.
func Open(path string) (*domain.Dataset, error) {
	return OpenWithOptions(path, DefaultOptions())
}

// OpenWithOptions reads the file at path using explicit options.
func OpenWithOptions(path string, opts Options) (*domain.Dataset, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return ReadExcel(path, opts)
	case ".csv":
		return ReadCSV(path, opts)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", filepath.Ext(path))
	}
}

// buildDataset assembles a dataset from a header row and the rows below it.
// Ragged rows are padded to the header width; fully empty rows are dropped.
func buildDataset(name string, rows [][]string, headerIdx int) (*domain.Dataset, error) {
	if headerIdx < 0 || headerIdx >= len(rows) {
		return nil, fmt.Errorf("no header row found in %s", name)
	}

	header := make([]string, 0, len(rows[headerIdx]))
	for _, cell := range rows[headerIdx] {
		header = append(header, strings.TrimSpace(cell))
	}
	// Trim trailing unnamed columns.
	for len(header) > 0 && header[len(header)-1] == "" {
		header = header[:len(header)-1]
	}
	if len(header) == 0 {
		return nil, fmt.Errorf("header row in %s is empty", name)
	}

	ds := domain.NewDataset(name, header)
	for _, row := range rows[headerIdx+1:] {
		if isEmptyRow(row) {
			continue
		}
		normalized := make([]string, len(header))
		for i := range header {
			if i < len(row) {
				normalized[i] = strings.TrimSpace(row[i])
			}
		}
		ds.AppendRow(normalized)
	}
	return ds, nil
}

// detectHeaderRow returns the first row where a majority of cells are
// non-empty text, which is how spreadsheet exports typically lay out their
// header above the data block.
func detectHeaderRow(rows [][]string) int {
	for i, row := range rows {
		nonEmpty := 0
		textual := 0
		for _, cell := range row {
			v := strings.TrimSpace(cell)
			if v == "" {
				continue
			}
			nonEmpty++
			if !isNumericCell(v) {
				textual++
			}
		}
		if nonEmpty >= 2 && textual*2 > nonEmpty {
			return i
		}
		// Single-column sheets still need a header.
		if nonEmpty == 1 && len(row) <= 1 && textual == 1 {
			return i
		}
	}
	return -1
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func isNumericCell(v string) bool {
	if v == "" {
		return false
	}
	seenDigit := false
	for _, r := range v {
		switch {
		case r >= '0' && r <= '9':
			seenDigit = true
		case r == '.' || r == ',' || r == '-' || r == '+':
		default:
			return false
		}
	}
	return seenDigit
}
