package reader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Divis007/data-mapping/pkg/contracts/domain"
)

// ReadExcel reads an Excel workbook into a dataset. When no sheet is named
// in the options, the first sheet with a detectable header row wins.
func ReadExcel(path string, opts Options) (*domain.Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	sheet, rows, err := selectSheet(f, opts.Sheet)
	if err != nil {
		return nil, err
	}

	headerIdx := opts.HeaderRow
	if headerIdx < 0 {
		headerIdx = detectHeaderRow(rows)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	ds, err := buildDataset(name, rows, headerIdx)
	if err != nil {
		return nil, err
	}
	ds.SourcePath = path
	ds.Sheet = sheet
	return ds, nil
}

// selectSheet returns the rows of the named sheet, or of the first sheet
// that contains a detectable header row when name is empty.
func selectSheet(f *excelize.File, name string) (string, [][]string, error) {
	if name != "" {
		rows, err := f.GetRows(name)
		if err != nil {
			return "", nil, fmt.Errorf("failed to read sheet %q: %w", name, err)
		}
		return name, rows, nil
	}

	sheets := f.GetSheetList()
	for _, sheet := range sheets {
		rows, err := f.GetRows(sheet)
		if err != nil || len(rows) == 0 {
			continue
		}
		if detectHeaderRow(rows) >= 0 {
			return sheet, rows, nil
		}
	}
	return "", nil, fmt.Errorf("no sheet with tabular data found (checked %d sheets)", len(sheets))
}
