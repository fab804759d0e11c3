package reader

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Divis007/data-mapping/pkg/contracts/domain"
)

// utf8BOM is written by Excel when exporting CSV as UTF-8.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadCSV reads a CSV file into a dataset. A UTF-8 BOM is stripped and
// ragged records are tolerated.
func ReadCSV(path string, opts Options) (*domain.Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	br := bufio.NewReader(file)
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && string(prefix) == string(utf8BOM) {
		if _, err := br.Discard(len(utf8BOM)); err != nil {
			return nil, fmt.Errorf("failed to skip BOM: %w", err)
		}
	}

	r := csv.NewReader(br)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
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
	return ds, nil
}
