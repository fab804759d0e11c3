package exporter

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	yaml "gopkg.in/yaml.v2"

	"github.com/Divis007/data-mapping/pkg/contracts/domain"
)

// ReportWriter serializes analysis reports and mapping plans to disk as
// JSON or YAML, chosen by file extension.
type ReportWriter struct{}

// NewReportWriter creates a new report writer instance
func NewReportWriter() *ReportWriter {
	return &ReportWriter{}
}

// WriteAnalysisReport writes a schema analysis report to filePath.
func (w *ReportWriter) WriteAnalysisReport(filePath string, report *domain.AnalysisReport) error {
	if report == nil {
		return fmt.Errorf("report is required")
	}
	return writeDocument(filePath, report)
}

// WriteMappingPlan writes a mapping plan to filePath.
func (w *ReportWriter) WriteMappingPlan(filePath string, plan *domain.MappingPlan) error {
	if plan == nil {
		return fmt.Errorf("plan is required")
	}
	return writeDocument(filePath, plan)
}

func writeDocument(filePath string, doc interface{}) error {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(doc)
	case ".json", "":
		data, err = json.MarshalIndent(doc, "", "  ")
	default:
		return fmt.Errorf("unsupported report format: %s", filepath.Ext(filePath))
	}
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
