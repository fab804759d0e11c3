package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Divis007/data-mapping/internal/analyze"
	"github.com/Divis007/data-mapping/internal/config"
	"github.com/Divis007/data-mapping/internal/exporter"
	"github.com/Divis007/data-mapping/internal/files"
	"github.com/Divis007/data-mapping/internal/validation"
	"github.com/Divis007/data-mapping/pkg/contracts/domain"
)

// AnalysisService profiles spreadsheet files and manages their reports.
type AnalysisService struct {
	analyzer  *analyze.Analyzer
	reports   *exporter.ReportWriter
	validator *validation.FileValidator
	discovery *files.Discovery
	paths     *config.PathsConfig
	logger    *slog.Logger
}

// NewAnalysisService creates a new analysis service with injected dependencies
func NewAnalysisService(cfg *config.Config, logger *slog.Logger) *AnalysisService {
	if logger == nil {
		logger = slog.Default()
	}

	return &AnalysisService{
		analyzer:  analyze.NewAnalyzer(logger, cfg.Analyze),
		reports:   exporter.NewReportWriter(),
		validator: validation.NewFileValidator(logger),
		discovery: files.NewDiscovery(cfg.Paths.BaseDir),
		paths:     &cfg.Paths,
		logger:    logger.With(slog.String("service", "analysis")),
	}
}

// AnalyzeFile profiles a spreadsheet and returns its schema report. When
// reportPath is non-empty the report is also written to disk.
func (s *AnalysisService) AnalyzeFile(ctx context.Context, path, reportPath string) (*domain.AnalysisReport, error) {
	if err := s.validator.ValidateSpreadsheetFile(path); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	report, err := s.analyzer.AnalyzeFile(ctx, path)
	if err != nil {
		return nil, err
	}

	if reportPath != "" {
		if err := s.reports.WriteAnalysisReport(reportPath, report); err != nil {
			return nil, err
		}
		s.logger.InfoContext(ctx, "analysis report written",
			slog.String("report_path", reportPath))
	}

	return report, nil
}

// ListInputFiles returns the spreadsheet files waiting in the input
// directory, oldest first.
func (s *AnalysisService) ListInputFiles(ctx context.Context) ([]files.FileInfo, error) {
	found, err := s.discovery.FindSpreadsheetFiles(s.paths.InputDir)
	if err != nil {
		return nil, err
	}

	s.logger.DebugContext(ctx, "input files listed",
		slog.Int("count", len(found)))
	return found, nil
}
