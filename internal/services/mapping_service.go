package services

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/Divis007/data-mapping/internal/config"
	"github.com/Divis007/data-mapping/internal/exporter"
	"github.com/Divis007/data-mapping/internal/mapping"
	"github.com/Divis007/data-mapping/internal/reader"
	"github.com/Divis007/data-mapping/internal/transform"
	"github.com/Divis007/data-mapping/internal/validation"
	"github.com/Divis007/data-mapping/pkg/contracts/domain"
)

// MappingService reverse-engineers mapping plans and applies mapping rules
// to spreadsheet files.
type MappingService struct {
	suggester *mapping.Engine
	applier   *transform.Engine
	csv       *exporter.CSVWriter
	excel     *exporter.ExcelWriter
	reports   *exporter.ReportWriter
	validator *validation.FileValidator
	logger    *slog.Logger
}

// ApplyResult summarizes a completed transform application.
type ApplyResult struct {
	OutputPath string `json:"output_path"`
	Rows       int    `json:"rows"`
	Columns    int    `json:"columns"`
	Rules      int    `json:"rules"`
}

// NewMappingService creates a new mapping service with injected dependencies
func NewMappingService(cfg *config.Config, logger *slog.Logger) *MappingService {
	if logger == nil {
		logger = slog.Default()
	}

	return &MappingService{
		suggester: mapping.NewEngine(logger),
		applier:   transform.NewEngine(logger),
		csv:       exporter.NewCSVWriter(&cfg.Paths),
		excel:     exporter.NewExcelWriter(),
		reports:   exporter.NewReportWriter(),
		validator: validation.NewFileValidator(logger),
		logger:    logger.With(slog.String("service", "mapping")),
	}
}

// Suggest reverse-engineers a mapping plan from a source and a target file.
// When planPath is non-empty the plan is also written to disk.
func (s *MappingService) Suggest(ctx context.Context, sourcePath, targetPath, planPath string) (*domain.MappingPlan, error) {
	if err := s.validator.ValidateSpreadsheetFile(sourcePath); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}
	if err := s.validator.ValidateSpreadsheetFile(targetPath); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	source, err := reader.Open(sourcePath)
	if err != nil {
		return nil, err
	}
	target, err := reader.Open(targetPath)
	if err != nil {
		return nil, err
	}

	plan, err := s.suggester.ReverseEngineer(ctx, source, target)
	if err != nil {
		return nil, err
	}

	if planPath != "" {
		if err := s.reports.WriteMappingPlan(planPath, plan); err != nil {
			return nil, err
		}
		s.logger.InfoContext(ctx, "mapping plan written",
			slog.String("plan_path", planPath),
			slog.Int("rules", len(plan.Rules)))
	}

	return plan, nil
}

// Apply loads mapping rules from rulesPath, applies them to the source file
// and writes the transformed dataset to outputPath. The output format
// follows the output extension, xlsx or csv.
func (s *MappingService) Apply(ctx context.Context, sourcePath, rulesPath, outputPath string) (*ApplyResult, error) {
	if err := s.validator.ValidateMappingFile(rulesPath); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	rules, err := transform.LoadRules(rulesPath)
	if err != nil {
		return nil, err
	}

	return s.ApplyRules(ctx, sourcePath, rules, outputPath)
}

// ApplyRules applies the given rules to the source file and writes the
// transformed dataset to outputPath.
func (s *MappingService) ApplyRules(ctx context.Context, sourcePath string, rules []domain.MappingRule, outputPath string) (*ApplyResult, error) {
	if err := s.validator.ValidateSpreadsheetFile(sourcePath); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}
	if outputPath == "" {
		return nil, fmt.Errorf("%w: output path is required", ErrInvalidInput)
	}

	source, err := reader.Open(sourcePath)
	if err != nil {
		return nil, err
	}

	result, err := s.applier.Apply(ctx, source, rules)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(outputPath)) {
	case ".xlsx", ".xlsm":
		err = s.excel.WriteDataset(outputPath, result)
	default:
		err = s.csv.WriteDataset(outputPath, result)
	}
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "transform applied",
		slog.String("source", sourcePath),
		slog.String("output", outputPath),
		slog.Int("rows", result.RowCount()),
		slog.Int("rules", len(rules)))

	return &ApplyResult{
		OutputPath: outputPath,
		Rows:       result.RowCount(),
		Columns:    result.ColumnCount(),
		Rules:      len(rules),
	}, nil
}
