package operations

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Divis007/data-mapping/internal/analyze"
	"github.com/Divis007/data-mapping/internal/exporter"
	"github.com/Divis007/data-mapping/internal/mapping"
	"github.com/Divis007/data-mapping/internal/reader"
	"github.com/Divis007/data-mapping/internal/transform"
	"github.com/Divis007/data-mapping/pkg/contracts/domain"
)

// AnalyzeStep profiles a spreadsheet and writes the schema report.
type AnalyzeStep struct {
	BaseStep
	analyzer *analyze.Analyzer
	reports  *exporter.ReportWriter
}

// NewAnalyzeStep creates the schema analysis step
func NewAnalyzeStep(analyzer *analyze.Analyzer, reports *exporter.ReportWriter) *AnalyzeStep {
	return &AnalyzeStep{
		BaseStep: NewBaseStep(StepIDAnalyze, StepNameAnalyze),
		analyzer: analyzer,
		reports:  reports,
	}
}

// Validate checks that a source file is configured
func (s *AnalyzeStep) Validate(state *OperationState) error {
	_, err := stringConfig(state, ContextKeySourcePath)
	return err
}

// Execute profiles the source file and stores the report in the state
func (s *AnalyzeStep) Execute(ctx context.Context, state *OperationState) error {
	sourcePath, err := stringConfig(state, ContextKeySourcePath)
	if err != nil {
		return err
	}

	report, err := s.analyzer.AnalyzeFile(ctx, sourcePath)
	if err != nil {
		return fmt.Errorf("analysis of %s failed: %w", sourcePath, err)
	}

	state.SetContext(ContextKeyReport, report)
	state.SetContext(ContextKeyRowCount, report.RowCount)

	if reportPath, err := stringConfig(state, ContextKeyReportPath); err == nil {
		if err := s.reports.WriteAnalysisReport(reportPath, report); err != nil {
			return err
		}
	}

	stepState := state.GetStep(s.ID())
	if stepState != nil {
		stepState.SetMetadata("columns", report.ColumnCount)
		stepState.SetMetadata("rows", report.RowCount)
	}
	return nil
}

// SuggestStep reverse-engineers a mapping plan between two spreadsheets.
type SuggestStep struct {
	BaseStep
	engine  *mapping.Engine
	reports *exporter.ReportWriter
}

// NewSuggestStep creates the mapping suggestion step
func NewSuggestStep(engine *mapping.Engine, reports *exporter.ReportWriter) *SuggestStep {
	return &SuggestStep{
		BaseStep: NewBaseStep(StepIDSuggest, StepNameSuggest),
		engine:   engine,
		reports:  reports,
	}
}

// Validate checks that source and target files are configured
func (s *SuggestStep) Validate(state *OperationState) error {
	if _, err := stringConfig(state, ContextKeySourcePath); err != nil {
		return err
	}
	_, err := stringConfig(state, ContextKeyTargetPath)
	return err
}

// Execute builds the mapping plan and stores it in the state
func (s *SuggestStep) Execute(ctx context.Context, state *OperationState) error {
	sourcePath, err := stringConfig(state, ContextKeySourcePath)
	if err != nil {
		return err
	}
	targetPath, err := stringConfig(state, ContextKeyTargetPath)
	if err != nil {
		return err
	}

	source, err := reader.Open(sourcePath)
	if err != nil {
		return err
	}
	target, err := reader.Open(targetPath)
	if err != nil {
		return err
	}

	plan, err := s.engine.ReverseEngineer(ctx, source, target)
	if err != nil {
		return fmt.Errorf("mapping suggestion failed: %w", err)
	}

	state.SetContext(ContextKeyPlan, plan)

	if planPath, err := stringConfig(state, ContextKeyPlanPath); err == nil {
		if err := s.reports.WriteMappingPlan(planPath, plan); err != nil {
			return err
		}
	}

	stepState := state.GetStep(s.ID())
	if stepState != nil {
		stepState.SetMetadata("rules", len(plan.Rules))
		stepState.SetMetadata("unmatched", len(plan.Unmatched))
	}
	return nil
}

// ApplyStep applies mapping rules to a spreadsheet and writes the result.
type ApplyStep struct {
	BaseStep
	engine *transform.Engine
	csv    *exporter.CSVWriter
	excel  *exporter.ExcelWriter
}

// NewApplyStep creates the transform application step
func NewApplyStep(engine *transform.Engine, csv *exporter.CSVWriter, excel *exporter.ExcelWriter) *ApplyStep {
	return &ApplyStep{
		BaseStep: NewBaseStep(StepIDApply, StepNameApply),
		engine:   engine,
		csv:      csv,
		excel:    excel,
	}
}

// Validate checks that a source file and output destination are configured
func (s *ApplyStep) Validate(state *OperationState) error {
	if _, err := stringConfig(state, ContextKeySourcePath); err != nil {
		return err
	}
	_, err := stringConfig(state, ContextKeyOutputPath)
	return err
}

// Execute transforms the source file with the configured rules. Rules come
// from a rules file when one is configured, otherwise from a mapping plan
// left in the state by a preceding suggest step.
func (s *ApplyStep) Execute(ctx context.Context, state *OperationState) error {
	sourcePath, err := stringConfig(state, ContextKeySourcePath)
	if err != nil {
		return err
	}
	outputPath, err := stringConfig(state, ContextKeyOutputPath)
	if err != nil {
		return err
	}

	rules, err := s.resolveRules(state)
	if err != nil {
		return err
	}

	source, err := reader.Open(sourcePath)
	if err != nil {
		return err
	}

	result, err := s.engine.Apply(ctx, source, rules)
	if err != nil {
		return fmt.Errorf("transform application failed: %w", err)
	}

	switch strings.ToLower(filepath.Ext(outputPath)) {
	case ".xlsx", ".xlsm":
		err = s.excel.WriteDataset(outputPath, result)
	default:
		err = s.csv.WriteDataset(outputPath, result)
	}
	if err != nil {
		return err
	}

	stepState := state.GetStep(s.ID())
	if stepState != nil {
		stepState.SetMetadata("rows", result.RowCount())
		stepState.SetMetadata("output", outputPath)
	}
	return nil
}

func (s *ApplyStep) resolveRules(state *OperationState) ([]domain.MappingRule, error) {
	if rulesPath, err := stringConfig(state, ContextKeyRulesPath); err == nil {
		return transform.LoadRules(rulesPath)
	}

	if val, ok := state.GetContext(ContextKeyPlan); ok {
		if plan, ok := val.(*domain.MappingPlan); ok {
			return plan.MappingRules(), nil
		}
	}
	return nil, fmt.Errorf("no mapping rules available: configure %s or run the suggest step first", ContextKeyRulesPath)
}
