package operations

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Divis007/data-mapping/internal/analyze"
	"github.com/Divis007/data-mapping/internal/config"
	"github.com/Divis007/data-mapping/internal/exporter"
	"github.com/Divis007/data-mapping/internal/mapping"
	"github.com/Divis007/data-mapping/internal/transform"
	"github.com/Divis007/data-mapping/pkg/contracts/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeCSV(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func pipelineManager(t *testing.T) *Manager {
	t.Helper()
	logger := discardLogger()
	reports := exporter.NewReportWriter()

	m := newTestManager(nil)
	require.NoError(t, m.RegisterStep(NewAnalyzeStep(analyze.NewAnalyzer(logger, config.AnalyzeConfig{}), reports)))
	require.NoError(t, m.RegisterStep(NewSuggestStep(mapping.NewEngine(logger), reports)))
	require.NoError(t, m.RegisterStep(NewApplyStep(transform.NewEngine(logger), exporter.NewCSVWriter(nil), exporter.NewExcelWriter())))
	return m
}

func TestPipeline_SuggestThenApply(t *testing.T) {
	dir := t.TempDir()
	sourcePath := writeCSV(t, filepath.Join(dir, "legacy.csv"),
		"Cust_NAME,Cust_email\n"+
			"alice johnson,alice@acme.com\n"+
			"bob smith,bob@globex.io\n"+
			"carol white,carol@initech.net\n")
	targetPath := writeCSV(t, filepath.Join(dir, "migrated.csv"),
		"FULL_NAME,username\n"+
			"ALICE JOHNSON,alice\n"+
			"BOB SMITH,bob\n"+
			"CAROL WHITE,carol\n")

	outputPath := filepath.Join(dir, "result.csv")
	reportPath := filepath.Join(dir, "report.json")
	planPath := filepath.Join(dir, "plan.yaml")

	m := pipelineManager(t)
	resp, err := m.Execute(context.Background(), OperationRequest{
		Parameters: map[string]interface{}{
			ContextKeySourcePath: sourcePath,
			ContextKeyTargetPath: targetPath,
			ContextKeyOutputPath: outputPath,
			ContextKeyReportPath: reportPath,
			ContextKeyPlanPath:   planPath,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, OperationStatusCompleted, resp.Status)

	for _, artifact := range []string{outputPath, reportPath, planPath} {
		_, statErr := os.Stat(artifact)
		assert.NoError(t, statErr, artifact)
	}

	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "ALICE JOHNSON")
	assert.Contains(t, string(data), "alice")
}

func TestApplyStep_WithRulesFile(t *testing.T) {
	dir := t.TempDir()
	sourcePath := writeCSV(t, filepath.Join(dir, "in.csv"),
		"name\nalice\nbob\n")
	rulesPath := writeCSV(t, filepath.Join(dir, "rules.csv"),
		"source_field,target_field,transform_rule\nname,NAME,uppercase\n")
	outputPath := filepath.Join(dir, "out.csv")

	m := newTestManager(nil)
	require.NoError(t, m.RegisterStep(NewApplyStep(
		transform.NewEngine(discardLogger()), exporter.NewCSVWriter(nil), exporter.NewExcelWriter())))

	_, err := m.Execute(context.Background(), OperationRequest{
		Step: StepIDApply,
		Parameters: map[string]interface{}{
			ContextKeySourcePath: sourcePath,
			ContextKeyRulesPath:  rulesPath,
			ContextKeyOutputPath: outputPath,
		},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "ALICE")
}

func TestApplyStep_NoRules(t *testing.T) {
	state := NewOperationState("op")
	state.SetConfig(ContextKeySourcePath, "in.csv")
	state.SetConfig(ContextKeyOutputPath, "out.csv")

	step := NewApplyStep(transform.NewEngine(discardLogger()), exporter.NewCSVWriter(nil), exporter.NewExcelWriter())
	state.SetStep(step.ID(), NewStepState(step.ID(), step.Name()))

	err := step.Execute(context.Background(), state)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no mapping rules")
}

func TestApplyStep_RulesFromPlanContext(t *testing.T) {
	dir := t.TempDir()
	sourcePath := writeCSV(t, filepath.Join(dir, "in.csv"), "name\nalice\n")
	outputPath := filepath.Join(dir, "out.csv")

	state := NewOperationState("op")
	state.SetConfig(ContextKeySourcePath, sourcePath)
	state.SetConfig(ContextKeyOutputPath, outputPath)
	state.SetContext(ContextKeyPlan, &domain.MappingPlan{
		Rules: []domain.SuggestedRule{
			{MappingRule: domain.MappingRule{SourceField: "name", TargetField: "n", Transform: domain.TransformTitlecase}},
		},
	})

	step := NewApplyStep(transform.NewEngine(discardLogger()), exporter.NewCSVWriter(nil), exporter.NewExcelWriter())
	state.SetStep(step.ID(), NewStepState(step.ID(), step.Name()))

	require.NoError(t, step.Execute(context.Background(), state))

	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Alice")
}

func TestAnalyzeStep_ValidateRequiresSource(t *testing.T) {
	step := NewAnalyzeStep(analyze.NewAnalyzer(discardLogger(), config.AnalyzeConfig{}), exporter.NewReportWriter())
	err := step.Validate(NewOperationState("op"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), ContextKeySourcePath)
}
