package services

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Divis007/data-mapping/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	base := t.TempDir()
	cfg := &config.Config{}
	cfg.Paths = config.PathsConfig{
		BaseDir:     base,
		InputDir:    filepath.Join(base, "input"),
		OutputDir:   filepath.Join(base, "output"),
		MappingsDir: filepath.Join(base, "mappings"),
		ReportsDir:  filepath.Join(base, "reports"),
		LogsDir:     filepath.Join(base, "logs"),
	}
	require.NoError(t, cfg.Paths.EnsureDirectories())
	return cfg
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestMappingService_SuggestAndApply(t *testing.T) {
	cfg := testConfig(t)
	svc := NewMappingService(cfg, testLogger())

	sourcePath := writeFile(t, cfg.Paths.GetInputPath("legacy.csv"),
		"Cust_NAME,Cust_email\n"+
			"alice johnson,alice@acme.com\n"+
			"bob smith,bob@globex.io\n"+
			"carol white,carol@initech.net\n")
	targetPath := writeFile(t, cfg.Paths.GetInputPath("migrated.csv"),
		"FULL_NAME,username\n"+
			"ALICE JOHNSON,alice\n"+
			"BOB SMITH,bob\n"+
			"CAROL WHITE,carol\n")
	planPath := cfg.Paths.GetMappingPath("plan.yaml")

	plan, err := svc.Suggest(context.Background(), sourcePath, targetPath, planPath)
	require.NoError(t, err)
	require.Len(t, plan.Rules, 2)

	_, statErr := os.Stat(planPath)
	require.NoError(t, statErr)

	outputPath := cfg.Paths.GetOutputPath("result.csv")
	result, err := svc.ApplyRules(context.Background(), sourcePath, plan.MappingRules(), outputPath)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Rows)
	assert.Equal(t, 2, result.Columns)

	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "ALICE JOHNSON")
}

func TestMappingService_ApplyWithRulesFile(t *testing.T) {
	cfg := testConfig(t)
	svc := NewMappingService(cfg, testLogger())

	sourcePath := writeFile(t, cfg.Paths.GetInputPath("in.csv"), "name\nalice\n")
	rulesPath := writeFile(t, cfg.Paths.GetMappingPath("rules.csv"),
		"source_field,target_field,transform_rule\nname,NAME,uppercase\n")
	outputPath := cfg.Paths.GetOutputPath("out.csv")

	result, err := svc.Apply(context.Background(), sourcePath, rulesPath, outputPath)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Rules)

	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "ALICE")
}

func TestMappingService_RejectsBadInputs(t *testing.T) {
	cfg := testConfig(t)
	svc := NewMappingService(cfg, testLogger())

	_, err := svc.Suggest(context.Background(), "missing.csv", "also-missing.csv", "")
	require.ErrorIs(t, err, ErrInvalidInput)

	badRules := writeFile(t, cfg.Paths.GetMappingPath("rules.toml"), "x")
	_, err = svc.Apply(context.Background(), "in.csv", badRules, "out.csv")
	require.ErrorIs(t, err, ErrInvalidInput)

	src := writeFile(t, cfg.Paths.GetInputPath("in.csv"), "name\nalice\n")
	_, err = svc.ApplyRules(context.Background(), src, nil, "")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestAnalysisService_AnalyzeFile(t *testing.T) {
	cfg := testConfig(t)
	svc := NewAnalysisService(cfg, testLogger())

	path := writeFile(t, cfg.Paths.GetInputPath("data.csv"),
		"email,age\nalice@acme.com,28\nbob@globex.io,41\n")
	reportPath := cfg.Paths.GetReportPath("data.json")

	report, err := svc.AnalyzeFile(context.Background(), path, reportPath)
	require.NoError(t, err)
	assert.Equal(t, 2, report.RowCount)
	assert.Equal(t, 2, report.ColumnCount)

	_, statErr := os.Stat(reportPath)
	require.NoError(t, statErr)
}

func TestAnalysisService_ListInputFiles(t *testing.T) {
	cfg := testConfig(t)
	svc := NewAnalysisService(cfg, testLogger())

	writeFile(t, cfg.Paths.GetInputPath("a.csv"), "x\n1\n")
	writeFile(t, cfg.Paths.GetInputPath("b.txt"), "ignored")

	found, err := svc.ListInputFiles(context.Background())
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "a.csv", found[0].Name)
}

func TestAnalysisService_RejectsUnknownFile(t *testing.T) {
	cfg := testConfig(t)
	svc := NewAnalysisService(cfg, testLogger())

	_, err := svc.AnalyzeFile(context.Background(), "missing.csv", "")
	require.ErrorIs(t, err, ErrInvalidInput)
}
