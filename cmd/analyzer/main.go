package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Divis007/data-mapping/internal/config"
	"github.com/Divis007/data-mapping/internal/files"
	"github.com/Divis007/data-mapping/internal/infrastructure"
	"github.com/Divis007/data-mapping/internal/services"
)

func main() {
	in := flag.String("in", "", "spreadsheet file or directory to analyze (defaults to the configured input directory)")
	out := flag.String("out", "", "directory for analysis reports (defaults to the configured reports directory)")
	format := flag.String("format", "json", "report format: json or yaml")
	flag.Parse()

	if *format != "json" && *format != "yaml" {
		slog.Error("Invalid report format", "format", *format)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}

	if err := cfg.Paths.EnsureDirectories(); err != nil {
		logger.Error("Failed to create required directories", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if *in == "" {
		*in = cfg.Paths.InputDir
	}
	if *out == "" {
		*out = cfg.Paths.ReportsDir
	}

	targets, err := collectTargets(cfg, *in)
	if err != nil {
		logger.Error("Failed to collect input files", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if len(targets) == 0 {
		logger.Warn("No spreadsheet files found", slog.String("path", *in))
		return
	}

	logger.Info("Starting schema analysis",
		slog.String("input", *in),
		slog.String("output_dir", *out),
		slog.Int("files", len(targets)))

	svc := services.NewAnalysisService(cfg, logger)
	ctx := context.Background()

	failures := 0
	for _, path := range targets {
		reportPath := filepath.Join(*out, reportFileName(path, *format))

		report, err := svc.AnalyzeFile(ctx, path, reportPath)
		if err != nil {
			logger.Error("Analysis failed",
				slog.String("file", path),
				slog.String("error", err.Error()))
			failures++
			continue
		}

		logger.Info("File analyzed",
			slog.String("file", path),
			slog.String("report", reportPath),
			slog.Int("rows", report.RowCount),
			slog.Int("columns", len(report.Columns)))
	}

	if failures > 0 {
		logger.Error("Analysis finished with failures",
			slog.Int("failed", failures),
			slog.Int("total", len(targets)))
		os.Exit(1)
	}

	logger.Info("Analysis complete", slog.Int("files", len(targets)))
}

// collectTargets resolves the -in flag to a list of spreadsheet files.
func collectTargets(cfg *config.Config, in string) ([]string, error) {
	info, err := os.Stat(in)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		return []string{in}, nil
	}

	discovery := files.NewDiscovery(cfg.Paths.BaseDir)
	found, err := discovery.FindSpreadsheetFiles(in)
	if err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(found))
	for _, f := range found {
		paths = append(paths, f.Path)
	}
	return paths, nil
}

// reportFileName derives the report file name from the source file name,
// e.g. customers.csv becomes customers_analysis.json.
func reportFileName(sourcePath, format string) string {
	base := filepath.Base(sourcePath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return fmt.Sprintf("%s_analysis.%s", stem, format)
}
