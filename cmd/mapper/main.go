package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/Divis007/data-mapping/internal/config"
	"github.com/Divis007/data-mapping/internal/infrastructure"
	"github.com/Divis007/data-mapping/internal/services"
)

func main() {
	in := flag.String("in", "", "source spreadsheet to transform")
	mapping := flag.String("mapping", "", "mapping rules file (.yaml, .json, .csv, or .xlsx)")
	out := flag.String("out", "", "output file, .csv or .xlsx (defaults to mapped_output.csv in the output directory)")
	flag.Parse()

	if *in == "" || *mapping == "" {
		slog.Error("Both -in and -mapping are required")
		flag.Usage()
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

	if *out == "" {
		*out = cfg.Paths.GetOutputPath("mapped_output.csv")
	}

	logger.Info("Applying mapping rules",
		slog.String("source", *in),
		slog.String("mapping", *mapping),
		slog.String("output", *out))

	svc := services.NewMappingService(cfg, logger)
	result, err := svc.Apply(context.Background(), *in, *mapping, *out)
	if err != nil {
		logger.Error("Mapping failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Mapping complete",
		slog.String("output", result.OutputPath),
		slog.Int("rows", result.Rows),
		slog.Int("columns", result.Columns),
		slog.Int("rules", result.Rules))
}
