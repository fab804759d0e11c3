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
	source := flag.String("source", "", "source spreadsheet (the data to be mapped)")
	target := flag.String("target", "", "target spreadsheet (the desired shape)")
	out := flag.String("out", "", "mapping plan output file, .yaml or .json (defaults to mapping_plan.yaml in the mappings directory)")
	flag.Parse()

	if *source == "" || *target == "" {
		slog.Error("Both -source and -target are required")
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
		*out = cfg.Paths.GetMappingPath("mapping_plan.yaml")
	}

	logger.Info("Reverse-engineering mapping rules",
		slog.String("source", *source),
		slog.String("target", *target),
		slog.String("plan", *out))

	svc := services.NewMappingService(cfg, logger)
	plan, err := svc.Suggest(context.Background(), *source, *target, *out)
	if err != nil {
		logger.Error("Suggestion failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	for _, rule := range plan.Rules {
		logger.Info("Rule suggested",
			slog.String("source_field", rule.SourceField),
			slog.String("target_field", rule.TargetField),
			slog.String("transform", rule.Transform),
			slog.Float64("confidence", rule.Confidence))
	}
	for _, col := range plan.Unmatched {
		logger.Warn("No rule found for target column", slog.String("column", col))
	}

	logger.Info("Mapping plan written",
		slog.String("plan", *out),
		slog.Int("rules", len(plan.Rules)),
		slog.Int("unmatched", len(plan.Unmatched)))
}
