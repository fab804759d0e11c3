package transform

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Divis007/data-mapping/pkg/contracts/domain"
)

// Engine applies mapping rules to datasets.
type Engine struct {
	logger *slog.Logger
}

// NewEngine creates a transform engine.
func NewEngine(logger *slog.Logger) *Engine {
	return &Engine{logger: logger.With(slog.String("component", "transform_engine"))}
}

// Apply builds the output dataset described by the rules: one target column
// per rule, in rule order, each cell produced by running the rule's
// transform over the source column. A rule naming a missing source column
// or an unknown transform fails the whole run.
func (e *Engine) Apply(ctx context.Context, ds *domain.Dataset, rules []domain.MappingRule) (*domain.Dataset, error) {
	if ds == nil {
		return nil, fmt.Errorf("dataset is nil")
	}
	if len(rules) == 0 {
		return nil, fmt.Errorf("mapping has no rules")
	}

	e.logger.InfoContext(ctx, "applying mapping",
		slog.String("dataset", ds.Name),
		slog.Int("rules", len(rules)),
		slog.Int("rows", ds.RowCount()))

	targets := make([]string, 0, len(rules))
	columns := make([][]string, 0, len(rules))

	for _, rule := range rules {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		fn, err := Get(rule.Transform)
		if err != nil {
			return nil, fmt.Errorf("rule %s -> %s: %w", rule.SourceField, rule.TargetField, err)
		}

		values, err := ds.ColumnValues(rule.SourceField)
		if err != nil {
			return nil, fmt.Errorf("rule %s -> %s: %w", rule.SourceField, rule.TargetField, err)
		}

		out := make([]string, len(values))
		for i, v := range values {
			transformed, err := fn(v, rule.Params)
			if err != nil {
				return nil, fmt.Errorf("rule %s -> %s, row %d: %w", rule.SourceField, rule.TargetField, i+1, err)
			}
			out[i] = transformed
		}

		targets = append(targets, rule.TargetField)
		columns = append(columns, out)
	}

	result := domain.NewDataset(ds.Name+"_mapped", targets)
	for row := 0; row < ds.RowCount(); row++ {
		cells := make([]string, len(columns))
		for col := range columns {
			cells[col] = columns[col][row]
		}
		result.AppendRow(cells)
	}

	e.logger.InfoContext(ctx, "mapping applied",
		slog.Int("output_columns", result.ColumnCount()),
		slog.Int("output_rows", result.RowCount()))

	return result, nil
}
