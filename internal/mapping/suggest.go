package mapping

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Divis007/data-mapping/pkg/contracts/domain"
)

// Suggestion thresholds. A name-only match (no row evidence) needs a
// similar header; a deduced transform needs row-wise agreement (see
// acceptMatchRatio) and any positive header signal helps break ties.
const (
	minNameSimilarity = 0.72
	minValueOverlap   = 0.8
	minConfidence     = 0.5
)

// Scoring weights: row evidence dominates, headers break ties.
const (
	weightEvidence = 0.7
	weightName     = 0.3
)

// Engine reverse-engineers mapping rules between two datasets.
type Engine struct {
	logger *slog.Logger
}

// NewEngine creates a suggestion engine.
func NewEngine(logger *slog.Logger) *Engine {
	return &Engine{logger: logger.With(slog.String("component", "mapping_engine"))}
}

// ReverseEngineer proposes a mapping plan from source onto target. For each
// target column it searches the source columns for the pairing whose header
// and row evidence best support a known transform. Target columns with no
// defensible pairing are listed in the plan's Unmatched set.
//
// Row evidence assumes the two files describe the same records in the same
// order, which is the shape of the exports this tool is built around.
func (e *Engine) ReverseEngineer(ctx context.Context, source, target *domain.Dataset) (*domain.MappingPlan, error) {
	if source == nil || target == nil {
		return nil, fmt.Errorf("source and target datasets are required")
	}

	e.logger.InfoContext(ctx, "reverse engineering mapping",
		slog.String("source", source.Name),
		slog.String("target", target.Name),
		slog.Int("source_columns", source.ColumnCount()),
		slog.Int("target_columns", target.ColumnCount()))

	plan := &domain.MappingPlan{
		ID:          uuid.New().String(),
		Source:      source.Name,
		Target:      target.Name,
		GeneratedAt: time.Now().UTC(),
	}

	for _, targetCol := range target.Columns {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rule, ok := e.bestRule(source, target, targetCol)
		if !ok {
			plan.Unmatched = append(plan.Unmatched, targetCol)
			continue
		}
		plan.Rules = append(plan.Rules, rule)
	}

	e.logger.InfoContext(ctx, "mapping plan generated",
		slog.String("plan_id", plan.ID),
		slog.Int("rules", len(plan.Rules)),
		slog.Int("unmatched", len(plan.Unmatched)))

	return plan, nil
}

// bestRule scores every source column against one target column and keeps
// the winner, if it clears the confidence bar.
func (e *Engine) bestRule(source, target *domain.Dataset, targetCol string) (domain.SuggestedRule, bool) {
	targetVals, err := target.ColumnValues(targetCol)
	if err != nil {
		return domain.SuggestedRule{}, false
	}

	var best domain.SuggestedRule
	found := false

	for _, sourceCol := range source.Columns {
		sourceVals, err := source.ColumnValues(sourceCol)
		if err != nil {
			continue
		}

		nameScore := nameSimilarity(sourceCol, targetCol)
		candidate, hasEvidence := deduceTransform(sourceVals, targetVals)
		overlap := valueOverlap(sourceVals, targetVals)

		var rule domain.SuggestedRule
		switch {
		case hasEvidence:
			rule = domain.SuggestedRule{
				MappingRule: domain.MappingRule{
					SourceField: sourceCol,
					TargetField: targetCol,
					Transform:   candidate.Transform,
					Params:      candidate.Params,
				},
				Confidence: weightEvidence*candidate.MatchRatio + weightName*nameScore,
				MatchRatio: candidate.MatchRatio,
				Rationale: fmt.Sprintf("%s matches %.0f%% of rows, header similarity %.2f",
					candidate.Transform, candidate.MatchRatio*100, nameScore),
			}
		case overlap >= minValueOverlap:
			// Rows are not aligned but the values themselves match: a direct
			// copy of reordered data.
			rule = domain.SuggestedRule{
				MappingRule: domain.MappingRule{
					SourceField: sourceCol,
					TargetField: targetCol,
					Transform:   domain.TransformDirect,
				},
				Confidence: weightEvidence*overlap + weightName*nameScore,
				MatchRatio: overlap,
				Rationale: fmt.Sprintf("%.0f%% of target values occur in source, header similarity %.2f",
					overlap*100, nameScore),
			}
		case nameScore >= minNameSimilarity:
			// No row evidence (empty columns, disjoint data): fall back to a
			// direct copy justified by the header alone.
			rule = domain.SuggestedRule{
				MappingRule: domain.MappingRule{
					SourceField: sourceCol,
					TargetField: targetCol,
					Transform:   domain.TransformDirect,
				},
				Confidence: weightName * nameScore,
				Rationale:  fmt.Sprintf("no row evidence, header similarity %.2f", nameScore),
			}
		default:
			continue
		}

		if !found || rule.Confidence > best.Confidence {
			best = rule
			found = true
		}
	}

	if !found || best.Confidence < minConfidence {
		// Header-only fallbacks below the confidence bar are still worth
		// reporting when nothing else matched at all.
		if found && best.MatchRatio == 0 && best.Confidence >= weightName*minNameSimilarity {
			return best, true
		}
		return domain.SuggestedRule{}, false
	}
	return best, true
}
