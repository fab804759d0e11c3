package analyze

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Divis007/data-mapping/internal/config"
	"github.com/Divis007/data-mapping/internal/reader"
	"github.com/Divis007/data-mapping/pkg/contracts/domain"
)

// Categorical detection bounds: a column is categorical when its distinct
// non-empty values are few relative to the row count.
const (
	categoricalMaxDistinctRatio = 0.1
	categoricalMaxDistinct      = 12
	categoricalMinRows          = 24
	maxCategories               = 24
)

// Analyzer infers column types and value patterns from datasets.
type Analyzer struct {
	logger *slog.Logger
	cfg    config.AnalyzeConfig
}

// NewAnalyzer creates an analyzer with the given tuning configuration.
func NewAnalyzer(logger *slog.Logger, cfg config.AnalyzeConfig) *Analyzer {
	if cfg.MaxSampleValues <= 0 {
		cfg.MaxSampleValues = 5
	}
	if cfg.TypeVoteThreshold <= 0 || cfg.TypeVoteThreshold > 1 {
		cfg.TypeVoteThreshold = 0.95
	}
	if cfg.ColumnWorkers < 1 {
		cfg.ColumnWorkers = 4
	}
	return &Analyzer{
		logger: logger.With(slog.String("component", "analyzer")),
		cfg:    cfg,
	}
}

// AnalyzeFile reads the spreadsheet at path and analyzes it.
func (a *Analyzer) AnalyzeFile(ctx context.Context, path string) (*domain.AnalysisReport, error) {
	ds, err := reader.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return a.AnalyzeDataset(ctx, ds)
}

// AnalyzeDataset profiles every column of the dataset. Columns are profiled
// concurrently with a bounded worker count; profile order matches column
// order regardless of completion order.
func (a *Analyzer) AnalyzeDataset(ctx context.Context, ds *domain.Dataset) (*domain.AnalysisReport, error) {
	if ds == nil {
		return nil, fmt.Errorf("dataset is nil")
	}

	a.logger.InfoContext(ctx, "analyzing dataset",
		slog.String("dataset", ds.Name),
		slog.Int("rows", ds.RowCount()),
		slog.Int("columns", ds.ColumnCount()))

	profiles := make([]domain.ColumnProfile, ds.ColumnCount())

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.cfg.ColumnWorkers)

	for i, col := range ds.Columns {
		i, col := i, col
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			values, err := ds.ColumnValues(col)
			if err != nil {
				return err
			}
			profiles[i] = a.profileColumn(col, i, values)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("column analysis failed: %w", err)
	}

	return &domain.AnalysisReport{
		ID:          uuid.New().String(),
		Dataset:     ds.Name,
		SourcePath:  ds.SourcePath,
		RowCount:    ds.RowCount(),
		ColumnCount: ds.ColumnCount(),
		Columns:     profiles,
		GeneratedAt: time.Now().UTC(),
	}, nil
}

// profileColumn infers the type and patterns of one column by voting over
// its non-empty values.
func (a *Analyzer) profileColumn(name string, position int, values []string) domain.ColumnProfile {
	profile := domain.ColumnProfile{
		Name:     name,
		Position: position,
		Type:     domain.TypeString,
		Case:     domain.CaseNone,
	}

	var nonEmpty []string
	distinct := make(map[string]struct{})
	for _, v := range values {
		if v == "" {
			continue
		}
		nonEmpty = append(nonEmpty, v)
		distinct[v] = struct{}{}
	}

	if len(values) > 0 {
		profile.NullRatio = float64(len(values)-len(nonEmpty)) / float64(len(values))
	}
	profile.DistinctCount = len(distinct)

	if len(nonEmpty) == 0 {
		profile.Type = domain.TypeEmpty
		return profile
	}

	votes := countVotes(nonEmpty)
	threshold := a.cfg.TypeVoteThreshold
	profile.Type = votes.decide(len(nonEmpty), threshold)

	if profile.Type == domain.TypeDate {
		profile.DateLayout = votes.dominantLayout()
	}

	profile.Patterns = votes.patterns(len(nonEmpty), threshold)
	if profile.Type == domain.TypeString || profile.Type == domain.TypeEmail {
		profile.Case = DominantCase(nonEmpty)
	}

	profile.Categorical = isCategorical(len(nonEmpty), len(distinct))
	if profile.Categorical && len(distinct) <= maxCategories {
		profile.Categories = sortedKeys(distinct)
	}

	profile.Samples = sampleValues(nonEmpty, a.cfg.MaxSampleValues)
	return profile
}

// typeVotes accumulates parse results over a column's non-empty values.
type typeVotes struct {
	integer, float, boolean, email, uuid, phone, grouped int
	dates                                                int
	layoutVotes                                          map[string]int
}

func countVotes(values []string) typeVotes {
	v := typeVotes{layoutVotes: map[string]int{}}
	for _, s := range values {
		if IsBoolean(s) {
			v.boolean++
		}
		if IsInteger(s) {
			v.integer++
		}
		if IsFloat(s) {
			v.float++
		}
		if IsEmail(s) {
			v.email++
		}
		if IsUUID(s) {
			v.uuid++
		}
		if IsPhone(s) {
			v.phone++
		}
		if HasGroupSeparators(s) {
			v.grouped++
		}
		if layout := DateLayout(s); layout != "" {
			v.dates++
			v.layoutVotes[layout]++
		}
	}
	return v
}

// decide picks the column type whose vote share clears the threshold.
// Precedence runs from the most specific interpretation to the least.
func (v typeVotes) decide(total int, threshold float64) domain.TypeKind {
	clears := func(count int) bool {
		return float64(count)/float64(total) >= threshold
	}
	switch {
	case clears(v.boolean):
		return domain.TypeBoolean
	case clears(v.dates):
		return domain.TypeDate
	case clears(v.integer):
		return domain.TypeInteger
	case clears(v.float):
		return domain.TypeFloat
	case clears(v.email):
		return domain.TypeEmail
	default:
		return domain.TypeString
	}
}

func (v typeVotes) patterns(total int, threshold float64) []domain.PatternKind {
	clears := func(count int) bool {
		return float64(count)/float64(total) >= threshold
	}
	var patterns []domain.PatternKind
	if clears(v.email) {
		patterns = append(patterns, domain.PatternEmail)
	}
	if clears(v.dates) {
		patterns = append(patterns, domain.PatternDate)
	}
	if clears(v.uuid) {
		patterns = append(patterns, domain.PatternUUID)
	}
	// Dates and plain numbers are digit-heavy enough to pass the phone shape
	// check, so the phone pattern only stands when neither interpretation
	// holds for the column.
	if clears(v.phone) && !clears(v.dates) && !clears(v.float) {
		patterns = append(patterns, domain.PatternPhone)
	}
	if clears(v.grouped) {
		patterns = append(patterns, domain.PatternNumericText)
	}
	return patterns
}

func (v typeVotes) dominantLayout() string {
	best, bestCount := "", 0
	for layout, count := range v.layoutVotes {
		if count > bestCount {
			best, bestCount = layout, count
		}
	}
	return best
}

func isCategorical(nonEmpty, distinct int) bool {
	if nonEmpty == 0 || distinct == 0 {
		return false
	}
	if float64(distinct)/float64(nonEmpty) <= categoricalMaxDistinctRatio {
		return true
	}
	return distinct <= categoricalMaxDistinct && nonEmpty >= categoricalMinRows
}

// sampleValues returns up to max distinct values in first-seen order.
func sampleValues(values []string, max int) []string {
	seen := make(map[string]struct{}, max)
	var samples []string
	for _, v := range values {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		samples = append(samples, v)
		if len(samples) >= max {
			break
		}
	}
	return samples
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
