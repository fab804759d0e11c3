package mapping

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/Divis007/data-mapping/internal/transform"
	"github.com/Divis007/data-mapping/pkg/contracts/domain"
)

// acceptMatchRatio is the minimum row-wise agreement for a deduced transform
// to be trusted.
const acceptMatchRatio = 0.9

// candidateTransforms are tried in order when deducing how a source column
// becomes a target column; the first rule is preferred on ties so a plain
// copy beats an equivalent rewording.
var candidateTransforms = []string{
	domain.TransformDirect,
	domain.TransformTrim,
	domain.TransformUppercase,
	domain.TransformLowercase,
	domain.TransformTitlecase,
	domain.TransformFirstLetter,
	domain.TransformBeforeAt,
	domain.TransformExtractDomain,
}

// deduction is a transform hypothesis scored against paired values.
type deduction struct {
	Transform  string
	Params     map[string]string
	MatchRatio float64
}

// deduceTransform finds the transform that best explains how source values
// become target values, pairing rows by position. Returns ok=false when no
// hypothesis clears the acceptance ratio or there is nothing to compare.
func deduceTransform(source, target []string) (deduction, bool) {
	pairs := pairedValues(source, target)
	if len(pairs) == 0 {
		return deduction{}, false
	}

	best := deduction{MatchRatio: -1}
	for _, name := range candidateTransforms {
		ratio := scoreTransform(name, nil, pairs)
		if ratio > best.MatchRatio {
			best = deduction{Transform: name, MatchRatio: ratio}
		}
	}

	// A shared-prefix hypothesis: every target value is the first n runes of
	// its source value, for a constant n learned from the data.
	if d, ok := deducePrefix(pairs); ok && d.MatchRatio > best.MatchRatio {
		best = d
	}

	// A learned bucketing: numeric source values mapping onto a small label
	// vocabulary, as in age -> Young/Middle/Senior.
	if d, ok := deduceBucket(pairs); ok && d.MatchRatio > best.MatchRatio {
		best = d
	}

	if best.MatchRatio < acceptMatchRatio {
		return deduction{}, false
	}
	return best, true
}

type valuePair struct {
	src, tgt string
}

func pairedValues(source, target []string) []valuePair {
	n := len(source)
	if len(target) < n {
		n = len(target)
	}
	var pairs []valuePair
	for i := 0; i < n; i++ {
		if source[i] == "" || target[i] == "" {
			continue
		}
		pairs = append(pairs, valuePair{src: source[i], tgt: target[i]})
	}
	return pairs
}

// scoreTransform runs a registered transform over the pairs and returns the
// fraction of rows where the output equals the target value.
func scoreTransform(name string, params map[string]string, pairs []valuePair) float64 {
	fn, err := transform.Get(name)
	if err != nil {
		return 0
	}
	hits := 0
	for _, p := range pairs {
		out, err := fn(p.src, params)
		if err != nil {
			continue
		}
		if out == p.tgt {
			hits++
		}
	}
	return float64(hits) / float64(len(pairs))
}

// deducePrefix checks whether the target is a fixed-length prefix of the
// source. The length hypothesis comes from the first pair.
func deducePrefix(pairs []valuePair) (deduction, bool) {
	n := len([]rune(pairs[0].tgt))
	if n == 0 || n >= len([]rune(pairs[0].src)) {
		return deduction{}, false
	}
	params := map[string]string{"length": strconv.Itoa(n)}
	ratio := scoreTransform(domain.TransformPrefix, params, pairs)
	if ratio == 0 {
		return deduction{}, false
	}
	return deduction{Transform: domain.TransformPrefix, Params: params, MatchRatio: ratio}, true
}

// deduceBucket learns threshold bucketing from numeric source values and a
// small target label vocabulary. Thresholds fall at the minimum source value
// of each label's range, ordered by range position.
func deduceBucket(pairs []valuePair) (deduction, bool) {
	type labelRange struct {
		label    string
		min, max float64
	}

	ranges := map[string]*labelRange{}
	for _, p := range pairs {
		v, err := strconv.ParseFloat(strings.TrimSpace(p.src), 64)
		if err != nil {
			return deduction{}, false
		}
		r, ok := ranges[p.tgt]
		if !ok {
			ranges[p.tgt] = &labelRange{label: p.tgt, min: v, max: v}
			continue
		}
		if v < r.min {
			r.min = v
		}
		if v > r.max {
			r.max = v
		}
	}

	// One label is a constant, not a bucketing; too many labels means the
	// target is not categorical.
	if len(ranges) < 2 || len(ranges) > 12 {
		return deduction{}, false
	}

	ordered := make([]*labelRange, 0, len(ranges))
	for _, r := range ranges {
		ordered = append(ordered, r)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].min < ordered[j].min })

	// Ranges must not overlap, otherwise no threshold separates the labels.
	for i := 1; i < len(ordered); i++ {
		if ordered[i].min <= ordered[i-1].max {
			return deduction{}, false
		}
	}

	thresholds := make([]string, 0, len(ordered)-1)
	labels := make([]string, 0, len(ordered))
	for i, r := range ordered {
		labels = append(labels, r.label)
		if i > 0 {
			thresholds = append(thresholds, formatThreshold(r.min))
		}
	}

	params := map[string]string{
		"thresholds": strings.Join(thresholds, ","),
		"labels":     strings.Join(labels, ","),
	}
	ratio := scoreTransform(domain.TransformBucket, params, pairs)
	if ratio == 0 {
		return deduction{}, false
	}
	return deduction{Transform: domain.TransformBucket, Params: params, MatchRatio: ratio}, true
}

func formatThreshold(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return fmt.Sprintf("%g", v)
}
