// Package transform implements the mapping rule vocabulary: named value
// transforms that carry a source column onto a target column, and the engine
// that applies a mapping plan to a dataset.
package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/Divis007/data-mapping/pkg/contracts/domain"
)

// Func transforms a single cell value. Params carry rule arguments such as
// prefix lengths or bucket thresholds.
type Func func(value string, params map[string]string) (string, error)

var registry = map[string]Func{
	domain.TransformDirect:          func(v string, _ map[string]string) (string, error) { return v, nil },
	domain.TransformUppercase:       func(v string, _ map[string]string) (string, error) { return strings.ToUpper(v), nil },
	domain.TransformLowercase:       func(v string, _ map[string]string) (string, error) { return strings.ToLower(v), nil },
	domain.TransformTitlecase:       func(v string, _ map[string]string) (string, error) { return titleCase(v), nil },
	domain.TransformTrim:            func(v string, _ map[string]string) (string, error) { return strings.TrimSpace(v), nil },
	domain.TransformPrefix:          applyPrefix,
	domain.TransformFirstLetter:     applyFirstLetter,
	domain.TransformBeforeAt:        applyBeforeAt,
	domain.TransformExtractDomain:   applyExtractDomain,
	domain.TransformBucket:          applyBucket,
	domain.TransformAgeCategory:     applyAgeCategory,
	domain.TransformFirstThreeChars: applyFirstThreeChars,
}

// Get returns the transform registered under name.
func Get(name string) (Func, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown transform rule: %q (known: %s)", name, strings.Join(Names(), ", "))
	}
	return fn, nil
}

// Names returns the registered rule names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// applyPrefix returns the first Params["length"] characters of the value.
func applyPrefix(v string, params map[string]string) (string, error) {
	raw, ok := params["length"]
	if !ok {
		return "", fmt.Errorf("prefix transform requires a length parameter")
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return "", fmt.Errorf("invalid prefix length: %q", raw)
	}
	runes := []rune(v)
	if n > len(runes) {
		return v, nil
	}
	return string(runes[:n]), nil
}

func applyFirstThreeChars(v string, _ map[string]string) (string, error) {
	return applyPrefix(v, map[string]string{"length": "3"})
}

func applyFirstLetter(v string, _ map[string]string) (string, error) {
	runes := []rune(v)
	if len(runes) == 0 {
		return "", nil
	}
	return string(runes[:1]), nil
}

// applyBeforeAt returns everything before the first '@'. Values without an
// '@' pass through unchanged.
func applyBeforeAt(v string, _ map[string]string) (string, error) {
	if idx := strings.Index(v, "@"); idx >= 0 {
		return v[:idx], nil
	}
	return v, nil
}

// applyExtractDomain returns everything after the first '@', or "" when the
// value has no '@'.
func applyExtractDomain(v string, _ map[string]string) (string, error) {
	if idx := strings.Index(v, "@"); idx >= 0 {
		return v[idx+1:], nil
	}
	return "", nil
}

// applyBucket assigns a label by comparing the numeric value against ordered
// thresholds. With thresholds t1..tn and labels l1..ln+1: v < t1 yields l1,
// v < t2 yields l2, and so on; values at or above every threshold get the
// last label.
func applyBucket(v string, params map[string]string) (string, error) {
	thresholds, labels, err := BucketParams(params)
	if err != nil {
		return "", err
	}

	val, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return "", fmt.Errorf("bucket transform requires numeric input, got %q", v)
	}

	for i, threshold := range thresholds {
		if val < threshold {
			return labels[i], nil
		}
	}
	return labels[len(labels)-1], nil
}

// applyAgeCategory is the fixed-threshold bucketing rule from the original
// mapping vocabulary: <30 Young, <45 Middle, otherwise Senior.
func applyAgeCategory(v string, _ map[string]string) (string, error) {
	return applyBucket(v, map[string]string{
		"thresholds": "30,45",
		"labels":     "Young,Middle,Senior",
	})
}

// BucketParams parses and validates bucket thresholds and labels.
func BucketParams(params map[string]string) ([]float64, []string, error) {
	rawThresholds, ok := params["thresholds"]
	if !ok {
		return nil, nil, fmt.Errorf("bucket transform requires a thresholds parameter")
	}
	rawLabels, ok := params["labels"]
	if !ok {
		return nil, nil, fmt.Errorf("bucket transform requires a labels parameter")
	}

	var thresholds []float64
	for _, part := range strings.Split(rawThresholds, ",") {
		t, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid bucket threshold %q", part)
		}
		thresholds = append(thresholds, t)
	}
	for i := 1; i < len(thresholds); i++ {
		if thresholds[i] <= thresholds[i-1] {
			return nil, nil, fmt.Errorf("bucket thresholds must be strictly increasing")
		}
	}

	labels := strings.Split(rawLabels, ",")
	for i := range labels {
		labels[i] = strings.TrimSpace(labels[i])
	}
	if len(labels) != len(thresholds)+1 {
		return nil, nil, fmt.Errorf("bucket needs %d labels for %d thresholds, got %d",
			len(thresholds)+1, len(thresholds), len(labels))
	}
	return thresholds, labels, nil
}

// titleCase capitalizes the first letter of every word and lowercases the
// rest, treating spaces, hyphens and underscores as word boundaries.
func titleCase(v string) string {
	var b strings.Builder
	b.Grow(len(v))
	startOfWord := true
	for _, r := range v {
		switch {
		case r == ' ' || r == '-' || r == '_':
			startOfWord = true
			b.WriteRune(r)
		case startOfWord:
			b.WriteRune(unicode.ToUpper(r))
			startOfWord = false
		default:
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}
