package domain

import "time"

// Transform rule names understood by the transform registry. Parameterized
// rules carry their arguments in MappingRule.Params.
const (
	TransformDirect        = "direct"
	TransformUppercase     = "uppercase"
	TransformLowercase     = "lowercase"
	TransformTitlecase     = "titlecase"
	TransformTrim          = "trim"
	TransformPrefix        = "prefix" // Params["length"]
	TransformFirstLetter   = "first_letter"
	TransformBeforeAt      = "before_at"
	TransformExtractDomain = "extract_domain"
	TransformBucket        = "bucket" // Params["thresholds"], Params["labels"]
	TransformAgeCategory   = "age_category"

	// Legacy alias for prefix with length 3, kept for mapping configuration
	// files written against the original rule vocabulary.
	TransformFirstThreeChars = "first_three_chars"
)

// MappingRule maps one source column to one target column via a named
// transform.
type MappingRule struct {
	SourceField string            `json:"source_field" yaml:"source_field"`
	TargetField string            `json:"target_field" yaml:"target_field"`
	Transform   string            `json:"transform_rule" yaml:"transform_rule"`
	Params      map[string]string `json:"params,omitempty" yaml:"params,omitempty"`
}

// SuggestedRule is a mapping rule produced by reverse engineering, together
// with the evidence that backs it.
type SuggestedRule struct {
	MappingRule `yaml:",inline"`

	Confidence float64 `json:"confidence" yaml:"confidence"`
	Rationale  string  `json:"rationale,omitempty" yaml:"rationale,omitempty"`
	MatchRatio float64 `json:"match_ratio,omitempty" yaml:"match_ratio,omitempty"`
}

// MappingPlan is an ordered set of rules between a source and a target
// dataset. Target columns with no defensible source are listed in Unmatched.
type MappingPlan struct {
	ID          string          `json:"id" yaml:"id"`
	Source      string          `json:"source" yaml:"source"`
	Target      string          `json:"target" yaml:"target"`
	Rules       []SuggestedRule `json:"rules" yaml:"rules"`
	Unmatched   []string        `json:"unmatched,omitempty" yaml:"unmatched,omitempty"`
	GeneratedAt time.Time       `json:"generated_at" yaml:"generated_at"`
}

// MappingRules strips the suggestion metadata, leaving the applicable rules.
func (p *MappingPlan) MappingRules() []MappingRule {
	rules := make([]MappingRule, 0, len(p.Rules))
	for _, r := range p.Rules {
		rules = append(rules, r.MappingRule)
	}
	return rules
}
