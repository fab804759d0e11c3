package transform

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Divis007/data-mapping/pkg/contracts/domain"
)

func TestLoadRules_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapping_rules.csv")
	content := "source_field,target_field,transform_rule\n" +
		"Cust_NAME,FULL_NAME,uppercase\n" +
		"Cust_email,Email_Domain,extract_domain\n" +
		"Cust_age,Age_Group,age_category\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	rules, err := LoadRules(path)
	require.NoError(t, err)

	require.Len(t, rules, 3)
	assert.Equal(t, domain.MappingRule{
		SourceField: "Cust_NAME",
		TargetField: "FULL_NAME",
		Transform:   domain.TransformUppercase,
	}, rules[0])
	assert.Equal(t, domain.TransformAgeCategory, rules[2].Transform)
}

func TestLoadRules_CSVWithParams(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapping.csv")
	content := "source_field,target_field,transform_rule,params\n" +
		"code,short_code,prefix,length=4\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	rules, err := LoadRules(path)
	require.NoError(t, err)

	require.Len(t, rules, 1)
	assert.Equal(t, map[string]string{"length": "4"}, rules[0].Params)
}

func TestLoadRules_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapping.yaml")
	content := `
rules:
  - source_field: salary
    target_field: band
    transform_rule: bucket
    params:
      thresholds: "30000,60000"
      labels: "Low,Mid,High"
  - source_field: name
    target_field: initial
    transform_rule: first_letter
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	rules, err := LoadRules(path)
	require.NoError(t, err)

	require.Len(t, rules, 2)
	assert.Equal(t, domain.TransformBucket, rules[0].Transform)
	assert.Equal(t, "30000,60000", rules[0].Params["thresholds"])
	assert.Equal(t, domain.TransformFirstLetter, rules[1].Transform)
}

func TestLoadRules_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapping.json")
	content := `{
  "rules": [
    {"source_field": "Cust_NAME", "target_field": "FULL_NAME", "transform_rule": "uppercase"},
    {"source_field": "code", "target_field": "short_code", "transform_rule": "prefix", "params": {"length": "4"}}
  ]
}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	rules, err := LoadRules(path)
	require.NoError(t, err)

	require.Len(t, rules, 2)
	assert.Equal(t, domain.TransformUppercase, rules[0].Transform)
	assert.Equal(t, map[string]string{"length": "4"}, rules[1].Params)
}

func TestLoadRules_JSONPlanRoundTrip(t *testing.T) {
	plan := &domain.MappingPlan{
		ID:     "plan-1",
		Source: "legacy.csv",
		Target: "migrated.csv",
		Rules: []domain.SuggestedRule{
			{
				MappingRule: domain.MappingRule{
					SourceField: "Cust_email",
					TargetField: "Email_Domain",
					Transform:   domain.TransformExtractDomain,
				},
				Confidence: 0.93,
				MatchRatio: 1,
			},
		},
	}

	data, err := json.Marshal(plan)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "plan.json")
	require.NoError(t, os.WriteFile(path, data, 0644))

	rules, err := LoadRules(path)
	require.NoError(t, err)

	require.Len(t, rules, 1)
	assert.Equal(t, "Cust_email", rules[0].SourceField)
	assert.Equal(t, domain.TransformExtractDomain, rules[0].Transform)
}

func TestLoadRules_UnknownTransformRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapping.csv")
	content := "source_field,target_field,transform_rule\na,b,frobnicate\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := LoadRules(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "frobnicate")
}

func TestLoadRules_MissingColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapping.csv")
	content := "from,to\na,b\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := LoadRules(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source_field")
}

func TestLoadRules_UnsupportedExtension(t *testing.T) {
	_, err := LoadRules("mapping.toml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported")
}

func TestParseParams(t *testing.T) {
	params, err := parseParams("length=3; labels=a,b")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"length": "3", "labels": "a,b"}, params)

	_, err = parseParams("no-equals-sign")
	require.Error(t, err)
}
