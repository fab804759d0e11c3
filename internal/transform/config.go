package transform

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/Divis007/data-mapping/internal/reader"
	"github.com/Divis007/data-mapping/pkg/contracts/domain"
)

// mappingDocument is the YAML form of a mapping configuration.
type mappingDocument struct {
	Rules []domain.MappingRule `yaml:"rules"`
}

// LoadRules reads a mapping configuration. Spreadsheet configurations
// (xlsx, csv) carry one rule per row under source_field / target_field /
// transform_rule headers; YAML and JSON configurations carry a rules list
// and may include per-rule parameters. Mapping plans serialize with the
// same rules key, so a written plan loads directly as a configuration.
func LoadRules(path string) ([]domain.MappingRule, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return loadRulesYAML(path)
	case ".json":
		return loadRulesJSON(path)
	case ".xlsx", ".xlsm", ".csv":
		return loadRulesSpreadsheet(path)
	default:
		return nil, fmt.Errorf("unsupported mapping configuration type: %s", filepath.Ext(path))
	}
}

func loadRulesYAML(path string) ([]domain.MappingRule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping configuration: %w", err)
	}

	var doc mappingDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse mapping configuration: %w", err)
	}
	if len(doc.Rules) == 0 {
		return nil, fmt.Errorf("mapping configuration %s contains no rules", path)
	}

	for i, rule := range doc.Rules {
		if err := validateRule(rule); err != nil {
			return nil, fmt.Errorf("rule %d: %w", i+1, err)
		}
	}
	return doc.Rules, nil
}

func loadRulesJSON(path string) ([]domain.MappingRule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping configuration: %w", err)
	}

	var doc struct {
		Rules []domain.MappingRule `json:"rules"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse mapping configuration: %w", err)
	}
	if len(doc.Rules) == 0 {
		return nil, fmt.Errorf("mapping configuration %s contains no rules", path)
	}

	for i, rule := range doc.Rules {
		if err := validateRule(rule); err != nil {
			return nil, fmt.Errorf("rule %d: %w", i+1, err)
		}
	}
	return doc.Rules, nil
}

func loadRulesSpreadsheet(path string) ([]domain.MappingRule, error) {
	ds, err := reader.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping configuration: %w", err)
	}

	colIdx := func(names ...string) int {
		for _, name := range names {
			for i, col := range ds.Columns {
				if strings.EqualFold(strings.TrimSpace(col), name) {
					return i
				}
			}
		}
		return -1
	}

	srcIdx := colIdx("source_field")
	tgtIdx := colIdx("target_field")
	ruleIdx := colIdx("transform_rule", "transform")
	if srcIdx < 0 || tgtIdx < 0 || ruleIdx < 0 {
		return nil, fmt.Errorf("mapping configuration %s must have source_field, target_field and transform_rule columns", path)
	}
	paramsIdx := colIdx("params")

	var rules []domain.MappingRule
	for i, row := range ds.Rows {
		rule := domain.MappingRule{
			SourceField: row[srcIdx],
			TargetField: row[tgtIdx],
			Transform:   row[ruleIdx],
		}
		if paramsIdx >= 0 && row[paramsIdx] != "" {
			params, err := parseParams(row[paramsIdx])
			if err != nil {
				return nil, fmt.Errorf("rule %d: %w", i+1, err)
			}
			rule.Params = params
		}
		if err := validateRule(rule); err != nil {
			return nil, fmt.Errorf("rule %d: %w", i+1, err)
		}
		rules = append(rules, rule)
	}
	if len(rules) == 0 {
		return nil, fmt.Errorf("mapping configuration %s contains no rules", path)
	}
	return rules, nil
}

// parseParams parses "key=value;key=value" parameter cells.
func parseParams(raw string) (map[string]string, error) {
	params := map[string]string{}
	for _, pair := range strings.Split(raw, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		key, value, found := strings.Cut(pair, "=")
		if !found {
			return nil, fmt.Errorf("invalid parameter %q, expected key=value", pair)
		}
		params[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return params, nil
}

func validateRule(rule domain.MappingRule) error {
	if rule.SourceField == "" {
		return fmt.Errorf("source_field is empty")
	}
	if rule.TargetField == "" {
		return fmt.Errorf("target_field is empty")
	}
	if _, err := Get(rule.Transform); err != nil {
		return err
	}
	return nil
}
