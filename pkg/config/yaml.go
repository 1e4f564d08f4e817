package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v2"

	"lboengine/pkg/lbo"
)

// LoadYAML reads a scenario file in YAML form, per spec.md §6's config
// contract. Unknown keys are rejected with UnmarshalStrict so a typo in
// a field name fails loudly instead of silently defaulting, surfaced as
// the stable "unknown_field" configuration error code. Grounded on
// cmd/api/main.go's `yaml.Unmarshal(configData, &agentCfg)`.
func LoadYAML(path string) (lbo.AssumptionsInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return lbo.AssumptionsInput{}, fmt.Errorf("read %s: %w", path, err)
	}
	var raw RawAssumptions
	if err := yaml.UnmarshalStrict(data, &raw); err != nil {
		if strings.Contains(err.Error(), "not found in type") {
			return lbo.AssumptionsInput{}, &lbo.Error{
				Class:   lbo.ClassConfiguration,
				Code:    "unknown_field",
				Message: fmt.Sprintf("%s: %v", path, err),
				Err:     err,
			}
		}
		return lbo.AssumptionsInput{}, fmt.Errorf("parse %s as YAML: %w", path, err)
	}
	return raw.ToAssumptionsInput(), nil
}
