package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"

	"lboengine/pkg/lbo"
)

// LoadJSON reads a scenario file in JSON form. It first tries a strict
// decode that rejects unknown fields, surfaced as the stable
// "unknown_field" configuration error code; if that fails for any other
// reason it attempts a repair pass (trailing commas, unquoted keys, stray
// comments — the same class of hand-edit mistakes json-repair was built
// to fix in pkg/core/utils/json_validator.go's SmartParse) and retries
// once, non-strict, before giving up.
func LoadJSON(path string) (lbo.AssumptionsInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return lbo.AssumptionsInput{}, fmt.Errorf("read %s: %w", path, err)
	}

	var raw RawAssumptions
	strictErr := decodeStrict(data, &raw)
	if strictErr == nil {
		return raw.ToAssumptionsInput(), nil
	}
	if strings.Contains(strictErr.Error(), "unknown field") {
		return lbo.AssumptionsInput{}, &lbo.Error{
			Class:   lbo.ClassConfiguration,
			Code:    "unknown_field",
			Message: fmt.Sprintf("%s: %v", path, strictErr),
			Err:     strictErr,
		}
	}

	repaired, repairErr := jsonrepair.RepairJSON(string(data))
	if repairErr != nil {
		return lbo.AssumptionsInput{}, fmt.Errorf("parse %s as JSON: %w (repair also failed: %v)", path, strictErr, repairErr)
	}
	if err := json.Unmarshal([]byte(repaired), &raw); err != nil {
		return lbo.AssumptionsInput{}, fmt.Errorf("parse %s as JSON even after repair: %w", path, err)
	}
	return raw.ToAssumptionsInput(), nil
}

func decodeStrict(data []byte, raw *RawAssumptions) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(raw)
}
