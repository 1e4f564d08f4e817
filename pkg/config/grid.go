package config

import (
	"fmt"
	"os"

	hjson "github.com/hjson/hjson-go/v4"

	"lboengine/pkg/lbo"
)

// RawGridAxis names one axis of a sensitivity grid file: which input
// field to vary and the values to sweep it across.
type RawGridAxis struct {
	Field  string    `json:"field"`
	Values []float64 `json:"values"`
}

// RawGrid is the on-disk shape of a two-axis sensitivity sweep. Grid
// files are Hjson: analysts hand-edit these between runs, and Hjson's
// comments and unquoted keys make that materially less error-prone than
// strict JSON.
type RawGrid struct {
	Row RawGridAxis `json:"row"`
	Col RawGridAxis `json:"col"`
}

// LoadGrid reads a sensitivity grid file in Hjson form and resolves both
// axes against the known set of sweepable AssumptionsInput fields.
// Grounded on the teacher's github.com/hjson/hjson-go/v4 dependency
// (present in go.mod, unwired in the copied subset) and
// pkg/core/utils/json_validator.go::ParseHJSONToStruct's
// hjson.Unmarshal-into-struct pattern.
func LoadGrid(path string) (lbo.SensitivityAxis, lbo.SensitivityAxis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return lbo.SensitivityAxis{}, lbo.SensitivityAxis{}, fmt.Errorf("read %s: %w", path, err)
	}

	var raw RawGrid
	if err := hjson.Unmarshal(data, &raw); err != nil {
		return lbo.SensitivityAxis{}, lbo.SensitivityAxis{}, fmt.Errorf("parse %s as Hjson: %w", path, err)
	}

	rowApply, err := resolveGridField(raw.Row.Field)
	if err != nil {
		return lbo.SensitivityAxis{}, lbo.SensitivityAxis{}, err
	}
	colApply, err := resolveGridField(raw.Col.Field)
	if err != nil {
		return lbo.SensitivityAxis{}, lbo.SensitivityAxis{}, err
	}

	rowAxis := lbo.SensitivityAxis{Name: raw.Row.Field, Values: raw.Row.Values, Apply: rowApply}
	colAxis := lbo.SensitivityAxis{Name: raw.Col.Field, Values: raw.Col.Values, Apply: colApply}
	return rowAxis, colAxis, nil
}

// resolveGridField maps a grid file's field name to the setter that
// mutates a copy of AssumptionsInput, per spec.md §4.9's named sweepable
// dimensions (entry/exit multiple, growth, tax rate, exit year).
func resolveGridField(field string) (func(in *lbo.AssumptionsInput, v float64), error) {
	switch field {
	case "entry_multiple":
		return func(in *lbo.AssumptionsInput, v float64) { in.EntryMultiple = v }, nil
	case "exit_multiple":
		return func(in *lbo.AssumptionsInput, v float64) { in.ExitMultiple = v }, nil
	case "tax_rate":
		return func(in *lbo.AssumptionsInput, v float64) { in.TaxRate = v }, nil
	case "exit_year":
		return func(in *lbo.AssumptionsInput, v float64) { in.ExitYear = int(v) }, nil
	case "revenue_growth_rate_year1":
		return func(in *lbo.AssumptionsInput, v float64) {
			if len(in.RevenueGrowthRate) > 0 {
				in.RevenueGrowthRate[0] = v
			}
		}, nil
	case "min_cash_balance":
		return func(in *lbo.AssumptionsInput, v float64) { in.MinCashBalance = v }, nil
	default:
		return nil, fmt.Errorf("unknown sensitivity grid field %q", field)
	}
}
