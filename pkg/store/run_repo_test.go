package store

import (
	"context"
	"encoding/json"
	"testing"

	"lboengine/pkg/lbo"
)

// These tests exercise RunRepo without a live Postgres instance: GetPool
// returns nil until InitDB successfully connects, so Save/Load must fail
// fast rather than panic on a nil pool.

func TestRunRepo_SaveFailsFastWithoutInitializedPool(t *testing.T) {
	repo := NewRunRepo()
	bundle := &lbo.ResultBundle{RunID: "run-1"}
	if err := repo.Save(context.Background(), "AlphaCo", bundle); err == nil {
		t.Fatal("expected an error when the pool has never been initialized")
	}
}

func TestRunRepo_LoadFailsFastWithoutInitializedPool(t *testing.T) {
	repo := NewRunRepo()
	if _, err := repo.Load(context.Background(), "run-1"); err == nil {
		t.Fatal("expected an error when the pool has never been initialized")
	}
}

// TestResultBundle_JSONRoundTrip pins down the JSONB persistence contract:
// a ResultBundle must survive a marshal/unmarshal cycle with its nested
// maps, pointers and slices intact, since that's exactly what Save/Load
// do against result_json.
func TestResultBundle_JSONRoundTrip(t *testing.T) {
	irr := 0.21
	moic := 2.1
	original := &lbo.ResultBundle{
		RunID: "run-42",
		SourcesUses: lbo.SourcesAndUses{
			EnterpriseValue: 500000,
			SponsorEquity:   200000,
		},
		Periods: []lbo.PeriodState{
			{
				Year:   1,
				Income: lbo.IncomeLine{Revenue: 100000, EBITDA: 20000},
				Balance: lbo.BalanceLine{
					Cash:           5000,
					InstrumentDebt: map[string]float64{"senior": 90000, "sub": 30000},
					TotalDebt:      120000,
				},
			},
		},
		Returns: lbo.ReturnsResult{MOIC: &moic, IRR: &irr},
		Validation: lbo.ValidationReport{
			Findings: []lbo.ValidationFinding{
				{Category: lbo.CategoryWarning, Code: "liquidity_shortfall", Message: "thin cash"},
			},
		},
	}

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var roundTripped lbo.ResultBundle
	if err := json.Unmarshal(data, &roundTripped); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if roundTripped.RunID != original.RunID {
		t.Errorf("RunID: got %q, want %q", roundTripped.RunID, original.RunID)
	}
	if roundTripped.Returns.IRR == nil || *roundTripped.Returns.IRR != irr {
		t.Errorf("IRR pointer not preserved: %v", roundTripped.Returns.IRR)
	}
	if len(roundTripped.Periods) != 1 || roundTripped.Periods[0].Balance.InstrumentDebt["senior"] != 90000 {
		t.Errorf("nested InstrumentDebt map not preserved: %+v", roundTripped.Periods)
	}
	if len(roundTripped.Validation.Findings) != 1 || roundTripped.Validation.Findings[0].Code != "liquidity_shortfall" {
		t.Errorf("findings not preserved: %+v", roundTripped.Validation.Findings)
	}
}
