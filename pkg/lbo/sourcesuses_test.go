package lbo

import "testing"

func TestBuildSourcesAndUses_BalancesWhenEquityIsSolvedFor(t *testing.T) {
	in := baseInput()
	a, err := NewAssumptions(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	su, err := BuildSourcesAndUses(a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantEV := a.EntryEBITDA * a.EntryMultiple
	if su.EnterpriseValue != wantEV {
		t.Errorf("EnterpriseValue: got %v, want %v", su.EnterpriseValue, wantEV)
	}

	if diff := su.TotalSources - su.TotalUses; diff > tolerance(su.TotalUses) || diff < -tolerance(su.TotalUses) {
		t.Errorf("sources (%v) do not balance uses (%v)", su.TotalSources, su.TotalUses)
	}
	if su.SponsorEquity < 0 {
		t.Errorf("sponsor equity should never be negative, got %v", su.SponsorEquity)
	}
}

func TestBuildSourcesAndUses_FixedEquityMustBalance(t *testing.T) {
	in := baseInput()
	tooSmall := 1.0
	in.EquityAmount = &tooSmall
	a, err := NewAssumptions(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = BuildSourcesAndUses(a)
	if err == nil {
		t.Fatal("expected debt_exceeds_sources error for an equity check far too small to fund uses")
	}
	lboErr, ok := err.(*Error)
	if !ok || lboErr.Code != "debt_exceeds_sources" {
		t.Fatalf("expected debt_exceeds_sources, got %v", err)
	}
}

func TestBuildSourcesAndUses_ExistingCashAddsToEquityPurchasePrice(t *testing.T) {
	in := baseInput()
	withoutCash, err := NewAssumptions(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	suWithout, err := BuildSourcesAndUses(withoutCash)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	in.ExistingCash = 20.0
	withCash, err := NewAssumptions(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	suWith, err := BuildSourcesAndUses(withCash)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if suWith.EquityPurchasePrice != suWithout.EquityPurchasePrice+20.0 {
		t.Errorf("existing cash should be added directly to equity purchase price: got %v, want %v",
			suWith.EquityPurchasePrice, suWithout.EquityPurchasePrice+20.0)
	}
}
