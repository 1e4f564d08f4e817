package lbo

import "testing"

func baseInput() AssumptionsInput {
	amt := 100.0
	return AssumptionsInput{
		EntryEBITDA:              50.0,
		EntryMultiple:            8.0,
		RevenueGrowthRate:        []float64{0.10, 0.08, 0.06},
		StartingRevenue:          200.0,
		COGSPercent:              0.55,
		SGAndAPercent:            0.15,
		CapexPercent:             0.03,
		DepreciationPctOfPPE:     0.10,
		TaxRate:                  0.25,
		DaysSalesOutstanding:     45,
		DaysInventoryOutstanding: 60,
		DaysPayableOutstanding:   30,
		ExitYear:                 5,
		ExitMultiple:             9.0,
		TransactionExpensesPct:   0.02,
		FinancingFeesPct:         0.01,
		MinCashBalance:           10.0,
		DebtInstruments: []DebtInstrumentInput{
			{Name: "senior", InterestRate: 0.07, Amount: &amt, AmortizationSchedule: Amortizing, AmortizationPeriods: 5},
		},
	}
}

func TestNewAssumptions_RejectsNonPositiveEBITDA(t *testing.T) {
	in := baseInput()
	in.EntryEBITDA = 0
	if _, err := NewAssumptions(in); err == nil {
		t.Fatal("expected an error for entry_ebitda = 0")
	}
}

func TestNewAssumptions_RejectsPercentAbove1(t *testing.T) {
	in := baseInput()
	in.TaxRate = 1.25
	_, err := NewAssumptions(in)
	if err == nil {
		t.Fatal("expected an error for tax_rate > 1")
	}
	lboErr, ok := err.(*Error)
	if !ok || lboErr.Code != "percent_out_of_range" {
		t.Fatalf("expected percent_out_of_range error, got %v", err)
	}
}

func TestNewAssumptions_GrowthExtendedByRepeatingLastValue(t *testing.T) {
	in := baseInput()
	in.RevenueGrowthRate = []float64{0.10}
	in.ExitYear = 4
	a, err := NewAssumptions(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []float64{0.10, 0.10, 0.10, 0.10}
	if len(a.RevenueGrowthRate) != len(want) {
		t.Fatalf("got %v, want length %d", a.RevenueGrowthRate, len(want))
	}
	for i, v := range want {
		if a.RevenueGrowthRate[i] != v {
			t.Errorf("year %d: got %v, want %v", i, a.RevenueGrowthRate[i], v)
		}
	}
}

func TestNewAssumptions_DebtInstrumentRequiresExactlyOneAmountField(t *testing.T) {
	in := baseInput()
	mult := 2.0
	in.DebtInstruments[0].EBITDAMultiple = &mult // now both Amount and EBITDAMultiple are set
	if _, err := NewAssumptions(in); err == nil {
		t.Fatal("expected an error when both amount and ebitda_multiple are set")
	}
}

func TestNewAssumptions_ResolvesEBITDAMultipleAgainstEntryEBITDA(t *testing.T) {
	in := baseInput()
	mult := 2.0
	in.DebtInstruments[0].Amount = nil
	in.DebtInstruments[0].EBITDAMultiple = &mult
	a, err := NewAssumptions(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := mult * in.EntryEBITDA
	if a.DebtInstruments[0].Amount != want {
		t.Errorf("got %v, want %v", a.DebtInstruments[0].Amount, want)
	}
}

func TestNewAssumptions_DerivesStartingRevenueFromEBITDAMargin(t *testing.T) {
	in := baseInput()
	in.StartingRevenue = 0
	in.COGSPercent = 0
	in.SGAndAPercent = 0
	in.EBITDAMargin = 0.25
	a, err := NewAssumptions(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := in.EntryEBITDA / 0.25
	if a.StartingRevenue != want {
		t.Errorf("got %v, want %v", a.StartingRevenue, want)
	}
	if a.COGSPercent == 0 && a.SGAndAPercent == 0 {
		t.Error("expected cost split to be derived from ebitda_margin")
	}
}

func TestNewAssumptions_SeniorityDefaultsToInsertionOrder(t *testing.T) {
	in := baseInput()
	amt2 := 40.0
	in.DebtInstruments = append(in.DebtInstruments, DebtInstrumentInput{
		Name: "sub", InterestRate: 0.11, Amount: &amt2, AmortizationSchedule: Bullet,
	})
	a, err := NewAssumptions(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.DebtInstruments[0].Seniority >= a.DebtInstruments[1].Seniority {
		t.Errorf("expected first instrument to be more senior by insertion order, got %+v", a.DebtInstruments)
	}
}
