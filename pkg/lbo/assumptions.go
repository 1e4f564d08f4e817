package lbo

import (
	"math"
)

// DebtInstrumentInput is the unresolved, user-facing description of one
// debt tranche: exactly one of Amount / EBITDAMultiple must be set.
type DebtInstrumentInput struct {
	Name                 string
	InterestRate         float64
	Amount               *float64
	EBITDAMultiple       *float64
	AmortizationSchedule AmortizationSchedule
	AmortizationPeriods  int
	Seniority            int
	Maturity             int
	BulletSweepAllowed   bool
}

// AssumptionsInput is the raw, structured input record described in
// spec.md §3 and the External Interfaces contract in §6. NewAssumptions
// validates and normalizes it into an immutable Assumptions.
type AssumptionsInput struct {
	EntryEBITDA   float64
	EntryMultiple float64

	// EBITDAMargin is a convenience input: when StartingRevenue is zero,
	// StartingRevenue is derived as EntryEBITDA / EBITDAMargin, and when
	// COGSPercent/SGAndAPercent are both zero they are derived from this
	// margin using the same cost-split heuristic as
	// original_source/src/lbo_engine.py::calculate_lbo.
	EBITDAMargin float64

	RevenueGrowthRate []float64
	StartingRevenue   float64

	COGSPercent          float64
	SGAndAPercent        float64
	CapexPercent         float64
	DepreciationPctOfPPE float64
	TaxRate              float64

	DaysSalesOutstanding     float64
	DaysInventoryOutstanding float64
	DaysPayableOutstanding   float64

	ExitYear     int
	ExitMultiple float64

	TransactionExpensesPct float64
	FinancingFeesPct       float64

	MinCashBalance float64
	ExistingDebt   float64
	ExistingCash   float64

	InitialPPE       *float64
	InitialAR        *float64
	InitialInventory *float64
	InitialAP        *float64
	EquityAmount     *float64
	TargetExitDebt   *float64
	DividendPolicy   *DividendPolicy

	DebtInstruments []DebtInstrumentInput
}

// percentField names a field validated to lie in [0, 1].
type percentField struct {
	name  string
	value float64
}

// NewAssumptions validates and normalizes an AssumptionsInput into an
// immutable Assumptions, resolving each DebtInstrument's amount against
// EntryEBITDA. It fails fast with a structured *Error naming the
// offending field, per spec.md §4.1.
func NewAssumptions(in AssumptionsInput) (*Assumptions, error) {
	if in.EntryEBITDA <= 0 {
		return nil, configError("negative_ebitda", "entry_ebitda must be > 0, got %v", in.EntryEBITDA)
	}
	if in.EntryMultiple <= 0 {
		return nil, configError("invalid_entry_multiple", "entry_multiple must be > 0, got %v", in.EntryMultiple)
	}
	if in.ExitYear < 1 {
		return nil, configError("invalid_exit_year", "exit_year must be >= 1, got %d", in.ExitYear)
	}
	if in.ExitMultiple <= 0 {
		return nil, configError("invalid_exit_multiple", "exit_multiple must be > 0, got %v", in.ExitMultiple)
	}

	pcts := []percentField{
		{"cogs_pct", in.COGSPercent},
		{"sganda_pct", in.SGAndAPercent},
		{"capex_pct", in.CapexPercent},
		{"depreciation_pct_of_ppe", in.DepreciationPctOfPPE},
		{"tax_rate", in.TaxRate},
		{"transaction_expenses_pct", in.TransactionExpensesPct},
		{"financing_fees_pct", in.FinancingFeesPct},
	}
	for _, p := range pcts {
		if p.value > 1 {
			return nil, configError("percent_out_of_range", "%s = %v is > 1; did you mean %v%%?", p.name, p.value, p.value)
		}
		if p.value < 0 {
			return nil, configError("percent_out_of_range", "%s = %v is negative", p.name, p.value)
		}
	}

	if in.MinCashBalance < 0 || in.ExistingDebt < 0 || in.ExistingCash < 0 {
		return nil, configError("negative_balance", "min_cash_balance, existing_debt and existing_cash must be >= 0")
	}

	startingRevenue := in.StartingRevenue
	cogsPct, sgandaPct := in.COGSPercent, in.SGAndAPercent
	if startingRevenue == 0 {
		if in.EBITDAMargin <= 0 {
			return nil, configError("missing_starting_revenue", "starting_revenue is 0 and ebitda_margin is not set to derive it")
		}
		startingRevenue = in.EntryEBITDA / in.EBITDAMargin
	}
	if cogsPct == 0 && sgandaPct == 0 && in.EBITDAMargin > 0 {
		cogsPct, sgandaPct = deriveCostSplit(in.EBITDAMargin)
	}

	growth, err := normalizeGrowth(in.RevenueGrowthRate, in.ExitYear)
	if err != nil {
		return nil, err
	}

	debts, err := resolveDebtStack(in.DebtInstruments, in.EntryEBITDA)
	if err != nil {
		return nil, err
	}

	return &Assumptions{
		EntryEBITDA:              in.EntryEBITDA,
		EntryMultiple:            in.EntryMultiple,
		RevenueGrowthRate:        growth,
		StartingRevenue:          startingRevenue,
		COGSPercent:              cogsPct,
		SGAndAPercent:            sgandaPct,
		CapexPercent:             in.CapexPercent,
		DepreciationPctOfPPE:     in.DepreciationPctOfPPE,
		TaxRate:                  in.TaxRate,
		DaysSalesOutstanding:     in.DaysSalesOutstanding,
		DaysInventoryOutstanding: in.DaysInventoryOutstanding,
		DaysPayableOutstanding:   in.DaysPayableOutstanding,
		ExitYear:                 in.ExitYear,
		ExitMultiple:             in.ExitMultiple,
		TransactionExpensesPct:   in.TransactionExpensesPct,
		FinancingFeesPct:         in.FinancingFeesPct,
		MinCashBalance:           in.MinCashBalance,
		ExistingDebt:             in.ExistingDebt,
		ExistingCash:             in.ExistingCash,
		InitialPPE:               in.InitialPPE,
		InitialAR:                in.InitialAR,
		InitialInventory:         in.InitialInventory,
		InitialAP:                in.InitialAP,
		EquityAmount:             in.EquityAmount,
		TargetExitDebt:           in.TargetExitDebt,
		DividendPolicy:           in.DividendPolicy,
		DebtInstruments:          debts,
	}, nil
}

// deriveCostSplit derives a COGS%/SG&A% pair that produces roughly the
// requested EBITDA margin, holding SG&A at a fixed base and solving COGS
// for the remainder. Grounded on
// original_source/src/lbo_engine.py::calculate_lbo's cogs_pct/sganda_pct
// derivation.
func deriveCostSplit(ebitdaMargin float64) (cogsPct, sgandaPct float64) {
	const baseSGAndA = 0.15
	const reserveForDA = 0.03
	targetTotalCosts := 1.0 - ebitdaMargin
	cogs := targetTotalCosts - baseSGAndA - reserveForDA
	if cogs < 0.50 {
		cogs = 0.50
	}
	if cogs > 0.85 {
		cogs = 0.85
	}
	return cogs, baseSGAndA
}

// normalizeGrowth extends a revenue growth-rate sequence shorter than
// exitYear by repeating its last value, per spec.md §4.1.
func normalizeGrowth(rates []float64, exitYear int) ([]float64, error) {
	if len(rates) == 0 {
		return nil, configError("missing_growth_rate", "revenue_growth_rate must have at least one entry")
	}
	if len(rates) >= exitYear {
		return rates, nil
	}
	out := make([]float64, exitYear)
	copy(out, rates)
	last := rates[len(rates)-1]
	for i := len(rates); i < exitYear; i++ {
		out[i] = last
	}
	return out, nil
}

// resolveDebtStack resolves each instrument's dollar amount and assigns a
// default seniority from insertion order when the caller didn't set one.
func resolveDebtStack(inputs []DebtInstrumentInput, entryEBITDA float64) ([]DebtInstrument, error) {
	if len(inputs) == 0 {
		return nil, configError("missing_debt_stack", "at least one debt instrument is required")
	}
	out := make([]DebtInstrument, 0, len(inputs))
	for i, d := range inputs {
		hasAmount := d.Amount != nil
		hasMultiple := d.EBITDAMultiple != nil
		if hasAmount == hasMultiple {
			return nil, configError("invalid_debt_amount", "debt instrument %q must set exactly one of amount or ebitda_multiple", d.Name)
		}
		amount := 0.0
		if hasAmount {
			amount = *d.Amount
		} else {
			amount = *d.EBITDAMultiple * entryEBITDA
		}
		if amount <= 0 {
			return nil, configError("invalid_debt_amount", "debt instrument %q resolved to a non-positive amount %v", d.Name, amount)
		}
		if d.AmortizationSchedule == Amortizing && d.AmortizationPeriods < 1 {
			return nil, configError("invalid_amortization_periods", "debt instrument %q is amortizing but amortization_periods = %d", d.Name, d.AmortizationPeriods)
		}
		if math.IsNaN(d.InterestRate) || math.IsInf(d.InterestRate, 0) || d.InterestRate < 0 {
			return nil, configError("invalid_interest_rate", "debt instrument %q has an invalid interest rate %v", d.Name, d.InterestRate)
		}
		seniority := d.Seniority
		if seniority == 0 {
			seniority = i + 1
		}
		out = append(out, DebtInstrument{
			Name:                 d.Name,
			InterestRate:         d.InterestRate,
			Amount:               amount,
			AmortizationSchedule: d.AmortizationSchedule,
			AmortizationPeriods:  d.AmortizationPeriods,
			Seniority:            seniority,
			Maturity:             d.Maturity,
			BulletSweepAllowed:   d.BulletSweepAllowed,
			insertionIndex:       i,
		})
	}

	total := 0.0
	for _, d := range out {
		total += d.Amount
	}
	if total <= 0 {
		return nil, configError("debt_exceeds_sources", "resolved debt stack totals %v", total)
	}
	return out, nil
}
