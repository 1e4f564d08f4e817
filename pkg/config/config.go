// Package config loads LBO run assumptions from YAML or JSON files on
// disk and converts them into lbo.AssumptionsInput, and loads sensitivity
// grid files from Hjson. It is the
// only package in this module that touches the filesystem for input.
package config

import (
	"lboengine/pkg/lbo"
)

// RawDebtInstrument mirrors lbo.DebtInstrumentInput with the field names
// and tags an operator would actually type into a config file.
type RawDebtInstrument struct {
	Name                 string   `yaml:"name" json:"name"`
	InterestRate         float64  `yaml:"interest_rate" json:"interest_rate"`
	Amount               *float64 `yaml:"amount,omitempty" json:"amount,omitempty"`
	EBITDAMultiple       *float64 `yaml:"ebitda_multiple,omitempty" json:"ebitda_multiple,omitempty"`
	AmortizationSchedule string   `yaml:"amortization_schedule" json:"amortization_schedule"`
	AmortizationPeriods  int      `yaml:"amortization_periods,omitempty" json:"amortization_periods,omitempty"`
	Seniority            int      `yaml:"seniority,omitempty" json:"seniority,omitempty"`
	Maturity             int      `yaml:"maturity,omitempty" json:"maturity,omitempty"`
	BulletSweepAllowed   bool     `yaml:"bullet_sweep_allowed,omitempty" json:"bullet_sweep_allowed,omitempty"`
}

// RawDividendPolicy mirrors lbo.DividendPolicy.
type RawDividendPolicy struct {
	PayoutRatio float64 `yaml:"payout_ratio" json:"payout_ratio"`
}

// RawAssumptions is the on-disk shape of one LBO scenario, per spec.md §6.
type RawAssumptions struct {
	EntryEBITDA   float64 `yaml:"entry_ebitda" json:"entry_ebitda"`
	EntryMultiple float64 `yaml:"entry_multiple" json:"entry_multiple"`

	EBITDAMargin float64 `yaml:"ebitda_margin,omitempty" json:"ebitda_margin,omitempty"`

	RevenueGrowthRate []float64 `yaml:"revenue_growth_rate" json:"revenue_growth_rate"`
	StartingRevenue   float64   `yaml:"starting_revenue,omitempty" json:"starting_revenue,omitempty"`

	COGSPercent          float64 `yaml:"cogs_pct,omitempty" json:"cogs_pct,omitempty"`
	SGAndAPercent        float64 `yaml:"sganda_pct,omitempty" json:"sganda_pct,omitempty"`
	CapexPercent         float64 `yaml:"capex_pct" json:"capex_pct"`
	DepreciationPctOfPPE float64 `yaml:"depreciation_pct_of_ppe" json:"depreciation_pct_of_ppe"`
	TaxRate              float64 `yaml:"tax_rate" json:"tax_rate"`

	DaysSalesOutstanding     float64 `yaml:"days_sales_outstanding" json:"days_sales_outstanding"`
	DaysInventoryOutstanding float64 `yaml:"days_inventory_outstanding" json:"days_inventory_outstanding"`
	DaysPayableOutstanding   float64 `yaml:"days_payable_outstanding" json:"days_payable_outstanding"`

	ExitYear     int     `yaml:"exit_year" json:"exit_year"`
	ExitMultiple float64 `yaml:"exit_multiple" json:"exit_multiple"`

	TransactionExpensesPct float64 `yaml:"transaction_expenses_pct" json:"transaction_expenses_pct"`
	FinancingFeesPct       float64 `yaml:"financing_fees_pct" json:"financing_fees_pct"`

	MinCashBalance float64 `yaml:"min_cash_balance" json:"min_cash_balance"`
	ExistingDebt   float64 `yaml:"existing_debt,omitempty" json:"existing_debt,omitempty"`
	ExistingCash   float64 `yaml:"existing_cash,omitempty" json:"existing_cash,omitempty"`

	InitialPPE       *float64 `yaml:"initial_ppe,omitempty" json:"initial_ppe,omitempty"`
	InitialAR        *float64 `yaml:"initial_ar,omitempty" json:"initial_ar,omitempty"`
	InitialInventory *float64 `yaml:"initial_inventory,omitempty" json:"initial_inventory,omitempty"`
	InitialAP        *float64 `yaml:"initial_ap,omitempty" json:"initial_ap,omitempty"`
	EquityAmount     *float64 `yaml:"equity_amount,omitempty" json:"equity_amount,omitempty"`
	TargetExitDebt   *float64 `yaml:"target_exit_debt,omitempty" json:"target_exit_debt,omitempty"`

	DividendPolicy *RawDividendPolicy `yaml:"dividend_policy,omitempty" json:"dividend_policy,omitempty"`

	DebtInstruments []RawDebtInstrument `yaml:"debt_instruments" json:"debt_instruments"`
}

// ToAssumptionsInput converts the on-disk record into the engine's input
// type. It does not validate; lbo.NewAssumptions does that.
func (r RawAssumptions) ToAssumptionsInput() lbo.AssumptionsInput {
	debts := make([]lbo.DebtInstrumentInput, len(r.DebtInstruments))
	for i, d := range r.DebtInstruments {
		debts[i] = lbo.DebtInstrumentInput{
			Name:                 d.Name,
			InterestRate:         d.InterestRate,
			Amount:               d.Amount,
			EBITDAMultiple:       d.EBITDAMultiple,
			AmortizationSchedule: lbo.AmortizationSchedule(d.AmortizationSchedule),
			AmortizationPeriods:  d.AmortizationPeriods,
			Seniority:            d.Seniority,
			Maturity:             d.Maturity,
			BulletSweepAllowed:   d.BulletSweepAllowed,
		}
	}

	var dividendPolicy *lbo.DividendPolicy
	if r.DividendPolicy != nil {
		dividendPolicy = &lbo.DividendPolicy{PayoutRatio: r.DividendPolicy.PayoutRatio}
	}

	return lbo.AssumptionsInput{
		EntryEBITDA:              r.EntryEBITDA,
		EntryMultiple:            r.EntryMultiple,
		EBITDAMargin:             r.EBITDAMargin,
		RevenueGrowthRate:        r.RevenueGrowthRate,
		StartingRevenue:          r.StartingRevenue,
		COGSPercent:              r.COGSPercent,
		SGAndAPercent:            r.SGAndAPercent,
		CapexPercent:             r.CapexPercent,
		DepreciationPctOfPPE:     r.DepreciationPctOfPPE,
		TaxRate:                  r.TaxRate,
		DaysSalesOutstanding:     r.DaysSalesOutstanding,
		DaysInventoryOutstanding: r.DaysInventoryOutstanding,
		DaysPayableOutstanding:   r.DaysPayableOutstanding,
		ExitYear:                 r.ExitYear,
		ExitMultiple:             r.ExitMultiple,
		TransactionExpensesPct:   r.TransactionExpensesPct,
		FinancingFeesPct:         r.FinancingFeesPct,
		MinCashBalance:           r.MinCashBalance,
		ExistingDebt:             r.ExistingDebt,
		ExistingCash:             r.ExistingCash,
		InitialPPE:               r.InitialPPE,
		InitialAR:                r.InitialAR,
		InitialInventory:         r.InitialInventory,
		InitialAP:                r.InitialAP,
		EquityAmount:             r.EquityAmount,
		TargetExitDebt:           r.TargetExitDebt,
		DividendPolicy:           dividendPolicy,
		DebtInstruments:          debts,
	}
}
