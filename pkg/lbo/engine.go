package lbo

import "github.com/google/uuid"

// RunProjection executes the full pipeline for one set of assumptions:
// sources & uses, opening balance sheet, the year-by-year projection and
// debt solve, reconciliation, returns, and the closing validation checks.
// It halts and returns an error only on a configuration or calculation
// *Error; every other finding is collected into the returned bundle's
// ValidationReport. Grounded on pkg/core/projection/engine.go's top-level
// Run method shape.
func RunProjection(a *Assumptions) (*ResultBundle, error) {
	report := &ValidationReport{ScenarioTags: make(map[string][]PaymentScenario)}

	su, err := BuildSourcesAndUses(a)
	if err != nil {
		return nil, err
	}
	ValidateSourcesAndUses(su, report)

	periods := make([]PeriodState, 0, a.ExitYear+1)
	opening := BuildOpeningBalanceSheet(a, su, report)
	periods = append(periods, *opening)

	debtSchedule := make([]DebtScheduleRow, 0, a.ExitYear*len(a.DebtInstruments))
	prev := opening
	for year := 1; year <= a.ExitYear; year++ {
		period, rows, err := ProjectPeriod(prev, a, year, report)
		if err != nil {
			return nil, err
		}
		Reconcile(period, report)
		ValidatePeriod(period, rows, report)

		debtSchedule = append(debtSchedule, rows...)
		periods = append(periods, *period)
		prev = &periods[len(periods)-1]
	}

	FinalizeSuspect(report, periods[len(periods)-1].Balance.Equity)

	returns := CalculateReturns(a, su, periods, report)

	return &ResultBundle{
		RunID:        uuid.NewString(),
		Assumptions:  *a,
		SourcesUses:  su,
		Periods:      periods,
		DebtSchedule: debtSchedule,
		Returns:      returns,
		Validation:   *report,
	}, nil
}
