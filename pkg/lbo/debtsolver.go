package lbo

import (
	"math"
	"sort"
)

// debtRowDraft holds the per-instrument state known before the sweep pool
// can be computed: beginning balance, interest (both depend on beginning
// balances only, per spec.md Design Note 9) and scheduled principal.
type debtRowDraft struct {
	instrument *DebtInstrument
	begin      float64
	interest   float64
	scheduled  float64
}

// debtBeginningPass computes begin_i, interest_i and scheduled_i for every
// instrument, in ascending seniority (ties by insertion order). It never
// depends on the current period's net income or free cash flow — the
// engine's whole "no intra-period fixed point" property rests on this.
// Grounded on spec.md §4.5 steps 1-3 and
// original_source/src/lbo_model_generator.py::_build_debt_schedule.
func debtBeginningPass(instruments []DebtInstrument, prevEnd map[string]float64, year, exitYear int, targetExitDebt *float64) ([]debtRowDraft, error) {
	ordered := orderBySeniority(instruments)

	currentTotalDebt := 0.0
	for _, d := range instruments {
		currentTotalDebt += prevEnd[d.Name]
	}

	drafts := make([]debtRowDraft, 0, len(ordered))
	for i := range ordered {
		d := ordered[i]
		begin := prevEnd[d.Name]
		if begin < 0 || math.IsNaN(begin) || math.IsInf(begin, 0) {
			return nil, calcError("negative_debt_balance", year, "instrument %q has an invalid beginning balance %v", d.Name, begin)
		}

		interest := begin * d.InterestRate
		if math.IsNaN(interest) || math.IsInf(interest, 0) {
			return nil, calcError("invalid_interest_rate", year, "instrument %q produced a non-finite interest amount", d.Name)
		}

		scheduled := 0.0
		switch d.AmortizationSchedule {
		case Bullet:
			maturity := d.Maturity
			if maturity == 0 {
				maturity = exitYear
			}
			if year == exitYear || year == maturity {
				scheduled = begin
			}
		case Amortizing:
			if year <= d.AmortizationPeriods {
				scheduled = d.Amount / float64(d.AmortizationPeriods)
			}
			if targetExitDebt != nil {
				scheduled = capForTargetExitDebt(scheduled, d, year, exitYear, currentTotalDebt, *targetExitDebt)
			}
			if scheduled > begin {
				scheduled = begin
			}
		case CashFlowSweep:
			scheduled = 0
		}

		drafts = append(drafts, debtRowDraft{instrument: d, begin: begin, interest: interest, scheduled: scheduled})
	}
	return drafts, nil
}

// capForTargetExitDebt limits an amortizing instrument's scheduled
// principal so the debt stack converges toward targetExitDebt by
// exitYear rather than amortizing on its own fixed schedule. Supplemental
// feature grounded on
// original_source/src/lbo_model_generator.py::_build_debt_schedule's
// target_exit_debt handling.
func capForTargetExitDebt(scheduled float64, d *DebtInstrument, year, exitYear int, currentTotalDebt, targetExitDebt float64) float64 {
	remaining := currentTotalDebt - targetExitDebt
	if remaining <= 0.01 {
		return 0
	}
	yearsRemaining := d.AmortizationPeriods - (year - 1)
	if yearsRemaining <= 0 {
		return scheduled
	}
	maxPerYear := remaining / float64(yearsRemaining)
	if scheduled > maxPerYear {
		return maxPerYear
	}
	return scheduled
}

// orderBySeniority returns pointers into instruments ordered by ascending
// Seniority, ties broken by original insertion order.
func orderBySeniority(instruments []DebtInstrument) []*DebtInstrument {
	ordered := make([]*DebtInstrument, len(instruments))
	for i := range instruments {
		ordered[i] = &instruments[i]
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Seniority != ordered[j].Seniority {
			return ordered[i].Seniority < ordered[j].Seniority
		}
		return ordered[i].insertionIndex < ordered[j].insertionIndex
	})
	return ordered
}

// sweepResult is one instrument's final debt schedule row plus the
// scenario it exercised this period.
type sweepResult struct {
	row      DebtScheduleRow
	scenario PaymentScenario
}

// applySweep distributes the sweep pool across sweep-eligible instruments
// in seniority order and returns each instrument's final row. Grounded on
// spec.md §4.5 steps 5-6.
func applySweep(year int, drafts []debtRowDraft, fcfAvailableForDebt float64) ([]sweepResult, float64, error) {
	totalScheduled := 0.0
	for _, dr := range drafts {
		totalScheduled += dr.scheduled
	}

	sweepPool := fcfAvailableForDebt - totalScheduled
	if sweepPool < 0 {
		sweepPool = 0
	}

	results := make([]sweepResult, len(drafts))
	totalSweep := 0.0
	for i, dr := range drafts {
		d := dr.instrument
		eligible := d.AmortizationSchedule == Amortizing || d.AmortizationSchedule == CashFlowSweep ||
			(d.AmortizationSchedule == Bullet && d.BulletSweepAllowed)

		sweep := 0.0
		if eligible && sweepPool > 0 {
			capacity := dr.begin - dr.scheduled
			sweep = math.Min(capacity, sweepPool)
			if sweep < 0 {
				sweep = 0
			}
			sweepPool -= sweep
			totalSweep += sweep
		}

		ending := dr.begin - dr.scheduled - sweep
		if ending < -tolerance(dr.begin) {
			return nil, 0, calcError("negative_debt_balance", year, "instrument %q ended with a negative balance %v", d.Name, ending)
		}
		if ending < 0 {
			ending = 0
		}

		scenario := PaymentScenario(d.AmortizationSchedule)
		if sweep > 0 && d.AmortizationSchedule == Amortizing {
			scenario = ScenarioMixedStructure
		}

		results[i] = sweepResult{
			row: DebtScheduleRow{
				Instrument:         d.Name,
				Year:               year,
				Beginning:          dr.begin,
				Interest:           dr.interest,
				ScheduledPrincipal: dr.scheduled,
				SweepPrincipal:     sweep,
				Ending:             ending,
			},
			scenario: scenario,
		}
	}
	return results, totalSweep, nil
}
