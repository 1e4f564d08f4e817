package lbo

import "math"

// CalculateReturns computes MOIC and IRR from the sponsor's entry equity
// check and the exit-year balance sheet, per spec.md §4.7. With no
// interim dividends, IRR has the closed-form single-cash-flow shortcut;
// once DividendPolicy pays out along the way, the cash flow stream has
// more than two legs and IRR falls back to bisection. Grounded on
// original_source/src/lbo_model_generator.py::_calculate_returns.
func CalculateReturns(a *Assumptions, su SourcesAndUses, periods []PeriodState, report *ValidationReport) ReturnsResult {
	exit := periods[len(periods)-1]

	exitEBITDA := exit.Income.EBITDA
	exitEV := exitEBITDA * a.ExitMultiple
	exitDebt := exit.Balance.TotalDebt
	exitCash := exit.Balance.Cash
	exitEquity := exitEV - exitDebt + exitCash
	if exitEquity < 0 {
		exitEquity = 0
	}

	totalDividends := 0.0
	for i := 1; i < len(periods); i++ {
		totalDividends += periods[i].Income.Dividend
	}

	// A sponsor check of zero or less (an over-levered deal where new debt
	// consumes the entire funding table, see BuildSourcesAndUses) makes
	// MOIC and IRR undefined rather than +Inf/NaN.
	indeterminate := su.SponsorEquity <= 0

	var moic *float64
	var irr *float64
	if !indeterminate {
		m := (exitEquity + totalDividends) / su.SponsorEquity
		moic = &m

		if totalDividends == 0 {
			if r, ok := closedFormIRR(su.SponsorEquity, exitEquity, a.ExitYear); ok {
				irr = &r
			}
		} else {
			flows := make([]float64, len(periods))
			flows[0] = -su.SponsorEquity
			for i := 1; i < len(periods); i++ {
				flows[i] = periods[i].Income.Dividend
			}
			flows[len(flows)-1] += exitEquity
			if r, ok := bisectionIRR(flows); ok {
				irr = &r
			}
		}
	}

	y := a.ExitYear
	if indeterminate {
		report.addWarning("indeterminate", "MOIC and IRR are indeterminate: sponsor equity is zero or negative", &y, nil)
	} else if irr == nil {
		report.addWarning("irr_not_found", "IRR did not converge for the given cash flow stream", &y, nil)
	}

	return ReturnsResult{
		ExitYear:      a.ExitYear,
		ExitEBITDA:    exitEBITDA,
		ExitEV:        exitEV,
		ExitDebt:      exitDebt,
		ExitCash:      exitCash,
		ExitEquity:    exitEquity,
		SponsorEquity: su.SponsorEquity,
		MOIC:          moic,
		IRR:           irr,
	}
}

// closedFormIRR solves (1+r)^years = exitEquity/entryEquity directly, the
// shortcut available when the only two cash flows are the entry check and
// the exit proceeds.
func closedFormIRR(entryEquity, exitEquity float64, years int) (float64, bool) {
	if entryEquity <= 0 || exitEquity < 0 || years <= 0 {
		return 0, false
	}
	ratio := exitEquity / entryEquity
	if ratio <= 0 {
		return -1, true
	}
	return math.Pow(ratio, 1.0/float64(years)) - 1, true
}

// bisectionIRR solves NPV(r) = 0 for a cash flow stream that includes
// interim distributions, by bisection over a wide, generous bracket.
// Grounded on original_source/src/lbo_model_generator.py::_calculate_irr's
// bisection fallback for non-trivial cash flow streams.
func bisectionIRR(flows []float64) (float64, bool) {
	npv := func(r float64) float64 {
		total := 0.0
		for t, cf := range flows {
			total += cf / math.Pow(1+r, float64(t))
		}
		return total
	}

	lo, hi := -0.99, 10.0
	npvLo, npvHi := npv(lo), npv(hi)
	if math.IsNaN(npvLo) || math.IsNaN(npvHi) || npvLo*npvHi > 0 {
		return 0, false
	}

	for i := 0; i < 200; i++ {
		mid := (lo + hi) / 2
		npvMid := npv(mid)
		if math.Abs(npvMid) < 1e-9 {
			return mid, true
		}
		if npvLo*npvMid < 0 {
			hi = mid
			npvHi = npvMid
		} else {
			lo = mid
			npvLo = npvMid
		}
	}
	return (lo + hi) / 2, true
}
