package lbo

// defaultMinEquityToEVRatio is the warn-if-below threshold for sponsor
// equity as a fraction of equity purchase price. Grounded on
// original_source/src/lbo_constants.py::LBOConstants.MIN_EQUITY_TO_EV_RATIO.
const defaultMinEquityToEVRatio = 0.10

// ValidateSourcesAndUses runs the entry-level checks that only need the
// funding table, before any period is projected. Grounded on
// original_source/src/lbo_model_generator.py's
// _validate_debt_basic_checks equity-cushion check.
func ValidateSourcesAndUses(su SourcesAndUses, report *ValidationReport) {
	if su.EquityPurchasePrice <= 0 {
		return
	}
	ratio := su.SponsorEquity / su.EquityPurchasePrice
	if ratio < defaultMinEquityToEVRatio {
		report.addInfo("thin_equity_check", "sponsor equity is thin relative to equity purchase price", nil)
	}
}

// ValidatePeriod runs the per-period checks that only need one year's
// income statement and debt schedule rows: negative EBITDA margin and
// thin debt service coverage. Grounded on
// original_source/src/lbo_model_generator.py::_validate_income_statement_assumptions.
func ValidatePeriod(period *PeriodState, rows []DebtScheduleRow, report *ValidationReport) {
	y := period.Year

	if period.Income.Revenue > 0 && period.Income.EBITDA/period.Income.Revenue < 0 {
		report.addWarning("negative_ebitda_margin", "projected EBITDA margin is negative", &y, nil)
	}

	totalDebtService := 0.0
	for _, r := range rows {
		totalDebtService += r.Interest + r.ScheduledPrincipal
	}
	if totalDebtService > 0 && period.Income.EBITDA/totalDebtService < 1.0 {
		report.addWarning("debt_service_coverage_thin", "EBITDA does not cover scheduled debt service", &y, nil)
	}
}

// FinalizeSuspect marks the run Suspect when the cumulative reconciliation
// plug across all years exceeds 1% of the final period's equity, per
// spec.md §4.6.
func FinalizeSuspect(report *ValidationReport, finalEquity float64) {
	if finalEquity <= 0 {
		if report.CumulativePlug > 0 {
			report.Suspect = true
		}
		return
	}
	if report.CumulativePlug/finalEquity > 0.01 {
		report.Suspect = true
	}
}
