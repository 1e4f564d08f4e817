package lbo

import "testing"

func TestValidateSourcesAndUses_FlagsThinEquity(t *testing.T) {
	su := SourcesAndUses{EquityPurchasePrice: 1000, SponsorEquity: 50} // 5% < 10% threshold
	report := &ValidationReport{}
	ValidateSourcesAndUses(su, report)
	if len(report.Findings) != 1 || report.Findings[0].Code != "thin_equity_check" {
		t.Fatalf("expected a thin_equity_check finding, got %v", report.Findings)
	}
	if report.Findings[0].Category != CategoryInfo {
		t.Errorf("thin_equity_check should be info level, got %v", report.Findings[0].Category)
	}
}

func TestValidateSourcesAndUses_SilentWhenEquityCushionIsHealthy(t *testing.T) {
	su := SourcesAndUses{EquityPurchasePrice: 1000, SponsorEquity: 400}
	report := &ValidationReport{}
	ValidateSourcesAndUses(su, report)
	if len(report.Findings) != 0 {
		t.Errorf("expected no findings, got %v", report.Findings)
	}
}

func TestValidatePeriod_FlagsNegativeEBITDAMargin(t *testing.T) {
	period := &PeriodState{Year: 2, Income: IncomeLine{Revenue: 100, EBITDA: -5}}
	report := &ValidationReport{}
	ValidatePeriod(period, nil, report)
	if len(report.Findings) != 1 || report.Findings[0].Code != "negative_ebitda_margin" {
		t.Fatalf("expected a negative_ebitda_margin finding, got %v", report.Findings)
	}
}

func TestValidatePeriod_FlagsThinDebtServiceCoverage(t *testing.T) {
	period := &PeriodState{Year: 2, Income: IncomeLine{Revenue: 100, EBITDA: 10}}
	rows := []DebtScheduleRow{{Interest: 5, ScheduledPrincipal: 10}} // EBITDA 10 / debt service 15 < 1.0
	report := &ValidationReport{}
	ValidatePeriod(period, rows, report)

	found := false
	for _, f := range report.Findings {
		if f.Code == "debt_service_coverage_thin" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a debt_service_coverage_thin finding, got %v", report.Findings)
	}
}
