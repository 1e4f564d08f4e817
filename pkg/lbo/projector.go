package lbo

// ProjectPeriod advances the model by one year: income statement, debt
// schedule, cash flow and balance sheet, per spec.md §4.4-§4.5. Interest is
// computed by the debt solver from beginning balances before net income is
// known, and the sweep pool is computed from free cash flow only after net
// income is known — a single pass, never a fixed point. Grounded on
// pkg/core/projection/engine.go's period-loop shape and
// original_source/src/lbo_model_generator.py::_build_income_statement /
// _calculate_working_capital_changes / _build_debt_schedule.
func ProjectPeriod(prev *PeriodState, a *Assumptions, year int, report *ValidationReport) (*PeriodState, []DebtScheduleRow, error) {
	growth := a.RevenueGrowthRate[year-1]
	revenue := prev.Income.Revenue * (1 + growth)

	cogs := a.COGSPercent * revenue
	grossProfit := revenue - cogs
	sgAndA := a.SGAndAPercent * revenue
	ebitda := grossProfit - sgAndA

	dAndA := a.DepreciationPctOfPPE * prev.Balance.PPENet
	ebit := ebitda - dAndA

	prevEnd := make(map[string]float64, len(a.DebtInstruments))
	for _, d := range a.DebtInstruments {
		prevEnd[d.Name] = prev.Balance.InstrumentDebt[d.Name]
	}

	drafts, err := debtBeginningPass(a.DebtInstruments, prevEnd, year, a.ExitYear, a.TargetExitDebt)
	if err != nil {
		return nil, nil, err
	}
	totalInterest := 0.0
	totalScheduled := 0.0
	for _, dr := range drafts {
		totalInterest += dr.interest
		totalScheduled += dr.scheduled
	}

	pretaxIncome := ebit - totalInterest
	tax := pretaxIncome * a.TaxRate
	if tax < 0 {
		tax = 0
	}
	netIncome := pretaxIncome - tax

	ar := a.DaysSalesOutstanding * revenue / 365.0
	inventory := a.DaysInventoryOutstanding * cogs / 365.0
	ap := a.DaysPayableOutstanding * cogs / 365.0
	deltaWC := (ar - prev.Balance.AR) + (inventory - prev.Balance.Inventory) - (ap - prev.Balance.AP)

	capex := a.CapexPercent * revenue

	cfoBeforeDebt := netIncome + dAndA - deltaWC
	cashShortfallTopUp := 0.0
	if a.MinCashBalance > prev.Balance.Cash {
		cashShortfallTopUp = a.MinCashBalance - prev.Balance.Cash
	}
	fcfAvailableForDebt := cfoBeforeDebt - capex - cashShortfallTopUp

	dividend := 0.0
	if a.DividendPolicy != nil && netIncome > 0 {
		dividend = a.DividendPolicy.PayoutRatio * netIncome
		fcfAvailableForDebt -= dividend
	}

	sweepResults, totalSweep, err := applySweep(year, drafts, fcfAvailableForDebt)
	if err != nil {
		return nil, nil, err
	}

	rows := make([]DebtScheduleRow, 0, len(sweepResults))
	instrumentDebt := make(map[string]float64, len(sweepResults))
	for _, sr := range sweepResults {
		rows = append(rows, sr.row)
		instrumentDebt[sr.row.Instrument] = sr.row.Ending
		if report.ScenarioTags == nil {
			report.ScenarioTags = make(map[string][]PaymentScenario)
		}
		tags := report.ScenarioTags[sr.row.Instrument]
		if len(tags) == 0 || tags[len(tags)-1] != sr.scenario {
			report.ScenarioTags[sr.row.Instrument] = append(tags, sr.scenario)
		}
	}

	totalRepayment := totalScheduled + totalSweep
	cff := -totalRepayment - dividend
	cfi := -capex
	cfo := cfoBeforeDebt

	netChgCash := cfo + cfi + cff
	cashEnd := prev.Balance.Cash + netChgCash

	revolverDraw := prev.Balance.RevolverDraw
	if cashEnd < 0 {
		deficit := -cashEnd
		revolverDraw += deficit
		cff += deficit
		netChgCash += deficit
		cashEnd = 0
		y := year
		report.addWarning("liquidity_shortfall", "free cash flow was insufficient to fund scheduled debt service; drew on the revolver", &y, &deficit)
	} else if cashEnd < a.MinCashBalance-tolerance(a.MinCashBalance) {
		shortfall := a.MinCashBalance - cashEnd
		y := year
		report.addWarning("liquidity_shortfall", "ending cash fell below the minimum cash balance", &y, &shortfall)
	}

	ppeGross := prev.Balance.PPEGross + capex
	accumDep := prev.Balance.AccumDepreciation + dAndA
	ppeNet := ppeGross - accumDep

	totalDebt := 0.0
	for _, v := range instrumentDebt {
		totalDebt += v
	}
	totalDebt += revolverDraw

	carryForwardEquity := prev.Balance.Equity + netIncome - dividend

	totalAssets := cashEnd + ar + inventory + ppeNet + prev.Balance.Goodwill
	totalLiabilities := ap + totalDebt

	period := &PeriodState{
		Year: year,
		Income: IncomeLine{
			Revenue:         revenue,
			COGS:            cogs,
			GrossProfit:     grossProfit,
			SGAndA:          sgAndA,
			EBITDA:          ebitda,
			DAndA:           dAndA,
			EBIT:            ebit,
			InterestExpense: totalInterest,
			PretaxIncome:    pretaxIncome,
			Tax:             tax,
			NetIncome:       netIncome,
			Dividend:        dividend,
		},
		Balance: BalanceLine{
			Cash:               cashEnd,
			AR:                 ar,
			Inventory:          inventory,
			PPEGross:           ppeGross,
			AccumDepreciation:  accumDep,
			PPENet:             ppeNet,
			Goodwill:           prev.Balance.Goodwill,
			TotalAssets:        totalAssets,
			AP:                 ap,
			InstrumentDebt:     instrumentDebt,
			RevolverDraw:       revolverDraw,
			TotalDebt:          totalDebt,
			Equity:             carryForwardEquity,
			TotalLiabAndEquity: totalLiabilities + carryForwardEquity,
		},
		CashFlow: CashFlowLine{
			CFO:        cfo,
			CFI:        cfi,
			CFF:        cff,
			NetChgCash: netChgCash,
		},
	}

	return period, rows, nil
}
