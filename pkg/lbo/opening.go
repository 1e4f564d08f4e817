package lbo

// BuildOpeningBalanceSheet produces PeriodState[0]: initial cash, working
// capital, PP&E, goodwill, debt and sponsor equity, per spec.md §4.3.
// Grounded on
// original_source/src/lbo_model_generator.py::_build_balance_sheet's
// initial-balances section.
func BuildOpeningBalanceSheet(a *Assumptions, su SourcesAndUses, report *ValidationReport) *PeriodState {
	cash := a.MinCashBalance

	ar := overrideOr(a.InitialAR, a.StartingRevenue*a.DaysSalesOutstanding/365.0)
	cogsBasis := a.COGSPercent * a.StartingRevenue
	inventory := overrideOr(a.InitialInventory, cogsBasis*a.DaysInventoryOutstanding/365.0)
	ppeNet := overrideOr(a.InitialPPE, a.CapexPercent*a.StartingRevenue*10.0)
	ap := overrideOr(a.InitialAP, cogsBasis*a.DaysPayableOutstanding/365.0)

	netAssetBookValue := ppeNet + ar + inventory - ap
	goodwill := su.EnterpriseValue - netAssetBookValue
	if goodwill < 0 {
		goodwill = 0
	}

	instrumentDebt := make(map[string]float64, len(a.DebtInstruments))
	totalDebt := 0.0
	for _, d := range a.DebtInstruments {
		instrumentDebt[d.Name] = d.Amount
		totalDebt += d.Amount
	}

	equity := su.SponsorEquity

	totalAssets := cash + ar + inventory + ppeNet + goodwill
	totalLiabAndEquity := ap + totalDebt + equity

	if diff := totalAssets - totalLiabAndEquity; diff < -tolerance(totalAssets) || diff > tolerance(totalAssets) {
		plug := totalLiabAndEquity - totalAssets
		goodwill += plug
		totalAssets = totalLiabAndEquity
		year0 := 0
		d := plug
		report.addWarning("opening_balance_plug",
			"opening balance sheet did not balance; goodwill plugged", &year0, &d)
	}

	return &PeriodState{
		Year:   0,
		Income: IncomeLine{Revenue: a.StartingRevenue, COGS: cogsBasis},
		Balance: BalanceLine{
			Cash:               cash,
			AR:                 ar,
			Inventory:          inventory,
			PPEGross:           ppeNet,
			AccumDepreciation:  0,
			PPENet:             ppeNet,
			Goodwill:           goodwill,
			TotalAssets:        totalAssets,
			AP:                 ap,
			InstrumentDebt:     instrumentDebt,
			TotalDebt:          totalDebt,
			Equity:             equity,
			TotalLiabAndEquity: totalLiabAndEquity,
		},
	}
}

func overrideOr(override *float64, computed float64) float64 {
	if override != nil {
		return *override
	}
	return computed
}
