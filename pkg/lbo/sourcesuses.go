package lbo

// BuildSourcesAndUses computes the transaction funding table: enterprise
// value, equity purchase price, fees, and the sponsor equity check needed
// to balance sources against uses. Grounded on
// original_source/src/lbo_model_generator.py::_calculate_transaction_values.
//
// Existing cash is netted into the purchase price (Open Question 2,
// resolved in DESIGN.md): equity value = EV - existing_debt + existing_cash.
func BuildSourcesAndUses(a *Assumptions) (SourcesAndUses, error) {
	ev := a.EntryEBITDA * a.EntryMultiple
	equityPurchasePrice := ev - a.ExistingDebt + a.ExistingCash

	newDebt := 0.0
	for _, d := range a.DebtInstruments {
		newDebt += d.Amount
	}

	transactionExpenses := ev * a.TransactionExpensesPct
	financingFees := newDebt * a.FinancingFeesPct

	totalUses := equityPurchasePrice + a.ExistingDebt + transactionExpenses + financingFees

	sponsorEquity := 0.0
	if a.EquityAmount != nil {
		sponsorEquity = *a.EquityAmount
		totalSources := sponsorEquity + newDebt
		if diff := totalSources - totalUses; diff > tolerance(totalUses) || diff < -tolerance(totalUses) {
			return SourcesAndUses{}, configError("debt_exceeds_sources",
				"fixed equity_amount %v does not balance sources (%v) against uses (%v)", sponsorEquity, totalSources, totalUses)
		}
	} else {
		sponsorEquity = totalUses - newDebt
		if sponsorEquity < 0 {
			sponsorEquity = 0
		}
	}

	totalSources := sponsorEquity + newDebt

	return SourcesAndUses{
		EnterpriseValue:     ev,
		EquityPurchasePrice: equityPurchasePrice,
		TransactionExpenses: transactionExpenses,
		FinancingFees:       financingFees,
		TotalUses:           totalUses,
		NewDebt:             newDebt,
		SponsorEquity:       sponsorEquity,
		TotalSources:        totalSources,
	}, nil
}
