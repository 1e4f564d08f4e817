// Package report renders an lbo.ResultBundle into a Markdown investor
// memo: sources & uses, the period-by-period statements, the debt
// schedule, returns, and any validation findings.
package report

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/text"

	"lboengine/pkg/lbo"
)

// RenderMemo builds the Markdown text for one result bundle. Grounded on
// pkg/core/utils/markdown.go's Goldmark usage, generalized from
// LLM-output cleanup to first-party document generation: this package
// builds the Markdown itself instead of cleaning someone else's.
func RenderMemo(scenarioName string, bundle *lbo.ResultBundle) (string, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "# LBO Summary — %s\n\n", scenarioName)
	fmt.Fprintf(&b, "Run ID: `%s`\n\n", bundle.RunID)

	fmt.Fprintln(&b, "## Sources & Uses")
	fmt.Fprintln(&b, "")
	fmt.Fprintln(&b, "| Line | Amount |")
	fmt.Fprintln(&b, "|---|---:|")
	su := bundle.SourcesUses
	fmt.Fprintf(&b, "| Enterprise Value | %.1f |\n", su.EnterpriseValue)
	fmt.Fprintf(&b, "| Equity Purchase Price | %.1f |\n", su.EquityPurchasePrice)
	fmt.Fprintf(&b, "| New Debt | %.1f |\n", su.NewDebt)
	fmt.Fprintf(&b, "| Sponsor Equity | %.1f |\n", su.SponsorEquity)
	fmt.Fprintf(&b, "| Transaction Expenses | %.1f |\n", su.TransactionExpenses)
	fmt.Fprintf(&b, "| Financing Fees | %.1f |\n", su.FinancingFees)
	fmt.Fprintf(&b, "| Total Uses | %.1f |\n", su.TotalUses)
	fmt.Fprintln(&b, "")

	fmt.Fprintln(&b, "## Projected Statements")
	fmt.Fprintln(&b, "")
	fmt.Fprintln(&b, "| Year | Revenue | EBITDA | Net Income | Cash | Total Debt | Equity |")
	fmt.Fprintln(&b, "|---:|---:|---:|---:|---:|---:|---:|")
	for _, p := range bundle.Periods {
		fmt.Fprintf(&b, "| %d | %.1f | %.1f | %.1f | %.1f | %.1f | %.1f |\n",
			p.Year, p.Income.Revenue, p.Income.EBITDA, p.Income.NetIncome,
			p.Balance.Cash, p.Balance.TotalDebt, p.Balance.Equity)
	}
	fmt.Fprintln(&b, "")

	fmt.Fprintln(&b, "## Debt Schedule")
	fmt.Fprintln(&b, "")
	fmt.Fprintln(&b, "| Instrument | Year | Beginning | Interest | Scheduled | Sweep | Ending |")
	fmt.Fprintln(&b, "|---|---:|---:|---:|---:|---:|---:|")
	for _, r := range bundle.DebtSchedule {
		fmt.Fprintf(&b, "| %s | %d | %.1f | %.1f | %.1f | %.1f | %.1f |\n",
			r.Instrument, r.Year, r.Beginning, r.Interest, r.ScheduledPrincipal, r.SweepPrincipal, r.Ending)
	}
	fmt.Fprintln(&b, "")

	fmt.Fprintln(&b, "## Returns")
	fmt.Fprintln(&b, "")
	ret := bundle.Returns
	fmt.Fprintf(&b, "- Exit EV: %.1f\n", ret.ExitEV)
	fmt.Fprintf(&b, "- Exit Equity: %.1f\n", ret.ExitEquity)
	if ret.MOIC != nil {
		fmt.Fprintf(&b, "- MOIC: %.2fx\n", *ret.MOIC)
	} else {
		fmt.Fprintln(&b, "- MOIC: indeterminate")
	}
	if ret.IRR != nil {
		fmt.Fprintf(&b, "- IRR: %.1f%%\n", *ret.IRR*100)
	} else {
		fmt.Fprintln(&b, "- IRR: did not converge")
	}
	fmt.Fprintln(&b, "")

	if len(bundle.Validation.Findings) > 0 {
		fmt.Fprintln(&b, "## Validation Findings")
		fmt.Fprintln(&b, "")
		for _, f := range bundle.Validation.Findings {
			if f.Period != nil {
				fmt.Fprintf(&b, "- **%s** (%s, year %d): %s\n", f.Category, f.Code, *f.Period, f.Message)
			} else {
				fmt.Fprintf(&b, "- **%s** (%s): %s\n", f.Category, f.Code, f.Message)
			}
		}
		if bundle.Validation.Suspect {
			fmt.Fprintln(&b, "\n**This run is flagged suspect: cumulative reconciliation plug exceeds 1% of final equity.**")
		}
	}

	memo := b.String()
	if !isValidMarkdown(memo) {
		return "", fmt.Errorf("generated investor memo failed to parse as Markdown")
	}
	return memo, nil
}

// isValidMarkdown parses memo with Goldmark's default parser and reports
// whether it produced a document. Grounded on
// pkg/core/utils/markdown.go::ValidateMarkdown.
func isValidMarkdown(memo string) bool {
	parser := goldmark.DefaultParser()
	reader := text.NewReader([]byte(memo))
	doc := parser.Parse(reader)
	return doc != nil
}
