package output

import (
	"bytes"
	"fmt"

	"github.com/rpgo/fund-projection/internal/domain"
)

// ConsoleLiteFormatter provides a concise plain-text summary, one block per plan.
type ConsoleLiteFormatter struct{}

func (c ConsoleLiteFormatter) Name() string { return "console-lite" }

func (c ConsoleLiteFormatter) Format(results *domain.PlanComparison) ([]byte, error) {
	var buf bytes.Buffer
	cur := results.Currency
	fmt.Fprintln(&buf, "FUND PROJECTION SUMMARY")
	fmt.Fprintln(&buf, "================================")
	for _, p := range results.Plans {
		r := p.Result
		fmt.Fprintf(&buf, "%s (%s): Invested=%s Corpus=%s Final=%s\n",
			p.Name,
			p.Parameters.InvestmentType,
			FormatCurrency(r.TotalInvested, cur),
			FormatCurrency(r.CorpusAfterHoldingPeriod, cur),
			FormatCurrency(r.FinalBalance, cur),
		)
		fmt.Fprintf(&buf, "  Withdrawn=%s Returns=%s SustainableSWP=%s Depletion=%s\n",
			FormatCurrency(r.TotalWithdrawn, cur),
			FormatCurrency(r.TotalReturns, cur),
			FormatCurrency(r.MinSWPToSustain, cur),
			depletionText(r.YearsToZero, r.MonthsToZero),
		)
	}
	rec := AnalyzePlans(results)
	if rec.PlanName != "" && len(results.Plans) > 1 {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "Recommended: %s (Δ %s / %s)\n", rec.PlanName, FormatCurrency(rec.LeadOverNext, cur), FormatPercentage(rec.PercentageChange))
	}
	return buf.Bytes(), nil
}
