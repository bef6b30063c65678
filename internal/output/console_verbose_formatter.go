package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rpgo/fund-projection/internal/domain"
)

var (
	colorPrimary = lipgloss.Color("#7D56F4")
	colorMuted   = lipgloss.Color("#626262")
	colorBorder  = lipgloss.Color("#3C3C3C")

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	sectionStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	numberStyle  = cellStyle.Align(lipgloss.Right)
)

// ConsoleFormatter renders the detailed console report: a summary table and
// the breakdown of every plan, styled with lipgloss.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(results *domain.PlanComparison) ([]byte, error) {
	var buf bytes.Buffer
	cur := results.Currency

	fmt.Fprintln(&buf, titleStyle.Render("MUTUAL FUND INVESTMENT PROJECTION"))
	fmt.Fprintln(&buf, strings.Repeat("=", 60))
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, sectionStyle.Render("KEY ASSUMPTIONS"))
	for _, a := range DefaultAssumptions {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	for i, p := range results.Plans {
		fmt.Fprintln(&buf, sectionStyle.Render(fmt.Sprintf("PLAN %d: %s", i+1, p.Name)))
		fmt.Fprintln(&buf, mutedStyle.Render(describeParameters(p.Parameters, cur)))
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, summaryTable(p.Result, cur).Render())
		fmt.Fprintln(&buf)
		if len(p.Breakdown) > 0 {
			fmt.Fprintf(&buf, "%s BREAKDOWN\n", strings.ToUpper(string(results.View)))
			fmt.Fprintln(&buf, breakdownTable(p.Breakdown, cur).Render())
			fmt.Fprintln(&buf)
		}
	}

	if len(results.Plans) > 1 {
		rec := AnalyzePlans(results)
		fmt.Fprintln(&buf, sectionStyle.Render("RECOMMENDATION"))
		fmt.Fprintf(&buf, "%s delivers the most: final balance %s plus %s withdrawn, %s (%s) ahead of the next plan.\n",
			rec.PlanName,
			FormatCurrency(rec.FinalBalance, cur),
			FormatCurrency(rec.TotalWithdrawn, cur),
			FormatCurrency(rec.LeadOverNext, cur),
			FormatPercentage(rec.PercentageChange),
		)
	}
	return buf.Bytes(), nil
}

func describeParameters(p domain.InvestmentParameters, cur string) string {
	var parts []string
	switch p.InvestmentType {
	case domain.InvestmentSIP:
		parts = append(parts, fmt.Sprintf("%s per month for %d years", FormatCurrency(p.Amount, cur), p.InvestmentPeriodYears))
	case domain.InvestmentYearlySIP:
		parts = append(parts, fmt.Sprintf("%s per year for %d years", FormatCurrency(p.Amount, cur), p.InvestmentPeriodYears))
	default:
		parts = append(parts, fmt.Sprintf("%s invested once, held %d years", FormatCurrency(p.Amount, cur), p.InvestmentPeriodYears))
	}
	parts = append(parts, "at "+FormatPercentage(p.AnnualReturnRate))
	if p.PostInvestmentHoldingYears > 0 {
		parts = append(parts, fmt.Sprintf("then %d years of holding", p.PostInvestmentHoldingYears))
	}
	if p.OneTimeWithdrawal.IsPositive() {
		parts = append(parts, "one-time withdrawal of "+FormatCurrency(p.OneTimeWithdrawal, cur))
	}
	if p.SWPActive() {
		parts = append(parts, fmt.Sprintf("SWP of %s per month for %d years", FormatCurrency(p.SWPMonthlyAmount, cur), p.SWPPeriodYears))
		if p.InflationRatePercent.IsPositive() {
			parts = append(parts, fmt.Sprintf("inflation %s (%s)", FormatPercentage(p.InflationRatePercent), p.Anchor()))
		}
	}
	return strings.Join(parts, ", ")
}

func summaryTable(r domain.CalculationResult, cur string) *table.Table {
	rows := [][]string{
		{"Total invested", FormatCurrency(r.TotalInvested, cur)},
		{"Corpus after investment", FormatCurrency(r.CorpusAfterInvestment, cur)},
		{"Corpus after holding period", FormatCurrency(r.CorpusAfterHoldingPeriod, cur)},
		{"Total withdrawn", FormatCurrency(r.TotalWithdrawn, cur)},
		{"Final balance", FormatCurrency(r.FinalBalance, cur)},
		{"Total returns", FormatCurrency(r.TotalReturns, cur)},
		{"Sustainable monthly SWP", FormatCurrency(r.MinSWPToSustain, cur)},
		{"Corpus lasts", depletionText(r.YearsToZero, r.MonthsToZero)},
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorBorder)).
		Headers("Metric", "Value").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 1:
				return numberStyle
			}
			return cellStyle
		})
}

func breakdownTable(rows []domain.BreakdownRow, cur string) *table.Table {
	data := make([][]string, 0, len(rows))
	for _, r := range rows {
		data = append(data, []string{
			intToString(r.PeriodIndex),
			string(r.Phase),
			monthRange(r.StartMonth, r.EndMonth),
			FormatCurrency(r.OpeningBalance, cur),
			FormatCurrency(r.PeriodInvestment, cur),
			FormatCurrency(r.PeriodInterest, cur),
			FormatCurrency(r.Withdrawal, cur),
			FormatCurrency(r.ClosingBalance, cur),
		})
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorBorder)).
		Headers("#", "Phase", "Months", "Opening", "Invested", "Interest", "Withdrawal", "Closing").
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col >= 3:
				return numberStyle
			}
			return cellStyle
		})
}

func monthRange(start, end int) string {
	if start == end {
		return intToString(start)
	}
	return intToString(start) + "-" + intToString(end)
}
