package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/fund-projection/internal/domain"
)

// CSVBreakdownExporter writes every breakdown row of every plan.
type CSVBreakdownExporter struct{}

func (c CSVBreakdownExporter) Name() string { return "breakdown-csv" }

func (c CSVBreakdownExporter) Format(results *domain.PlanComparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Plan", "View", "Period", "Phase", "StartMonth", "EndMonth", "OpeningBalance", "PeriodInvestment", "PeriodInterest", "Withdrawal", "ClosingBalance", "TotalInvested", "TotalInterest"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, p := range results.Plans {
		for _, r := range p.Breakdown {
			row := []string{
				p.Name,
				string(p.View),
				intToString(r.PeriodIndex),
				string(r.Phase),
				intToString(r.StartMonth),
				intToString(r.EndMonth),
				r.OpeningBalance.StringFixed(2),
				r.PeriodInvestment.StringFixed(2),
				r.PeriodInterest.StringFixed(2),
				r.Withdrawal.StringFixed(2),
				r.ClosingBalance.StringFixed(2),
				r.TotalInvested.StringFixed(2),
				r.TotalInterest.StringFixed(2),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
