package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/fund-projection/internal/domain"
)

// CSVSummarizer implements the simple summary CSV output (one row per plan).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(results *domain.PlanComparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Plan", "InvestmentType", "TotalInvested", "CorpusAfterInvestment", "CorpusAfterHoldingPeriod", "TotalWithdrawn", "FinalBalance", "TotalReturns", "MinSWPToSustain", "DepletionMonths", "YearsToZero", "MonthsToZero", "Sustainable"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, p := range results.Plans {
		r := p.Result
		row := []string{
			p.Name,
			string(p.Parameters.InvestmentType),
			r.TotalInvested.StringFixed(2),
			r.CorpusAfterInvestment.StringFixed(2),
			r.CorpusAfterHoldingPeriod.StringFixed(2),
			r.TotalWithdrawn.StringFixed(2),
			r.FinalBalance.StringFixed(2),
			r.TotalReturns.StringFixed(2),
			r.MinSWPToSustain.StringFixed(2),
			optionalInt(r.DepletionMonths),
			optionalInt(r.YearsToZero),
			optionalInt(r.MonthsToZero),
			boolToString(r.Sustainable()),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func optionalInt(v *int) string {
	if v == nil {
		return ""
	}
	return intToString(*v)
}
