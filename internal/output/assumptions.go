package output

import (
	"fmt"

	"github.com/rpgo/fund-projection/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultAssumptions lists the modelling conventions rendered in detailed outputs.
var DefaultAssumptions = []string{
	"Monthly SIP: contributions at the start of each month, compounded monthly at rate/12",
	"Yearly SIP and lumpsum: compounded annually, interest credited on each anniversary",
	"Holding period: the corpus compounds annually with no contributions",
	"One-time withdrawal: taken once after the holding period, capped at the corpus",
	"SWP: one month of growth, then the withdrawal; inflation steps up once a year",
	"Depletion is simulated for at most 100 years; a longer-lasting corpus counts as sustained",
}

// GenerateAssumptions describes the rates of one plan
func GenerateAssumptions(p domain.InvestmentParameters) []string {
	out := []string{
		fmt.Sprintf("Annual return: %s", FormatPercentage(p.AnnualReturnRate)),
	}
	if p.SWPActive() {
		anchor := "from the first withdrawal year"
		if p.Anchor() == domain.AnchorInvestmentStart {
			anchor = "from the first investment year"
		}
		out = append(out, fmt.Sprintf("SWP inflation: %s per year, compounded %s", FormatPercentage(p.InflationRatePercent), anchor))
	}
	return append(out, DefaultAssumptions...)
}

var decimalHundred = decimal.NewFromInt(100)
