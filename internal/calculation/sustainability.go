package calculation

import (
	xdec "github.com/rpgo/fund-projection/pkg/decimal"
	"github.com/shopspring/decimal"
)

// MinSustainableSWP returns the monthly interest the corpus earns at the given
// annual return: the largest monthly draw that leaves the principal intact.
func MinSustainableSWP(corpus, annualReturnPercent decimal.Decimal) decimal.Decimal {
	if !corpus.IsPositive() {
		return decimal.Zero
	}
	r, err := xdec.MonthlyRate(annualReturnPercent)
	if err != nil {
		// divisor is the constant 1200
		return decimal.Zero
	}
	return xdec.Mul(corpus, r)
}
