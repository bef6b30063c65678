package calculation

import (
	xdec "github.com/rpgo/fund-projection/pkg/decimal"
	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// CompoundLumpsum returns principal × (1 + rate/100)^years
func CompoundLumpsum(principal, annualRatePercent decimal.Decimal, years int) (decimal.Decimal, error) {
	if years < 0 {
		return decimal.Zero, invalid("years", "cannot be negative, got %d", years)
	}
	factor, err := xdec.Pow(xdec.GrowthFactor(annualRatePercent), years)
	if err != nil {
		return decimal.Zero, wrapArith("years", err)
	}
	return xdec.Mul(principal, factor), nil
}

// SIPFutureValue returns the value of a monthly SIP after years, contributions
// made at the start of each month: P × ((1+r)^n − 1)/r × (1+r), n = 12·years,
// r = rate/1200. A zero rate degenerates to P × n.
func SIPFutureValue(monthlyAmount, annualRatePercent decimal.Decimal, years int) (decimal.Decimal, error) {
	if years < 0 {
		return decimal.Zero, invalid("years", "cannot be negative, got %d", years)
	}
	r, err := xdec.MonthlyRate(annualRatePercent)
	if err != nil {
		return decimal.Zero, wrapArith("annual_return_rate", err)
	}
	return annuityDue(monthlyAmount, r, years*12)
}

// YearlySIPFutureValue is SIPFutureValue for one contribution at the start of
// each year, compounded annually.
func YearlySIPFutureValue(yearlyAmount, annualRatePercent decimal.Decimal, years int) (decimal.Decimal, error) {
	if years < 0 {
		return decimal.Zero, invalid("years", "cannot be negative, got %d", years)
	}
	return annuityDue(yearlyAmount, xdec.PercentToRate(annualRatePercent), years)
}

// annuityDue is the future value of n payments made at the start of each period.
func annuityDue(payment, rate decimal.Decimal, n int) (decimal.Decimal, error) {
	if n == 0 {
		return decimal.Zero, nil
	}
	if rate.IsZero() {
		return xdec.Mul(payment, decimal.NewFromInt(int64(n))), nil
	}
	growth := xdec.Add(one, rate)
	g, err := xdec.Pow(growth, n)
	if err != nil {
		return decimal.Zero, wrapArith("periods", err)
	}
	q, err := xdec.Div(xdec.Mul(payment, xdec.Sub(g, one)), rate)
	if err != nil {
		return decimal.Zero, wrapArith("rate", err)
	}
	return xdec.Mul(q, growth), nil
}
