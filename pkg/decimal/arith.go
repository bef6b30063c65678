// Package decimal centralizes the rounding policy used by the projection engine.
// Every operation rounds its result to Precision decimal places so that long
// month-by-month loops do not accumulate visible drift.
package decimal

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"
)

// Precision is the number of decimal places kept after every operation.
const Precision int32 = 10

var (
	// ErrDivisionByZero is returned by Div when the divisor is exactly zero.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrNotFinite is returned by FromFloat for NaN and infinite inputs.
	ErrNotFinite = errors.New("value is not a finite number")
	// ErrNegativeExponent is returned by Pow for exponents below zero.
	ErrNegativeExponent = errors.New("negative exponent")
)

var (
	one        = decimal.NewFromInt(1)
	hundred    = decimal.NewFromInt(100)
	twelveHund = decimal.NewFromInt(1200)
)

// Add returns a+b rounded to Precision.
func Add(a, b decimal.Decimal) decimal.Decimal {
	return a.Add(b).Round(Precision)
}

// Sub returns a-b rounded to Precision.
func Sub(a, b decimal.Decimal) decimal.Decimal {
	return a.Sub(b).Round(Precision)
}

// Mul returns a*b rounded to Precision.
func Mul(a, b decimal.Decimal) decimal.Decimal {
	return a.Mul(b).Round(Precision)
}

// Div returns a/b rounded to Precision.
func Div(a, b decimal.Decimal) (decimal.Decimal, error) {
	if b.IsZero() {
		return decimal.Zero, ErrDivisionByZero
	}
	return a.DivRound(b, Precision), nil
}

// Pow raises base to a non-negative integer power by repeated squaring,
// rounding each intermediate product.
func Pow(base decimal.Decimal, n int) (decimal.Decimal, error) {
	if n < 0 {
		return decimal.Zero, ErrNegativeExponent
	}
	result := one
	b := base.Round(Precision)
	for n > 0 {
		if n&1 == 1 {
			result = Mul(result, b)
		}
		n >>= 1
		if n > 0 {
			b = Mul(b, b)
		}
	}
	return result, nil
}

// GrowthFactor returns (1 + percent/100).
func GrowthFactor(percent decimal.Decimal) decimal.Decimal {
	r, _ := Div(percent, hundred)
	return Add(one, r)
}

// PercentToRate converts 12 into 0.12.
func PercentToRate(percent decimal.Decimal) decimal.Decimal {
	r, _ := Div(percent, hundred)
	return r
}

// MonthlyRate converts an annual percentage into a monthly rate (annual/12/100).
func MonthlyRate(annualPercent decimal.Decimal) (decimal.Decimal, error) {
	return Div(annualPercent, twelveHund)
}

// FromFloat converts a float64, rejecting NaN and infinities.
func FromFloat(f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, ErrNotFinite
	}
	return decimal.NewFromFloat(f).Round(Precision), nil
}

// Min returns the smaller of a and b.
func Min(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

// Max returns the larger of a and b.
func Max(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}
