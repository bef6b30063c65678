package output

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when a comparison carries no currency code.
const DefaultCurrency = "INR"

// FormatCurrency formats a decimal in the given ISO currency, rounded to the
// currency's minor unit. Unknown codes fall back to "CODE 1234.57".
func FormatCurrency(amount decimal.Decimal, code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		code = DefaultCurrency
	}
	cur := money.GetCurrency(code)
	if cur == nil {
		return code + " " + amount.StringFixed(2)
	}
	fraction := int32(cur.Fraction)
	minor := amount.Round(fraction).Shift(fraction).IntPart()
	return money.New(minor, cur.Code).Display()
}

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

// FormatDuration renders a month count as "4y 10m".
func FormatDuration(years, months int) string {
	switch {
	case years == 0:
		return fmt.Sprintf("%dm", months)
	case months == 0:
		return fmt.Sprintf("%dy", years)
	}
	return fmt.Sprintf("%dy %dm", years, months)
}

// depletionText describes when a corpus runs out, or that it does not.
func depletionText(yearsToZero, monthsToZero *int) string {
	if yearsToZero == nil || monthsToZero == nil {
		return "sustained"
	}
	return FormatDuration(*yearsToZero, *monthsToZero)
}

func intToString(i int) string { return strconv.Itoa(i) }

func boolToString(b bool) string { return strconv.FormatBool(b) }
