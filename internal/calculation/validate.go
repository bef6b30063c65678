package calculation

import (
	"github.com/rpgo/fund-projection/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	// MaxPhaseYears bounds each of the investment, holding and SWP phases.
	MaxPhaseYears = 100
	// DefaultDepletionCapMonths is the horizon after which a corpus counts as sustained.
	DefaultDepletionCapMonths = 1200
)

var (
	maxRatePercent    = decimal.NewFromInt(100)
	defaultMaxBalance = decimal.New(1, 15)
)

// ValidateParameters rejects malformed input before any arithmetic runs
func ValidateParameters(p domain.InvestmentParameters) error {
	switch p.InvestmentType {
	case domain.InvestmentSIP, domain.InvestmentYearlySIP, domain.InvestmentLumpsum:
	case "":
		return invalid("investment_type", "is required")
	default:
		return invalid("investment_type", "unsupported value %q", p.InvestmentType)
	}

	if !p.Amount.IsPositive() {
		return invalid("amount", "must be positive, got %s", p.Amount)
	}
	if p.AnnualReturnRate.IsNegative() || p.AnnualReturnRate.GreaterThan(maxRatePercent) {
		return invalid("annual_return_rate", "must be between 0 and %s percent, got %s", maxRatePercent, p.AnnualReturnRate)
	}
	if p.InvestmentPeriodYears <= 0 || p.InvestmentPeriodYears > MaxPhaseYears {
		return invalid("investment_period_years", "must be between 1 and %d, got %d", MaxPhaseYears, p.InvestmentPeriodYears)
	}
	if p.PostInvestmentHoldingYears < 0 || p.PostInvestmentHoldingYears > MaxPhaseYears {
		return invalid("post_investment_holding_years", "must be between 0 and %d, got %d", MaxPhaseYears, p.PostInvestmentHoldingYears)
	}
	if p.OneTimeWithdrawal.IsNegative() {
		return invalid("one_time_withdrawal", "cannot be negative, got %s", p.OneTimeWithdrawal)
	}
	if p.SWPMonthlyAmount.IsNegative() {
		return invalid("swp_monthly_amount", "cannot be negative, got %s", p.SWPMonthlyAmount)
	}
	if p.SWPPeriodYears < 0 || p.SWPPeriodYears > MaxPhaseYears {
		return invalid("swp_period_years", "must be between 0 and %d, got %d", MaxPhaseYears, p.SWPPeriodYears)
	}
	if p.InflationRatePercent.IsNegative() || p.InflationRatePercent.GreaterThan(maxRatePercent) {
		return invalid("inflation_rate_percent", "must be between 0 and %s percent, got %s", maxRatePercent, p.InflationRatePercent)
	}
	switch p.InflationAnchor {
	case "", domain.AnchorCurrentYear, domain.AnchorInvestmentStart:
	default:
		return invalid("inflation_anchor", "unsupported value %q", p.InflationAnchor)
	}
	return nil
}
