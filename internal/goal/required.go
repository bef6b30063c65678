// Package goal inverts the projection formulas: how much to invest for a target
// corpus, and how much a corpus can pay out for a number of years.
package goal

import (
	"fmt"

	"github.com/rpgo/fund-projection/internal/calculation"
	"github.com/rpgo/fund-projection/internal/domain"
	xdec "github.com/rpgo/fund-projection/pkg/decimal"
	"github.com/shopspring/decimal"
)

var unit = decimal.NewFromInt(1)

// RequiredMonthlySIP returns the monthly SIP that grows to target after years
func RequiredMonthlySIP(target, annualRatePercent decimal.Decimal, years int) (decimal.Decimal, error) {
	return Required(ContributionGoal{
		InvestmentType:      domain.InvestmentSIP,
		Target:              target,
		AnnualReturnPercent: annualRatePercent,
		Years:               years,
	})
}

// RequiredLumpsum returns the one-off investment that grows to target after years
func RequiredLumpsum(target, annualRatePercent decimal.Decimal, years int) (decimal.Decimal, error) {
	return Required(ContributionGoal{
		InvestmentType:      domain.InvestmentLumpsum,
		Target:              target,
		AnnualReturnPercent: annualRatePercent,
		Years:               years,
	})
}

// Required divides the target by the future value of one unit of contribution.
// Every future-value formula is linear in the amount, so this is exact up to
// rounding.
func Required(g ContributionGoal) (decimal.Decimal, error) {
	const op = "required_contribution"
	if err := validateCommon(op, g.Target, "target", g.AnnualReturnPercent, g.Years); err != nil {
		return decimal.Zero, err
	}

	var (
		factor decimal.Decimal
		err    error
	)
	switch g.InvestmentType {
	case domain.InvestmentSIP:
		factor, err = calculation.SIPFutureValue(unit, g.AnnualReturnPercent, g.Years)
	case domain.InvestmentYearlySIP:
		factor, err = calculation.YearlySIPFutureValue(unit, g.AnnualReturnPercent, g.Years)
	case domain.InvestmentLumpsum:
		factor, err = calculation.CompoundLumpsum(unit, g.AnnualReturnPercent, g.Years)
	default:
		return decimal.Zero, &GoalError{
			Operation: op,
			Message:   fmt.Sprintf("unsupported investment type %q", g.InvestmentType),
			Cause:     calculation.ErrInvalidParameter,
		}
	}
	if err != nil {
		return decimal.Zero, &GoalError{Operation: op, Message: "failed to compute growth factor", Cause: err}
	}

	amount, err := xdec.Div(g.Target, factor)
	if err != nil {
		return decimal.Zero, &GoalError{Operation: op, Message: "growth factor is zero", Cause: calculation.ErrDivisionByZero}
	}
	return amount, nil
}

func validateCommon(op string, amount decimal.Decimal, field string, ratePercent decimal.Decimal, years int) error {
	if !amount.IsPositive() {
		return &GoalError{Operation: op, Message: fmt.Sprintf("%s must be positive, got %s", field, amount), Cause: calculation.ErrInvalidParameter}
	}
	if ratePercent.IsNegative() || ratePercent.GreaterThan(decimal.NewFromInt(100)) {
		return &GoalError{Operation: op, Message: fmt.Sprintf("rate must be between 0 and 100 percent, got %s", ratePercent), Cause: calculation.ErrInvalidParameter}
	}
	if years <= 0 || years > calculation.MaxPhaseYears {
		return &GoalError{Operation: op, Message: fmt.Sprintf("years must be between 1 and %d, got %d", calculation.MaxPhaseYears, years), Cause: calculation.ErrInvalidParameter}
	}
	return nil
}
