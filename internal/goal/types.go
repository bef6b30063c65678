package goal

import (
	"github.com/rpgo/fund-projection/internal/domain"
	"github.com/shopspring/decimal"
)

// SWPGoal asks for the largest monthly withdrawal a corpus can fund
type SWPGoal struct {
	Corpus              decimal.Decimal `json:"corpus"`
	AnnualReturnPercent decimal.Decimal `json:"annual_return_percent"`
	InflationPercent    decimal.Decimal `json:"inflation_percent"`
	Years               int             `json:"years"` // the corpus must last 12*Years months
}

// ContributionGoal asks for the contribution that reaches a target corpus
type ContributionGoal struct {
	InvestmentType      domain.InvestmentType `json:"investment_type"`
	Target              decimal.Decimal       `json:"target"`
	AnnualReturnPercent decimal.Decimal       `json:"annual_return_percent"`
	Years               int                   `json:"years"`
}

// SWPResult is the outcome of a MaxSWP search
type SWPResult struct {
	Goal              SWPGoal         `json:"goal"`
	MonthlyWithdrawal decimal.Decimal `json:"monthly_withdrawal"`
	Iterations        int             `json:"iterations"`
	Converged         bool            `json:"converged"`
	ConvergenceInfo   string          `json:"convergence_info"`
}

// SolverOptions configures the bisection
type SolverOptions struct {
	Tolerance     decimal.Decimal // width of the final bracket
	MaxIterations int
}

// DefaultSolverOptions returns a one-paisa tolerance and 100 iterations
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Tolerance:     decimal.RequireFromString("0.01"),
		MaxIterations: 100,
	}
}

// GoalError represents errors from the goal planner
type GoalError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *GoalError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *GoalError) Unwrap() error { return e.Cause }
