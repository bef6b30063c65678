package goal

import (
	"context"
	"fmt"

	"github.com/rpgo/fund-projection/internal/calculation"
	xdec "github.com/rpgo/fund-projection/pkg/decimal"
	"github.com/shopspring/decimal"
)

var two = decimal.NewFromInt(2)

// Solver searches for withdrawal amounts by repeated simulation
type Solver struct {
	Options SolverOptions
	Logger  calculation.Logger
}

// NewSolver creates a new goal solver
func NewSolver(options SolverOptions) *Solver {
	return &Solver{Options: options, Logger: calculation.NopLogger{}}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver() *Solver {
	return NewSolver(DefaultSolverOptions())
}

func (s *Solver) logger() calculation.Logger {
	if s.Logger == nil {
		return calculation.NopLogger{}
	}
	return s.Logger
}

// MaxSWP finds the largest monthly withdrawal that keeps the corpus above zero
// for 12*Years months. It bisects between zero, which always lasts, and a
// withdrawal of the whole first month's balance, which never does.
func (s *Solver) MaxSWP(ctx context.Context, g SWPGoal) (*SWPResult, error) {
	const op = "max_swp"
	if err := validateCommon(op, g.Corpus, "corpus", g.AnnualReturnPercent, g.Years); err != nil {
		return nil, err
	}
	if g.InflationPercent.IsNegative() || g.InflationPercent.GreaterThan(decimal.NewFromInt(100)) {
		return nil, &GoalError{
			Operation: op,
			Message:   fmt.Sprintf("inflation must be between 0 and 100 percent, got %s", g.InflationPercent),
			Cause:     calculation.ErrInvalidParameter,
		}
	}

	opts := s.Options
	if !opts.Tolerance.IsPositive() {
		opts.Tolerance = DefaultSolverOptions().Tolerance
	}
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = DefaultSolverOptions().MaxIterations
	}

	r, err := xdec.MonthlyRate(g.AnnualReturnPercent)
	if err != nil {
		return nil, &GoalError{Operation: op, Message: "invalid rate", Cause: err}
	}
	lo := decimal.Zero
	hi := xdec.Add(g.Corpus, xdec.Mul(g.Corpus, r))

	result := &SWPResult{Goal: g}
	for result.Iterations < opts.MaxIterations {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		if xdec.Sub(hi, lo).LessThanOrEqual(opts.Tolerance) {
			result.Converged = true
			break
		}
		result.Iterations++

		mid, _ := xdec.Div(xdec.Add(lo, hi), two)
		ok, err := s.lasts(g, mid)
		if err != nil {
			return nil, &GoalError{Operation: op, Message: "failed to simulate withdrawal", Cause: err}
		}
		if ok {
			lo = mid
		} else {
			hi = mid
		}
		s.logger().Debugf("max swp iteration %d: %s lasts=%t, bracket [%s, %s]", result.Iterations, mid.StringFixed(2), ok, lo.StringFixed(4), hi.StringFixed(4))
	}
	if !result.Converged && xdec.Sub(hi, lo).LessThanOrEqual(opts.Tolerance) {
		result.Converged = true
	}

	result.MonthlyWithdrawal = lo
	if result.Converged {
		result.ConvergenceInfo = fmt.Sprintf("converged within %s after %d iterations", opts.Tolerance, result.Iterations)
	} else {
		result.ConvergenceInfo = fmt.Sprintf("max iterations (%d) reached with bracket width %s", opts.MaxIterations, xdec.Sub(hi, lo).StringFixed(4))
	}
	return result, nil
}

// lasts reports whether the corpus stays positive through every month of the goal
func (s *Solver) lasts(g SWPGoal, monthly decimal.Decimal) (bool, error) {
	if !monthly.IsPositive() {
		return true, nil
	}
	outcome, err := calculation.SimulateSWP(calculation.SWPInput{
		InitialCorpus:       g.Corpus,
		MonthlyWithdrawal:   monthly,
		AnnualReturnPercent: g.AnnualReturnPercent,
		InflationPercent:    g.InflationPercent,
		CapMonths:           g.Years * 12,
	})
	if err != nil {
		return false, err
	}
	return !outcome.Depleted(), nil
}

// Lasts is the predicate MaxSWP bisects on, exported for callers that want to
// check a specific withdrawal.
func (s *Solver) Lasts(g SWPGoal, monthly decimal.Decimal) (bool, error) {
	if err := validateCommon("lasts", g.Corpus, "corpus", g.AnnualReturnPercent, g.Years); err != nil {
		return false, err
	}
	return s.lasts(g, monthly)
}
