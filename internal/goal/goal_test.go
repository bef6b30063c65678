package goal

import (
	"context"
	"errors"
	"testing"

	"github.com/rpgo/fund-projection/internal/calculation"
	"github.com/rpgo/fund-projection/internal/domain"
	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func within(want, got decimal.Decimal, tol string) bool {
	return got.Sub(want).Abs().LessThanOrEqual(d(tol))
}

func TestRequiredMonthlySIP(t *testing.T) {
	got, err := RequiredMonthlySIP(d("2323390.7635"), d("12"), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !within(d("10000"), got, "0.01") {
		t.Errorf("Expected about 10000, got %s", got)
	}

	// feeding the answer back reproduces the target
	target := d("5000000")
	sip, err := RequiredMonthlySIP(target, d("9.5"), 17)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fv, err := calculation.SIPFutureValue(sip, d("9.5"), 17)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !within(target, fv, "0.01") {
		t.Errorf("Expected future value %s, got %s", target, fv)
	}
}

func TestRequiredLumpsum(t *testing.T) {
	got, err := RequiredLumpsum(d("310584.82"), d("12"), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !within(d("100000"), got, "0.01") {
		t.Errorf("Expected about 100000, got %s", got)
	}

	got, err = RequiredLumpsum(d("1000"), decimal.Zero, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(d("1000")) {
		t.Errorf("zero rate should need the target itself, got %s", got)
	}
}

func TestRequired_YearlySIP(t *testing.T) {
	got, err := Required(ContributionGoal{
		InvestmentType:      domain.InvestmentYearlySIP,
		Target:              d("196545.83"),
		AnnualReturnPercent: d("12"),
		Years:               10,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !within(d("10000"), got, "0.01") {
		t.Errorf("Expected about 10000, got %s", got)
	}
}

func TestRequired_Invalid(t *testing.T) {
	tests := []struct {
		name string
		goal ContributionGoal
	}{
		{"zero target", ContributionGoal{InvestmentType: domain.InvestmentSIP, Target: decimal.Zero, AnnualReturnPercent: d("10"), Years: 5}},
		{"zero years", ContributionGoal{InvestmentType: domain.InvestmentSIP, Target: d("100"), AnnualReturnPercent: d("10"), Years: 0}},
		{"rate too high", ContributionGoal{InvestmentType: domain.InvestmentSIP, Target: d("100"), AnnualReturnPercent: d("250"), Years: 5}},
		{"unknown type", ContributionGoal{InvestmentType: "weekly", Target: d("100"), AnnualReturnPercent: d("10"), Years: 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Required(tt.goal)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !errors.Is(err, calculation.ErrInvalidParameter) {
				t.Errorf("Expected ErrInvalidParameter, got %v", err)
			}
			var ge *GoalError
			if !errors.As(err, &ge) || ge.Operation != "required_contribution" {
				t.Errorf("Expected GoalError for required_contribution, got %#v", err)
			}
		})
	}
}

func TestNewDefaultSolver(t *testing.T) {
	s := NewDefaultSolver()
	if s == nil {
		t.Fatal("Expected solver to be created, got nil")
	}
	want := DefaultSolverOptions()
	if !s.Options.Tolerance.Equal(want.Tolerance) || s.Options.MaxIterations != want.MaxIterations {
		t.Errorf("Expected default options, got %+v", s.Options)
	}
}

func TestSolver_MaxSWP_ZeroRate(t *testing.T) {
	s := NewDefaultSolver()
	g := SWPGoal{Corpus: d("120000"), AnnualReturnPercent: decimal.Zero, Years: 10}

	res, err := s.MaxSWP(context.Background(), g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Converged {
		t.Fatalf("Expected convergence, got %s", res.ConvergenceInfo)
	}
	// 1000/month empties the corpus exactly in month 120, so the answer sits just below it
	if !res.MonthlyWithdrawal.LessThan(d("1000")) || res.MonthlyWithdrawal.LessThan(d("999.98")) {
		t.Errorf("Expected just under 1000, got %s", res.MonthlyWithdrawal)
	}
	assertBoundary(t, s, g, res.MonthlyWithdrawal)
}

func TestSolver_MaxSWP_WithGrowthAndInflation(t *testing.T) {
	s := NewDefaultSolver()
	g := SWPGoal{Corpus: d("1000000"), AnnualReturnPercent: d("8"), InflationPercent: d("6"), Years: 20}

	res, err := s.MaxSWP(context.Background(), g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Converged {
		t.Fatalf("Expected convergence, got %s", res.ConvergenceInfo)
	}
	if res.Iterations == 0 || res.Iterations > DefaultSolverOptions().MaxIterations {
		t.Errorf("unexpected iteration count %d", res.Iterations)
	}
	assertBoundary(t, s, g, res.MonthlyWithdrawal)

	// drawing for a finite horizon allows more than the interest alone, inflation allows less
	flat := g
	flat.InflationPercent = decimal.Zero
	flatRes, err := s.MaxSWP(context.Background(), flat)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !flatRes.MonthlyWithdrawal.GreaterThan(res.MonthlyWithdrawal) {
		t.Errorf("inflation should lower the withdrawal: flat %s, inflated %s", flatRes.MonthlyWithdrawal, res.MonthlyWithdrawal)
	}
	if !flatRes.MonthlyWithdrawal.GreaterThan(calculation.MinSustainableSWP(g.Corpus, g.AnnualReturnPercent)) {
		t.Errorf("finite horizon should allow drawing principal, got %s", flatRes.MonthlyWithdrawal)
	}
}

func assertBoundary(t *testing.T, s *Solver, g SWPGoal, w decimal.Decimal) {
	t.Helper()
	ok, err := s.Lasts(g, w)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Errorf("withdrawal %s should last %d years", w, g.Years)
	}
	ok, err = s.Lasts(g, w.Add(DefaultSolverOptions().Tolerance))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Errorf("withdrawal %s plus one tolerance step should not last", w)
	}
}

func TestSolver_MaxSWP_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := NewDefaultSolver().MaxSWP(ctx, SWPGoal{Corpus: d("1000000"), AnnualReturnPercent: d("8"), Years: 20})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if res != nil {
		t.Error("Expected nil result on cancellation")
	}
}

func TestSolver_MaxSWP_IterationLimit(t *testing.T) {
	s := NewSolver(SolverOptions{Tolerance: d("0.01"), MaxIterations: 3})
	res, err := s.MaxSWP(context.Background(), SWPGoal{Corpus: d("1000000"), AnnualReturnPercent: d("8"), Years: 20})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Converged {
		t.Error("Expected no convergence after 3 iterations")
	}
	if res.Iterations != 3 {
		t.Errorf("Expected 3 iterations, got %d", res.Iterations)
	}
}

func TestSolver_MaxSWP_Invalid(t *testing.T) {
	s := NewDefaultSolver()
	for _, g := range []SWPGoal{
		{Corpus: decimal.Zero, AnnualReturnPercent: d("8"), Years: 10},
		{Corpus: d("1000"), AnnualReturnPercent: d("8"), Years: 101},
		{Corpus: d("1000"), AnnualReturnPercent: d("8"), InflationPercent: d("-1"), Years: 10},
	} {
		_, err := s.MaxSWP(context.Background(), g)
		if !errors.Is(err, calculation.ErrInvalidParameter) {
			t.Errorf("goal %+v: expected ErrInvalidParameter, got %v", g, err)
		}
	}
}
