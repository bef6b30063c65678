package calculation

import (
	xdec "github.com/rpgo/fund-projection/pkg/decimal"
	"github.com/shopspring/decimal"
)

// SWPState is the lifecycle of a corpus after the investment phase
type SWPState int

const (
	SWPHolding SWPState = iota
	SWPWithdrawing
	SWPDepleted
	SWPSustained
)

func (s SWPState) String() string {
	switch s {
	case SWPHolding:
		return "holding"
	case SWPWithdrawing:
		return "withdrawing"
	case SWPDepleted:
		return "depleted"
	case SWPSustained:
		return "sustained"
	}
	return "unknown"
}

// SWPInput describes one depletion simulation
type SWPInput struct {
	InitialCorpus       decimal.Decimal
	MonthlyWithdrawal   decimal.Decimal
	AnnualReturnPercent decimal.Decimal
	InflationPercent    decimal.Decimal
	// InflationOffsetYears is added to the SWP year index before inflating the
	// withdrawal (0 for the current-year anchor).
	InflationOffsetYears int
	// CapMonths bounds the loop; 0 or anything above DefaultDepletionCapMonths
	// means DefaultDepletionCapMonths.
	CapMonths int
}

// SWPOutcome is the terminal state of a simulation
type SWPOutcome struct {
	State         SWPState
	MonthsElapsed int // only meaningful when State == SWPDepleted
}

// Depleted reports whether the corpus reached zero within the cap
func (o SWPOutcome) Depleted() bool { return o.State == SWPDepleted }

// Months returns the depletion month and true, or 0 and false when sustained
func (o SWPOutcome) Months() (int, bool) {
	if !o.Depleted() {
		return 0, false
	}
	return o.MonthsElapsed, true
}

// YearsMonths splits the depletion month into whole years and remaining months
func (o SWPOutcome) YearsMonths() (years, months int, ok bool) {
	m, ok := o.Months()
	if !ok {
		return 0, 0, false
	}
	return m / 12, m % 12, true
}

// SimulateSWP runs the month-by-month withdrawal loop: grow the balance by one
// month of return, subtract that month's inflation-adjusted withdrawal, stop at
// a balance of zero or below. Reaching the cap counts as sustained; no depletion
// month beyond the cap is ever reported.
func SimulateSWP(in SWPInput) (SWPOutcome, error) {
	if !in.MonthlyWithdrawal.IsPositive() {
		return SWPOutcome{State: SWPSustained}, nil
	}
	if in.InflationOffsetYears < 0 {
		return SWPOutcome{}, invalid("inflation_offset_years", "cannot be negative, got %d", in.InflationOffsetYears)
	}
	capMonths := in.CapMonths
	if capMonths <= 0 || capMonths > DefaultDepletionCapMonths {
		capMonths = DefaultDepletionCapMonths
	}
	r, err := xdec.MonthlyRate(in.AnnualReturnPercent)
	if err != nil {
		return SWPOutcome{}, wrapArith("annual_return_rate", err)
	}
	schedule := newWithdrawalSchedule(in.MonthlyWithdrawal, in.InflationPercent, in.InflationOffsetYears)

	balance := in.InitialCorpus
	months := 0
	for months < capMonths {
		balance = xdec.Add(balance, xdec.Mul(balance, r))
		w, err := schedule.amountFor(months + 1)
		if err != nil {
			return SWPOutcome{}, err
		}
		balance = xdec.Sub(balance, w)
		months++
		if !balance.IsPositive() {
			return SWPOutcome{State: SWPDepleted, MonthsElapsed: months}, nil
		}
	}
	return SWPOutcome{State: SWPSustained}, nil
}

// withdrawalSchedule yields the inflation-adjusted withdrawal of each SWP month.
// The factor changes once per SWP year, so it is cached per year.
type withdrawalSchedule struct {
	base   decimal.Decimal
	growth decimal.Decimal
	offset int

	year   int
	amount decimal.Decimal
}

func newWithdrawalSchedule(base, inflationPercent decimal.Decimal, offset int) *withdrawalSchedule {
	return &withdrawalSchedule{
		base:   base,
		growth: xdec.GrowthFactor(inflationPercent),
		offset: offset,
		year:   -1,
	}
}

// amountFor returns the withdrawal of SWP month m (1-based).
func (s *withdrawalSchedule) amountFor(m int) (decimal.Decimal, error) {
	year := (m - 1) / 12
	if year == s.year {
		return s.amount, nil
	}
	if s.growth.Equal(one) {
		s.year, s.amount = year, s.base
		return s.amount, nil
	}
	factor, err := xdec.Pow(s.growth, s.offset+year)
	if err != nil {
		return decimal.Zero, wrapArith("inflation_rate_percent", err)
	}
	s.year, s.amount = year, xdec.Mul(s.base, factor)
	return s.amount, nil
}
