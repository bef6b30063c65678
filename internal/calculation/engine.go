package calculation

import (
	"fmt"

	"github.com/rpgo/fund-projection/internal/domain"
	xdec "github.com/rpgo/fund-projection/pkg/decimal"
	"github.com/shopspring/decimal"
)

// Limits bounds the values a projection may produce
type Limits struct {
	// MaxBalance is the largest absolute balance accepted in the ledger.
	MaxBalance decimal.Decimal
}

// DefaultLimits returns the limits used by NewEngine
func DefaultLimits() Limits {
	return Limits{MaxBalance: defaultMaxBalance}
}

// Engine runs projections. It keeps no state between calls and may be shared.
type Engine struct {
	Logger   Logger
	Recorder Recorder
	Limits   Limits
	Debug    bool // log every phase checkpoint
}

// NewEngine creates an engine with a no-op logger and default limits
func NewEngine() *Engine {
	return &Engine{
		Logger:   NopLogger{},
		Recorder: NopRecorder{},
		Limits:   DefaultLimits(),
	}
}

// SetLogger sets the logger for the engine. If nil is provided, a no-op logger is used.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// SetRecorder sets the metrics recorder. If nil is provided, events are discarded.
func (e *Engine) SetRecorder(r Recorder) {
	if r == nil {
		e.Recorder = NopRecorder{}
		return
	}
	e.Recorder = r
}

func (e *Engine) logger() Logger {
	if e.Logger == nil {
		return NopLogger{}
	}
	return e.Logger
}

func (e *Engine) recorder() Recorder {
	if e.Recorder == nil {
		return NopRecorder{}
	}
	return e.Recorder
}

func (e *Engine) maxBalance() decimal.Decimal {
	if e.Limits.MaxBalance.IsPositive() {
		return e.Limits.MaxBalance
	}
	return defaultMaxBalance
}

// Ledger builds the monthly ledger for p
func (e *Engine) Ledger(p domain.InvestmentParameters) (*Ledger, error) {
	l, err := buildLedger(p, e.maxBalance())
	if err != nil {
		e.fail(err)
		return nil, err
	}
	return l, nil
}

// Calculate returns the headline result of p
func (e *Engine) Calculate(p domain.InvestmentParameters) (*domain.CalculationResult, error) {
	proj, err := e.project(p, "")
	if err != nil {
		return nil, err
	}
	return &proj.Result, nil
}

// Breakdown returns the ledger of p at the given granularity
func (e *Engine) Breakdown(p domain.InvestmentParameters, view domain.BreakdownView) ([]domain.BreakdownRow, error) {
	l, err := e.Ledger(p)
	if err != nil {
		return nil, err
	}
	return l.Breakdown(view), nil
}

// Project returns the headline result together with its breakdown
func (e *Engine) Project(p domain.InvestmentParameters, view domain.BreakdownView) (*domain.Projection, error) {
	if view == "" {
		view = domain.ViewYearly
	}
	return e.project(p, view)
}

// project runs one projection; an empty view skips the breakdown.
func (e *Engine) project(p domain.InvestmentParameters, view domain.BreakdownView) (*domain.Projection, error) {
	l, err := e.Ledger(p)
	if err != nil {
		return nil, err
	}
	result, err := e.summarize(l)
	if err != nil {
		e.fail(err)
		return nil, err
	}
	proj := &domain.Projection{Parameters: p, Result: *result, View: view}
	if view != "" {
		proj.Breakdown = l.Breakdown(view)
	}
	e.recorder().ProjectionCompleted(string(p.InvestmentType))
	return proj, nil
}

// summarize derives the headline figures from the ledger and runs the
// depletion simulation on the post-withdrawal corpus.
func (e *Engine) summarize(l *Ledger) (*domain.CalculationResult, error) {
	p := l.params
	log := e.logger()

	final := l.FinalBalance()
	result := &domain.CalculationResult{
		TotalInvested:            l.invested,
		CorpusAfterInvestment:    l.afterInvestment,
		CorpusAfterHoldingPeriod: l.afterHolding,
		FinalBalance:             final,
		TotalWithdrawn:           l.withdrawn,
		TotalReturns:             xdec.Sub(xdec.Add(final, l.withdrawn), l.invested),
		MinSWPToSustain:          MinSustainableSWP(l.afterOneTime, p.AnnualReturnRate),
	}

	if e.Debug {
		log.Debugf("%s: invested %s over %d years", p.InvestmentType, l.invested.StringFixed(2), p.InvestmentPeriodYears)
		log.Debugf("corpus after investment: %s", l.afterInvestment.StringFixed(2))
		log.Debugf("corpus after %d holding years: %s", p.PostInvestmentHoldingYears, l.afterHolding.StringFixed(2))
		log.Debugf("corpus after one-time withdrawal: %s", l.afterOneTime.StringFixed(2))
	}

	if p.SWPActive() {
		outcome, err := SimulateSWP(SWPInput{
			InitialCorpus:        l.afterOneTime,
			MonthlyWithdrawal:    p.SWPMonthlyAmount,
			AnnualReturnPercent:  p.AnnualReturnRate,
			InflationPercent:     p.InflationRatePercent,
			InflationOffsetYears: inflationOffset(p),
		})
		if err != nil {
			return nil, err
		}
		if years, months, ok := outcome.YearsMonths(); ok {
			total := years*12 + months
			result.DepletionMonths = &total
			result.YearsToZero = &years
			result.MonthsToZero = &months
			log.Infof("SWP of %s/month depletes the corpus after %d years %d months", p.SWPMonthlyAmount.StringFixed(2), years, months)
		} else if e.Debug {
			log.Debugf("SWP of %s/month is sustained for %d months", p.SWPMonthlyAmount.StringFixed(2), DefaultDepletionCapMonths)
		}
		if p.SWPMonthlyAmount.GreaterThan(result.MinSWPToSustain) && e.Debug {
			log.Debugf("SWP exceeds the sustainable withdrawal of %s/month", result.MinSWPToSustain.StringFixed(2))
		}
	}
	return result, nil
}

func (e *Engine) fail(err error) {
	kind := ErrorKind(err)
	e.recorder().ProjectionFailed(kind)
	e.logger().Warnf("projection failed (%s): %v", kind, err)
}

// RunPlans projects every plan. The first failing plan aborts the run.
func (e *Engine) RunPlans(plans []domain.Plan, view domain.BreakdownView) (*domain.PlanComparison, error) {
	if view == "" {
		view = domain.ViewYearly
	}
	results := make([]domain.PlanResult, len(plans))
	for i, plan := range plans {
		proj, err := e.Project(plan.InvestmentParameters, view)
		if err != nil {
			return nil, fmt.Errorf("plan %q: %w", plan.Name, err)
		}
		results[i] = domain.PlanResult{Name: plan.Name, Projection: *proj}
	}
	return &domain.PlanComparison{View: view, Plans: results}, nil
}
