package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// CalculationResult holds the headline figures of one projection
type CalculationResult struct {
	TotalInvested            decimal.Decimal `json:"total_invested"`
	CorpusAfterInvestment    decimal.Decimal `json:"corpus_after_investment"`
	CorpusAfterHoldingPeriod decimal.Decimal `json:"corpus_after_holding_period"`
	FinalBalance             decimal.Decimal `json:"final_balance"`
	TotalWithdrawn           decimal.Decimal `json:"total_withdrawn"`
	TotalReturns             decimal.Decimal `json:"total_returns"` // FinalBalance + TotalWithdrawn - TotalInvested
	MinSWPToSustain          decimal.Decimal `json:"min_swp_to_sustain"`

	// Depletion of the post-withdrawal corpus under the SWP. Nil when the SWP is
	// inactive or the corpus outlasts the depletion cap.
	DepletionMonths *int `json:"depletion_months"`
	YearsToZero     *int `json:"years_to_zero"`
	MonthsToZero    *int `json:"months_to_zero"` // remainder after YearsToZero
}

// Sustainable reports whether the corpus never reaches zero within the cap
func (r *CalculationResult) Sustainable() bool {
	return r.DepletionMonths == nil
}

// Phase identifies the part of the timeline a ledger row belongs to
type Phase string

const (
	PhaseInvestment        Phase = "investment"
	PhaseHolding           Phase = "holding"
	PhaseOneTimeWithdrawal Phase = "one_time_withdrawal"
	PhaseSWP               Phase = "swp"
)

// BreakdownRow is one display period of the ledger
type BreakdownRow struct {
	PeriodIndex      int             `json:"period_index"`
	Phase            Phase           `json:"phase"`
	StartMonth       int             `json:"start_month"`
	EndMonth         int             `json:"end_month"`
	OpeningBalance   decimal.Decimal `json:"opening_balance"`
	PeriodInvestment decimal.Decimal `json:"period_investment"`
	PeriodInterest   decimal.Decimal `json:"period_interest"`
	Withdrawal       decimal.Decimal `json:"withdrawal"` // positive for SWP, negative for the one-time withdrawal
	ClosingBalance   decimal.Decimal `json:"closing_balance"`
	TotalInvested    decimal.Decimal `json:"total_invested"`
	TotalInterest    decimal.Decimal `json:"total_interest"`
}

// BreakdownView is the granularity of a breakdown
type BreakdownView string

const (
	ViewMonthly   BreakdownView = "monthly"
	ViewQuarterly BreakdownView = "quarterly"
	ViewYearly    BreakdownView = "yearly"
)

// Months returns the number of months in one period of the view
func (v BreakdownView) Months() int {
	switch v {
	case ViewMonthly:
		return 1
	case ViewQuarterly:
		return 3
	default:
		return 12
	}
}

// ParseBreakdownView parses a view name; empty means yearly
func ParseBreakdownView(s string) (BreakdownView, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "monthly", "month":
		return ViewMonthly, nil
	case "quarterly", "quarter":
		return ViewQuarterly, nil
	case "", "yearly", "year", "annual":
		return ViewYearly, nil
	}
	return "", fmt.Errorf("unknown breakdown view %q (want monthly, quarterly or yearly)", s)
}

// Projection bundles the headline result with its breakdown
type Projection struct {
	Parameters InvestmentParameters `json:"parameters"`
	Result     CalculationResult    `json:"result"`
	View       BreakdownView        `json:"view"`
	Breakdown  []BreakdownRow       `json:"breakdown"`
}

// PlanResult is the projection of one named plan
type PlanResult struct {
	Name string `json:"name"`
	Projection
}

// PlanComparison holds the projections of every plan in a plan file
type PlanComparison struct {
	Currency string       `json:"currency"`
	View     BreakdownView `json:"view"`
	Plans    []PlanResult  `json:"plans"`
}

// BestByFinalBalance returns the plan with the largest final balance
func (pc *PlanComparison) BestByFinalBalance() (PlanResult, bool) {
	if len(pc.Plans) == 0 {
		return PlanResult{}, false
	}
	best := pc.Plans[0]
	for _, p := range pc.Plans[1:] {
		if p.Result.FinalBalance.GreaterThan(best.Result.FinalBalance) {
			best = p
		}
	}
	return best, true
}
