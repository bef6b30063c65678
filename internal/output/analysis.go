package output

import (
	"sort"

	"github.com/rpgo/fund-projection/internal/domain"
	"github.com/shopspring/decimal"
)

// Recommendation encapsulates the selection result of the best plan.
type Recommendation struct {
	PlanName         string
	FinalBalance     decimal.Decimal
	TotalWithdrawn   decimal.Decimal
	LeadOverNext     decimal.Decimal // over the runner-up, by final balance plus withdrawals
	PercentageChange decimal.Decimal
	Sustainable      bool
}

// AnalyzePlans ranks plans by the money they deliver: final balance plus
// everything withdrawn. Ties keep file order.
func AnalyzePlans(results *domain.PlanComparison) Recommendation {
	type ranked struct {
		plan  domain.PlanResult
		value decimal.Decimal
	}
	var ranks []ranked
	for _, p := range results.Plans {
		ranks = append(ranks, ranked{p, p.Result.FinalBalance.Add(p.Result.TotalWithdrawn)})
	}
	if len(ranks) == 0 {
		return Recommendation{}
	}
	sort.SliceStable(ranks, func(i, j int) bool { return ranks[i].value.GreaterThan(ranks[j].value) })

	best := ranks[0]
	rec := Recommendation{
		PlanName:       best.plan.Name,
		FinalBalance:   best.plan.Result.FinalBalance,
		TotalWithdrawn: best.plan.Result.TotalWithdrawn,
		Sustainable:    best.plan.Result.Sustainable(),
	}
	if len(ranks) > 1 {
		next := ranks[1].value
		rec.LeadOverNext = best.value.Sub(next)
		if !next.IsZero() {
			rec.PercentageChange = rec.LeadOverNext.Div(next).Mul(decimalHundred)
		}
	}
	return rec
}
