package calculation

import (
	"iter"
	"slices"

	"github.com/rpgo/fund-projection/internal/domain"
	xdec "github.com/rpgo/fund-projection/pkg/decimal"
	"github.com/shopspring/decimal"
)

// monthEntry is one month of the timeline. The one-time withdrawal is an entry
// of its own that shares the month of the last holding (or investment) month.
type monthEntry struct {
	phase      domain.Phase
	month      int
	opening    decimal.Decimal
	investment decimal.Decimal
	interest   decimal.Decimal
	withdrawal decimal.Decimal // always >= 0 here; the one-time entry is negated on output
	closing    decimal.Decimal
}

// Ledger is the month-by-month record of one projection. It is immutable once
// built; every breakdown view and every headline figure is read from it.
type Ledger struct {
	params  domain.InvestmentParameters
	entries []monthEntry

	invested        decimal.Decimal
	withdrawn       decimal.Decimal
	afterInvestment decimal.Decimal
	afterHolding    decimal.Decimal
	afterOneTime    decimal.Decimal
}

// BuildLedger validates p and replays every month of its timeline
func BuildLedger(p domain.InvestmentParameters) (*Ledger, error) {
	return buildLedger(p, defaultMaxBalance)
}

func buildLedger(p domain.InvestmentParameters, maxBalance decimal.Decimal) (*Ledger, error) {
	if err := ValidateParameters(p); err != nil {
		return nil, err
	}
	b := &ledgerBuilder{
		l:          &Ledger{params: p},
		maxBalance: maxBalance,
	}
	b.l.entries = make([]monthEntry, 0, p.InvestmentMonths()+p.HoldingMonths()+p.SWPMonths()+1)

	steps := []func() error{b.investmentPhase, b.holdingPhase, b.oneTimeWithdrawal, b.swpPhase}
	for _, step := range steps {
		if err := step(); err != nil {
			return nil, err
		}
	}
	return b.l, nil
}

type ledgerBuilder struct {
	l          *Ledger
	maxBalance decimal.Decimal
	balance    decimal.Decimal
	month      int
}

func (b *ledgerBuilder) push(e monthEntry) error {
	if e.closing.Abs().GreaterThan(b.maxBalance) {
		return failed(string(e.phase), "balance %s at month %d exceeds the limit of %s", e.closing.StringFixed(2), e.month, b.maxBalance)
	}
	b.l.entries = append(b.l.entries, e)
	b.l.invested = xdec.Add(b.l.invested, e.investment)
	b.l.withdrawn = xdec.Add(b.l.withdrawn, e.withdrawal)
	b.balance = e.closing
	return nil
}

// credit appends a month whose closing balance is already known and derives
// the interest as closing - opening - investment.
func (b *ledgerBuilder) credit(phase domain.Phase, investment, closing decimal.Decimal) error {
	b.month++
	opening := b.balance
	return b.push(monthEntry{
		phase:      phase,
		month:      b.month,
		opening:    opening,
		investment: investment,
		interest:   xdec.Sub(xdec.Sub(closing, opening), investment),
		closing:    closing,
	})
}

func (b *ledgerBuilder) investmentPhase() error {
	p := b.l.params
	for k := 1; k <= p.InvestmentMonths(); k++ {
		year, monthOfYear := (k-1)/12+1, (k-1)%12+1
		var investment, closing decimal.Decimal
		var err error

		switch p.InvestmentType {
		case domain.InvestmentSIP:
			investment = p.Amount
			closing, err = monthlySIPBalance(p.Amount, p.AnnualReturnRate, k)
		case domain.InvestmentYearlySIP:
			if monthOfYear == 1 {
				investment = p.Amount
			}
			if monthOfYear == 12 {
				closing, err = YearlySIPFutureValue(p.Amount, p.AnnualReturnRate, year)
			} else if monthOfYear == 1 {
				closing = xdec.Add(b.balance, p.Amount)
			} else {
				closing = b.balance
			}
		case domain.InvestmentLumpsum:
			if k == 1 {
				investment = p.Amount
			}
			if monthOfYear == 12 {
				closing, err = CompoundLumpsum(p.Amount, p.AnnualReturnRate, year)
			} else {
				closing = xdec.Add(b.balance, investment)
			}
		}
		if err != nil {
			return err
		}
		if err := b.credit(domain.PhaseInvestment, investment, closing); err != nil {
			return err
		}
	}
	b.l.afterInvestment = b.balance
	return nil
}

// monthlySIPBalance is the SIP value after months contributions.
func monthlySIPBalance(amount, annualRatePercent decimal.Decimal, months int) (decimal.Decimal, error) {
	r, err := xdec.MonthlyRate(annualRatePercent)
	if err != nil {
		return decimal.Zero, wrapArith("annual_return_rate", err)
	}
	return annuityDue(amount, r, months)
}

// holdingPhase compounds the corpus as a lumpsum, crediting each anniversary.
func (b *ledgerBuilder) holdingPhase() error {
	p := b.l.params
	corpus := b.l.afterInvestment
	for h := 1; h <= p.HoldingMonths(); h++ {
		closing := b.balance
		if h%12 == 0 {
			var err error
			closing, err = CompoundLumpsum(corpus, p.AnnualReturnRate, h/12)
			if err != nil {
				return err
			}
		}
		if err := b.credit(domain.PhaseHolding, decimal.Zero, closing); err != nil {
			return err
		}
	}
	b.l.afterHolding = b.balance
	return nil
}

// oneTimeWithdrawal takes at most the available corpus.
func (b *ledgerBuilder) oneTimeWithdrawal() error {
	amount := b.l.params.OneTimeWithdrawal
	if amount.IsPositive() {
		opening := b.balance
		w := xdec.Min(amount, xdec.Max(opening, decimal.Zero))
		if err := b.push(monthEntry{
			phase:      domain.PhaseOneTimeWithdrawal,
			month:      b.month,
			opening:    opening,
			withdrawal: w,
			closing:    xdec.Sub(opening, w),
		}); err != nil {
			return err
		}
	}
	b.l.afterOneTime = b.balance
	return nil
}

// swpPhase applies growth and then the inflation-adjusted withdrawal, capped at
// what is left so the ledger never shows a negative balance.
func (b *ledgerBuilder) swpPhase() error {
	p := b.l.params
	months := p.SWPMonths()
	if months == 0 {
		return nil
	}
	r, err := xdec.MonthlyRate(p.AnnualReturnRate)
	if err != nil {
		return wrapArith("annual_return_rate", err)
	}
	schedule := newWithdrawalSchedule(p.SWPMonthlyAmount, p.InflationRatePercent, inflationOffset(p))
	for s := 1; s <= months; s++ {
		opening := b.balance
		interest := xdec.Mul(opening, r)
		grown := xdec.Add(opening, interest)
		w, err := schedule.amountFor(s)
		if err != nil {
			return err
		}
		w = xdec.Min(w, xdec.Max(grown, decimal.Zero))
		b.month++
		if err := b.push(monthEntry{
			phase:      domain.PhaseSWP,
			month:      b.month,
			opening:    opening,
			interest:   interest,
			withdrawal: w,
			closing:    xdec.Sub(grown, w),
		}); err != nil {
			return err
		}
	}
	return nil
}

// inflationOffset is the number of years already elapsed when the SWP starts,
// as seen by the inflation anchor.
func inflationOffset(p domain.InvestmentParameters) int {
	if p.Anchor() == domain.AnchorInvestmentStart {
		return p.InvestmentPeriodYears + p.PostInvestmentHoldingYears
	}
	return 0
}

// Parameters returns the input the ledger was built from
func (l *Ledger) Parameters() domain.InvestmentParameters { return l.params }

// Months is the number of timeline months covered
func (l *Ledger) Months() int {
	if len(l.entries) == 0 {
		return 0
	}
	return l.entries[len(l.entries)-1].month
}

// FinalBalance is the closing balance of the last entry
func (l *Ledger) FinalBalance() decimal.Decimal {
	if len(l.entries) == 0 {
		return decimal.Zero
	}
	return l.entries[len(l.entries)-1].closing
}

// Periods yields the ledger rolled up to the view's granularity. Periods never
// straddle phases and the one-time withdrawal is always a row of its own. Each
// range over the sequence starts again from the first month.
func (l *Ledger) Periods(view domain.BreakdownView) iter.Seq[domain.BreakdownRow] {
	size := view.Months()
	return func(yield func(domain.BreakdownRow) bool) {
		var cumInvested, cumInterest decimal.Decimal
		index := 0
		for i := 0; i < len(l.entries); {
			first := l.entries[i]
			row := domain.BreakdownRow{
				Phase:          first.phase,
				StartMonth:     first.month,
				OpeningBalance: first.opening,
			}
			var withdrawal decimal.Decimal
			j := i
			for ; j < len(l.entries) && j-i < size && l.entries[j].phase == first.phase; j++ {
				e := l.entries[j]
				row.PeriodInvestment = xdec.Add(row.PeriodInvestment, e.investment)
				row.PeriodInterest = xdec.Add(row.PeriodInterest, e.interest)
				withdrawal = xdec.Add(withdrawal, e.withdrawal)
				row.EndMonth = e.month
				row.ClosingBalance = e.closing
			}
			if first.phase == domain.PhaseOneTimeWithdrawal {
				withdrawal = withdrawal.Neg()
			}
			row.Withdrawal = withdrawal

			cumInvested = xdec.Add(cumInvested, row.PeriodInvestment)
			cumInterest = xdec.Add(cumInterest, row.PeriodInterest)
			index++
			row.PeriodIndex = index
			row.TotalInvested = cumInvested
			row.TotalInterest = cumInterest

			if !yield(row) {
				return
			}
			i = j
		}
	}
}

// Breakdown collects Periods into a slice
func (l *Ledger) Breakdown(view domain.BreakdownView) []domain.BreakdownRow {
	return slices.Collect(l.Periods(view))
}
