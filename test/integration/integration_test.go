package integration

import (
	"errors"
	"testing"

	"github.com/rpgo/fund-projection/internal/calculation"
	"github.com/rpgo/fund-projection/internal/config"
	"github.com/rpgo/fund-projection/internal/domain"
	"github.com/rpgo/fund-projection/internal/goal"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadPlans(t *testing.T) *config.PlanFile {
	t.Helper()
	pf, err := config.NewInputParser().LoadFromFile("../testdata/plans.yaml")
	require.NoError(t, err)
	require.Len(t, pf.Plans, 3)
	return pf
}

func TestEndToEndCalculation(t *testing.T) {
	pf := loadPlans(t)

	engine := calculation.NewEngine()
	results, err := engine.RunPlans(pf.Plans, domain.ViewYearly)
	require.NoError(t, err)
	require.Len(t, results.Plans, 3)

	byName := map[string]domain.PlanResult{}
	for _, p := range results.Plans {
		byName[p.Name] = p
	}

	lump := byName["Lumpsum"]
	assert.Equal(t, domain.InvestmentLumpsum, lump.Parameters.InvestmentType)
	assert.True(t, lump.Result.FinalBalance.Sub(decimal.RequireFromString("310584.82")).Abs().LessThan(decimal.RequireFromString("0.01")),
		"got %s", lump.Result.FinalBalance)

	early := byName["Early retirement"]
	require.NotNil(t, early.Result.DepletionMonths)
	assert.Equal(t, 58, *early.Result.DepletionMonths)
	assert.False(t, early.Result.Sustainable())

	sip := byName["Monthly SIP"]
	assert.Len(t, sip.Breakdown, 22)
	last := sip.Breakdown[len(sip.Breakdown)-1]
	assert.True(t, last.ClosingBalance.Equal(sip.Result.FinalBalance))
	assert.True(t, last.TotalInvested.Equal(sip.Result.TotalInvested))
}

func TestEveryViewReconciles(t *testing.T) {
	pf := loadPlans(t)
	engine := calculation.NewEngine()

	for _, view := range []domain.BreakdownView{domain.ViewMonthly, domain.ViewQuarterly, domain.ViewYearly} {
		t.Run(string(view), func(t *testing.T) {
			results, err := engine.RunPlans(pf.Plans, view)
			require.NoError(t, err)
			for _, p := range results.Plans {
				require.NotEmpty(t, p.Breakdown, p.Name)
				last := p.Breakdown[len(p.Breakdown)-1]
				assert.True(t, last.ClosingBalance.Equal(p.Result.FinalBalance), "%s closing %s final %s", p.Name, last.ClosingBalance, p.Result.FinalBalance)
				for i := 1; i < len(p.Breakdown); i++ {
					assert.True(t, p.Breakdown[i].OpeningBalance.Equal(p.Breakdown[i-1].ClosingBalance), "%s row %d", p.Name, i)
				}
			}
		})
	}
}

func TestConfigurationValidation(t *testing.T) {
	parser := config.NewInputParser()

	pf := loadPlans(t)
	assert.NoError(t, parser.ValidateConfiguration(pf))

	_, err := parser.LoadFromFile("../testdata/duplicate_plans.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `name "Same" already used by plan 1`)
}

func TestGoalRoundTrip(t *testing.T) {
	// the contribution the planner asks for reaches the target through the engine
	target := decimal.NewFromInt(5000000)
	monthly, err := goal.RequiredMonthlySIP(target, decimal.NewFromInt(12), 15)
	require.NoError(t, err)

	result, err := calculation.NewEngine().Calculate(domain.InvestmentParameters{
		InvestmentType:        domain.InvestmentSIP,
		Amount:                monthly,
		AnnualReturnRate:      decimal.NewFromInt(12),
		InvestmentPeriodYears: 15,
	})
	require.NoError(t, err)
	assert.True(t, result.CorpusAfterInvestment.Sub(target).Abs().LessThan(decimal.NewFromInt(1)),
		"got %s", result.CorpusAfterInvestment)
}

func TestInvalidPlanIsRejectedEverywhere(t *testing.T) {
	bad := domain.InvestmentParameters{
		InvestmentType:        domain.InvestmentSIP,
		Amount:                decimal.NewFromInt(1000),
		AnnualReturnRate:      decimal.NewFromInt(12),
		InvestmentPeriodYears: 0,
	}
	_, err := calculation.NewEngine().Calculate(bad)
	assert.True(t, errors.Is(err, calculation.ErrInvalidParameter))

	err = config.NewInputParser().ValidateConfiguration(&config.PlanFile{Plans: []domain.Plan{{Name: "bad", InvestmentParameters: bad}}})
	assert.True(t, errors.Is(err, calculation.ErrInvalidParameter))
}
