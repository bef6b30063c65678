package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// InvestmentType selects how contributions enter the corpus
type InvestmentType string

const (
	InvestmentSIP       InvestmentType = "sip"
	InvestmentYearlySIP InvestmentType = "yearly_sip"
	InvestmentLumpsum   InvestmentType = "lumpsum"
)

// ParseInvestmentType accepts the canonical names plus a few common spellings
func ParseInvestmentType(s string) (InvestmentType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sip", "monthly", "monthly_sip":
		return InvestmentSIP, nil
	case "yearly_sip", "yearlysip", "yearly-sip", "yearly":
		return InvestmentYearlySIP, nil
	case "lumpsum", "lump_sum", "lump-sum":
		return InvestmentLumpsum, nil
	}
	return "", fmt.Errorf("unknown investment type %q (want sip, yearly_sip or lumpsum)", s)
}

// UnmarshalText lets plan files use any accepted spelling
func (t *InvestmentType) UnmarshalText(text []byte) error {
	v, err := ParseInvestmentType(string(text))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// InflationAnchor selects the year from which SWP inflation compounds
type InflationAnchor string

const (
	// AnchorCurrentYear compounds inflation from the first SWP year.
	AnchorCurrentYear InflationAnchor = "current_year"
	// AnchorInvestmentStart compounds inflation from the first investment year.
	AnchorInvestmentStart InflationAnchor = "investment_start"
)

// ParseInflationAnchor parses an anchor name; empty means AnchorCurrentYear
func ParseInflationAnchor(s string) (InflationAnchor, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "current_year", "currentyear", "current-year":
		return AnchorCurrentYear, nil
	case "investment_start", "investmentstart", "investment-start":
		return AnchorInvestmentStart, nil
	}
	return "", fmt.Errorf("unknown inflation anchor %q (want current_year or investment_start)", s)
}

func (a *InflationAnchor) UnmarshalText(text []byte) error {
	v, err := ParseInflationAnchor(string(text))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// InvestmentParameters is the complete, already-parsed input of one projection.
// It is passed by value and never modified by the engine.
type InvestmentParameters struct {
	InvestmentType             InvestmentType  `yaml:"investment_type" json:"investment_type"`
	Amount                     decimal.Decimal `yaml:"amount" json:"amount"`
	AnnualReturnRate           decimal.Decimal `yaml:"annual_return_rate" json:"annual_return_rate"` // percent, 12 = 12%/year
	InvestmentPeriodYears      int             `yaml:"investment_period_years" json:"investment_period_years"`
	PostInvestmentHoldingYears int             `yaml:"post_investment_holding_years,omitempty" json:"post_investment_holding_years"`
	OneTimeWithdrawal          decimal.Decimal `yaml:"one_time_withdrawal,omitempty" json:"one_time_withdrawal"`
	SWPMonthlyAmount           decimal.Decimal `yaml:"swp_monthly_amount,omitempty" json:"swp_monthly_amount"`
	SWPPeriodYears             int             `yaml:"swp_period_years,omitempty" json:"swp_period_years"`
	InflationRatePercent       decimal.Decimal `yaml:"inflation_rate_percent,omitempty" json:"inflation_rate_percent"`
	InflationAnchor            InflationAnchor `yaml:"inflation_anchor,omitempty" json:"inflation_anchor"`
}

// SWPActive reports whether a systematic withdrawal plan applies
func (p InvestmentParameters) SWPActive() bool {
	return p.SWPMonthlyAmount.IsPositive() && p.SWPPeriodYears > 0
}

// Anchor returns the inflation anchor, defaulting to AnchorCurrentYear
func (p InvestmentParameters) Anchor() InflationAnchor {
	if p.InflationAnchor == "" {
		return AnchorCurrentYear
	}
	return p.InflationAnchor
}

// InvestmentMonths is the length of the contribution phase in months
func (p InvestmentParameters) InvestmentMonths() int { return p.InvestmentPeriodYears * 12 }

// HoldingMonths is the length of the growth-only phase in months
func (p InvestmentParameters) HoldingMonths() int { return p.PostInvestmentHoldingYears * 12 }

// SWPMonths is the length of the withdrawal phase, zero when SWP is inactive
func (p InvestmentParameters) SWPMonths() int {
	if !p.SWPActive() {
		return 0
	}
	return p.SWPPeriodYears * 12
}

// Plan is a named set of parameters as it appears in a plan file
type Plan struct {
	Name                 string `yaml:"name" json:"name"`
	InvestmentParameters `yaml:",inline"`
}
