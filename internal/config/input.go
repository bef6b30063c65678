package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rpgo/fund-projection/internal/calculation"
	"github.com/rpgo/fund-projection/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// PlanFile is the top-level document of a plan file
type PlanFile struct {
	Plans []domain.Plan `yaml:"plans" json:"plans"`
}

// InputParser handles parsing of plan files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads and validates a YAML plan file
func (ip *InputParser) LoadFromFile(filename string) (*PlanFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a plan file. Unknown keys are rejected so that a
// misspelt field does not silently fall back to zero.
func (ip *InputParser) Parse(data []byte) (*PlanFile, error) {
	var pf PlanFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&pf); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(&pf); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &pf, nil
}

// ValidateConfiguration validates every plan of a loaded file
func (ip *InputParser) ValidateConfiguration(pf *PlanFile) error {
	if len(pf.Plans) == 0 {
		return fmt.Errorf("no plans provided")
	}

	seen := make(map[string]int, len(pf.Plans))
	for i, plan := range pf.Plans {
		name := strings.TrimSpace(plan.Name)
		if name == "" {
			return fmt.Errorf("plan %d: name is required", i+1)
		}
		if prev, dup := seen[name]; dup {
			return fmt.Errorf("plan %d: name %q already used by plan %d", i+1, name, prev)
		}
		seen[name] = i + 1

		if err := calculation.ValidateParameters(plan.InvestmentParameters); err != nil {
			return fmt.Errorf("plan %q validation failed: %w", name, err)
		}
	}
	return nil
}

// Marshal renders a plan file as YAML
func (ip *InputParser) Marshal(pf *PlanFile) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(pf); err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}
	return buf.Bytes(), nil
}

// CreateExampleConfiguration returns a plan file with one plan of each kind
func (ip *InputParser) CreateExampleConfiguration() *PlanFile {
	return &PlanFile{
		Plans: []domain.Plan{
			{
				Name: "Retirement SIP",
				InvestmentParameters: domain.InvestmentParameters{
					InvestmentType:             domain.InvestmentSIP,
					Amount:                     decimal.NewFromInt(10000),
					AnnualReturnRate:           decimal.NewFromInt(12),
					InvestmentPeriodYears:      20,
					PostInvestmentHoldingYears: 5,
					OneTimeWithdrawal:          decimal.NewFromInt(200000),
					SWPMonthlyAmount:           decimal.NewFromInt(50000),
					SWPPeriodYears:             25,
					InflationRatePercent:       decimal.NewFromInt(6),
					InflationAnchor:            domain.AnchorCurrentYear,
				},
			},
			{
				Name: "Annual top-up",
				InvestmentParameters: domain.InvestmentParameters{
					InvestmentType:        domain.InvestmentYearlySIP,
					Amount:                decimal.NewFromInt(120000),
					AnnualReturnRate:      decimal.NewFromInt(11),
					InvestmentPeriodYears: 15,
				},
			},
			{
				Name: "Windfall",
				InvestmentParameters: domain.InvestmentParameters{
					InvestmentType:             domain.InvestmentLumpsum,
					Amount:                     decimal.NewFromInt(1500000),
					AnnualReturnRate:           decimal.NewFromInt(10),
					InvestmentPeriodYears:      10,
					PostInvestmentHoldingYears: 2,
					SWPMonthlyAmount:           decimal.NewFromInt(30000),
					SWPPeriodYears:             20,
					InflationRatePercent:       decimal.NewFromInt(5),
					InflationAnchor:            domain.AnchorInvestmentStart,
				},
			},
		},
	}
}

// ParseAmount parses a decimal flag value such as "10000" or "12.5"
func ParseAmount(field, s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s %q: %w", field, s, err)
	}
	return d, nil
}
