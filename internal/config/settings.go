package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rpgo/fund-projection/internal/domain"
	"github.com/shopspring/decimal"
)

// Environment variables read by LoadSettings
const (
	EnvCurrency   = "FUNDCALC_CURRENCY"
	EnvView       = "FUNDCALC_VIEW"
	EnvFormat     = "FUNDCALC_FORMAT"
	EnvMaxBalance = "FUNDCALC_MAX_BALANCE"
)

// Settings holds defaults for the command line, taken from the environment
type Settings struct {
	Currency   string
	View       domain.BreakdownView
	Format     string
	MaxBalance decimal.Decimal
}

// DefaultSettings returns the built-in defaults
func DefaultSettings() Settings {
	return Settings{
		Currency:   "INR",
		View:       domain.ViewYearly,
		Format:     "console",
		MaxBalance: decimal.New(1, 15),
	}
}

// LoadSettings loads a .env file when present and reads the FUNDCALC_*
// variables on top of the defaults. Files are passed to godotenv.Load as is, so
// no argument means ./.env.
func LoadSettings(files ...string) (*Settings, error) {
	// a missing .env file is not an error
	_ = godotenv.Load(files...)

	s := DefaultSettings()
	s.Currency = strings.ToUpper(getEnvString(EnvCurrency, s.Currency))
	s.Format = getEnvString(EnvFormat, s.Format)

	view, err := domain.ParseBreakdownView(getEnvString(EnvView, string(s.View)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", EnvView, err)
	}
	s.View = view

	maxBalance, err := getEnvDecimal(EnvMaxBalance, s.MaxBalance)
	if err != nil {
		return nil, err
	}
	if !maxBalance.IsPositive() {
		return nil, fmt.Errorf("%s must be positive, got %s", EnvMaxBalance, maxBalance)
	}
	s.MaxBalance = maxBalance
	return &s, nil
}

func getEnvString(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDecimal(key string, defaultValue decimal.Decimal) (decimal.Decimal, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: invalid number %q: %w", key, value, err)
	}
	return d, nil
}
