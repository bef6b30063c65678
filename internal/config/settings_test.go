package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rpgo/fund-projection/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets the FUNDCALC_* variables for the duration of the test
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvCurrency, EnvView, EnvFormat, EnvMaxBalance} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadSettings_Defaults(t *testing.T) {
	clearEnv(t)
	s, err := LoadSettings(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), *s)
	assert.Equal(t, "INR", s.Currency)
	assert.Equal(t, domain.ViewYearly, s.View)
	assert.Equal(t, "console", s.Format)
}

func TestLoadSettings_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvCurrency, "usd")
	t.Setenv(EnvView, "quarterly")
	t.Setenv(EnvFormat, "json")
	t.Setenv(EnvMaxBalance, "1e12")

	s, err := LoadSettings(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "USD", s.Currency)
	assert.Equal(t, domain.ViewQuarterly, s.View)
	assert.Equal(t, "json", s.Format)
	assert.True(t, s.MaxBalance.Equal(decimal.New(1, 12)))
}

func TestLoadSettings_FromDotEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("FUNDCALC_CURRENCY=EUR\nFUNDCALC_VIEW=monthly\n"), 0o600))

	s, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, "EUR", s.Currency)
	assert.Equal(t, domain.ViewMonthly, s.View)
	assert.Equal(t, "console", s.Format)
}

func TestLoadSettings_Invalid(t *testing.T) {
	tests := []struct {
		key, value, wantErr string
	}{
		{EnvView, "weekly", EnvView},
		{EnvMaxBalance, "big", "invalid number"},
		{EnvMaxBalance, "-1", "must be positive"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)
			s, err := LoadSettings(filepath.Join(t.TempDir(), "missing.env"))
			require.Error(t, err)
			assert.Nil(t, s)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
