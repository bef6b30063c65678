package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertClose(t *testing.T, want, got decimal.Decimal, tolerance string) {
	t.Helper()
	assert.Truef(t, got.Sub(want).Abs().LessThanOrEqual(dec(tolerance)),
		"want %s, got %s (tolerance %s)", want, got, tolerance)
}

func TestCompoundLumpsum(t *testing.T) {
	tests := []struct {
		name      string
		principal string
		rate      string
		years     int
		want      string
	}{
		{"100k at 12% for 10 years", "100000", "12", 10, "310584.82"},
		{"zero rate keeps principal", "50000", "0", 7, "50000"},
		{"zero years keeps principal", "50000", "9", 0, "50000"},
		{"one year", "1000", "6", 1, "1060"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CompoundLumpsum(dec(tt.principal), dec(tt.rate), tt.years)
			require.NoError(t, err)
			assertClose(t, dec(tt.want), got, "0.01")
		})
	}
}

func TestSIPFutureValue(t *testing.T) {
	// 10000 × ((1.01)^120 − 1)/0.01 × 1.01
	got, err := SIPFutureValue(dec("10000"), dec("12"), 10)
	require.NoError(t, err)
	assertClose(t, dec("2323390.76"), got, "0.01")

	t.Run("zero rate degenerates to amount times months", func(t *testing.T) {
		got, err := SIPFutureValue(dec("1000"), decimal.Zero, 2)
		require.NoError(t, err)
		assert.True(t, got.Equal(dec("24000")), "got %s", got)
	})

	t.Run("zero years is empty", func(t *testing.T) {
		got, err := SIPFutureValue(dec("1000"), dec("12"), 0)
		require.NoError(t, err)
		assert.True(t, got.IsZero())
	})
}

func TestYearlySIPFutureValue(t *testing.T) {
	got, err := YearlySIPFutureValue(dec("10000"), dec("12"), 10)
	require.NoError(t, err)
	assertClose(t, dec("196545.83"), got, "0.01")

	got, err = YearlySIPFutureValue(dec("10000"), decimal.Zero, 5)
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("50000")), "got %s", got)
}

func TestCompoundingRejectsNegativeYears(t *testing.T) {
	_, err := CompoundLumpsum(dec("1000"), dec("12"), -1)
	assert.ErrorIs(t, err, ErrInvalidParameter)
	_, err = SIPFutureValue(dec("1000"), dec("12"), -1)
	assert.ErrorIs(t, err, ErrInvalidParameter)
	_, err = YearlySIPFutureValue(dec("1000"), dec("12"), -1)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestCompoundingMonotonicity(t *testing.T) {
	rates := []string{"0", "1", "6", "8.5", "12", "15"}
	prevSIP, prevLump := decimal.NewFromInt(-1), decimal.NewFromInt(-1)
	for _, r := range rates {
		sip, err := SIPFutureValue(dec("5000"), dec(r), 15)
		require.NoError(t, err)
		lump, err := CompoundLumpsum(dec("5000"), dec(r), 15)
		require.NoError(t, err)
		assert.True(t, sip.GreaterThan(prevSIP), "SIP not increasing at rate %s", r)
		assert.True(t, lump.GreaterThan(prevLump), "lumpsum not increasing at rate %s", r)
		prevSIP, prevLump = sip, lump
	}

	amounts := []string{"1", "500", "500.01", "10000", "250000"}
	prev := decimal.NewFromInt(-1)
	for _, a := range amounts {
		got, err := YearlySIPFutureValue(dec(a), dec("10"), 12)
		require.NoError(t, err)
		assert.True(t, got.GreaterThan(prev), "yearly SIP not increasing at amount %s", a)
		prev = got
	}
}
