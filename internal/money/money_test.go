package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicer/internal/money"
)

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "0.00"},
		{"100", "100.00"},
		{"99.9", "99.90"},
		{"10.005", "10.01"},
		{"-3.5", "-3.50"},
		{"1234567.891", "1234567.89"},
	}

	for _, tc := range cases {
		d, err := decimal.NewFromString(tc.in)
		require.NoError(t, err)
		assert.Equal(t, tc.want, money.FormatAmount(d), "input %s", tc.in)
	}
}

// Formatting is idempotent: re-parsing and re-formatting its own output
// always yields the same string.
func TestFormatAmountIdempotent(t *testing.T) {
	for _, in := range []string{"0", "200", "10.005", "-0.004", "3.14159"} {
		d, err := decimal.NewFromString(in)
		require.NoError(t, err)

		once := money.FormatAmount(d)
		reparsed, err := money.ParseAmount(once)
		require.NoError(t, err)
		assert.Equal(t, once, money.FormatAmount(reparsed))
	}
}

func TestParseAmountRejectsGarbage(t *testing.T) {
	_, err := money.ParseAmount("twelve")
	assert.Error(t, err)
}
