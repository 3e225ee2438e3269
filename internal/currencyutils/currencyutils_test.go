package currencyutils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  string
		expectErr bool
	}{
		{"german decimal comma", "1000,50", "1000.5", false},
		{"german with thousands", "1.234,56", "1234.56", false},
		{"negative german", "-1000,50", "-1000.5", false},
		{"plain decimal point", "1234.56", "1234.56", false},
		{"integer", "42", "42", false},
		{"empty is zero", "", "0", false},
		{"garbage", "abc", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, err := ParseAmount(tt.input)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			expected, _ := decimal.NewFromString(tt.expected)
			assert.True(t, amount.Equal(expected), "got %s, want %s", amount, expected)
		})
	}
}

func TestIsKnownCurrency(t *testing.T) {
	assert.True(t, IsKnownCurrency("EUR"))
	assert.True(t, IsKnownCurrency("chf"))
	assert.True(t, IsKnownCurrency(" usd "))
	assert.False(t, IsKnownCurrency("XXX"))
	assert.False(t, IsKnownCurrency(""))
}

func TestFormatDatevAmount(t *testing.T) {
	assert.Equal(t, "1000,50", FormatDatevAmount(decimal.RequireFromString("1000.5")))
	assert.Equal(t, "-12,00", FormatDatevAmount(decimal.RequireFromString("-12")))
}

func TestFormatSwiftAmount(t *testing.T) {
	assert.Equal(t, "1000,50", FormatSwiftAmount(decimal.RequireFromString("-1000.5")))
}
