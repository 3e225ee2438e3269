package parsererror

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinels(t *testing.T) {
	assert.EqualError(t, ErrDocumentEmpty, "datev document contains no rows")
	assert.EqualError(t, ErrNoValidTransactions, "datev document contains no convertible transactions")
	assert.False(t, errors.Is(ErrDocumentEmpty, ErrNoValidTransactions))
}

func TestInvalidTransactionCodeError(t *testing.T) {
	err := &InvalidTransactionCodeError{Code: "t!"}
	assert.Equal(t, "invalid transaction code 't!': must match [A-Z0-9]{3}", err.Error())
}

func TestInvalidReferenceLengthError(t *testing.T) {
	tests := []struct {
		name     string
		err      *InvalidReferenceLengthError
		expected string
	}{
		{
			name: "customer reference",
			err: &InvalidReferenceLengthError{
				Field: "reference",
				Value: "REFERENCE12345678",
				Max:   16,
			},
			expected: "invalid reference 'REFERENCE12345678': length 17 exceeds maximum 16",
		},
		{
			name: "bank reference",
			err: &InvalidReferenceLengthError{
				Field: "bank reference",
				Value: "BANKREFERENCE1234",
				Max:   16,
			},
			expected: "invalid bank reference 'BANKREFERENCE1234': length 17 exceeds maximum 16",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestInvalidCurrencyError(t *testing.T) {
	err := &InvalidCurrencyError{Currency: "EURO"}
	assert.Equal(t, "invalid currency 'EURO': not a known ISO 4217 code", err.Error())
}

func TestInvalidGuidError(t *testing.T) {
	err := &InvalidGuidError{Value: "not-a-guid"}
	assert.Equal(t, "invalid guid 'not-a-guid'", err.Error())
}

func TestParseError(t *testing.T) {
	tests := []struct {
		name     string
		err      *ParseError
		expected string
	}{
		{
			name: "basic parse error",
			err: &ParseError{
				Parser: "camt053",
				Field:  "amount",
				Value:  "invalid",
				Err:    errors.New("invalid decimal"),
			},
			expected: "camt053: failed to parse amount='invalid': invalid decimal",
		},
		{
			name: "parse error with empty value",
			err: &ParseError{
				Parser: "MT940",
				Field:  "balance date",
				Value:  "",
				Err:    errors.New("empty date"),
			},
			expected: "MT940: failed to parse balance date='': empty date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestParseError_Unwrap(t *testing.T) {
	originalErr := errors.New("original error")
	parseErr := &ParseError{
		Parser: "camt053",
		Field:  "amount",
		Value:  "invalid",
		Err:    originalErr,
	}

	assert.Equal(t, originalErr, parseErr.Unwrap())
	assert.True(t, errors.Is(parseErr, originalErr))
}

func TestInvalidFormatError(t *testing.T) {
	err := &InvalidFormatError{
		Source:         "datev",
		ExpectedFormat: "DATEV statement line",
		Msg:            "unknown format tag",
	}
	assert.Equal(t,
		"invalid format in 'datev': unknown format tag. Expected: DATEV statement line",
		err.Error())
}

func TestErrorsAsTargets(t *testing.T) {
	var wrapped error = &ParseError{
		Parser: "camt053",
		Field:  "Bal/Amt",
		Value:  "x",
		Err:    &InvalidCurrencyError{Currency: "XXX"},
	}

	var parseErr *ParseError
	assert.True(t, errors.As(wrapped, &parseErr))

	var currencyErr *InvalidCurrencyError
	assert.True(t, errors.As(wrapped, &currencyErr))
}
