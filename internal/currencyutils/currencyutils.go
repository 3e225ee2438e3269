// Package currencyutils provides amount parsing/formatting for the
// DATEV and MT940 wire formats and the ISO 4217 currency table used for
// balance validation.
package currencyutils

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// knownCurrencies is the set of ISO 4217 codes accepted by the codecs.
// DATEV exports in practice only carry a handful of these, but the
// table covers the currencies SEPA and SWIFT statements commonly use.
var knownCurrencies = map[string]struct{}{
	"EUR": {}, "USD": {}, "CHF": {}, "GBP": {}, "JPY": {}, "SEK": {},
	"NOK": {}, "DKK": {}, "PLN": {}, "CZK": {}, "HUF": {}, "RON": {},
	"BGN": {}, "HRK": {}, "ISK": {}, "CAD": {}, "AUD": {}, "NZD": {},
	"CNY": {}, "HKD": {}, "SGD": {}, "ZAR": {}, "TRY": {}, "MXN": {},
	"BRL": {}, "INR": {}, "RUB": {}, "KRW": {}, "THB": {}, "AED": {},
}

// IsKnownCurrency reports whether the given code is a known ISO 4217
// currency. Comparison is case-insensitive.
func IsKnownCurrency(code string) bool {
	_, ok := knownCurrencies[strings.ToUpper(strings.TrimSpace(code))]
	return ok
}

// NormalizeCurrency uppercases and trims a currency code.
func NormalizeCurrency(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ParseAmount parses a DATEV or MT940 amount string into a decimal.
// German notation is tried first ("1.234,56", "1000,50"), then plain
// decimal-point notation ("1234.56"). An empty string parses to zero.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	amountStr = strings.TrimSpace(amountStr)
	if amountStr == "" {
		return decimal.Zero, nil
	}

	standardized := standardize(amountStr)
	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}
	return amount, nil
}

// standardize converts German notation to the form decimal.NewFromString
// accepts. A comma is always a decimal separator on the DATEV/SWIFT
// wire; dots before it are thousands separators.
func standardize(amountStr string) string {
	if strings.Contains(amountStr, ",") {
		amountStr = strings.ReplaceAll(amountStr, ".", "")
		amountStr = strings.ReplaceAll(amountStr, ",", ".")
	}
	return amountStr
}

// FormatDatevAmount renders a signed amount in DATEV notation: comma
// decimal separator, two fraction digits, no thousands separators.
func FormatDatevAmount(amount decimal.Decimal) string {
	return strings.ReplaceAll(amount.StringFixed(2), ".", ",")
}

// FormatSwiftAmount renders an absolute amount in MT940 notation. SWIFT
// amounts are unsigned; direction is carried by the D/C mark.
func FormatSwiftAmount(amount decimal.Decimal) string {
	return strings.ReplaceAll(amount.Abs().StringFixed(2), ".", ",")
}
