// Package bankutils provides IBAN and BIC shape checks and German IBAN
// derivation from a bank code / account number pair.
package bankutils

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	ibanPattern   = regexp.MustCompile(`^[A-Z]{2}\d{2}[A-Z0-9]{11,30}$`)
	bicPattern    = regexp.MustCompile(`^[A-Z]{6}[A-Z0-9]{2}([A-Z0-9]{3})?$`)
	digitsPattern = regexp.MustCompile(`^\d+$`)
)

// IsIBAN reports whether s is IBAN-shaped. It checks structure and the
// mod-97 check digits, not bank-specific BBAN rules.
func IsIBAN(s string) bool {
	s = strings.ToUpper(strings.ReplaceAll(s, " ", ""))
	if !ibanPattern.MatchString(s) {
		return false
	}
	return mod97(rearrange(s)) == 1
}

// IsBIC reports whether s is a structurally valid BIC (8 or 11 chars).
func IsBIC(s string) bool {
	return bicPattern.MatchString(strings.ToUpper(strings.TrimSpace(s)))
}

// GenerateGermanIBAN derives a DE IBAN from an 8-digit Bankleitzahl and
// an account number of up to 10 digits.
func GenerateGermanIBAN(bankCode, accountNumber string) (string, error) {
	bankCode = strings.TrimSpace(bankCode)
	accountNumber = strings.TrimSpace(accountNumber)

	if len(bankCode) != 8 || !digitsPattern.MatchString(bankCode) {
		return "", fmt.Errorf("invalid german bank code '%s': must be 8 digits", bankCode)
	}
	if accountNumber == "" || len(accountNumber) > 10 || !digitsPattern.MatchString(accountNumber) {
		return "", fmt.Errorf("invalid account number '%s': must be 1-10 digits", accountNumber)
	}

	bban := bankCode + strings.Repeat("0", 10-len(accountNumber)) + accountNumber
	// Check digits: 98 - (BBAN + "DE00" as digits) mod 97.
	check := 98 - mod97(bban+"131400")
	return fmt.Sprintf("DE%02d%s", check, bban), nil
}

// rearrange moves the country code and check digits to the end and
// converts letters to digits (A=10 .. Z=35) for the mod-97 check.
func rearrange(iban string) string {
	var b strings.Builder
	for _, r := range iban[4:] + iban[:4] {
		if r >= 'A' && r <= 'Z' {
			b.WriteString(fmt.Sprintf("%d", r-'A'+10))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// mod97 computes the remainder of a large decimal number given as a
// digit string, as required by ISO 7064.
func mod97(digits string) int {
	remainder := 0
	for _, r := range digits {
		remainder = (remainder*10 + int(r-'0')) % 97
	}
	return remainder
}
