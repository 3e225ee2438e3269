package models

import (
	"time"

	"github.com/shopspring/decimal"

	"bankfmt/datev-convert/internal/currencyutils"
	"bankfmt/datev-convert/internal/parsererror"
)

// CreditDebit is the ISO 20022 credit/debit indicator.
type CreditDebit string

const (
	// Credit marks an inflow ("CRDT" on the CAMT wire, "C" on MT9xx).
	Credit CreditDebit = "CRDT"
	// Debit marks an outflow ("DBIT" on the CAMT wire, "D" on MT9xx).
	Debit CreditDebit = "DBIT"
)

// SwiftMark returns the single-letter MT9xx direction mark.
func (cd CreditDebit) SwiftMark() string {
	if cd == Debit {
		return "D"
	}
	return "C"
}

// CreditDebitFromSwiftMark maps an MT9xx direction mark back to the
// indicator.
func CreditDebitFromSwiftMark(mark string) CreditDebit {
	if mark == "D" {
		return Debit
	}
	return Credit
}

// BalanceType is the statement-role tag of a balance.
type BalanceType string

const (
	// BalanceOpening is the opening booked balance (OPBD).
	BalanceOpening BalanceType = "OPBD"
	// BalanceClosing is the closing booked balance (CLBD).
	BalanceClosing BalanceType = "CLBD"
	// BalancePreviousClosing is the previously closed booked balance
	// (PRCD), which opens a statement that chains from an earlier one.
	BalancePreviousClosing BalanceType = "PRCD"
	// BalanceClosingAvailable is the closing available balance (CLAV).
	BalanceClosingAvailable BalanceType = "CLAV"
	// BalanceInterimBooked is an intermediate booked balance (ITBD).
	BalanceInterimBooked BalanceType = "ITBD"
)

// Balance is the credit/debit + date + currency + amount value object
// shared by the DATEV, CAMT.053 and MT9xx sides. The amount is always
// stored as an absolute value; the sign lives in the indicator.
type Balance struct {
	CreditDebit CreditDebit
	Date        time.Time
	Currency    string
	Amount      decimal.Decimal
	Type        BalanceType
}

// NewBalance validates the currency and stores the absolute amount.
// Negative input amounts are accepted and folded into the indicator's
// sign convention.
func NewBalance(creditDebit CreditDebit, date time.Time, currency string, amount decimal.Decimal, balanceType BalanceType) (Balance, error) {
	currency = currencyutils.NormalizeCurrency(currency)
	if !currencyutils.IsKnownCurrency(currency) {
		return Balance{}, &parsererror.InvalidCurrencyError{Currency: currency}
	}
	return Balance{
		CreditDebit: creditDebit,
		Date:        date,
		Currency:    currency,
		Amount:      amount.Abs(),
		Type:        balanceType,
	}, nil
}

// NewBalanceFromSigned derives the indicator from the amount's sign.
func NewBalanceFromSigned(date time.Time, currency string, signedAmount decimal.Decimal, balanceType BalanceType) (Balance, error) {
	creditDebit := Credit
	if signedAmount.IsNegative() {
		creditDebit = Debit
	}
	return NewBalance(creditDebit, date, currency, signedAmount, balanceType)
}

// SignedAmount returns the amount with the indicator's sign applied:
// positive for credit, negative for debit.
func (b Balance) SignedAmount() decimal.Decimal {
	if b.CreditDebit == Debit {
		return b.Amount.Neg()
	}
	return b.Amount
}

// IsCredit reports whether the balance is a credit balance.
func (b Balance) IsCredit() bool {
	return b.CreditDebit == Credit
}

// IsOpening reports whether the balance opens a statement.
func (b Balance) IsOpening() bool {
	return b.Type == BalanceOpening || b.Type == BalancePreviousClosing
}

// IsClosing reports whether the balance closes a statement.
func (b Balance) IsClosing() bool {
	return b.Type == BalanceClosing
}

// AsOpening returns the same balance value retagged to open the next
// statement in a chain.
func (b Balance) AsOpening() Balance {
	b.Type = BalanceOpening
	return b
}
