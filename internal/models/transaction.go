// Package models provides the value objects shared by the DATEV,
// CAMT.053 and MT940 codecs: balances, transactions and whole-document
// aggregates. All types are immutable; transformations return new
// values.
package models

import (
	"time"

	"github.com/shopspring/decimal"

	"bankfmt/datev-convert/internal/purposecodec"
	"bankfmt/datev-convert/internal/refcodec"
)

// Counterparty identifies the other side of a transaction.
type Counterparty struct {
	Name string
	IBAN string
	BIC  string
}

// Transaction is the format-neutral core transaction. Converters build
// it from a DATEV record or a parsed CAMT entry; the MT940 codec reads
// and writes it directly.
type Transaction struct {
	BookingDate time.Time
	// ValutaDate is zero when the wire format carried no separate
	// value date.
	ValutaDate  time.Time
	Amount      decimal.Decimal // absolute value, sign lives in CreditDebit
	Currency    string
	CreditDebit CreditDebit
	IsReversal  bool

	// EntryReference is the deterministic per-entry dedup key.
	EntryReference string
	EndToEndID     string
	MandateID      string
	CreditorID     string

	Reference refcodec.Reference
	Purpose   *purposecodec.Purpose
	// PurposeText is the unstructured remittance text (CAMT Ustrd /
	// SEPA SVWZ content).
	PurposeText string
	// SupplementaryDetails is the MT940 :61: subfield 9 line.
	SupplementaryDetails string

	Counterparty Counterparty
}

// SignedAmount returns the amount with the direction's sign applied.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.CreditDebit == Debit {
		return t.Amount.Neg()
	}
	return t.Amount
}

// EffectiveValutaDate returns the valuta date, falling back to the
// booking date when none was carried.
func (t Transaction) EffectiveValutaDate() time.Time {
	if t.ValutaDate.IsZero() {
		return t.BookingDate
	}
	return t.ValutaDate
}
