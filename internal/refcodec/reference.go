// Package refcodec implements the SWIFT transaction-reference sub-field
// codec: booking key, three-character transaction code, customer
// reference and optional bank reference separated by "//".
package refcodec

import (
	"regexp"
	"strings"

	"bankfmt/datev-convert/internal/parsererror"
)

// BookingKey is the single-letter key preceding the transaction code in
// field :61:.
type BookingKey string

const (
	// BookingKeySwift marks a non-SWIFT-advised entry ("N" on the wire).
	BookingKeySwift BookingKey = "N"
	// BookingKeyFirstAdvice marks a first advice entry.
	BookingKeyFirstAdvice BookingKey = "F"
	// BookingKeyOther marks entries advised through a SWIFT message.
	BookingKeyOther BookingKey = "S"
)

// DefaultTransactionCode is the fallback code used when a SWIFT field
// carries no recognizable transaction code.
const DefaultTransactionCode = "TRF"

// MaxReferenceLength is the SWIFT limit for reference sub-fields.
const MaxReferenceLength = 16

var (
	codePattern      = regexp.MustCompile(`^[A-Z0-9]{3}$`)
	keyedFieldFormat = regexp.MustCompile(`^([A-Z])([A-Z0-9]{3})(.*)$`)
	bareFieldFormat  = regexp.MustCompile(`^([A-Z0-9]{3})(.*)$`)
)

var knownBookingKeys = map[BookingKey]struct{}{
	BookingKeySwift:       {},
	BookingKeyFirstAdvice: {},
	BookingKeyOther:       {},
}

// Reference is the transaction-reference value object.
type Reference struct {
	BookingKey      BookingKey
	TransactionCode string
	Reference       string
	BankReference   string
}

// New constructs a reference with the default booking key. The code is
// uppercased and truncated to its first three characters before
// validation.
func New(transactionCode, reference string) (Reference, error) {
	return NewWithBankReference(transactionCode, reference, "")
}

// NewWithBankReference constructs a reference carrying a bank reference.
func NewWithBankReference(transactionCode, reference, bankReference string) (Reference, error) {
	code := strings.ToUpper(transactionCode)
	if len(code) > 3 {
		code = code[:3]
	}
	if !codePattern.MatchString(code) {
		return Reference{}, &parsererror.InvalidTransactionCodeError{Code: transactionCode}
	}
	if len(reference) > MaxReferenceLength {
		return Reference{}, &parsererror.InvalidReferenceLengthError{
			Field: "reference", Value: reference, Max: MaxReferenceLength,
		}
	}
	if len(bankReference) > MaxReferenceLength {
		return Reference{}, &parsererror.InvalidReferenceLengthError{
			Field: "bank reference", Value: bankReference, Max: MaxReferenceLength,
		}
	}
	return Reference{
		BookingKey:      BookingKeySwift,
		TransactionCode: code,
		Reference:       reference,
		BankReference:   bankReference,
	}, nil
}

// IsZero reports whether the reference is the zero value.
func (r Reference) IsZero() bool {
	return r == Reference{}
}

// String serializes the reference for field :61:.
func (r Reference) String() string {
	var b strings.Builder
	b.WriteString(string(r.BookingKey))
	b.WriteString(r.TransactionCode)
	b.WriteString(r.Reference)
	if r.BankReference != "" {
		b.WriteString("//")
		b.WriteString(r.BankReference)
	}
	return b.String()
}

// FromSwiftField parses the reference sub-field of :61:. Unrecognizable
// input falls back to the default code "TRF" with the whole remainder as
// reference; the fallback is defined behavior, not an error.
func FromSwiftField(field string) Reference {
	ref := Reference{BookingKey: BookingKeySwift}

	if idx := strings.Index(field, "//"); idx >= 0 {
		ref.BankReference = field[idx+2:]
		field = field[:idx]
	}

	if m := keyedFieldFormat.FindStringSubmatch(field); m != nil {
		if _, known := knownBookingKeys[BookingKey(m[1])]; known {
			ref.BookingKey = BookingKey(m[1])
			ref.TransactionCode = m[2]
			ref.Reference = m[3]
			return ref
		}
	}
	if m := bareFieldFormat.FindStringSubmatch(field); m != nil {
		ref.TransactionCode = m[1]
		ref.Reference = m[2]
		return ref
	}

	ref.TransactionCode = DefaultTransactionCode
	ref.Reference = field
	return ref
}
