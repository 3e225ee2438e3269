// Package parsererror defines the error taxonomy shared by the codecs
// and converters. Construction errors are hard failures the caller must
// fix; document-level errors are raised only at whole-document
// boundaries. Row-level defects are handled by skipping, never by an
// error from this package.
package parsererror

import (
	"errors"
	"fmt"
)

// ErrDocumentEmpty is returned when a DATEV document contains no rows at all.
var ErrDocumentEmpty = errors.New("datev document contains no rows")

// ErrNoValidTransactions is returned when every row of a DATEV document
// was skipped (missing booking date, empty amount or too few fields).
var ErrNoValidTransactions = errors.New("datev document contains no convertible transactions")

// InvalidTransactionCodeError reports a SWIFT transaction code that is
// not exactly three characters of A-Z0-9 after normalization.
type InvalidTransactionCodeError struct {
	Code string
}

func (e *InvalidTransactionCodeError) Error() string {
	return fmt.Sprintf("invalid transaction code '%s': must match [A-Z0-9]{3}", e.Code)
}

// InvalidReferenceLengthError reports a reference or bank reference that
// exceeds the 16-character SWIFT limit.
type InvalidReferenceLengthError struct {
	Field string
	Value string
	Max   int
}

func (e *InvalidReferenceLengthError) Error() string {
	return fmt.Sprintf("invalid %s '%s': length %d exceeds maximum %d",
		e.Field, e.Value, len(e.Value), e.Max)
}

// InvalidCurrencyError reports a currency string that does not resolve
// to a known ISO 4217 code.
type InvalidCurrencyError struct {
	Currency string
}

func (e *InvalidCurrencyError) Error() string {
	return fmt.Sprintf("invalid currency '%s': not a known ISO 4217 code", e.Currency)
}

// InvalidGuidError reports a message or entry identifier that is not a
// well-formed GUID.
type InvalidGuidError struct {
	Value string
}

func (e *InvalidGuidError) Error() string {
	return fmt.Sprintf("invalid guid '%s'", e.Value)
}

// ParseError represents an error during parsing of a wire-format field.
type ParseError struct {
	Parser string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Parser, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// InvalidFormatError represents an input document that does not conform
// to the expected wire format for a specific converter.
type InvalidFormatError struct {
	Source         string
	ExpectedFormat string
	Msg            string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid format in '%s': %s. Expected: %s",
		e.Source, e.Msg, e.ExpectedFormat)
}
