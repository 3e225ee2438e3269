// Package mt940codec serializes and parses SWIFT MT940/941 statement
// lines. The :61: transaction line composes the reference codec, the
// :86: multi-purpose codec and the shared balance value object.
package mt940codec

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"

	"bankfmt/datev-convert/internal/currencyutils"
	"bankfmt/datev-convert/internal/dateutils"
	"bankfmt/datev-convert/internal/models"
	"bankfmt/datev-convert/internal/parsererror"
	"bankfmt/datev-convert/internal/purposecodec"
	"bankfmt/datev-convert/internal/refcodec"
)

var log = logrus.New()

// SetLogger allows setting a custom logger.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// MaxSupplementaryLength is the SWIFT limit for the supplementary
// details line following :61:.
const MaxSupplementaryLength = 34

var (
	// The amount takes at most two decimals so that references starting
	// with digits are not swallowed by the fraction part.
	entryLinePattern = regexp.MustCompile(
		`^(\d{6})(\d{4})?(RC|RD|C|D)([A-Z])?(\d+,\d{0,2})(.*)$`)
	balanceLinePattern = regexp.MustCompile(
		`^(C|D)(\d{6})([A-Z]{3})(\d+,\d*)$`)
)

// directionMark derives the :61: direction code from the credit/debit
// indicator and the reversal flag.
func directionMark(creditDebit models.CreditDebit, isReversal bool) string {
	mark := creditDebit.SwiftMark()
	if isReversal {
		return "R" + mark
	}
	return mark
}

// SerializeTransaction renders a transaction as its MT940 lines: the
// :61: entry line, an optional supplementary-details line and the :86:
// multi-purpose block.
func SerializeTransaction(tx models.Transaction) string {
	var b strings.Builder

	b.WriteString(":61:")
	valuta := tx.EffectiveValutaDate()
	b.WriteString(dateutils.FormatSwift(valuta))
	if !tx.BookingDate.IsZero() && !dateutils.SameDay(tx.BookingDate, valuta) {
		b.WriteString(dateutils.FormatSwiftEntry(tx.BookingDate))
	}
	b.WriteString(directionMark(tx.CreditDebit, tx.IsReversal))
	currency := currencyutils.NormalizeCurrency(tx.Currency)
	if currency != "" && currency != "EUR" {
		b.WriteString(currency[len(currency)-1:])
	}
	b.WriteString(currencyutils.FormatSwiftAmount(tx.Amount))
	b.WriteString(tx.Reference.String())

	if tx.SupplementaryDetails != "" {
		details := tx.SupplementaryDetails
		if len(details) > MaxSupplementaryLength {
			details = details[:MaxSupplementaryLength]
		}
		b.WriteString("\n")
		b.WriteString(details)
	}

	if tx.Purpose != nil && !tx.Purpose.IsZero() {
		lines := tx.Purpose.ToLines()
		b.WriteString("\n:86:")
		b.WriteString(lines[0])
		for _, line := range lines[1:] {
			b.WriteString("\n")
			b.WriteString(line)
		}
	}

	return b.String()
}

// ParseTransaction parses the MT940 lines of one transaction: a :61:
// line, an optional supplementary-details line and an optional :86:
// block. statementCurrency supplies the ISO code the :61: line only
// abbreviates.
func ParseTransaction(block, statementCurrency string) (models.Transaction, error) {
	lines := strings.Split(strings.TrimRight(block, "\n"), "\n")
	if len(lines) == 0 || !strings.HasPrefix(lines[0], ":61:") {
		return models.Transaction{}, &parsererror.InvalidFormatError{
			Source:         "mt940",
			ExpectedFormat: "MT940 transaction block",
			Msg:            "block must start with :61:",
		}
	}

	tx, err := parseEntryLine(strings.TrimPrefix(lines[0], ":61:"), statementCurrency)
	if err != nil {
		return models.Transaction{}, err
	}

	var purposeLines []string
	inPurpose := false
	for _, line := range lines[1:] {
		line = strings.TrimRight(line, "\r")
		switch {
		case strings.HasPrefix(line, ":86:"):
			inPurpose = true
			purposeLines = append(purposeLines, strings.TrimPrefix(line, ":86:"))
		case inPurpose:
			purposeLines = append(purposeLines, line)
		case line != "":
			tx.SupplementaryDetails = line
		}
	}
	if len(purposeLines) > 0 {
		purpose := purposecodec.FromRawLines(purposeLines)
		tx.Purpose = &purpose
	}

	return tx, nil
}

// parseEntryLine decodes the content of a :61: line.
func parseEntryLine(content, statementCurrency string) (models.Transaction, error) {
	m := entryLinePattern.FindStringSubmatch(content)
	if m == nil {
		return models.Transaction{}, &parsererror.ParseError{
			Parser: "MT940",
			Field:  ":61:",
			Value:  content,
			Err:    fmt.Errorf("line does not match the entry format"),
		}
	}

	valuta, err := dateutils.ParseSwiftDate(m[1])
	if err != nil {
		return models.Transaction{}, &parsererror.ParseError{
			Parser: "MT940", Field: "value date", Value: m[1], Err: err,
		}
	}

	booking := valuta
	if m[2] != "" {
		booking, err = dateutils.ParseSwiftEntryDate(m[2], valuta)
		if err != nil {
			return models.Transaction{}, &parsererror.ParseError{
				Parser: "MT940", Field: "entry date", Value: m[2], Err: err,
			}
		}
	}

	isReversal := strings.HasPrefix(m[3], "R")
	creditDebit := models.CreditDebitFromSwiftMark(strings.TrimPrefix(m[3], "R"))

	currency := currencyutils.NormalizeCurrency(statementCurrency)
	if currency == "" {
		currency = "EUR"
	}

	amount, err := currencyutils.ParseAmount(m[5])
	if err != nil {
		return models.Transaction{}, &parsererror.ParseError{
			Parser: "MT940", Field: "amount", Value: m[5], Err: err,
		}
	}

	return models.Transaction{
		BookingDate: booking,
		ValutaDate:  valuta,
		Amount:      amount.Abs(),
		Currency:    currency,
		CreditDebit: creditDebit,
		IsReversal:  isReversal,
		Reference:   refcodec.FromSwiftField(m[6]),
	}, nil
}
