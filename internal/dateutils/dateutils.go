// Package dateutils provides the date parsing and formatting used by
// the DATEV, CAMT.053 and MT940 codecs.
package dateutils

import (
	"fmt"
	"strings"
	"time"
)

// Date layout constants for the formats that appear on the wire.
const (
	LayoutISO          = "2006-01-02"          // CAMT.053 Dt elements
	LayoutISODateTime  = "2006-01-02T15:04:05" // CAMT.053 CreDtTm
	LayoutDatevCompact = "02012006"            // DATEV booking date DDMMYYYY
	LayoutDatevDotted  = "02.01.2006"          // DATEV alternative
	LayoutSwift        = "060102"              // MT940 value date YYMMDD
	LayoutSwiftShort   = "0102"                // MT940 entry date MMDD
)

// datevFormats lists the layouts accepted for DATEV date fields, tried
// in order.
var datevFormats = []string{
	LayoutDatevCompact,
	LayoutDatevDotted,
	LayoutISO,
	"02.01.06",
}

// ParseDatevDate parses a DATEV date field. It accepts the compact
// DDMMYYYY form, the dotted form and ISO dates.
func ParseDatevDate(dateStr string) (time.Time, error) {
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, format := range datevFormats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
}

// ParseSwiftDate parses an MT940 six-digit YYMMDD value date.
func ParseSwiftDate(dateStr string) (time.Time, error) {
	return time.Parse(LayoutSwift, dateStr)
}

// ParseSwiftEntryDate parses an MT940 four-digit MMDD entry date,
// taking the year from the given value date.
func ParseSwiftEntryDate(dateStr string, valueDate time.Time) (time.Time, error) {
	t, err := time.Parse(LayoutSwiftShort, dateStr)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(valueDate.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// ParseISODate parses a CAMT.053 date element.
func ParseISODate(dateStr string) (time.Time, error) {
	dateStr = strings.TrimSpace(dateStr)
	if t, err := time.Parse(LayoutISO, dateStr); err == nil {
		return t, nil
	}
	return time.Parse(LayoutISODateTime, dateStr)
}

// FormatDatev formats a date in the compact DATEV form.
func FormatDatev(date time.Time) string {
	return date.Format(LayoutDatevCompact)
}

// FormatISO formats a date as a CAMT.053 date element.
func FormatISO(date time.Time) string {
	return date.Format(LayoutISO)
}

// FormatSwift formats a date as an MT940 value date.
func FormatSwift(date time.Time) string {
	return date.Format(LayoutSwift)
}

// FormatSwiftEntry formats a date as an MT940 entry date.
func FormatSwiftEntry(date time.Time) string {
	return date.Format(LayoutSwiftShort)
}

// SameDay reports whether two dates fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
