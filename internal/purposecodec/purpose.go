// Package purposecodec implements the structured multi-purpose field
// shared by SWIFT :86: blocks and DATEV continuation records. Content
// is keyed by two-digit field keys: 00 booking text, 10 document
// number, 20-29 and 60-63 purpose lines, 30-34 payer identity. The
// 35-59 range is reserved and never used for purpose lines.
package purposecodec

import (
	"fmt"
	"regexp"
	"strings"
)

// MaxSegmentLength is the content capacity of one continuation segment.
const MaxSegmentLength = 27

// Field keys of the structured multi-purpose field.
const (
	KeyBookingText      = 0
	KeyDocumentNumber   = 10
	KeyPurposeFirst     = 20
	KeyPurposeLastLow   = 29
	KeyPurposeFirstHigh = 60
	KeyPurposeLastHigh  = 63
	KeyPayerBankCode    = 30
	KeyPayerAccount     = 31
	KeyPayerName1       = 32
	KeyPayerName2       = 33
	KeyTextKeyExtension = 34
)

var (
	keyedLine  = regexp.MustCompile(`^\?(\d{2})(.*)`)
	headerLine = regexp.MustCompile(`^(\d{3})(.*)`)
)

// Purpose is the decoded multi-purpose field.
type Purpose struct {
	GvcCode          string
	BookingText      string
	DocumentNumber   string
	PurposeLines     []string
	PayerBankCode    string
	PayerAccount     string
	PayerName1       string
	PayerName2       string
	TextKeyExtension string
	RawText          string
}

// IsZero reports whether the purpose carries no content at all.
func (p Purpose) IsZero() bool {
	return p.GvcCode == "" && p.BookingText == "" && p.DocumentNumber == "" &&
		len(p.PurposeLines) == 0 && p.PayerBankCode == "" && p.PayerAccount == "" &&
		p.PayerName1 == "" && p.PayerName2 == "" && p.TextKeyExtension == "" &&
		p.RawText == ""
}

// FromRawLines decodes a multi-purpose field from its wire lines. The
// first line, when it has no key prefix and starts with three digits,
// carries the GVC code; any trailing remainder goes to the raw text.
// Lines with unrecognized keys and keyless lines accumulate into the
// raw text as well.
func FromRawLines(lines []string) Purpose {
	var p Purpose
	var raw strings.Builder

	for i, line := range lines {
		if m := keyedLine.FindStringSubmatch(line); m != nil {
			p.route(m[1], m[2], &raw)
			continue
		}
		if i == 0 {
			if m := headerLine.FindStringSubmatch(line); m != nil {
				p.GvcCode = m[1]
				raw.WriteString(m[2])
				continue
			}
		}
		raw.WriteString(line)
	}

	p.RawText = raw.String()
	return p
}

// route assigns one keyed segment to its field.
func (p *Purpose) route(key, content string, raw *strings.Builder) {
	switch {
	case key == "00":
		p.BookingText = content
	case key == "10":
		p.DocumentNumber = content
	case key >= "20" && key <= "29", key >= "60" && key <= "63":
		p.PurposeLines = append(p.PurposeLines, content)
	case key == "30":
		p.PayerBankCode = content
	case key == "31":
		p.PayerAccount = content
	case key == "32":
		p.PayerName1 = content
	case key == "33":
		p.PayerName2 = content
	case key == "34":
		p.TextKeyExtension = content
	default:
		// Unrecognized key: keep the whole segment, key included.
		raw.WriteString("?" + key + content)
	}
}

// ToLines encodes the purpose as wire lines. With booking text or
// purpose lines present the structured dialect is used; with only raw
// text, the text is wrapped into segments of MaxSegmentLength and laid
// out under the same key ladder. Purpose content past key 63 is
// silently dropped.
func (p Purpose) ToLines() []string {
	if p.BookingText != "" || len(p.PurposeLines) > 0 {
		return p.encodeStructured()
	}
	if p.RawText != "" {
		return p.encodeRaw()
	}
	if p.GvcCode != "" || p.DocumentNumber != "" || p.hasPayerFields() {
		lines := p.appendDocumentNumber([]string{p.GvcCode})
		return p.appendPayerLines(lines)
	}
	return nil
}

func (p Purpose) encodeStructured() []string {
	lines := p.appendDocumentNumber([]string{p.GvcCode + p.BookingText})

	key := KeyPurposeFirst
	for _, purposeLine := range p.PurposeLines {
		if key > KeyPurposeLastHigh {
			break // content past key 63 is dropped
		}
		lines = append(lines, fmt.Sprintf("?%02d%s", key, purposeLine))
		key = nextPurposeKey(key)
	}

	return p.appendPayerLines(lines)
}

func (p Purpose) encodeRaw() []string {
	segments := SplitSegments(p.RawText)
	lines := p.appendDocumentNumber([]string{p.GvcCode + segments[0]})

	key := KeyPurposeFirst
	for _, segment := range segments[1:] {
		if key > KeyPurposeLastHigh {
			break
		}
		lines = append(lines, fmt.Sprintf("?%02d%s", key, segment))
		key = nextPurposeKey(key)
	}

	return p.appendPayerLines(lines)
}

func (p Purpose) appendDocumentNumber(lines []string) []string {
	if p.DocumentNumber != "" {
		lines = append(lines, fmt.Sprintf("?%02d%s", KeyDocumentNumber, p.DocumentNumber))
	}
	return lines
}

func (p Purpose) appendPayerLines(lines []string) []string {
	if p.PayerBankCode != "" {
		lines = append(lines, fmt.Sprintf("?%02d%s", KeyPayerBankCode, p.PayerBankCode))
	}
	if p.PayerAccount != "" {
		lines = append(lines, fmt.Sprintf("?%02d%s", KeyPayerAccount, p.PayerAccount))
	}
	if p.PayerName1 != "" {
		lines = append(lines, fmt.Sprintf("?%02d%s", KeyPayerName1, p.PayerName1))
	}
	if p.PayerName2 != "" {
		lines = append(lines, fmt.Sprintf("?%02d%s", KeyPayerName2, p.PayerName2))
	}
	if p.TextKeyExtension != "" {
		lines = append(lines, fmt.Sprintf("?%02d%s", KeyTextKeyExtension, p.TextKeyExtension))
	}
	return lines
}

func (p Purpose) hasPayerFields() bool {
	return p.PayerBankCode != "" || p.PayerAccount != "" || p.PayerName1 != "" ||
		p.PayerName2 != "" || p.TextKeyExtension != ""
}

// nextPurposeKey advances through the purpose-line key ladder: 20-29,
// then 60-63. Keys 30-59 belong to payer identity and the reserved
// range and are never assigned to purpose lines.
func nextPurposeKey(key int) int {
	if key == KeyPurposeLastLow {
		return KeyPurposeFirstHigh
	}
	return key + 1
}

// SplitSegments wraps text into segments of at most MaxSegmentLength
// characters.
func SplitSegments(text string) []string {
	if text == "" {
		return []string{""}
	}
	runes := []rune(text)
	segments := make([]string, 0, (len(runes)+MaxSegmentLength-1)/MaxSegmentLength)
	for start := 0; start < len(runes); start += MaxSegmentLength {
		end := start + MaxSegmentLength
		if end > len(runes) {
			end = len(runes)
		}
		segments = append(segments, string(runes[start:end]))
	}
	return segments
}
