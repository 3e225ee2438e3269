// Package tokenizer splits DATEV lines into quote-aware tokens and
// joins them back. Quoting state is preserved per token so that a
// decode/encode cycle reproduces the original line byte for byte.
package tokenizer

import "strings"

// Token is a single field value together with the quoting observed on
// the wire. WasQuoted distinguishes `"100"` from `100`, which DATEV
// treats as different encodings of the same value.
type Token struct {
	Value     string
	WasQuoted bool
}

// DefaultDelimiter is the DATEV field separator.
const DefaultDelimiter = ';'

// DefaultQuote is the DATEV quote character.
const DefaultQuote = '"'

// Tokenize splits a line into tokens, honoring quoted fields. A doubled
// quote inside a quoted field is an escaped quote. Unterminated quotes
// consume the rest of the line, matching the lenient behavior of DATEV
// readers in the wild.
func Tokenize(line string, delimiter, quote rune) []Token {
	var tokens []Token
	var value strings.Builder
	inQuotes := false
	wasQuoted := false

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case inQuotes && r == quote:
			if i+1 < len(runes) && runes[i+1] == quote {
				value.WriteRune(quote)
				i++
				continue
			}
			inQuotes = false
		case !inQuotes && r == quote && value.Len() == 0:
			inQuotes = true
			wasQuoted = true
		case !inQuotes && r == delimiter:
			tokens = append(tokens, Token{Value: value.String(), WasQuoted: wasQuoted})
			value.Reset()
			wasQuoted = false
		default:
			value.WriteRune(r)
		}
	}
	tokens = append(tokens, Token{Value: value.String(), WasQuoted: wasQuoted})
	return tokens
}

// TokenizeDatev splits a line using the DATEV delimiter and quote.
func TokenizeDatev(line string) []Token {
	return Tokenize(line, DefaultDelimiter, DefaultQuote)
}

// Join is the inverse of Tokenize. Tokens that were quoted on input are
// re-quoted, with internal quotes doubled.
func Join(tokens []Token, delimiter, quote rune) string {
	var b strings.Builder
	for i, t := range tokens {
		if i > 0 {
			b.WriteRune(delimiter)
		}
		if t.WasQuoted {
			b.WriteRune(quote)
			b.WriteString(strings.ReplaceAll(t.Value, string(quote), string(quote)+string(quote)))
			b.WriteRune(quote)
		} else {
			b.WriteString(t.Value)
		}
	}
	return b.String()
}

// JoinDatev joins tokens using the DATEV delimiter and quote.
func JoinDatev(tokens []Token) string {
	return Join(tokens, DefaultDelimiter, DefaultQuote)
}
