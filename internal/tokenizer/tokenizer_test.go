package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected []Token
	}{
		{
			name: "mixed quoted and unquoted",
			line: `"DTVF";700;"Umsatz";1000,50`,
			expected: []Token{
				{Value: "DTVF", WasQuoted: true},
				{Value: "700", WasQuoted: false},
				{Value: "Umsatz", WasQuoted: true},
				{Value: "1000,50", WasQuoted: false},
			},
		},
		{
			name: "delimiter inside quotes",
			line: `"a;b";c`,
			expected: []Token{
				{Value: "a;b", WasQuoted: true},
				{Value: "c", WasQuoted: false},
			},
		},
		{
			name: "escaped quote",
			line: `"say ""hi""";x`,
			expected: []Token{
				{Value: `say "hi"`, WasQuoted: true},
				{Value: "x", WasQuoted: false},
			},
		},
		{
			name: "empty fields",
			line: `;;""`,
			expected: []Token{
				{Value: "", WasQuoted: false},
				{Value: "", WasQuoted: false},
				{Value: "", WasQuoted: true},
			},
		},
		{
			name:     "single unquoted field",
			line:     "abc",
			expected: []Token{{Value: "abc", WasQuoted: false}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TokenizeDatev(tt.line))
		})
	}
}

func TestJoinRoundTrip(t *testing.T) {
	lines := []string{
		`"DTVF";700;"Umsatz";1000,50`,
		`"a;b";c`,
		`"say ""hi""";x`,
		`;;""`,
		`"";"";""`,
	}
	for _, line := range lines {
		assert.Equal(t, line, JoinDatev(TokenizeDatev(line)), "round trip for %q", line)
	}
}
