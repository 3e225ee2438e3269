package fieldcodec

import (
	"testing"

	"bankfmt/datev-convert/internal/tokenizer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRegistry(t *testing.T) Registry {
	t.Helper()
	reg, err := Lookup("DTVF", "700")
	require.NoError(t, err)
	return reg
}

func TestLookup(t *testing.T) {
	reg := mustRegistry(t)
	assert.Equal(t, "DTVF", reg.Format)
	assert.Equal(t, "700", reg.Version)
	assert.Equal(t, 21, reg.Len())
	assert.Equal(t, 7, reg.PositionOf("booking_date"))
	assert.Equal(t, -1, reg.PositionOf("no_such_field"))

	_, err := Lookup("DTVF", "999")
	assert.Error(t, err)
}

func TestLookupOlderVersion(t *testing.T) {
	reg, err := Lookup("DTVF", "510")
	require.NoError(t, err)
	assert.Equal(t, 19, reg.Len())
	// 510 has no purpose3 or document_number.
	assert.Equal(t, -1, reg.PositionOf("purpose3"))
	assert.Equal(t, -1, reg.PositionOf("document_number"))
	assert.Equal(t, 15, reg.PositionOf("payer_name1"))
}

func TestDetect(t *testing.T) {
	tokens := tokenizer.TokenizeDatev(`"DTVF";700;"1"`)
	reg, err := Detect(tokens)
	require.NoError(t, err)
	assert.Equal(t, "700", reg.Version)

	_, err = Detect(tokens[:1])
	assert.Error(t, err)

	_, err = Detect(tokenizer.TokenizeDatev(`"UNKNOWN";123`))
	assert.Error(t, err)
}

func TestDecodePadsShortRecords(t *testing.T) {
	reg := mustRegistry(t)
	tokens := tokenizer.TokenizeDatev(`"DTVF";700;"1"`)

	record := Decode(tokens, reg)
	assert.Equal(t, reg.Len(), record.Len())
	assert.Equal(t, "1", record.ValueOf(reg, "statement_number"))
	assert.Equal(t, Field{}, record.Field(10))
	assert.Equal(t, 3, record.PopulatedCount())
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	reg := mustRegistry(t)
	lines := []string{
		`"DTVF";700;"1";"31.01.2025";"COBADEFFXXX";"37040044";"DE89370400440532013000";"15012025";"15012025";1000,50;"EUR";"SEPA-Gutschrift";"166";"EREF+ORDER12345";"";"";"Max Mustermann";"";"37040044";"532013000";"RG-2025-017"`,
		`"DTVF";700;"1";"31.01.2025";"COBADEFFXXX";"37040044";"DE89370400440532013000";"16012025";"16012025";-42,00;"EUR";"Lastschrift";"105";"MREF+M-99";"CRED+DE98ZZZ09999999999";"SVWZ+Miete Januar";"Hausverwaltung Schmidt";"";"10070000";"987654321";""`,
	}
	for _, line := range lines {
		tokens := tokenizer.TokenizeDatev(line)
		record := Decode(tokens, reg)
		encoded := Encode(record, reg)
		assert.Equal(t, tokens, encoded)
		assert.Equal(t, line, tokenizer.JoinDatev(encoded), "byte-exact round trip for %q", line)
	}
}

func TestEncodeAppliesMandatoryQuoting(t *testing.T) {
	reg := mustRegistry(t)
	record := BuildRecord(reg, map[string]string{
		"format_tag":   "DTVF",
		"version":      "700",
		"booking_date": "15012025",
		"amount":       "1000,50",
	})

	encoded := Encode(record, reg)
	assert.True(t, encoded[reg.PositionOf("booking_date")].WasQuoted)
	assert.False(t, encoded[reg.PositionOf("amount")].WasQuoted)
	assert.False(t, encoded[reg.PositionOf("version")].WasQuoted)
}

func TestWithValueReturnsNewRecord(t *testing.T) {
	reg := mustRegistry(t)
	original := Decode(tokenizer.TokenizeDatev(`"DTVF";700`), reg)
	modified := original.WithValue(reg.PositionOf("currency"), "EUR", true)

	assert.Equal(t, "", original.ValueOf(reg, "currency"))
	assert.Equal(t, "EUR", modified.ValueOf(reg, "currency"))
}

func TestFieldDefinitionMatches(t *testing.T) {
	reg := mustRegistry(t)
	amountDef, ok := reg.Definition(reg.PositionOf("amount"))
	require.True(t, ok)

	assert.True(t, amountDef.Matches("1000,50"))
	assert.True(t, amountDef.Matches("-12,3"))
	assert.True(t, amountDef.Matches(""))
	assert.False(t, amountDef.Matches("12.50"))
	assert.False(t, amountDef.Matches("12345678901234567,89"))
}
