package refcodec

import (
	"testing"

	"bankfmt/datev-convert/internal/parsererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		code      string
		reference string
		expectErr bool
		wantCode  string
	}{
		{"simple", "TRF", "REF123", false, "TRF"},
		{"lowercase normalized", "trf", "REF123", false, "TRF"},
		{"long code truncated", "TRFX", "REF123", false, "TRF"},
		{"code too short", "TR", "REF123", true, ""},
		{"code with symbols", "T-F", "REF123", true, ""},
		{"reference at limit", "TRF", "1234567890123456", false, "TRF"},
		{"reference over limit", "TRF", "12345678901234567", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := New(tt.code, tt.reference)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCode, ref.TransactionCode)
			assert.Equal(t, BookingKeySwift, ref.BookingKey)
		})
	}
}

func TestNewErrorTypes(t *testing.T) {
	_, err := New("T!", "REF")
	var codeErr *parsererror.InvalidTransactionCodeError
	assert.ErrorAs(t, err, &codeErr)

	_, err = New("TRF", "12345678901234567")
	var lenErr *parsererror.InvalidReferenceLengthError
	assert.ErrorAs(t, err, &lenErr)

	_, err = NewWithBankReference("TRF", "REF", "12345678901234567")
	assert.ErrorAs(t, err, &lenErr)
}

func TestString(t *testing.T) {
	ref, err := New("TRF", "REF123")
	require.NoError(t, err)
	assert.Equal(t, "NTRFREF123", ref.String())

	ref, err = NewWithBankReference("CHK", "REF456", "BANK789")
	require.NoError(t, err)
	assert.Equal(t, "NCHKREF456//BANK789", ref.String())
}

func TestFromSwiftField(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		expected Reference
	}{
		{
			name:  "keyed with bank reference",
			field: "NCHKREF456//BANK789",
			expected: Reference{
				BookingKey: BookingKeySwift, TransactionCode: "CHK",
				Reference: "REF456", BankReference: "BANK789",
			},
		},
		{
			name:  "first advice key",
			field: "FTRFREF123",
			expected: Reference{
				BookingKey: BookingKeyFirstAdvice, TransactionCode: "TRF", Reference: "REF123",
			},
		},
		{
			name:  "unknown key falls through to bare code",
			field: "XMSCREST",
			// X is not a booking key, so XMS is read as a bare code.
			expected: Reference{
				BookingKey: BookingKeySwift, TransactionCode: "XMS", Reference: "CREST",
			},
		},
		{
			name:  "bare code",
			field: "051REF",
			expected: Reference{
				BookingKey: BookingKeySwift, TransactionCode: "051", Reference: "REF",
			},
		},
		{
			name:  "unparsable falls back to TRF",
			field: "??",
			expected: Reference{
				BookingKey: BookingKeySwift, TransactionCode: "TRF", Reference: "??",
			},
		},
		{
			name:  "empty falls back to TRF",
			field: "",
			expected: Reference{
				BookingKey: BookingKeySwift, TransactionCode: "TRF",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FromSwiftField(tt.field))
		})
	}
}

func TestRoundTrip(t *testing.T) {
	refs := []Reference{}
	r1, _ := New("TRF", "REF123")
	r2, _ := NewWithBankReference("CHK", "REF456", "BANK789")
	r3, _ := New("051", "")
	refs = append(refs, r1, r2, r3)

	for _, ref := range refs {
		assert.Equal(t, ref, FromSwiftField(ref.String()))
	}
}
