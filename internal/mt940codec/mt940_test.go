package mt940codec

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bankfmt/datev-convert/internal/models"
	"bankfmt/datev-convert/internal/purposecodec"
	"bankfmt/datev-convert/internal/refcodec"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sampleTransaction(t *testing.T) models.Transaction {
	t.Helper()
	ref, err := refcodec.New("TRF", "REF123")
	require.NoError(t, err)
	return models.Transaction{
		BookingDate: day(2025, time.January, 15),
		ValutaDate:  day(2025, time.January, 15),
		Amount:      decimal.RequireFromString("1000.50"),
		Currency:    "EUR",
		CreditDebit: models.Credit,
		Reference:   ref,
	}
}

func TestSerializeTransaction(t *testing.T) {
	tx := sampleTransaction(t)
	assert.Equal(t, ":61:250115C1000,50NTRFREF123", SerializeTransaction(tx))
}

func TestSerializeTransactionBookingDateDiffers(t *testing.T) {
	tx := sampleTransaction(t)
	tx.BookingDate = day(2025, time.January, 16)
	assert.Equal(t, ":61:2501150116C1000,50NTRFREF123", SerializeTransaction(tx))
}

func TestSerializeTransactionDirectionCodes(t *testing.T) {
	tests := []struct {
		name        string
		creditDebit models.CreditDebit
		isReversal  bool
		expected    string
	}{
		{"credit", models.Credit, false, "C"},
		{"debit", models.Debit, false, "D"},
		{"reversal credit", models.Credit, true, "RC"},
		{"reversal debit", models.Debit, true, "RD"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := sampleTransaction(t)
			tx.CreditDebit = tt.creditDebit
			tx.IsReversal = tt.isReversal
			assert.Contains(t, SerializeTransaction(tx), "250115"+tt.expected+"1000,50")
		})
	}
}

func TestSerializeTransactionCurrencyChar(t *testing.T) {
	tx := sampleTransaction(t)
	tx.Currency = "USD"
	// Non-EUR currencies append the last character of the ISO code.
	assert.Equal(t, ":61:250115CD1000,50NTRFREF123", SerializeTransaction(tx))
}

func TestSerializeTransactionSupplementaryAndPurpose(t *testing.T) {
	tx := sampleTransaction(t)
	tx.SupplementaryDetails = "ORIGINAL AMOUNT"
	tx.Purpose = &purposecodec.Purpose{
		GvcCode:      "166",
		PurposeLines: []string{"EREF+ORDER12345"},
	}

	expected := ":61:250115C1000,50NTRFREF123\n" +
		"ORIGINAL AMOUNT\n" +
		":86:166\n" +
		"?20EREF+ORDER12345"
	assert.Equal(t, expected, SerializeTransaction(tx))
}

func TestParseTransaction(t *testing.T) {
	tx, err := ParseTransaction(":61:2501150116RD42,00NCHKREF456//BANK789", "EUR")
	require.NoError(t, err)

	assert.Equal(t, day(2025, time.January, 15), tx.ValutaDate)
	assert.Equal(t, day(2025, time.January, 16), tx.BookingDate)
	assert.Equal(t, models.Debit, tx.CreditDebit)
	assert.True(t, tx.IsReversal)
	assert.True(t, tx.Amount.Equal(decimal.RequireFromString("42")))
	assert.Equal(t, "CHK", tx.Reference.TransactionCode)
	assert.Equal(t, "REF456", tx.Reference.Reference)
	assert.Equal(t, "BANK789", tx.Reference.BankReference)
}

func TestParseTransactionErrors(t *testing.T) {
	_, err := ParseTransaction("no tag", "EUR")
	assert.Error(t, err)

	_, err = ParseTransaction(":61:garbage", "EUR")
	assert.Error(t, err)
}

func TestTransactionRoundTrip(t *testing.T) {
	ref, err := refcodec.NewWithBankReference("CHK", "REF456", "BANK789")
	require.NoError(t, err)

	txs := []models.Transaction{
		sampleTransaction(t),
		{
			BookingDate: day(2025, time.February, 2),
			ValutaDate:  day(2025, time.February, 1),
			Amount:      decimal.RequireFromString("42"),
			Currency:    "USD",
			CreditDebit: models.Debit,
			IsReversal:  true,
			Reference:   ref,
			SupplementaryDetails: "ORIGINAL USD 42,00",
			Purpose: &purposecodec.Purpose{
				GvcCode:        "105",
				DocumentNumber: "RG-17",
				PurposeLines:   []string{"EREF+E1", "SVWZ+Miete"},
				PayerName1:     "Max Mustermann",
			},
		},
	}

	for _, tx := range txs {
		wire := SerializeTransaction(tx)
		parsed, err := ParseTransaction(wire, tx.Currency)
		require.NoError(t, err)

		assert.True(t, parsed.Amount.Equal(tx.Amount))
		assert.Equal(t, tx.CreditDebit, parsed.CreditDebit)
		assert.Equal(t, tx.IsReversal, parsed.IsReversal)
		assert.Equal(t, tx.ValutaDate, parsed.ValutaDate)
		assert.True(t, parsed.BookingDate.Equal(tx.BookingDate))
		assert.Equal(t, tx.Reference, parsed.Reference)
		assert.Equal(t, tx.SupplementaryDetails, parsed.SupplementaryDetails)
		assert.Equal(t, tx.Purpose, parsed.Purpose)
		assert.Equal(t, tx.Currency, parsed.Currency)
	}
}
