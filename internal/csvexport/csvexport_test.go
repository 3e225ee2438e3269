package csvexport

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bankfmt/datev-convert/internal/models"
)

func sampleTransactions() []models.Transaction {
	return []models.Transaction{
		{
			BookingDate: time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC),
			ValutaDate:  time.Date(2025, time.January, 16, 0, 0, 0, 0, time.UTC),
			Amount:      decimal.RequireFromString("1000.50"),
			Currency:    "EUR",
			CreditDebit: models.Credit,
			EndToEndID:  "ORDER12345",
			PurposeText: "Miete Januar",
			Counterparty: models.Counterparty{
				Name: "Max Mustermann",
				IBAN: "DE12100700000987654321",
			},
		},
		{
			BookingDate: time.Date(2025, time.January, 17, 0, 0, 0, 0, time.UTC),
			Amount:      decimal.RequireFromString("42"),
			Currency:    "EUR",
			CreditDebit: models.Debit,
		},
	}
}

func TestWriteTransactions(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTransactions(&buf, sampleTransactions()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)

	assert.Equal(t,
		"BookingDate,ValutaDate,Amount,Currency,CreditDebit,EntryReference,EndToEndId,MandateId,CreditorId,Purpose,Counterparty,CounterpartyIBAN",
		lines[0])
	assert.Contains(t, lines[1], "2025-01-15,2025-01-16,1000.50,EUR,CRDT")
	assert.Contains(t, lines[1], "Max Mustermann")
	// Debit rows carry a signed amount and an empty valuta date.
	assert.Contains(t, lines[2], "2025-01-17,,-42.00,EUR,DBIT")
}

func TestWriteTransactionsNil(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, WriteTransactions(&buf, nil))
}

func TestWriteTransactionsCustomDelimiter(t *testing.T) {
	SetDelimiter(';')
	defer SetDelimiter(',')

	var buf bytes.Buffer
	require.NoError(t, WriteTransactions(&buf, sampleTransactions()))
	assert.Contains(t, buf.String(), "2025-01-15;2025-01-16;1000.50;EUR;CRDT")
}

func TestNewRowEmptyTransaction(t *testing.T) {
	row := NewRow(models.Transaction{Currency: "EUR"})
	assert.Equal(t, "0.00", row.Amount)
	assert.Equal(t, "", row.ValutaDate)
}
