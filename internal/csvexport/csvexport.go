// Package csvexport writes converted transactions as format-neutral
// CSV, the exchange surface for spreadsheet and accounting imports.
package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/sirupsen/logrus"

	"bankfmt/datev-convert/internal/dateutils"
	"bankfmt/datev-convert/internal/models"
)

var log = logrus.New()

// SetLogger allows setting a custom logger.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Delimiter is the output field separator. Accounting tools in
// German-speaking markets commonly expect ';'.
var Delimiter rune = ','

// SetDelimiter sets the CSV output delimiter.
func SetDelimiter(delim rune) {
	Delimiter = delim
}

// Row is the CSV projection of one transaction.
type Row struct {
	BookingDate      string `csv:"BookingDate"`
	ValutaDate       string `csv:"ValutaDate"`
	Amount           string `csv:"Amount"`
	Currency         string `csv:"Currency"`
	CreditDebit      string `csv:"CreditDebit"`
	EntryReference   string `csv:"EntryReference"`
	EndToEndID       string `csv:"EndToEndId"`
	MandateID        string `csv:"MandateId"`
	CreditorID       string `csv:"CreditorId"`
	Purpose          string `csv:"Purpose"`
	Counterparty     string `csv:"Counterparty"`
	CounterpartyIBAN string `csv:"CounterpartyIBAN"`
}

// NewRow projects a transaction onto its CSV row. Dates use the ISO
// form; the amount is signed with a decimal point.
func NewRow(tx models.Transaction) Row {
	row := Row{
		BookingDate:      dateutils.FormatISO(tx.BookingDate),
		Amount:           tx.SignedAmount().StringFixed(2),
		Currency:         tx.Currency,
		CreditDebit:      string(tx.CreditDebit),
		EntryReference:   tx.EntryReference,
		EndToEndID:       tx.EndToEndID,
		MandateID:        tx.MandateID,
		CreditorID:       tx.CreditorID,
		Purpose:          tx.PurposeText,
		Counterparty:     tx.Counterparty.Name,
		CounterpartyIBAN: tx.Counterparty.IBAN,
	}
	if !tx.ValutaDate.IsZero() {
		row.ValutaDate = dateutils.FormatISO(tx.ValutaDate)
	}
	return row
}

// WriteTransactions writes the transactions as CSV to the writer.
func WriteTransactions(w io.Writer, transactions []models.Transaction) error {
	if transactions == nil {
		return fmt.Errorf("cannot write nil transactions to CSV")
	}

	rows := make([]Row, 0, len(transactions))
	for _, tx := range transactions {
		rows = append(rows, NewRow(tx))
	}

	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = Delimiter
	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}

// WriteFile writes the transactions to a CSV file, creating parent
// directories as needed.
func WriteFile(transactions []models.Transaction, csvFile string) error {
	log.WithFields(logrus.Fields{
		"file":  csvFile,
		"count": len(transactions),
	}).Info("Writing transactions to CSV file")

	if err := os.MkdirAll(filepath.Dir(csvFile), 0750); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}
	file, err := os.Create(csvFile)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	return WriteTransactions(file, transactions)
}
