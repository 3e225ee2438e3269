package models

import (
	"time"

	"bankfmt/datev-convert/internal/fieldcodec"
)

// DatevDocument is the DATEV side of the conversion: an ordered list of
// decoded records plus the account identity shared by them. The
// aggregate is immutable; WithRecord returns a new document.
type DatevDocument struct {
	Registry        fieldcodec.Registry
	BIC             string
	IBAN            string
	StatementNumber string
	StatementDate   time.Time
	Records         []fieldcodec.Record
}

// WithRecord returns a new document with the record appended.
func (d DatevDocument) WithRecord(record fieldcodec.Record) DatevDocument {
	records := make([]fieldcodec.Record, len(d.Records)+1)
	copy(records, d.Records)
	records[len(d.Records)] = record
	d.Records = records
	return d
}

// CamtDocument is the CAMT.053 side of the conversion: statement
// identity, balances and the ordered transaction list. The aggregate is
// immutable; WithTransaction and WithBalances return new documents.
type CamtDocument struct {
	MessageID        string
	CreationDateTime time.Time
	StatementNumber  string
	AccountIBAN      string
	AccountBIC       string
	Currency         string
	OpeningBalance   Balance
	ClosingBalance   Balance
	Transactions     []Transaction
}

// WithTransaction returns a new document with the transaction appended.
func (d CamtDocument) WithTransaction(tx Transaction) CamtDocument {
	transactions := make([]Transaction, len(d.Transactions)+1)
	copy(transactions, d.Transactions)
	transactions[len(d.Transactions)] = tx
	d.Transactions = transactions
	return d
}

// WithBalances returns a new document with both balances replaced.
func (d CamtDocument) WithBalances(opening, closing Balance) CamtDocument {
	d.OpeningBalance = opening
	d.ClosingBalance = closing
	return d
}
