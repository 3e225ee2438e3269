// Package statementconv converts whole bank-statement documents between
// the DATEV record representation and the CAMT.053 document model. The
// forward direction is fail-soft per row: a corrupt row is skipped, not
// fatal; errors are raised only at the whole-document boundary.
package statementconv

import (
	"encoding/hex"
	"hash/fnv"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"bankfmt/datev-convert/internal/bankutils"
	"bankfmt/datev-convert/internal/currencyutils"
	"bankfmt/datev-convert/internal/dateutils"
	"bankfmt/datev-convert/internal/fieldcodec"
	"bankfmt/datev-convert/internal/models"
	"bankfmt/datev-convert/internal/parsererror"
	"bankfmt/datev-convert/internal/refcodec"
)

var log = logrus.New()

// SetLogger allows setting a custom logger.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// minPopulatedFields is the row-level threshold below which a DATEV row
// is skipped as unusable.
const minPopulatedFields = 7

// entryReferenceLength is the length the deterministic entry reference
// is truncated to. It is a dedup key, not a security property.
const entryReferenceLength = 25

var (
	erefPattern = regexp.MustCompile(`EREF\+([^\s+]+)`)
	mrefPattern = regexp.MustCompile(`MREF\+([^\s+]+)`)
	credPattern = regexp.MustCompile(`CRED\+([^\s+]+)`)
	svwzPattern = regexp.MustCompile(`SVWZ\+(.*)$`)
)

// DatevToCamt converts one DATEV document into a CAMT.053 document.
// openingBalance supplies the statement's opening balance; nil means a
// zero credit opening.
func DatevToCamt(doc models.DatevDocument, openingBalance *models.Balance) (models.CamtDocument, error) {
	if len(doc.Records) == 0 {
		return models.CamtDocument{}, parsererror.ErrDocumentEmpty
	}
	reg := doc.Registry

	first := doc.Records[0]
	bic := first.ValueOf(reg, "bic")
	if !bankutils.IsBIC(bic) {
		bic = ""
	}
	iban := deriveIBAN(first.ValueOf(reg, "blz"), first.ValueOf(reg, "account_number"))

	camt := models.CamtDocument{
		MessageID:        uuid.NewString(),
		CreationDateTime: time.Now().UTC(),
		StatementNumber:  first.ValueOf(reg, "statement_number"),
		AccountIBAN:      iban,
		AccountBIC:       bic,
	}

	total := decimal.Zero
	currency := ""
	var firstBooking, lastBooking time.Time

	for i, record := range doc.Records {
		tx, rowCurrency, ok := convertRow(record, reg)
		if !ok {
			log.WithField("row", i).Debug("Skipping unconvertible DATEV row")
			continue
		}
		if currency == "" {
			currency = rowCurrency
		}
		if firstBooking.IsZero() {
			firstBooking = tx.BookingDate
		}
		lastBooking = tx.BookingDate
		total = total.Add(tx.SignedAmount())
		camt = camt.WithTransaction(tx)
	}

	if len(camt.Transactions) == 0 {
		return models.CamtDocument{}, parsererror.ErrNoValidTransactions
	}
	if currency == "" {
		currency = "EUR"
	}
	camt.Currency = currency

	opening, err := resolveOpening(openingBalance, firstBooking, currency)
	if err != nil {
		return models.CamtDocument{}, err
	}
	closing, err := models.NewBalanceFromSigned(
		lastBooking, currency, opening.SignedAmount().Add(total), models.BalanceClosing)
	if err != nil {
		return models.CamtDocument{}, err
	}

	return camt.WithBalances(opening, closing), nil
}

// resolveOpening returns the supplied opening balance or the zero
// credit default.
func resolveOpening(opening *models.Balance, date time.Time, currency string) (models.Balance, error) {
	if opening != nil {
		return *opening, nil
	}
	return models.NewBalance(models.Credit, date, currency, decimal.Zero, models.BalanceOpening)
}

// convertRow converts one DATEV record to a transaction. It reports
// ok=false for rows that must be skipped: too few populated fields,
// unparsable booking date, empty or unparsable amount, unknown
// currency.
func convertRow(record fieldcodec.Record, reg fieldcodec.Registry) (models.Transaction, string, bool) {
	if record.PopulatedCount() < minPopulatedFields {
		return models.Transaction{}, "", false
	}

	bookingDateStr := record.ValueOf(reg, "booking_date")
	bookingDate, err := dateutils.ParseDatevDate(bookingDateStr)
	if err != nil {
		return models.Transaction{}, "", false
	}

	amountStr := record.ValueOf(reg, "amount")
	if amountStr == "" {
		return models.Transaction{}, "", false
	}
	amount, err := currencyutils.ParseAmount(amountStr)
	if err != nil {
		return models.Transaction{}, "", false
	}

	currency := currencyutils.NormalizeCurrency(record.ValueOf(reg, "currency"))
	if currency == "" {
		currency = "EUR"
	}
	if !currencyutils.IsKnownCurrency(currency) {
		return models.Transaction{}, "", false
	}

	creditDebit := models.Credit
	if amount.IsNegative() {
		creditDebit = models.Debit
	}

	valutaDate, err := dateutils.ParseDatevDate(record.ValueOf(reg, "valuta_date"))
	if err != nil {
		valutaDate = time.Time{}
	}

	purposeText := record.ValueOf(reg, "purpose1") +
		record.ValueOf(reg, "purpose2") +
		record.ValueOf(reg, "purpose3")

	tx := models.Transaction{
		BookingDate:    bookingDate,
		ValutaDate:     valutaDate,
		Amount:         amount.Abs(),
		Currency:       currency,
		CreditDebit:    creditDebit,
		EntryReference: entryReference(bookingDateStr, amountStr),
		EndToEndID:     firstMatch(erefPattern, purposeText),
		MandateID:      firstMatch(mrefPattern, purposeText),
		CreditorID:     firstMatch(credPattern, purposeText),
		PurposeText:    extractPurposeText(purposeText),
		Counterparty:   convertCounterparty(record, reg),
	}
	tx.Reference = buildReference(tx.EndToEndID)

	return tx, currency, true
}

// entryReference derives the deterministic dedup key from the raw
// booking date and amount strings.
func entryReference(bookingDateStr, amountStr string) string {
	h := fnv.New128a()
	h.Write([]byte(bookingDateStr + amountStr))
	ref := hex.EncodeToString(h.Sum(nil))
	if len(ref) > entryReferenceLength {
		ref = ref[:entryReferenceLength]
	}
	return ref
}

// extractPurposeText returns the remittance text of a purpose string.
// When SEPA keyword parts are present the text is the SVWZ content;
// otherwise the whole purpose string is the text.
func extractPurposeText(purpose string) string {
	hasKeywords := erefPattern.MatchString(purpose) ||
		mrefPattern.MatchString(purpose) ||
		credPattern.MatchString(purpose)
	if hasKeywords {
		return firstMatch(svwzPattern, purpose)
	}
	if m := svwzPattern.FindStringSubmatch(purpose); m != nil {
		return m[1]
	}
	return strings.TrimSpace(purpose)
}

// convertCounterparty builds the counterparty from the payer fields.
// The IBAN follows the same derivation rule as the account holder.
func convertCounterparty(record fieldcodec.Record, reg fieldcodec.Registry) models.Counterparty {
	name := strings.TrimSpace(record.ValueOf(reg, "payer_name1") + " " + record.ValueOf(reg, "payer_name2"))
	return models.Counterparty{
		Name: name,
		IBAN: deriveIBAN(record.ValueOf(reg, "payer_blz"), record.ValueOf(reg, "payer_account")),
	}
}

// deriveIBAN returns the account value when it is already IBAN-shaped
// and otherwise derives a German IBAN from the bank code / account
// pair. Underivable input yields "".
func deriveIBAN(bankCode, account string) string {
	if bankutils.IsIBAN(account) {
		return strings.ToUpper(strings.ReplaceAll(account, " ", ""))
	}
	if bankCode == "" || account == "" {
		return ""
	}
	iban, err := bankutils.GenerateGermanIBAN(bankCode, account)
	if err != nil {
		return ""
	}
	return iban
}

// buildReference derives the SWIFT reference for a converted row. The
// end-to-end id, clipped to the SWIFT bound, doubles as the customer
// reference.
func buildReference(endToEndID string) refcodec.Reference {
	ref := endToEndID
	if len(ref) > refcodec.MaxReferenceLength {
		ref = ref[:refcodec.MaxReferenceLength]
	}
	built, err := refcodec.New(refcodec.DefaultTransactionCode, ref)
	if err != nil {
		built, _ = refcodec.New(refcodec.DefaultTransactionCode, "")
	}
	return built
}

// firstMatch returns the first capture group of the pattern, or "".
func firstMatch(pattern *regexp.Regexp, s string) string {
	if m := pattern.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return ""
}

// ConvertMultiple converts a sequence of DATEV documents with balance
// chaining: the closing balance of statement i opens statement i+1.
// The fold is strictly left to right. A document that fails to convert
// is dropped from the output and the chain carries the previous closing
// forward; the call itself never fails.
func ConvertMultiple(docs []models.DatevDocument, startingBalance *models.Balance) []models.CamtDocument {
	out := make([]models.CamtDocument, 0, len(docs))
	opening := startingBalance

	for i, doc := range docs {
		camt, err := DatevToCamt(doc, opening)
		if err != nil {
			log.WithFields(logrus.Fields{
				"document": i,
				"error":    err,
			}).Warn("Skipping unconvertible DATEV document")
			continue
		}
		out = append(out, camt)
		next := camt.ClosingBalance.AsOpening()
		opening = &next
	}
	return out
}
