package statementconv

import (
	"strings"
	"time"

	"bankfmt/datev-convert/internal/currencyutils"
	"bankfmt/datev-convert/internal/dateutils"
	"bankfmt/datev-convert/internal/fieldcodec"
	"bankfmt/datev-convert/internal/models"
	"bankfmt/datev-convert/internal/parsererror"
	"bankfmt/datev-convert/internal/purposecodec"
)

// notProvided is the ISO 20022 placeholder for absent identifiers. A
// reference equal to it is treated as missing when the purpose text is
// rebuilt.
const notProvided = "NOTPROVIDED"

// CamtToDatev converts a CAMT.053 document into a DATEV document: one
// record per transaction, with the statement-level fields shared across
// all rows.
func CamtToDatev(doc models.CamtDocument, reg fieldcodec.Registry) (models.DatevDocument, error) {
	if len(doc.Transactions) == 0 {
		return models.DatevDocument{}, parsererror.ErrDocumentEmpty
	}

	blz, _ := splitGermanIBAN(doc.AccountIBAN)

	out := models.DatevDocument{
		Registry:        reg,
		BIC:             doc.AccountBIC,
		IBAN:            doc.AccountIBAN,
		StatementNumber: doc.StatementNumber,
		StatementDate:   doc.CreationDateTime,
	}

	for _, tx := range doc.Transactions {
		values := map[string]string{
			"format_tag":       reg.Format,
			"version":          reg.Version,
			"statement_number": doc.StatementNumber,
			"bic":              doc.AccountBIC,
			"blz":              blz,
			"account_number":   doc.AccountIBAN,
			"booking_date":     formatDate(tx.BookingDate),
			"valuta_date":      formatDate(tx.ValutaDate),
			"amount":           formatAmount(tx),
			"currency":         tx.Currency,
		}
		if !doc.CreationDateTime.IsZero() {
			values["statement_date"] = formatDate(doc.CreationDateTime)
		}
		if tx.Purpose != nil {
			values["booking_text"] = tx.Purpose.BookingText
			values["gvc_code"] = tx.Purpose.GvcCode
			values["document_number"] = tx.Purpose.DocumentNumber
		}

		fillPurposeFields(values, RebuildPurposeText(tx), reg)
		fillCounterpartyFields(values, tx.Counterparty)

		out = out.WithRecord(fieldcodec.BuildRecord(reg, values))
	}

	return out, nil
}

// RebuildPurposeText reassembles the DATEV purpose string from the
// transaction's SEPA identifiers and remittance text. Keyword parts
// (EREF+, MREF+, CRED+) are emitted only when the value is present and
// not the NOTPROVIDED placeholder. When any keyword part was emitted
// the remittance text follows as SVWZ+<text>; otherwise the bare text
// is the whole purpose. The asymmetry keeps forward+reverse conversion
// of plain purpose text byte-identical.
func RebuildPurposeText(tx models.Transaction) string {
	var parts []string
	appendPart := func(keyword, value string) {
		if value != "" && value != notProvided {
			parts = append(parts, keyword+"+"+value)
		}
	}
	appendPart("EREF", tx.EndToEndID)
	appendPart("MREF", tx.MandateID)
	appendPart("CRED", tx.CreditorID)

	if len(parts) == 0 {
		return tx.PurposeText
	}
	if tx.PurposeText != "" {
		parts = append(parts, "SVWZ+"+tx.PurposeText)
	}
	return strings.Join(parts, " ")
}

// fillPurposeFields distributes the purpose text over the purpose
// fields the format version carries, in segments of the continuation
// width.
func fillPurposeFields(values map[string]string, purpose string, reg fieldcodec.Registry) {
	if purpose == "" {
		return
	}
	segments := purposecodec.SplitSegments(purpose)
	labels := []string{"purpose1", "purpose2", "purpose3"}
	for i, label := range labels {
		if reg.PositionOf(label) < 0 || i >= len(segments) {
			break
		}
		values[label] = segments[i]
	}
}

// fillCounterpartyFields writes the payer identity fields from the
// counterparty. German IBANs are decomposed back into BLZ and account
// number.
func fillCounterpartyFields(values map[string]string, cp models.Counterparty) {
	name1 := cp.Name
	name2 := ""
	if len(name1) > purposecodec.MaxSegmentLength {
		name2 = name1[purposecodec.MaxSegmentLength:]
		name1 = name1[:purposecodec.MaxSegmentLength]
		if len(name2) > purposecodec.MaxSegmentLength {
			name2 = name2[:purposecodec.MaxSegmentLength]
		}
	}
	values["payer_name1"] = name1
	values["payer_name2"] = name2

	blz, account := splitGermanIBAN(cp.IBAN)
	values["payer_blz"] = blz
	values["payer_account"] = account
}

// splitGermanIBAN decomposes a DE IBAN into its Bankleitzahl and
// account number. Non-German or malformed IBANs yield empty values.
func splitGermanIBAN(iban string) (blz, account string) {
	if !strings.HasPrefix(iban, "DE") || len(iban) != 22 {
		return "", ""
	}
	return iban[4:12], strings.TrimLeft(iban[12:], "0")
}

// formatDate renders a date as a DATEV field value; zero dates render
// empty.
func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return dateutils.FormatDatev(t)
}

// formatAmount renders the signed amount in DATEV notation.
func formatAmount(tx models.Transaction) string {
	return currencyutils.FormatDatevAmount(tx.SignedAmount())
}

// ConvertMultipleToDatev converts a list of CAMT documents, silently
// skipping any document that fails to convert. Failures are isolated
// per document, never per row; the call itself never fails.
func ConvertMultipleToDatev(docs []models.CamtDocument, reg fieldcodec.Registry) []models.DatevDocument {
	out := make([]models.DatevDocument, 0, len(docs))
	for i, doc := range docs {
		converted, err := CamtToDatev(doc, reg)
		if err != nil {
			log.WithField("document", i).WithError(err).Warn("Skipping unconvertible CAMT document")
			continue
		}
		out = append(out, converted)
	}
	return out
}
