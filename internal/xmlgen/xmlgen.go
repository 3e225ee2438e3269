// Package xmlgen renders CamtDocument values as CAMT.053 XML and reads
// CAMT.053 XML back into the document model. Writing uses the
// version-specific ISO 20022 namespace; reading tolerates non-UTF-8
// encodings via a charset-aware decoder.
package xmlgen

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/html/charset"

	"bankfmt/datev-convert/internal/dateutils"
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

// Supported CAMT.053 schema versions.
const (
	Version02 = "camt.053.001.02"
	Version04 = "camt.053.001.04"
	Version08 = "camt.053.001.08"

	// DefaultVersion is used when the caller does not pin a version.
	DefaultVersion = Version02

	namespacePrefix = "urn:iso:std:iso:20022:tech:xsd:"
)

// Namespace returns the ISO 20022 XML namespace of a schema version.
func Namespace(version string) string {
	if version == "" {
		version = DefaultVersion
	}
	return namespacePrefix + version
}

// Generate marshals one CAMT document as a namespaced CAMT.053 XML
// file, including the XML declaration.
func Generate(doc models.CamtDocument, version string) ([]byte, error) {
	return GenerateMultiple([]models.CamtDocument{doc}, version)
}

// GenerateMultiple marshals a statement chain as a single CAMT.053
// file with one Stmt element per document. The group header is taken
// from the first document.
func GenerateMultiple(docs []models.CamtDocument, version string) ([]byte, error) {
	if len(docs) == 0 {
		return nil, parsererror.ErrDocumentEmpty
	}

	root := models.CAMT053{
		Xmlns: Namespace(version),
		BkToCstmrStmt: models.BkToCstmrStmt{
			GrpHdr: models.GrpHdr{
				MsgId:   docs[0].MessageID,
				CreDtTm: docs[0].CreationDateTime.Format(dateutils.LayoutISODateTime),
			},
		},
	}
	for _, doc := range docs {
		root.BkToCstmrStmt.Stmt = append(root.BkToCstmrStmt.Stmt, buildStmt(doc))
	}

	body, err := xml.MarshalIndent(root, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("error marshalling CAMT.053 document: %w", err)
	}
	return append([]byte(xml.Header), body...), nil
}

func buildStmt(doc models.CamtDocument) models.Stmt {
	stmt := models.Stmt{
		Id:           doc.MessageID + "-" + doc.StatementNumber,
		ElctrncSeqNb: doc.StatementNumber,
		CreDtTm:      doc.CreationDateTime.Format(dateutils.LayoutISODateTime),
		Acct:         buildAcct(doc),
		Bal: []models.Bal{
			buildBal(doc.OpeningBalance),
			buildBal(doc.ClosingBalance),
		},
	}
	for _, tx := range doc.Transactions {
		stmt.Ntry = append(stmt.Ntry, buildNtry(tx))
	}
	return stmt
}

func buildAcct(doc models.CamtDocument) models.Acct {
	acct := models.Acct{Ccy: doc.Currency}
	if doc.AccountIBAN != "" {
		acct.Id.IBAN = doc.AccountIBAN
	}
	if doc.AccountBIC != "" {
		acct.Svcr = &models.AcctSvcr{FinInstnId: models.FinInstnId{BICFI: doc.AccountBIC}}
	}
	return acct
}

func buildBal(balance models.Balance) models.Bal {
	return models.Bal{
		Tp:        models.BalTp{CdOrPrtry: models.CdOrPrtry{Cd: string(balance.Type)}},
		Amt:       models.Amt{Text: balance.Amount.StringFixed(2), Ccy: balance.Currency},
		CdtDbtInd: string(balance.CreditDebit),
		Dt:        models.BalDt{Dt: dateutils.FormatISO(balance.Date)},
	}
}

func buildNtry(tx models.Transaction) models.Ntry {
	ntry := models.Ntry{
		NtryRef:     tx.EntryReference,
		Amt:         models.Amt{Text: tx.Amount.StringFixed(2), Ccy: tx.Currency},
		CdtDbtInd:   string(tx.CreditDebit),
		Sts:         "BOOK",
		BookgDt:     models.NtryDt{Dt: dateutils.FormatISO(tx.BookingDate)},
		ValDt:       models.NtryDt{Dt: dateutils.FormatISO(tx.EffectiveValutaDate())},
		AcctSvcrRef: tx.Reference.String(),
		NtryDtls:    models.NtryDtls{TxDtls: []models.TxDtls{buildTxDtls(tx)}},
	}
	if tx.IsReversal {
		ntry.RvslInd = "true"
	}
	if tx.SupplementaryDetails != "" {
		ntry.AddtlNtryInf = tx.SupplementaryDetails
	}
	return ntry
}

func buildTxDtls(tx models.Transaction) models.TxDtls {
	dtls := models.TxDtls{
		Refs: models.Refs{EndToEndId: tx.EndToEndID},
	}
	if tx.MandateID != "" || tx.CreditorID != "" {
		ddt := &models.DrctDbtTx{}
		if tx.MandateID != "" {
			ddt.MndtRltdInf = &models.MndtRltdInf{MndtId: tx.MandateID}
		}
		if tx.CreditorID != "" {
			ddt.CdtrSchmeId = &models.CdtrSchmeId{
				Id: models.CdtrSchmeIdId{PrvtId: models.PrvtId{Othr: models.OthrId{Id: tx.CreditorID}}},
			}
		}
		dtls.DrctDbtTx = ddt
	}
	if party := buildParties(tx); party != nil {
		dtls.RltdPties = party
	}
	if tx.PurposeText != "" {
		dtls.RmtInf = &models.RmtInf{Ustrd: []string{tx.PurposeText}}
	}
	return dtls
}

// buildParties places the counterparty on the side the money moved
// from: the debtor of a credit entry, the creditor of a debit entry.
func buildParties(tx models.Transaction) *models.RltdPties {
	cp := tx.Counterparty
	if cp.Name == "" && cp.IBAN == "" {
		return nil
	}
	party := &models.Party{Nm: cp.Name}
	var acct *models.PtyAcct
	if cp.IBAN != "" {
		acct = &models.PtyAcct{Id: models.AcctId{IBAN: cp.IBAN}}
	}
	if tx.CreditDebit == models.Credit {
		return &models.RltdPties{Dbtr: party, DbtrAcct: acct}
	}
	return &models.RltdPties{Cdtr: party, CdtrAcct: acct}
}

// Parse reads a CAMT.053 file and returns one CamtDocument per Stmt
// element. Non-UTF-8 input is handled through the declared encoding.
func Parse(r io.Reader) ([]models.CamtDocument, error) {
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = charset.NewReaderLabel

	var root models.CAMT053
	if err := decoder.Decode(&root); err != nil {
		return nil, &parsererror.InvalidFormatError{
			Source:         "camt053",
			ExpectedFormat: "CAMT.053 XML",
			Msg:            err.Error(),
		}
	}
	if len(root.BkToCstmrStmt.Stmt) == 0 {
		return nil, &parsererror.InvalidFormatError{
			Source:         "camt053",
			ExpectedFormat: "CAMT.053 XML",
			Msg:            "document contains no Stmt element",
		}
	}

	// GrpHdr/MsgId is mandatory Max35Text in ISO 20022.
	messageID := strings.TrimSpace(root.BkToCstmrStmt.GrpHdr.MsgId)
	if messageID == "" || len(messageID) > 35 {
		return nil, &parsererror.InvalidGuidError{Value: root.BkToCstmrStmt.GrpHdr.MsgId}
	}

	creationTime, _ := dateutils.ParseISODate(root.BkToCstmrStmt.GrpHdr.CreDtTm)

	docs := make([]models.CamtDocument, 0, len(root.BkToCstmrStmt.Stmt))
	for _, stmt := range root.BkToCstmrStmt.Stmt {
		docs = append(docs, parseStmt(stmt, messageID, creationTime))
	}
	return docs, nil
}

func parseStmt(stmt models.Stmt, messageID string, creationTime time.Time) models.CamtDocument {
	doc := models.CamtDocument{
		MessageID:        messageID,
		CreationDateTime: creationTime,
		StatementNumber:  stmt.ElctrncSeqNb,
		AccountIBAN:      stmt.Acct.Id.IBAN,
		Currency:         stmt.Acct.Ccy,
	}
	if doc.StatementNumber == "" {
		doc.StatementNumber = stmt.Id
	}
	if doc.AccountIBAN == "" && stmt.Acct.Id.Othr != nil {
		doc.AccountIBAN = stmt.Acct.Id.Othr.Id
	}
	if stmt.Acct.Svcr != nil {
		doc.AccountBIC = stmt.Acct.Svcr.FinInstnId.BICFI
		if doc.AccountBIC == "" {
			doc.AccountBIC = stmt.Acct.Svcr.FinInstnId.BIC
		}
	}

	for _, bal := range stmt.Bal {
		balance, err := parseBal(bal)
		if err != nil {
			log.WithError(err).Warn("Skipping unparsable balance element")
			continue
		}
		switch {
		case balance.IsOpening():
			doc.OpeningBalance = balance
		case balance.IsClosing():
			doc.ClosingBalance = balance
		}
	}
	if doc.Currency == "" {
		doc.Currency = doc.ClosingBalance.Currency
	}

	for i, ntry := range stmt.Ntry {
		tx, err := parseNtry(ntry)
		if err != nil {
			log.WithFields(logrus.Fields{"entry": i, "error": err}).Warn("Skipping unparsable statement entry")
			continue
		}
		doc = doc.WithTransaction(tx)
	}
	return doc
}

func parseBal(bal models.Bal) (models.Balance, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(bal.Amt.Text))
	if err != nil {
		return models.Balance{}, &parsererror.ParseError{
			Parser: "camt053", Field: "Bal/Amt", Value: bal.Amt.Text, Err: err,
		}
	}
	date, _ := dateutils.ParseISODate(bal.Dt.Dt)
	return models.NewBalance(
		models.CreditDebit(bal.CdtDbtInd), date, bal.Amt.Ccy, amount,
		models.BalanceType(bal.Tp.CdOrPrtry.Cd))
}

func parseNtry(ntry models.Ntry) (models.Transaction, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(ntry.Amt.Text))
	if err != nil {
		return models.Transaction{}, &parsererror.ParseError{
			Parser: "camt053", Field: "Ntry/Amt", Value: ntry.Amt.Text, Err: err,
		}
	}
	bookingDate, err := dateutils.ParseISODate(ntry.BookgDt.Dt)
	if err != nil {
		return models.Transaction{}, &parsererror.ParseError{
			Parser: "camt053", Field: "Ntry/BookgDt", Value: ntry.BookgDt.Dt, Err: err,
		}
	}
	valutaDate, err := dateutils.ParseISODate(ntry.ValDt.Dt)
	if err != nil {
		valutaDate = time.Time{}
	}

	tx := models.Transaction{
		BookingDate:          bookingDate,
		ValutaDate:           valutaDate,
		Amount:               amount.Abs(),
		Currency:             ntry.Amt.Ccy,
		CreditDebit:          models.CreditDebit(ntry.CdtDbtInd),
		IsReversal:           ntry.RvslInd == "true",
		EntryReference:       ntry.NtryRef,
		SupplementaryDetails: ntry.AddtlNtryInf,
	}

	if len(ntry.NtryDtls.TxDtls) > 0 {
		dtls := ntry.NtryDtls.TxDtls[0]
		tx.EndToEndID = dtls.Refs.EndToEndId
		tx.MandateID = dtls.Refs.MndtId
		if ddt := dtls.DrctDbtTx; ddt != nil {
			if ddt.MndtRltdInf != nil && tx.MandateID == "" {
				tx.MandateID = ddt.MndtRltdInf.MndtId
			}
			if ddt.CdtrSchmeId != nil {
				tx.CreditorID = ddt.CdtrSchmeId.Id.PrvtId.Othr.Id
			}
		}
		if dtls.RmtInf != nil {
			tx.PurposeText = strings.Join(dtls.RmtInf.Ustrd, " ")
		}
		tx.Counterparty = parseCounterparty(dtls.RltdPties, tx.CreditDebit)
	}

	tx.Reference = refcodec.FromSwiftField(ntry.AcctSvcrRef)
	return tx, nil
}

func parseCounterparty(parties *models.RltdPties, creditDebit models.CreditDebit) models.Counterparty {
	if parties == nil {
		return models.Counterparty{}
	}
	party, acct := parties.Dbtr, parties.DbtrAcct
	if creditDebit == models.Debit {
		party, acct = parties.Cdtr, parties.CdtrAcct
	}
	var cp models.Counterparty
	if party != nil {
		cp.Name = party.Nm
	}
	if acct != nil {
		cp.IBAN = acct.Id.IBAN
	}
	return cp
}
