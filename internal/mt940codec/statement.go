package mt940codec

import (
	"fmt"
	"strings"

	"bankfmt/datev-convert/internal/currencyutils"
	"bankfmt/datev-convert/internal/dateutils"
	"bankfmt/datev-convert/internal/models"
	"bankfmt/datev-convert/internal/parsererror"
)

// Statement is a whole MT940 end-of-day statement message.
type Statement struct {
	// TransactionReference is the sender's reference (field :20:).
	TransactionReference string
	// AccountID is the account identification (field :25:).
	AccountID string
	// StatementNumber is the statement/sequence number (field :28C:).
	StatementNumber string
	// OpeningBalance is field :60F:.
	OpeningBalance models.Balance
	// Transactions are the :61:/:86: entry blocks in wire order.
	Transactions []models.Transaction
	// ClosingBalance is field :62F:.
	ClosingBalance models.Balance
}

// FromCamtDocument projects a CAMT document onto the MT940 statement
// shape. The transaction reference is the message id clipped to the
// field :20: limit.
func FromCamtDocument(doc models.CamtDocument) Statement {
	ref := doc.MessageID
	if len(ref) > 16 {
		ref = ref[:16]
	}
	return Statement{
		TransactionReference: ref,
		AccountID:            doc.AccountIBAN,
		StatementNumber:      doc.StatementNumber,
		OpeningBalance:       doc.OpeningBalance,
		Transactions:         doc.Transactions,
		ClosingBalance:       doc.ClosingBalance,
	}
}

// ToCamtDocument lifts an MT940 statement back into the CAMT document
// shape.
func ToCamtDocument(st Statement) models.CamtDocument {
	return models.CamtDocument{
		MessageID:       st.TransactionReference,
		StatementNumber: st.StatementNumber,
		AccountIBAN:     st.AccountID,
		Currency:        st.OpeningBalance.Currency,
		OpeningBalance:  st.OpeningBalance,
		ClosingBalance:  st.ClosingBalance,
		Transactions:    st.Transactions,
	}
}

// serializeBalance renders a :60F:/:62F: balance value.
func serializeBalance(b models.Balance) string {
	return b.CreditDebit.SwiftMark() +
		dateutils.FormatSwift(b.Date) +
		b.Currency +
		currencyutils.FormatSwiftAmount(b.Amount)
}

// parseBalance decodes a :60F:/:62F: balance value.
func parseBalance(content string, balanceType models.BalanceType) (models.Balance, error) {
	m := balanceLinePattern.FindStringSubmatch(content)
	if m == nil {
		return models.Balance{}, &parsererror.ParseError{
			Parser: "MT940", Field: "balance", Value: content,
			Err: fmt.Errorf("line does not match the balance format"),
		}
	}
	date, err := dateutils.ParseSwiftDate(m[2])
	if err != nil {
		return models.Balance{}, &parsererror.ParseError{
			Parser: "MT940", Field: "balance date", Value: m[2], Err: err,
		}
	}
	amount, err := currencyutils.ParseAmount(m[4])
	if err != nil {
		return models.Balance{}, &parsererror.ParseError{
			Parser: "MT940", Field: "balance amount", Value: m[4], Err: err,
		}
	}
	return models.NewBalance(models.CreditDebitFromSwiftMark(m[1]), date, m[3], amount, balanceType)
}

// SerializeStatement renders a whole MT940 message, terminated by a
// lone "-" line.
func SerializeStatement(st Statement) string {
	var b strings.Builder
	fmt.Fprintf(&b, ":20:%s\n", st.TransactionReference)
	fmt.Fprintf(&b, ":25:%s\n", st.AccountID)
	fmt.Fprintf(&b, ":28C:%s\n", st.StatementNumber)
	fmt.Fprintf(&b, ":60F:%s\n", serializeBalance(st.OpeningBalance))
	for _, tx := range st.Transactions {
		b.WriteString(SerializeTransaction(tx))
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, ":62F:%s\n", serializeBalance(st.ClosingBalance))
	b.WriteString("-")
	return b.String()
}

// ParseStatement parses a whole MT940 message.
func ParseStatement(raw string) (Statement, error) {
	if strings.TrimSpace(raw) == "" {
		return Statement{}, &parsererror.InvalidFormatError{
			Source:         "mt940",
			ExpectedFormat: "MT940 statement",
			Msg:            "empty message",
		}
	}

	var st Statement
	var entryBlock []string
	currency := ""

	flushEntry := func() error {
		if len(entryBlock) == 0 {
			return nil
		}
		tx, err := ParseTransaction(strings.Join(entryBlock, "\n"), currency)
		if err != nil {
			return err
		}
		st.Transactions = append(st.Transactions, tx)
		entryBlock = nil
		return nil
	}

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "-" {
			break
		}

		tag, content := splitTag(line)
		switch tag {
		case "20":
			st.TransactionReference = content
		case "25":
			st.AccountID = content
		case "28C":
			st.StatementNumber = content
		case "60F":
			if err := flushEntry(); err != nil {
				return Statement{}, err
			}
			balance, err := parseBalance(content, models.BalanceOpening)
			if err != nil {
				return Statement{}, err
			}
			st.OpeningBalance = balance
			currency = balance.Currency
		case "62F":
			if err := flushEntry(); err != nil {
				return Statement{}, err
			}
			balance, err := parseBalance(content, models.BalanceClosing)
			if err != nil {
				return Statement{}, err
			}
			st.ClosingBalance = balance
		case "61":
			if err := flushEntry(); err != nil {
				return Statement{}, err
			}
			entryBlock = append(entryBlock, line)
		case "86", "":
			// :86: and untagged lines continue the current entry.
			if len(entryBlock) > 0 {
				entryBlock = append(entryBlock, line)
			}
		default:
			log.WithField("tag", tag).Debug("Ignoring unsupported MT940 field")
		}
	}
	if err := flushEntry(); err != nil {
		return Statement{}, err
	}

	return st, nil
}

// splitTag separates a ":NN:" or ":NNC:" field tag from its content.
// Lines without a tag return an empty tag and the whole line.
func splitTag(line string) (string, string) {
	if !strings.HasPrefix(line, ":") {
		return "", line
	}
	end := strings.Index(line[1:], ":")
	if end <= 0 {
		return "", line
	}
	return line[1 : end+1], line[end+2:]
}
