package xmlvalidation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bankfmt/datev-convert/internal/models"
	"bankfmt/datev-convert/internal/xmlgen"
)

func validDocument(t *testing.T) []byte {
	t.Helper()
	opening, err := models.NewBalance(models.Credit,
		time.Date(2025, time.January, 14, 0, 0, 0, 0, time.UTC),
		"EUR", decimal.Zero, models.BalanceOpening)
	require.NoError(t, err)
	closing, err := models.NewBalance(models.Credit,
		time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC),
		"EUR", decimal.RequireFromString("10"), models.BalanceClosing)
	require.NoError(t, err)

	doc := models.CamtDocument{
		MessageID:        "MSG-1",
		CreationDateTime: time.Date(2025, time.January, 31, 10, 0, 0, 0, time.UTC),
		StatementNumber:  "1",
		AccountIBAN:      "DE89370400440532013000",
		Currency:         "EUR",
		OpeningBalance:   opening,
		ClosingBalance:   closing,
		Transactions: []models.Transaction{
			{
				BookingDate: time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC),
				Amount:      decimal.RequireFromString("10"),
				Currency:    "EUR",
				CreditDebit: models.Credit,
			},
		},
	}
	out, err := xmlgen.Generate(doc, xmlgen.Version02)
	require.NoError(t, err)
	return out
}

func TestValidate(t *testing.T) {
	result := Validate(validDocument(t), TypeCamt053, "02")

	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
	assert.Equal(t, TypeCamt053, result.Type)
	assert.Equal(t, "02", result.Version)
	assert.Equal(t, "camt.053.001.02.xsd", result.Schema)
}

func TestValidateDefaultsToCamt053(t *testing.T) {
	result := Validate(validDocument(t), "", "02")
	assert.True(t, result.Valid)
	assert.Equal(t, TypeCamt053, result.Type)
}

func TestValidateUnknownVersionFallsBackToNewest(t *testing.T) {
	result := Validate(validDocument(t), TypeCamt053, "99")

	assert.Equal(t, "08", result.Version)
	assert.Equal(t, "camt.053.001.08.xsd", result.Schema)
	assert.True(t, result.Valid)
}

func TestValidateUnknownType(t *testing.T) {
	result := Validate(validDocument(t), "pain.001", "02")

	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "unknown document type")
}

func TestValidateMalformedXML(t *testing.T) {
	result := Validate([]byte("<Document><unclosed"), TypeCamt053, "02")

	assert.False(t, result.Valid)
	require.NotEmpty(t, result.Errors)
	assert.Contains(t, result.Errors[0], "not well-formed")
}

func TestValidateMissingElements(t *testing.T) {
	xml := `<?xml version="1.0"?>
<Document xmlns="urn:iso:std:iso:20022:tech:xsd:camt.053.001.02">
  <BkToCstmrStmt>
    <GrpHdr><MsgId>MSG-1</MsgId></GrpHdr>
  </BkToCstmrStmt>
</Document>`

	result := Validate([]byte(xml), TypeCamt053, "02")

	assert.False(t, result.Valid)
	assert.Contains(t, result.Errors, "missing required element Stmt")
	assert.Contains(t, result.Errors, "missing required element Stmt/Acct")
}

func TestValidateEntryElements(t *testing.T) {
	xml := `<?xml version="1.0"?>
<Document xmlns="urn:iso:std:iso:20022:tech:xsd:camt.053.001.02">
  <BkToCstmrStmt>
    <GrpHdr><MsgId>MSG-1</MsgId></GrpHdr>
    <Stmt>
      <Acct><Id><IBAN>DE89370400440532013000</IBAN></Id></Acct>
      <Bal><Amt Ccy="EUR">0.00</Amt></Bal>
      <Ntry><Amt Ccy="EUR">10.00</Amt></Ntry>
    </Stmt>
  </BkToCstmrStmt>
</Document>`

	result := Validate([]byte(xml), TypeCamt053, "02")

	assert.False(t, result.Valid)
	assert.Contains(t, result.Errors, "missing required element Ntry/CdtDbtInd")
	assert.Contains(t, result.Errors, "missing required element Ntry/BookgDt")
}

func TestSchemaFile(t *testing.T) {
	file, version, ok := SchemaFile(TypeCamt053, "04")
	assert.True(t, ok)
	assert.Equal(t, "camt.053.001.04.xsd", file)
	assert.Equal(t, "04", version)

	_, _, ok = SchemaFile("unknown", "04")
	assert.False(t, ok)
}
