package models

import "encoding/xml"

// CAMT053 is the root of the CAMT.053 XML structure.
type CAMT053 struct {
	XMLName       xml.Name      `xml:"Document"`
	Xmlns         string        `xml:"xmlns,attr,omitempty"`
	BkToCstmrStmt BkToCstmrStmt `xml:"BkToCstmrStmt"`
}

// BkToCstmrStmt represents the Bank To Customer Statement.
type BkToCstmrStmt struct {
	GrpHdr GrpHdr `xml:"GrpHdr"`
	Stmt   []Stmt `xml:"Stmt"`
}

// GrpHdr represents the Group Header.
type GrpHdr struct {
	MsgId   string `xml:"MsgId"`
	CreDtTm string `xml:"CreDtTm"`
}

// Stmt represents one statement.
type Stmt struct {
	Id           string `xml:"Id"`
	ElctrncSeqNb string `xml:"ElctrncSeqNb,omitempty"`
	CreDtTm      string `xml:"CreDtTm,omitempty"`
	Acct         Acct   `xml:"Acct"`
	Bal          []Bal  `xml:"Bal"`
	Ntry         []Ntry `xml:"Ntry"`
}

// Acct represents the statement account.
type Acct struct {
	Id   AcctId  `xml:"Id"`
	Ccy  string  `xml:"Ccy,omitempty"`
	Svcr *AcctSvcr `xml:"Svcr,omitempty"`
}

// AcctId carries the account identifier.
type AcctId struct {
	IBAN string    `xml:"IBAN,omitempty"`
	Othr *OthrId   `xml:"Othr,omitempty"`
}

// OthrId is a non-IBAN account identifier.
type OthrId struct {
	Id string `xml:"Id"`
}

// AcctSvcr identifies the account servicing institution.
type AcctSvcr struct {
	FinInstnId FinInstnId `xml:"FinInstnId"`
}

// FinInstnId carries the institution's BIC.
type FinInstnId struct {
	BICFI string `xml:"BICFI,omitempty"`
	BIC   string `xml:"BIC,omitempty"`
}

// Bal represents a statement balance.
type Bal struct {
	Tp        BalTp  `xml:"Tp"`
	Amt       Amt    `xml:"Amt"`
	CdtDbtInd string `xml:"CdtDbtInd"`
	Dt        BalDt  `xml:"Dt"`
}

// BalTp represents the balance type.
type BalTp struct {
	CdOrPrtry CdOrPrtry `xml:"CdOrPrtry"`
}

// CdOrPrtry represents the Code or Proprietary choice.
type CdOrPrtry struct {
	Cd string `xml:"Cd"`
}

// BalDt represents the balance date.
type BalDt struct {
	Dt string `xml:"Dt"`
}

// Amt represents an amount with its currency attribute.
type Amt struct {
	Text string `xml:",chardata"`
	Ccy  string `xml:"Ccy,attr"`
}

// Ntry represents one statement entry.
type Ntry struct {
	NtryRef      string   `xml:"NtryRef,omitempty"`
	Amt          Amt      `xml:"Amt"`
	CdtDbtInd    string   `xml:"CdtDbtInd"`
	RvslInd      string   `xml:"RvslInd,omitempty"`
	Sts          string   `xml:"Sts,omitempty"`
	BookgDt      NtryDt   `xml:"BookgDt"`
	ValDt        NtryDt   `xml:"ValDt"`
	AcctSvcrRef  string   `xml:"AcctSvcrRef,omitempty"`
	NtryDtls     NtryDtls `xml:"NtryDtls"`
	AddtlNtryInf string   `xml:"AddtlNtryInf,omitempty"`
}

// NtryDt represents a booking or value date.
type NtryDt struct {
	Dt string `xml:"Dt"`
}

// NtryDtls represents the entry details.
type NtryDtls struct {
	TxDtls []TxDtls `xml:"TxDtls"`
}

// TxDtls represents the transaction details.
type TxDtls struct {
	Refs      Refs       `xml:"Refs"`
	AmtDtls   *AmtDtls   `xml:"AmtDtls,omitempty"`
	RltdPties *RltdPties `xml:"RltdPties,omitempty"`
	DrctDbtTx *DrctDbtTx `xml:"DrctDbtTx,omitempty"`
	RmtInf    *RmtInf    `xml:"RmtInf,omitempty"`
}

// Refs represents the transaction references.
type Refs struct {
	MsgId      string `xml:"MsgId,omitempty"`
	EndToEndId string `xml:"EndToEndId,omitempty"`
	MndtId     string `xml:"MndtId,omitempty"`
	TxId       string `xml:"TxId,omitempty"`
}

// AmtDtls represents the amount details.
type AmtDtls struct {
	InstdAmt struct {
		Amt Amt `xml:"Amt"`
	} `xml:"InstdAmt"`
}

// DrctDbtTx carries direct-debit mandate information.
type DrctDbtTx struct {
	MndtRltdInf *MndtRltdInf `xml:"MndtRltdInf,omitempty"`
	CdtrSchmeId *CdtrSchmeId `xml:"CdtrSchmeId,omitempty"`
}

// MndtRltdInf carries the mandate identifier.
type MndtRltdInf struct {
	MndtId string `xml:"MndtId"`
}

// CdtrSchmeId carries the creditor scheme identifier.
type CdtrSchmeId struct {
	Id CdtrSchmeIdId `xml:"Id"`
}

// CdtrSchmeIdId is the nested identifier choice of CdtrSchmeId.
type CdtrSchmeIdId struct {
	PrvtId PrvtId `xml:"PrvtId"`
}

// PrvtId is the private identification of a creditor scheme.
type PrvtId struct {
	Othr OthrId `xml:"Othr"`
}

// RltdPties represents the related parties.
type RltdPties struct {
	Dbtr     *Party  `xml:"Dbtr,omitempty"`
	DbtrAcct *PtyAcct `xml:"DbtrAcct,omitempty"`
	Cdtr     *Party  `xml:"Cdtr,omitempty"`
	CdtrAcct *PtyAcct `xml:"CdtrAcct,omitempty"`
}

// Party represents a debtor or creditor.
type Party struct {
	Nm string `xml:"Nm,omitempty"`
}

// PtyAcct represents a party's account.
type PtyAcct struct {
	Id AcctId `xml:"Id"`
}

// RmtInf represents the remittance information.
type RmtInf struct {
	Ustrd []string `xml:"Ustrd,omitempty"`
}
