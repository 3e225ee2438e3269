// Package xmlvalidation performs structural validation of CAMT.053
// documents. Validation is diagnostic: the result object carries the
// findings and the function itself never fails on invalid content.
package xmlvalidation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/xmlpath.v2"
)

var log = logrus.New()

// SetLogger allows setting a custom logger.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// TypeCamt053 is the document type tag of bank-to-customer statements.
const TypeCamt053 = "camt.053"

// schemaFiles maps (type, version) to the XSD file shipped with the
// ISO 20022 message catalogue.
var schemaFiles = map[string]map[string]string{
	TypeCamt053: {
		"02": "camt.053.001.02.xsd",
		"04": "camt.053.001.04.xsd",
		"08": "camt.053.001.08.xsd",
	},
}

// requiredPaths lists the elements a structurally sound CAMT.053
// document must carry.
var requiredPaths = []struct {
	name string
	path *xmlpath.Path
}{
	{"BkToCstmrStmt", xmlpath.MustCompile("/Document/BkToCstmrStmt")},
	{"GrpHdr/MsgId", xmlpath.MustCompile("/Document/BkToCstmrStmt/GrpHdr/MsgId")},
	{"Stmt", xmlpath.MustCompile("/Document/BkToCstmrStmt/Stmt")},
	{"Stmt/Acct", xmlpath.MustCompile("/Document/BkToCstmrStmt/Stmt/Acct")},
	{"Stmt/Bal", xmlpath.MustCompile("/Document/BkToCstmrStmt/Stmt/Bal")},
}

var entryPaths = []struct {
	name string
	path *xmlpath.Path
}{
	{"Ntry/Amt", xmlpath.MustCompile("/Document/BkToCstmrStmt/Stmt/Ntry/Amt")},
	{"Ntry/CdtDbtInd", xmlpath.MustCompile("/Document/BkToCstmrStmt/Stmt/Ntry/CdtDbtInd")},
	{"Ntry/BookgDt", xmlpath.MustCompile("/Document/BkToCstmrStmt/Stmt/Ntry/BookgDt")},
}

var entryPath = xmlpath.MustCompile("/Document/BkToCstmrStmt/Stmt/Ntry")

// Result carries the validation outcome.
type Result struct {
	Valid   bool
	Errors  []string
	Type    string
	Version string
	Schema  string
}

// SchemaFile resolves the XSD file for a document type and version.
// When the exact version has no schema on file, the newest available
// version of the type is used instead; ok reports whether the type is
// known at all.
func SchemaFile(docType, version string) (file string, resolved string, ok bool) {
	versions, known := schemaFiles[docType]
	if !known {
		return "", "", false
	}
	if file, exact := versions[version]; exact {
		return file, version, true
	}

	available := make([]string, 0, len(versions))
	for v := range versions {
		available = append(available, v)
	}
	sort.Strings(available)
	newest := available[len(available)-1]
	log.WithFields(logrus.Fields{
		"type":      docType,
		"requested": version,
		"resolved":  newest,
	}).Debug("No schema for requested version, falling back to newest")
	return versions[newest], newest, true
}

// Validate checks the structure of an XML document against the named
// type and version. Unknown types and versions degrade, never fail:
// an unknown type yields an invalid result, an unknown version falls
// back to the newest schema of the type.
func Validate(xmlContent []byte, docType, version string) Result {
	if docType == "" {
		docType = TypeCamt053
	}
	result := Result{Type: docType, Version: version}

	schema, resolved, ok := SchemaFile(docType, version)
	if !ok {
		result.Errors = append(result.Errors, fmt.Sprintf("unknown document type %q", docType))
		return result
	}
	result.Version = resolved
	result.Schema = schema

	root, err := xmlpath.Parse(strings.NewReader(string(xmlContent)))
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("not well-formed XML: %v", err))
		return result
	}

	for _, required := range requiredPaths {
		if !required.path.Exists(root) {
			result.Errors = append(result.Errors, fmt.Sprintf("missing required element %s", required.name))
		}
	}

	// Entry-level elements are checked only when entries are present;
	// an empty statement is structurally valid.
	if entryPath.Exists(root) {
		for _, required := range entryPaths {
			if !required.path.Exists(root) {
				result.Errors = append(result.Errors, fmt.Sprintf("missing required element %s", required.name))
			}
		}
	}

	result.Valid = len(result.Errors) == 0
	return result
}
