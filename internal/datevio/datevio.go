// Package datevio reads and writes DATEV bank statement files: one
// ;-delimited, "-quoted record per line, format and version detected
// from the first two fields. Consecutive lines sharing a statement
// number form one document, so a file can carry a statement chain.
package datevio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"bankfmt/datev-convert/internal/fieldcodec"
	"bankfmt/datev-convert/internal/models"
	"bankfmt/datev-convert/internal/parsererror"
	"bankfmt/datev-convert/internal/tokenizer"
)

var log = logrus.New()

// SetLogger allows setting a custom logger.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Read parses DATEV lines from the reader into documents. The registry
// is detected from the first non-empty line and applies to the whole
// file. Lines whose format tag or version disagree with the detected
// registry are kept; only blank lines are dropped.
func Read(r io.Reader) ([]models.DatevDocument, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var reg fieldcodec.Registry
	var docs []models.DatevDocument
	var current models.DatevDocument
	currentNumber := ""
	haveRegistry := false
	haveDocument := false

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		tokens := tokenizer.TokenizeDatev(line)

		if !haveRegistry {
			detected, err := fieldcodec.Detect(tokens)
			if err != nil {
				return nil, &parsererror.InvalidFormatError{
					Source:         "datev",
					ExpectedFormat: "DATEV statement line",
					Msg:            err.Error(),
				}
			}
			reg = detected
			haveRegistry = true
		}

		record := fieldcodec.Decode(tokens, reg)
		number := record.ValueOf(reg, "statement_number")

		if !haveDocument || number != currentNumber {
			if haveDocument {
				docs = append(docs, current)
			}
			current = newDocument(record, reg)
			currentNumber = number
			haveDocument = true
		}
		current = current.WithRecord(record)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading DATEV input: %w", err)
	}
	if haveDocument {
		docs = append(docs, current)
	}
	if len(docs) == 0 {
		return nil, parsererror.ErrDocumentEmpty
	}
	return docs, nil
}

func newDocument(first fieldcodec.Record, reg fieldcodec.Registry) models.DatevDocument {
	return models.DatevDocument{
		Registry:        reg,
		BIC:             first.ValueOf(reg, "bic"),
		IBAN:            first.ValueOf(reg, "account_number"),
		StatementNumber: first.ValueOf(reg, "statement_number"),
	}
}

// ParseFile reads a DATEV file from disk.
func ParseFile(path string) ([]models.DatevDocument, error) {
	log.WithField("file", path).Info("Parsing DATEV file")

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening DATEV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	docs, err := Read(file)
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"file":      path,
		"documents": len(docs),
	}).Info("Successfully parsed DATEV file")
	return docs, nil
}

// Write renders the documents back to wire lines, one record per line,
// byte-exact for records decoded from a conformant writer.
func Write(w io.Writer, docs []models.DatevDocument) error {
	for _, doc := range docs {
		for _, record := range doc.Records {
			line := tokenizer.JoinDatev(fieldcodec.Encode(record, doc.Registry))
			if _, err := io.WriteString(w, line+"\n"); err != nil {
				return fmt.Errorf("error writing DATEV output: %w", err)
			}
		}
	}
	return nil
}

// WriteFile writes the documents to a DATEV file on disk.
func WriteFile(path string, docs []models.DatevDocument) error {
	log.WithFields(logrus.Fields{
		"file":      path,
		"documents": len(docs),
	}).Info("Writing DATEV file")

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating DATEV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	return Write(file, docs)
}

// ValidateFormat reports whether the file's first line carries a known
// DATEV format tag and version.
func ValidateFormat(path string) (bool, error) {
	file, err := os.Open(path)
	if err != nil {
		return false, fmt.Errorf("error opening file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		_, err := fieldcodec.Detect(tokenizer.TokenizeDatev(line))
		return err == nil, nil
	}
	return false, nil
}
