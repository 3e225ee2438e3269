// Package camt2datev handles CAMT.053 to DATEV conversion commands.
package camt2datev

import (
	"bytes"
	"os"

	"github.com/spf13/cobra"

	"bankfmt/datev-convert/cmd/root"
	"bankfmt/datev-convert/internal/datevio"
	"bankfmt/datev-convert/internal/fieldcodec"
	"bankfmt/datev-convert/internal/statementconv"
	"bankfmt/datev-convert/internal/xmlgen"
	"bankfmt/datev-convert/internal/xmlvalidation"
)

// Cmd represents the camt2datev command.
var Cmd = &cobra.Command{
	Use:   "camt2datev",
	Short: "Convert CAMT.053 XML files to DATEV statement files",
	Long: `Convert a CAMT.053 XML document to a DATEV statement file, one
record per transaction. Statements that cannot be converted are
skipped.`,
	Run: convertFunc,
}

func convertFunc(cmd *cobra.Command, args []string) {
	input := root.SharedFlags.Input
	output := root.SharedFlags.Output
	root.Log.WithField("input", input).Info("Converting CAMT.053 to DATEV")

	content, err := os.ReadFile(input)
	if err != nil {
		root.Log.Fatalf("Error reading input file: %v", err)
	}

	if root.SharedFlags.Validate {
		result := xmlvalidation.Validate(content, xmlvalidation.TypeCamt053, "")
		if !result.Valid {
			for _, msg := range result.Errors {
				root.Log.Error(msg)
			}
			root.Log.Fatalf("Input is not a valid CAMT.053 document: %s", input)
		}
	}

	docs, err := xmlgen.Parse(bytes.NewReader(content))
	if err != nil {
		root.Log.Fatalf("Error parsing CAMT.053 file: %v", err)
	}

	reg, err := fieldcodec.Lookup("DTVF", root.DatevVersion)
	if err != nil {
		root.Log.Fatalf("Unknown DATEV version %q: %v", root.DatevVersion, err)
	}

	converted := statementconv.ConvertMultipleToDatev(docs, reg)
	if len(converted) == 0 {
		root.Log.Fatal("No convertible statements in input")
	}

	if err := datevio.WriteFile(output, converted); err != nil {
		root.Log.Fatalf("Error writing DATEV file: %v", err)
	}

	root.Log.WithField("statements", len(converted)).Info("CAMT.053 to DATEV conversion completed successfully!")
}
