// Package datev2camt handles DATEV to CAMT.053 conversion commands.
package datev2camt

import (
	"os"

	"github.com/spf13/cobra"

	"bankfmt/datev-convert/cmd/root"
	"bankfmt/datev-convert/internal/datevio"
	"bankfmt/datev-convert/internal/statementconv"
	"bankfmt/datev-convert/internal/xmlgen"
)

// Cmd represents the datev2camt command.
var Cmd = &cobra.Command{
	Use:   "datev2camt",
	Short: "Convert DATEV statement files to CAMT.053 XML",
	Long: `Convert a DATEV statement file to a CAMT.053 XML document.
Statements in the file are converted in order with balance chaining:
the closing balance of each statement opens the next.`,
	Run: convertFunc,
}

func convertFunc(cmd *cobra.Command, args []string) {
	input := root.SharedFlags.Input
	output := root.SharedFlags.Output
	root.Log.WithField("input", input).Info("Converting DATEV to CAMT.053")

	if root.SharedFlags.Validate {
		ok, err := datevio.ValidateFormat(input)
		if err != nil {
			root.Log.Fatalf("Error validating input file: %v", err)
		}
		if !ok {
			root.Log.Fatalf("Input is not a DATEV statement file: %s", input)
		}
	}

	docs, err := datevio.ParseFile(input)
	if err != nil {
		root.Log.Fatalf("Error parsing DATEV file: %v", err)
	}

	converted := statementconv.ConvertMultiple(docs, nil)
	if len(converted) == 0 {
		root.Log.Fatal("No convertible statements in input")
	}

	xml, err := xmlgen.GenerateMultiple(converted, root.CamtVersion)
	if err != nil {
		root.Log.Fatalf("Error generating CAMT.053 XML: %v", err)
	}
	if err := os.WriteFile(output, xml, 0600); err != nil {
		root.Log.Fatalf("Error writing output file: %v", err)
	}

	root.Log.WithField("statements", len(converted)).Info("DATEV to CAMT.053 conversion completed successfully!")
}
