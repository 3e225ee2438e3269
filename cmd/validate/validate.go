// Package validate handles CAMT.053 schema validation commands.
package validate

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"bankfmt/datev-convert/cmd/root"
	"bankfmt/datev-convert/internal/xmlvalidation"
)

var version string

// Cmd represents the validate command.
var Cmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the structure of a CAMT.053 XML file",
	Long: `Check a CAMT.053 XML file against the structural requirements of
the schema version. An unknown version falls back to the newest
available schema.`,
	Run: validateFunc,
}

func init() {
	Cmd.Flags().StringVar(&version, "schema-version", "02", "CAMT.053 schema version to validate against")
}

func validateFunc(cmd *cobra.Command, args []string) {
	input := root.SharedFlags.Input
	root.Log.WithField("input", input).Info("Validating CAMT.053 file")

	content, err := os.ReadFile(input)
	if err != nil {
		root.Log.Fatalf("Error reading input file: %v", err)
	}

	result := xmlvalidation.Validate(content, xmlvalidation.TypeCamt053, version)
	if !result.Valid {
		for _, msg := range result.Errors {
			root.Log.Error(msg)
		}
		root.Log.Fatalf("%s is not a valid %s version %s document", input, result.Type, result.Version)
	}

	root.Log.WithFields(logrus.Fields{
		"type":    result.Type,
		"version": result.Version,
		"schema":  result.Schema,
	}).Info("Document is structurally valid")
}
