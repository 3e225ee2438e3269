// Package export handles CSV export commands.
package export

import (
	"bytes"
	"os"

	"github.com/spf13/cobra"

	"bankfmt/datev-convert/cmd/root"
	"bankfmt/datev-convert/internal/csvexport"
	"bankfmt/datev-convert/internal/models"
	"bankfmt/datev-convert/internal/xmlgen"
)

// Cmd represents the export command.
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export CAMT.053 transactions as format-neutral CSV",
	Long: `Read a CAMT.053 XML file and write its transactions as a flat CSV
file for spreadsheet and accounting imports.`,
	Run: exportFunc,
}

func exportFunc(cmd *cobra.Command, args []string) {
	input := root.SharedFlags.Input
	output := root.SharedFlags.Output
	root.Log.WithField("input", input).Info("Exporting transactions to CSV")

	content, err := os.ReadFile(input)
	if err != nil {
		root.Log.Fatalf("Error reading input file: %v", err)
	}
	docs, err := xmlgen.Parse(bytes.NewReader(content))
	if err != nil {
		root.Log.Fatalf("Error parsing CAMT.053 file: %v", err)
	}

	transactions := make([]models.Transaction, 0)
	for _, doc := range docs {
		transactions = append(transactions, doc.Transactions...)
	}

	if err := csvexport.WriteFile(transactions, output); err != nil {
		root.Log.Fatalf("Error writing CSV file: %v", err)
	}

	root.Log.WithField("count", len(transactions)).Info("CSV export completed successfully!")
}
