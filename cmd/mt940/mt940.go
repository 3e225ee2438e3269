// Package mt940 handles DATEV to SWIFT MT940 conversion commands.
package mt940

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"bankfmt/datev-convert/cmd/root"
	"bankfmt/datev-convert/internal/datevio"
	"bankfmt/datev-convert/internal/mt940codec"
	"bankfmt/datev-convert/internal/statementconv"
)

// Cmd represents the mt940 command.
var Cmd = &cobra.Command{
	Use:   "mt940",
	Short: "Convert DATEV statement files to SWIFT MT940 messages",
	Long: `Convert a DATEV statement file to SWIFT MT940 end-of-day statement
messages, one message per statement, each terminated by a lone "-"
line.`,
	Run: convertFunc,
}

func convertFunc(cmd *cobra.Command, args []string) {
	input := root.SharedFlags.Input
	output := root.SharedFlags.Output
	root.Log.WithField("input", input).Info("Converting DATEV to MT940")

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

	messages := make([]string, 0, len(converted))
	for _, doc := range converted {
		messages = append(messages, mt940codec.SerializeStatement(mt940codec.FromCamtDocument(doc)))
	}
	if err := os.WriteFile(output, []byte(strings.Join(messages, "\n")+"\n"), 0600); err != nil {
		root.Log.Fatalf("Error writing output file: %v", err)
	}

	root.Log.WithField("statements", len(converted)).Info("DATEV to MT940 conversion completed successfully!")
}
