// Package root contains the root command for the application.
package root

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"bankfmt/datev-convert/internal/config"
	"bankfmt/datev-convert/internal/csvexport"
	"bankfmt/datev-convert/internal/datevio"
	"bankfmt/datev-convert/internal/mt940codec"
	"bankfmt/datev-convert/internal/statementconv"
	"bankfmt/datev-convert/internal/xmlgen"
	"bankfmt/datev-convert/internal/xmlvalidation"
)

// CommonFlags represents the flags that are common to multiple commands.
type CommonFlags struct {
	Input    string
	Output   string
	Validate bool
}

var (
	// Log is the shared logger instance for commands.
	Log = logrus.New()

	// Cmd is the root command.
	Cmd = &cobra.Command{
		Use:   "datev-convert",
		Short: "Convert bank statements between DATEV, CAMT.053 and MT940.",
		Long: `datev-convert is a CLI tool that converts bank statement files between
the DATEV fixed-field format, ISO 20022 CAMT.053 XML and SWIFT MT940,
with balance chaining across statement sequences.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to datev-convert!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()
			Log = config.ConfigureLogging()

			datevio.SetLogger(Log)
			statementconv.SetLogger(Log)
			xmlgen.SetLogger(Log)
			xmlvalidation.SetLogger(Log)
			mt940codec.SetLogger(Log)
			csvexport.SetLogger(Log)

			if delim := os.Getenv("CSV_DELIMITER"); delim != "" {
				Log.WithField("delimiter", delim).Debug("Setting CSV delimiter from environment")
				csvexport.SetDelimiter([]rune(delim)[0])
			}
		},
	}

	// SharedFlags holds the common flags accessible to all commands.
	SharedFlags = CommonFlags{}

	// CamtVersion pins the CAMT.053 schema version for XML output.
	CamtVersion string

	// DatevVersion pins the DATEV format version for DATEV output.
	DatevVersion string
)

// Init initializes the root command and all flags.
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file")
	Cmd.PersistentFlags().BoolVarP(&SharedFlags.Validate, "validate", "v", false, "Validate file format before conversion")
	Cmd.PersistentFlags().StringVar(&CamtVersion, "camt-version", xmlgen.DefaultVersion, "CAMT.053 schema version for XML output")
	Cmd.PersistentFlags().StringVar(&DatevVersion, "datev-version", "700", "DATEV format version for DATEV output")
}
