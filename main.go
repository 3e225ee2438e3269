package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"bankfmt/datev-convert/cmd/camt2datev"
	"bankfmt/datev-convert/cmd/datev2camt"
	"bankfmt/datev-convert/cmd/export"
	"bankfmt/datev-convert/cmd/mt940"
	"bankfmt/datev-convert/cmd/root"
	"bankfmt/datev-convert/cmd/validate"
)

func init() {
	loadEnvSilently()
	configureLogLevelDirectly()

	root.Init()

	root.Cmd.AddCommand(datev2camt.Cmd)
	root.Cmd.AddCommand(camt2datev.Cmd)
	root.Cmd.AddCommand(mt940.Cmd)
	root.Cmd.AddCommand(validate.Cmd)
	root.Cmd.AddCommand(export.Cmd)
}

// loadEnvSilently loads environment variables without logging anything.
func loadEnvSilently() {
	envFile := ".env"
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		envFile = filepath.Join("..", ".env")
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			return
		}
	}
	_ = godotenv.Load(envFile)
}

// configureLogLevelDirectly sets the global log level before any
// logging happens, so every logger picks it up.
func configureLogLevelDirectly() {
	logLevelStr := os.Getenv("LOG_LEVEL")
	if logLevelStr == "" {
		logLevelStr = "info"
	}
	logLevel, err := logrus.ParseLevel(strings.ToLower(logLevelStr))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
