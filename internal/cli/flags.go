package cli

import (
	"errors"
	"flag"
	"io"
)

// ServeFlags holds the CLI flags for the API server.
type ServeFlags struct {
	ConfigPath string
	Port       int
	Verbose    bool
}

// ParseServeFlags parses command line flags for the API server.
// A zero Port means the configured port is used.
func ParseServeFlags(args []string) (*ServeFlags, error) {
	flags := &ServeFlags{}
	fs := flag.NewFlagSet("ledger-api", flag.ContinueOnError)
	fs.StringVar(&flags.ConfigPath, "config", "config.yaml", "Configuration file path")
	fs.IntVar(&flags.Port, "port", 0, "Port to listen on (overrides config)")
	fs.BoolVar(&flags.Verbose, "verbose", false, "Verbose output")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return flags, nil
}

// ImportFlags holds the CLI flags for a CSV statement import.
type ImportFlags struct {
	ConfigPath      string
	File            string
	AccountID       int64
	DateFormat      string
	Commit          bool
	IncludePossible bool
	Verbose         bool
}

// ParseImportFlags parses command line flags for a CSV statement import.
func ParseImportFlags(args []string, output io.Writer) (*ImportFlags, error) {
	flags := &ImportFlags{}
	fs := flag.NewFlagSet("import-csv", flag.ContinueOnError)
	if output != nil {
		fs.SetOutput(output)
	}
	fs.StringVar(&flags.ConfigPath, "config", "config.yaml", "Configuration file path")
	fs.StringVar(&flags.File, "file", "", "CSV statement to import (required)")
	fs.Int64Var(&flags.AccountID, "account", 0, "Account ID to import into (required)")
	fs.StringVar(&flags.DateFormat, "date-format", "", "Go date layout of the date column (default: auto-detect)")
	fs.BoolVar(&flags.Commit, "commit", false, "Save the selected rows (default is a preview)")
	fs.BoolVar(&flags.IncludePossible, "include-possible", true, "Import rows flagged as possible duplicates")
	fs.BoolVar(&flags.Verbose, "verbose", false, "Verbose output")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if flags.File == "" {
		return nil, errors.New("-file is required")
	}
	if flags.AccountID <= 0 {
		return nil, errors.New("-account is required")
	}
	return flags, nil
}
