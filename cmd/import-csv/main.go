// Command import-csv previews a bank statement against the ledger and
// optionally saves the rows that are not likely duplicates.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/robpaolella/personal-finance-sub000/internal/cli"
	"github.com/robpaolella/personal-finance-sub000/internal/infrastructure/config"
)

func main() {
	flags, err := cli.ParseImportFlags(os.Args[1:], os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "import-csv: %v\n", err)
		os.Exit(2)
	}

	cfg := config.LoadOrEnvWithPath(flags.ConfigPath)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.RunImport(ctx, cfg, flags, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "import-csv: %v\n", err)
		os.Exit(1)
	}
}
