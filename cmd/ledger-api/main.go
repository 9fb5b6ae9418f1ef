// Command ledger-api serves the ledger HTTP API.
package main

import (
	"fmt"
	"os"

	"github.com/robpaolella/personal-finance-sub000/internal/cli"
	"github.com/robpaolella/personal-finance-sub000/internal/infrastructure/config"
)

func main() {
	flags, err := cli.ParseServeFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	cfg := config.LoadOrEnvWithPath(flags.ConfigPath)

	if err := cli.RunServe(cfg, flags); err != nil {
		fmt.Fprintf(os.Stderr, "ledger-api: %v\n", err)
		os.Exit(1)
	}
}
