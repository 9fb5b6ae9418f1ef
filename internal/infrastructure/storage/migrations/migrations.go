// Package migrations holds the goose SQL migrations for the ledger database.
package migrations

import "embed"

// FS contains every *.sql migration in this directory.
//
//go:embed *.sql
var FS embed.FS
