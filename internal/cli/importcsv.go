package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/robpaolella/personal-finance-sub000/internal/adapters/csvimport"
	"github.com/robpaolella/personal-finance-sub000/internal/application/importer"
	"github.com/robpaolella/personal-finance-sub000/internal/domain/duplicates"
	"github.com/robpaolella/personal-finance-sub000/internal/infrastructure/config"
	"github.com/robpaolella/personal-finance-sub000/internal/infrastructure/logging"
	"github.com/robpaolella/personal-finance-sub000/internal/infrastructure/storage"
)

// RunImport parses a CSV statement, prints the duplicate preview to out and,
// with -commit, saves the selected rows.
func RunImport(ctx context.Context, cfg *config.Config, flags *ImportFlags, out io.Writer) error {
	loggingCfg := cfg.Observability.Logging
	if flags.Verbose {
		loggingCfg.Level = "debug"
	}
	logger := logging.NewLoggerWithSystem(loggingCfg, "import")

	mapping := csvimport.DefaultMapping()
	mapping.DateFormat = cfg.Import.DateFormat
	if flags.DateFormat != "" {
		mapping.DateFormat = flags.DateFormat
	}

	txns, err := parseFile(flags.File, mapping)
	if err != nil {
		return err
	}
	if len(txns) == 0 {
		fmt.Fprintf(out, "%s: no transactions found\n", flags.File)
		return nil
	}

	store, err := storage.NewStorage(cfg.Storage.DatabasePath)
	if err != nil {
		return fmt.Errorf("open ledger: %w", err)
	}
	defer func() { _ = store.Close() }()

	if _, err := store.GetAccount(ctx, flags.AccountID); err != nil {
		return fmt.Errorf("account %d: %w", flags.AccountID, err)
	}

	detector := duplicates.NewDetector(cfg.Duplicates.DetectorConfig(), store, logger.With("component", "duplicates"))
	svc := importer.NewService(detector, store, logger)

	preview, err := svc.Preview(ctx, txns)
	if err != nil {
		return fmt.Errorf("preview import: %w", err)
	}
	PrintPreview(out, preview)

	if !flags.Commit {
		fmt.Fprintln(out, "Preview only; run with -commit to save the selected rows.")
		return nil
	}

	result, err := svc.Commit(ctx, importer.CommitRequest{
		BatchID:      preview.BatchID,
		AccountID:    flags.AccountID,
		Transactions: txns,
		Selected:     selection(preview, flags.IncludePossible),
	})
	if err != nil {
		return fmt.Errorf("commit import: %w", err)
	}
	PrintCommitSummary(out, result)
	return nil
}

func parseFile(path string, mapping csvimport.Mapping) ([]duplicates.IncomingTransaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	txns, err := csvimport.Parse(f, mapping)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return txns, nil
}

// selection returns the default selection, optionally without possible
// duplicates.
func selection(preview *importer.Preview, includePossible bool) []int {
	selected := preview.SelectedIndexes()
	if includePossible {
		return selected
	}

	kept := selected[:0]
	for _, idx := range selected {
		if preview.Rows[idx].Result.Status != duplicates.StatusPossible {
			kept = append(kept, idx)
		}
	}
	return kept
}
