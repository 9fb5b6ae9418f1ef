// Package duplicates decides whether incoming transactions already exist in
// the ledger.
//
// Classification rules:
//   - Candidates are persisted transactions on the same date (any account)
//   - Amounts must match within half a cent, compared with their sign
//   - Description similarity >= 0.8 is an exact duplicate, below that a
//     possible duplicate
//   - Rows that repeat an earlier row of the same batch are possible duplicates
//
// Example usage:
//
//	d := duplicates.NewDetector(duplicates.DefaultConfig(), repo, logger)
//	results, err := d.DetectDuplicates(ctx, incoming)
//	for _, r := range results {
//		if r.Status == duplicates.StatusExact {
//			// skip by default
//		}
//	}
package duplicates

import (
	"context"
	"fmt"
	"log/slog"
	"math"
)

// Detector classifies incoming transactions against the ledger.
// It holds no state between calls and is safe for concurrent use.
type Detector struct {
	config  Config
	records RecordSource
	logger  *slog.Logger
}

// NewDetector creates a detector reading candidates from records.
// A zero Config is replaced with DefaultConfig.
func NewDetector(config Config, records RecordSource, logger *slog.Logger) *Detector {
	if config == (Config{}) {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Detector{
		config:  config,
		records: records,
		logger:  logger,
	}
}

// DetectDuplicates returns one Result per incoming transaction, in input order.
// A storage error aborts the whole call; no partial results are returned.
//
// Two concurrent calls do not see each other's uncommitted rows, so both may
// report the same new transaction as none.
func (d *Detector) DetectDuplicates(ctx context.Context, incoming []IncomingTransaction) ([]Result, error) {
	results := make([]Result, len(incoming))
	for i := range results {
		results[i] = Result{Index: i, Status: StatusNone}
	}
	if len(incoming) == 0 {
		return results, nil
	}

	dates := distinctDates(incoming)
	records, err := d.records.FetchRecordsByDates(ctx, dates)
	if err != nil {
		return nil, fmt.Errorf("fetch candidate records: %w", err)
	}

	byDate := make(map[string][]ExistingRecord, len(dates))
	for _, rec := range records {
		byDate[rec.Date] = append(byDate[rec.Date], rec)
	}

	for i, tx := range incoming {
		d.matchPersisted(&results[i], tx, byDate[tx.Date])
	}

	d.markBatchDuplicates(incoming, results)

	d.logger.Debug("duplicate detection complete",
		"incoming", len(incoming),
		"dates", len(dates),
		"candidates", len(records),
		"exact", countStatus(results, StatusExact),
		"possible", countStatus(results, StatusPossible))

	return results, nil
}

// CheckSingleDuplicate classifies one manually entered transaction.
// No match is reported as StatusNone, not as an error.
func (d *Detector) CheckSingleDuplicate(ctx context.Context, date string, amount float64, description string) (SingleResult, error) {
	results, err := d.DetectDuplicates(ctx, []IncomingTransaction{
		{Date: date, Amount: amount, Description: description},
	})
	if err != nil {
		return SingleResult{Status: StatusNone}, err
	}

	r := results[0]
	return SingleResult{
		Status:           r.Status,
		MatchID:          r.MatchID,
		MatchDescription: r.MatchDescription,
	}, nil
}

// matchPersisted scans candidates in storage order. The first exact match
// wins and stops the scan; otherwise the last possible match is kept.
func (d *Detector) matchPersisted(result *Result, tx IncomingTransaction, candidates []ExistingRecord) {
	for _, rec := range candidates {
		if !d.amountsMatch(tx.Amount, rec.Amount) {
			continue
		}

		id := rec.ID
		sim := Similarity(tx.Description, rec.Description)
		if sim >= d.config.ExactThreshold {
			*result = recordMatch(result.Index, StatusExact, &id, rec)
			return
		}
		if result.Status != StatusExact {
			*result = recordMatch(result.Index, StatusPossible, &id, rec)
		}
	}
}

// amountsMatch compares signed amounts; +50 and -50 never match.
// NaN never matches anything.
func (d *Detector) amountsMatch(a, b float64) bool {
	return math.Abs(a-b) <= d.config.AmountEpsilon
}

func recordMatch(index int, status Status, id *int64, rec ExistingRecord) Result {
	return Result{
		Index:            index,
		Status:           status,
		MatchID:          id,
		MatchDescription: rec.Description,
		MatchDate:        rec.Date,
		MatchAmount:      rec.Amount,
		MatchAccountName: rec.AccountName,
	}
}

// distinctDates returns the dates of incoming in first-seen order.
func distinctDates(incoming []IncomingTransaction) []string {
	seen := make(map[string]bool, len(incoming))
	dates := make([]string, 0, len(incoming))
	for _, tx := range incoming {
		if seen[tx.Date] {
			continue
		}
		seen[tx.Date] = true
		dates = append(dates, tx.Date)
	}
	return dates
}

func countStatus(results []Result, status Status) int {
	n := 0
	for _, r := range results {
		if r.Status == status {
			n++
		}
	}
	return n
}
