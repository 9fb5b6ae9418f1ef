package duplicates

import "context"

// Status is the classification of one incoming transaction.
type Status string

const (
	StatusNone     Status = "none"
	StatusPossible Status = "possible"
	StatusExact    Status = "exact"
)

// Config holds detector configuration
type Config struct {
	AmountEpsilon  float64 // Default: 0.005 (half a cent)
	ExactThreshold float64 // Default: 0.8
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		AmountEpsilon:  0.005,
		ExactThreshold: 0.8,
	}
}

// IncomingTransaction is a transaction that is about to be imported or entered.
type IncomingTransaction struct {
	Date        string  // YYYY-MM-DD
	Amount      float64 // signed, ledger sign convention owned by the caller
	Description string
	AccountID   *int64
}

// ExistingRecord is a transaction already persisted in the ledger.
type ExistingRecord struct {
	ID          int64
	Date        string
	Amount      float64
	Description string
	AccountID   int64
	AccountName string
}

// Result is the classification of incoming[Index].
// MatchID is nil when Status is none or when the match is another row
// of the same batch.
type Result struct {
	Index            int
	Status           Status
	MatchID          *int64
	MatchDescription string
	MatchDate        string
	MatchAmount      float64
	MatchAccountName string
}

// SingleResult is returned by CheckSingleDuplicate.
type SingleResult struct {
	Status           Status
	MatchID          *int64
	MatchDescription string
}

// RecordSource loads persisted transactions for duplicate comparison.
type RecordSource interface {
	// FetchRecordsByDates returns every persisted transaction whose date is
	// one of dates, across all accounts.
	FetchRecordsByDates(ctx context.Context, dates []string) ([]ExistingRecord, error)
}
