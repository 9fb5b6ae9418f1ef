package importer

import (
	"errors"

	"github.com/robpaolella/personal-finance-sub000/internal/domain/duplicates"
)

// Row labels shown next to flagged rows
const (
	LabelLikelyDuplicate   = "Likely Duplicate"
	LabelPossibleDuplicate = "Possible Duplicate"
)

var (
	// ErrAccountNotFound is returned when a commit targets an unknown account
	ErrAccountNotFound = errors.New("account not found")

	// ErrInvalidSelection is returned when a selected index is out of range
	ErrInvalidSelection = errors.New("invalid selection")

	// ErrInvalidDate is returned when a selected row's date is not YYYY-MM-DD.
	// Such a row could never be found by a later duplicate check.
	ErrInvalidDate = errors.New("invalid date")
)

// DateLayout is the only date format stored in the ledger
const DateLayout = "2006-01-02"

// Row is one incoming transaction with its classification
type Row struct {
	Transaction duplicates.IncomingTransaction
	Result      duplicates.Result
	Label       string
	Selected    bool // default import selection
}

// Preview is the classified form of an import batch
type Preview struct {
	BatchID       string
	Rows          []Row
	ExactCount    int
	PossibleCount int
	NewCount      int
}

// SelectedIndexes returns the indexes of rows selected by default
func (p *Preview) SelectedIndexes() []int {
	indexes := make([]int, 0, len(p.Rows))
	for i, r := range p.Rows {
		if r.Selected {
			indexes = append(indexes, i)
		}
	}
	return indexes
}

// CommitRequest holds the rows to save from a previewed batch
type CommitRequest struct {
	BatchID      string // optional; generated when empty
	AccountID    int64  // used for rows without their own AccountID
	Transactions []duplicates.IncomingTransaction
	Selected     []int // indexes into Transactions
}

// CommitResult summarizes a commit
type CommitResult struct {
	BatchID        string
	Inserted       int
	Skipped        int
	TransactionIDs []int64
}

// LabelFor returns the display label for a status
func LabelFor(status duplicates.Status) string {
	switch status {
	case duplicates.StatusExact:
		return LabelLikelyDuplicate
	case duplicates.StatusPossible:
		return LabelPossibleDuplicate
	default:
		return ""
	}
}

// DefaultSelected reports whether a row is selected for import by default.
// Likely duplicates start unselected; possible duplicates wait for review
// but stay selected.
func DefaultSelected(status duplicates.Status) bool {
	return status != duplicates.StatusExact
}
