package storage

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// Account types
const (
	AccountTypeChecking   = "checking"
	AccountTypeSavings    = "savings"
	AccountTypeCreditCard = "credit_card"
	AccountTypeCash       = "cash"
)

// Account is a ledger account (bank account, card, cash envelope).
type Account struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// Transaction is a persisted ledger transaction.
type Transaction struct {
	ID          int64     `json:"id"`
	AccountID   int64     `json:"account_id"`
	AccountName string    `json:"account_name,omitempty"` // populated on reads
	Date        string    `json:"date"`                   // YYYY-MM-DD
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	ImportBatch string    `json:"import_batch,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Stats holds aggregate ledger statistics
type Stats struct {
	AccountCount     int                     `json:"account_count"`
	TransactionCount int                     `json:"transaction_count"`
	ImportBatchCount int                     `json:"import_batch_count"`
	ByAccount        map[string]AccountStats `json:"by_account"`
}

// AccountStats holds per-account statistics
type AccountStats struct {
	TransactionCount int     `json:"transaction_count"`
	Balance          float64 `json:"balance"`
}
