package storage

import (
	"context"

	"github.com/robpaolella/personal-finance-sub000/internal/domain/duplicates"
)

// Repository defines the complete storage interface.
// This interface allows swapping implementations (SQLite, PostgreSQL, etc.)
// and makes testing with mocks straightforward.
type Repository interface {
	AccountRepository
	TransactionRepository
	duplicates.RecordSource

	// GetStats returns aggregate statistics
	GetStats(ctx context.Context) (*Stats, error)

	Close() error
}

// AccountRepository handles ledger accounts
type AccountRepository interface {
	// CreateAccount inserts a new account and returns it with its ID set
	CreateAccount(ctx context.Context, name, accountType string) (*Account, error)

	// GetAccount retrieves an account by ID; ErrNotFound if missing
	GetAccount(ctx context.Context, id int64) (*Account, error)

	// ListAccounts returns all accounts ordered by name
	ListAccounts(ctx context.Context) ([]Account, error)
}

// TransactionRepository handles ledger transactions
type TransactionRepository interface {
	// InsertTransactions saves all transactions or none of them.
	// IDs and CreatedAt are set on the passed values.
	InsertTransactions(ctx context.Context, txns []*Transaction) error

	// ListTransactionsByDate returns the transactions on date in insertion order
	ListTransactionsByDate(ctx context.Context, date string) ([]Transaction, error)
}
