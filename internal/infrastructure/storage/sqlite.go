package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/robpaolella/personal-finance-sub000/internal/domain/duplicates"
)

// Storage provides SQLite database access for the ledger.
// It implements the Repository interface.
type Storage struct {
	db *sql.DB
}

// Compile-time check that Storage implements Repository
var _ Repository = (*Storage)(nil)

// NewStorage creates a new storage instance with SQLite database
func NewStorage(dbPath string) (*Storage, error) {
	// _foreign_keys applies the pragma to every pooled connection
	dsn := dbPath
	if !strings.Contains(dsn, "?") {
		dsn += "?_foreign_keys=on"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}

	// Enable foreign key constraints (SQLite-specific)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s := &Storage{db: db}

	// Run all pending migrations
	if err := s.runMigrations(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	return s.db.Close()
}

// CreateAccount inserts a new account
func (s *Storage) CreateAccount(ctx context.Context, name, accountType string) (*Account, error) {
	if accountType == "" {
		accountType = AccountTypeChecking
	}
	now := time.Now().UTC().Truncate(time.Second)

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO accounts (name, type, created_at) VALUES (?, ?, ?)`,
		name, accountType, now)
	if err != nil {
		return nil, fmt.Errorf("failed to create account %q: %w", name, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	return &Account{ID: id, Name: name, Type: accountType, CreatedAt: now}, nil
}

// GetAccount retrieves an account by ID
func (s *Storage) GetAccount(ctx context.Context, id int64) (*Account, error) {
	acct := &Account{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, type, created_at FROM accounts WHERE id = ?`, id,
	).Scan(&acct.ID, &acct.Name, &acct.Type, &acct.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return acct, nil
}

// ListAccounts returns all accounts ordered by name
func (s *Storage) ListAccounts(ctx context.Context) ([]Account, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, type, created_at FROM accounts ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	accounts := make([]Account, 0)
	for rows.Next() {
		var a Account
		if err := rows.Scan(&a.ID, &a.Name, &a.Type, &a.CreatedAt); err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// InsertTransactions saves txns in a single database transaction
func (s *Storage) InsertTransactions(ctx context.Context, txns []*Transaction) error {
	if len(txns) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO transactions (account_id, date, amount, description, import_batch, created_at)
	VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	defer func() { _ = stmt.Close() }()

	now := time.Now().UTC().Truncate(time.Second)
	for _, t := range txns {
		res, err := stmt.ExecContext(ctx, t.AccountID, t.Date, t.Amount, t.Description, t.ImportBatch, now)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to insert transaction dated %s: %w", t.Date, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			_ = tx.Rollback()
			return err
		}
		t.ID = id
		t.CreatedAt = now
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transactions: %w", err)
	}
	return nil
}

// ListTransactionsByDate returns the transactions on date in insertion order
func (s *Storage) ListTransactionsByDate(ctx context.Context, date string) ([]Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
	SELECT t.id, t.account_id, COALESCE(a.name, ''), t.date, t.amount,
	       t.description, t.import_batch, t.created_at
	FROM transactions t
	LEFT JOIN accounts a ON a.id = t.account_id
	WHERE t.date = ?
	ORDER BY t.id
	`, date)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	txns := make([]Transaction, 0)
	for rows.Next() {
		var t Transaction
		if err := rows.Scan(&t.ID, &t.AccountID, &t.AccountName, &t.Date, &t.Amount,
			&t.Description, &t.ImportBatch, &t.CreatedAt); err != nil {
			return nil, err
		}
		txns = append(txns, t)
	}
	return txns, rows.Err()
}

// FetchRecordsByDates loads every transaction on any of dates, across all
// accounts, in one query. Rows come back in insertion order.
func (s *Storage) FetchRecordsByDates(ctx context.Context, dates []string) ([]duplicates.ExistingRecord, error) {
	if len(dates) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(dates)), ",")
	args := make([]interface{}, len(dates))
	for i, d := range dates {
		args[i] = d
	}

	query := `
	SELECT t.id, t.date, t.amount, t.description, t.account_id, COALESCE(a.name, '')
	FROM transactions t
	LEFT JOIN accounts a ON a.id = t.account_id
	WHERE t.date IN (` + placeholders + `)
	ORDER BY t.id
	`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions by date: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []duplicates.ExistingRecord
	for rows.Next() {
		var r duplicates.ExistingRecord
		if err := rows.Scan(&r.ID, &r.Date, &r.Amount, &r.Description, &r.AccountID, &r.AccountName); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// GetStats returns aggregate ledger statistics
func (s *Storage) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{
		ByAccount: make(map[string]AccountStats),
	}

	err := s.db.QueryRowContext(ctx, `
	SELECT
		(SELECT COUNT(*) FROM accounts),
		(SELECT COUNT(*) FROM transactions),
		(SELECT COUNT(DISTINCT import_batch) FROM transactions WHERE import_batch != '')
	`).Scan(&stats.AccountCount, &stats.TransactionCount, &stats.ImportBatchCount)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
	SELECT a.name, COUNT(t.id), COALESCE(SUM(t.amount), 0)
	FROM accounts a
	LEFT JOIN transactions t ON t.account_id = a.id
	GROUP BY a.id, a.name
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var name string
		var as AccountStats
		if err := rows.Scan(&name, &as.TransactionCount, &as.Balance); err != nil {
			return nil, err
		}
		stats.ByAccount[name] = as
	}

	return stats, rows.Err()
}
