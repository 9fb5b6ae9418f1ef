package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/robpaolella/personal-finance-sub000/internal/domain/duplicates"
)

// MockRepository is an in-memory implementation of Repository for testing.
// It stores all data in maps and slices, making tests fast and isolated.
type MockRepository struct {
	mu            sync.Mutex
	accounts      map[int64]*Account
	transactions  []*Transaction
	nextAccountID int64
	nextTxnID     int64

	// Hooks for test assertions
	FetchCalls        int
	LastFetchDates    []string
	InsertCalled      bool
	LastInsertedCount int

	// Error injection for testing error paths
	FetchErr         error
	InsertErr        error
	CreateAccountErr error
	ListAccountsErr  error
	StatsErr         error
}

// NewMockRepository creates a new mock repository for testing
func NewMockRepository() *MockRepository {
	return &MockRepository{
		accounts:      make(map[int64]*Account),
		transactions:  make([]*Transaction, 0),
		nextAccountID: 1,
		nextTxnID:     1,
	}
}

// Compile-time check that MockRepository implements Repository
var _ Repository = (*MockRepository)(nil)

// Close does nothing for mock
func (m *MockRepository) Close() error {
	return nil
}

// AddAccount seeds an account and returns its ID
func (m *MockRepository) AddAccount(name string) int64 {
	acct, _ := m.CreateAccount(context.Background(), name, AccountTypeChecking)
	return acct.ID
}

// AddTransaction seeds a transaction and returns its ID
func (m *MockRepository) AddTransaction(accountID int64, date string, amount float64, description string) int64 {
	t := &Transaction{AccountID: accountID, Date: date, Amount: amount, Description: description}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.insertLocked(t, time.Now())
	return t.ID
}

// CreateAccount stores an account in memory
func (m *MockRepository) CreateAccount(_ context.Context, name, accountType string) (*Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.CreateAccountErr != nil {
		return nil, m.CreateAccountErr
	}
	for _, a := range m.accounts {
		if a.Name == name {
			return nil, fmt.Errorf("account %q already exists", name)
		}
	}
	if accountType == "" {
		accountType = AccountTypeChecking
	}

	acct := &Account{ID: m.nextAccountID, Name: name, Type: accountType, CreatedAt: time.Now()}
	m.accounts[acct.ID] = acct
	m.nextAccountID++

	copied := *acct
	return &copied, nil
}

// GetAccount retrieves an account from memory
func (m *MockRepository) GetAccount(_ context.Context, id int64) (*Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	acct, ok := m.accounts[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *acct
	return &copied, nil
}

// ListAccounts returns all accounts ordered by name
func (m *MockRepository) ListAccounts(_ context.Context) ([]Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ListAccountsErr != nil {
		return nil, m.ListAccountsErr
	}
	accounts := make([]Account, 0, len(m.accounts))
	for _, a := range m.accounts {
		accounts = append(accounts, *a)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].Name < accounts[j].Name })
	return accounts, nil
}

// InsertTransactions appends txns; nothing is stored when InsertErr is set
func (m *MockRepository) InsertTransactions(_ context.Context, txns []*Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.InsertCalled = true
	m.LastInsertedCount = len(txns)
	if m.InsertErr != nil {
		return m.InsertErr
	}

	now := time.Now()
	for _, t := range txns {
		m.insertLocked(t, now)
	}
	return nil
}

func (m *MockRepository) insertLocked(t *Transaction, now time.Time) {
	t.ID = m.nextTxnID
	t.CreatedAt = now
	m.nextTxnID++

	copied := *t
	m.transactions = append(m.transactions, &copied)
}

// ListTransactionsByDate returns the transactions on date in insertion order
func (m *MockRepository) ListTransactionsByDate(_ context.Context, date string) ([]Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	txns := make([]Transaction, 0)
	for _, t := range m.transactions {
		if t.Date == date {
			copied := *t
			copied.AccountName = m.accountNameLocked(t.AccountID)
			txns = append(txns, copied)
		}
	}
	return txns, nil
}

// FetchRecordsByDates returns matching transactions in insertion order
func (m *MockRepository) FetchRecordsByDates(_ context.Context, dates []string) ([]duplicates.ExistingRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.FetchCalls++
	m.LastFetchDates = append([]string(nil), dates...)
	if m.FetchErr != nil {
		return nil, m.FetchErr
	}

	want := make(map[string]bool, len(dates))
	for _, d := range dates {
		want[d] = true
	}

	var records []duplicates.ExistingRecord
	for _, t := range m.transactions {
		if !want[t.Date] {
			continue
		}
		records = append(records, duplicates.ExistingRecord{
			ID:          t.ID,
			Date:        t.Date,
			Amount:      t.Amount,
			Description: t.Description,
			AccountID:   t.AccountID,
			AccountName: m.accountNameLocked(t.AccountID),
		})
	}
	return records, nil
}

// GetStats returns statistics computed from memory
func (m *MockRepository) GetStats(_ context.Context) (*Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.StatsErr != nil {
		return nil, m.StatsErr
	}

	stats := &Stats{
		AccountCount:     len(m.accounts),
		TransactionCount: len(m.transactions),
		ByAccount:        make(map[string]AccountStats),
	}
	for _, a := range m.accounts {
		stats.ByAccount[a.Name] = AccountStats{}
	}

	batches := make(map[string]bool)
	for _, t := range m.transactions {
		if t.ImportBatch != "" {
			batches[t.ImportBatch] = true
		}
		name := m.accountNameLocked(t.AccountID)
		as := stats.ByAccount[name]
		as.TransactionCount++
		as.Balance += t.Amount
		stats.ByAccount[name] = as
	}
	stats.ImportBatchCount = len(batches)

	return stats, nil
}

// Transactions returns a copy of everything stored, for assertions
func (m *MockRepository) Transactions() []Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Transaction, len(m.transactions))
	for i, t := range m.transactions {
		out[i] = *t
	}
	return out
}

func (m *MockRepository) accountNameLocked(id int64) string {
	if a, ok := m.accounts[id]; ok {
		return a.Name
	}
	return ""
}
