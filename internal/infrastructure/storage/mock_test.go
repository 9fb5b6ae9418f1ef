package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockRepository_FetchRecordsByDates(t *testing.T) {
	repo := NewMockRepository()
	acct := repo.AddAccount("Checking")
	first := repo.AddTransaction(acct, "2024-03-01", 42.50, "Trader Joes")
	repo.AddTransaction(acct, "2024-03-02", 5, "Other day")
	third := repo.AddTransaction(acct, "2024-03-01", 3, "Parking")

	records, err := repo.FetchRecordsByDates(context.Background(), []string{"2024-03-01"})

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, first, records[0].ID)
	assert.Equal(t, third, records[1].ID)
	assert.Equal(t, "Checking", records[0].AccountName)
	assert.Equal(t, 1, repo.FetchCalls)
	assert.Equal(t, []string{"2024-03-01"}, repo.LastFetchDates)
}

func TestMockRepository_ErrorInjection(t *testing.T) {
	repo := NewMockRepository()
	errBoom := errors.New("boom")
	repo.FetchErr = errBoom
	repo.InsertErr = errBoom

	_, err := repo.FetchRecordsByDates(context.Background(), []string{"2024-03-01"})
	assert.ErrorIs(t, err, errBoom)

	err = repo.InsertTransactions(context.Background(), []*Transaction{{Date: "2024-03-01"}})
	assert.ErrorIs(t, err, errBoom)
	assert.True(t, repo.InsertCalled)
	assert.Empty(t, repo.Transactions())
}

func TestMockRepository_GetAccount_NotFound(t *testing.T) {
	repo := NewMockRepository()

	_, err := repo.GetAccount(context.Background(), 7)

	assert.ErrorIs(t, err, ErrNotFound)
}
