package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robpaolella/personal-finance-sub000/internal/api"
	"github.com/robpaolella/personal-finance-sub000/internal/api/dto"
	"github.com/robpaolella/personal-finance-sub000/internal/application/importer"
	"github.com/robpaolella/personal-finance-sub000/internal/domain/duplicates"
	"github.com/robpaolella/personal-finance-sub000/internal/infrastructure/storage"
)

func newTestServer(t *testing.T) (*httptest.Server, storage.Repository) {
	t.Helper()

	dir := t.TempDir()
	repo, err := storage.NewStorage(filepath.Join(dir, "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	detector := duplicates.NewDetector(duplicates.DefaultConfig(), repo, logger)
	svc := importer.NewService(detector, repo, logger)

	srv := api.NewServer(api.DefaultConfig(), repo, svc, logger)
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)

	return ts, repo
}

func postJSON(t *testing.T, url string, body interface{}, out interface{}) int {
	t.Helper()

	b, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(b))
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestServer_ImportFlow(t *testing.T) {
	ts, _ := newTestServer(t)

	var account storage.Account
	code := postJSON(t, ts.URL+"/api/accounts", dto.CreateAccountRequest{Name: "Checking"}, &account)
	require.Equal(t, http.StatusCreated, code)
	require.NotZero(t, account.ID)

	batch := []dto.TransactionInput{
		{Date: "2024-03-01", Amount: 42.50, Description: "Trader Joes"},
		{Date: "2024-03-05", Amount: -10.00, Description: "Coffee"},
	}

	var first dto.PreviewImportResponse
	code = postJSON(t, ts.URL+"/api/import/preview", dto.PreviewImportRequest{Transactions: batch}, &first)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, dto.PreviewSummary{New: 2}, first.Summary)

	var committed dto.CommitImportResponse
	code = postJSON(t, ts.URL+"/api/import/commit", dto.CommitImportRequest{
		BatchID:      first.BatchID,
		AccountID:    account.ID,
		Transactions: batch,
		Selected:     []int{0, 1},
	}, &committed)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, 2, committed.Inserted)

	// Re-importing the same statement flags both rows as likely duplicates.
	var second dto.PreviewImportResponse
	code = postJSON(t, ts.URL+"/api/import/preview", dto.PreviewImportRequest{Transactions: batch}, &second)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, dto.PreviewSummary{Exact: 2}, second.Summary)
	for i, row := range second.Rows {
		assert.False(t, row.Selected, "row %d", i)
		require.NotNil(t, row.Duplicate.MatchID)
		assert.Equal(t, committed.TransactionIDs[i], *row.Duplicate.MatchID)
		assert.Equal(t, "Checking", row.Duplicate.MatchAccountName)
	}

	var check dto.CheckDuplicateResponse
	code = postJSON(t, ts.URL+"/api/transactions/check-duplicate",
		dto.CheckDuplicateRequest{Date: "2024-03-05", Amount: -10.00, Description: "COFFEE SHOP"}, &check)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "possible", check.Status)
	require.NotNil(t, check.MatchID)
	assert.Equal(t, committed.TransactionIDs[1], *check.MatchID)

	resp, err := http.Get(ts.URL + "/api/transactions?date=2024-03-01")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list dto.TransactionListResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Len(t, list.Transactions, 1)
	assert.Equal(t, first.BatchID, list.Transactions[0].ImportBatch)
}

func TestServer_Routes(t *testing.T) {
	ts, _ := newTestServer(t)

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/api/accounts", http.StatusOK},
		{http.MethodGet, "/api/stats", http.StatusOK},
		{http.MethodGet, "/api/transactions", http.StatusBadRequest},
		{http.MethodGet, "/api/import/preview", http.StatusMethodNotAllowed},
		{http.MethodGet, "/api/unknown", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req, err := http.NewRequest(tt.method, ts.URL+tt.path, nil)
			require.NoError(t, err)

			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			resp.Body.Close()

			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestServer_CheckDuplicateSurvivesStorageFailure(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "ledger.db")
	repo, err := storage.NewStorage(dbPath)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	detector := duplicates.NewDetector(duplicates.DefaultConfig(), repo, logger)
	srv := api.NewServer(api.DefaultConfig(), repo, importer.NewService(detector, repo, logger), logger)

	// A closed database makes every read fail.
	require.NoError(t, repo.Close())
	require.NoError(t, os.Remove(dbPath))

	rec := httptest.NewRecorder()
	body := bytes.NewBufferString(`{"date":"2024-03-01","amount":1,"description":"x"}`)
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/transactions/check-duplicate", body))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"none","match_id":null}`, rec.Body.String())
}

func TestServer_CommitRejectsNonCanonicalDate(t *testing.T) {
	ts, repo := newTestServer(t)

	var account storage.Account
	require.Equal(t, http.StatusCreated,
		postJSON(t, ts.URL+"/api/accounts", dto.CreateAccountRequest{Name: "Checking"}, &account))

	var apiErr dto.APIError
	code := postJSON(t, ts.URL+"/api/import/commit", dto.CommitImportRequest{
		AccountID:    account.ID,
		Transactions: []dto.TransactionInput{{Date: "3/1/2024", Amount: 42.50, Description: "Trader Joes"}},
		Selected:     []int{0},
	}, &apiErr)

	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, dto.ErrCodeValidation, apiErr.Code)

	stats, err := repo.GetStats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.TransactionCount)
}
