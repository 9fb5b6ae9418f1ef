package dto

import (
	"time"

	"github.com/robpaolella/personal-finance-sub000/internal/application/importer"
	"github.com/robpaolella/personal-finance-sub000/internal/domain/duplicates"
	"github.com/robpaolella/personal-finance-sub000/internal/infrastructure/storage"
)

// HealthResponse is returned by the health check endpoint.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// NewHealthResponse creates a health response with current timestamp.
func NewHealthResponse() HealthResponse {
	return HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// DuplicateResponse is the classification of one incoming transaction.
// Match fields are omitted when status is "none".
type DuplicateResponse struct {
	Index            int      `json:"index"`
	Status           string   `json:"status"`
	MatchID          *int64   `json:"match_id"`
	MatchDescription string   `json:"match_description,omitempty"`
	MatchDate        string   `json:"match_date,omitempty"`
	MatchAmount      *float64 `json:"match_amount,omitempty"`
	MatchAccountName string   `json:"match_account_name,omitempty"`
}

// PreviewRowResponse is one row of an import preview.
type PreviewRowResponse struct {
	Transaction TransactionInput  `json:"transaction"`
	Duplicate   DuplicateResponse `json:"duplicate"`
	Label       string            `json:"label,omitempty"`
	Selected    bool              `json:"selected"`
}

// PreviewSummary counts rows per status.
type PreviewSummary struct {
	Exact    int `json:"exact"`
	Possible int `json:"possible"`
	New      int `json:"new"`
}

// PreviewImportResponse is returned by POST /api/import/preview.
type PreviewImportResponse struct {
	BatchID string               `json:"batch_id"`
	Rows    []PreviewRowResponse `json:"rows"`
	Summary PreviewSummary       `json:"summary"`
}

// CommitImportResponse is returned by POST /api/import/commit.
type CommitImportResponse struct {
	BatchID        string  `json:"batch_id"`
	Inserted       int     `json:"inserted"`
	Skipped        int     `json:"skipped"`
	TransactionIDs []int64 `json:"transaction_ids"`
}

// CheckDuplicateResponse is returned by POST /api/transactions/check-duplicate.
type CheckDuplicateResponse struct {
	Status           string `json:"status"`
	MatchID          *int64 `json:"match_id"`
	MatchDescription string `json:"match_description,omitempty"`
}

// AccountListResponse wraps a list of accounts.
type AccountListResponse struct {
	Accounts []storage.Account `json:"accounts"`
}

// TransactionListResponse wraps a list of transactions.
type TransactionListResponse struct {
	Date         string                `json:"date"`
	Transactions []storage.Transaction `json:"transactions"`
}

// NewDuplicateResponse converts a detector result.
func NewDuplicateResponse(r duplicates.Result) DuplicateResponse {
	resp := DuplicateResponse{
		Index:   r.Index,
		Status:  string(r.Status),
		MatchID: r.MatchID,
	}
	if r.Status == duplicates.StatusNone {
		return resp
	}

	amount := r.MatchAmount
	resp.MatchDescription = r.MatchDescription
	resp.MatchDate = r.MatchDate
	resp.MatchAmount = &amount
	resp.MatchAccountName = r.MatchAccountName
	return resp
}

// NewPreviewImportResponse converts an import preview.
func NewPreviewImportResponse(p *importer.Preview) PreviewImportResponse {
	resp := PreviewImportResponse{
		BatchID: p.BatchID,
		Rows:    make([]PreviewRowResponse, 0, len(p.Rows)),
		Summary: PreviewSummary{
			Exact:    p.ExactCount,
			Possible: p.PossibleCount,
			New:      p.NewCount,
		},
	}
	for _, row := range p.Rows {
		resp.Rows = append(resp.Rows, PreviewRowResponse{
			Transaction: TransactionInput{
				Date:        row.Transaction.Date,
				Amount:      row.Transaction.Amount,
				Description: row.Transaction.Description,
				AccountID:   row.Transaction.AccountID,
			},
			Duplicate: NewDuplicateResponse(row.Result),
			Label:     row.Label,
			Selected:  row.Selected,
		})
	}
	return resp
}

// NewCheckDuplicateResponse converts a single-check result.
func NewCheckDuplicateResponse(r duplicates.SingleResult) CheckDuplicateResponse {
	return CheckDuplicateResponse{
		Status:           string(r.Status),
		MatchID:          r.MatchID,
		MatchDescription: r.MatchDescription,
	}
}

// AccountStatsResponse holds per-account statistics.
type AccountStatsResponse struct {
	Account          string  `json:"account"`
	TransactionCount int     `json:"transaction_count"`
	Balance          float64 `json:"balance"`
}

// StatsResponse is returned by GET /api/stats.
type StatsResponse struct {
	AccountCount     int                    `json:"account_count"`
	TransactionCount int                    `json:"transaction_count"`
	ImportBatchCount int                    `json:"import_batch_count"`
	Accounts         []AccountStatsResponse `json:"accounts"`
}
