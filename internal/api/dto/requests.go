package dto

import "github.com/robpaolella/personal-finance-sub000/internal/domain/duplicates"

// TransactionInput is an incoming transaction in request bodies.
type TransactionInput struct {
	Date        string  `json:"date"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	AccountID   *int64  `json:"account_id,omitempty"`
}

// ToIncoming converts to the detector's input type.
func (t TransactionInput) ToIncoming() duplicates.IncomingTransaction {
	return duplicates.IncomingTransaction{
		Date:        t.Date,
		Amount:      t.Amount,
		Description: t.Description,
		AccountID:   t.AccountID,
	}
}

// ToIncomingList converts a slice of inputs.
func ToIncomingList(inputs []TransactionInput) []duplicates.IncomingTransaction {
	out := make([]duplicates.IncomingTransaction, len(inputs))
	for i, in := range inputs {
		out[i] = in.ToIncoming()
	}
	return out
}

// PreviewImportRequest is the body of POST /api/import/preview.
type PreviewImportRequest struct {
	Transactions []TransactionInput `json:"transactions"`
}

// CommitImportRequest is the body of POST /api/import/commit.
type CommitImportRequest struct {
	BatchID      string             `json:"batch_id,omitempty"`
	AccountID    int64              `json:"account_id"`
	Transactions []TransactionInput `json:"transactions"`
	Selected     []int              `json:"selected"`
}

// CheckDuplicateRequest is the body of POST /api/transactions/check-duplicate.
type CheckDuplicateRequest struct {
	Date        string  `json:"date"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

// CreateAccountRequest is the body of POST /api/accounts.
type CreateAccountRequest struct {
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}
