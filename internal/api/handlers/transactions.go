package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/robpaolella/personal-finance-sub000/internal/api/dto"
	"github.com/robpaolella/personal-finance-sub000/internal/application/importer"
	"github.com/robpaolella/personal-finance-sub000/internal/infrastructure/storage"
)

// TransactionsHandler handles transaction-related HTTP requests.
type TransactionsHandler struct {
	*Base
	importer *importer.Service
}

// NewTransactionsHandler creates a new transactions handler.
func NewTransactionsHandler(repo storage.Repository, svc *importer.Service, logger *slog.Logger) *TransactionsHandler {
	return &TransactionsHandler{
		Base:     NewBase(repo, logger),
		importer: svc,
	}
}

// CheckDuplicate handles POST /api/transactions/check-duplicate.
// A malformed date is rejected up front; lookup failures answer "none" so
// manual entry is never blocked.
func (h *TransactionsHandler) CheckDuplicate(w http.ResponseWriter, r *http.Request) {
	var req dto.CheckDuplicateRequest
	if err := DecodeJSON(r, &req); err != nil {
		h.WriteError(w, http.StatusBadRequest, dto.BadRequestError("invalid request body: "+err.Error()))
		return
	}
	if _, err := time.Parse(importer.DateLayout, req.Date); err != nil {
		h.WriteError(w, http.StatusBadRequest, dto.ValidationError("date", "date must be YYYY-MM-DD"))
		return
	}

	result := h.importer.CheckSingle(r.Context(), req.Date, req.Amount, req.Description)
	h.WriteJSON(w, http.StatusOK, dto.NewCheckDuplicateResponse(result))
}

// ListByDate handles GET /api/transactions?date=YYYY-MM-DD.
func (h *TransactionsHandler) ListByDate(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		h.WriteError(w, http.StatusBadRequest, dto.ValidationError("date", "date query parameter is required"))
		return
	}
	if _, err := time.Parse(importer.DateLayout, date); err != nil {
		h.WriteError(w, http.StatusBadRequest, dto.ValidationError("date", "date must be YYYY-MM-DD"))
		return
	}

	txns, err := h.repo.ListTransactionsByDate(r.Context(), date)
	if err != nil {
		h.logger.Error("list transactions failed", "date", date, "error", err)
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}
	if txns == nil {
		txns = []storage.Transaction{}
	}

	h.WriteJSON(w, http.StatusOK, dto.TransactionListResponse{
		Date:         date,
		Transactions: txns,
	})
}
