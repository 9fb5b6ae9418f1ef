package handlers

import (
	"log/slog"
	"net/http"
	"sort"

	"github.com/robpaolella/personal-finance-sub000/internal/api/dto"
	"github.com/robpaolella/personal-finance-sub000/internal/infrastructure/storage"
)

// StatsHandler handles stats-related HTTP requests.
type StatsHandler struct {
	*Base
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(repo storage.Repository, logger *slog.Logger) *StatsHandler {
	return &StatsHandler{
		Base: NewBase(repo, logger),
	}
}

// Get handles GET /api/stats - returns aggregate ledger statistics.
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	stats, err := h.repo.GetStats(r.Context())
	if err != nil {
		h.logger.Error("load stats failed", "error", err)
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}

	accounts := make([]dto.AccountStatsResponse, 0, len(stats.ByAccount))
	for name, s := range stats.ByAccount {
		accounts = append(accounts, dto.AccountStatsResponse{
			Account:          name,
			TransactionCount: s.TransactionCount,
			Balance:          s.Balance,
		})
	}
	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].Account < accounts[j].Account
	})

	h.WriteJSON(w, http.StatusOK, dto.StatsResponse{
		AccountCount:     stats.AccountCount,
		TransactionCount: stats.TransactionCount,
		ImportBatchCount: stats.ImportBatchCount,
		Accounts:         accounts,
	})
}
