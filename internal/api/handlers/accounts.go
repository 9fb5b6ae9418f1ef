package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/robpaolella/personal-finance-sub000/internal/api/dto"
	"github.com/robpaolella/personal-finance-sub000/internal/infrastructure/storage"
)

var accountTypes = map[string]bool{
	storage.AccountTypeChecking:   true,
	storage.AccountTypeSavings:    true,
	storage.AccountTypeCreditCard: true,
	storage.AccountTypeCash:       true,
}

// AccountsHandler handles account-related HTTP requests.
type AccountsHandler struct {
	*Base
}

// NewAccountsHandler creates a new accounts handler.
func NewAccountsHandler(repo storage.Repository, logger *slog.Logger) *AccountsHandler {
	return &AccountsHandler{
		Base: NewBase(repo, logger),
	}
}

// List handles GET /api/accounts.
func (h *AccountsHandler) List(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.repo.ListAccounts(r.Context())
	if err != nil {
		h.logger.Error("list accounts failed", "error", err)
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}
	if accounts == nil {
		accounts = []storage.Account{}
	}

	h.WriteJSON(w, http.StatusOK, dto.AccountListResponse{Accounts: accounts})
}

// Create handles POST /api/accounts. Type defaults to checking.
func (h *AccountsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAccountRequest
	if err := DecodeJSON(r, &req); err != nil {
		h.WriteError(w, http.StatusBadRequest, dto.BadRequestError("invalid request body: "+err.Error()))
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		h.WriteError(w, http.StatusBadRequest, dto.ValidationError("name", "name is required"))
		return
	}
	accountType := req.Type
	if accountType == "" {
		accountType = storage.AccountTypeChecking
	}
	if !accountTypes[accountType] {
		h.WriteError(w, http.StatusBadRequest, dto.ValidationError("type", "unknown account type: "+accountType))
		return
	}

	account, err := h.repo.CreateAccount(r.Context(), name, accountType)
	if err != nil {
		h.logger.Error("create account failed", "name", name, "error", err)
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}

	h.WriteJSON(w, http.StatusCreated, account)
}
