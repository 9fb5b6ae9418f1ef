package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/robpaolella/personal-finance-sub000/internal/api/dto"
	"github.com/robpaolella/personal-finance-sub000/internal/application/importer"
)

// ImportsHandler handles statement import requests.
type ImportsHandler struct {
	*Base
	importer *importer.Service
}

// NewImportsHandler creates a new imports handler.
func NewImportsHandler(svc *importer.Service, logger *slog.Logger) *ImportsHandler {
	return &ImportsHandler{
		Base:     NewBase(nil, logger),
		importer: svc,
	}
}

// Preview handles POST /api/import/preview - classifies a batch without saving.
func (h *ImportsHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var req dto.PreviewImportRequest
	if err := DecodeJSON(r, &req); err != nil {
		h.WriteError(w, http.StatusBadRequest, dto.BadRequestError("invalid request body: "+err.Error()))
		return
	}

	preview, err := h.importer.Preview(r.Context(), dto.ToIncomingList(req.Transactions))
	if err != nil {
		h.logger.Error("import preview failed", "rows", len(req.Transactions), "error", err)
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}

	h.WriteJSON(w, http.StatusOK, dto.NewPreviewImportResponse(preview))
}

// Commit handles POST /api/import/commit - saves the selected rows.
func (h *ImportsHandler) Commit(w http.ResponseWriter, r *http.Request) {
	var req dto.CommitImportRequest
	if err := DecodeJSON(r, &req); err != nil {
		h.WriteError(w, http.StatusBadRequest, dto.BadRequestError("invalid request body: "+err.Error()))
		return
	}
	if req.AccountID <= 0 {
		h.WriteError(w, http.StatusBadRequest, dto.ValidationError("account_id", "account_id is required"))
		return
	}
	if req.Selected == nil {
		h.WriteError(w, http.StatusBadRequest, dto.ValidationError("selected", "selected is required"))
		return
	}

	result, err := h.importer.Commit(r.Context(), importer.CommitRequest{
		BatchID:      req.BatchID,
		AccountID:    req.AccountID,
		Transactions: dto.ToIncomingList(req.Transactions),
		Selected:     req.Selected,
	})
	switch {
	case errors.Is(err, importer.ErrInvalidSelection):
		h.WriteError(w, http.StatusBadRequest, dto.ValidationError("selected", err.Error()))
		return
	case errors.Is(err, importer.ErrInvalidDate):
		h.WriteError(w, http.StatusBadRequest, dto.ValidationError("transactions.date", err.Error()))
		return
	case errors.Is(err, importer.ErrAccountNotFound):
		h.WriteError(w, http.StatusNotFound, dto.NotFoundError("account"))
		return
	case err != nil:
		h.logger.Error("import commit failed", "batch", req.BatchID, "error", err)
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}

	h.WriteJSON(w, http.StatusCreated, dto.CommitImportResponse{
		BatchID:        result.BatchID,
		Inserted:       result.Inserted,
		Skipped:        result.Skipped,
		TransactionIDs: result.TransactionIDs,
	})
}
