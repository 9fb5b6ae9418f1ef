// Package importer runs duplicate detection over import batches and saves
// the rows the user keeps.
package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/robpaolella/personal-finance-sub000/internal/domain/duplicates"
	"github.com/robpaolella/personal-finance-sub000/internal/infrastructure/storage"
)

// Service previews and commits transaction imports.
type Service struct {
	detector *duplicates.Detector
	repo     storage.Repository
	logger   *slog.Logger
}

// NewService creates a new import service.
func NewService(detector *duplicates.Detector, repo storage.Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		detector: detector,
		repo:     repo,
		logger:   logger,
	}
}

// Preview classifies txns and marks the default selection.
// A storage failure fails the whole preview.
func (s *Service) Preview(ctx context.Context, txns []duplicates.IncomingTransaction) (*Preview, error) {
	results, err := s.detector.DetectDuplicates(ctx, txns)
	if err != nil {
		return nil, err
	}

	preview := &Preview{
		BatchID: uuid.NewString(),
		Rows:    make([]Row, len(txns)),
	}
	for i, r := range results {
		preview.Rows[i] = Row{
			Transaction: txns[i],
			Result:      r,
			Label:       LabelFor(r.Status),
			Selected:    DefaultSelected(r.Status),
		}
		switch r.Status {
		case duplicates.StatusExact:
			preview.ExactCount++
		case duplicates.StatusPossible:
			preview.PossibleCount++
		default:
			preview.NewCount++
		}
	}

	s.logger.Info("import preview",
		"batch", preview.BatchID,
		"rows", len(txns),
		"exact", preview.ExactCount,
		"possible", preview.PossibleCount)

	return preview, nil
}

// Commit saves the selected rows. Nothing is saved if any selected index,
// date or account is invalid.
func (s *Service) Commit(ctx context.Context, req CommitRequest) (*CommitResult, error) {
	batchID := req.BatchID
	if batchID == "" {
		batchID = uuid.NewString()
	}

	seen := make(map[int]bool, len(req.Selected))
	rows := make([]*storage.Transaction, 0, len(req.Selected))
	accounts := make(map[int64]bool)

	for _, idx := range req.Selected {
		if idx < 0 || idx >= len(req.Transactions) {
			return nil, fmt.Errorf("%w: index %d of %d", ErrInvalidSelection, idx, len(req.Transactions))
		}
		if seen[idx] {
			continue
		}
		seen[idx] = true

		tx := req.Transactions[idx]
		if _, err := time.Parse(DateLayout, tx.Date); err != nil {
			return nil, fmt.Errorf("%w: row %d has %q, want YYYY-MM-DD", ErrInvalidDate, idx, tx.Date)
		}

		accountID := req.AccountID
		if tx.AccountID != nil {
			accountID = *tx.AccountID
		}
		accounts[accountID] = true

		rows = append(rows, &storage.Transaction{
			AccountID:   accountID,
			Date:        tx.Date,
			Amount:      tx.Amount,
			Description: tx.Description,
			ImportBatch: batchID,
		})
	}

	for id := range accounts {
		if _, err := s.repo.GetAccount(ctx, id); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, fmt.Errorf("%w: %d", ErrAccountNotFound, id)
			}
			return nil, fmt.Errorf("load account %d: %w", id, err)
		}
	}

	if err := s.repo.InsertTransactions(ctx, rows); err != nil {
		return nil, fmt.Errorf("save import batch %s: %w", batchID, err)
	}

	result := &CommitResult{
		BatchID:        batchID,
		Inserted:       len(rows),
		Skipped:        len(req.Transactions) - len(rows),
		TransactionIDs: make([]int64, len(rows)),
	}
	for i, r := range rows {
		result.TransactionIDs[i] = r.ID
	}

	s.logger.Info("import committed",
		"batch", batchID,
		"inserted", result.Inserted,
		"skipped", result.Skipped)

	return result, nil
}

// CheckSingle checks one manually entered transaction. A lookup failure is
// logged and reported as no duplicate so entry is never blocked.
func (s *Service) CheckSingle(ctx context.Context, date string, amount float64, description string) duplicates.SingleResult {
	result, err := s.detector.CheckSingleDuplicate(ctx, date, amount, description)
	if err != nil {
		s.logger.Warn("duplicate check failed, treating as no duplicate",
			"date", date,
			"error", err)
		return duplicates.SingleResult{Status: duplicates.StatusNone}
	}
	return result
}
