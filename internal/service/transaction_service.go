package service

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-api/internal/ledger"
	"github.com/carson-networks/budget-api/internal/logging"
	"github.com/carson-networks/budget-api/internal/operator/actions"
	"github.com/carson-networks/budget-api/internal/storage"
	"github.com/carson-networks/budget-api/internal/storage/sqlconfig"
)

// TransactionService handles transaction business logic.
type TransactionService struct {
	storage  *storage.Storage
	operator actionProcessor
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(store *storage.Storage, ops actionProcessor) *TransactionService {
	return &TransactionService{storage: store, operator: ops}
}

// ListTransactions returns the user's transactions, newest first.
func (s *TransactionService) ListTransactions(ctx context.Context, userID string, filter TransactionFilter) ([]Transaction, error) {
	storageFilter := &sqlconfig.TransactionFilter{
		UserID:     userID,
		Kind:       filter.Kind,
		CategoryID: filter.CategoryID,
		Order:      sqlconfig.OrderNewestFirst,
	}
	if filter.Month != "" {
		rng, err := ledger.ParseMonth(filter.Month)
		if err != nil {
			return nil, err
		}
		storageFilter.Range = &rng
	}

	logData := logging.GetLogData(ctx)
	stopTimer := logData.AddTiming("listTransactionsMs")
	rows, err := s.storage.Transactions.List(ctx, storageFilter)
	stopTimer()
	if err != nil {
		return nil, err
	}

	entries := sqlconfig.TransactionsToLedger(rows)
	categories, err := lookupCategories(ctx, s.storage, userID, distinctCategoryIDs(entries))
	if err != nil {
		return nil, err
	}
	logData.AddData("transactionCount", len(entries))

	out := make([]Transaction, len(entries))
	for i, e := range entries {
		out[i] = Transaction{Entry: e, Category: categoryOrUnknown(categories, e)}
	}
	return out, nil
}

// CreateTransaction records a transaction against one of the user's categories.
func (s *TransactionService) CreateTransaction(ctx context.Context, userID string, in NewTransaction) (*Transaction, error) {
	if !in.Kind.Valid() {
		return nil, ledger.ErrInvalidKind
	}
	if err := ledger.ValidateAmount(in.Amount); err != nil {
		return nil, err
	}
	note, err := ledger.NormalizeNote(in.Note)
	if err != nil {
		return nil, err
	}

	action := &actions.CreateTransaction{
		UserID:     userID,
		CategoryID: in.CategoryID,
		Kind:       in.Kind,
		Amount:     in.Amount,
		OccurredAt: in.OccurredAt,
		Note:       note,
	}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}
	return &Transaction{Entry: *action.Result, Category: *action.Category}, nil
}

// UpdateTransaction applies patch to one of the user's transactions.
func (s *TransactionService) UpdateTransaction(ctx context.Context, userID string, id uuid.UUID, patch TransactionPatch) (*Transaction, error) {
	if patch.Amount != nil {
		if err := ledger.ValidateAmount(*patch.Amount); err != nil {
			return nil, err
		}
	}
	if patch.Note != nil {
		if _, err := ledger.NormalizeNote(patch.Note); err != nil {
			return nil, err
		}
	}

	action := &actions.UpdateTransaction{
		UserID:     userID,
		ID:         id,
		CategoryID: patch.CategoryID,
		Amount:     patch.Amount,
		OccurredAt: patch.OccurredAt,
		Note:       patch.Note,
	}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}

	out := &Transaction{Entry: *action.Result}
	if action.Category != nil {
		out.Category = *action.Category
	} else {
		out.Category = categoryOrUnknown(nil, out.Entry)
	}
	return out, nil
}

// DeleteTransaction removes one of the user's transactions.
func (s *TransactionService) DeleteTransaction(ctx context.Context, userID string, id uuid.UUID) error {
	return s.operator.Process(ctx, &actions.DeleteTransaction{UserID: userID, ID: id})
}
