package service

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-api/internal/ledger"
	"github.com/carson-networks/budget-api/internal/operator/actions"
	"github.com/carson-networks/budget-api/internal/storage"
	"github.com/carson-networks/budget-api/internal/storage/sqlconfig"
)

const testUser = "user-1"

// inlineProcessor runs actions synchronously against mock tables.
type inlineProcessor struct {
	writer *storage.Writer
}

func (p *inlineProcessor) Process(ctx context.Context, action actions.IAction) error {
	return action.Perform(ctx, p.writer)
}

type testDeps struct {
	store        *storage.Storage
	ops          *inlineProcessor
	categories   *sqlconfig.MockICategoryTable
	transactions *sqlconfig.MockITransactionTable
}

func newTestDeps(t *testing.T) *testDeps {
	t.Helper()
	categories := sqlconfig.NewMockICategoryTable(t)
	transactions := sqlconfig.NewMockITransactionTable(t)
	return &testDeps{
		store:        &storage.Storage{Categories: categories, Transactions: transactions},
		ops:          &inlineProcessor{writer: storage.NewWriterWith(nil, categories, transactions)},
		categories:   categories,
		transactions: transactions,
	}
}

func newID() uuid.UUID {
	return uuid.Must(uuid.NewV4())
}

func txRow(kind ledger.Kind, categoryID uuid.UUID, amount ledger.Money, at time.Time) *sqlconfig.Transaction {
	return &sqlconfig.Transaction{
		ID:         newID(),
		UserID:     testUser,
		CategoryID: categoryID,
		Kind:       kind,
		Amount:     amount,
		OccurredAt: at,
		CreatedAt:  at,
	}
}

func categoryRow(id uuid.UUID, kind ledger.Kind, name string) *sqlconfig.Category {
	return &sqlconfig.Category{ID: id, UserID: testUser, Kind: kind, Name: name}
}

func feb(day, hour int) time.Time {
	return time.Date(2024, 2, day, hour, 0, 0, 0, time.UTC)
}
