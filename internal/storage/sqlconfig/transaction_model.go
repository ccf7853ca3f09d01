package sqlconfig

import (
	"context"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/aarondl/opt/omitnull"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-api/internal/ledger"
)

const transactionsTable = "transactions"

var transactionColumns = []string{
	"id", "user_id", "category_id", "kind", "amount", "occurred_at", "note", "created_at",
}

// Transaction represents a transaction record.
type Transaction struct {
	ID         uuid.UUID    `db:"id"`
	UserID     string       `db:"user_id"`
	CategoryID uuid.UUID    `db:"category_id"`
	Kind       ledger.Kind  `db:"kind"`
	Amount     ledger.Money `db:"amount"`
	OccurredAt time.Time    `db:"occurred_at"`
	Note       *string      `db:"note"`
	CreatedAt  time.Time    `db:"created_at"`
}

// TransactionCreate is the input for creating a new transaction.
type TransactionCreate struct {
	UserID     string
	CategoryID uuid.UUID
	Kind       ledger.Kind
	Amount     ledger.Money
	OccurredAt time.Time
	Note       *string
}

// TransactionUpdate carries the columns to change. Unset fields are left alone.
type TransactionUpdate struct {
	CategoryID omit.Val[uuid.UUID]
	Kind       omit.Val[ledger.Kind]
	Amount     omit.Val[ledger.Money]
	OccurredAt omit.Val[time.Time]
	Note       omitnull.Val[string]
}

// TransactionOrder selects the sort applied by List.
type TransactionOrder int8

const (
	// OrderNewestFirst sorts by occurred_at desc, then created_at desc.
	OrderNewestFirst TransactionOrder = iota
	// OrderOldestFirst sorts by occurred_at asc, then created_at asc.
	OrderOldestFirst
)

// TransactionFilter specifies filters for listing transactions.
// UserID is mandatory; every other field narrows the result when set.
type TransactionFilter struct {
	UserID     string
	Range      *ledger.MonthRange
	Kind       *ledger.Kind
	CategoryID *uuid.UUID
	Order      TransactionOrder
}

// ITransactionTable defines the interface for transaction storage operations.
// This abstraction allows swapping the implementation (e.g. Bob) without changing callers.
//
//go:generate mockery --name ITransactionTable --output . --inpackage --with-expecter
type ITransactionTable interface {
	List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error)
	FindByID(ctx context.Context, userID string, id uuid.UUID) (*Transaction, error)
	Insert(ctx context.Context, create *TransactionCreate) (*Transaction, error)
	Update(ctx context.Context, userID string, id uuid.UUID, update *TransactionUpdate) (*Transaction, error)
	Delete(ctx context.Context, userID string, id uuid.UUID) error
}

// ToLedger converts the record to its domain form.
func (t *Transaction) ToLedger() ledger.Entry {
	return ledger.Entry{
		ID:         t.ID,
		UserID:     t.UserID,
		Kind:       t.Kind,
		CategoryID: t.CategoryID,
		Amount:     t.Amount,
		OccurredAt: t.OccurredAt,
		Note:       t.Note,
		CreatedAt:  t.CreatedAt,
	}
}

// TransactionsToLedger converts a slice of records.
func TransactionsToLedger(rows []*Transaction) []ledger.Entry {
	out := make([]ledger.Entry, len(rows))
	for i, row := range rows {
		out[i] = row.ToLedger()
	}
	return out
}
