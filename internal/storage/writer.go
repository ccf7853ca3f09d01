package storage

import (
	"context"

	"github.com/stephenafamo/bob"

	"github.com/carson-networks/budget-api/internal/storage/sqlconfig"
)

// Finisher ends a database transaction.
type Finisher interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Writer gives actions table access scoped to one database transaction.
type Writer struct {
	tx           Finisher
	Categories   sqlconfig.ICategoryTable
	Transactions sqlconfig.ITransactionTable
}

func NewWriter(tx bob.Tx) *Writer {
	return &Writer{
		tx:           tx,
		Categories:   sqlconfig.NewCategoriesTable(tx),
		Transactions: sqlconfig.NewTransactionsTable(tx),
	}
}

// NewWriterWith assembles a Writer from explicit parts.
func NewWriterWith(tx Finisher, categories sqlconfig.ICategoryTable, transactions sqlconfig.ITransactionTable) *Writer {
	return &Writer{
		tx:           tx,
		Categories:   categories,
		Transactions: transactions,
	}
}

func (w *Writer) Commit(ctx context.Context) error {
	return w.tx.Commit(ctx)
}

func (w *Writer) Rollback(ctx context.Context) error {
	return w.tx.Rollback(ctx)
}
