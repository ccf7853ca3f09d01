package actions

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-api/internal/ledger"
	"github.com/carson-networks/budget-api/internal/storage"
	"github.com/carson-networks/budget-api/internal/storage/sqlconfig"
)

type CreateTransaction struct {
	UserID     string
	CategoryID uuid.UUID
	Kind       ledger.Kind
	Amount     ledger.Money
	OccurredAt time.Time
	Note       *string

	Result   *ledger.Entry
	Category *ledger.Category
}

func (*CreateTransaction) Name() string { return "create-transaction" }

func (t *CreateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	category, err := writer.Categories.FindByID(ctx, t.UserID, t.CategoryID)
	if err != nil {
		return categoryError(err)
	}
	if category.Kind != t.Kind {
		return ledger.ErrKindMismatch
	}

	row, err := writer.Transactions.Insert(ctx, &sqlconfig.TransactionCreate{
		UserID:     t.UserID,
		CategoryID: t.CategoryID,
		Kind:       t.Kind,
		Amount:     t.Amount,
		OccurredAt: t.OccurredAt,
		Note:       t.Note,
	})
	if err != nil {
		return err
	}

	entry := row.ToLedger()
	owner := category.ToLedger()
	t.Result = &entry
	t.Category = &owner
	return nil
}
