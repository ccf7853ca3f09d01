package actions

import (
	"context"
	"errors"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/aarondl/opt/omitnull"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-api/internal/ledger"
	"github.com/carson-networks/budget-api/internal/storage"
	"github.com/carson-networks/budget-api/internal/storage/sqlconfig"
)

// UpdateTransaction changes the set fields of an existing transaction.
// Moving it to another category also adopts that category's kind.
// A non-nil Note that normalizes to nothing clears the stored note.
type UpdateTransaction struct {
	UserID     string
	ID         uuid.UUID
	CategoryID *uuid.UUID
	Amount     *ledger.Money
	OccurredAt *time.Time
	Note       *string

	Result   *ledger.Entry
	Category *ledger.Category
}

func (*UpdateTransaction) Name() string { return "update-transaction" }

func (u *UpdateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	existing, err := writer.Transactions.FindByID(ctx, u.UserID, u.ID)
	if err != nil {
		return transactionError(err)
	}

	update := &sqlconfig.TransactionUpdate{}
	categoryID := existing.CategoryID
	if u.CategoryID != nil {
		category, err := writer.Categories.FindByID(ctx, u.UserID, *u.CategoryID)
		if err != nil {
			return categoryError(err)
		}
		update.CategoryID = omit.From(category.ID)
		update.Kind = omit.From(category.Kind)
		categoryID = category.ID
	}
	if u.Amount != nil {
		if err := ledger.ValidateAmount(*u.Amount); err != nil {
			return err
		}
		update.Amount = omit.From(*u.Amount)
	}
	if u.OccurredAt != nil {
		update.OccurredAt = omit.From(*u.OccurredAt)
	}
	if u.Note != nil {
		note, err := ledger.NormalizeNote(u.Note)
		if err != nil {
			return err
		}
		update.Note = omitnull.FromPtr(note)
	}

	row, err := writer.Transactions.Update(ctx, u.UserID, u.ID, update)
	if err != nil {
		return transactionError(err)
	}
	entry := row.ToLedger()
	u.Result = &entry

	// The entry may point at a deleted category; that is reported as Unknown.
	category, err := writer.Categories.FindByID(ctx, u.UserID, categoryID)
	switch {
	case err == nil:
		owner := category.ToLedger()
		u.Category = &owner
	case !errors.Is(err, sqlconfig.ErrNotFound):
		return err
	}
	return nil
}

type DeleteTransaction struct {
	UserID string
	ID     uuid.UUID
}

func (*DeleteTransaction) Name() string { return "delete-transaction" }

func (d *DeleteTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	return transactionError(writer.Transactions.Delete(ctx, d.UserID, d.ID))
}

func transactionError(err error) error {
	if errors.Is(err, sqlconfig.ErrNotFound) {
		return ledger.ErrTransactionNotFound
	}
	return err
}
