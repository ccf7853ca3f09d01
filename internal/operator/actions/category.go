package actions

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-api/internal/ledger"
	"github.com/carson-networks/budget-api/internal/storage"
	"github.com/carson-networks/budget-api/internal/storage/sqlconfig"
)

type CreateCategory struct {
	UserID       string
	Kind         ledger.Kind
	CategoryName string

	Result *ledger.Category
}

func (*CreateCategory) Name() string { return "create-category" }

func (c *CreateCategory) Perform(ctx context.Context, writer *storage.Writer) error {
	row, err := writer.Categories.Insert(ctx, &sqlconfig.CategoryCreate{
		UserID: c.UserID,
		Kind:   c.Kind,
		Name:   c.CategoryName,
	})
	if err != nil {
		return categoryError(err)
	}
	created := row.ToLedger()
	c.Result = &created
	return nil
}

type RenameCategory struct {
	UserID       string
	ID           uuid.UUID
	CategoryName string

	Result *ledger.Category
}

func (*RenameCategory) Name() string { return "rename-category" }

func (r *RenameCategory) Perform(ctx context.Context, writer *storage.Writer) error {
	row, err := writer.Categories.Rename(ctx, r.UserID, r.ID, r.CategoryName)
	if err != nil {
		return categoryError(err)
	}
	renamed := row.ToLedger()
	r.Result = &renamed
	return nil
}

type DeleteCategory struct {
	UserID string
	ID     uuid.UUID
}

func (*DeleteCategory) Name() string { return "delete-category" }

func (d *DeleteCategory) Perform(ctx context.Context, writer *storage.Writer) error {
	return categoryError(writer.Categories.Delete(ctx, d.UserID, d.ID))
}

func categoryError(err error) error {
	switch {
	case errors.Is(err, sqlconfig.ErrNotFound):
		return ledger.ErrCategoryNotFound
	case errors.Is(err, sqlconfig.ErrDuplicate):
		return ledger.ErrCategoryExists
	default:
		return err
	}
}
