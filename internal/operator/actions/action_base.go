package actions

import (
	"context"

	"github.com/carson-networks/budget-api/internal/storage"
)

// IAction is a unit of work executed inside one database transaction.
// Results are stored on the action itself so the caller can read them once
// Process returns.
type IAction interface {
	// Name labels the action in logs and metrics.
	Name() string
	Perform(ctx context.Context, writer *storage.Writer) error
}

var (
	_ IAction = (*CreateCategory)(nil)
	_ IAction = (*RenameCategory)(nil)
	_ IAction = (*DeleteCategory)(nil)
	_ IAction = (*CreateTransaction)(nil)
	_ IAction = (*UpdateTransaction)(nil)
	_ IAction = (*DeleteTransaction)(nil)
)
