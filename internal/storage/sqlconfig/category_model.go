package sqlconfig

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-api/internal/ledger"
)

const categoriesTable = "categories"

var categoryColumns = []string{"id", "user_id", "kind", "name", "created_at"}

// Category represents a category record.
type Category struct {
	ID        uuid.UUID   `db:"id"`
	UserID    string      `db:"user_id"`
	Kind      ledger.Kind `db:"kind"`
	Name      string      `db:"name"`
	CreatedAt time.Time   `db:"created_at"`
}

// CategoryCreate is the input for creating a new category.
type CategoryCreate struct {
	UserID string
	Kind   ledger.Kind
	Name   string
}

// ICategoryTable defines the interface for category storage operations.
// Every method is scoped to the owning user.
//
//go:generate mockery --name ICategoryTable --output . --inpackage --with-expecter
type ICategoryTable interface {
	List(ctx context.Context, userID string) ([]*Category, error)
	FindByID(ctx context.Context, userID string, id uuid.UUID) (*Category, error)
	FindByIDs(ctx context.Context, userID string, ids []uuid.UUID) ([]*Category, error)
	Insert(ctx context.Context, create *CategoryCreate) (*Category, error)
	Rename(ctx context.Context, userID string, id uuid.UUID, name string) (*Category, error)
	Delete(ctx context.Context, userID string, id uuid.UUID) error
}

// ToLedger converts the record to its domain form.
func (c *Category) ToLedger() ledger.Category {
	return ledger.Category{
		ID:        c.ID,
		UserID:    c.UserID,
		Kind:      c.Kind,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
	}
}
