package category

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-api/internal/ledger"
)

// Category is the API representation of a category.
type Category struct {
	ID        string `json:"id" doc:"Category UUID"`
	Name      string `json:"name" doc:"Display name"`
	Type      string `json:"type" enum:"income,expense" doc:"Kind of transactions in this category"`
	CreatedAt string `json:"createdAt" format:"date-time" doc:"Creation timestamp"`
}

func toCategory(c *ledger.Category) Category {
	return Category{
		ID:        c.ID.String(),
		Name:      c.Name,
		Type:      string(c.Kind),
		CreatedAt: c.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// categoryService is the subset of service.CategoryService the handlers use.
type categoryService interface {
	ListCategories(ctx context.Context, userID string) ([]ledger.Category, error)
	CreateCategory(ctx context.Context, userID string, kind ledger.Kind, name string) (*ledger.Category, error)
	RenameCategory(ctx context.Context, userID string, id uuid.UUID, name string) (*ledger.Category, error)
	DeleteCategory(ctx context.Context, userID string, id uuid.UUID) error
}
