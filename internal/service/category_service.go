package service

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-api/internal/ledger"
	"github.com/carson-networks/budget-api/internal/operator/actions"
	"github.com/carson-networks/budget-api/internal/storage"
)

// CategoryService handles category business logic.
type CategoryService struct {
	storage  *storage.Storage
	operator actionProcessor
}

func NewCategoryService(store *storage.Storage, ops actionProcessor) *CategoryService {
	return &CategoryService{storage: store, operator: ops}
}

// ListCategories returns the user's categories ordered by kind, then name.
func (s *CategoryService) ListCategories(ctx context.Context, userID string) ([]ledger.Category, error) {
	rows, err := s.storage.Categories.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]ledger.Category, len(rows))
	for i, row := range rows {
		out[i] = row.ToLedger()
	}
	return out, nil
}

// CreateCategory adds a category. The name is trimmed and must be unique per kind.
func (s *CategoryService) CreateCategory(ctx context.Context, userID string, kind ledger.Kind, name string) (*ledger.Category, error) {
	if !kind.Valid() {
		return nil, ledger.ErrInvalidKind
	}
	name, err := ledger.NormalizeCategoryName(name)
	if err != nil {
		return nil, err
	}

	action := &actions.CreateCategory{UserID: userID, Kind: kind, CategoryName: name}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}
	return action.Result, nil
}

// RenameCategory changes a category's display name.
func (s *CategoryService) RenameCategory(ctx context.Context, userID string, id uuid.UUID, name string) (*ledger.Category, error) {
	name, err := ledger.NormalizeCategoryName(name)
	if err != nil {
		return nil, err
	}

	action := &actions.RenameCategory{UserID: userID, ID: id, CategoryName: name}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}
	return action.Result, nil
}

// DeleteCategory removes a category. Its transactions remain and report under Unknown.
func (s *CategoryService) DeleteCategory(ctx context.Context, userID string, id uuid.UUID) error {
	return s.operator.Process(ctx, &actions.DeleteCategory{UserID: userID, ID: id})
}
