package service

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-api/internal/ledger"
	"github.com/carson-networks/budget-api/internal/storage"
)

// lookupCategories resolves ids to the user's categories with a single
// query. Ids that do not resolve are absent from the result.
func lookupCategories(ctx context.Context, store *storage.Storage, userID string, ids []uuid.UUID) (map[uuid.UUID]ledger.Category, error) {
	out := make(map[uuid.UUID]ledger.Category, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := store.Categories.FindByIDs(ctx, userID, ids)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.ID] = row.ToLedger()
	}
	return out, nil
}

// distinctCategoryIDs returns each referenced category id once, in first-seen order.
func distinctCategoryIDs(entries []ledger.Entry) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(entries))
	ids := make([]uuid.UUID, 0, len(entries))
	for _, e := range entries {
		if _, ok := seen[e.CategoryID]; ok {
			continue
		}
		seen[e.CategoryID] = struct{}{}
		ids = append(ids, e.CategoryID)
	}
	return ids
}

// categoryOrUnknown returns the resolved category or a placeholder that
// keeps the entry's id and kind.
func categoryOrUnknown(categories map[uuid.UUID]ledger.Category, e ledger.Entry) ledger.Category {
	if c, ok := categories[e.CategoryID]; ok {
		return c
	}
	return ledger.Category{
		ID:     e.CategoryID,
		UserID: e.UserID,
		Kind:   e.Kind,
		Name:   ledger.UnknownCategoryName,
	}
}
