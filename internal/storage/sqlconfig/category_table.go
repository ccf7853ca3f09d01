package sqlconfig

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"
)

// Ensure CategoriesTable implements ICategoryTable at compile time.
var _ ICategoryTable = (*CategoriesTable)(nil)

// CategoriesTable provides access to the categories table.
type CategoriesTable struct {
	exec bob.Executor
}

// NewCategoriesTable creates a CategoriesTable on top of a DB or transaction.
func NewCategoriesTable(exec bob.Executor) *CategoriesTable {
	return &CategoriesTable{exec: exec}
}

// List returns the user's categories ordered by kind, then name.
func (t *CategoriesTable) List(ctx context.Context, userID string) ([]*Category, error) {
	q := psql.Select(
		sm.Columns(anyColumns(categoryColumns)...),
		sm.From(categoriesTable),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		sm.OrderBy(psql.Quote("kind")).Asc(),
		sm.OrderBy(psql.Quote("name")).Asc(),
	)
	return bob.All(ctx, t.exec, q, scan.StructMapper[*Category]())
}

// FindByID retrieves one of the user's categories.
func (t *CategoriesTable) FindByID(ctx context.Context, userID string, id uuid.UUID) (*Category, error) {
	q := psql.Select(
		sm.Columns(anyColumns(categoryColumns)...),
		sm.From(categoriesTable),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
	)
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[*Category]())
	if err != nil {
		return nil, translateError(err)
	}
	return row, nil
}

// FindByIDs retrieves the subset of ids that exist and belong to the user.
func (t *CategoriesTable) FindByIDs(ctx context.Context, userID string, ids []uuid.UUID) ([]*Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	args := make([]bob.Expression, len(ids))
	for i, id := range ids {
		args[i] = psql.Arg(id)
	}
	q := psql.Select(
		sm.Columns(anyColumns(categoryColumns)...),
		sm.From(categoriesTable),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		sm.Where(psql.Quote("id").In(args...)),
	)
	return bob.All(ctx, t.exec, q, scan.StructMapper[*Category]())
}

// Insert creates a new category. A duplicate (user, kind, name) yields ErrDuplicate.
func (t *CategoriesTable) Insert(ctx context.Context, create *CategoryCreate) (*Category, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	q := psql.Insert(
		im.Into(categoriesTable, "id", "user_id", "kind", "name"),
		im.Values(
			psql.Arg(id),
			psql.Arg(create.UserID),
			psql.Arg(string(create.Kind)),
			psql.Arg(create.Name),
		),
		im.Returning(anyColumns(categoryColumns)...),
	)
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[*Category]())
	if err != nil {
		return nil, translateError(err)
	}
	return row, nil
}

// Rename changes the display name of one of the user's categories.
func (t *CategoriesTable) Rename(ctx context.Context, userID string, id uuid.UUID, name string) (*Category, error) {
	q := psql.Update(
		um.Table(categoriesTable),
		um.SetCol("name").ToArg(name),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
		um.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		um.Returning(anyColumns(categoryColumns)...),
	)
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[*Category]())
	if err != nil {
		return nil, translateError(err)
	}
	return row, nil
}

// Delete removes one of the user's categories. Entries keep their category id.
func (t *CategoriesTable) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	q := psql.Delete(
		dm.From(categoriesTable),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
		dm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
	)
	res, err := bob.Exec(ctx, t.exec, q)
	if err != nil {
		return translateError(err)
	}
	return requireAffected(res)
}
