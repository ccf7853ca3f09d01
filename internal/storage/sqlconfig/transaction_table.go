package sqlconfig

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"
)

var _ ITransactionTable = (*TransactionsTable)(nil)

type TransactionsTable struct {
	exec bob.Executor
}

func NewTransactionsTable(exec bob.Executor) *TransactionsTable {
	return &TransactionsTable{exec: exec}
}

// List returns the user's transactions matching the filter.
func (t *TransactionsTable) List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error) {
	return bob.All(ctx, t.exec, listTransactionsQuery(filter), scan.StructMapper[*Transaction]())
}

// listTransactionsQuery selects the user's rows inside the filter's
// half-open month range, narrowed by kind and category when set.
func listTransactionsQuery(filter *TransactionFilter) bob.BaseQuery[*dialect.SelectQuery] {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(anyColumns(transactionColumns)...),
		sm.From(transactionsTable),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(filter.UserID))),
	}
	if filter.Range != nil {
		queryMods = append(queryMods,
			sm.Where(psql.Quote("occurred_at").GTE(psql.Arg(filter.Range.Start))),
			sm.Where(psql.Quote("occurred_at").LT(psql.Arg(filter.Range.End))),
		)
	}
	if filter.Kind != nil {
		queryMods = append(queryMods, sm.Where(psql.Quote("kind").EQ(psql.Arg(string(*filter.Kind)))))
	}
	if filter.CategoryID != nil {
		queryMods = append(queryMods, sm.Where(psql.Quote("category_id").EQ(psql.Arg(*filter.CategoryID))))
	}
	if filter.Order == OrderOldestFirst {
		queryMods = append(queryMods,
			sm.OrderBy(psql.Quote("occurred_at")).Asc(),
			sm.OrderBy(psql.Quote("created_at")).Asc(),
		)
	} else {
		queryMods = append(queryMods,
			sm.OrderBy(psql.Quote("occurred_at")).Desc(),
			sm.OrderBy(psql.Quote("created_at")).Desc(),
		)
	}
	return psql.Select(queryMods...)
}

// FindByID retrieves one of the user's transactions.
func (t *TransactionsTable) FindByID(ctx context.Context, userID string, id uuid.UUID) (*Transaction, error) {
	q := psql.Select(
		sm.Columns(anyColumns(transactionColumns)...),
		sm.From(transactionsTable),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
	)
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[*Transaction]())
	if err != nil {
		return nil, translateError(err)
	}
	return row, nil
}

// Insert creates a new transaction and returns the stored row.
func (t *TransactionsTable) Insert(ctx context.Context, create *TransactionCreate) (*Transaction, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	q := psql.Insert(
		im.Into(transactionsTable, "id", "user_id", "category_id", "kind", "amount", "occurred_at", "note"),
		im.Values(
			psql.Arg(id),
			psql.Arg(create.UserID),
			psql.Arg(create.CategoryID),
			psql.Arg(string(create.Kind)),
			psql.Arg(int64(create.Amount)),
			psql.Arg(create.OccurredAt.UTC()),
			psql.Arg(create.Note),
		),
		im.Returning(anyColumns(transactionColumns)...),
	)
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[*Transaction]())
	if err != nil {
		return nil, translateError(err)
	}
	return row, nil
}

// Update applies the set fields of update to one of the user's transactions.
func (t *TransactionsTable) Update(ctx context.Context, userID string, id uuid.UUID, update *TransactionUpdate) (*Transaction, error) {
	q := updateTransactionQuery(userID, id, update, time.Now().UTC())
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[*Transaction]())
	if err != nil {
		return nil, translateError(err)
	}
	return row, nil
}

// updateTransactionQuery sets only the columns present in update. A null
// Note is written as NULL.
func updateTransactionQuery(userID string, id uuid.UUID, update *TransactionUpdate, now time.Time) bob.BaseQuery[*dialect.UpdateQuery] {
	queryMods := []bob.Mod[*dialect.UpdateQuery]{
		um.Table(transactionsTable),
		um.SetCol("updated_at").ToArg(now),
	}
	if v, ok := update.CategoryID.Get(); ok {
		queryMods = append(queryMods, um.SetCol("category_id").ToArg(v))
	}
	if v, ok := update.Kind.Get(); ok {
		queryMods = append(queryMods, um.SetCol("kind").ToArg(string(v)))
	}
	if v, ok := update.Amount.Get(); ok {
		queryMods = append(queryMods, um.SetCol("amount").ToArg(int64(v)))
	}
	if v, ok := update.OccurredAt.Get(); ok {
		queryMods = append(queryMods, um.SetCol("occurred_at").ToArg(v.UTC()))
	}
	if !update.Note.IsUnset() {
		queryMods = append(queryMods, um.SetCol("note").ToArg(update.Note))
	}
	queryMods = append(queryMods,
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
		um.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		um.Returning(anyColumns(transactionColumns)...),
	)
	return psql.Update(queryMods...)
}

// Delete removes one of the user's transactions.
func (t *TransactionsTable) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	q := psql.Delete(
		dm.From(transactionsTable),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
		dm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
	)
	res, err := bob.Exec(ctx, t.exec, q)
	if err != nil {
		return translateError(err)
	}
	return requireAffected(res)
}
