package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/budget-api/internal/ledger"
	"github.com/carson-networks/budget-api/internal/storage/sqlconfig"
)

func TestExportCSV_RendersAndEscapes(t *testing.T) {
	deps := newTestDeps(t)
	svc := NewExportService(deps.store, "GBP")
	food := newID()
	gone := newID()

	tricky := `He said, "ok"`
	multi := "line one\nline two"
	first := txRow(ledger.KindExpense, food, 1250, feb(1, 9))
	first.Note = &tricky
	second := txRow(ledger.KindExpense, gone, 5, feb(2, 9))
	second.Note = &multi
	third := txRow(ledger.KindExpense, food, 100000, feb(3, 9))

	kind := ledger.KindExpense
	deps.transactions.EXPECT().List(mock.Anything, mock.MatchedBy(func(f *sqlconfig.TransactionFilter) bool {
		return f.Order == sqlconfig.OrderOldestFirst &&
			f.Range != nil && f.Range.Token == "2024-02" &&
			f.Kind != nil && *f.Kind == ledger.KindExpense
	})).Return([]*sqlconfig.Transaction{first, second, third}, nil)
	deps.categories.EXPECT().FindByIDs(mock.Anything, testUser, mock.Anything).
		Return([]*sqlconfig.Category{categoryRow(food, ledger.KindExpense, "Food")}, nil)

	out, err := svc.ExportCSV(context.Background(), testUser, TransactionFilter{Month: "2024-02", Kind: &kind})

	require.NoError(t, err)
	assert.Equal(t, "transactions_2024-02.csv", out.Filename)
	assert.Equal(t, 3, out.Rows)
	assert.Contains(t, string(out.Data), `"He said, ""ok"""`)

	records, err := csv.NewReader(bytes.NewReader(out.Data)).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"date", "type", "category", "amount_gbp", "note"},
		{"2024-02-01", "expense", "Food", "12.50", tricky},
		{"2024-02-02", "expense", "Unknown", "0.05", multi},
		{"2024-02-03", "expense", "Food", "1000.00", ""},
	}, records)
}

func TestExportCSV_EmptyMonthHasHeaderOnly(t *testing.T) {
	deps := newTestDeps(t)
	svc := NewExportService(deps.store, "")
	deps.transactions.EXPECT().List(mock.Anything, mock.Anything).Return(nil, nil)

	out, err := svc.ExportCSV(context.Background(), testUser, TransactionFilter{Month: "2023-12"})

	require.NoError(t, err)
	assert.Equal(t, "date,type,category,amount_gbp,note\n", string(out.Data))
	assert.Equal(t, "transactions_2023-12.csv", out.Filename)
}

func TestExportCSV_RequiresValidMonth(t *testing.T) {
	deps := newTestDeps(t)
	svc := NewExportService(deps.store, "GBP")

	_, err := svc.ExportCSV(context.Background(), testUser, TransactionFilter{})
	assert.ErrorIs(t, err, ledger.ErrMonthRequired)

	_, err = svc.ExportCSV(context.Background(), testUser, TransactionFilter{Month: "2024/02"})
	assert.ErrorIs(t, err, ledger.ErrInvalidMonth)
}
