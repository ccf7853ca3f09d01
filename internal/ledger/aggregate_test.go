package ledger

import (
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(kind Kind, categoryID uuid.UUID, amount Money, at time.Time) Entry {
	return Entry{
		ID:         uuid.Must(uuid.NewV4()),
		UserID:     "user-1",
		Kind:       kind,
		CategoryID: categoryID,
		Amount:     amount,
		OccurredAt: at,
	}
}

func day(d, hour int) time.Time {
	return time.Date(2024, 2, d, hour, 0, 0, 0, time.UTC)
}

func TestAggregate_Empty(t *testing.T) {
	agg := Aggregate("2024-02", nil, nil)

	assert.Equal(t, "2024-02", agg.Month)
	assert.Equal(t, Money(0), agg.TotalIncome)
	assert.Equal(t, Money(0), agg.TotalExpense)
	assert.Equal(t, Money(0), agg.Net)
	assert.NotNil(t, agg.SpendByCategory)
	assert.Empty(t, agg.SpendByCategory)
	assert.NotNil(t, agg.DailyExpense)
	assert.Empty(t, agg.DailyExpense)
}

func TestAggregate_Totals(t *testing.T) {
	salary := uuid.Must(uuid.NewV4())
	rent := uuid.Must(uuid.NewV4())

	agg := Aggregate("2024-02", []Entry{
		entry(KindIncome, salary, 250000, day(1, 9)),
		entry(KindIncome, salary, 1999, day(15, 9)),
		entry(KindExpense, rent, 120001, day(2, 9)),
	}, map[uuid.UUID]string{salary: "Salary", rent: "Rent"})

	assert.Equal(t, Money(251999), agg.TotalIncome)
	assert.Equal(t, Money(120001), agg.TotalExpense)
	assert.Equal(t, agg.TotalIncome-agg.TotalExpense, agg.Net)
	assert.Equal(t, Money(131998), agg.Net)
}

func TestAggregate_NegativeNet(t *testing.T) {
	food := uuid.Must(uuid.NewV4())

	agg := Aggregate("2024-02", []Entry{
		entry(KindExpense, food, 500, day(3, 12)),
	}, map[uuid.UUID]string{food: "Food"})

	assert.Equal(t, Money(0), agg.TotalIncome)
	assert.Equal(t, Money(-500), agg.Net)
}

func TestAggregate_SpendByCategory(t *testing.T) {
	food := uuid.Must(uuid.NewV4())
	rent := uuid.Must(uuid.NewV4())
	fun := uuid.Must(uuid.NewV4())
	books := uuid.Must(uuid.NewV4())
	salary := uuid.Must(uuid.NewV4())

	entries := []Entry{
		entry(KindExpense, food, 1200, day(1, 8)),
		entry(KindExpense, rent, 90000, day(1, 9)),
		entry(KindExpense, food, 800, day(5, 8)),
		entry(KindExpense, fun, 2000, day(6, 20)),
		entry(KindExpense, books, 2000, day(7, 20)),
		entry(KindIncome, salary, 300000, day(1, 9)),
	}
	names := map[uuid.UUID]string{food: "Food", rent: "Rent", fun: "Fun", books: "Books", salary: "Salary"}

	agg := Aggregate("2024-02", entries, names)

	require.Len(t, agg.SpendByCategory, 4)
	assert.Equal(t, "Rent", agg.SpendByCategory[0].CategoryName)
	assert.Equal(t, Money(90000), agg.SpendByCategory[0].Amount)
	// Food, Books and Fun all total 2000; ties break on name.
	assert.Equal(t, "Books", agg.SpendByCategory[1].CategoryName)
	assert.Equal(t, "Food", agg.SpendByCategory[2].CategoryName)
	assert.Equal(t, "Fun", agg.SpendByCategory[3].CategoryName)

	var sum Money
	for i, c := range agg.SpendByCategory {
		sum += c.Amount
		if i > 0 {
			assert.GreaterOrEqual(t, agg.SpendByCategory[i-1].Amount, c.Amount)
		}
	}
	assert.Equal(t, agg.TotalExpense, sum, "full list sums to total expense")
}

func TestAggregate_UnknownCategory(t *testing.T) {
	known := uuid.Must(uuid.NewV4())
	deleted := uuid.Must(uuid.NewV4())

	agg := Aggregate("2024-02", []Entry{
		entry(KindExpense, known, 100, day(1, 8)),
		entry(KindExpense, deleted, 300, day(1, 9)),
	}, map[uuid.UUID]string{known: "Known"})

	require.Len(t, agg.SpendByCategory, 2)
	assert.Equal(t, UnknownCategoryName, agg.SpendByCategory[0].CategoryName)
	assert.Equal(t, deleted, agg.SpendByCategory[0].CategoryID)
	assert.Equal(t, Money(300), agg.SpendByCategory[0].Amount)
	assert.Equal(t, Money(400), agg.TotalExpense)
}

func TestAggregate_DailyExpense(t *testing.T) {
	food := uuid.Must(uuid.NewV4())
	salary := uuid.Must(uuid.NewV4())
	plus5 := time.FixedZone("UTC+5", 5*60*60)

	agg := Aggregate("2024-02", []Entry{
		entry(KindExpense, food, 300, day(10, 23)),
		entry(KindExpense, food, 100, day(3, 8)),
		entry(KindExpense, food, 200, day(3, 22)),
		entry(KindIncome, salary, 99999, day(4, 9)),
		// 02:00 at UTC+5 is still the 9th in UTC.
		entry(KindExpense, food, 50, time.Date(2024, 2, 10, 2, 0, 0, 0, plus5)),
	}, nil)

	assert.Equal(t, []DailyTotal{
		{Date: "2024-02-03", Amount: 300},
		{Date: "2024-02-09", Amount: 50},
		{Date: "2024-02-10", Amount: 300},
	}, agg.DailyExpense)
}

func TestTopSpend(t *testing.T) {
	var entries []Entry
	names := map[uuid.UUID]string{}
	for i := 1; i <= 10; i++ {
		id := uuid.Must(uuid.NewV4())
		names[id] = string(rune('A' + i))
		entries = append(entries, entry(KindExpense, id, Money(i*100), day(i, 10)))
	}

	agg := Aggregate("2024-02", entries, names)

	top := agg.TopSpend(NarrationCategoryLimit)
	require.Len(t, top, NarrationCategoryLimit)
	assert.Equal(t, Money(1000), top[0].Amount)
	assert.Equal(t, Money(300), top[7].Amount)
	assert.Len(t, agg.SpendByCategory, 10, "full list is untouched")

	assert.Len(t, agg.TopSpend(20), 10)
}

func TestExpenseCategoryIDs(t *testing.T) {
	a := uuid.Must(uuid.NewV4())
	b := uuid.Must(uuid.NewV4())
	c := uuid.Must(uuid.NewV4())

	ids := ExpenseCategoryIDs([]Entry{
		entry(KindExpense, a, 1, day(1, 1)),
		entry(KindIncome, c, 1, day(1, 1)),
		entry(KindExpense, b, 1, day(1, 1)),
		entry(KindExpense, a, 1, day(2, 1)),
	})

	assert.Equal(t, []uuid.UUID{a, b}, ids)
}
