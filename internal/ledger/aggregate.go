package ledger

import (
	"cmp"
	"maps"
	"slices"

	"github.com/gofrs/uuid/v5"
)

// NarrationCategoryLimit is how many categories are sent to the summary provider.
const NarrationCategoryLimit = 8

// CategoryTotal is the summed expense of one category.
type CategoryTotal struct {
	CategoryID   uuid.UUID
	CategoryName string
	Amount       Money
}

// DailyTotal is the summed expense of one UTC calendar day.
type DailyTotal struct {
	Date   string
	Amount Money
}

// MonthlyAggregate summarises one user's ledger for one month.
type MonthlyAggregate struct {
	Month           string
	TotalIncome     Money
	TotalExpense    Money
	Net             Money
	SpendByCategory []CategoryTotal
	DailyExpense    []DailyTotal
}

// Aggregate computes totals, per-category spend and the daily expense series.
//
// entries must already be restricted to the month. names maps category ids to
// display names; ids missing from it are reported as UnknownCategoryName.
func Aggregate(month string, entries []Entry, names map[uuid.UUID]string) *MonthlyAggregate {
	agg := &MonthlyAggregate{
		Month:           month,
		SpendByCategory: []CategoryTotal{},
		DailyExpense:    []DailyTotal{},
	}

	byCategory := make(map[uuid.UUID]Money)
	byDay := make(map[string]Money)

	for _, e := range entries {
		switch e.Kind {
		case KindIncome:
			agg.TotalIncome += e.Amount
		case KindExpense:
			agg.TotalExpense += e.Amount
			byCategory[e.CategoryID] += e.Amount
			byDay[DayKey(e.OccurredAt)] += e.Amount
		}
	}
	agg.Net = agg.TotalIncome - agg.TotalExpense

	for id, amount := range byCategory {
		name, ok := names[id]
		if !ok {
			name = UnknownCategoryName
		}
		agg.SpendByCategory = append(agg.SpendByCategory, CategoryTotal{
			CategoryID:   id,
			CategoryName: name,
			Amount:       amount,
		})
	}
	slices.SortFunc(agg.SpendByCategory, func(a, b CategoryTotal) int {
		if c := cmp.Compare(b.Amount, a.Amount); c != 0 {
			return c
		}
		if c := cmp.Compare(a.CategoryName, b.CategoryName); c != 0 {
			return c
		}
		return cmp.Compare(a.CategoryID.String(), b.CategoryID.String())
	})

	for _, day := range slices.Sorted(maps.Keys(byDay)) {
		agg.DailyExpense = append(agg.DailyExpense, DailyTotal{Date: day, Amount: byDay[day]})
	}

	return agg
}

// TopSpend returns at most n categories from the head of SpendByCategory.
func (a *MonthlyAggregate) TopSpend(n int) []CategoryTotal {
	if n < 0 || len(a.SpendByCategory) <= n {
		return a.SpendByCategory
	}
	return a.SpendByCategory[:n]
}

// ExpenseCategoryIDs lists the distinct category ids used by expense entries, in first-seen order.
func ExpenseCategoryIDs(entries []Entry) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{})
	var ids []uuid.UUID
	for _, e := range entries {
		if e.Kind != KindExpense {
			continue
		}
		if _, ok := seen[e.CategoryID]; ok {
			continue
		}
		seen[e.CategoryID] = struct{}{}
		ids = append(ids, e.CategoryID)
	}
	return ids
}
