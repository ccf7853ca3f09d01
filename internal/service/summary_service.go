package service

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-api/internal/ledger"
	"github.com/carson-networks/budget-api/internal/logging"
	"github.com/carson-networks/budget-api/internal/storage"
	"github.com/carson-networks/budget-api/internal/storage/sqlconfig"
)

// SummaryService computes monthly aggregates.
type SummaryService struct {
	storage *storage.Storage
}

func NewSummaryService(store *storage.Storage) *SummaryService {
	return &SummaryService{storage: store}
}

// GetSummary aggregates the user's transactions for month (YYYY-MM).
// An invalid month fails before any query is issued.
func (s *SummaryService) GetSummary(ctx context.Context, userID, month string) (*ledger.MonthlyAggregate, error) {
	rng, err := parseRequiredMonth(month)
	if err != nil {
		return nil, err
	}
	return s.aggregate(ctx, userID, rng)
}

// aggregate issues one ledger query for the range and at most one category
// lookup for the expense categories it references.
func (s *SummaryService) aggregate(ctx context.Context, userID string, rng ledger.MonthRange) (*ledger.MonthlyAggregate, error) {
	logData := logging.GetLogData(ctx)

	stopTimer := logData.AddTiming("summaryQueryMs")
	rows, err := s.storage.Transactions.List(ctx, &sqlconfig.TransactionFilter{
		UserID: userID,
		Range:  &rng,
		Order:  sqlconfig.OrderOldestFirst,
	})
	stopTimer()
	if err != nil {
		return nil, err
	}

	entries := sqlconfig.TransactionsToLedger(rows)
	categories, err := lookupCategories(ctx, s.storage, userID, ledger.ExpenseCategoryIDs(entries))
	if err != nil {
		return nil, err
	}

	names := make(map[uuid.UUID]string, len(categories))
	for id, c := range categories {
		names[id] = c.Name
	}

	logData.AddData("month", rng.Token)
	logData.AddData("entryCount", len(entries))
	return ledger.Aggregate(rng.Token, entries, names), nil
}

func parseRequiredMonth(month string) (ledger.MonthRange, error) {
	if month == "" {
		return ledger.MonthRange{}, ledger.ErrMonthRequired
	}
	return ledger.ParseMonth(month)
}
