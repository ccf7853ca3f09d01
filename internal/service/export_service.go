package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"strings"

	"github.com/carson-networks/budget-api/internal/ledger"
	"github.com/carson-networks/budget-api/internal/logging"
	"github.com/carson-networks/budget-api/internal/storage"
	"github.com/carson-networks/budget-api/internal/storage/sqlconfig"
)

// CSVExport is a rendered export file.
type CSVExport struct {
	Filename string
	Data     []byte
	Rows     int
}

// ExportService renders transactions as CSV.
type ExportService struct {
	storage  *storage.Storage
	currency string
}

func NewExportService(store *storage.Storage, currency string) *ExportService {
	if currency == "" {
		currency = defaultCurrency
	}
	return &ExportService{storage: store, currency: currency}
}

// Header returns the CSV header row.
func (s *ExportService) Header() []string {
	return []string{"date", "type", "category", "amount_" + strings.ToLower(s.currency), "note"}
}

// ExportCSV renders the month's transactions oldest first. filter.Month is required.
func (s *ExportService) ExportCSV(ctx context.Context, userID string, filter TransactionFilter) (*CSVExport, error) {
	rng, err := parseRequiredMonth(filter.Month)
	if err != nil {
		return nil, err
	}

	logData := logging.GetLogData(ctx)
	stopTimer := logData.AddTiming("exportQueryMs")
	rows, err := s.storage.Transactions.List(ctx, &sqlconfig.TransactionFilter{
		UserID:     userID,
		Range:      &rng,
		Kind:       filter.Kind,
		CategoryID: filter.CategoryID,
		Order:      sqlconfig.OrderOldestFirst,
	})
	stopTimer()
	if err != nil {
		return nil, err
	}

	entries := sqlconfig.TransactionsToLedger(rows)
	categories, err := lookupCategories(ctx, s.storage, userID, distinctCategoryIDs(entries))
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(s.Header()); err != nil {
		return nil, err
	}
	for _, e := range entries {
		note := ""
		if e.Note != nil {
			note = *e.Note
		}
		record := []string{
			ledger.DayKey(e.OccurredAt),
			string(e.Kind),
			categoryOrUnknown(categories, e).Name,
			e.Amount.Major(),
			note,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	logData.AddData("exportRows", len(entries))
	return &CSVExport{
		Filename: "transactions_" + rng.Token + ".csv",
		Data:     buf.Bytes(),
		Rows:     len(entries),
	}, nil
}
