package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/budget-api/internal/operator/actions"
	"github.com/carson-networks/budget-api/internal/provider"
	"github.com/carson-networks/budget-api/internal/storage"
)

// actionProcessor runs a write action inside its own database transaction.
type actionProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// Options configures the services that are not driven by storage alone.
type Options struct {
	// Generator is nil when no provider credential is configured.
	Generator provider.Generator
	Currency  string
	AITimeout time.Duration
	Logger    logrus.FieldLogger
}

// Service holds all business logic services.
type Service struct {
	Category    *CategoryService
	Transaction *TransactionService
	Summary     *SummaryService
	AISummary   *AISummaryService
	Export      *ExportService
}

// NewService creates a new Service with the given storage and write queue.
func NewService(store *storage.Storage, ops actionProcessor, opts Options) *Service {
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	summary := NewSummaryService(store)
	return &Service{
		Category:    NewCategoryService(store, ops),
		Transaction: NewTransactionService(store, ops),
		Summary:     summary,
		AISummary:   NewAISummaryService(summary, opts),
		Export:      NewExportService(store, opts.Currency),
	}
}
