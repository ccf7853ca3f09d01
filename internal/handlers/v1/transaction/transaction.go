package transaction

import (
	"context"
	"math"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-api/internal/ledger"
	"github.com/carson-networks/budget-api/internal/service"
)

// CategoryRef is the category embedded in a transaction.
type CategoryRef struct {
	ID   string `json:"id" doc:"Category UUID"`
	Name string `json:"name" doc:"Category name, Unknown once the category is deleted"`
	Type string `json:"type" doc:"Category type"`
}

// Transaction is the API representation of a transaction.
type Transaction struct {
	ID        string      `json:"id" doc:"Transaction UUID"`
	Type      string      `json:"type" enum:"income,expense" doc:"Transaction type"`
	Amount    int64       `json:"amount" doc:"Amount in minor currency units"`
	Date      string      `json:"date" format:"date-time" doc:"When the transaction happened"`
	Note      *string     `json:"note" nullable:"true" doc:"Optional note"`
	CreatedAt string      `json:"createdAt" format:"date-time" doc:"Creation timestamp"`
	Category  CategoryRef `json:"category" doc:"Category of the transaction"`
}

func toTransaction(tx *service.Transaction) Transaction {
	return Transaction{
		ID:        tx.ID.String(),
		Type:      string(tx.Kind),
		Amount:    int64(tx.Amount),
		Date:      tx.OccurredAt.UTC().Format(time.RFC3339),
		Note:      tx.Note,
		CreatedAt: tx.CreatedAt.UTC().Format(time.RFC3339),
		Category: CategoryRef{
			ID:   tx.Category.ID.String(),
			Name: tx.Category.Name,
			Type: string(tx.Category.Kind),
		},
	}
}

// transactionService is the subset of service.TransactionService the handlers use.
type transactionService interface {
	ListTransactions(ctx context.Context, userID string, filter service.TransactionFilter) ([]service.Transaction, error)
	CreateTransaction(ctx context.Context, userID string, in service.NewTransaction) (*service.Transaction, error)
	UpdateTransaction(ctx context.Context, userID string, id uuid.UUID, patch service.TransactionPatch) (*service.Transaction, error)
	DeleteTransaction(ctx context.Context, userID string, id uuid.UUID) error
}

// parseAmount accepts JSON numbers that are whole minor-unit counts.
func parseAmount(v float64) (ledger.Money, error) {
	if v != math.Trunc(v) || v <= 0 || v > math.MaxInt64/2 {
		return 0, huma.Error400BadRequest(ledger.ErrInvalidAmount.Error())
	}
	return ledger.Money(v), nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, huma.Error400BadRequest("date must be an RFC 3339 date-time")
	}
	return t.UTC(), nil
}
