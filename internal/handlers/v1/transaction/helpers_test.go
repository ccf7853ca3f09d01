package transaction

import (
	"context"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/budget-api/internal/auth"
	"github.com/carson-networks/budget-api/internal/ledger"
	"github.com/carson-networks/budget-api/internal/service"
)

const testUser = "user-1"

type mockTransactionService struct {
	mock.Mock
}

func (m *mockTransactionService) ListTransactions(ctx context.Context, userID string, filter service.TransactionFilter) ([]service.Transaction, error) {
	args := m.Called(ctx, userID, filter)
	txs, _ := args.Get(0).([]service.Transaction)
	return txs, args.Error(1)
}

func (m *mockTransactionService) CreateTransaction(ctx context.Context, userID string, in service.NewTransaction) (*service.Transaction, error) {
	args := m.Called(ctx, userID, in)
	tx, _ := args.Get(0).(*service.Transaction)
	return tx, args.Error(1)
}

func (m *mockTransactionService) UpdateTransaction(ctx context.Context, userID string, id uuid.UUID, patch service.TransactionPatch) (*service.Transaction, error) {
	args := m.Called(ctx, userID, id, patch)
	tx, _ := args.Get(0).(*service.Transaction)
	return tx, args.Error(1)
}

func (m *mockTransactionService) DeleteTransaction(ctx context.Context, userID string, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}

func newTestAPI(t *testing.T, svc transactionService) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	api.UseMiddleware(func(ctx huma.Context, next func(huma.Context)) {
		next(huma.WithContext(ctx, auth.ContextWithUserID(ctx.Context(), testUser)))
	})
	NewListTransactionsHandler(svc).Register(api)
	NewCreateTransactionHandler(svc).Register(api)
	NewUpdateTransactionHandler(svc).Register(api)
	NewDeleteTransactionHandler(svc).Register(api)
	return api
}

func coffee() *service.Transaction {
	note := "flat white"
	categoryID := uuid.Must(uuid.NewV4())
	return &service.Transaction{
		Entry: ledger.Entry{
			ID:         uuid.Must(uuid.NewV4()),
			UserID:     testUser,
			Kind:       ledger.KindExpense,
			CategoryID: categoryID,
			Amount:     350,
			OccurredAt: time.Date(2024, 2, 10, 8, 30, 0, 0, time.UTC),
			Note:       &note,
			CreatedAt:  time.Date(2024, 2, 10, 8, 31, 0, 0, time.UTC),
		},
		Category: ledger.Category{ID: categoryID, UserID: testUser, Kind: ledger.KindExpense, Name: "Eating out"},
	}
}

func float(v float64) *float64 { return &v }

func str(v string) *string { return &v }
