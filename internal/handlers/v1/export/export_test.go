package export

import (
	"context"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/budget-api/internal/auth"
	"github.com/carson-networks/budget-api/internal/ledger"
	"github.com/carson-networks/budget-api/internal/service"
)

const testUser = "user-1"

type mockExporter struct {
	mock.Mock
}

func (m *mockExporter) ExportCSV(ctx context.Context, userID string, filter service.TransactionFilter) (*service.CSVExport, error) {
	args := m.Called(ctx, userID, filter)
	file, _ := args.Get(0).(*service.CSVExport)
	return file, args.Error(1)
}

func newTestAPI(t *testing.T, svc csvExporter) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	api.UseMiddleware(func(ctx huma.Context, next func(huma.Context)) {
		next(huma.WithContext(ctx, auth.ContextWithUserID(ctx.Context(), testUser)))
	})
	NewExportTransactionsHandler(svc).Register(api)
	return api
}

func TestHTTP_ExportTransactions(t *testing.T) {
	data := "date,type,category,amount_gbp,note\n2024-02-03,expense,Food,12.50,\"He said, \"\"ok\"\"\"\n"
	kind := ledger.KindExpense
	svc := new(mockExporter)
	svc.On("ExportCSV", mock.Anything, testUser, service.TransactionFilter{Month: "2024-02", Kind: &kind}).
		Return(&service.CSVExport{Filename: "transactions_2024-02.csv", Data: []byte(data), Rows: 1}, nil)

	resp := newTestAPI(t, svc).Get("/export/transactions.csv?month=2024-02&type=expense")

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "text/csv; charset=utf-8", resp.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="transactions_2024-02.csv"`, resp.Header().Get("Content-Disposition"))
	assert.Equal(t, data, resp.Body.String())
	svc.AssertExpectations(t)
}

func TestHTTP_ExportTransactions_MonthRequired(t *testing.T) {
	svc := new(mockExporter)
	svc.On("ExportCSV", mock.Anything, testUser, service.TransactionFilter{}).Return(nil, ledger.ErrMonthRequired)

	resp := newTestAPI(t, svc).Get("/export/transactions.csv")

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestHTTP_ExportTransactions_BadType(t *testing.T) {
	svc := new(mockExporter)

	resp := newTestAPI(t, svc).Get("/export/transactions.csv?month=2024-02&type=loan")

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	svc.AssertNotCalled(t, "ExportCSV")
}
