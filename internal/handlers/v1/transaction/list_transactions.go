package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-api/internal/handlers"
	"github.com/carson-networks/budget-api/internal/logging"
	"github.com/carson-networks/budget-api/internal/service"
)

// ListTransactionsInput is the Huma input for listing transactions.
type ListTransactionsInput struct {
	Month      string `query:"month" doc:"Restrict to one month, YYYY-MM"`
	Type       string `query:"type" doc:"Restrict to income or expense"`
	CategoryID string `query:"categoryId" doc:"Restrict to one category"`
}

// ListTransactionsOutput is the Huma output for listing transactions.
type ListTransactionsOutput struct {
	Body []Transaction
}

// ListTransactionsHandler handles GET /transactions.
type ListTransactionsHandler struct {
	TransactionService transactionService
}

// NewListTransactionsHandler creates a new ListTransactionsHandler.
func NewListTransactionsHandler(svc transactionService) *ListTransactionsHandler {
	return &ListTransactionsHandler{TransactionService: svc}
}

// Register registers the list transactions endpoint with the Huma API.
func (h *ListTransactionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-transactions",
		Method:      http.MethodGet,
		Path:        "/transactions",
		Summary:     "List transactions",
		Description: "Returns the caller's transactions, newest first, with their category embedded.",
		Tags:        []string{"Transactions"},
		Security:    handlers.BearerAuth,
	}, h.handle)
}

// parseListTransactionsInput validates the optional filters. The month
// token itself is validated by the service.
func parseListTransactionsInput(input *ListTransactionsInput) (service.TransactionFilter, error) {
	filter := service.TransactionFilter{Month: input.Month}

	kind, err := handlers.ParseOptionalKind(input.Type)
	if err != nil {
		return filter, err
	}
	filter.Kind = kind

	categoryID, err := handlers.ParseOptionalUUID(input.CategoryID, "categoryId")
	if err != nil {
		return filter, err
	}
	filter.CategoryID = categoryID

	return filter, nil
}

func (h *ListTransactionsHandler) handle(ctx context.Context, input *ListTransactionsInput) (*ListTransactionsOutput, error) {
	userID, err := handlers.UserID(ctx)
	if err != nil {
		return nil, err
	}
	logData := logging.GetLogData(ctx)
	filter, err := parseListTransactionsInput(input)
	if err != nil {
		return nil, err
	}

	stopTimer := logData.AddTiming("listTransactionsMs")
	transactions, err := h.TransactionService.ListTransactions(ctx, userID, filter)
	stopTimer()
	if err != nil {
		return nil, handlers.Error(ctx, err, "failed to list transactions")
	}
	logData.AddData("transactionCount", len(transactions))

	out := &ListTransactionsOutput{Body: make([]Transaction, len(transactions))}
	for i := range transactions {
		out.Body[i] = toTransaction(&transactions[i])
	}
	return out, nil
}
