package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-api/internal/handlers"
	"github.com/carson-networks/budget-api/internal/ledger"
	"github.com/carson-networks/budget-api/internal/logging"
	"github.com/carson-networks/budget-api/internal/service"
)

// CreateTransactionBody is the request body for creating a transaction.
type CreateTransactionBody struct {
	CategoryID string   `json:"categoryId,omitempty" doc:"Category UUID, must belong to the caller"`
	Type       string   `json:"type,omitempty" doc:"income or expense, must match the category"`
	Amount     *float64 `json:"amount,omitempty" doc:"Integer amount in minor currency units, greater than zero"`
	Date       string   `json:"date,omitempty" doc:"RFC 3339 date-time of the transaction"`
	Note       *string  `json:"note,omitempty" nullable:"true" doc:"Optional note, at most 200 characters"`
}

// CreateTransactionInput is the Huma input for creating a transaction.
type CreateTransactionInput struct {
	Body CreateTransactionBody
}

// CreateTransactionOutput is the Huma output for creating a transaction.
type CreateTransactionOutput struct {
	Body Transaction
}

// CreateTransactionHandler handles POST /transactions.
type CreateTransactionHandler struct {
	TransactionService transactionService
}

// NewCreateTransactionHandler creates a new CreateTransactionHandler.
func NewCreateTransactionHandler(svc transactionService) *CreateTransactionHandler {
	return &CreateTransactionHandler{TransactionService: svc}
}

// Register registers the create transaction endpoint with the Huma API.
func (h *CreateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-transaction",
		Method:        http.MethodPost,
		Path:          "/transactions",
		Summary:       "Create transaction",
		Description:   "Records a transaction against one of the caller's categories.",
		Tags:          []string{"Transactions"},
		DefaultStatus: http.StatusCreated,
		Security:      handlers.BearerAuth,
	}, h.handle)
}

// parseCreateTransactionInput checks that every required field is present
// and well formed. Ownership and kind checks happen in the service.
func parseCreateTransactionInput(input *CreateTransactionInput) (service.NewTransaction, error) {
	body := input.Body
	if body.CategoryID == "" || body.Type == "" || body.Amount == nil || body.Date == "" {
		return service.NewTransaction{}, huma.Error400BadRequest("categoryId, type, amount, date are required")
	}

	categoryID, err := uuid.FromString(body.CategoryID)
	if err != nil {
		return service.NewTransaction{}, huma.Error404NotFound(ledger.ErrCategoryNotFound.Error())
	}
	kind, err := ledger.ParseKind(body.Type)
	if err != nil {
		return service.NewTransaction{}, huma.Error400BadRequest(err.Error())
	}
	amount, err := parseAmount(*body.Amount)
	if err != nil {
		return service.NewTransaction{}, err
	}
	occurredAt, err := parseDate(body.Date)
	if err != nil {
		return service.NewTransaction{}, err
	}

	return service.NewTransaction{
		CategoryID: categoryID,
		Kind:       kind,
		Amount:     amount,
		OccurredAt: occurredAt,
		Note:       body.Note,
	}, nil
}

func (h *CreateTransactionHandler) handle(ctx context.Context, input *CreateTransactionInput) (*CreateTransactionOutput, error) {
	userID, err := handlers.UserID(ctx)
	if err != nil {
		return nil, err
	}
	in, err := parseCreateTransactionInput(input)
	if err != nil {
		return nil, err
	}

	stopTimer := logging.GetLogData(ctx).AddTiming("createTransactionMs")
	created, err := h.TransactionService.CreateTransaction(ctx, userID, in)
	stopTimer()
	if err != nil {
		return nil, handlers.Error(ctx, err, "failed to create transaction")
	}

	return &CreateTransactionOutput{Body: toTransaction(created)}, nil
}
