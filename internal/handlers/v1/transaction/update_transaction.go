package transaction

import (
	"context"
	"net/http"

	"github.com/aarondl/opt/omitnull"
	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-api/internal/handlers"
	"github.com/carson-networks/budget-api/internal/ledger"
	"github.com/carson-networks/budget-api/internal/logging"
	"github.com/carson-networks/budget-api/internal/service"
)

// NullableNote tells an omitted note apart from an explicit JSON null.
type NullableNote struct {
	omitnull.Val[string]
}

func (NullableNote) Schema(huma.Registry) *huma.Schema {
	return &huma.Schema{
		Type:        huma.TypeString,
		Nullable:    true,
		Description: "New note; null or a blank note clears it",
	}
}

// UpdateTransactionBody lists the fields to change. Omitted fields are kept.
type UpdateTransactionBody struct {
	CategoryID *string      `json:"categoryId,omitempty" doc:"Move to another category; the transaction adopts its type"`
	Amount     *float64     `json:"amount,omitempty" doc:"Integer amount in minor currency units, greater than zero"`
	Date       *string      `json:"date,omitempty" doc:"RFC 3339 date-time of the transaction"`
	Note       NullableNote `json:"note,omitempty,omitzero"`
}

type UpdateTransactionInput struct {
	ID   string `path:"id" doc:"Transaction UUID"`
	Body UpdateTransactionBody
}

type UpdateTransactionOutput struct {
	Body Transaction
}

// UpdateTransactionHandler handles PATCH /transactions/{id}.
type UpdateTransactionHandler struct {
	TransactionService transactionService
}

func NewUpdateTransactionHandler(svc transactionService) *UpdateTransactionHandler {
	return &UpdateTransactionHandler{TransactionService: svc}
}

func (h *UpdateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-transaction",
		Method:      http.MethodPatch,
		Path:        "/transactions/{id}",
		Summary:     "Update transaction",
		Tags:        []string{"Transactions"},
		Security:    handlers.BearerAuth,
	}, h.handle)
}

func parseUpdateTransactionInput(body *UpdateTransactionBody) (service.TransactionPatch, error) {
	var patch service.TransactionPatch

	if body.CategoryID != nil && *body.CategoryID != "" {
		categoryID, err := uuid.FromString(*body.CategoryID)
		if err != nil {
			return patch, huma.Error404NotFound(ledger.ErrCategoryNotFound.Error())
		}
		patch.CategoryID = &categoryID
	}
	if body.Amount != nil {
		amount, err := parseAmount(*body.Amount)
		if err != nil {
			return patch, err
		}
		patch.Amount = &amount
	}
	if body.Date != nil && *body.Date != "" {
		occurredAt, err := parseDate(*body.Date)
		if err != nil {
			return patch, err
		}
		patch.OccurredAt = &occurredAt
	}
	if note, ok := body.Note.Get(); ok {
		patch.Note = &note
	} else if !body.Note.IsUnset() {
		// An empty note normalizes to nothing, which clears the stored one.
		cleared := ""
		patch.Note = &cleared
	}

	return patch, nil
}

func (h *UpdateTransactionHandler) handle(ctx context.Context, input *UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	userID, err := handlers.UserID(ctx)
	if err != nil {
		return nil, err
	}
	id, err := handlers.ParseID(input.ID, ledger.ErrTransactionNotFound)
	if err != nil {
		return nil, err
	}
	patch, err := parseUpdateTransactionInput(&input.Body)
	if err != nil {
		return nil, err
	}

	stopTimer := logging.GetLogData(ctx).AddTiming("updateTransactionMs")
	updated, err := h.TransactionService.UpdateTransaction(ctx, userID, id, patch)
	stopTimer()
	if err != nil {
		return nil, handlers.Error(ctx, err, "failed to update transaction")
	}

	return &UpdateTransactionOutput{Body: toTransaction(updated)}, nil
}
