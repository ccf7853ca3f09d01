package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-api/internal/auth"
	"github.com/carson-networks/budget-api/internal/ledger"
	"github.com/carson-networks/budget-api/internal/logging"
	"github.com/carson-networks/budget-api/internal/service"
)

// BearerAuth marks an operation as requiring a bearer token.
var BearerAuth = []map[string][]string{{auth.SecurityScheme: {}}}

var badRequest = []error{
	ledger.ErrInvalidMonth,
	ledger.ErrMonthRequired,
	ledger.ErrInvalidKind,
	ledger.ErrInvalidAmount,
	ledger.ErrInvalidName,
	ledger.ErrNoteTooLong,
	ledger.ErrKindMismatch,
}

// Error converts a service error into a Huma problem response. Errors
// without a known class become a 500 with msg, and the cause is kept for
// the request log only.
func Error(ctx context.Context, err error, msg string) error {
	logging.GetLogData(ctx).SetError(err)

	for _, target := range badRequest {
		if errors.Is(err, target) {
			return huma.Error400BadRequest(target.Error())
		}
	}

	switch {
	case errors.Is(err, ledger.ErrCategoryNotFound):
		return huma.Error404NotFound(ledger.ErrCategoryNotFound.Error())
	case errors.Is(err, ledger.ErrTransactionNotFound):
		return huma.Error404NotFound(ledger.ErrTransactionNotFound.Error())
	case errors.Is(err, ledger.ErrCategoryExists):
		return huma.Error409Conflict(ledger.ErrCategoryExists.Error())
	case errors.Is(err, service.ErrProviderUnconfigured):
		return huma.Error500InternalServerError(service.ErrProviderUnconfigured.Error())
	case errors.Is(err, service.ErrProviderFailed):
		return huma.Error500InternalServerError("AI_SUMMARY_FAILED")
	default:
		return huma.NewError(http.StatusInternalServerError, msg)
	}
}

// ParseID parses a path id. Malformed ids are reported as notFound so the
// response does not reveal anything about other users' records.
func ParseID(raw string, notFound error) (uuid.UUID, error) {
	id, err := uuid.FromString(raw)
	if err != nil {
		return uuid.Nil, huma.Error404NotFound(notFound.Error())
	}
	return id, nil
}

// ParseOptionalKind parses an optional type query value.
func ParseOptionalKind(raw string) (*ledger.Kind, error) {
	if raw == "" {
		return nil, nil
	}
	kind, err := ledger.ParseKind(raw)
	if err != nil {
		return nil, huma.Error400BadRequest(err.Error())
	}
	return &kind, nil
}

// ParseOptionalUUID parses an optional id query value.
func ParseOptionalUUID(raw, field string) (*uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.FromString(raw)
	if err != nil {
		return nil, huma.Error400BadRequest("invalid " + field)
	}
	return &id, nil
}

// UserID returns the authenticated caller, or a 401 if the auth middleware
// did not run.
func UserID(ctx context.Context) (string, error) {
	userID := auth.UserID(ctx)
	if userID == "" {
		return "", huma.Error401Unauthorized("Unauthorized")
	}
	return userID, nil
}
