package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/budget-api/internal/auth"
	"github.com/carson-networks/budget-api/internal/ledger"
	"github.com/carson-networks/budget-api/internal/service"
)

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var se huma.StatusError
	require.True(t, errors.As(err, &se), "expected a huma status error, got %v", err)
	return se.GetStatus()
}

func TestError_Classes(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{ledger.ErrInvalidMonth, http.StatusBadRequest},
		{ledger.ErrMonthRequired, http.StatusBadRequest},
		{ledger.ErrKindMismatch, http.StatusBadRequest},
		{fmt.Errorf("wrapped: %w", ledger.ErrInvalidAmount), http.StatusBadRequest},
		{ledger.ErrCategoryNotFound, http.StatusNotFound},
		{ledger.ErrTransactionNotFound, http.StatusNotFound},
		{ledger.ErrCategoryExists, http.StatusConflict},
		{service.ErrProviderUnconfigured, http.StatusInternalServerError},
		{service.ErrProviderFailed, http.StatusInternalServerError},
		{errors.New("pq: connection refused"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, statusOf(t, Error(context.Background(), tc.err, "failed")), tc.err.Error())
	}
}

func TestError_HidesUnknownCause(t *testing.T) {
	err := Error(context.Background(), errors.New("pq: password authentication failed"), "failed to list")
	assert.NotContains(t, err.Error(), "password")
}

func TestParseID(t *testing.T) {
	_, err := ParseID("nope", ledger.ErrCategoryNotFound)
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))

	id, err := ParseID("6ba7b810-9dad-11d1-80b4-00c04fd430c8", ledger.ErrCategoryNotFound)
	require.NoError(t, err)
	assert.Equal(t, "6ba7b810-9dad-11d1-80b4-00c04fd430c8", id.String())
}

func TestParseOptionalKind(t *testing.T) {
	kind, err := ParseOptionalKind("")
	assert.NoError(t, err)
	assert.Nil(t, kind)

	kind, err = ParseOptionalKind("income")
	require.NoError(t, err)
	assert.Equal(t, ledger.KindIncome, *kind)

	_, err = ParseOptionalKind("transfer")
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
}

func TestParseOptionalUUID(t *testing.T) {
	id, err := ParseOptionalUUID("", "categoryId")
	assert.NoError(t, err)
	assert.Nil(t, id)

	_, err = ParseOptionalUUID("zzz", "categoryId")
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
}

func TestUserID(t *testing.T) {
	_, err := UserID(context.Background())
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))

	userID, err := UserID(auth.ContextWithUserID(context.Background(), "user-1"))
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}
