package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T) string {
	t.Helper()
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func TestMetricsExposed(t *testing.T) {
	ObserveHandler("get-summary", http.StatusOK, 20*time.Millisecond)
	AISummaryOutcome(OutcomeRateLimited)
	ObserveAction("create-category", nil, time.Millisecond)
	ObserveAction("delete-transaction", errors.New("not found"), time.Millisecond)
	SetQueueDepth(3)

	body := scrape(t)

	assert.Contains(t, body, `budget_handler_duration_seconds_count{operation="get-summary",status="200"}`)
	assert.Contains(t, body, `budget_ai_summary_total{outcome="rate_limited"}`)
	assert.Contains(t, body, `budget_operator_action_duration_seconds_count{action="create-category",result="committed"}`)
	assert.Contains(t, body, `budget_operator_action_duration_seconds_count{action="delete-transaction",result="failed"}`)
	assert.Contains(t, body, "budget_operator_queue_depth 3")
}
