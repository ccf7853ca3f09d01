package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Narration outcomes recorded by AISummaryOutcome.
const (
	OutcomeSucceeded    = "succeeded"
	OutcomeRateLimited  = "rate_limited"
	OutcomeUnauthorized = "unauthorized"
	OutcomeFailed       = "failed"
	OutcomeUnconfigured = "unconfigured"
)

var (
	handlerDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "budget_handler_duration_seconds",
			Help:    "Duration of API operations",
			Buckets: []float64{.005, .01, .05, .1, .25, .5, 1, 2, 5, 10, 30},
		},
		[]string{"operation", "status"},
	)

	aiSummaryTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "budget_ai_summary_total",
			Help: "Monthly narration requests by provider outcome",
		},
		[]string{"outcome"},
	)

	actionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "budget_operator_action_duration_seconds",
			Help:    "Duration of write actions including commit",
			Buckets: []float64{.001, .005, .01, .05, .1, .25, .5, 1, 5},
		},
		[]string{"action", "result"},
	)

	queueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "budget_operator_queue_depth",
			Help: "Write actions waiting for a worker",
		},
	)
)

// ObserveHandler records one finished API operation.
func ObserveHandler(operationID string, status int, elapsed time.Duration) {
	handlerDuration.WithLabelValues(operationID, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

// AISummaryOutcome counts one narration attempt.
func AISummaryOutcome(outcome string) {
	aiSummaryTotal.WithLabelValues(outcome).Inc()
}

// ObserveAction records one write action. err is the value returned to the
// caller; nil counts as committed.
func ObserveAction(action string, err error, elapsed time.Duration) {
	result := "committed"
	if err != nil {
		result = "failed"
	}
	actionDuration.WithLabelValues(action, result).Observe(elapsed.Seconds())
}

// SetQueueDepth publishes the number of queued write actions.
func SetQueueDepth(n int) {
	queueDepth.Set(float64(n))
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
