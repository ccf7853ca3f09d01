package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/budget-api/internal/ledger"
	"github.com/carson-networks/budget-api/internal/logging"
	"github.com/carson-networks/budget-api/internal/metrics"
	"github.com/carson-networks/budget-api/internal/provider"
)

const (
	defaultCurrency  = "GBP"
	defaultAITimeout = 30 * time.Second

	// ReasonRateLimited marks a degraded narration caused by provider limits.
	ReasonRateLimited = "rate_limited"
	// RateLimitedMessage is shown instead of a narration when the provider is rate limited.
	RateLimitedMessage = "AI summary is temporarily unavailable due to usage limits. Please try again later."

	narrationInputPrefix = "Here is the user's monthly budget data (JSON):\n"
)

var (
	// ErrProviderUnconfigured is returned when no provider credential is set.
	ErrProviderUnconfigured = errors.New("AI provider is not configured")
	// ErrProviderFailed is returned for provider outcomes other than success or rate limiting.
	ErrProviderFailed = errors.New("AI summary failed")
)

// NarrationTotals carries the month's totals as two-decimal strings.
type NarrationTotals struct {
	Income  string `json:"income"`
	Expense string `json:"expense"`
	Net     string `json:"net"`
}

// NarrationCategory is one entry of the top spend list.
type NarrationCategory struct {
	Category string `json:"category"`
	Amount   string `json:"amount"`
}

// NarrationInput is the payload sent to the provider. It holds no raw
// minor-unit amounts.
type NarrationInput struct {
	Month    string              `json:"month"`
	Currency string              `json:"currency"`
	Totals   NarrationTotals     `json:"totals"`
	TopSpend []NarrationCategory `json:"topSpend"`
}

// NarrationResult is either generated text or a degraded notice with
// Fallback set.
type NarrationResult struct {
	Month    string
	Text     string
	Fallback bool
	Reason   string
	Input    *NarrationInput
}

// AISummaryService turns a monthly aggregate into a natural-language summary.
type AISummaryService struct {
	summary   *SummaryService
	generator provider.Generator
	currency  string
	timeout   time.Duration
	logger    logrus.FieldLogger
}

func NewAISummaryService(summary *SummaryService, opts Options) *AISummaryService {
	if opts.Currency == "" {
		opts.Currency = defaultCurrency
	}
	if opts.AITimeout <= 0 {
		opts.AITimeout = defaultAITimeout
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	return &AISummaryService{
		summary:   summary,
		generator: opts.Generator,
		currency:  opts.Currency,
		timeout:   opts.AITimeout,
		logger:    opts.Logger,
	}
}

// Instructions is the fixed system instruction sent with every request.
func (s *AISummaryService) Instructions() string {
	return "You are a personal finance assistant. Summarize the user's month clearly and practically. " +
		fmt.Sprintf("Be concise, use %s, and give 3 actionable recommendations. ", s.currency) +
		"Return JSON with keys: headline, bullets (array), recommendations (array)."
}

// GetAISummary builds the narration input for month and makes exactly one
// provider call. Rate limiting yields a degraded result rather than an error.
func (s *AISummaryService) GetAISummary(ctx context.Context, userID, month string) (*NarrationResult, error) {
	if s.generator == nil {
		metrics.AISummaryOutcome(metrics.OutcomeUnconfigured)
		return nil, ErrProviderUnconfigured
	}

	rng, err := parseRequiredMonth(month)
	if err != nil {
		return nil, err
	}
	agg, err := s.summary.aggregate(ctx, userID, rng)
	if err != nil {
		return nil, err
	}

	input := s.buildInput(agg)
	payload, err := json.Marshal(input)
	if err != nil {
		return nil, err
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	logData := logging.GetLogData(ctx)
	stopTimer := logData.AddTiming("providerMs")
	result := s.generator.Generate(callCtx, &provider.Request{
		Instructions: s.Instructions(),
		Input:        narrationInputPrefix + string(payload),
	})
	stopTimer()
	logData.AddData("providerOutcome", result.Status.String())

	switch result.Status {
	case provider.StatusSucceeded:
		metrics.AISummaryOutcome(metrics.OutcomeSucceeded)
		return &NarrationResult{
			Month: rng.Token,
			Text:  strings.TrimSpace(result.Text),
			Input: input,
		}, nil
	case provider.StatusRateLimited:
		metrics.AISummaryOutcome(metrics.OutcomeRateLimited)
		s.logger.WithError(result.Err).WithField("month", rng.Token).Warn("AISummary.RateLimited")
		return &NarrationResult{
			Month:    rng.Token,
			Text:     RateLimitedMessage,
			Fallback: true,
			Reason:   ReasonRateLimited,
		}, nil
	case provider.StatusUnauthorized:
		metrics.AISummaryOutcome(metrics.OutcomeUnauthorized)
	default:
		metrics.AISummaryOutcome(metrics.OutcomeFailed)
	}

	s.logger.WithError(result.Err).WithFields(logrus.Fields{
		"month":   rng.Token,
		"outcome": result.Status.String(),
	}).Error("AISummary.ProviderFailed")
	return nil, ErrProviderFailed
}

func (s *AISummaryService) buildInput(agg *ledger.MonthlyAggregate) *NarrationInput {
	top := agg.TopSpend(ledger.NarrationCategoryLimit)
	input := &NarrationInput{
		Month:    agg.Month,
		Currency: s.currency,
		Totals: NarrationTotals{
			Income:  agg.TotalIncome.Major(),
			Expense: agg.TotalExpense.Major(),
			Net:     agg.Net.Major(),
		},
		TopSpend: make([]NarrationCategory, len(top)),
	}
	for i, c := range top {
		input.TopSpend[i] = NarrationCategory{Category: c.CategoryName, Amount: c.Amount.Major()}
	}
	return input
}
