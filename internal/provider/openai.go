package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/budget-api/internal/logging"
)

const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "gpt-4.1-mini"

	responsesEndpoint   = "/responses"
	insufficientQuota   = "insufficient_quota"
	outputTextPartType  = "output_text"
	maxErrorBodyPreview = 512
)

// OpenAIOptions configures the Responses API adapter.
type OpenAIOptions struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
	Logger     logrus.FieldLogger
}

// OpenAI calls the OpenAI Responses API.
type OpenAI struct {
	apiKey  string
	model   string
	baseURL string
	client  *retryablehttp.Client
	logger  logrus.FieldLogger
}

var _ Generator = (*OpenAI)(nil)

func NewOpenAI(opts *OpenAIOptions) *OpenAI {
	if opts == nil {
		opts = &OpenAIOptions{}
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Model == "" {
		opts.Model = DefaultModel
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: 60 * time.Second}
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}

	client := retryablehttp.NewClient()
	client.HTTPClient = opts.HTTPClient
	client.RetryMax = 0
	client.CheckRetry = func(context.Context, *http.Response, error) (bool, error) {
		return false, nil
	}
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler
	client.Logger = logging.NewRetryLogger(opts.Logger)

	return &OpenAI{
		apiKey:  opts.APIKey,
		model:   opts.Model,
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		client:  client,
		logger:  opts.Logger,
	}
}

type responsesMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responsesRequest struct {
	Model string             `json:"model"`
	Input []responsesMessage `json:"input"`
}

type responsesContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type responsesOutput struct {
	Type    string             `json:"type"`
	Content []responsesContent `json:"content"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    string `json:"code"`
}

type responsesResponse struct {
	Output []responsesOutput `json:"output"`
	Error  *apiError         `json:"error"`
}

// Generate sends one Responses API request and classifies the outcome.
func (o *OpenAI) Generate(ctx context.Context, req *Request) *Result {
	body, err := json.Marshal(&responsesRequest{
		Model: o.model,
		Input: []responsesMessage{
			{Role: "system", Content: req.Instructions},
			{Role: "user", Content: req.Input},
		},
	})
	if err != nil {
		return failed(StatusFailed, errors.Wrap(err, "failed to marshal request"))
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+responsesEndpoint, bytes.NewReader(body))
	if err != nil {
		return failed(StatusFailed, errors.Wrap(err, "failed to create request"))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+o.apiKey)

	start := time.Now()
	resp, err := o.client.Do(httpReq)
	if err != nil {
		return failed(StatusFailed, errors.Wrap(err, "request failed"))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return failed(StatusFailed, errors.Wrap(err, "failed to read response"))
	}

	o.logger.WithFields(logrus.Fields{
		"status":     resp.StatusCode,
		"durationMs": time.Since(start).Milliseconds(),
		"size":       len(respBody),
	}).Debug("OpenAI.Generate.response")

	var parsed responsesResponse
	parseErr := json.Unmarshal(respBody, &parsed)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return classifyHTTPError(resp.StatusCode, parsed.Error, respBody)
	}
	if parseErr != nil {
		return failed(StatusFailed, errors.Wrap(parseErr, "failed to parse response"))
	}
	if parsed.Error != nil {
		return classifyHTTPError(resp.StatusCode, parsed.Error, respBody)
	}

	return succeeded(strings.TrimSpace(outputText(parsed.Output)))
}

// outputText concatenates every output_text part across output messages.
func outputText(outputs []responsesOutput) string {
	var sb strings.Builder
	for _, out := range outputs {
		for _, part := range out.Content {
			if part.Type == outputTextPartType {
				sb.WriteString(part.Text)
			}
		}
	}
	return sb.String()
}

func classifyHTTPError(statusCode int, apiErr *apiError, body []byte) *Result {
	msg := ""
	if apiErr != nil {
		msg = apiErr.Message
		if apiErr.Code == insufficientQuota {
			return failed(StatusRateLimited, fmt.Errorf("quota exhausted (%d): %s", statusCode, msg))
		}
	}
	if msg == "" {
		msg = preview(body)
	}

	switch statusCode {
	case http.StatusTooManyRequests:
		return failed(StatusRateLimited, fmt.Errorf("rate limited: %s", msg))
	case http.StatusUnauthorized, http.StatusForbidden:
		return failed(StatusUnauthorized, fmt.Errorf("provider rejected credentials (%d): %s", statusCode, msg))
	default:
		return failed(StatusFailed, fmt.Errorf("provider error (%d): %s", statusCode, msg))
	}
}

func preview(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxErrorBodyPreview {
		return s[:maxErrorBodyPreview] + "..."
	}
	return s
}
