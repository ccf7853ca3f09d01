package budgetclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/budget-api/internal/logging"
)

const (
	DefaultBaseURL = "http://localhost:4000"
	DefaultTimeout = 60 * time.Second

	contentType = "application/json"
)

type Options struct {
	BaseURL    string
	HTTPClient *http.Client
	// RetryMax bounds retries of GET requests; zero disables them. Writes
	// are never retried.
	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
	Logger       logrus.FieldLogger
}

// Client talks to the budget API. It holds no credentials; every call
// takes the caller's Session.
type Client struct {
	baseURL string
	reads   *retryablehttp.Client
	writes  *retryablehttp.Client
}

func New(opts *Options) *Client {
	if opts == nil {
		opts = &Options{}
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: DefaultTimeout}
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}

	reads := retryablehttp.NewClient()
	reads.HTTPClient = opts.HTTPClient
	reads.RetryMax = opts.RetryMax
	if opts.RetryWaitMin > 0 {
		reads.RetryWaitMin = opts.RetryWaitMin
	}
	if opts.RetryWaitMax > 0 {
		reads.RetryWaitMax = opts.RetryWaitMax
	}
	reads.ErrorHandler = retryablehttp.PassthroughErrorHandler
	reads.Logger = logging.NewRetryLogger(opts.Logger)

	writes := retryablehttp.NewClient()
	writes.HTTPClient = opts.HTTPClient
	writes.RetryMax = 0
	writes.CheckRetry = func(context.Context, *http.Response, error) (bool, error) {
		return false, nil
	}
	writes.ErrorHandler = retryablehttp.PassthroughErrorHandler
	writes.Logger = reads.Logger

	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		reads:   reads,
		writes:  writes,
	}
}

// Status calls the unauthenticated health check. A 500 with a decodable
// body is returned as a Status with OK false.
func (c *Client) Status(ctx context.Context) (*Status, error) {
	resp, err := c.send(ctx, nil, http.MethodGet, "/status", nil, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out Status
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, errors.Wrapf(err, "decode status (HTTP %d)", resp.StatusCode)
	}
	return &out, nil
}

func (c *Client) ListCategories(ctx context.Context, s *Session) ([]Category, error) {
	var out []Category
	err := c.do(ctx, s, http.MethodGet, "/categories", nil, nil, &out)
	return out, err
}

func (c *Client) CreateCategory(ctx context.Context, s *Session, kind, name string) (*Category, error) {
	var out Category
	body := map[string]string{"type": kind, "name": name}
	if err := c.do(ctx, s, http.MethodPost, "/categories", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RenameCategory(ctx context.Context, s *Session, id uuid.UUID, name string) (*Category, error) {
	var out Category
	body := map[string]string{"name": name}
	if err := c.do(ctx, s, http.MethodPatch, "/categories/"+id.String(), nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteCategory(ctx context.Context, s *Session, id uuid.UUID) error {
	return c.do(ctx, s, http.MethodDelete, "/categories/"+id.String(), nil, nil, nil)
}

func (c *Client) ListTransactions(ctx context.Context, s *Session, q TransactionQuery) ([]Transaction, error) {
	var out []Transaction
	err := c.do(ctx, s, http.MethodGet, "/transactions", q.values(), nil, &out)
	return out, err
}

func (c *Client) CreateTransaction(ctx context.Context, s *Session, in NewTransaction) (*Transaction, error) {
	in.Date = in.Date.UTC()
	var out Transaction
	if err := c.do(ctx, s, http.MethodPost, "/transactions", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateTransaction(ctx context.Context, s *Session, id uuid.UUID, patch TransactionPatch) (*Transaction, error) {
	if patch.Date != nil {
		d := patch.Date.UTC()
		patch.Date = &d
	}
	var out Transaction
	if err := c.do(ctx, s, http.MethodPatch, "/transactions/"+id.String(), nil, patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteTransaction(ctx context.Context, s *Session, id uuid.UUID) error {
	return c.do(ctx, s, http.MethodDelete, "/transactions/"+id.String(), nil, nil, nil)
}

func (c *Client) Summary(ctx context.Context, s *Session, month string) (*Summary, error) {
	var out Summary
	if err := c.do(ctx, s, http.MethodGet, "/summary", url.Values{"month": {month}}, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AISummary(ctx context.Context, s *Session, month string) (*AISummary, error) {
	var out AISummary
	if err := c.do(ctx, s, http.MethodGet, "/ai/summary", url.Values{"month": {month}}, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ExportTransactions downloads the CSV export. q.Month is required by the API.
func (c *Client) ExportTransactions(ctx context.Context, s *Session, q TransactionQuery) (*Export, error) {
	if s.Token() == "" {
		return nil, ErrNotAuthenticated
	}
	resp, err := c.send(ctx, s, http.MethodGet, "/export/transactions.csv", q.values(), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := c.checkStatus(s, resp); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read export")
	}

	out := &Export{Data: data, Filename: "transactions_" + q.Month + ".csv"}
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil && params["filename"] != "" {
		out.Filename = params["filename"]
	}
	return out, nil
}

func (q TransactionQuery) values() url.Values {
	v := url.Values{}
	if q.Month != "" {
		v.Set("month", q.Month)
	}
	if q.Type != "" {
		v.Set("type", q.Type)
	}
	if q.CategoryID != uuid.Nil {
		v.Set("categoryId", q.CategoryID.String())
	}
	return v
}

// do sends a JSON request and decodes a JSON response into out.
func (c *Client) do(ctx context.Context, s *Session, method, path string, query url.Values, body, out interface{}) error {
	if s.Token() == "" {
		return ErrNotAuthenticated
	}
	resp, err := c.send(ctx, s, method, path, query, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := c.checkStatus(s, resp); err != nil {
		return err
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "failed to parse response")
	}
	return nil
}

func (c *Client) send(ctx context.Context, s *Session, method, path string, query url.Values, body interface{}) (*http.Response, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal request")
		}
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := retryablehttp.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Accept", contentType)
	if payload != nil {
		req.Header.Set("Content-Type", contentType)
	}
	if token := s.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := c.writes
	if method == http.MethodGet {
		client = c.reads
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s", method, path)
	}
	return resp, nil
}

// checkStatus maps error responses onto the package's sentinel errors and
// clears the session on 401.
func (c *Client) checkStatus(s *Session, resp *http.Response) error {
	if resp.StatusCode < http.StatusBadRequest {
		return nil
	}

	var problem struct {
		Title  string `json:"title"`
		Detail string `json:"detail"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	_ = json.Unmarshal(raw, &problem)

	apiErr := &Error{StatusCode: resp.StatusCode, Title: problem.Title, Detail: problem.Detail}
	if apiErr.Title == "" {
		apiErr.Title = http.StatusText(resp.StatusCode)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		if s != nil {
			s.Clear()
		}
		apiErr.Err = ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		apiErr.Err = ErrNotFound
	case resp.StatusCode == http.StatusConflict:
		apiErr.Err = ErrConflict
	case resp.StatusCode >= http.StatusInternalServerError:
		apiErr.Err = ErrServerError
	default:
		apiErr.Err = ErrInvalid
	}
	return apiErr
}
