package nbb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/vatscope/internal/httpclient"
	"github.com/ternarybob/vatscope/internal/models"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the base URL for the CBSO consult API.
	DefaultBaseURL = "https://consult.cbso.nbb.be/api"

	// DefaultTimeout is the default HTTP timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultRateLimit is the default rate limit (requests per second).
	DefaultRateLimit = 5

	// DefaultPageSize is the number of deposits requested per enterprise.
	DefaultPageSize = 10

	// maxDocumentSize caps the body read for a single deposit document.
	maxDocumentSize = 64 << 20
)

// Client is a CBSO consult API client.
type Client struct {
	baseURL      string
	pageSize     int
	rotateAgents bool
	httpClient   *http.Client
	logger       arbor.ILogger
	limiter      *rate.Limiter
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithBaseURL sets a custom base URL.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger sets a logger.
func WithLogger(logger arbor.ILogger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets a custom rate limit.
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithPageSize sets the number of deposits requested per enterprise.
func WithPageSize(size int) ClientOption {
	return func(c *Client) {
		if size > 0 {
			c.pageSize = size
		}
	}
}

// WithUserAgentRotation toggles random browser user agents.
func WithUserAgentRotation(enabled bool) ClientOption {
	return func(c *Client) {
		c.rotateAgents = enabled
	}
}

// NewClient creates a new CBSO consult API client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL:      DefaultBaseURL,
		pageSize:     DefaultPageSize,
		rotateAgents: true,
		httpClient:   httpclient.NewDefaultHTTPClient(DefaultTimeout),
		limiter:      rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// do performs a GET request and returns the body of a 200 answer.
func (c *Client) do(ctx context.Context, path string, params url.Values, accept string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &RateLimitError{RetryAfter: time.Second}
	}

	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", accept)
	httpclient.ApplyBrowserHeaders(req, c.rotateAgents)

	if c.logger != nil {
		c.logger.Debug().
			Str("url", c.baseURL+path).
			Msg("NBB API request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   path,
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return body, nil
}

// ListDeposits returns the published deposits of an enterprise, most recent period first.
// The ordering is requested from the API and not re-checked here.
func (c *Client) ListDeposits(ctx context.Context, vatNumber string) ([]models.Deposit, error) {
	params := url.Values{}
	params.Set("page", "0")
	params.Set("size", strconv.Itoa(c.pageSize))
	params.Set("enterpriseNumber", vatNumber)
	params.Add("sort", "periodEndDate,desc")
	params.Add("sort", "depositDate,desc")

	body, err := c.do(ctx, "/rs-consult/published-deposits", params, "application/json")
	if err != nil {
		return nil, err
	}

	var result DepositsResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	deposits := make([]models.Deposit, 0, len(result.Content))
	for _, item := range result.Content {
		deposit, ok := item.ToDeposit()
		if !ok {
			if c.logger != nil {
				c.logger.Warn().
					Str("vat_number", vatNumber).
					Str("deposit_id", item.ID).
					Str("period_end_date", item.PeriodEndDate).
					Msg("Skipping deposit with unreadable period end date")
			}
			continue
		}
		deposits = append(deposits, deposit)
	}

	return deposits, nil
}

// FetchCSV downloads the CSV rendition of a deposit.
func (c *Client) FetchCSV(ctx context.Context, depositID string) (models.Document, error) {
	path := "/external/broker/public/deposits/consult/csv/" + url.PathEscape(depositID)
	body, err := c.do(ctx, path, nil, "text/csv, */*")
	if err != nil {
		return models.Document{}, err
	}
	return models.NewCSVDocument(c.baseURL+path, string(body)), nil
}

// FetchPDF downloads the PDF of a deposit. Only a 200 answer yields a document.
func (c *Client) FetchPDF(ctx context.Context, depositID string) (models.Document, error) {
	path := "/external/broker/public/deposits/pdf/" + url.PathEscape(depositID)
	body, err := c.do(ctx, path, nil, "application/pdf")
	if err != nil {
		return models.Document{}, err
	}
	return models.NewPDFDocument(c.baseURL+path, body), nil
}
