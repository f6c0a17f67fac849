package kbo

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/vatscope/internal/httpclient"
	"github.com/ternarybob/vatscope/internal/interfaces"
	"github.com/ternarybob/vatscope/internal/models"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the base URL of the public registry search.
	DefaultBaseURL = "https://kbopub.economie.fgov.be/kbopub"

	// DefaultTimeout is the default HTTP timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultRateLimit is the default rate limit (requests per second).
	DefaultRateLimit = 2

	// DefaultLanguage is the language of the registry pages.
	DefaultLanguage = "fr"

	maxPageSize = 8 << 20
)

// Client reads company pages from the registry site.
type Client struct {
	baseURL    string
	language   string
	httpClient *http.Client
	logger     arbor.ILogger
	limiter    *rate.Limiter
	markdown   interfaces.TransformService
}

// Compile-time assertion
var _ interfaces.RegistryProvider = (*Client)(nil)

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithBaseURL sets a custom base URL.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithLanguage sets the page language (fr, nl, de, en).
func WithLanguage(language string) ClientOption {
	return func(c *Client) {
		if language != "" {
			c.language = language
		}
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

// WithMarkdownConverter renders the entity page as markdown into the company record.
func WithMarkdownConverter(converter interfaces.TransformService) ClientOption {
	return func(c *Client) {
		c.markdown = converter
	}
}

// NewClient creates a new registry client.
func NewClient(opts ...ClientOption) *Client {
	httpClient, err := httpclient.NewBrowserHTTPClient(DefaultTimeout)
	if err != nil {
		httpClient = httpclient.NewDefaultHTTPClient(DefaultTimeout)
	}

	c := &Client{
		baseURL:    DefaultBaseURL,
		language:   DefaultLanguage,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// EntityURL returns the registry page of an enterprise.
func (c *Client) EntityURL(vatNumber string) string {
	params := url.Values{}
	params.Set("lang", c.language)
	params.Set("nummer", vatNumber)
	return c.baseURL + "/zoeknummerform.html?" + params.Encode()
}

// EstablishmentsURL returns the establishment list page of an enterprise.
func (c *Client) EstablishmentsURL(vatNumber string) string {
	params := url.Values{}
	params.Set("lang", c.language)
	params.Set("ondernemingsnummer", vatNumber)
	return c.baseURL + "/vestiginglijst.html?" + params.Encode()
}

// fetch downloads a registry page as an HTML document.
func (c *Client) fetch(ctx context.Context, pageURL string) (models.Document, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return models.Document{}, &RateLimitError{RetryAfter: time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return models.Document{}, fmt.Errorf("failed to create request: %w", err)
	}
	httpclient.ApplyBrowserHeaders(req, true)

	if c.logger != nil {
		c.logger.Debug().Str("url", pageURL).Msg("KBO request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.Document{}, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return models.Document{}, &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   req.URL.Path,
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageSize))
	if err != nil {
		return models.Document{}, fmt.Errorf("failed to read response: %w", err)
	}
	return models.NewHTMLDocument(pageURL, string(body)), nil
}

// FetchGeneralInformation returns the identity, address and activity codes of an enterprise.
func (c *Client) FetchGeneralInformation(ctx context.Context, vatNumber string) (*models.Company, error) {
	doc, err := c.fetch(ctx, c.EntityURL(vatNumber))
	if err != nil {
		return nil, err
	}

	company, err := ParseEntityPage(doc.Text)
	if err != nil {
		return nil, fmt.Errorf("enterprise %s: %w", vatNumber, err)
	}
	company.VATNumber = vatNumber

	if c.markdown != nil {
		markdown, err := c.markdown.HTMLToMarkdown(EntityTablesHTML(doc.Text), c.baseURL)
		if err != nil {
			if c.logger != nil {
				c.logger.Warn().Err(err).Str("vat_number", vatNumber).Msg("Failed to render entity page as markdown")
			}
		} else {
			company.GeneralInformation = markdown
		}
	}

	return company, nil
}

// FetchEstablishmentUnits returns the establishment units of an enterprise.
func (c *Client) FetchEstablishmentUnits(ctx context.Context, vatNumber string) ([]models.EstablishmentUnit, error) {
	doc, err := c.fetch(ctx, c.EstablishmentsURL(vatNumber))
	if err != nil {
		return nil, err
	}

	units, err := ParseEstablishmentUnits(doc.Text)
	if err != nil {
		return nil, fmt.Errorf("enterprise %s: %w", vatNumber, err)
	}

	if c.logger != nil {
		c.logger.Debug().Str("vat_number", vatNumber).Int("units", len(units)).Msg("Establishment units parsed")
	}
	return units, nil
}
