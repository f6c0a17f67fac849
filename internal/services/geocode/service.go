package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/vatscope/internal/httpclient"
	"github.com/ternarybob/vatscope/internal/interfaces"
	"github.com/ternarybob/vatscope/internal/models"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the public Nominatim instance
	DefaultBaseURL = "https://nominatim.openstreetmap.org"

	// DefaultTimeout is the default HTTP timeout
	DefaultTimeout = 10 * time.Second
)

// Service resolves addresses through the Nominatim search API
type Service struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     arbor.ILogger
}

// Compile-time assertion
var _ interfaces.Geocoder = (*Service)(nil)

// NewService creates a Nominatim geocoder. The public instance allows one request
// per second, requestsPerSecond below 1 is raised to 1.
func NewService(baseURL string, timeout time.Duration, requestsPerSecond int, logger arbor.ILogger) *Service {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if requestsPerSecond < 1 {
		requestsPerSecond = 1
	}
	return &Service{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpclient.NewDefaultHTTPClient(timeout),
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		logger:     logger,
	}
}

// Lookup returns the country and province of the first search result for address
func (s *Service) Lookup(ctx context.Context, address string) (*models.GeoLocation, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, ErrAddressNotFound
	}

	results, err := s.search(ctx, address)
	if err != nil {
		return nil, err
	}

	for _, result := range results {
		if result.Address == nil {
			continue
		}
		location := &models.GeoLocation{
			Country:   result.Address.Country,
			Province:  result.Address.State,
			Latitude:  coordinate(result.Lat),
			Longitude: coordinate(result.Lon),
		}
		s.logger.Debug().
			Str("address", address).
			Str("country", location.Country).
			Str("province", location.Province).
			Msg("Address resolved")
		return location, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrAddressNotFound, address)
}

func (s *Service) search(ctx context.Context, address string) ([]SearchResult, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("geocoding rate limit wait: %w", err)
	}

	params := url.Values{}
	params.Set("q", address)
	params.Set("format", "json")
	params.Set("addressdetails", "1")
	fullURL := fmt.Sprintf("%s/search?%s", s.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	// The usage policy asks for an identifying user agent
	req.Header.Set("User-Agent", httpclient.DefaultUserAgent)
	req.Header.Set("Accept", "application/json")

	s.logger.Debug().Str("url", fullURL).Msg("Calling Nominatim search API")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call Nominatim: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   "/search",
		}
	}

	var results []SearchResult
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("failed to parse Nominatim response: %w", err)
	}
	return results, nil
}
