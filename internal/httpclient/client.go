package httpclient

import (
	"fmt"
	"math/rand/v2"
	"net/http"
	"net/http/cookiejar"
	"time"
)

var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:125.0) Gecko/20100101 Firefox/125.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 14.4; rv:125.0) Gecko/20100101 Firefox/125.0",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36 Edg/124.0.0.0",
}

// DefaultUserAgent is sent when rotation is disabled
const DefaultUserAgent = "vatscope/1.0 (+https://github.com/ternarybob/vatscope)"

// NewDefaultHTTPClient creates a simple HTTP client with a timeout
func NewDefaultHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
	}
}

// NewBrowserHTTPClient creates an HTTP client with a cookie jar, for sites that
// keep a session between the search form and the result pages
func NewBrowserHTTPClient(timeout time.Duration) (*http.Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}
	return &http.Client{
		Jar:     jar,
		Timeout: timeout,
	}, nil
}

// RandomUserAgent picks one of the known browser user agents
func RandomUserAgent() string {
	return userAgents[rand.IntN(len(userAgents))]
}

// ApplyBrowserHeaders sets the headers a desktop browser would send.
// With rotate disabled the fixed DefaultUserAgent is used.
func ApplyBrowserHeaders(req *http.Request, rotate bool) {
	if rotate {
		req.Header.Set("User-Agent", RandomUserAgent())
	} else {
		req.Header.Set("User-Agent", DefaultUserAgent)
	}
	req.Header.Set("Accept-Language", "fr-BE,fr;q=0.9,nl;q=0.8,en;q=0.7")
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	}
}
