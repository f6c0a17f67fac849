package kbo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
)

type recordingConverter struct {
	html    string
	baseURL string
	err     error
}

func (r *recordingConverter) HTMLToMarkdown(html string, baseURL string) (string, error) {
	r.html = html
	r.baseURL = baseURL
	if r.err != nil {
		return "", r.err
	}
	return "# ACME SA", nil
}

func newTestClient(server *httptest.Server, opts ...ClientOption) *Client {
	base := []ClientOption{
		WithBaseURL(server.URL),
		WithHTTPClient(server.Client()),
		WithLogger(arbor.NewLogger()),
		WithRateLimit(100),
	}
	return NewClient(append(base, opts...)...)
}

func TestClient_FetchGeneralInformation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/zoeknummerform.html", r.URL.Path)
		assert.Equal(t, "fr", r.URL.Query().Get("lang"))
		assert.Equal(t, "0403394333", r.URL.Query().Get("nummer"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(entityPageHTML))
	}))
	defer server.Close()

	converter := &recordingConverter{}
	client := newTestClient(server, WithMarkdownConverter(converter))

	company, err := client.FetchGeneralInformation(context.Background(), "0403394333")
	require.NoError(t, err)

	assert.Equal(t, "0403394333", company.VATNumber)
	assert.Equal(t, "ACME SA", company.Name)
	assert.Equal(t, "# ACME SA", company.GeneralInformation)
	assert.Contains(t, converter.html, `id="table"`)
	assert.Equal(t, server.URL, converter.baseURL)
}

func TestClient_FetchGeneralInformation_ConverterFailureKeepsCompany(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(entityPageHTML))
	}))
	defer server.Close()

	client := newTestClient(server, WithMarkdownConverter(&recordingConverter{err: errors.New("boom")}))

	company, err := client.FetchGeneralInformation(context.Background(), "0403394333")
	require.NoError(t, err)
	assert.Equal(t, "ACME SA", company.Name)
	assert.Empty(t, company.GeneralInformation)
}

func TestClient_FetchGeneralInformation_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(unknownEntityPageHTML))
	}))
	defer server.Close()

	_, err := newTestClient(server).FetchGeneralInformation(context.Background(), "0999999999")
	assert.ErrorIs(t, err, ErrEntityNotFound)
}

func TestClient_FetchEstablishmentUnits(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/vestiginglijst.html", r.URL.Path)
		assert.Equal(t, "nl", r.URL.Query().Get("lang"))
		assert.Equal(t, "0403394333", r.URL.Query().Get("ondernemingsnummer"))
		_, _ = w.Write([]byte(establishmentPageHTML))
	}))
	defer server.Close()

	units, err := newTestClient(server, WithLanguage("nl")).FetchEstablishmentUnits(context.Background(), "0403394333")
	require.NoError(t, err)
	assert.Len(t, units, 2)
}

func TestClient_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := newTestClient(server).FetchEstablishmentUnits(context.Background(), "0403394333")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
	assert.Equal(t, "/vestiginglijst.html", apiErr.Endpoint)
}

func TestClient_CancelledContext(t *testing.T) {
	client := NewClient(WithBaseURL("http://127.0.0.1:1"), WithRateLimit(1))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.FetchGeneralInformation(ctx, "0403394333")
	var rateErr *RateLimitError
	assert.True(t, errors.As(err, &rateErr))
}
