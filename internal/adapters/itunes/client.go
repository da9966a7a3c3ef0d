// Package itunes looks up track previews and artwork through the public
// iTunes Search API. No credentials are required.
package itunes

import (
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/ewilliams-labs/deepcut/backend/internal/core/ports"
)

const (
	defaultBaseURL = "https://itunes.apple.com"
	providerName   = "itunes"
)

// Client is an HTTP client for the iTunes Search API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
}

// compile-time interface assertion
var _ ports.TrackCatalog = (*Client)(nil)

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithRateLimit throttles outbound searches to perSecond requests. Zero or
// negative leaves searches unthrottled.
func WithRateLimit(perSecond float64) Option {
	return func(c *Client) {
		if perSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
		}
	}
}

// NewClient constructs an iTunes client. timeout bounds each search.
func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	c := &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
