// Package lastfm fetches artist images from the Last.fm web service. It is
// only used as an image fallback when the track catalog has no artwork.
package lastfm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/ewilliams-labs/deepcut/backend/internal/core/ports"
	"github.com/ewilliams-labs/deepcut/backend/internal/metrics"
)

const (
	defaultBaseURL   = "http://ws.audioscrobbler.com/2.0/"
	defaultRateLimit = 5
	providerName     = "lastfm"
)

// Client calls artist.getinfo on the Last.fm API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	limiter    *rate.Limiter
}

var _ ports.ArtistImageSource = (*Client)(nil)

type artistInfoResponse struct {
	Artist *struct {
		Name  string `json:"name"`
		Image []struct {
			URL  string `json:"#text"`
			Size string `json:"size"`
		} `json:"image"`
	} `json:"artist"`
	Error   int    `json:"error"`
	Message string `json:"message"`
}

// NewClient builds a Last.fm client. perSecond caps outbound calls; zero
// uses the documented default of five per second.
func NewClient(baseURL, apiKey string, perSecond float64, timeout time.Duration) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultBaseURL
	}
	if perSecond <= 0 {
		perSecond = defaultRateLimit
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		apiKey:     apiKey,
		limiter:    rate.NewLimiter(rate.Limit(perSecond), 1),
	}
}

// ArtistImage returns the largest image listed for artist, or
// ports.ErrNoImage when there is none.
func (c *Client) ArtistImage(ctx context.Context, artist string) (image string, err error) {
	started := time.Now()
	defer func() {
		outcome := metrics.OutcomeSuccess
		if errors.Is(err, ports.ErrNoImage) {
			outcome = metrics.OutcomeEmpty
		} else if err != nil {
			outcome = metrics.OutcomeError
		}
		metrics.ObserveOutbound(providerName, outcome, started)
	}()

	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("lastfm adapter: rate limit wait: %w", err)
	}

	endpoint, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("lastfm adapter: invalid base url: %w", err)
	}
	q := endpoint.Query()
	q.Set("method", "artist.getinfo")
	q.Set("artist", artist)
	q.Set("api_key", c.apiKey)
	q.Set("format", "json")
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return "", fmt.Errorf("lastfm adapter: failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("lastfm adapter: request failed: %w", err)
	}
	defer resp.Body.Close()

	var body artistInfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("lastfm adapter: decode error (status %d): %w", resp.StatusCode, err)
	}
	if body.Error != 0 {
		return "", fmt.Errorf("lastfm adapter: api error %d: %s", body.Error, body.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("lastfm adapter: status %d", resp.StatusCode)
	}

	// Last.fm orders images small to mega.
	if body.Artist == nil || len(body.Artist.Image) == 0 {
		return "", fmt.Errorf("lastfm adapter: %q: %w", artist, ports.ErrNoImage)
	}
	largest := strings.TrimSpace(body.Artist.Image[len(body.Artist.Image)-1].URL)
	if largest == "" {
		return "", fmt.Errorf("lastfm adapter: %q: %w", artist, ports.ErrNoImage)
	}
	return largest, nil
}
