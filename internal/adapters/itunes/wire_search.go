package itunes

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"

	"github.com/ewilliams-labs/deepcut/backend/internal/core/domain"
	"github.com/ewilliams-labs/deepcut/backend/internal/core/ports"
	"github.com/ewilliams-labs/deepcut/backend/internal/metrics"
)

// SearchTrack returns the single best-matching track for term. It returns
// ports.ErrNoMatch when the catalog has no results.
func (c *Client) SearchTrack(ctx context.Context, term string) (preview domain.TrackPreview, err error) {
	started := time.Now()
	defer func() {
		outcome := metrics.OutcomeSuccess
		switch {
		case err == nil:
		case errors.Is(err, ports.ErrNoMatch):
			outcome = metrics.OutcomeEmpty
		default:
			outcome = metrics.OutcomeError
		}
		metrics.ObserveOutbound(providerName, outcome, started)
	}()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return domain.TrackPreview{}, fmt.Errorf("itunes adapter: rate limit wait: %w", err)
		}
	}

	searchURL, err := url.Parse(c.baseURL + "/search")
	if err != nil {
		return domain.TrackPreview{}, fmt.Errorf("itunes adapter: invalid search url: %w", err)
	}
	query := searchURL.Query()
	query.Set("term", term)
	query.Set("entity", "musicTrack")
	query.Set("limit", "1")
	searchURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL.String(), nil)
	if err != nil {
		return domain.TrackPreview{}, fmt.Errorf("itunes adapter: failed to create search request: %w", err)
	}

	// #nosec G107 -- URL built from the configured iTunes base URL
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.TrackPreview{}, fmt.Errorf("itunes adapter: search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.TrackPreview{}, fmt.Errorf("itunes adapter: search status %d", resp.StatusCode)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.TrackPreview{}, fmt.Errorf("itunes adapter: search decode error: %w", err)
	}

	if body.ResultCount <= 0 || len(body.Results) == 0 {
		return domain.TrackPreview{}, fmt.Errorf("itunes adapter: %q: %w", term, ports.ErrNoMatch)
	}

	return body.Results[0].toDomain(), nil
}
