package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ewilliams-labs/deepcut/backend/internal/core/domain"
	"github.com/ewilliams-labs/deepcut/backend/internal/core/ports"
	"github.com/ewilliams-labs/deepcut/backend/internal/logging"
	"github.com/ewilliams-labs/deepcut/backend/internal/metrics"
)

// DefaultLookupTimeout bounds each outbound lookup made by an Enricher.
const DefaultLookupTimeout = 8 * time.Second

// Enricher resolves preview and artwork metadata for one artist: primary
// catalog first, then an optional image-only fallback.
type Enricher struct {
	catalog ports.TrackCatalog
	images  ports.ArtistImageSource
	cache   ports.MetadataCache
	timeout time.Duration
}

var _ ports.MetadataEnricher = (*Enricher)(nil)

// EnricherOption configures an Enricher.
type EnricherOption func(*Enricher)

// WithImageFallback sets the source consulted when the catalog has no artwork.
func WithImageFallback(src ports.ArtistImageSource) EnricherOption {
	return func(e *Enricher) { e.images = src }
}

// WithCache stores non-empty results and serves repeats from c.
func WithCache(c ports.MetadataCache) EnricherOption {
	return func(e *Enricher) { e.cache = c }
}

// WithLookupTimeout overrides DefaultLookupTimeout.
func WithLookupTimeout(d time.Duration) EnricherOption {
	return func(e *Enricher) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// NewEnricher constructs an Enricher around the primary catalog.
func NewEnricher(catalog ports.TrackCatalog, opts ...EnricherOption) *Enricher {
	e := &Enricher{catalog: catalog, timeout: DefaultLookupTimeout}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// EnrichOne never fails. A failed lookup contributes nothing.
func (e *Enricher) EnrichOne(ctx context.Context, artist string) domain.EnrichmentMeta {
	log := logging.Ctx(ctx).With().Str("artist", artist).Logger()

	if e.cache != nil {
		meta, ok, err := e.cache.Get(ctx, artist)
		switch {
		case err != nil:
			metrics.EnrichmentCacheLookups.WithLabelValues("error").Inc()
			log.Warn().Err(err).Msg("enrichment cache read failed")
		case ok:
			metrics.EnrichmentCacheLookups.WithLabelValues("hit").Inc()
			return meta
		default:
			metrics.EnrichmentCacheLookups.WithLabelValues("miss").Inc()
		}
	}

	meta := e.primary(ctx, artist, &log)

	if !meta.HasImage() && e.images != nil {
		if image := e.fallbackImage(ctx, artist, &log); image != "" {
			meta.Image = &image
		}
	}

	if e.cache != nil && !meta.IsEmpty() {
		if err := e.cache.Put(ctx, artist, meta); err != nil {
			log.Warn().Err(err).Msg("enrichment cache write failed")
		}
	}

	return meta
}

func (e *Enricher) primary(ctx context.Context, artist string, log *zerolog.Logger) domain.EnrichmentMeta {
	lookupCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	track, err := e.catalog.SearchTrack(lookupCtx, artist)
	if err != nil {
		if errors.Is(err, ports.ErrNoMatch) {
			log.Debug().Msg("no catalog match")
		} else {
			log.Warn().Err(err).Msg("catalog lookup failed")
		}
		return domain.EnrichmentMeta{}
	}
	return track.Meta()
}

func (e *Enricher) fallbackImage(ctx context.Context, artist string, log *zerolog.Logger) string {
	lookupCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	image, err := e.images.ArtistImage(lookupCtx, artist)
	if err != nil {
		if errors.Is(err, ports.ErrNoImage) {
			log.Debug().Msg("no fallback image")
		} else {
			log.Warn().Err(err).Msg("fallback image lookup failed")
		}
		return ""
	}
	return strings.TrimSpace(image)
}
