package ports

import (
	"context"
	"errors"

	"github.com/ewilliams-labs/deepcut/backend/internal/core/domain"
)

// ErrNoMatch indicates the catalog returned no results for the search term.
var ErrNoMatch = errors.New("no catalog match")

// ErrNoImage indicates the image source had no usable image for the artist.
var ErrNoImage = errors.New("no artist image")

// TrackCatalog finds the best-matching track for a search term.
type TrackCatalog interface {
	SearchTrack(ctx context.Context, term string) (domain.TrackPreview, error)
}

// ArtistImageSource returns the largest known image URL for an artist.
type ArtistImageSource interface {
	ArtistImage(ctx context.Context, artist string) (string, error)
}

// MetadataCache stores enrichment results per artist.
type MetadataCache interface {
	Get(ctx context.Context, artist string) (domain.EnrichmentMeta, bool, error)
	Put(ctx context.Context, artist string, meta domain.EnrichmentMeta) error
}

// MetadataEnricher looks up catalog data for a single artist. It never fails;
// anything it could not find is left nil.
type MetadataEnricher interface {
	EnrichOne(ctx context.Context, artist string) domain.EnrichmentMeta
}

// BatchEnricher enriches several artists, returning results in input order.
type BatchEnricher interface {
	EnrichAll(ctx context.Context, artists []string) []domain.EnrichmentMeta
}
