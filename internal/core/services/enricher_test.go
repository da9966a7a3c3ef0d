package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ewilliams-labs/deepcut/backend/internal/core/domain"
)

func TestEnricher_EnrichOne(t *testing.T) {
	lampTrack := domain.TrackPreview{
		PreviewURL: "https://audio.example/lamp.m4a",
		TrackName:  "Yume",
		TrackURL:   "https://music.example/lamp",
		ArtworkURL: "https://img.example/lamp/100x100bb.jpg",
	}

	tests := []struct {
		name        string
		catalog     *mockCatalog
		images      *mockImages
		want        domain.EnrichmentMeta
		wantFbCalls int
	}{
		{
			name:    "catalog hit upscales artwork",
			catalog: &mockCatalog{results: map[string]domain.TrackPreview{"Lamp": lampTrack}},
			images:  &mockImages{images: map[string]string{"Lamp": "unused"}},
			want: domain.EnrichmentMeta{
				SampleURL:   strPtr("https://audio.example/lamp.m4a"),
				SampleTrack: strPtr("Yume"),
				SamplePage:  strPtr("https://music.example/lamp"),
				Image:       strPtr("https://img.example/lamp/400x400bb.jpg"),
			},
			wantFbCalls: 0,
		},
		{
			name: "missing artwork falls back to image source",
			catalog: &mockCatalog{results: map[string]domain.TrackPreview{
				"Lamp": {PreviewURL: "a", TrackName: "t", TrackURL: "p"},
			}},
			images: &mockImages{images: map[string]string{"Lamp": "b"}},
			want: domain.EnrichmentMeta{
				SampleURL:   strPtr("a"),
				SampleTrack: strPtr("t"),
				SamplePage:  strPtr("p"),
				Image:       strPtr("b"),
			},
			wantFbCalls: 1,
		},
		{
			name:        "no match uses fallback for image only",
			catalog:     &mockCatalog{},
			images:      &mockImages{images: map[string]string{"Lamp": "https://lastfm.example/mega.png"}},
			want:        domain.EnrichmentMeta{Image: strPtr("https://lastfm.example/mega.png")},
			wantFbCalls: 1,
		},
		{
			name:        "catalog error and fallback error",
			catalog:     &mockCatalog{errs: map[string]error{"Lamp": errUpstream}},
			images:      &mockImages{err: errUpstream},
			want:        domain.EnrichmentMeta{},
			wantFbCalls: 1,
		},
		{
			name:        "blank fallback image stays nil",
			catalog:     &mockCatalog{},
			images:      &mockImages{images: map[string]string{"Lamp": "   "}},
			want:        domain.EnrichmentMeta{},
			wantFbCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEnricher(tt.catalog, WithImageFallback(tt.images))
			got := e.EnrichOne(context.Background(), "Lamp")

			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantFbCalls, tt.images.calls)
		})
	}
}

func TestEnricher_NoFallbackConfigured(t *testing.T) {
	catalog := &mockCatalog{results: map[string]domain.TrackPreview{
		"Lamp": {PreviewURL: "a", TrackName: "t"},
	}}
	e := NewEnricher(catalog)

	got := e.EnrichOne(context.Background(), "Lamp")

	assert.Nil(t, got.Image)
	require.NotNil(t, got.SampleURL)
	assert.Equal(t, "a", *got.SampleURL)
}

func TestEnricher_LookupTimeout(t *testing.T) {
	catalog := &mockCatalog{block: map[string]bool{"Slow": true}}
	e := NewEnricher(catalog, WithLookupTimeout(20*time.Millisecond))

	start := time.Now()
	got := e.EnrichOne(context.Background(), "Slow")

	assert.True(t, got.IsEmpty())
	assert.Less(t, time.Since(start), time.Second)
}

func TestEnricher_Cache(t *testing.T) {
	catalog := &mockCatalog{results: map[string]domain.TrackPreview{
		"Lamp": {PreviewURL: "a", TrackName: "t", TrackURL: "p"},
	}}
	cache := newMockCache()
	e := NewEnricher(catalog, WithCache(cache))

	first := e.EnrichOne(context.Background(), "Lamp")
	second := e.EnrichOne(context.Background(), "Lamp")

	assert.Equal(t, first, second)
	assert.Len(t, catalog.calls, 1, "second lookup should be served from cache")
	assert.Equal(t, 1, cache.puts)
}

func TestEnricher_CacheSkipsEmptyResults(t *testing.T) {
	catalog := &mockCatalog{}
	cache := newMockCache()
	e := NewEnricher(catalog, WithCache(cache))

	_ = e.EnrichOne(context.Background(), "Nobody")
	_ = e.EnrichOne(context.Background(), "Nobody")

	assert.Equal(t, 0, cache.puts)
	assert.Len(t, catalog.calls, 2)
}

func TestEnricher_CacheReadErrorFallsThrough(t *testing.T) {
	catalog := &mockCatalog{results: map[string]domain.TrackPreview{"Lamp": {TrackName: "t"}}}
	cache := newMockCache()
	cache.getErr = errUpstream
	e := NewEnricher(catalog, WithCache(cache))

	got := e.EnrichOne(context.Background(), "Lamp")

	require.NotNil(t, got.SampleTrack)
	assert.Equal(t, "t", *got.SampleTrack)
}
