package services

import (
	"context"
	"errors"
	"sync"

	"github.com/ewilliams-labs/deepcut/backend/internal/core/domain"
	"github.com/ewilliams-labs/deepcut/backend/internal/core/ports"
)

type mockModel struct {
	text       string
	err        error
	lastPrompt string
}

func (m *mockModel) Complete(_ context.Context, prompt string) (string, error) {
	m.lastPrompt = prompt
	return m.text, m.err
}

type mockGenerator struct {
	resp        domain.ModelResponse
	gotArtists  []string
	generateHit bool
}

func (m *mockGenerator) Generate(_ context.Context, artists []string) domain.ModelResponse {
	m.generateHit = true
	m.gotArtists = artists
	return m.resp
}

// sequentialEnricher adapts a MetadataEnricher to BatchEnricher without a pool.
type sequentialEnricher struct {
	one   ports.MetadataEnricher
	names []string
}

func (s *sequentialEnricher) EnrichAll(ctx context.Context, artists []string) []domain.EnrichmentMeta {
	s.names = append(s.names, artists...)
	out := make([]domain.EnrichmentMeta, len(artists))
	for i, a := range artists {
		out[i] = s.one.EnrichOne(ctx, a)
	}
	return out
}

type stubEnricher map[string]domain.EnrichmentMeta

func (s stubEnricher) EnrichOne(_ context.Context, artist string) domain.EnrichmentMeta {
	return s[artist]
}

type mockCatalog struct {
	mu      sync.Mutex
	results map[string]domain.TrackPreview
	errs    map[string]error
	block   map[string]bool
	calls   []string
}

func (m *mockCatalog) SearchTrack(ctx context.Context, term string) (domain.TrackPreview, error) {
	m.mu.Lock()
	m.calls = append(m.calls, term)
	m.mu.Unlock()

	if m.block[term] {
		<-ctx.Done()
		return domain.TrackPreview{}, ctx.Err()
	}
	if err := m.errs[term]; err != nil {
		return domain.TrackPreview{}, err
	}
	if track, ok := m.results[term]; ok {
		return track, nil
	}
	return domain.TrackPreview{}, ports.ErrNoMatch
}

type mockImages struct {
	images map[string]string
	err    error
	calls  int
}

func (m *mockImages) ArtistImage(_ context.Context, artist string) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	if img, ok := m.images[artist]; ok {
		return img, nil
	}
	return "", ports.ErrNoImage
}

type mockCache struct {
	entries map[string]domain.EnrichmentMeta
	getErr  error
	puts    int
}

func newMockCache() *mockCache {
	return &mockCache{entries: map[string]domain.EnrichmentMeta{}}
}

func (m *mockCache) Get(_ context.Context, artist string) (domain.EnrichmentMeta, bool, error) {
	if m.getErr != nil {
		return domain.EnrichmentMeta{}, false, m.getErr
	}
	meta, ok := m.entries[artist]
	return meta, ok, nil
}

func (m *mockCache) Put(_ context.Context, artist string, meta domain.EnrichmentMeta) error {
	m.puts++
	m.entries[artist] = meta
	return nil
}

var errUpstream = errors.New("upstream unavailable")

func strPtr(s string) *string { return &s }
