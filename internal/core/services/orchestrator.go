package services

import (
	"context"
	"time"

	"github.com/ewilliams-labs/deepcut/backend/internal/core/domain"
	"github.com/ewilliams-labs/deepcut/backend/internal/core/ports"
	"github.com/ewilliams-labs/deepcut/backend/internal/logging"
	"github.com/ewilliams-labs/deepcut/backend/internal/metrics"
)

// Orchestrator runs one analysis: generate, truncate, enrich, merge.
type Orchestrator struct {
	generator ports.RecommendationGenerator
	enricher  ports.BatchEnricher
}

// NewOrchestrator constructs an Orchestrator.
func NewOrchestrator(generator ports.RecommendationGenerator, enricher ports.BatchEnricher) *Orchestrator {
	return &Orchestrator{
		generator: generator,
		enricher:  enricher,
	}
}

// Analyze turns a taste profile into at most domain.MaxRecommendations
// enriched recommendations. Tags are passed through untouched.
func (o *Orchestrator) Analyze(ctx context.Context, query domain.ArtistQuery) domain.AnalysisResult {
	started := time.Now()
	ctx = logging.ContextWithAnalysisID(ctx, logging.GenerateAnalysisID())
	log := logging.Ctx(ctx)

	// 1. A missing list is an empty list
	artists := query.Artists
	if artists == nil {
		artists = []string{}
	}

	// 2. Ask the model
	resp := o.generator.Generate(ctx, artists)

	// 3. Keep the first few, in order
	recs := resp.Recommendations
	if len(recs) > domain.MaxRecommendations {
		recs = recs[:domain.MaxRecommendations]
	}

	// 4. Enrich by artist name
	names := make([]string, len(recs))
	for i, rec := range recs {
		names[i] = rec.Artist
	}
	metas := o.enricher.EnrichAll(ctx, names)

	// 5. Merge
	enriched := make([]domain.EnrichedRecommendation, len(recs))
	for i, rec := range recs {
		var meta domain.EnrichmentMeta
		if i < len(metas) {
			meta = metas[i]
		}
		enriched[i] = rec.Enrich(meta)
	}

	tags := resp.Tags
	if tags == nil {
		tags = []string{}
	}

	metrics.AnalyzeDuration.Observe(time.Since(started).Seconds())
	metrics.RecommendationsReturned.Observe(float64(len(enriched)))
	log.Info().
		Int("artists", len(artists)).
		Int("tags", len(tags)).
		Int("recommendations", len(enriched)).
		Dur("duration", time.Since(started)).
		Msg("analysis complete")

	return domain.AnalysisResult{
		Tags:            tags,
		Recommendations: enriched,
	}
}
