package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/ewilliams-labs/deepcut/backend/internal/core/domain"
	"github.com/ewilliams-labs/deepcut/backend/internal/core/ports"
	"github.com/ewilliams-labs/deepcut/backend/internal/logging"
	"github.com/ewilliams-labs/deepcut/backend/internal/metrics"
)

const promptTemplate = `The user listens to these artists: %s.
1) Return 5-8 descriptive tags covering genre, mood, theme and style.
2) Recommend exactly %d lesser-known artists (avoid mainstream acts).
3) For each, give one sentence explaining why it fits.

Respond as a single strict JSON object and nothing else:
{
  "tags": ["tag1", "..."],
  "recommendations": [
    {"artist": "Name", "explanation": "one sentence"}
  ]
}`

// BuildPrompt renders the recommendation prompt for artists.
func BuildPrompt(artists []string) string {
	list := "no artists"
	if len(artists) > 0 {
		list = strings.Join(artists, ", ")
	}
	return fmt.Sprintf(promptTemplate, list, domain.MaxRecommendations)
}

// Generator asks a language model for tags and recommendations.
type Generator struct {
	model ports.LanguageModel
}

var _ ports.RecommendationGenerator = (*Generator)(nil)

// NewGenerator constructs a Generator.
func NewGenerator(model ports.LanguageModel) *Generator {
	return &Generator{model: model}
}

// Generate never fails: transport errors and unusable output both yield the
// empty response.
func (g *Generator) Generate(ctx context.Context, artists []string) domain.ModelResponse {
	log := logging.Ctx(ctx)

	text, err := g.model.Complete(ctx, BuildPrompt(artists))
	if err != nil {
		log.Warn().Err(err).Int("artists", len(artists)).Msg("language model call failed")
		metrics.ModelParseOutcomes.WithLabelValues(domain.ParseDegenerate.String()).Inc()
		return domain.EmptyModelResponse()
	}

	resp, outcome := domain.ParseModelResponse(text)
	metrics.ModelParseOutcomes.WithLabelValues(outcome.String()).Inc()

	switch outcome {
	case domain.ParseDegenerate:
		log.Warn().Int("length", len(text)).Msg("model output could not be parsed")
	case domain.ParseExtracted:
		log.Debug().Msg("model output parsed after brace extraction")
	}

	return resp
}
