package ports

import (
	"context"

	"github.com/ewilliams-labs/deepcut/backend/internal/core/domain"
)

// LanguageModel sends a prompt to a text-generation provider and returns the
// raw completion text.
type LanguageModel interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// RecommendationGenerator turns a taste profile into tags and recommendations.
// Implementations absorb every failure into the degenerate response.
type RecommendationGenerator interface {
	Generate(ctx context.Context, artists []string) domain.ModelResponse
}
