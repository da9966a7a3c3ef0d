package domain

import (
	"strings"

	"github.com/goccy/go-json"
)

// ParseOutcome tags how a model completion was turned into a ModelResponse.
type ParseOutcome int

const (
	// ParseDegenerate means nothing usable was found and the empty response was returned.
	ParseDegenerate ParseOutcome = iota
	// ParseStrict means the whole completion was valid JSON.
	ParseStrict
	// ParseExtracted means JSON was recovered between the first '{' and the last '}'.
	ParseExtracted
)

func (o ParseOutcome) String() string {
	switch o {
	case ParseStrict:
		return "strict"
	case ParseExtracted:
		return "extracted"
	default:
		return "degenerate"
	}
}

// Parsed reports whether the outcome produced a usable response.
func (o ParseOutcome) Parsed() bool {
	return o != ParseDegenerate
}

// ParseModelResponse coerces free-form model text into a ModelResponse.
// It tries the full text first, then the span from the first '{' to the last
// '}', and otherwise returns EmptyModelResponse. It never fails.
func ParseModelResponse(text string) (ModelResponse, ParseOutcome) {
	if resp, ok := decodeModelResponse(text); ok {
		return resp, ParseStrict
	}

	trimmed := strings.TrimSpace(text)
	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start >= 0 && end > start {
		if resp, ok := decodeModelResponse(trimmed[start : end+1]); ok {
			return resp, ParseExtracted
		}
	}

	return EmptyModelResponse(), ParseDegenerate
}

func decodeModelResponse(raw string) (ModelResponse, bool) {
	var resp ModelResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return ModelResponse{}, false
	}
	if resp.Tags == nil {
		resp.Tags = []string{}
	}
	if resp.Recommendations == nil {
		resp.Recommendations = []RawRecommendation{}
	}
	return resp, true
}
