package domain

import "strings"

// MaxRecommendations caps how many recommendations an analysis returns.
const MaxRecommendations = 5

// ArtistQuery is the caller's taste profile: artist names in the order given.
type ArtistQuery struct {
	Artists []string `json:"artists"`
}

// RawRecommendation is a single artist suggestion as produced by the model.
type RawRecommendation struct {
	Artist      string `json:"artist"`
	Explanation string `json:"explanation"`
}

// ModelResponse is the structured form of the model's answer.
type ModelResponse struct {
	Tags            []string            `json:"tags"`
	Recommendations []RawRecommendation `json:"recommendations"`
}

// EmptyModelResponse returns the degenerate response used when the model
// output cannot be used.
func EmptyModelResponse() ModelResponse {
	return ModelResponse{Tags: []string{}, Recommendations: []RawRecommendation{}}
}

// IsEmpty reports whether the response carries neither tags nor recommendations.
func (m ModelResponse) IsEmpty() bool {
	return len(m.Tags) == 0 && len(m.Recommendations) == 0
}

// EnrichmentMeta holds the catalog data found for one artist. Nil fields were
// not found.
type EnrichmentMeta struct {
	SampleURL   *string `json:"sampleUrl"`
	SampleTrack *string `json:"sampleTrack"`
	SamplePage  *string `json:"samplePage"`
	Image       *string `json:"image"`
}

// IsEmpty reports whether no field was found.
func (m EnrichmentMeta) IsEmpty() bool {
	return m.SampleURL == nil && m.SampleTrack == nil && m.SamplePage == nil && m.Image == nil
}

// HasImage reports whether the meta carries a non-blank image URL.
func (m EnrichmentMeta) HasImage() bool {
	return m.Image != nil && strings.TrimSpace(*m.Image) != ""
}

// EnrichedRecommendation is a recommendation decorated with catalog data.
type EnrichedRecommendation struct {
	Artist      string  `json:"artist"`
	Explanation string  `json:"explanation"`
	Image       *string `json:"image"`
	SampleURL   *string `json:"sampleUrl"`
	SampleTrack *string `json:"sampleTrack"`
	SamplePage  *string `json:"samplePage"`
}

// Enrich merges a raw recommendation with the meta found for its artist.
func (r RawRecommendation) Enrich(meta EnrichmentMeta) EnrichedRecommendation {
	return EnrichedRecommendation{
		Artist:      r.Artist,
		Explanation: r.Explanation,
		Image:       meta.Image,
		SampleURL:   meta.SampleURL,
		SampleTrack: meta.SampleTrack,
		SamplePage:  meta.SamplePage,
	}
}

// AnalysisResult is the payload returned for one analyze request.
type AnalysisResult struct {
	Tags            []string                 `json:"tags"`
	Recommendations []EnrichedRecommendation `json:"recommendations"`
}

// OptionalString returns nil for blank strings and a pointer to s otherwise.
func OptionalString(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
