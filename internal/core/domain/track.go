package domain

// TrackPreview is the best catalog match for an artist search.
type TrackPreview struct {
	PreviewURL string
	TrackName  string
	TrackURL   string // web page for the track
	ArtworkURL string
}

// Meta converts the preview into enrichment fields, upscaling the artwork.
func (t TrackPreview) Meta() EnrichmentMeta {
	return EnrichmentMeta{
		SampleURL:   OptionalString(t.PreviewURL),
		SampleTrack: OptionalString(t.TrackName),
		SamplePage:  OptionalString(t.TrackURL),
		Image:       OptionalString(UpscaleArtwork(t.ArtworkURL)),
	}
}
