package itunes

import "github.com/ewilliams-labs/deepcut/backend/internal/core/domain"

// searchResponse is the envelope returned by /search.
type searchResponse struct {
	ResultCount int           `json:"resultCount"`
	Results     []searchTrack `json:"results"`
}

// searchTrack holds the musicTrack fields we use.
type searchTrack struct {
	ArtistName    string `json:"artistName"`
	TrackName     string `json:"trackName"`
	TrackViewURL  string `json:"trackViewUrl"`
	PreviewURL    string `json:"previewUrl"`
	ArtworkURL100 string `json:"artworkUrl100"`
}

func (st searchTrack) toDomain() domain.TrackPreview {
	return domain.TrackPreview{
		PreviewURL: st.PreviewURL,
		TrackName:  st.TrackName,
		TrackURL:   st.TrackViewURL,
		ArtworkURL: st.ArtworkURL100,
	}
}
