package domain

import "strings"

const (
	thumbnailArtworkSuffix = "100x100bb.jpg"
	largeArtworkSuffix     = "400x400bb.jpg"
)

// UpscaleArtwork rewrites an iTunes 100px artwork URL to its 400px variant.
// URLs that do not end in the 100px segment are returned unchanged.
func UpscaleArtwork(url string) string {
	if !strings.HasSuffix(url, thumbnailArtworkSuffix) {
		return url
	}
	return strings.TrimSuffix(url, thumbnailArtworkSuffix) + largeArtworkSuffix
}
