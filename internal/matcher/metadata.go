package matcher

import "github.com/desertthunder/songpick/internal/models"

// DefaultThreshold is the minimum combined score for a metadata match.
const DefaultThreshold = 0.8

// Weights of the title and artist similarities in the combined score.
const (
	TitleWeight  = 0.7
	ArtistWeight = 0.3
)

// MetadataScore returns the weighted title and artist similarity between a query and a tag record.
//
// Records without both a title and an artist score 0.
func MetadataScore(query models.SongQuery, md *models.MusicMetadata) float64 {
	if md == nil || md.Title == "" || md.Artist == "" {
		return 0
	}

	title := Similarity(Normalize(query.Title), Normalize(md.Title))
	artist := Similarity(Normalize(query.Artist), Normalize(md.Artist))
	return TitleWeight*title + ArtistWeight*artist
}

// MatchMetadata reports whether md describes query with a score of at least threshold.
//
// A non-positive threshold falls back to [DefaultThreshold].
func MatchMetadata(query models.SongQuery, md *models.MusicMetadata, threshold float64) bool {
	if md == nil || md.Title == "" || md.Artist == "" {
		return false
	}
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return MetadataScore(query, md) >= threshold
}
