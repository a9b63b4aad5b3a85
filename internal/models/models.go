package models

// SongQuery is one song list entry. Title and Artist are lowercased and trimmed.
type SongQuery struct {
	Title        string
	Artist       string
	OriginalLine string // Trimmed source line, unique key for status tracking
}

// SongStatus maps a query's original line to whether it has been satisfied.
type SongStatus map[string]bool

// NewSongStatus returns a status map with every query marked unfound.
func NewSongStatus(queries []SongQuery) SongStatus {
	status := make(SongStatus, len(queries))
	for _, q := range queries {
		status[q.OriginalLine] = false
	}
	return status
}

// Mark flags the query with the given original line as found.
func (s SongStatus) Mark(line string) {
	s[line] = true
}

// IsFound reports whether the query with the given original line has been found.
func (s SongStatus) IsFound(line string) bool {
	return s[line]
}

// Found counts satisfied queries.
func (s SongStatus) Found() int {
	n := 0
	for _, found := range s {
		if found {
			n++
		}
	}
	return n
}

// Unfound returns the original lines still unfound, in query order and without duplicates.
func (s SongStatus) Unfound(queries []SongQuery) []string {
	var lines []string
	seen := make(map[string]bool, len(queries))
	for _, q := range queries {
		if seen[q.OriginalLine] {
			continue
		}
		seen[q.OriginalLine] = true
		if !s[q.OriginalLine] {
			lines = append(lines, q.OriginalLine)
		}
	}
	return lines
}

// MusicMetadata holds tags and stream details for a single audio file.
//
// Empty strings and zero values mean the information was not present or could not be read.
type MusicMetadata struct {
	Filepath    string  `json:"filepath" yaml:"filepath"`
	Filename    string  `json:"filename" yaml:"filename"`
	Title       string  `json:"title,omitempty" yaml:"title,omitempty"`
	Artist      string  `json:"artist,omitempty" yaml:"artist,omitempty"`
	Album       string  `json:"album,omitempty" yaml:"album,omitempty"`
	AlbumArtist string  `json:"albumartist,omitempty" yaml:"albumartist,omitempty"`
	Date        string  `json:"date,omitempty" yaml:"date,omitempty"`
	Genre       string  `json:"genre,omitempty" yaml:"genre,omitempty"`
	Track       string  `json:"track,omitempty" yaml:"track,omitempty"`
	Duration    float64 `json:"duration,omitempty" yaml:"duration,omitempty"` // Seconds
	Bitrate     int     `json:"bitrate,omitempty" yaml:"bitrate,omitempty"`   // Bits per second
	Format      string  `json:"format,omitempty" yaml:"format,omitempty"`
	Size        int64   `json:"size,omitempty" yaml:"size,omitempty"` // Bytes
}

// Field returns the textual tag named by field ("title", "artist", "album", "albumartist", "date", "genre", "track").
//
// Unknown names return an empty string.
func (m *MusicMetadata) Field(field string) string {
	switch field {
	case "title":
		return m.Title
	case "artist":
		return m.Artist
	case "album":
		return m.Album
	case "albumartist":
		return m.AlbumArtist
	case "date":
		return m.Date
	case "genre":
		return m.Genre
	case "track":
		return m.Track
	default:
		return ""
	}
}

// PlaylistInfo describes one side of a comparison.
type PlaylistInfo struct {
	Name  string `json:"name" yaml:"name"`
	Path  string `json:"path" yaml:"path"`
	Total int    `json:"total" yaml:"total"`
}

// ComparisonStats contains the counts derived from a comparison.
type ComparisonStats struct {
	CommonCount  int `json:"common_count" yaml:"common_count"`
	OnlyInACount int `json:"only_in_a_count" yaml:"only_in_a_count"`
	OnlyInBCount int `json:"only_in_b_count" yaml:"only_in_b_count"`
	TotalUnique  int `json:"total_unique" yaml:"total_unique"`
}

// ComparisonResult contains the set differences and intersection of two song lists.
//
// Entry slices are sorted lexicographically.
type ComparisonResult struct {
	ListA   PlaylistInfo    `json:"list_a" yaml:"list_a"`
	ListB   PlaylistInfo    `json:"list_b" yaml:"list_b"`
	Common  []string        `json:"common" yaml:"common"`
	OnlyInA []string        `json:"only_in_a" yaml:"only_in_a"`
	OnlyInB []string        `json:"only_in_b" yaml:"only_in_b"`
	Stats   ComparisonStats `json:"stats" yaml:"stats"`
}

// Similarity returns the share of common entries among all unique entries, as a percentage.
func (r *ComparisonResult) Similarity() float64 {
	if r.Stats.TotalUnique == 0 {
		return 0
	}
	return float64(r.Stats.CommonCount) / float64(r.Stats.TotalUnique) * 100
}
