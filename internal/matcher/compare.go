package matcher

import "github.com/desertthunder/songpick/internal/models"

// Fields compared by [CompareMetadata] and [FindDuplicates] when none are given.
var (
	AllFields       = []string{"title", "artist", "album", "albumartist", "date", "genre", "track"}
	DuplicateFields = []string{"title", "artist", "album"}
)

// DefaultDuplicateThreshold is the percentage score at which two records are considered duplicates.
const DefaultDuplicateThreshold = 90.0

// FieldDiff holds the raw values of a field on both sides of a comparison.
type FieldDiff struct {
	A string `json:"a" yaml:"a"`
	B string `json:"b" yaml:"b"`
}

// MetadataComparison is the field by field result of comparing two tag records.
type MetadataComparison struct {
	FileA       string               `json:"file_a" yaml:"file_a"`
	FileB       string               `json:"file_b" yaml:"file_b"`
	Matches     map[string]string    `json:"matches" yaml:"matches"`
	Differences map[string]FieldDiff `json:"differences" yaml:"differences"`
	Score       float64              `json:"score" yaml:"score"` // Percentage of matching fields
}

// CompareMetadata compares the given fields of two records after [Normalize].
//
// Fields missing on both sides count as matching. A nil or empty fields list compares [AllFields].
func CompareMetadata(a, b *models.MusicMetadata, fields []string) *MetadataComparison {
	if len(fields) == 0 {
		fields = AllFields
	}

	result := &MetadataComparison{
		FileA:       a.Filename,
		FileB:       b.Filename,
		Matches:     make(map[string]string),
		Differences: make(map[string]FieldDiff),
	}

	matches := 0
	for _, field := range fields {
		va, vb := a.Field(field), b.Field(field)
		if Normalize(va) == Normalize(vb) {
			result.Matches[field] = va
			matches++
			continue
		}
		result.Differences[field] = FieldDiff{A: va, B: vb}
	}

	result.Score = float64(matches) / float64(len(fields)) * 100
	return result
}

// FindDuplicates groups records whose comparison score reaches threshold.
//
// Each record joins at most one group, anchored on the earliest record it matches. Only groups with
// more than one member are returned. A non-positive threshold uses [DefaultDuplicateThreshold] and
// an empty fields list uses [DuplicateFields].
func FindDuplicates(records []*models.MusicMetadata, threshold float64, fields []string) [][]*models.MusicMetadata {
	if threshold <= 0 {
		threshold = DefaultDuplicateThreshold
	}
	if len(fields) == 0 {
		fields = DuplicateFields
	}

	var groups [][]*models.MusicMetadata
	processed := make([]bool, len(records))

	for i, anchor := range records {
		if processed[i] {
			continue
		}
		processed[i] = true
		group := []*models.MusicMetadata{anchor}

		for j := i + 1; j < len(records); j++ {
			if processed[j] {
				continue
			}
			if CompareMetadata(anchor, records[j], fields).Score >= threshold {
				group = append(group, records[j])
				processed[j] = true
			}
		}

		if len(group) > 1 {
			groups = append(groups, group)
		}
	}
	return groups
}
