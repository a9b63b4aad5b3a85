package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntrySimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, EntrySimilarity("Song - Artist", "song - artist"), 1e-9)
	assert.InDelta(t, 1.0, EntrySimilarity("", ""), 1e-9)
	assert.InDelta(t, 0.9, EntrySimilarity("abcdefghij", "abcdefghix"), 1e-9)
	assert.InDelta(t, 0.0, EntrySimilarity("abc", "xyz"), 1e-9)
}

func TestSimilarEntries(t *testing.T) {
	onlyA := []string{"Hello - Band", "Unrelated - Person"}
	onlyB := []string{"Hello! - Band", "Hello - Bands", "Nothing - Alike"}

	pairs := SimilarEntries(onlyA, onlyB, 0.9)
	require.Len(t, pairs, 2)
	assert.Equal(t, "Hello - Band", pairs[0].A)
	assert.Equal(t, "Hello - Band", pairs[1].A)
	assert.Equal(t, "Hello - Bands", pairs[0].B)
	assert.Equal(t, "Hello! - Band", pairs[1].B)
	assert.Equal(t, pairs[0].Score, pairs[1].Score)

	assert.Empty(t, SimilarEntries(onlyA, onlyB, 1.01))
}
