package matcher

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// SimilarPair is an entry from each side of a comparison that differ only slightly.
type SimilarPair struct {
	A     string  `json:"a" yaml:"a"`
	B     string  `json:"b" yaml:"b"`
	Score float64 `json:"score" yaml:"score"`
}

// EntrySimilarity returns 1 minus the Levenshtein distance of the lowercased entries divided by the
// longer entry's rune length.
func EntrySimilarity(a, b string) float64 {
	a, b = strings.ToLower(a), strings.ToLower(b)
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if longest == 0 {
		return 1
	}
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(longest)
}

// SimilarEntries pairs every entry of onlyA with every entry of onlyB scoring at least threshold.
//
// Pairs are ordered by descending score, then by A and B.
func SimilarEntries(onlyA, onlyB []string, threshold float64) []SimilarPair {
	var pairs []SimilarPair
	for _, a := range onlyA {
		for _, b := range onlyB {
			if score := EntrySimilarity(a, b); score >= threshold {
				pairs = append(pairs, SimilarPair{A: a, B: b, Score: score})
			}
		}
	}

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Score != pairs[j].Score {
			return pairs[i].Score > pairs[j].Score
		}
		if pairs[i].A != pairs[j].A {
			return pairs[i].A < pairs[j].A
		}
		return pairs[i].B < pairs[j].B
	})
	return pairs
}
