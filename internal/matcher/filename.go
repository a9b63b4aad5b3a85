package matcher

import "strings"

// normalizeSeparators replaces '/' and '_' with spaces, collapses whitespace and lowercases.
func normalizeSeparators(s string) string {
	s = strings.NewReplacer("/", " ", "_", " ").Replace(s)
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// splitArtists splits an artist string on '/' or '_' into trimmed, lowercased, non-empty names.
func splitArtists(artist string) []string {
	parts := strings.FieldsFunc(artist, func(r rune) bool { return r == '/' || r == '_' })
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			names = append(names, p)
		}
	}
	return names
}

// MatchFilename reports whether a file name stem plausibly encodes title and artist.
//
// Checks run in order and stop at the first success:
//  1. title and artist are substrings of the stem
//  2. the same after '/' and '_' become spaces in the stem and artist
//  3. every artist name split on '/' or '_' is a substring of the normalized stem
//
// Matching is substring based, so a short title can match an unrelated longer name.
func MatchFilename(title, artist, stem string) bool {
	title = strings.ToLower(title)
	artist = strings.ToLower(artist)
	lowered := strings.ToLower(stem)

	if strings.Contains(lowered, title) && strings.Contains(lowered, artist) {
		return true
	}

	normStem := normalizeSeparators(stem)
	normTitle := strings.TrimSpace(title)
	if !strings.Contains(normStem, normTitle) {
		return false
	}

	if strings.Contains(normStem, normalizeSeparators(artist)) {
		return true
	}

	names := splitArtists(artist)
	if len(names) == 0 {
		return false
	}
	for _, name := range names {
		if !strings.Contains(normStem, name) {
			return false
		}
	}
	return true
}
