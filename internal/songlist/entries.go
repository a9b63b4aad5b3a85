package songlist

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/simplifiedchinese"

	"github.com/desertthunder/songpick/internal/shared"
)

// Encoding names reported by [ReadEntries].
const (
	EncodingUTF8 = "UTF-8"
	EncodingGBK  = "GBK"
)

// Entries is the set of canonical "title - artist" strings read from one song list.
type Entries struct {
	Set      map[string]struct{}
	Encoding string
	Skipped  int
}

// Sorted returns the entries in lexicographic order.
func (e *Entries) Sorted() []string {
	out := make([]string, 0, len(e.Set))
	for entry := range e.Set {
		out = append(out, entry)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of unique entries.
func (e *Entries) Len() int {
	return len(e.Set)
}

// Canonical returns the "title - artist" form of a line, preserving case.
//
// ok is false for blank lines, comments and malformed lines.
func Canonical(line string) (entry string, ok bool) {
	line = strings.TrimSpace(line)
	if isIgnored(line) {
		return "", false
	}
	title, artist, ok := SplitEntry(line)
	if !ok {
		return "", false
	}
	return title + Delimiter + artist, true
}

// decode converts raw bytes to text, trying UTF-8 first and GBK second.
func decode(data []byte) (string, string, error) {
	if utf8.Valid(data) {
		return strings.TrimPrefix(string(data), bom), EncodingUTF8, nil
	}

	decoded, err := simplifiedchinese.GBK.NewDecoder().Bytes(data)
	if err != nil {
		return "", "", err
	}
	if strings.ContainsRune(string(decoded), utf8.RuneError) {
		return "", "", fmt.Errorf("content is neither UTF-8 nor GBK")
	}
	return string(decoded), EncodingGBK, nil
}

// ReadEntries reads the song list at path into a set of canonical entries.
//
// A missing file returns [shared.ErrNotFound]. Content that cannot be decoded returns [shared.ErrParse];
// callers comparing lists treat that as an empty set. Malformed lines are passed to warn and skipped.
func ReadEntries(path string, warn WarnFunc) (*Entries, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: song list %s", shared.ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: failed to read %s: %v", shared.ErrIOFailure, path, err)
	}

	text, encoding, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode %s: %v", shared.ErrParse, path, err)
	}

	entries := &Entries{Set: make(map[string]struct{}), Encoding: encoding}
	for i, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if isIgnored(line) {
			continue
		}
		entry, ok := Canonical(line)
		if !ok {
			entries.Skipped++
			if warn != nil {
				warn(i+1, line)
			}
			continue
		}
		entries.Set[entry] = struct{}{}
	}
	return entries, nil
}
