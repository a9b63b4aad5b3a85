package songlist

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/desertthunder/songpick/internal/models"
	"github.com/desertthunder/songpick/internal/shared"
)

// Delimiter separates title from artist. The last occurrence in a line is the split point.
const Delimiter = " - "

const bom = "\ufeff"

// WarnFunc receives the 1-based line number and trimmed text of a line that could not be parsed.
type WarnFunc func(line int, text string)

// List is the outcome of parsing a song list.
//
// An empty file yields no queries and no skipped lines. A file whose entries are all malformed yields
// no queries and Skipped > 0.
type List struct {
	Queries []models.SongQuery
	Skipped int
}

// Empty reports whether the list produced no queries.
func (l *List) Empty() bool {
	return len(l.Queries) == 0
}

// SplitEntry splits a trimmed line on the last [Delimiter].
//
// ok is false when the delimiter is missing or either trimmed half is empty.
func SplitEntry(line string) (title, artist string, ok bool) {
	idx := strings.LastIndex(line, Delimiter)
	if idx < 0 {
		return "", "", false
	}
	title = strings.TrimSpace(line[:idx])
	artist = strings.TrimSpace(line[idx+len(Delimiter):])
	if title == "" || artist == "" {
		return "", "", false
	}
	return title, artist, true
}

// isIgnored reports whether a trimmed line is blank or a comment.
func isIgnored(line string) bool {
	return line == "" || strings.HasPrefix(line, "#")
}

// Parse reads song queries from r, one per line.
//
// Blank lines and lines starting with '#' are skipped silently. Malformed lines are passed to warn
// (which may be nil) and skipped.
func Parse(r io.Reader, warn WarnFunc) (*List, error) {
	list := &List{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		text := scanner.Text()
		if lineNum == 1 {
			text = strings.TrimPrefix(text, bom)
		}
		line := strings.TrimSpace(text)
		if isIgnored(line) {
			continue
		}

		title, artist, ok := SplitEntry(line)
		if !ok {
			list.Skipped++
			if warn != nil {
				warn(lineNum, line)
			}
			continue
		}

		list.Queries = append(list.Queries, models.SongQuery{
			Title:        strings.ToLower(title),
			Artist:       strings.ToLower(artist),
			OriginalLine: line,
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to read song list: %v", shared.ErrParse, err)
	}
	return list, nil
}

// ParseFile opens path and parses it with [Parse].
func ParseFile(path string, warn WarnFunc) (*List, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: song list %s", shared.ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: failed to open song list %s: %v", shared.ErrParse, path, err)
	}
	defer f.Close()

	list, err := Parse(f, warn)
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, path)
	}
	return list, nil
}
