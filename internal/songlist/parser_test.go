package songlist

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/songpick/internal/models"
	"github.com/desertthunder/songpick/internal/shared"
	th "github.com/desertthunder/songpick/internal/testing"
)

type warning struct {
	line int
	text string
}

func collect(warnings *[]warning) WarnFunc {
	return func(line int, text string) {
		*warnings = append(*warnings, warning{line, text})
	}
}

func TestSplitEntry(t *testing.T) {
	tests := []struct {
		name       string
		line       string
		wantTitle  string
		wantArtist string
		wantOK     bool
	}{
		{"simple", "Song - Artist", "Song", "Artist", true},
		{"last delimiter wins", "A - B - C", "A - B", "C", true},
		{"hyphen without spaces", "Song-Artist", "", "", false},
		{"empty artist", "Song - ", "", "", false},
		{"empty title", " - Artist", "", "", false},
		{"extra spacing", "Song   -   Artist", "Song", "Artist", true},
		{"padded halves", "Song  - Artist ", "Song", "Artist", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, artist, ok := SplitEntry(tt.line)
			if ok != tt.wantOK || title != tt.wantTitle || artist != tt.wantArtist {
				t.Errorf("SplitEntry(%q) = (%q, %q, %v), want (%q, %q, %v)",
					tt.line, title, artist, ok, tt.wantTitle, tt.wantArtist, tt.wantOK)
			}
		})
	}
}

func TestParse(t *testing.T) {
	t.Run("well formed lines are lowercased", func(t *testing.T) {
		list, err := Parse(strings.NewReader("Hello World - Some Artist\n  Another - ARTIST  \n"), nil)
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}

		want := []models.SongQuery{
			{Title: "hello world", Artist: "some artist", OriginalLine: "Hello World - Some Artist"},
			{Title: "another", Artist: "artist", OriginalLine: "Another - ARTIST"},
		}
		if len(list.Queries) != len(want) {
			t.Fatalf("expected %d queries, got %d", len(want), len(list.Queries))
		}
		for i, q := range list.Queries {
			if q != want[i] {
				t.Errorf("query %d = %+v, want %+v", i, q, want[i])
			}
		}
	})

	t.Run("splits on last delimiter", func(t *testing.T) {
		list, err := Parse(strings.NewReader("A - B - C"), nil)
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		if len(list.Queries) != 1 {
			t.Fatalf("expected 1 query, got %d", len(list.Queries))
		}
		if q := list.Queries[0]; q.Title != "a - b" || q.Artist != "c" {
			t.Errorf("got title %q artist %q", q.Title, q.Artist)
		}
	})

	t.Run("comments and blanks are silent", func(t *testing.T) {
		var warnings []warning
		list, err := Parse(strings.NewReader("# header\n\n   \n  # indented comment\nSong - Artist\n"), collect(&warnings))
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		if len(list.Queries) != 1 {
			t.Errorf("expected 1 query, got %d", len(list.Queries))
		}
		if len(warnings) != 0 {
			t.Errorf("expected no warnings, got %v", warnings)
		}
	})

	t.Run("malformed lines warn with line numbers", func(t *testing.T) {
		var warnings []warning
		list, err := Parse(strings.NewReader("Good - One\nno delimiter\nBad - \nGood - Two\n"), collect(&warnings))
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		if len(list.Queries) != 2 {
			t.Errorf("expected 2 queries, got %d", len(list.Queries))
		}
		if list.Skipped != 2 {
			t.Errorf("expected 2 skipped, got %d", list.Skipped)
		}
		want := []warning{{2, "no delimiter"}, {3, "Bad -"}}
		if len(warnings) != len(want) {
			t.Fatalf("expected %d warnings, got %v", len(want), warnings)
		}
		for i := range want {
			if warnings[i] != want[i] {
				t.Errorf("warning %d = %+v, want %+v", i, warnings[i], want[i])
			}
		}
	})

	t.Run("byte order mark is ignored", func(t *testing.T) {
		list, err := Parse(strings.NewReader("\ufeffSong - Artist\n"), nil)
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		if len(list.Queries) != 1 || list.Queries[0].OriginalLine != "Song - Artist" {
			t.Errorf("unexpected queries: %+v", list.Queries)
		}
	})

	t.Run("empty and unparseable are distinguishable", func(t *testing.T) {
		empty, err := Parse(strings.NewReader(""), nil)
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		if !empty.Empty() || empty.Skipped != 0 {
			t.Errorf("expected empty list with no skips, got %+v", empty)
		}

		bad, err := Parse(strings.NewReader("nothing here\nstill nothing"), nil)
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		if !bad.Empty() || bad.Skipped != 2 {
			t.Errorf("expected empty list with 2 skips, got %+v", bad)
		}
	})
}

func TestParseFile(t *testing.T) {
	t.Run("reads file", func(t *testing.T) {
		path := th.WriteFile(t, t.TempDir(), "list.txt", "Song - Artist\n")
		list, err := ParseFile(path, nil)
		if err != nil {
			t.Fatalf("ParseFile failed: %v", err)
		}
		if len(list.Queries) != 1 {
			t.Errorf("expected 1 query, got %d", len(list.Queries))
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ParseFile(filepath.Join(t.TempDir(), "missing.txt"), nil)
		if !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("directory is a parse error", func(t *testing.T) {
		_, err := ParseFile(t.TempDir(), nil)
		if !errors.Is(err, shared.ErrParse) {
			t.Errorf("expected ErrParse, got %v", err)
		}
	})
}
