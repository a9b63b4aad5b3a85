package formatter

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/songpick/internal/matcher"
	"github.com/desertthunder/songpick/internal/models"
	"github.com/desertthunder/songpick/internal/shared"
	th "github.com/desertthunder/songpick/internal/testing"
)

var fixedTime = time.Date(2024, 3, 9, 14, 5, 30, 0, time.UTC)

func sampleResult() *models.ComparisonResult {
	return &models.ComparisonResult{
		ListA:   models.PlaylistInfo{Name: "mine.txt", Path: "/lists/mine.txt", Total: 2},
		ListB:   models.PlaylistInfo{Name: "yours.txt", Path: "/lists/yours.txt", Total: 2},
		Common:  []string{"S2 - A2"},
		OnlyInA: []string{"S1 - A1"},
		OnlyInB: []string{"S3 - A3"},
		Stats:   models.ComparisonStats{CommonCount: 1, OnlyInACount: 1, OnlyInBCount: 1, TotalUnique: 3},
	}
}

func TestSafeFilename(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"strips extension", "list.txt", "list"},
		{"replaces illegal characters", `a<b>c:d"e/f\g|h?i*j.txt`, "a_b_c_d_e_f_g_h_i_j"},
		{"keeps unicode", "我的歌单.txt", "我的歌单"},
		{"truncates", strings.Repeat("x", 60) + ".txt", strings.Repeat("x", 50)},
		{"truncates by rune", strings.Repeat("歌", 55), strings.Repeat("歌", 50)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SafeFilename(tt.input); got != tt.want {
				t.Errorf("SafeFilename(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRenderPlaylist(t *testing.T) {
	out := string(RenderPlaylist(PlaylistHeader{Generated: fixedTime, Source: "/music", Method: MethodFilename}, []string{"A - B", "C - D"}))

	want := "# Generated: 2024-03-09 14:05:30\n" +
		"# Source folder: /music\n" +
		"# Total songs: 2\n" +
		"# Method: filename parsing\n" +
		"\n" +
		"A - B\nC - D\n"
	if out != want {
		t.Errorf("RenderPlaylist() =\n%s\nwant\n%s", out, want)
	}
}

func TestWritePlaylist(t *testing.T) {
	t.Run("creates parent directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "dir", "list.txt")
		if err := WritePlaylist(path, PlaylistHeader{Generated: fixedTime}, []string{"A - B"}); err != nil {
			t.Fatalf("WritePlaylist failed: %v", err)
		}
		if content := th.MustReadFile(t, path); !strings.HasSuffix(content, "\nA - B\n") {
			t.Errorf("unexpected content: %q", content)
		}
	})

	t.Run("unwritable path", func(t *testing.T) {
		dir := t.TempDir()
		blocker := th.WriteFile(t, dir, "file", "x")
		err := WritePlaylist(filepath.Join(blocker, "list.txt"), PlaylistHeader{}, nil)
		if !errors.Is(err, shared.ErrIOFailure) {
			t.Errorf("expected ErrIOFailure, got %v", err)
		}
	})
}

func TestRenderSummary(t *testing.T) {
	similar := []matcher.SimilarPair{{A: "S1 - A1", B: "S1! - A1", Score: 0.9}}
	out := string(RenderSummary(sampleResult(), similar, fixedTime))

	for _, want := range []string{
		"# Generated: 2024-03-09 14:05:30",
		"List A: mine.txt (2 songs)",
		"List B: yours.txt (2 songs)",
		"Common: 1",
		"Total unique: 3",
		"Similarity: 33.3%",
		"S1 - A1 <> S1! - A1 (90%)",
		"- only_in_a_mine.txt",
		"- only_in_b_yours.txt",
		"- common.txt",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestWriteComparisonReports(t *testing.T) {
	t.Run("writes four files", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "reports")
		files, err := WriteComparisonReports(dir, sampleResult(), nil, fixedTime)
		if err != nil {
			t.Fatalf("WriteComparisonReports failed: %v", err)
		}

		for _, p := range files.Paths() {
			th.AssertFileExists(t, p)
		}
		if filepath.Base(files.OnlyInA) != "only_in_a_mine.txt" {
			t.Errorf("unexpected name %s", files.OnlyInA)
		}

		onlyA := th.MustReadFile(t, files.OnlyInA)
		if !strings.HasPrefix(onlyA, "# Only in mine.txt\n") || !strings.Contains(onlyA, "# Total: 1\n\nS1 - A1\n") {
			t.Errorf("unexpected only-in-A report: %q", onlyA)
		}
		common := th.MustReadFile(t, files.Common)
		if !strings.Contains(common, "S2 - A2") {
			t.Errorf("common report missing entry: %q", common)
		}
	})

	t.Run("empty lists still produce files", func(t *testing.T) {
		dir := t.TempDir()
		result := &models.ComparisonResult{ListA: models.PlaylistInfo{Name: "a.txt"}, ListB: models.PlaylistInfo{Name: "b.txt"}}
		files, err := WriteComparisonReports(dir, result, nil, fixedTime)
		if err != nil {
			t.Fatalf("WriteComparisonReports failed: %v", err)
		}
		if !strings.Contains(th.MustReadFile(t, files.Summary), "Similarity: 0.0%") {
			t.Error("expected 0% similarity for empty lists")
		}
	})

	t.Run("unwritable directory", func(t *testing.T) {
		blocker := th.WriteFile(t, t.TempDir(), "file", "x")
		_, err := WriteComparisonReports(filepath.Join(blocker, "reports"), sampleResult(), nil, fixedTime)
		if !errors.Is(err, shared.ErrIOFailure) {
			t.Errorf("expected ErrIOFailure, got %v", err)
		}
	})
}

func TestEncode(t *testing.T) {
	result := sampleResult()

	t.Run("json", func(t *testing.T) {
		data, err := Encode("json", result)
		if err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
		if !strings.Contains(string(data), `"only_in_a": [`) || !strings.Contains(string(data), `"total_unique": 3`) {
			t.Errorf("unexpected JSON: %s", data)
		}
	})

	t.Run("yaml", func(t *testing.T) {
		data, err := Encode("YAML", result)
		if err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
		if !strings.Contains(string(data), "only_in_b:\n  - S3 - A3") || !strings.Contains(string(data), "total_unique: 3") {
			t.Errorf("unexpected YAML: %s", data)
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := Encode("xml", result)
		if !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})
}

func TestMetadataText(t *testing.T) {
	out := string(MetadataText(&models.MusicMetadata{
		Filepath: "/music/song.flac",
		Title:    "Song",
		Duration: 125,
		Bitrate:  900000,
		Size:     2048,
		Format:   "FLAC",
	}))

	for _, want := range []string{"File:         /music/song.flac", "Title:        Song", "Artist:       -", "Duration:     2:05", "Bitrate:      900 kbps", "Size:         2.0 KB"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteFileOverwrites(t *testing.T) {
	path := th.WriteFile(t, t.TempDir(), "out.txt", "old")
	if err := writeFile(path, []byte("new")); err != nil {
		t.Fatalf("writeFile failed: %v", err)
	}
	if got, _ := os.ReadFile(path); string(got) != "new" {
		t.Errorf("expected overwritten content, got %q", got)
	}
}
