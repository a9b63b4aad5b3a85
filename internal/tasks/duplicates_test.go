package tasks

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/desertthunder/songpick/internal/models"
	"github.com/desertthunder/songpick/internal/shared"
	th "github.com/desertthunder/songpick/internal/testing"
)

func TestFindDuplicates(t *testing.T) {
	folder := t.TempDir()
	first := th.WriteFile(t, folder, "01.mp3", "1")
	second := th.WriteFile(t, folder, filepath.Join("copies", "01 (1).flac"), "2")
	other := th.WriteFile(t, folder, "02.mp3", "3")
	th.WriteFile(t, folder, "untagged.mp3", "4")

	extractor := th.NewMockExtractor(map[string]*models.MusicMetadata{
		first:  {Title: "Song", Artist: "Band", Album: "Record"},
		second: {Title: "song", Artist: "BAND", Album: "Record (Deluxe)"},
		other:  {Title: "Else", Artist: "Band", Album: "Record"},
	})

	t.Run("groups matching tags", func(t *testing.T) {
		rep := &th.RecordingReporter{}
		report, err := FindDuplicates(context.Background(), rep, extractor, DuplicateOptions{Folder: folder, IncludeSubdirs: true})
		if err != nil {
			t.Fatalf("FindDuplicates failed: %v", err)
		}
		if report.Files != 4 || report.WithMetadata != 3 {
			t.Errorf("unexpected counts: %+v", report)
		}
		if len(report.Groups) != 1 || len(report.Groups[0]) != 2 {
			t.Fatalf("expected one pair, got %v", report.Groups)
		}
		if report.Groups[0][0].Filepath != first || report.Groups[0][1].Filepath != second {
			t.Errorf("unexpected group members: %s, %s", report.Groups[0][0].Filepath, report.Groups[0][1].Filepath)
		}
		if !hasMessage(rep, "No metadata: untagged.mp3") {
			t.Errorf("expected missing metadata message, got %v", rep.Messages)
		}
	})

	t.Run("subdirectories excluded", func(t *testing.T) {
		report, err := FindDuplicates(context.Background(), nil, extractor, DuplicateOptions{Folder: folder})
		if err != nil {
			t.Fatalf("FindDuplicates failed: %v", err)
		}
		if report.Groups == nil || len(report.Groups) != 0 {
			t.Errorf("expected an empty non-nil group list, got %v", report.Groups)
		}
	})

	t.Run("lower threshold", func(t *testing.T) {
		report, err := FindDuplicates(context.Background(), nil, extractor, DuplicateOptions{Folder: folder, Threshold: 60})
		if err != nil {
			t.Fatalf("FindDuplicates failed: %v", err)
		}
		if len(report.Groups) != 1 || len(report.Groups[0]) != 2 {
			t.Errorf("expected 01 and 02 grouped, got %v", report.Groups)
		}
	})

	t.Run("no extractor", func(t *testing.T) {
		_, err := FindDuplicates(context.Background(), nil, nil, DuplicateOptions{Folder: folder})
		if !errors.Is(err, shared.ErrCapabilityUnavailable) {
			t.Errorf("expected ErrCapabilityUnavailable, got %v", err)
		}
	})

	t.Run("missing folder", func(t *testing.T) {
		_, err := FindDuplicates(context.Background(), nil, extractor, DuplicateOptions{Folder: filepath.Join(folder, "nope")})
		if !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}
