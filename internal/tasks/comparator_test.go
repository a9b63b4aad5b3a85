package tasks

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/songpick/internal/shared"
	th "github.com/desertthunder/songpick/internal/testing"
)

func newTestComparator() *Comparator {
	c := NewComparator(quietLogger())
	c.now = func() time.Time { return fixedTime }
	return c
}

func TestCompare(t *testing.T) {
	dir := t.TempDir()
	listA := th.WriteFile(t, dir, "a.txt", "x - 1\ny - 2\nbroken\n")
	listB := th.WriteFile(t, dir, "b.txt", "# comment\n  y  -  2 \nz - 3\n")

	rep := &th.RecordingReporter{}
	result, err := newTestComparator().Compare(context.Background(), rep, CompareOptions{ListA: listA, ListB: listB})
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}

	if want := []string{"y - 2"}; !reflect.DeepEqual(result.Common, want) {
		t.Errorf("Common = %v, want %v", result.Common, want)
	}
	if want := []string{"x - 1"}; !reflect.DeepEqual(result.OnlyInA, want) {
		t.Errorf("OnlyInA = %v, want %v", result.OnlyInA, want)
	}
	if want := []string{"z - 3"}; !reflect.DeepEqual(result.OnlyInB, want) {
		t.Errorf("OnlyInB = %v, want %v", result.OnlyInB, want)
	}
	if result.Stats.TotalUnique != 3 {
		t.Errorf("TotalUnique = %d, want 3", result.Stats.TotalUnique)
	}
	if got := result.Similarity(); math.Abs(got-33.333) > 0.01 {
		t.Errorf("Similarity = %.3f, want 33.333", got)
	}
	if result.ListA.Name != "a.txt" || result.ListA.Total != 2 {
		t.Errorf("unexpected list A info: %+v", result.ListA)
	}
	if len(result.Reports) != 0 {
		t.Errorf("expected no reports, got %v", result.Reports)
	}
	if !hasMessage(rep, "a.txt line 3 has an invalid format") {
		t.Errorf("expected malformed line warning, got %v", rep.Messages)
	}
	if !hasMessage(rep, "similarity 33.3%") {
		t.Errorf("expected summary message, got %v", rep.Messages)
	}
}

func TestCompareReports(t *testing.T) {
	dir := t.TempDir()
	listA := th.WriteFile(t, dir, "a.txt", "x - 1\ny - 2\n")
	listB := th.WriteFile(t, dir, "b.txt", "y - 2\n")
	reportDir := filepath.Join(dir, "reports")

	result, err := newTestComparator().Compare(context.Background(), nil, CompareOptions{
		ListA:     listA,
		ListB:     listB,
		ReportDir: reportDir,
	})
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}

	want := []string{
		filepath.Join(reportDir, "only_in_a_a.txt"),
		filepath.Join(reportDir, "only_in_b_b.txt"),
		filepath.Join(reportDir, "common.txt"),
		filepath.Join(reportDir, "comparison_report.txt"),
	}
	if !reflect.DeepEqual(result.Reports, want) {
		t.Errorf("Reports = %v, want %v", result.Reports, want)
	}
	for _, p := range want {
		th.AssertFileExists(t, p)
	}

	onlyA := th.MustReadFile(t, want[0])
	if !strings.HasSuffix(onlyA, "# Total: 1\n\nx - 1\n") {
		t.Errorf("unexpected only-in-A report:\n%s", onlyA)
	}
	onlyB := th.MustReadFile(t, want[1])
	if !strings.HasSuffix(onlyB, "# Total: 0\n\n") {
		t.Errorf("expected an empty only-in-B report, got:\n%s", onlyB)
	}
	summary := th.MustReadFile(t, want[3])
	if !strings.Contains(summary, "Similarity: 50.0%") || !strings.Contains(summary, "# Generated: 2024-01-02 03:04:05") {
		t.Errorf("unexpected summary:\n%s", summary)
	}
}

func TestCompareReportFailure(t *testing.T) {
	dir := t.TempDir()
	listA := th.WriteFile(t, dir, "a.txt", "x - 1\n")
	listB := th.WriteFile(t, dir, "b.txt", "x - 1\n")
	blocker := th.WriteFile(t, dir, "blocker", "x")

	rep := &th.RecordingReporter{}
	result, err := newTestComparator().Compare(context.Background(), rep, CompareOptions{
		ListA:     listA,
		ListB:     listB,
		ReportDir: filepath.Join(blocker, "reports"),
	})
	if err != nil {
		t.Fatalf("report failures should not fail the comparison: %v", err)
	}
	if result.Stats.CommonCount != 1 || len(result.Reports) != 0 {
		t.Errorf("unexpected result: %+v", result)
	}
	if !hasMessage(rep, "Failed to write reports") {
		t.Errorf("expected report failure message, got %v", rep.Messages)
	}
}

func TestCompareEncodings(t *testing.T) {
	dir := t.TempDir()
	gbk := th.WriteFile(t, dir, "gbk.txt", "\xd6\xd0\xce\xc4 - \xb8\xe8\xca\xd6\n")
	utf := th.WriteFile(t, dir, "utf8.txt", "\ufeff中文 - 歌手\n")
	garbage := th.WriteFile(t, dir, "garbage.txt", "\xff\xff - \xff\n")

	t.Run("gbk and utf-8 agree", func(t *testing.T) {
		rep := &th.RecordingReporter{}
		result, err := newTestComparator().Compare(context.Background(), rep, CompareOptions{ListA: gbk, ListB: utf})
		if err != nil {
			t.Fatalf("Compare failed: %v", err)
		}
		if want := []string{"中文 - 歌手"}; !reflect.DeepEqual(result.Common, want) {
			t.Errorf("Common = %v, want %v", result.Common, want)
		}
		if !hasMessage(rep, "GBK") {
			t.Errorf("expected encoding to be reported, got %v", rep.Messages)
		}
	})

	t.Run("undecodable list is empty", func(t *testing.T) {
		rep := &th.RecordingReporter{}
		result, err := newTestComparator().Compare(context.Background(), rep, CompareOptions{ListA: garbage, ListB: utf})
		if err != nil {
			t.Fatalf("Compare failed: %v", err)
		}
		if result.ListA.Total != 0 || len(result.OnlyInB) != 1 {
			t.Errorf("unexpected result: %+v", result.ComparisonResult)
		}
		if !hasMessage(rep, "treating it as empty") {
			t.Errorf("expected warning, got %v", rep.Messages)
		}
	})
}

func TestCompareEdgeCases(t *testing.T) {
	t.Run("missing list", func(t *testing.T) {
		dir := t.TempDir()
		listB := th.WriteFile(t, dir, "b.txt", "a - b\n")
		_, err := newTestComparator().Compare(context.Background(), nil, CompareOptions{ListA: filepath.Join(dir, "nope.txt"), ListB: listB})
		if !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("both empty", func(t *testing.T) {
		dir := t.TempDir()
		listA := th.WriteFile(t, dir, "a.txt", "")
		listB := th.WriteFile(t, dir, "b.txt", "# nothing\n")
		rep := &th.RecordingReporter{}
		result, err := newTestComparator().Compare(context.Background(), rep, CompareOptions{ListA: listA, ListB: listB})
		if err != nil {
			t.Fatalf("Compare failed: %v", err)
		}
		if result.Similarity() != 0 || result.Common == nil || result.OnlyInA == nil {
			t.Errorf("expected zero similarity and empty slices, got %+v", result.ComparisonResult)
		}
		if !hasMessage(rep, "Both song lists are empty") {
			t.Errorf("expected empty message, got %v", rep.Messages)
		}
	})

	t.Run("similar entries", func(t *testing.T) {
		dir := t.TempDir()
		listA := th.WriteFile(t, dir, "a.txt", "Hello - World\nUnrelated - Thing\n")
		listB := th.WriteFile(t, dir, "b.txt", "Helo - World\n")
		result, err := newTestComparator().Compare(context.Background(), nil, CompareOptions{ListA: listA, ListB: listB, SimilarThreshold: 0.8})
		if err != nil {
			t.Fatalf("Compare failed: %v", err)
		}
		if len(result.Similar) != 1 || result.Similar[0].A != "Hello - World" || result.Similar[0].B != "Helo - World" {
			t.Errorf("Similar = %+v", result.Similar)
		}
	})

	t.Run("cancelled", func(t *testing.T) {
		dir := t.TempDir()
		listA := th.WriteFile(t, dir, "a.txt", "a - b\n")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := newTestComparator().Compare(ctx, nil, CompareOptions{ListA: listA, ListB: listA})
		if !errors.Is(err, shared.ErrAborted) {
			t.Errorf("expected ErrAborted, got %v", err)
		}
	})
}
