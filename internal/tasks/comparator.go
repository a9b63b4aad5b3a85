package tasks

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/songpick/internal/formatter"
	"github.com/desertthunder/songpick/internal/matcher"
	"github.com/desertthunder/songpick/internal/models"
	"github.com/desertthunder/songpick/internal/shared"
	"github.com/desertthunder/songpick/internal/songlist"
)

// CompareOptions configures [Comparator.Compare].
type CompareOptions struct {
	ListA            string
	ListB            string
	ReportDir        string  // Reports are written here when set
	SimilarThreshold float64 // Near-identical exclusive entries are paired when > 0
}

// Comparison is the result of comparing two song lists.
type Comparison struct {
	models.ComparisonResult `yaml:",inline"`

	Similar []matcher.SimilarPair `json:"similar,omitempty" yaml:"similar,omitempty"`
	Reports []string              `json:"reports,omitempty" yaml:"reports,omitempty"`
}

// Comparator computes set differences between song lists.
type Comparator struct {
	logger *log.Logger
	now    func() time.Time
}

// NewComparator creates a [Comparator].
func NewComparator(logger *log.Logger) *Comparator {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Comparator{logger: logger, now: time.Now}
}

// readList reads one side of a comparison. Only a missing file is fatal; any other failure yields an
// empty set and a warning.
func (c *Comparator) readList(rep Reporter, path string) (*songlist.Entries, error) {
	name := filepath.Base(path)
	entries, err := songlist.ReadEntries(path, func(line int, text string) {
		rep.Message(fmt.Sprintf("%s line %d has an invalid format: %s", name, line, text))
	})
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			rep.Message(fmt.Sprintf("File not found: %s", path))
			return nil, err
		}
		c.logger.Warn("song list unreadable, treating as empty", "path", path, "error", err)
		rep.Message(fmt.Sprintf("Cannot read %s, treating it as empty: %v", name, err))
		return &songlist.Entries{Set: map[string]struct{}{}}, nil
	}

	encoding := ""
	if entries.Encoding != songlist.EncodingUTF8 {
		encoding = ", " + entries.Encoding
	}
	rep.Message(fmt.Sprintf("✓ Parsed %s (%d songs%s)", name, entries.Len(), encoding))
	return entries, nil
}

func difference(a, b map[string]struct{}) []string {
	out := []string{}
	for entry := range a {
		if _, ok := b[entry]; !ok {
			out = append(out, entry)
		}
	}
	sort.Strings(out)
	return out
}

func intersection(a, b map[string]struct{}) []string {
	out := []string{}
	for entry := range a {
		if _, ok := b[entry]; ok {
			out = append(out, entry)
		}
	}
	sort.Strings(out)
	return out
}

// Compare reads both lists and computes their differences and intersection.
//
// A missing list returns [shared.ErrNotFound]. Report failures are reported through rep and do not
// affect the returned result.
func (c *Comparator) Compare(ctx context.Context, rep Reporter, opts CompareOptions) (*Comparison, error) {
	rep = orNop(rep)

	setPhase(rep, ReadLists)
	a, err := c.readList(rep, opts.ListA)
	if err != nil {
		return nil, err
	}
	rep.Progress(1, 2)
	b, err := c.readList(rep, opts.ListB)
	if err != nil {
		return nil, err
	}
	rep.Progress(2, 2)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrAborted, err)
	}

	setPhase(rep, CompareLists)
	if a.Len() == 0 && b.Len() == 0 {
		rep.Message("Both song lists are empty")
	}

	result := &Comparison{ComparisonResult: models.ComparisonResult{
		ListA:   models.PlaylistInfo{Name: filepath.Base(opts.ListA), Path: opts.ListA, Total: a.Len()},
		ListB:   models.PlaylistInfo{Name: filepath.Base(opts.ListB), Path: opts.ListB, Total: b.Len()},
		Common:  intersection(a.Set, b.Set),
		OnlyInA: difference(a.Set, b.Set),
		OnlyInB: difference(b.Set, a.Set),
	}}
	result.Stats = models.ComparisonStats{
		CommonCount:  len(result.Common),
		OnlyInACount: len(result.OnlyInA),
		OnlyInBCount: len(result.OnlyInB),
		TotalUnique:  len(result.Common) + len(result.OnlyInA) + len(result.OnlyInB),
	}

	if opts.SimilarThreshold > 0 {
		result.Similar = matcher.SimilarEntries(result.OnlyInA, result.OnlyInB, opts.SimilarThreshold)
		if len(result.Similar) > 0 {
			rep.Message(fmt.Sprintf("Found %d similar entry pairs", len(result.Similar)))
		}
	}

	rep.Message(fmt.Sprintf("Common: %d, only in %s: %d, only in %s: %d, similarity %.1f%%",
		result.Stats.CommonCount, result.ListA.Name, result.Stats.OnlyInACount,
		result.ListB.Name, result.Stats.OnlyInBCount, result.Similarity()))

	if opts.ReportDir != "" {
		setPhase(rep, WriteReports)
		files, err := formatter.WriteComparisonReports(opts.ReportDir, &result.ComparisonResult, result.Similar, c.now())
		if err != nil {
			c.logger.Error("report generation failed", "dir", opts.ReportDir, "error", err)
			rep.Message(fmt.Sprintf("Failed to write reports: %v", err))
		} else {
			result.Reports = files.Paths()
			for _, p := range result.Reports {
				rep.Message("✓ Wrote " + p)
			}
		}
	}

	c.logger.Info("lists compared", "a", opts.ListA, "b", opts.ListB, "common", result.Stats.CommonCount, "unique", result.Stats.TotalUnique)
	return result, nil
}
