package formatter

import (
	"bytes"
	"fmt"
	"path/filepath"
	"time"

	"github.com/desertthunder/songpick/internal/matcher"
	"github.com/desertthunder/songpick/internal/models"
)

// File names of the list independent comparison reports.
const (
	CommonReportName  = "common.txt"
	SummaryReportName = "comparison_report.txt"
)

// ReportFiles holds the paths written by [WriteComparisonReports].
type ReportFiles struct {
	OnlyInA string
	OnlyInB string
	Common  string
	Summary string
}

// Paths returns the report paths in write order.
func (r *ReportFiles) Paths() []string {
	return []string{r.OnlyInA, r.OnlyInB, r.Common, r.Summary}
}

// OnlyInName returns the report file name for entries exclusive to one list.
//
// side is "a" or "b", keeping the names distinct when both lists share a file name.
func OnlyInName(side, listName string) string {
	return fmt.Sprintf("only_in_%s_%s.txt", side, SafeFilename(listName))
}

// RenderEntryList renders a titled entry list with a '#' header block.
func RenderEntryList(title string, generated time.Time, entries []string) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n", title)
	fmt.Fprintf(&buf, "# Generated: %s\n", generated.Format(TimestampLayout))
	fmt.Fprintf(&buf, "# Total: %d\n\n", len(entries))
	for _, entry := range entries {
		buf.WriteString(entry)
		buf.WriteString("\n")
	}
	return buf.Bytes()
}

// RenderSummary renders the comparison summary report.
func RenderSummary(result *models.ComparisonResult, similar []matcher.SimilarPair, generated time.Time) []byte {
	var buf bytes.Buffer
	buf.WriteString("# Song list comparison report\n")
	fmt.Fprintf(&buf, "# Generated: %s\n\n", generated.Format(TimestampLayout))

	buf.WriteString("## Lists\n")
	fmt.Fprintf(&buf, "List A: %s (%d songs)\n", result.ListA.Name, result.ListA.Total)
	fmt.Fprintf(&buf, "List B: %s (%d songs)\n\n", result.ListB.Name, result.ListB.Total)

	buf.WriteString("## Summary\n")
	fmt.Fprintf(&buf, "Common: %d\n", result.Stats.CommonCount)
	fmt.Fprintf(&buf, "Only in A: %d\n", result.Stats.OnlyInACount)
	fmt.Fprintf(&buf, "Only in B: %d\n", result.Stats.OnlyInBCount)
	fmt.Fprintf(&buf, "Total unique: %d\n", result.Stats.TotalUnique)
	fmt.Fprintf(&buf, "Similarity: %.1f%%\n\n", result.Similarity())

	if len(similar) > 0 {
		buf.WriteString("## Similar entries\n")
		for _, pair := range similar {
			fmt.Fprintf(&buf, "%s <> %s (%.0f%%)\n", pair.A, pair.B, pair.Score*100)
		}
		buf.WriteString("\n")
	}

	buf.WriteString("## Files\n")
	fmt.Fprintf(&buf, "- %s\n", OnlyInName("a", result.ListA.Name))
	fmt.Fprintf(&buf, "- %s\n", OnlyInName("b", result.ListB.Name))
	fmt.Fprintf(&buf, "- %s\n", CommonReportName)
	return buf.Bytes()
}

// WriteComparisonReports writes the four comparison reports into dir, creating it when missing.
//
// Lists are written even when empty. The first write failure stops the remaining writes.
func WriteComparisonReports(dir string, result *models.ComparisonResult, similar []matcher.SimilarPair, generated time.Time) (*ReportFiles, error) {
	files := &ReportFiles{
		OnlyInA: filepath.Join(dir, OnlyInName("a", result.ListA.Name)),
		OnlyInB: filepath.Join(dir, OnlyInName("b", result.ListB.Name)),
		Common:  filepath.Join(dir, CommonReportName),
		Summary: filepath.Join(dir, SummaryReportName),
	}

	writes := []struct {
		path string
		data []byte
	}{
		{files.OnlyInA, RenderEntryList("Only in "+result.ListA.Name, generated, result.OnlyInA)},
		{files.OnlyInB, RenderEntryList("Only in "+result.ListB.Name, generated, result.OnlyInB)},
		{files.Common, RenderEntryList(fmt.Sprintf("Common to %s and %s", result.ListA.Name, result.ListB.Name), generated, result.Common)},
		{files.Summary, RenderSummary(result, similar, generated)},
	}

	for _, w := range writes {
		if err := writeFile(w.path, w.data); err != nil {
			return nil, err
		}
	}
	return files, nil
}
