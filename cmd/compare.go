package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/songpick/internal/shared"
	"github.com/desertthunder/songpick/internal/tasks"
)

// Compare diffs two song lists and optionally writes the report files.
func (r *Runner) Compare(ctx context.Context, cmd *cli.Command) error {
	listA, err := requireArg(cmd, "list-a")
	if err != nil {
		return err
	}
	listB, err := requireArg(cmd, "list-b")
	if err != nil {
		return err
	}

	opts := tasks.CompareOptions{
		ListA:            listA,
		ListB:            listB,
		ReportDir:        r.config.Compare.ReportDir,
		SimilarThreshold: r.config.Compare.SimilarThreshold,
	}
	if cmd.IsSet("report-dir") {
		opts.ReportDir = cmd.String("report-dir")
	}
	if cmd.IsSet("similar") {
		opts.SimilarThreshold = cmd.Float("similar")
	}
	if opts.SimilarThreshold < 0 || opts.SimilarThreshold > 1 {
		return fmt.Errorf("%w: similar must be in [0, 1], got %v", shared.ErrInvalidArgument, opts.SimilarThreshold)
	}

	comparator := tasks.NewComparator(r.logger)
	format := cmd.String("format")

	if format != "text" {
		result, err := comparator.Compare(ctx, nil, opts)
		if err != nil {
			return fmt.Errorf("compare failed: %w", err)
		}
		return r.writeEncoded(format, result)
	}

	r.writePlainHeader("Comparing song lists")
	var result *tasks.Comparison
	err = r.withProgress(func(rep tasks.Reporter) error {
		var cmpErr error
		result, cmpErr = comparator.Compare(ctx, rep, opts)
		return cmpErr
	})
	if err != nil {
		return fmt.Errorf("compare failed: %w", err)
	}

	r.writeEntries(fmt.Sprintf("Only in %s", result.ListA.Name), result.OnlyInA)
	r.writeEntries(fmt.Sprintf("Only in %s", result.ListB.Name), result.OnlyInB)
	r.writeEntries("Common", result.Common)
	if len(result.Similar) > 0 {
		r.writePlainln("Similar entries:")
		for _, pair := range result.Similar {
			r.writePlain("  %s <> %s (%.0f%%)\n", pair.A, pair.B, pair.Score*100)
		}
	}
	r.writePlainln("%d common of %d unique songs, similarity %.1f%%", result.Stats.CommonCount, result.Stats.TotalUnique, result.Similarity())
	for _, path := range result.Reports {
		r.writePlain("Report written: %s\n", path)
	}
	return nil
}

func (r *Runner) writeEntries(title string, entries []string) {
	r.writePlainln("%s (%d):", title, len(entries))
	for _, entry := range entries {
		r.writePlain("  %s\n", entry)
	}
}
