package main

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/songpick/internal/formatter"
	"github.com/desertthunder/songpick/internal/matcher"
	"github.com/desertthunder/songpick/internal/models"
	"github.com/desertthunder/songpick/internal/shared"
	"github.com/desertthunder/songpick/internal/tasks"
)

func (r *Runner) requireExtractor() error {
	if r.extractor == nil {
		return fmt.Errorf("%w: this build has no tag reader", shared.ErrCapabilityUnavailable)
	}
	return nil
}

// Inspect prints the metadata of one or more audio files.
//
// Unreadable files are reported and skipped; the command fails only when none could be read.
func (r *Runner) Inspect(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireExtractor(); err != nil {
		return err
	}
	files := cmd.StringArgs("files")
	if len(files) == 0 {
		return fmt.Errorf("%w: missing <files> argument", shared.ErrInvalidArgument)
	}

	records := make([]*models.MusicMetadata, 0, len(files))
	for _, path := range files {
		md, err := r.extractor.Extract(path)
		if err != nil {
			r.logger.Warn("cannot read metadata", "file", path, "error", err)
			continue
		}
		records = append(records, md)
	}
	if len(records) == 0 {
		return fmt.Errorf("%w: no readable metadata in %d files", shared.ErrNotFound, len(files))
	}

	if format := cmd.String("format"); format != "text" {
		return r.writeEncoded(format, records)
	}

	for i, md := range records {
		if i > 0 {
			r.writePlain("\n")
		}
		r.writePlainHeader(filepath.Base(md.Filepath))
		if _, err := r.output.Write(formatter.MetadataText(md)); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

// Duplicates groups the audio files of a folder whose tags match.
func (r *Runner) Duplicates(ctx context.Context, cmd *cli.Command) error {
	folder, err := requireArg(cmd, "folder")
	if err != nil {
		return err
	}
	if err := r.requireExtractor(); err != nil {
		return err
	}

	threshold := cmd.Float("threshold")
	if threshold <= 0 || threshold > 100 {
		return fmt.Errorf("%w: threshold must be in (0, 100], got %v", shared.ErrInvalidArgument, threshold)
	}
	opts := tasks.DuplicateOptions{
		Folder:         folder,
		IncludeSubdirs: cmd.Bool("subdirs"),
		Threshold:      threshold,
		Fields:         cmd.StringSlice("field"),
	}
	for _, field := range opts.Fields {
		if !slices.Contains(matcher.AllFields, field) {
			return fmt.Errorf("%w: unknown field %q", shared.ErrInvalidArgument, field)
		}
	}

	format := cmd.String("format")
	if format != "text" {
		report, err := tasks.FindDuplicates(ctx, nil, r.extractor, opts)
		if err != nil {
			return fmt.Errorf("duplicate search failed: %w", err)
		}
		return r.writeEncoded(format, report)
	}

	r.writePlainHeader("Finding duplicates")
	var report *tasks.DuplicateReport
	err = r.withProgress(func(rep tasks.Reporter) error {
		var findErr error
		report, findErr = tasks.FindDuplicates(ctx, rep, r.extractor, opts)
		return findErr
	})
	if err != nil {
		return fmt.Errorf("duplicate search failed: %w", err)
	}

	for i, group := range report.Groups {
		r.writePlainln("Group %d:", i+1)
		for _, md := range group {
			r.writePlain("  %s (%s - %s)\n", md.Filepath, md.Title, md.Artist)
		}
	}
	r.writePlainln("Found %d duplicate groups among %d files", len(report.Groups), report.Files)
	return nil
}
