package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/songpick/internal/shared"
	"github.com/desertthunder/songpick/internal/tasks"
)

// pickOptions resolves the pick arguments, falling back to the configuration for unset flags.
func (r *Runner) pickOptions(cmd *cli.Command) (tasks.PickOptions, error) {
	list, err := requireArg(cmd, "list")
	if err != nil {
		return tasks.PickOptions{}, err
	}

	opts := tasks.PickOptions{
		ListPath: list,
		ScanOptions: tasks.ScanOptions{
			Library:     r.config.Library.Root,
			Output:      r.config.Library.Output,
			UseMetadata: r.config.Matching.UseMetadata,
			Threshold:   r.config.Matching.Threshold,
		},
	}
	if cmd.IsSet("library") {
		opts.Library = cmd.String("library")
	}
	if cmd.IsSet("output") {
		opts.Output = cmd.String("output")
	}
	if cmd.IsSet("metadata") {
		opts.UseMetadata = cmd.Bool("metadata")
	}
	if cmd.IsSet("threshold") {
		opts.Threshold = cmd.Float("threshold")
	}

	if opts.Library == "" {
		return opts, fmt.Errorf("%w: no music library given (--library or library.root)", shared.ErrInvalidArgument)
	}
	if opts.Output == "" {
		return opts, fmt.Errorf("%w: no output folder given (--output or library.output)", shared.ErrInvalidArgument)
	}
	if opts.Threshold <= 0 || opts.Threshold > 1 {
		return opts, fmt.Errorf("%w: threshold must be in (0, 1], got %v", shared.ErrInvalidArgument, opts.Threshold)
	}
	return opts, nil
}

// Pick copies the songs of a song list from the library into the output folder.
func (r *Runner) Pick(ctx context.Context, cmd *cli.Command) error {
	opts, err := r.pickOptions(cmd)
	if err != nil {
		return err
	}

	if cmd.Bool("tui") {
		return r.pickTUI(ctx, opts)
	}
	scanner := tasks.NewScanner(r.logger, r.extractor)

	r.logger.Info("pick started", "list", opts.ListPath, "library", opts.Library, "output", opts.Output)
	r.writePlainHeader("Picking songs")

	var result *tasks.ScanResult
	err = r.withProgress(func(rep tasks.Reporter) error {
		var runErr error
		result, runErr = scanner.Run(ctx, rep, opts)
		return runErr
	})

	if result != nil {
		r.writePickSummary(result)
	}
	if err != nil && !errors.Is(err, shared.ErrAborted) {
		return fmt.Errorf("pick failed: %w", err)
	}
	return err
}

func (r *Runner) writePickSummary(result *tasks.ScanResult) {
	r.writePlain("\n")
	r.writePlainHeader("Summary")
	r.writePlain("Status: %s\n", result.State)
	r.writePlain("Songs in list: %d\n", result.Total)
	r.writePlain("Found: %d (copied %d, already in output %d)\n", result.Found, result.Copied, result.Existing)
	r.writePlain("Not found: %d\n", len(result.Unfound))
	r.writePlain("Audio files scanned: %d\n", result.FilesScanned)
	if result.ParseSkipped > 0 {
		r.writePlain("Malformed lines skipped: %d\n", result.ParseSkipped)
	}
}
