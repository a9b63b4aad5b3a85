package main

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/songpick/internal/tasks"
)

// includeSubdirs reads --subdirs, falling back to generator.include_subdirs.
func (r *Runner) includeSubdirs(cmd *cli.Command) bool {
	if cmd.IsSet("subdirs") {
		return cmd.Bool("subdirs")
	}
	return r.config.Generator.IncludeSubdirs
}

// Generate writes a song list from the audio files of a folder.
func (r *Runner) Generate(ctx context.Context, cmd *cli.Command) error {
	folder, err := requireArg(cmd, "folder")
	if err != nil {
		return err
	}

	opts := tasks.GenerateOptions{
		Folder:         folder,
		Output:         cmd.String("output"),
		UseMetadata:    r.config.Generator.UseMetadata,
		IncludeSubdirs: r.includeSubdirs(cmd),
	}
	if cmd.IsSet("metadata") {
		opts.UseMetadata = cmd.Bool("metadata")
	}

	r.writePlainHeader("Generating song list")
	gen := tasks.NewGenerator(r.logger, r.extractor)

	var result *tasks.GenerateResult
	err = r.withProgress(func(rep tasks.Reporter) error {
		var genErr error
		result, genErr = gen.Generate(ctx, rep, opts)
		return genErr
	})
	if err != nil {
		return fmt.Errorf("generate failed: %w", err)
	}

	r.writePlainln("✓ %d songs written to %s (%s)", len(result.Entries), result.Output, result.Method)
	return nil
}

// Analyze prints how well a folder lends itself to song list generation.
func (r *Runner) Analyze(ctx context.Context, cmd *cli.Command) error {
	folder, err := requireArg(cmd, "folder")
	if err != nil {
		return err
	}

	analysis, err := tasks.NewGenerator(r.logger, r.extractor).Analyze(ctx, folder, r.includeSubdirs(cmd))
	if err != nil {
		return fmt.Errorf("analyze failed: %w", err)
	}

	if format := cmd.String("format"); format != "text" {
		return r.writeEncoded(format, analysis)
	}

	r.writePlainHeader("Folder analysis")
	r.writePlain("Folder: %s\n", analysis.Folder)
	r.writePlain("Audio files: %d\n", analysis.TotalFiles)
	r.writePlain("Parseable file names: %d (%.1f%%)\n", analysis.Parseable, percent(analysis.Parseable, analysis.TotalFiles))
	r.writePlain("Files with title and artist tags: %d\n", analysis.WithMetadata)

	if len(analysis.Formats) > 0 {
		exts := make([]string, 0, len(analysis.Formats))
		for ext := range analysis.Formats {
			exts = append(exts, ext)
		}
		sort.Strings(exts)

		parts := make([]string, len(exts))
		for i, ext := range exts {
			parts[i] = fmt.Sprintf("%s %d", ext, analysis.Formats[ext])
		}
		r.writePlain("Formats: %s\n", strings.Join(parts, ", "))
	}

	if len(analysis.Unparseable) > 0 {
		r.writePlainln("Names without a title/artist separator:")
		for _, name := range analysis.Unparseable {
			r.writePlain("  • %s\n", name)
		}
	}
	return nil
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}
