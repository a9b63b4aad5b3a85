package tasks

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/desertthunder/songpick/internal/matcher"
	"github.com/desertthunder/songpick/internal/metadata"
	"github.com/desertthunder/songpick/internal/models"
	"github.com/desertthunder/songpick/internal/shared"
)

// DuplicateOptions configures [FindDuplicates].
type DuplicateOptions struct {
	Folder         string
	IncludeSubdirs bool
	Threshold      float64  // Percentage score, 0 uses [matcher.DefaultDuplicateThreshold]
	Fields         []string // Compared tag fields, empty uses [matcher.DuplicateFields]
}

// DuplicateReport lists groups of files whose tags match.
type DuplicateReport struct {
	Folder       string                    `json:"folder" yaml:"folder"`
	Files        int                       `json:"total_files" yaml:"total_files"`
	WithMetadata int                       `json:"metadata_available" yaml:"metadata_available"`
	Groups       [][]*models.MusicMetadata `json:"groups" yaml:"groups"`
}

// FindDuplicates reads the tags of every audio file in opts.Folder and groups likely duplicates.
//
// Files without readable tags are skipped. A nil extractor fails with [shared.ErrCapabilityUnavailable].
func FindDuplicates(ctx context.Context, rep Reporter, extractor metadata.Extractor, opts DuplicateOptions) (*DuplicateReport, error) {
	rep = orNop(rep)
	if extractor == nil {
		return nil, fmt.Errorf("%w: duplicate detection reads tags", shared.ErrCapabilityUnavailable)
	}
	if err := checkFolder(opts.Folder); err != nil {
		return nil, err
	}

	setPhase(rep, CollectFiles)
	files, err := collectAudio(ctx, opts.Folder, opts.IncludeSubdirs, func(dir string, err error) {
		rep.Message(fmt.Sprintf("Cannot read folder %s: %v", dir, err))
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrAborted, err)
	}

	report := &DuplicateReport{Folder: opts.Folder, Files: len(files), Groups: [][]*models.MusicMetadata{}}
	if len(files) == 0 {
		rep.Message("No audio files found in folder")
		return report, nil
	}

	setPhase(rep, ReadMetadata)
	records := make([]*models.MusicMetadata, 0, len(files))
	for i, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", shared.ErrAborted, err)
		}
		md, err := extractor.Extract(path)
		if err != nil {
			rep.Message(fmt.Sprintf("No metadata: %s", filepath.Base(path)))
		} else {
			records = append(records, md)
		}
		rep.Progress(i+1, len(files))
	}
	report.WithMetadata = len(records)

	setPhase(rep, GroupDuplicates)
	if groups := matcher.FindDuplicates(records, opts.Threshold, opts.Fields); groups != nil {
		report.Groups = groups
	}
	rep.Message(fmt.Sprintf("Found %d duplicate groups among %d files", len(report.Groups), report.WithMetadata))
	return report, nil
}
