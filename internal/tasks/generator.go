package tasks

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/songpick/internal/formatter"
	"github.com/desertthunder/songpick/internal/metadata"
	"github.com/desertthunder/songpick/internal/shared"
	"github.com/desertthunder/songpick/internal/songlist"
)

// FilenameSeparators are tried in order when deriving (title, artist) from a file name.
var FilenameSeparators = []string{" - ", "-", " _ ", "_", " — ", "—"}

// maxListedFailures caps how many unparseable files are reported individually.
const maxListedFailures = 10

// ParseFilename splits a file name stem into title and artist.
//
// The first separator whose first occurrence yields two non-empty trimmed halves wins. The first
// half is always taken as the title.
func ParseFilename(stem string) (title, artist string, ok bool) {
	for _, sep := range FilenameSeparators {
		before, after, found := strings.Cut(stem, sep)
		if !found {
			continue
		}
		before, after = strings.TrimSpace(before), strings.TrimSpace(after)
		if before != "" && after != "" {
			return before, after, true
		}
	}
	return "", "", false
}

// GenerateOptions configures [Generator.Generate].
type GenerateOptions struct {
	Folder         string
	Output         string
	UseMetadata    bool
	IncludeSubdirs bool
}

// GenerateResult summarizes a generated song list.
type GenerateResult struct {
	Output  string
	Method  string
	Files   int      // Supported audio files found
	Entries []string // Sorted "title - artist" lines written
	Failed  []string // File names no entry could be derived from
}

// FolderAnalysis describes how well a folder lends itself to song list generation.
type FolderAnalysis struct {
	Folder       string         `json:"folder" yaml:"folder"`
	TotalFiles   int            `json:"total_files" yaml:"total_files"`
	Parseable    int            `json:"parseable_files" yaml:"parseable_files"`
	WithMetadata int            `json:"metadata_available" yaml:"metadata_available"`
	Formats      map[string]int `json:"format_distribution" yaml:"format_distribution"`
	Unparseable  []string       `json:"unparseable_files" yaml:"unparseable_files"`
}

// Generator builds song lists from folders of audio files.
type Generator struct {
	logger    *log.Logger
	extractor metadata.Extractor
	now       func() time.Time
}

// NewGenerator creates a [Generator]. extractor may be nil, in which case only file names are parsed.
func NewGenerator(logger *log.Logger, extractor metadata.Extractor) *Generator {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Generator{logger: logger, extractor: extractor, now: time.Now}
}

func checkFolder(folder string) error {
	info, err := os.Stat(folder)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: folder %s", shared.ErrNotFound, folder)
		}
		return fmt.Errorf("%w: %v", shared.ErrInvalidPath, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", shared.ErrInvalidPath, folder)
	}
	return nil
}

// fromMetadata derives (title, artist) from tags, requiring both.
func (g *Generator) fromMetadata(path string) (string, string, bool) {
	if g.extractor == nil {
		return "", "", false
	}
	md, err := g.extractor.Extract(path)
	if err != nil {
		g.logger.Debug("metadata unavailable", "file", filepath.Base(path), "error", err)
		return "", "", false
	}
	title, artist := strings.TrimSpace(md.Title), strings.TrimSpace(md.Artist)
	return title, artist, title != "" && artist != ""
}

// Generate writes a sorted song list of every audio file in opts.Folder to opts.Output.
//
// Files no entry can be derived from are reported and skipped. A missing folder returns
// [shared.ErrNotFound], a folder without audio files [shared.ErrNoAudioFiles] and a failed write
// [shared.ErrIOFailure].
func (g *Generator) Generate(ctx context.Context, rep Reporter, opts GenerateOptions) (*GenerateResult, error) {
	rep = orNop(rep)
	if err := checkFolder(opts.Folder); err != nil {
		rep.Message(err.Error())
		return nil, err
	}

	useMetadata := opts.UseMetadata && g.extractor != nil
	if opts.UseMetadata && g.extractor == nil {
		rep.Message("Metadata support is unavailable, falling back to filename parsing")
	}
	method := formatter.MethodFilename
	if useMetadata {
		method = formatter.MethodMetadata
	}

	setPhase(rep, CollectFiles)
	rep.Message(fmt.Sprintf("Scanning folder %s", opts.Folder))
	files, err := collectAudio(ctx, opts.Folder, opts.IncludeSubdirs, func(dir string, err error) {
		rep.Message(fmt.Sprintf("Cannot read folder %s: %v", dir, err))
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrAborted, err)
	}
	if len(files) == 0 {
		rep.Message("No audio files found in folder")
		return nil, fmt.Errorf("%w: %s", shared.ErrNoAudioFiles, opts.Folder)
	}

	setPhase(rep, DeriveEntries)
	result := &GenerateResult{Output: opts.Output, Method: method, Files: len(files)}
	for i, path := range files {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("%w: %w", shared.ErrAborted, err)
		}

		name := filepath.Base(path)
		title, artist, ok := "", "", false
		if useMetadata {
			title, artist, ok = g.fromMetadata(path)
		}
		if !ok {
			title, artist, ok = ParseFilename(shared.Stem(name))
			if ok && useMetadata {
				rep.Message(fmt.Sprintf("Metadata unavailable, used filename: %s", name))
			}
		}

		if ok {
			entry := title + songlist.Delimiter + artist
			result.Entries = append(result.Entries, entry)
			rep.Message("✓ " + entry)
		} else {
			result.Failed = append(result.Failed, name)
			rep.Message("✗ Cannot parse: " + name)
		}
		rep.Progress(i+1, len(files))
	}
	sort.Strings(result.Entries)

	setPhase(rep, WritePlaylist)
	header := formatter.PlaylistHeader{Generated: g.now(), Source: opts.Folder, Method: method}
	if err := formatter.WritePlaylist(opts.Output, header, result.Entries); err != nil {
		rep.Message(fmt.Sprintf("Failed to write song list: %v", err))
		g.logger.Error("write failed", "output", opts.Output, "error", err)
		return result, err
	}

	rep.Message(fmt.Sprintf("Song list written to %s", opts.Output))
	rep.Message(fmt.Sprintf("Parsed: %d, failed: %d", len(result.Entries), len(result.Failed)))
	if len(result.Failed) > 0 {
		rep.Message("Files that could not be parsed:")
		for _, name := range result.Failed[:min(len(result.Failed), maxListedFailures)] {
			rep.Message("  • " + name)
		}
		if extra := len(result.Failed) - maxListedFailures; extra > 0 {
			rep.Message(fmt.Sprintf("  ... and %d more", extra))
		}
	}
	g.logger.Info("song list generated", "output", opts.Output, "entries", len(result.Entries), "failed", len(result.Failed))
	return result, nil
}

// Analyze counts the audio files in folder by format and by how an entry could be derived.
func (g *Generator) Analyze(ctx context.Context, folder string, includeSubdirs bool) (*FolderAnalysis, error) {
	if err := checkFolder(folder); err != nil {
		return nil, err
	}

	files, err := collectAudio(ctx, folder, includeSubdirs, func(dir string, err error) {
		g.logger.Warn("skipping unreadable directory", "dir", dir, "error", err)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrAborted, err)
	}

	analysis := &FolderAnalysis{Folder: folder, TotalFiles: len(files), Formats: make(map[string]int)}
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return analysis, fmt.Errorf("%w: %w", shared.ErrAborted, err)
		}

		name := filepath.Base(path)
		analysis.Formats[strings.ToLower(filepath.Ext(name))]++

		if _, _, ok := ParseFilename(shared.Stem(name)); ok {
			analysis.Parseable++
		} else {
			analysis.Unparseable = append(analysis.Unparseable, name)
		}
		if _, _, ok := g.fromMetadata(path); ok {
			analysis.WithMetadata++
		}
	}
	return analysis, nil
}
