package tasks

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/songpick/internal/matcher"
	"github.com/desertthunder/songpick/internal/metadata"
	"github.com/desertthunder/songpick/internal/models"
	"github.com/desertthunder/songpick/internal/shared"
	"github.com/desertthunder/songpick/internal/songlist"
)

// State is the lifecycle state of a [Scanner].
type State int32

const (
	Idle State = iota
	Running
	Completed
	Aborted
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Completed:
		return "completed"
	case Aborted:
		return "aborted"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// ScanOptions configures a library scan.
type ScanOptions struct {
	Library     string  // Root of the music library
	Output      string  // Directory matched files are copied into
	UseMetadata bool    // Try tag matching before file name matching
	Threshold   float64 // Minimum metadata score, 0 uses [matcher.DefaultThreshold]
}

// PickOptions configures [Scanner.Run].
type PickOptions struct {
	ListPath string // Song list to parse
	ScanOptions
}

// ScanResult summarizes a scan. It is returned for completed and aborted scans.
type ScanResult struct {
	RunID        string
	State        State
	Total        int               // Unique queries
	Found        int               // Queries satisfied by a copy or an existing destination file
	Copied       int               // Files copied during this run
	Existing     int               // Matches whose destination already existed
	FilesScanned int               // Supported audio files examined
	ParseSkipped int               // Malformed song list lines
	Status       models.SongStatus // Per-query found flags
	Unfound      []string          // Original lines still unfound, in list order
}

// Scanner finds song list entries in a library and copies the matches to an output directory.
//
// A Scanner runs one scan at a time; a concurrent call fails with [shared.ErrAlreadyRunning].
type Scanner struct {
	logger    *log.Logger
	extractor metadata.Extractor
	state     atomic.Int32
}

// NewScanner creates a [Scanner]. extractor may be nil, in which case only file names are matched.
func NewScanner(logger *log.Logger, extractor metadata.Extractor) *Scanner {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Scanner{logger: logger, extractor: extractor}
}

// State returns the state of the most recent scan.
func (s *Scanner) State() State {
	return State(s.state.Load())
}

func (s *Scanner) begin() bool {
	for {
		cur := s.state.Load()
		if State(cur) == Running {
			return false
		}
		if s.state.CompareAndSwap(cur, int32(Running)) {
			return true
		}
	}
}

func (s *Scanner) finish(st State) {
	s.state.Store(int32(st))
}

// Run parses the song list at opts.ListPath and scans the library for its entries.
//
// Malformed lines are reported and skipped. A song list that cannot be read fails the run.
func (s *Scanner) Run(ctx context.Context, rep Reporter, opts PickOptions) (*ScanResult, error) {
	rep = orNop(rep)
	if !s.begin() {
		return nil, fmt.Errorf("%w: scan in progress", shared.ErrAlreadyRunning)
	}

	setPhase(rep, ParseList)
	list, err := songlist.ParseFile(opts.ListPath, func(line int, text string) {
		rep.Message(fmt.Sprintf("Line %d has an invalid format, skipped: %s", line, text))
	})
	if err != nil {
		s.finish(Failed)
		rep.Message(fmt.Sprintf("Failed to read song list: %v", err))
		return nil, err
	}
	rep.Message(fmt.Sprintf("Parsed %d songs from %s", len(list.Queries), filepath.Base(opts.ListPath)))

	result, err := s.scan(ctx, rep, list.Queries, opts.ScanOptions)
	if result != nil {
		result.ParseSkipped = list.Skipped
	}
	return result, err
}

// Scan searches the library for queries and copies every match into the output directory.
func (s *Scanner) Scan(ctx context.Context, rep Reporter, queries []models.SongQuery, opts ScanOptions) (*ScanResult, error) {
	rep = orNop(rep)
	if !s.begin() {
		return nil, fmt.Errorf("%w: scan in progress", shared.ErrAlreadyRunning)
	}
	return s.scan(ctx, rep, queries, opts)
}

// scan runs with the state already set to [Running].
func (s *Scanner) scan(ctx context.Context, rep Reporter, queries []models.SongQuery, opts ScanOptions) (*ScanResult, error) {
	runID := shared.GenerateID()
	logger := shared.WithLogger(s.logger, "run", runID)
	status := models.NewSongStatus(queries)
	result := &ScanResult{RunID: runID, Total: len(status), Status: status}

	setPhase(rep, ScanLibrary)
	if len(queries) == 0 {
		rep.Message("Song list is empty, nothing to search")
		rep.Progress(0, 0)
		result.State = Completed
		s.finish(Completed)
		return result, nil
	}

	fail := func(err error) (*ScanResult, error) {
		logger.Error("scan failed", "error", err)
		rep.Message(err.Error())
		result.State = Failed
		s.finish(Failed)
		return nil, err
	}

	if !shared.IsDir(opts.Library) {
		return fail(fmt.Errorf("%w: music library %s is not a directory", shared.ErrInvalidPath, opts.Library))
	}

	created, err := shared.EnsureDir(opts.Output)
	if err != nil {
		return fail(fmt.Errorf("%w (output %s)", err, opts.Output))
	}
	if created {
		rep.Message(fmt.Sprintf("Created output folder %s", opts.Output))
	}

	extractor := s.extractor
	if opts.UseMetadata && extractor == nil {
		rep.Message("Metadata support is unavailable, falling back to filename matching")
		logger.Warn("metadata matching requested without a tag backend")
	}
	if !opts.UseMetadata {
		extractor = nil
	}

	rep.Message(fmt.Sprintf("Searching %s", opts.Library))
	logger.Info("scan started", "library", opts.Library, "output", opts.Output, "queries", result.Total, "metadata", extractor != nil)

	fm := &fileMatcher{
		logger:    logger,
		rep:       rep,
		queries:   queries,
		status:    status,
		extractor: extractor,
		threshold: opts.Threshold,
		output:    opts.Output,
		result:    result,
	}

	err = walkTree(ctx, opts.Library, true, func(dir string, files []fs.DirEntry) error {
		for _, f := range files {
			if err := ctx.Err(); err != nil {
				return err
			}
			if !shared.IsSupportedAudio(f.Name()) {
				continue
			}
			result.FilesScanned++
			fm.match(filepath.Join(dir, f.Name()))
			rep.Progress(result.Found, result.Total)
		}
		return nil
	}, func(dir string, err error) {
		logger.Warn("skipping unreadable directory", "dir", dir, "error", err)
		rep.Message(fmt.Sprintf("Cannot read folder %s: %v", dir, err))
	})

	result.Unfound = status.Unfound(queries)

	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			rep.Message("Operation aborted")
			logger.Info("scan aborted", "found", result.Found, "copied", result.Copied)
			result.State = Aborted
			s.finish(Aborted)
			return result, fmt.Errorf("%w: %w", shared.ErrAborted, err)
		}
		return fail(err)
	}

	setPhase(rep, Summarize)
	rep.Message(fmt.Sprintf("Search complete, %d files copied", result.Copied))
	if len(result.Unfound) > 0 {
		rep.Message(fmt.Sprintf("%d songs not found:", len(result.Unfound)))
		for _, line := range result.Unfound {
			rep.Message("- " + line)
		}
	}
	rep.Progress(result.Total, result.Total)

	logger.Info("scan completed", "found", result.Found, "copied", result.Copied, "existing", result.Existing, "unfound", len(result.Unfound))
	result.State = Completed
	s.finish(Completed)
	return result, nil
}

// fileMatcher applies the matching strategies to one library file at a time.
type fileMatcher struct {
	logger    *log.Logger
	rep       Reporter
	queries   []models.SongQuery
	status    models.SongStatus
	extractor metadata.Extractor
	threshold float64
	output    string
	result    *ScanResult
}

// match satisfies at most one unfound query with the file at path.
//
// Metadata is extracted at most once per file. A failed copy leaves the query unfound and the next
// query is tried.
func (m *fileMatcher) match(path string) {
	name := filepath.Base(path)
	stem := strings.ToLower(shared.Stem(name))

	var md *models.MusicMetadata
	extracted := false

	for _, q := range m.queries {
		if m.status.IsFound(q.OriginalLine) {
			continue
		}

		method := ""
		if m.extractor != nil {
			if !extracted {
				extracted = true
				var err error
				if md, err = m.extractor.Extract(path); err != nil {
					m.logger.Debug("metadata unavailable", "file", name, "error", err)
					md = nil
				}
			}
			if md != nil && matcher.MatchMetadata(q, md, m.threshold) {
				method = "metadata"
			}
		}
		if method == "" && matcher.MatchFilename(q.Title, q.Artist, stem) {
			method = "filename"
		}
		if method == "" {
			continue
		}

		dest := filepath.Join(m.output, name)
		if shared.FileExists(dest) {
			m.status.Mark(q.OriginalLine)
			m.result.Found++
			m.result.Existing++
			m.rep.Message(fmt.Sprintf("Already in output, skipped: %s (%s)", name, q.OriginalLine))
			return
		}

		if err := shared.CopyFile(path, dest); err != nil {
			m.logger.Error("copy failed", "src", path, "dst", dest, "error", err)
			m.rep.Message(fmt.Sprintf("Copy failed %s -> %s: %v", path, dest, err))
			continue
		}

		m.status.Mark(q.OriginalLine)
		m.result.Found++
		m.result.Copied++
		m.logger.Debug("copied", "query", q.OriginalLine, "file", name, "method", method)
		m.rep.Message(fmt.Sprintf("Found and copied (%s match): %s -> %s", method, q.OriginalLine, name))
		return
	}
}
