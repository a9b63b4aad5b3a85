//go:build !notags

package metadata

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/dhowden/tag"
	"github.com/go-audio/wav"
	"github.com/go-flac/go-flac"

	"github.com/desertthunder/songpick/internal/models"
	"github.com/desertthunder/songpick/internal/shared"
)

// TagExtractor reads tags with dhowden/tag, WAV INFO chunks with go-audio/wav and FLAC stream info
// with go-flac.
type TagExtractor struct {
	logger *log.Logger
}

// NewTagExtractor creates a [TagExtractor]. A nil logger discards debug output.
func NewTagExtractor(logger *log.Logger) *TagExtractor {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &TagExtractor{logger: logger}
}

// Extract reads the metadata of the file at path.
//
// Files without tags still produce a record carrying size, format and stream details.
func (e *TagExtractor) Extract(path string) (*models.MusicMetadata, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", shared.ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: failed to stat %s: %v", shared.ErrIOFailure, path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", shared.ErrInvalidPath, path)
	}
	if !shared.IsSupportedAudio(path) {
		return nil, fmt.Errorf("%w: %s", shared.ErrUnsupportedFormat, filepath.Ext(path))
	}

	md := &models.MusicMetadata{
		Filepath: path,
		Filename: filepath.Base(path),
		Format:   shared.FormatName(path),
		Size:     info.Size(),
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open %s: %v", shared.ErrIOFailure, path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		err = e.readWAV(f, md)
	case ".flac":
		if err = e.readTags(f, md); err == nil {
			err = e.readFLACStream(f, md)
		}
	default:
		err = e.readTags(f, md)
	}
	if err != nil {
		return nil, err
	}
	return md, nil
}

// readTags fills the textual fields from dhowden/tag.
func (e *TagExtractor) readTags(f io.ReadSeeker, md *models.MusicMetadata) error {
	m, err := tag.ReadFrom(f)
	if err != nil {
		if errors.Is(err, tag.ErrNoTagsFound) {
			e.logger.Debug("no tags found", "file", md.Filename)
			return nil
		}
		return fmt.Errorf("failed to read tags from %s: %w", md.Filename, err)
	}

	fields := textFields(m.Raw())
	md.Title = firstNonEmpty(fields["title"], m.Title())
	md.Artist = firstNonEmpty(fields["artist"], m.Artist())
	md.Album = firstNonEmpty(fields["album"], m.Album())
	md.AlbumArtist = firstNonEmpty(fields["albumartist"], m.AlbumArtist())
	md.Genre = firstNonEmpty(fields["genre"], m.Genre())
	md.Date = fields["date"]
	if md.Date == "" && m.Year() > 0 {
		md.Date = strconv.Itoa(m.Year())
	}
	md.Track = fields["track"]
	if track, _ := m.Track(); md.Track == "" && track > 0 {
		md.Track = strconv.Itoa(track)
	}
	return nil
}

// readFLACStream fills duration and average bitrate from the STREAMINFO block.
func (e *TagExtractor) readFLACStream(f io.ReadSeeker, md *models.MusicMetadata) error {
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("%w: failed to rewind %s: %v", shared.ErrIOFailure, md.Filename, err)
	}

	file, err := flac.ParseMetadata(f)
	if err != nil {
		return fmt.Errorf("failed to parse FLAC metadata of %s: %w", md.Filename, err)
	}
	streamInfo, err := file.GetStreamInfo()
	if err != nil {
		e.logger.Debug("missing FLAC stream info", "file", md.Filename, "error", err)
		return nil
	}

	if streamInfo.SampleRate > 0 && streamInfo.SampleCount > 0 {
		md.Duration = float64(streamInfo.SampleCount) / float64(streamInfo.SampleRate)
		md.Bitrate = int(float64(md.Size*8) / md.Duration)
	}
	return nil
}

// readWAV fills textual fields from the LIST/INFO chunk and stream details from the format chunk.
func (e *TagExtractor) readWAV(f io.ReadSeeker, md *models.MusicMetadata) error {
	d := wav.NewDecoder(f)
	d.ReadMetadata()
	if err := d.Err(); err != nil {
		return fmt.Errorf("failed to read WAV metadata of %s: %w", md.Filename, err)
	}

	if d.Metadata != nil {
		md.Title = strings.TrimSpace(d.Metadata.Title)
		md.Artist = strings.TrimSpace(d.Metadata.Artist)
		md.Album = strings.TrimSpace(d.Metadata.Product)
		md.Genre = strings.TrimSpace(d.Metadata.Genre)
		md.Track = strings.TrimSpace(d.Metadata.TrackNbr)
		md.Date = strings.TrimSpace(d.Metadata.CreationDate)
	}

	if duration, err := d.Duration(); err == nil && duration > 0 {
		md.Duration = duration.Seconds()
	}
	md.Bitrate = int(d.AvgBytesPerSec) * 8
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
