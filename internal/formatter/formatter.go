// package formatter renders songpick results as song list files, comparison reports, text, JSON and YAML
package formatter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/desertthunder/songpick/internal/metadata"
	"github.com/desertthunder/songpick/internal/models"
	"github.com/desertthunder/songpick/internal/shared"
)

// TimestampLayout is used in every generated header.
const TimestampLayout = "2006-01-02 15:04:05"

const maxSafeNameLen = 50

var illegalFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)

// SafeFilename strips the extension from name, replaces characters that are illegal in file names
// with '_' and truncates the result to 50 runes.
func SafeFilename(name string) string {
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = illegalFilenameChars.ReplaceAllString(name, "_")
	if runes := []rune(name); len(runes) > maxSafeNameLen {
		name = string(runes[:maxSafeNameLen])
	}
	return name
}

// ToJSON marshals v as indented JSON.
func ToJSON(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// ToYAML marshals v as YAML with two space indentation.
func ToYAML(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("failed to marshal YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to flush YAML: %w", err)
	}
	return buf.Bytes(), nil
}

// Encode marshals v as "json" or "yaml".
func Encode(format string, v any) ([]byte, error) {
	switch strings.ToLower(format) {
	case "json":
		return ToJSON(v)
	case "yaml", "yml":
		return ToYAML(v)
	default:
		return nil, fmt.Errorf("%w: unknown output format %q", shared.ErrInvalidArgument, format)
	}
}

// MetadataText renders a tag record as aligned "Key: value" lines for display.
func MetadataText(md *models.MusicMetadata) []byte {
	var buf bytes.Buffer
	row := func(key, value string) {
		if value == "" {
			value = "-"
		}
		fmt.Fprintf(&buf, "%-13s %s\n", key+":", value)
	}

	row("File", md.Filepath)
	row("Title", md.Title)
	row("Artist", md.Artist)
	row("Album", md.Album)
	row("Album Artist", md.AlbumArtist)
	row("Date", md.Date)
	row("Genre", md.Genre)
	row("Track", md.Track)
	row("Format", md.Format)
	row("Duration", metadata.FormatDuration(md.Duration))
	row("Bitrate", metadata.FormatBitrate(md.Bitrate))
	row("Size", metadata.FormatSize(md.Size))
	return buf.Bytes()
}

// writeFile writes data to path, creating parent directories.
func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if _, err := shared.EnsureDir(dir); err != nil {
			return err
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("%w: failed to write %s: %v", shared.ErrIOFailure, path, err)
	}
	return nil
}
