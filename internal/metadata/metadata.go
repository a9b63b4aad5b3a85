package metadata

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/songpick/internal/models"
)

// Extractor reads a [models.MusicMetadata] record from an audio file.
//
// Implementations return an error whenever no record can be produced. Callers treat any error as
// "metadata absent" for that file.
type Extractor interface {
	Extract(path string) (*models.MusicMetadata, error)
}

// Available reports whether this binary includes a tag reading backend.
func Available() bool {
	return available
}

// Default returns the tag backend, or nil when [Available] is false.
func Default(logger *log.Logger) Extractor {
	if !available {
		return nil
	}
	return newBackend(logger)
}

// FormatDuration renders seconds as m:ss, or "N/A" for non-positive values.
func FormatDuration(seconds float64) string {
	if seconds <= 0 {
		return "N/A"
	}
	total := int(seconds)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// FormatSize renders a byte count with a binary unit, or "N/A" for non-positive values.
func FormatSize(size int64) string {
	if size <= 0 {
		return "N/A"
	}
	value := float64(size)
	for _, unit := range []string{"B", "KB", "MB", "GB"} {
		if value < 1024 {
			return fmt.Sprintf("%.1f %s", value, unit)
		}
		value /= 1024
	}
	return fmt.Sprintf("%.1f TB", value)
}

// FormatBitrate renders bits per second as kbps, or "N/A" for non-positive values.
func FormatBitrate(bps int) string {
	if bps <= 0 {
		return "N/A"
	}
	return fmt.Sprintf("%d kbps", bps/1000)
}
