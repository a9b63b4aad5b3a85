package shared

import (
	"path/filepath"
	"strings"
)

// SupportedExtensions lists the audio file extensions songpick works with.
var SupportedExtensions = []string{".mp3", ".flac", ".wav", ".m4a", ".aac", ".ogg"}

// IsSupportedAudio reports whether name carries a supported audio extension, ignoring case.
func IsSupportedAudio(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, supported := range SupportedExtensions {
		if ext == supported {
			return true
		}
	}
	return false
}

// Stem returns the base name of path without its extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// FormatName returns the upper-cased extension of path without the dot, e.g. "FLAC".
func FormatName(path string) string {
	return strings.ToUpper(strings.TrimPrefix(filepath.Ext(path), "."))
}
