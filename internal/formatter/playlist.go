package formatter

import (
	"bytes"
	"fmt"
	"time"
)

// Methods recorded in generated song list headers.
const (
	MethodFilename = "filename parsing"
	MethodMetadata = "metadata first"
)

// PlaylistHeader describes a generated song list.
type PlaylistHeader struct {
	Generated time.Time
	Source    string
	Method    string
}

// RenderPlaylist renders a generated song list: a '#' header block, a blank line, then one entry per line.
func RenderPlaylist(header PlaylistHeader, entries []string) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# Generated: %s\n", header.Generated.Format(TimestampLayout))
	fmt.Fprintf(&buf, "# Source folder: %s\n", header.Source)
	fmt.Fprintf(&buf, "# Total songs: %d\n", len(entries))
	fmt.Fprintf(&buf, "# Method: %s\n", header.Method)
	buf.WriteString("\n")
	for _, entry := range entries {
		buf.WriteString(entry)
		buf.WriteString("\n")
	}
	return buf.Bytes()
}

// WritePlaylist renders entries and writes them to path, creating parent directories.
func WritePlaylist(path string, header PlaylistHeader, entries []string) error {
	return writeFile(path, RenderPlaylist(header, entries))
}
