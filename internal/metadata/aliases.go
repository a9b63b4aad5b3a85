package metadata

import (
	"fmt"
	"strconv"
	"strings"
)

// Tag key aliases per field, probed in order. Keys cover ID3v2.3/2.4 frames, ID3v2.2 frames,
// Vorbis comments and MP4 atoms.
var fieldAliases = map[string][]string{
	"title":       {"TIT2", "TT2", "TITLE", "\xa9nam", "©nam"},
	"artist":      {"TPE1", "TP1", "ARTIST", "\xa9ART", "©ART", "\xa9art"},
	"album":       {"TALB", "TAL", "ALBUM", "\xa9alb", "©alb"},
	"albumartist": {"TPE2", "TP2", "ALBUMARTIST", "ALBUM ARTIST", "aART"},
	"date":        {"TDRC", "TYER", "TYE", "DATE", "YEAR", "\xa9day", "©day"},
	"genre":       {"TCON", "TCO", "GENRE", "\xa9gen", "©gen"},
	"track":       {"TRCK", "TRK", "TRACKNUMBER", "trkn"},
}

// lookup returns the first non-empty value among aliases in raw.
//
// Exact keys are tried before case-insensitive ones.
func lookup(raw map[string]any, aliases []string) string {
	for _, alias := range aliases {
		if v, ok := raw[alias]; ok {
			if s := stringify(v); s != "" {
				return s
			}
		}
	}
	for _, alias := range aliases {
		for key, v := range raw {
			if strings.EqualFold(key, alias) {
				if s := stringify(v); s != "" {
					return s
				}
			}
		}
	}
	return ""
}

// stringify converts a raw tag value to trimmed text.
func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case []string:
		for _, s := range val {
			if s = strings.TrimSpace(s); s != "" {
				return s
			}
		}
		return ""
	case int:
		if val <= 0 {
			return ""
		}
		return strconv.Itoa(val)
	case fmt.Stringer:
		return strings.TrimSpace(val.String())
	default:
		return ""
	}
}

// textFields resolves every aliased field from a raw tag map.
func textFields(raw map[string]any) map[string]string {
	fields := make(map[string]string, len(fieldAliases))
	for field, aliases := range fieldAliases {
		if v := lookup(raw, aliases); v != "" {
			fields[field] = v
		}
	}
	return fields
}
