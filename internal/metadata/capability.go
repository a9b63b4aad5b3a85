//go:build !notags

package metadata

import "github.com/charmbracelet/log"

const available = true

func newBackend(logger *log.Logger) Extractor {
	return NewTagExtractor(logger)
}
