// Package metadata reads embedded tags and stream details from audio files.
//
// Tag reading is an optional capability. Binaries built with the "notags" build tag carry no tag
// backend: [Available] reports false and [Default] returns nil, and callers fall back to file name
// matching.
//
// Backends:
//   - ID3, MP4, FLAC and Ogg tags through github.com/dhowden/tag
//   - FLAC stream info through github.com/go-flac/go-flac
//   - WAV INFO chunks and stream info through github.com/go-audio/wav
package metadata
