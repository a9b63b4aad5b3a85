// Package models defines the domain types shared by the songpick pipelines.
//
//   - [SongQuery] : One parsed song list entry to locate in a library
//   - [SongStatus] : Per-query found flags for a single scan
//   - [MusicMetadata] : Tags and stream details read from an audio file
//   - [ComparisonResult] : Set differences between two song lists
//
// Queries are keyed by their original line, so identical lines in a song list collapse into one query.
package models
