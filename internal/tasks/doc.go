// Package tasks runs the long-lived songpick operations and reports their progress.
//
// # Operations
//
//  1. [Scanner.Run] : Find song list entries in a music library
//     - Parses the song list (see package songlist)
//     - Walks the library top-down, matching each audio file by tags and/or file name
//     - Copies matches into the output folder without overwriting
//     - Reports unfound entries at the end
//
//  2. [Comparator.Compare] : Diff two song lists
//     - Reads both lists as sets, falling back to GBK for legacy files
//     - Computes common and exclusive entries, optionally pairing near-identical ones
//     - Writes four report files when a report folder is given
//
//  3. [Generator.Generate] : Build a song list from a folder of audio files
//     - Derives "title - artist" from tags or file names
//     - Writes the sorted list with a '#' header block
//
// # Progress Reporting
//
// Every operation takes a [Reporter] with two methods: Progress(current, total) and Message(msg).
// [ChannelReporter] turns these calls into [ProgressUpdate] values on a channel for CLI or UI
// consumers; its sends block so message order is preserved.
//
// # Cancellation
//
// Operations check their context before each directory and before each file. Work finished before
// cancellation is kept: copied files stay in place and the partial result is returned together with
// an error wrapping shared.ErrAborted.
package tasks
