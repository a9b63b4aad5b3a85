// Package ui implements the interactive terminal view for picking songs, built on bubbletea's Elm architecture.
//
// The TUI walks through three views:
//  1. [ConfirmView] : Review the song list, library and output folder before starting
//  2. [ScanView] : Follow the scan with a progress bar and the most recent messages
//  3. [ResultView] : Read the summary and browse the songs that were not found
//
// Progress reaches the (view) [Model] through a channel fed by a [tasks.ChannelReporter], so the scan never
// blocks on rendering. Pressing esc or ctrl+c during a scan cancels its context; copies made so far are kept.
package ui
