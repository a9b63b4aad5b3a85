package shared

import "fmt"

var (
	// Input errors
	ErrNotFound        = fmt.Errorf("not found")
	ErrInvalidPath     = fmt.Errorf("invalid path")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrParse           = fmt.Errorf("parse error")

	// Configuration errors
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// File system errors
	ErrIOFailure    = fmt.Errorf("I/O failure")
	ErrNoAudioFiles = fmt.Errorf("no audio files found")

	// Metadata errors
	ErrCapabilityUnavailable = fmt.Errorf("metadata support unavailable")
	ErrUnsupportedFormat     = fmt.Errorf("unsupported audio format")

	// Run control errors
	ErrAborted        = fmt.Errorf("operation aborted")
	ErrAlreadyRunning = fmt.Errorf("operation already running")
)
