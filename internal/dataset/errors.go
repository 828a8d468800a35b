package dataset

import "errors"

var (
	// ErrConfiguration covers missing parameters and an unusable input directory.
	ErrConfiguration = errors.New("configuration error")
	// ErrFileRead is returned when a response file cannot be read or is not valid UTF-8.
	ErrFileRead = errors.New("file read error")
	// ErrExternalService is returned when query synthesis fails or yields nothing usable.
	ErrExternalService = errors.New("external service error")
	// ErrOutputWrite is returned when the output file cannot be created or written.
	ErrOutputWrite = errors.New("output write error")
)
