package downloader

import "errors"

var (
	// ErrNotAFile is returned when a single fetch targets an empty key or a
	// directory marker.
	ErrNotAFile = errors.New("path does not name a file")
	// ErrUnsafePath is returned when an object would be written outside the
	// destination directory.
	ErrUnsafePath = errors.New("object path escapes destination")
)
