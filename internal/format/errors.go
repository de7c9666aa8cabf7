package format

import "errors"

var (
	// ErrTruncated indicates the buffer lacked the bytes required for a structure.
	ErrTruncated = errors.New("format: truncated buffer")
	// ErrBadDirectory indicates the section directory could not be walked.
	ErrBadDirectory = errors.New("format: malformed section directory")
)
