package save

import (
	"errors"
	"fmt"
)

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindConfig      ErrKind = iota // malformed descriptor or layout data
	ErrKindNotFound                   // unknown flag/counter id
	ErrKindRange                      // value outside the field's representable width
	ErrKindOutOfBounds                // descriptor addresses past the buffer end
	ErrKindCorrupt                    // checksum mismatch
	ErrKindIO                         // disk-level failure on open/commit
	ErrKindState                      // invalid operation for the document's state
)

// String returns the kind's stable name, suitable for UI error channels.
func (k ErrKind) String() string {
	switch k {
	case ErrKindConfig:
		return "config"
	case ErrKindNotFound:
		return "not-found"
	case ErrKindRange:
		return "range"
	case ErrKindOutOfBounds:
		return "out-of-bounds"
	case ErrKindCorrupt:
		return "corrupt"
	case ErrKindIO:
		return "io"
	case ErrKindState:
		return "state"
	default:
		return "unknown"
	}
}

// Error is the typed error returned across the package API.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Sentinels commonly returned by the package.
var (
	// ErrNotFound indicates an id unknown to the registry.
	ErrNotFound = &Error{Kind: ErrKindNotFound, Msg: "save: id not found"}
	// ErrClosed indicates an operation on a closed document.
	ErrClosed = &Error{Kind: ErrKindState, Msg: "save: document is closed"}
)

// KindOf extracts the ErrKind from err, unwrapping as needed.
func KindOf(err error) (ErrKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// errf builds a typed error with formatted context.
func errf(kind ErrKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// wrapf builds a typed error around an underlying cause.
func wrapf(kind ErrKind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}
