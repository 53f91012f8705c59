package gridcanvas

import (
	"errors"
	"fmt"
)

// Errors reported by the converter. Every failure is fatal to a run; callers
// match them with errors.Is.
var (
	// ErrInvalidArgument is returned for caller configuration errors such as
	// a non-positive resolution or canvas size.
	ErrInvalidArgument = errors.New("gridcanvas: invalid argument")

	// ErrStreamIncomplete is returned when a record ends before a clean
	// chunk boundary.
	ErrStreamIncomplete = errors.New("gridcanvas: record stream incomplete")

	// ErrMalformedRecord is returned when a record has a bad header or a
	// fragment payload that cannot be decoded.
	ErrMalformedRecord = errors.New("gridcanvas: malformed record")

	// ErrIO is matched by every *PathError.
	ErrIO = errors.New("gridcanvas: i/o failure")
)

// PathError records a failed file operation and the path it touched.
type PathError struct {
	Op   string
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *PathError) Unwrap() error { return e.Err }

// Is reports whether target is ErrIO.
func (e *PathError) Is(target error) bool { return target == ErrIO }

// invalidArgf wraps ErrInvalidArgument with a formatted reason.
func invalidArgf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
