package tail

import (
	"errors"
	"fmt"
	"io/fs"
)

// Kind classifies a tail failure.
type Kind string

const (
	KindNotFound         Kind = "not found"
	KindPermissionDenied Kind = "permission denied"
	KindNotAFile         Kind = "not a file"
	KindInvalidArgument  Kind = "invalid argument"
	KindIO               Kind = "io"
)

// Phase names the stage a failure occurred in.
type Phase string

const (
	PhaseScan    Phase = "scan"
	PhaseExtract Phase = "extract"
)

// Error is the failure type of the engine. Err carries the underlying
// cause, Phase the stage it surfaced in.
type Error struct {
	Phase Phase
	Kind  Kind
	Path  string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("tail %s %q: %s", e.Phase, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(phase Phase, path string, err error) *Error {
	return &Error{
		Phase: phase,
		Kind:  classify(err),
		Path:  path,
		Err:   err,
	}
}

func classify(err error) Kind {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return KindNotFound
	case errors.Is(err, fs.ErrPermission):
		return KindPermissionDenied
	case errors.Is(err, ErrNotAFile):
		return KindNotAFile
	default:
		return KindIO
	}
}
