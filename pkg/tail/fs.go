package tail

import (
	"errors"
	"io"
)

// ErrNotAFile reports that a path resolves to a directory or another
// non-regular file. FileSystem implementations wrap it so the engine can
// classify the failure.
var ErrNotAFile = errors.New("not a regular file")

// FileSystem is the engine's view of the file system. Implementations must
// deliver bytes in file order and report sizes in bytes.
type FileSystem interface {
	// Stat returns the total size of the regular file at path.
	Stat(path string) (size int64, err error)
	// StreamFrom returns a reader over the file's bytes starting at start.
	StreamFrom(path string, start int64) (io.ReadCloser, error)
	// ReadRange reads exactly length bytes at offset.
	ReadRange(path string, offset, length int64) ([]byte, error)
}
