// Package fs implements the tail engine's file system contract on top of
// the operating system.
package fs

import (
	"fmt"
	"io"
	"os"

	"github.com/nlines/taild/pkg/tail"
)

// OS reads files directly from the local file system.
type OS struct{}

// New returns an OS-backed file system.
func New() *OS {
	return &OS{}
}

func (*OS) Stat(path string) (int64, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	if !fi.Mode().IsRegular() {
		return 0, fmt.Errorf("%s: %w", path, tail.ErrNotAFile)
	}
	return fi.Size(), nil
}

func (*OS) StreamFrom(path string, start int64) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if start > 0 {
		if _, err := f.Seek(start, io.SeekStart); err != nil {
			_ = f.Close()
			return nil, err
		}
	}
	return f, nil
}

func (*OS) ReadRange(path string, offset, length int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	buf := make([]byte, length)
	n, err := f.ReadAt(buf, offset)
	// ReadAt returns io.EOF even when the final read is complete.
	if err != nil && !(err == io.EOF && int64(n) == length) {
		return nil, err
	}
	return buf, nil
}

// ListDir returns the entry names of the directory at dir.
func ListDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}
