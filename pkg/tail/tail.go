// Package tail emits the last N lines of a file using a single forward scan
// whose memory use is bounded by N, independent of file size.
package tail

import (
	"context"
	"fmt"
	"io"
)

const (
	// DefaultLines is the line count used when the caller does not pick one.
	DefaultLines = 10
	// DefaultBlockSize is the granularity of scan reads. It only affects
	// throughput, never which bytes are produced.
	DefaultBlockSize = 32 * 1024
)

// Engine locates and extracts the last N lines of files provided by a
// FileSystem. Calls share no mutable state and may run concurrently.
type Engine struct {
	fs        FileSystem
	blockSize int
}

// Option customizes an Engine.
type Option func(*Engine)

// WithBlockSize overrides the scan chunk size. Non-positive values are
// ignored.
func WithBlockSize(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.blockSize = n
		}
	}
}

// NewEngine returns an Engine reading through fsys.
func NewEngine(fsys FileSystem, opts ...Option) *Engine {
	e := &Engine{
		fs:        fsys,
		blockSize: DefaultBlockSize,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Tail writes the last n lines of the file at path to w and reports the
// number of bytes written. A file with fewer than n lines is written in
// full; an empty file yields no output and no error. The final line counts
// as a line even without a trailing newline. The scan is abandoned when ctx
// is done.
func (e *Engine) Tail(ctx context.Context, w io.Writer, path string, n int) (int64, error) {
	if n <= 0 {
		return 0, &Error{
			Phase: PhaseScan,
			Kind:  KindInvalidArgument,
			Path:  path,
			Err:   fmt.Errorf("line count must be positive, got %d", n),
		}
	}
	start, size, err := e.locate(ctx, path, n)
	if err != nil {
		return 0, err
	}
	return e.extract(w, path, start, size-start)
}

// locate is the scan phase: one forward pass recording the offsets of the
// last n+1 newlines, from which the byte offset where the last n lines begin
// is derived. start is 0 when the file holds at most n lines.
func (e *Engine) locate(ctx context.Context, path string, n int) (start, size int64, err error) {
	size, err = e.fs.Stat(path)
	if err != nil {
		return 0, 0, newError(PhaseScan, path, err)
	}
	r, err := e.fs.StreamFrom(path, 0)
	if err != nil {
		return 0, 0, newError(PhaseScan, path, err)
	}
	defer r.Close()

	ring := newNewlineRing(n + 1)
	buf := make([]byte, e.blockSize)
	var offset int64
	for {
		if err := ctx.Err(); err != nil {
			return 0, 0, newError(PhaseScan, path, err)
		}
		m, err := r.Read(buf)
		for i := 0; i < m; i++ {
			if buf[i] == '\n' {
				ring.record(offset + int64(i))
			}
		}
		offset += int64(m)
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, 0, newError(PhaseScan, path, err)
		}
	}

	// The oldest retained entry is the (n+1)-th-from-last newline; the last
	// n lines begin one byte past it. Fewer than n+1 newlines means the
	// whole file is the answer.
	if boundary, ok := ring.oldest(); ok {
		start = boundary + 1
	}
	return start, size, nil
}

// extract is the extraction phase: one positioned read of the tail range.
func (e *Engine) extract(w io.Writer, path string, start, length int64) (int64, error) {
	if length <= 0 {
		return 0, nil
	}
	data, err := e.fs.ReadRange(path, start, length)
	if err != nil {
		return 0, newError(PhaseExtract, path, err)
	}
	m, err := w.Write(data)
	if err != nil {
		return int64(m), newError(PhaseExtract, path, err)
	}
	return int64(m), nil
}
