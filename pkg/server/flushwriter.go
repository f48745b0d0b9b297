package server

import (
	"io"
)

// FlushWriter flushes after every write so tail output reaches the client
// as soon as it is produced.
type FlushWriter interface {
	io.Writer
	Flush()
}

type flushWriter struct {
	w FlushWriter
}

func (f *flushWriter) Flush() {
	f.w.Flush()
}

func (f *flushWriter) Write(p []byte) (n int, err error) {
	n, err = f.w.Write(p)
	f.w.Flush()
	return n, err
}

func NewFlushWriter(w FlushWriter) FlushWriter {
	return &flushWriter{w}
}
