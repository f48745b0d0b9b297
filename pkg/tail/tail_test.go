package tail

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// memFS serves files from memory and can inject failures at every point of
// the engine's file system contract.
type memFS struct {
	files map[string][]byte

	statErr  error
	openErr  error
	readErr  error // returned by stream reads once readErrAfter bytes were served
	rangeErr error

	readErrAfter int
	chunk        int // max bytes per stream read, 0 means unlimited

	streamsOpened int
	streamsClosed int
}

func newMemFS(files map[string][]byte) *memFS {
	return &memFS{files: files}
}

func (m *memFS) Stat(path string) (int64, error) {
	if m.statErr != nil {
		return 0, m.statErr
	}
	data, ok := m.files[path]
	if !ok {
		return 0, iofs.ErrNotExist
	}
	return int64(len(data)), nil
}

func (m *memFS) StreamFrom(path string, start int64) (io.ReadCloser, error) {
	if m.openErr != nil {
		return nil, m.openErr
	}
	data, ok := m.files[path]
	if !ok {
		return nil, iofs.ErrNotExist
	}
	m.streamsOpened++
	return &memStream{fs: m, data: data[start:]}, nil
}

func (m *memFS) ReadRange(path string, offset, length int64) ([]byte, error) {
	if m.rangeErr != nil {
		return nil, m.rangeErr
	}
	data, ok := m.files[path]
	if !ok {
		return nil, iofs.ErrNotExist
	}
	if offset+length > int64(len(data)) {
		return nil, io.ErrUnexpectedEOF
	}
	out := make([]byte, length)
	copy(out, data[offset:offset+length])
	return out, nil
}

type memStream struct {
	fs   *memFS
	data []byte
	off  int
}

func (s *memStream) Read(p []byte) (int, error) {
	if s.fs.readErr != nil && s.off >= s.fs.readErrAfter {
		return 0, s.fs.readErr
	}
	if s.off >= len(s.data) {
		return 0, io.EOF
	}
	n := len(p)
	if c := s.fs.chunk; c > 0 && n > c {
		n = c
	}
	n = copy(p[:n], s.data[s.off:])
	s.off += n
	return n, nil
}

func (s *memStream) Close() error {
	s.fs.streamsClosed++
	return nil
}

func tailString(t *testing.T, content string, n int, opts ...Option) string {
	t.Helper()
	fsys := newMemFS(map[string][]byte{"f": []byte(content)})
	e := NewEngine(fsys, opts...)
	var buf bytes.Buffer
	written, err := e.Tail(context.Background(), &buf, "f", n)
	require.NoError(t, err)
	require.EqualValues(t, buf.Len(), written)
	require.Equal(t, fsys.streamsOpened, fsys.streamsClosed)
	return buf.String()
}

func TestTail(t *testing.T) {
	t.Parallel()
	testCases := map[string]struct {
		content string
		n       int
		want    string
	}{
		"last two of four": {
			content: "a\nb\nc\nd\n",
			n:       2,
			want:    "c\nd\n",
		},
		"n exceeds line count": {
			content: "a\nb\nc\nd\n",
			n:       10,
			want:    "a\nb\nc\nd\n",
		},
		"no trailing newline": {
			content: "a\nb\nc",
			n:       1,
			want:    "c",
		},
		"single line without newline, n=1": {
			content: "no terminator",
			n:       1,
			want:    "no terminator",
		},
		"single line without newline, n=5": {
			content: "no terminator",
			n:       5,
			want:    "no terminator",
		},
		"exactly n lines": {
			content: "a\nb\nc\n",
			n:       3,
			want:    "a\nb\nc\n",
		},
		"single newline": {
			content: "\n",
			n:       1,
			want:    "\n",
		},
		"empty lines in the middle": {
			content: "a\n\n\nb\n",
			n:       3,
			want:    "\n\nb\n",
		},
	}
	for name, tc := range testCases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, tailString(t, tc.content, tc.n))
		})
	}
}

func TestTailEmptyFile(t *testing.T) {
	t.Parallel()
	require.Empty(t, tailString(t, "", 10))
}

func TestTailIdempotent(t *testing.T) {
	t.Parallel()
	const content = "alpha\nbravo\ncharlie\ndelta"
	first := tailString(t, content, 2)
	second := tailString(t, content, 2)
	require.Equal(t, first, second)
	require.Equal(t, "charlie\ndelta", first)
}

// For terminated files the number of newlines in the output must equal
// min(n, lineCount), whatever the chunking granularity.
func TestTailNewlineCountProperty(t *testing.T) {
	t.Parallel()
	var sb strings.Builder
	const lineCount = 57
	for i := 0; i < lineCount; i++ {
		fmt.Fprintf(&sb, "line %d with some padding %s\n", i, strings.Repeat("x", i%13))
	}
	content := sb.String()
	for _, n := range []int{1, 2, 3, 10, 56, 57, 58, 500} {
		for _, block := range []int{1, 7, 64, DefaultBlockSize} {
			out := tailString(t, content, n, WithBlockSize(block))
			want := n
			if lineCount < n {
				want = lineCount
			}
			require.Equal(t, want, strings.Count(out, "\n"), "n=%d block=%d", n, block)
			require.True(t, strings.HasSuffix(content, out))
		}
	}
}

// Lines much longer than the scan chunk must not confuse the offset
// bookkeeping.
func TestTailLongLines(t *testing.T) {
	t.Parallel()
	lines := []string{
		strings.Repeat("a", 128*1024),
		strings.Repeat("b", 256*1024),
		"ccc",
		"dd",
		"e",
	}
	content := strings.Join(lines, "\n") + "\n"
	got := tailString(t, content, 3, WithBlockSize(1024))
	require.Equal(t, "ccc\ndd\ne\n", got)
}

// A multi-megabyte file with a tiny n exercises ring wraparound thousands of
// times; auxiliary state stays a ring of n+1 offsets plus one chunk buffer.
func TestTailLargeFileSmallN(t *testing.T) {
	t.Parallel()
	var sb strings.Builder
	for i := 0; i < 200000; i++ {
		fmt.Fprintf(&sb, "entry %07d\n", i)
	}
	got := tailString(t, sb.String(), 2, WithBlockSize(512))
	require.Equal(t, "entry 0199998\nentry 0199999\n", got)
}

func TestTailInvalidLineCount(t *testing.T) {
	t.Parallel()
	e := NewEngine(newMemFS(map[string][]byte{"f": []byte("a\n")}))
	for _, n := range []int{0, -1} {
		var buf bytes.Buffer
		written, err := e.Tail(context.Background(), &buf, "f", n)
		require.Zero(t, written)
		var terr *Error
		require.ErrorAs(t, err, &terr)
		require.Equal(t, KindInvalidArgument, terr.Kind)
	}
}

func TestTailFileNotFound(t *testing.T) {
	t.Parallel()
	e := NewEngine(newMemFS(nil))
	var buf bytes.Buffer
	_, err := e.Tail(context.Background(), &buf, "missing", 10)
	var terr *Error
	require.ErrorAs(t, err, &terr)
	require.Equal(t, KindNotFound, terr.Kind)
	require.Equal(t, PhaseScan, terr.Phase)
	require.ErrorIs(t, err, iofs.ErrNotExist)
}

func TestTailScanReadError(t *testing.T) {
	t.Parallel()
	cause := errors.New("disk gone")
	fsys := newMemFS(map[string][]byte{"f": []byte("a\nb\nc\nd\n")})
	fsys.readErr = cause
	fsys.readErrAfter = 4
	fsys.chunk = 2

	e := NewEngine(fsys)
	var buf bytes.Buffer
	written, err := e.Tail(context.Background(), &buf, "f", 2)
	require.Zero(t, written)
	var terr *Error
	require.ErrorAs(t, err, &terr)
	require.Equal(t, PhaseScan, terr.Phase)
	require.Equal(t, KindIO, terr.Kind)
	require.ErrorIs(t, err, cause)
	// No partial output, and the stream is released on the error path.
	require.Zero(t, buf.Len())
	require.Equal(t, fsys.streamsOpened, fsys.streamsClosed)
}

func TestTailExtractError(t *testing.T) {
	t.Parallel()
	cause := errors.New("positioned read failed")
	fsys := newMemFS(map[string][]byte{"f": []byte("a\nb\nc\nd\n")})
	fsys.rangeErr = cause

	e := NewEngine(fsys)
	var buf bytes.Buffer
	written, err := e.Tail(context.Background(), &buf, "f", 2)
	require.Zero(t, written)
	var terr *Error
	require.ErrorAs(t, err, &terr)
	require.Equal(t, PhaseExtract, terr.Phase)
	require.ErrorIs(t, err, cause)
	require.Zero(t, buf.Len())
}

func TestTailCanceled(t *testing.T) {
	t.Parallel()
	fsys := newMemFS(map[string][]byte{"f": []byte("a\nb\nc\nd\n")})
	e := NewEngine(fsys)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var buf bytes.Buffer
	_, err := e.Tail(ctx, &buf, "f", 2)
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, fsys.streamsOpened, fsys.streamsClosed)
}
