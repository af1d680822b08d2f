package core

import (
	"bytes"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// fakeFastTransfer copies with io.CopyN so tests can run the fast-path logic
// against any reader and writer.
type fakeFastTransfer struct {
	perCall   int
	fail      func(call int) error
	calls     int
	requested []int
}

func (f *fakeFastTransfer) Name() string {
	return "fake"
}

func (f *fakeFastTransfer) Transfer(dst io.Writer, src Source, n int) (int, error) {
	f.calls++
	f.requested = append(f.requested, n)

	if f.fail != nil {
		if err := f.fail(f.calls); err != nil {
			return 0, err
		}
	}

	limit := n
	if f.perCall > 0 && f.perCall < limit {
		limit = f.perCall
	}

	written, err := io.CopyN(dst, src, int64(limit))
	if err == io.EOF {
		err = nil
	}

	return int(written), err
}

func failAlways(err error) func(int) error {
	return func(int) error {
		return err
	}
}

func failOnCall(call int, err error) func(int) error {
	return func(n int) error {
		if n == call {
			return err
		}

		return nil
	}
}

// stubSource reports a fixed size regardless of its content.
type stubSource struct {
	io.Reader
	size    int64
	statErr error
}

func (s *stubSource) Stat() (fs.FileInfo, error) {
	if s.statErr != nil {
		return nil, s.statErr
	}

	return stubInfo{size: s.size}, nil
}

type stubInfo struct {
	size int64
}

func (i stubInfo) Name() string       { return "stub" }
func (i stubInfo) Size() int64        { return i.size }
func (i stubInfo) Mode() fs.FileMode  { return 0o644 }
func (i stubInfo) ModTime() time.Time { return time.Time{} }
func (i stubInfo) IsDir() bool        { return false }
func (i stubInfo) Sys() any           { return nil }

// shortWriter accepts one byte less than offered.
type shortWriter struct {
	writes int
}

func (w *shortWriter) Write(p []byte) (int, error) {
	w.writes++
	if len(p) == 0 {
		return 0, nil
	}

	return len(p) - 1, nil
}

// failOnceWriter fails its first write and behaves like a buffer afterwards.
type failOnceWriter struct {
	bytes.Buffer
	failed bool
	err    error
}

func (w *failOnceWriter) Write(p []byte) (int, error) {
	if !w.failed {
		w.failed = true
		return 0, w.err
	}

	return w.Buffer.Write(p)
}

type recordingReporter struct {
	lines []string
}

func (r *recordingReporter) Diagnostic(program, path, message string) {
	r.lines = append(r.lines, program+": "+path+": "+message)
}

func patterned(size int) []byte {
	data := make([]byte, size)
	for i := range data {
		data[i] = byte(i % 251)
	}

	return data
}

func writeTempFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("Failed to create %s: %v", name, err)
	}

	return path
}

func openTempFile(t *testing.T, dir, name string, data []byte) *os.File {
	t.Helper()

	file, err := os.Open(writeTempFile(t, dir, name, data))
	if err != nil {
		t.Fatalf("Failed to open %s: %v", name, err)
	}

	t.Cleanup(func() {
		_ = file.Close()
	})

	return file
}
