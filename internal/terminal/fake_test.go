package terminal

import (
	"io"
	"sync"
)

// fakeProcess feeds scripted output through a pipe and records input.
type fakeProcess struct {
	reader *io.PipeReader
	writer *io.PipeWriter

	mu      sync.Mutex
	input   []byte
	resizes [][2]int
	killed  int
	waitErr error
}

func newFakeProcess() *fakeProcess {
	r, w := io.Pipe()
	return &fakeProcess{reader: r, writer: w}
}

func (f *fakeProcess) Read(p []byte) (int, error) { return f.reader.Read(p) }

func (f *fakeProcess) Write(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.input = append(f.input, p...)
	return len(p), nil
}

func (f *fakeProcess) Resize(cols, rows int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resizes = append(f.resizes, [2]int{cols, rows})
	return nil
}

func (f *fakeProcess) Wait() error { return f.waitErr }

func (f *fakeProcess) Kill() error {
	f.mu.Lock()
	f.killed++
	f.mu.Unlock()
	return f.writer.Close()
}

func (f *fakeProcess) Pid() int { return 42 }

func (f *fakeProcess) Name() string { return "fake" }

func (f *fakeProcess) emit(s string) {
	_, _ = f.writer.Write([]byte(s))
}

func (f *fakeProcess) exit() {
	_ = f.writer.Close()
}
