package terminal

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sync"

	"github.com/creack/pty"
)

// Process is the raw handle of a running shell. Reads return process output
// and writes deliver input.
type Process interface {
	io.ReadWriter
	Resize(cols, rows int) error
	Wait() error
	Kill() error
	Pid() int
	Name() string
}

// SpawnOptions configures a shell started on a pseudo-terminal.
type SpawnOptions struct {
	Shell string
	Args  []string
	Env   []string
	Dir   string
	Cols  int
	Rows  int
}

// Spawner starts processes. session.Service takes one so tests can avoid ptys.
type Spawner func(SpawnOptions) (Process, error)

type ptyProcess struct {
	cmd  *exec.Cmd
	ptmx *os.File
	name string

	done    chan struct{}
	waitErr error
	kill    sync.Once
}

// Spawn starts the shell on a new pty sized to the requested cells.
func Spawn(opts SpawnOptions) (Process, error) {
	shell := opts.Shell
	if shell == "" {
		shell = os.Getenv("SHELL")
	}
	if shell == "" {
		shell = "/bin/sh"
	}
	if _, err := exec.LookPath(shell); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrShellNotFound, shell)
	}
	cols, rows := opts.Cols, opts.Rows
	if cols <= 0 {
		cols = 80
	}
	if rows <= 0 {
		rows = 24
	}

	cmd := exec.Command(shell, opts.Args...) //nolint:gosec
	cmd.Dir = opts.Dir
	cmd.Env = append(os.Environ(), opts.Env...)
	cmd.Env = append(cmd.Env, "TERM=xterm-256color")

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Cols: uint16(cols), Rows: uint16(rows)})
	if err != nil {
		return nil, fmt.Errorf("start pty: %w", err)
	}
	p := &ptyProcess{
		cmd:  cmd,
		ptmx: ptmx,
		name: filepath.Base(shell),
		done: make(chan struct{}),
	}
	go func() {
		p.waitErr = cmd.Wait()
		close(p.done)
	}()
	return p, nil
}

func (p *ptyProcess) Read(buf []byte) (int, error) {
	return p.ptmx.Read(buf)
}

func (p *ptyProcess) Write(data []byte) (int, error) {
	return p.ptmx.Write(data)
}

func (p *ptyProcess) Resize(cols, rows int) error {
	if cols <= 0 || rows <= 0 {
		return nil
	}
	return pty.Setsize(p.ptmx, &pty.Winsize{Cols: uint16(cols), Rows: uint16(rows)})
}

func (p *ptyProcess) Wait() error {
	<-p.done
	return p.waitErr
}

// Kill terminates the shell and releases the pty. Safe to call repeatedly.
func (p *ptyProcess) Kill() error {
	var err error
	p.kill.Do(func() {
		if p.cmd.Process != nil {
			select {
			case <-p.done:
			default:
				err = p.cmd.Process.Kill()
			}
		}
		if cerr := p.ptmx.Close(); cerr != nil && err == nil {
			err = cerr
		}
	})
	return err
}

func (p *ptyProcess) Pid() int {
	if p.cmd.Process == nil {
		return 0
	}
	return p.cmd.Process.Pid
}

func (p *ptyProcess) Name() string {
	return p.name
}
