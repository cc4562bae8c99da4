package terminal

import "errors"

var (
	// ErrShellNotFound is returned when the configured shell cannot be resolved.
	ErrShellNotFound = errors.New("shell not found")

	// ErrInstanceDisposed is returned when input is sent to a disposed instance.
	ErrInstanceDisposed = errors.New("terminal instance disposed")
)
