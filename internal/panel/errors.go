package panel

import "errors"

var (
	// ErrDisposed is returned by operations on a disposed controller.
	ErrDisposed = errors.New("panel disposed")

	// ErrNotCreated is returned when an instance is requested before Create.
	ErrNotCreated = errors.New("panel not created")
)
