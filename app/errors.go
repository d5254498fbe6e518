// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"errors"
	"fmt"

	"github.com/openwl/owl/app/driver"
)

var (
	// ErrNoBackend is returned by NewEventLoop when no registered
	// backend's runtime is present.
	ErrNoBackend = driver.ErrNoBackend

	// ErrLoopRunning is returned when a second event loop is
	// constructed, or Run is called again, while one is live.
	ErrLoopRunning = errors.New("app: an event loop is already live")

	// ErrLoopExited is returned by operations on a loop that has
	// exited. The exited state is terminal.
	ErrLoopExited = errors.New("app: the event loop has exited")

	// ErrNotSupported reports that an operation has no equivalent on
	// the current platform. The operation is a no-op.
	ErrNotSupported = errors.New("app: not supported on this platform")
)

// CreateError is returned when the native layer fails to create a
// window.
type CreateError struct {
	// Backend is the backend that failed.
	Backend string
	Err     error
}

func (e *CreateError) Error() string {
	return fmt.Sprintf("app: creating window on %s: %v", e.Backend, e.Err)
}

func (e *CreateError) Unwrap() error {
	return e.Err
}
