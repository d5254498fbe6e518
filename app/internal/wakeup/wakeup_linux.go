// SPDX-License-Identifier: Unlicense OR MIT

package wakeup

import (
	"time"

	"golang.org/x/sys/unix"
)

// Waker is an eventfd. Wake writes to it; Wait polls it. The fd can
// also be polled alongside a display connection fd, which is how the
// native backends integrate it.
type Waker struct {
	fd int
}

func New() (*Waker, error) {
	fd, err := unix.Eventfd(0, unix.EFD_CLOEXEC|unix.EFD_NONBLOCK)
	if err != nil {
		return nil, err
	}
	return &Waker{fd: fd}, nil
}

// FD returns the pollable file descriptor.
func (w *Waker) FD() int { return w.fd }

// Wake unparks a thread blocked in Wait. It is idempotent and safe
// from any thread.
func (w *Waker) Wake() {
	var one = [8]byte{0: 1}
	// EAGAIN means the counter is already non-zero, which is a wake
	// in flight. Nothing to do.
	unix.Write(w.fd, one[:])
}

// Wait parks until a wake or the deadline, whichever first, and
// consumes any pending wake.
func (w *Waker) Wait(deadline *time.Time) {
	fds := []unix.PollFd{{Fd: int32(w.fd), Events: unix.POLLIN}}
	for {
		n, err := unix.Poll(fds, timeoutMillis(deadline))
		if err == unix.EINTR {
			continue
		}
		if n > 0 {
			var buf [8]byte
			unix.Read(w.fd, buf[:])
		}
		return
	}
}

func (w *Waker) Close() {
	unix.Close(w.fd)
}
