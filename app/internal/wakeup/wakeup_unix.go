// SPDX-License-Identifier: Unlicense OR MIT

//go:build unix && !linux

package wakeup

import (
	"time"

	"golang.org/x/sys/unix"
)

// Waker is a non-blocking pipe. Wake writes a byte; Wait polls the
// read end. The read end can be polled alongside a display
// connection fd.
type Waker struct {
	r, w int
}

func New() (*Waker, error) {
	var p [2]int
	if err := unix.Pipe(p[:]); err != nil {
		return nil, err
	}
	for _, fd := range p {
		unix.SetNonblock(fd, true)
		unix.CloseOnExec(fd)
	}
	return &Waker{r: p[0], w: p[1]}, nil
}

// FD returns the pollable file descriptor.
func (w *Waker) FD() int { return w.r }

// Wake unparks a thread blocked in Wait. It is idempotent and safe
// from any thread.
func (w *Waker) Wake() {
	// EAGAIN means the pipe already holds an unread wake.
	unix.Write(w.w, []byte{0})
}

// Wait parks until a wake or the deadline, whichever first, and
// drains any pending wakes.
func (w *Waker) Wait(deadline *time.Time) {
	fds := []unix.PollFd{{Fd: int32(w.r), Events: unix.POLLIN}}
	for {
		n, err := unix.Poll(fds, timeoutMillis(deadline))
		if err == unix.EINTR {
			continue
		}
		if n > 0 {
			var buf [64]byte
			for {
				if rn, _ := unix.Read(w.r, buf[:]); rn <= 0 {
					break
				}
			}
		}
		return
	}
}

func (w *Waker) Close() {
	unix.Close(w.r)
	unix.Close(w.w)
}
