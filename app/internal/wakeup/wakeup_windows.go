// SPDX-License-Identifier: Unlicense OR MIT

package wakeup

import (
	"time"

	"golang.org/x/sys/windows"
)

// Waker is an auto-reset event object. A successful wait consumes
// the signal, matching the one-pending-wake semantics of the unix
// implementations.
type Waker struct {
	h windows.Handle
}

func New() (*Waker, error) {
	h, err := windows.CreateEvent(nil, 0, 0, nil)
	if err != nil {
		return nil, err
	}
	return &Waker{h: h}, nil
}

// Handle returns the event handle, for MsgWaitForMultipleObjects
// integration with a message pump.
func (w *Waker) Handle() windows.Handle { return w.h }

// Wake unparks a thread blocked in Wait. It is idempotent and safe
// from any thread.
func (w *Waker) Wake() {
	windows.SetEvent(w.h)
}

// Wait parks until a wake or the deadline, whichever first.
func (w *Waker) Wait(deadline *time.Time) {
	ms := uint32(windows.INFINITE)
	if t := timeoutMillis(deadline); t >= 0 {
		ms = uint32(t)
	}
	windows.WaitForSingleObject(w.h, ms)
}

func (w *Waker) Close() {
	windows.CloseHandle(w.h)
}
