// SPDX-License-Identifier: Unlicense OR MIT

//go:build !unix && !windows

package wakeup

import "time"

// Waker is a buffered channel. The capacity of one gives the same
// one-pending-wake semantics as the fd based implementations.
type Waker struct {
	ch chan struct{}
}

func New() (*Waker, error) {
	return &Waker{ch: make(chan struct{}, 1)}, nil
}

// Wake unparks a goroutine blocked in Wait. It is idempotent and
// safe from any goroutine.
func (w *Waker) Wake() {
	select {
	case w.ch <- struct{}{}:
	default:
	}
}

// Wait parks until a wake or the deadline, whichever first.
func (w *Waker) Wait(deadline *time.Time) {
	if deadline == nil {
		<-w.ch
		return
	}
	d := time.Until(*deadline)
	if d <= 0 {
		select {
		case <-w.ch:
		default:
		}
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-w.ch:
	case <-t.C:
	}
}

func (w *Waker) Close() {}
