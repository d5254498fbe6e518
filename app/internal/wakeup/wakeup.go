// SPDX-License-Identifier: Unlicense OR MIT

// Package wakeup provides the cross-thread wake primitive backends
// build Wait and Wake on. A Waker parks the calling thread until
// another thread wakes it or a deadline passes.
package wakeup

import "time"

// timeoutMillis converts a deadline to a poll timeout in
// milliseconds. nil means block forever (-1); a past deadline means
// do not block (0).
func timeoutMillis(deadline *time.Time) int {
	if deadline == nil {
		return -1
	}
	d := time.Until(*deadline)
	if d <= 0 {
		return 0
	}
	ms := int(d.Milliseconds())
	if ms == 0 {
		// Round sub-millisecond waits up rather than spinning.
		ms = 1
	}
	return ms
}
