// SPDX-License-Identifier: Unlicense OR MIT

// Package event contains the types shared by every canonical event
// delivered by an event loop.
package event

// WindowID identifies a window for the lifetime of a process. IDs are
// issued by an event loop, are never reused, and are the only way
// events and callers refer to a window.
type WindowID uint64

// Event is the marker interface for canonical events.
type Event interface {
	ImplementsEvent()
}
