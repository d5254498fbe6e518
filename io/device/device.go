// SPDX-License-Identifier: Unlicense OR MIT

// Package device contains identifiers and events for physical input
// devices. Device events are window independent: they report raw
// hardware transitions regardless of which window, if any, has focus.
package device

// ID identifies a physical input device for the lifetime of its
// connection.
type ID uint32

// AddedEvent is generated when a device is connected.
type AddedEvent struct {
	Device ID
}

// RemovedEvent is generated when a device is disconnected. The ID is
// not reused while any reference to it is outstanding.
type RemovedEvent struct {
	Device ID
}

// MotionEvent reports unfiltered, unaccelerated pointer deltas in
// physical pixels.
type MotionEvent struct {
	Device ID
	DX, DY float64
}

// ScrollEvent reports raw wheel motion.
type ScrollEvent struct {
	Device ID
	DX, DY float64
}

// ButtonEvent reports a raw button transition. Button numbering is
// the backend's own.
type ButtonEvent struct {
	Device  ID
	Button  uint16
	Pressed bool
}

// KeyEvent reports a raw physical key transition. The code is in the
// backend's native code space, untranslated.
type KeyEvent struct {
	Device  ID
	Code    uint32
	Pressed bool
}

func (AddedEvent) ImplementsEvent()   {}
func (RemovedEvent) ImplementsEvent() {}
func (MotionEvent) ImplementsEvent()  {}
func (ScrollEvent) ImplementsEvent()  {}
func (ButtonEvent) ImplementsEvent()  {}
func (KeyEvent) ImplementsEvent()     {}
