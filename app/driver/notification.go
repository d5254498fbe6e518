// SPDX-License-Identifier: Unlicense OR MIT

package driver

import (
	"image"
	"time"

	"github.com/openwl/owl/io/device"
	"github.com/openwl/owl/io/event"
	"github.com/openwl/owl/io/key"
	"github.com/openwl/owl/io/pointer"
	"github.com/openwl/owl/io/system"
)

// Notification is the marker interface for raw backend notifications.
// Positions and sizes are physical pixels in the backend's native
// coordinate convention; the core normalizes them.
type Notification interface {
	ImplementsNotification()
}

// Resized reports a native inner-size change.
type Resized struct {
	Window event.WindowID
	Size   image.Point
}

// Moved reports a native position change.
type Moved struct {
	Window   event.WindowID
	Position image.Point
}

// CloseRequested reports a user close request (close button, Cmd-Q
// equivalent). The backend takes no action on its own.
type CloseRequested struct {
	Window event.WindowID
}

// Destroyed confirms that the native window is gone.
type Destroyed struct {
	Window event.WindowID
}

// Focus reports a keyboard focus change.
type Focus struct {
	Window  event.WindowID
	Focused bool
}

// Occluded reports a visibility change.
type Occluded struct {
	Window   event.WindowID
	Occluded bool
}

// Key reports a raw key transition on the focused window. Code is in
// the backend's native namespace identified by Space; for SpaceDOM
// the code is the DOM string instead. Backends report auto-repeat as
// additional pressed transitions; the core detects the repeats.
type Key struct {
	Window  event.WindowID
	Device  device.ID
	Space   key.CodeSpace
	Code    uint32
	DOM     string
	Rune    rune
	Pressed bool
}

// PointerMove reports pointer motion within a window.
type PointerMove struct {
	Window   event.WindowID
	Device   device.ID
	Position image.Point
	Time     time.Duration
}

// PointerButton reports a button transition.
type PointerButton struct {
	Window   event.WindowID
	Device   device.ID
	Button   pointer.Buttons
	Pressed  bool
	Position image.Point
	Time     time.Duration
}

// PointerScroll reports wheel or trackpad scrolling, in physical
// pixels.
type PointerScroll struct {
	Window   event.WindowID
	Device   device.ID
	DX, DY   float64
	Position image.Point
	Time     time.Duration
}

// PointerEnter reports native pointer entry. Only delivered by
// backends whose Caps report EnterLeave.
type PointerEnter struct {
	Window   event.WindowID
	Device   device.ID
	Position image.Point
	Time     time.Duration
}

// PointerLeave reports native pointer exit. Only delivered by
// backends whose Caps report EnterLeave.
type PointerLeave struct {
	Window event.WindowID
	Device device.ID
	Time   time.Duration
}

// Touch reports one step of a native touch sequence.
type Touch struct {
	Window   event.WindowID
	Device   device.ID
	ID       pointer.TouchID
	Phase    pointer.Phase
	Position image.Point
}

// Stage reports platform-driven suspension or resumption of the
// whole loop.
type Stage struct {
	Stage system.Stage
}

// Theme reports a system theme change for a window.
type Theme struct {
	Window event.WindowID
	Theme  system.Theme
}

// MonitorsChanged reports a display hot-plug with the complete new
// topology.
type MonitorsChanged struct {
	Monitors []MonitorInfo
}

// DeviceAdded reports a connected input device.
type DeviceAdded struct {
	Device device.ID
}

// DeviceRemoved reports a disconnected input device.
type DeviceRemoved struct {
	Device device.ID
}

// DeviceMotion reports raw, unaccelerated pointer deltas independent
// of window focus.
type DeviceMotion struct {
	Device device.ID
	DX, DY float64
}

// DeviceScroll reports raw wheel motion independent of window focus.
type DeviceScroll struct {
	Device device.ID
	DX, DY float64
}

// DeviceButton reports a raw button transition independent of window
// focus.
type DeviceButton struct {
	Device  device.ID
	Button  uint16
	Pressed bool
}

// DeviceKey reports a raw key transition independent of window focus.
type DeviceKey struct {
	Device  device.ID
	Code    uint32
	Pressed bool
}

// Diagnostic reports a transient backend error not attributable to a
// window, such as a hot-plug race. The loop surfaces it and
// continues.
type Diagnostic struct {
	Err error
}

func (Resized) ImplementsNotification()         {}
func (Moved) ImplementsNotification()           {}
func (CloseRequested) ImplementsNotification()  {}
func (Destroyed) ImplementsNotification()       {}
func (Focus) ImplementsNotification()           {}
func (Occluded) ImplementsNotification()        {}
func (Key) ImplementsNotification()             {}
func (PointerMove) ImplementsNotification()     {}
func (PointerButton) ImplementsNotification()   {}
func (PointerScroll) ImplementsNotification()   {}
func (PointerEnter) ImplementsNotification()    {}
func (PointerLeave) ImplementsNotification()    {}
func (Touch) ImplementsNotification()           {}
func (Stage) ImplementsNotification()           {}
func (Theme) ImplementsNotification()           {}
func (MonitorsChanged) ImplementsNotification() {}
func (DeviceAdded) ImplementsNotification()     {}
func (DeviceRemoved) ImplementsNotification()   {}
func (DeviceMotion) ImplementsNotification()    {}
func (DeviceScroll) ImplementsNotification()    {}
func (DeviceButton) ImplementsNotification()    {}
func (DeviceKey) ImplementsNotification()       {}
func (Diagnostic) ImplementsNotification()      {}
