// SPDX-License-Identifier: Unlicense OR MIT

// Package driver defines the contract between the event-loop core and
// platform backends.
//
// A backend issues the native calls and receives the raw OS
// callbacks; the core never touches a native API directly. Raw
// notifications are pushed through a Sink from whatever thread the
// platform uses; the core converts them into its single ordered
// canonical stream. The core only blocks inside Backend.Wait, and a
// backend must guarantee that Wake unblocks a concurrent or future
// Wait from any thread.
package driver

import (
	"image"
	"time"

	"github.com/openwl/owl/io/event"
	"github.com/openwl/owl/io/pointer"
)

// Backend is a platform implementation of the native windowing
// substrate. All methods except Wake are called from the loop thread
// only.
type Backend interface {
	// Name identifies the backend ("wayland", "x11", "win32", ...).
	Name() string

	// Caps describes fixed properties of the platform.
	Caps() Caps

	// Monitors returns the current display topology. Later changes
	// arrive as MonitorsChanged notifications.
	Monitors() []MonitorInfo

	// NewWindow creates a native window for id with the given
	// configuration.
	NewWindow(id event.WindowID, cfg *Config) (Window, error)

	// Wait pumps the native connection and blocks until a
	// notification has been delivered, Wake is called, or the
	// deadline passes. A nil deadline waits indefinitely; a deadline
	// in the past pumps without blocking.
	Wait(deadline *time.Time)

	// Wake unblocks Wait. It is the only method safe to call from
	// any thread, and it must be idempotent.
	Wake()

	// Release frees the native connection. No method is called after
	// Release.
	Release()
}

// Window is the backend's handle for one native window. Methods are
// called from the loop thread only.
type Window interface {
	// Handle returns the opaque native handle, consumed by external
	// graphics surfaces.
	Handle() Handle

	// Configure applies the non-nil fields of cfg.
	Configure(cfg *Config) error

	// SetCursor updates the cursor shape.
	SetCursor(c pointer.Cursor) error

	// Close releases the native window. Destruction is confirmed by
	// a Destroyed notification.
	Close()
}

// Handle is an opaque native window handle. The core never
// dereferences it.
type Handle struct {
	// Protocol names the native protocol the pointers belong to.
	Protocol string
	// Surface is the native window object or id.
	Surface uintptr
	// Display is the native connection object, when the protocol has
	// one.
	Display uintptr
}

// Caps describes fixed properties of a backend.
type Caps struct {
	// Origin is the native vertical convention for pointer
	// coordinates. The input layer converts to the canonical
	// top-left convention when this is not TopLeft.
	Origin pointer.Origin
	// EnterLeave reports whether the platform delivers pointer
	// enter/leave natively. When false the input layer synthesizes
	// them.
	EnterLeave bool
	// WindowIcons reports whether the platform has per-window icons.
	WindowIcons bool
	// AlwaysOnTop reports whether the platform can keep windows
	// above others.
	AlwaysOnTop bool
}

// MonitorID identifies a physical display within one backend.
type MonitorID uint64

// MonitorInfo describes one attached display.
type MonitorInfo struct {
	ID   MonitorID
	Name string
	// Position of the monitor in the virtual desktop, physical
	// pixels.
	Position image.Point
	// Size in physical pixels.
	Size image.Point
	// Scale is physical pixels per logical pixel. Must be positive
	// and finite.
	Scale float64
	// RefreshRates lists supported rates in millihertz.
	RefreshRates []int
	Primary      bool
}

// Fullscreen describes a fullscreen request forwarded to a backend.
type Fullscreen struct {
	// Monitor targets a specific display; zero means the window's
	// current one.
	Monitor MonitorID
	// Borderless selects a borderless fullscreen window instead of
	// exclusive mode.
	Borderless bool
}

// Config is a window configuration. Nil fields are left unchanged, in
// the manner of a delta; NewWindow receives a fully populated one.
type Config struct {
	Title       *string
	Size        *image.Point
	MinSize     *image.Point
	MaxSize     *image.Point
	Position    *image.Point
	Resizable   *bool
	Decorated   *bool
	Transparent *bool
	AlwaysOnTop *bool
	Visible     *bool
	Minimized   *bool
	// Focus requests keyboard focus when true. The change is
	// confirmed by a Focus notification.
	Focus *bool
	// Fullscreen enters fullscreen when the inner pointer is
	// non-nil, exits when it is nil. A nil Fullscreen field leaves
	// the mode unchanged.
	Fullscreen **Fullscreen
	// Icon is the window icon in NRGBA form, nil to clear.
	Icon *image.NRGBA
}

// Sink is implemented by the event-loop core. Backends push raw
// notifications into it from any thread; the core buffers them in
// arrival order and drains the buffer once per loop iteration.
type Sink interface {
	Deliver(n Notification)
}
