// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"fmt"
	"image"

	"github.com/openwl/owl/app/driver"
	"github.com/openwl/owl/io/event"
	"github.com/openwl/owl/io/pointer"
	"github.com/openwl/owl/io/system"
	"github.com/openwl/owl/unit"
)

// WindowID identifies a window for the lifetime of the process.
type WindowID = event.WindowID

// Window is a handle to a native window. The handle owns nothing:
// the authoritative state lives in the loop's registry, keyed by ID,
// and the native resource is released by Close.
//
// Mutating methods are safe from any goroutine; they post a request
// that the loop thread forwards to the backend. Query methods read
// the authoritative state and must be called from the loop thread.
type Window struct {
	id   WindowID
	loop *EventLoop
}

// Fullscreen describes a fullscreen mode.
type Fullscreen struct {
	// Monitor targets a specific display. The zero Monitor targets
	// the window's current one.
	Monitor Monitor
	// Borderless selects a borderless fullscreen window instead of
	// exclusive mode.
	Borderless bool
}

// windowState is the authoritative record for one window. It is
// owned by the loop thread; nothing else touches it.
type windowState struct {
	id  WindowID
	drv driver.Window

	title       string
	pos         image.Point
	size        image.Point
	scale       float64
	monitor     driver.MonitorID
	cursor      pointer.Cursor
	focused     bool
	occluded    bool
	visible     bool
	decorated   bool
	resizable   bool
	alwaysOnTop bool
	minimized   bool
	transparent bool

	fs *driver.Fullscreen
	// snapshot is the windowed geometry captured when entering
	// fullscreen, restored exactly on exit.
	snapshot *windowedGeometry
}

type windowedGeometry struct {
	pos       image.Point
	size      image.Point
	decorated bool
}

// ID returns the window's process-unique identifier.
func (w *Window) ID() WindowID { return w.id }

// Handle returns the opaque native handle for consumption by a
// graphics surface. Loop thread only.
func (w *Window) Handle() (driver.Handle, bool) {
	st := w.loop.windows[w.id]
	if st == nil {
		return driver.Handle{}, false
	}
	return st.drv.Handle(), true
}

// InnerSize returns the window's inner size in physical pixels. Loop
// thread only.
func (w *Window) InnerSize() image.Point {
	if st := w.loop.windows[w.id]; st != nil {
		return st.size
	}
	return image.Point{}
}

// LogicalSize returns the window's inner size in logical pixels.
// Loop thread only.
func (w *Window) LogicalSize() unit.Size {
	if st := w.loop.windows[w.id]; st != nil {
		return unit.Metric{Scale: st.scale}.DpSize(st.size)
	}
	return unit.Size{}
}

// Position returns the window position in physical pixels. Loop
// thread only.
func (w *Window) Position() image.Point {
	if st := w.loop.windows[w.id]; st != nil {
		return st.pos
	}
	return image.Point{}
}

// Scale returns the window's current scale factor. Loop thread only.
func (w *Window) Scale() float64 {
	if st := w.loop.windows[w.id]; st != nil {
		return st.scale
	}
	return 1
}

// IsFullscreen reports whether the window is fullscreen. Loop thread
// only.
func (w *Window) IsFullscreen() bool {
	st := w.loop.windows[w.id]
	return st != nil && st.fs != nil
}

// Metric returns the conversion metric for the window's current
// scale factor. Loop thread only.
func (w *Window) Metric() unit.Metric {
	return unit.Metric{Scale: w.Scale()}
}

// SetTitle sets the window title.
func (w *Window) SetTitle(title string) {
	w.post(func(l *EventLoop, st *windowState) []event.Event {
		st.title = title
		l.configure(st, &driver.Config{Title: &title})
		return nil
	})
}

// Resize requests a new inner size in logical pixels. The change is
// confirmed by a ResizeEvent.
func (w *Window) Resize(s unit.Size) {
	w.post(func(l *EventLoop, st *windowState) []event.Event {
		size := unit.Metric{Scale: st.scale}.PxSize(s)
		if size == st.size {
			return nil
		}
		st.size = size
		l.configure(st, &driver.Config{Size: &size})
		return []event.Event{system.ResizeEvent{Window: st.id, Size: size}}
	})
}

// SetCursor changes the cursor shown over the window.
func (w *Window) SetCursor(c pointer.Cursor) {
	w.post(func(l *EventLoop, st *windowState) []event.Event {
		if st.cursor == c {
			return nil
		}
		st.cursor = c
		if err := st.drv.SetCursor(c); err != nil {
			return []event.Event{system.DiagnosticEvent{Err: err}}
		}
		return nil
	})
}

// SetDecorated controls the platform window decorations.
func (w *Window) SetDecorated(enabled bool) {
	w.post(func(l *EventLoop, st *windowState) []event.Event {
		st.decorated = enabled
		l.configure(st, &driver.Config{Decorated: &enabled})
		return nil
	})
}

// SetResizable controls whether the user can resize the window.
func (w *Window) SetResizable(enabled bool) {
	w.post(func(l *EventLoop, st *windowState) []event.Event {
		st.resizable = enabled
		l.configure(st, &driver.Config{Resizable: &enabled})
		return nil
	})
}

// SetVisible shows or hides the window.
func (w *Window) SetVisible(shown bool) {
	w.post(func(l *EventLoop, st *windowState) []event.Event {
		st.visible = shown
		l.configure(st, &driver.Config{Visible: &shown})
		return nil
	})
}

// SetMinimized minimizes or restores the window.
func (w *Window) SetMinimized(min bool) {
	w.post(func(l *EventLoop, st *windowState) []event.Event {
		st.minimized = min
		l.configure(st, &driver.Config{Minimized: &min})
		return nil
	})
}

// SetAlwaysOnTop keeps the window above normal windows. It returns
// ErrNotSupported on platforms without the capability.
func (w *Window) SetAlwaysOnTop(enabled bool) error {
	if !w.loop.caps.AlwaysOnTop {
		return ErrNotSupported
	}
	w.post(func(l *EventLoop, st *windowState) []event.Event {
		st.alwaysOnTop = enabled
		l.configure(st, &driver.Config{AlwaysOnTop: &enabled})
		return nil
	})
	return nil
}

// SetIcon changes the window icon. It returns ErrNotSupported on
// platforms without per-window icons.
func (w *Window) SetIcon(img image.Image) error {
	if !w.loop.caps.WindowIcons {
		return ErrNotSupported
	}
	icon := normalizeIcon(img)
	w.post(func(l *EventLoop, st *windowState) []event.Event {
		l.configure(st, &driver.Config{Icon: icon})
		return nil
	})
	return nil
}

// Focus asks the platform to give the window keyboard focus. The
// platform may refuse; the outcome arrives as a FocusEvent.
func (w *Window) Focus() {
	w.post(func(l *EventLoop, st *windowState) []event.Event {
		l.configure(st, &driver.Config{Focus: ptr(true)})
		return nil
	})
}

// SetFullscreen enters the given fullscreen mode, or exits
// fullscreen when f is nil. Exiting restores the windowed geometry
// captured on entry.
func (w *Window) SetFullscreen(f *Fullscreen) {
	w.post(func(l *EventLoop, st *windowState) []event.Event {
		return l.setFullscreen(st, f)
	})
}

// Close requests destruction of the native window. The final event
// for the window is a DestroyEvent.
func (w *Window) Close() {
	w.post(func(l *EventLoop, st *windowState) []event.Event {
		st.drv.Close()
		return nil
	})
}

// post queues f for the loop thread. Requests issued while the loop
// is suspended are held until resume, in order.
func (w *Window) post(f func(*EventLoop, *windowState) []event.Event) {
	l := w.loop
	id := w.id
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.exited {
		return
	}
	l.requests = append(l.requests, func(l *EventLoop) []event.Event {
		st := l.windows[id]
		if st == nil {
			return nil
		}
		return f(l, st)
	})
	l.backend.Wake()
}

// setFullscreen runs on the loop thread and implements the
// snapshot/restore contract.
func (l *EventLoop) setFullscreen(st *windowState, f *Fullscreen) []event.Event {
	if f == nil {
		return l.exitFullscreen(st)
	}
	var evs []event.Event
	if st.fs == nil {
		st.snapshot = &windowedGeometry{pos: st.pos, size: st.size, decorated: st.decorated}
	}
	mon, ok := Monitor{}, false
	if f.Monitor.id != 0 {
		mon, ok = l.registry.byID(f.Monitor.id)
		if !ok {
			evs = append(evs, system.DiagnosticEvent{
				Err: fmt.Errorf("fullscreen monitor %q is gone: %w", f.Monitor.name, ErrNotSupported),
			})
		}
	}
	if !ok {
		mon, ok = l.registry.at(st.pos, st.size)
		if !ok {
			return append(evs, system.DiagnosticEvent{
				Err: fmt.Errorf("fullscreen requested with no monitors attached: %w", ErrNotSupported),
			})
		}
	}
	df := &driver.Fullscreen{Monitor: mon.id, Borderless: f.Borderless}
	st.fs = df
	st.monitor = mon.id
	l.configure(st, &driver.Config{Fullscreen: &df})
	if mon.scale != st.scale {
		size := mon.size
		evs = append(evs, system.ScaleEvent{Window: st.id, Scale: mon.scale, Suggested: &size})
	} else if st.size != mon.size {
		st.size = mon.size
		evs = append(evs, system.ResizeEvent{Window: st.id, Size: mon.size})
	}
	if st.pos != mon.position {
		st.pos = mon.position
		evs = append(evs, system.MoveEvent{Window: st.id, Position: mon.position})
	}
	return evs
}

func (l *EventLoop) exitFullscreen(st *windowState) []event.Event {
	if st.fs == nil {
		return nil
	}
	snap := st.snapshot
	st.fs = nil
	st.snapshot = nil
	if snap == nil {
		// Fullscreen since creation; nothing to restore.
		return nil
	}
	var evs []event.Event
	mon, ok := l.registry.at(snap.pos, snap.size)
	if !ok || area(image.Rectangle{Min: snap.pos, Max: snap.pos.Add(snap.size)}.Intersect(
		image.Rectangle{Min: mon.position, Max: mon.position.Add(mon.size)})) == 0 {
		// The original monitor is gone. Fall back to the primary
		// monitor and surface a warning instead of failing.
		evs = append(evs, system.DiagnosticEvent{
			Err: fmt.Errorf("restoring windowed geometry on a detached monitor: %w", ErrNotSupported),
		})
		if p, okp := l.registry.primary(); okp {
			snap.pos = p.position
			mon = p
		}
	}
	var none *driver.Fullscreen
	l.configure(st, &driver.Config{
		Fullscreen: &none,
		Size:       &snap.size,
		Position:   &snap.pos,
		Decorated:  &snap.decorated,
	})
	st.monitor = mon.id
	if mon.scale != st.scale {
		size := snap.size
		evs = append(evs, system.ScaleEvent{Window: st.id, Scale: mon.scale, Suggested: &size})
		st.pos = snap.pos
		st.decorated = snap.decorated
		evs = append(evs, system.MoveEvent{Window: st.id, Position: snap.pos})
		return evs
	}
	if st.size != snap.size {
		st.size = snap.size
		evs = append(evs, system.ResizeEvent{Window: st.id, Size: snap.size})
	}
	if st.pos != snap.pos {
		st.pos = snap.pos
		evs = append(evs, system.MoveEvent{Window: st.id, Position: snap.pos})
	}
	st.decorated = snap.decorated
	return evs
}

// configure forwards a configuration delta and surfaces driver
// failures as diagnostics through the pending queue.
func (l *EventLoop) configure(st *windowState, cfg *driver.Config) {
	if err := st.drv.Configure(cfg); err != nil {
		l.pending = append(l.pending, system.DiagnosticEvent{Err: err})
	}
}
