// SPDX-License-Identifier: Unlicense OR MIT

// Package headless is a windowless backend. It presents one virtual
// monitor and accepts every configuration without a display server,
// which makes event-loop code runnable in CI and on machines without
// a native substrate. It registers itself with the lowest priority
// so that any native backend wins the probe.
package headless

import (
	"image"
	"time"

	"github.com/openwl/owl/app/driver"
	"github.com/openwl/owl/app/internal/wakeup"
	"github.com/openwl/owl/io/event"
	"github.com/openwl/owl/io/pointer"
)

func init() {
	driver.Register(driver.Registration{
		Name:     "headless",
		Priority: -100,
		Probe:    func() bool { return true },
		Open:     open,
	})
}

type backend struct {
	sink  driver.Sink
	waker *wakeup.Waker
}

type window struct {
	b  *backend
	id event.WindowID

	size image.Point
	pos  image.Point
}

func open(sink driver.Sink) (driver.Backend, error) {
	w, err := wakeup.New()
	if err != nil {
		return nil, err
	}
	return &backend{sink: sink, waker: w}, nil
}

func (b *backend) Name() string { return "headless" }

func (b *backend) Caps() driver.Caps {
	return driver.Caps{
		Origin:      pointer.TopLeft,
		EnterLeave:  true,
		WindowIcons: true,
		AlwaysOnTop: true,
	}
}

func (b *backend) Monitors() []driver.MonitorInfo {
	return []driver.MonitorInfo{{
		ID:           1,
		Name:         "Headless",
		Size:         image.Pt(1920, 1080),
		Scale:        1,
		RefreshRates: []int{60000},
		Primary:      true,
	}}
}

func (b *backend) NewWindow(id event.WindowID, cfg *driver.Config) (driver.Window, error) {
	w := &window{b: b, id: id, size: *cfg.Size}
	if cfg.Position != nil {
		w.pos = *cfg.Position
	}
	b.sink.Deliver(driver.Focus{Window: id, Focused: true})
	b.waker.Wake()
	return w, nil
}

func (b *backend) Wait(deadline *time.Time) {
	b.waker.Wait(deadline)
}

func (b *backend) Wake() {
	b.waker.Wake()
}

func (b *backend) Release() {
	b.waker.Close()
}

func (w *window) Handle() driver.Handle {
	return driver.Handle{Protocol: "headless", Surface: uintptr(w.id)}
}

// Configure accepts everything. Geometry changes are acknowledged
// with the matching notifications, as a compositor would.
func (w *window) Configure(cfg *driver.Config) error {
	if cfg.Size != nil && *cfg.Size != w.size {
		w.size = *cfg.Size
		w.b.sink.Deliver(driver.Resized{Window: w.id, Size: w.size})
	}
	if cfg.Position != nil && *cfg.Position != w.pos {
		w.pos = *cfg.Position
		w.b.sink.Deliver(driver.Moved{Window: w.id, Position: w.pos})
	}
	w.b.waker.Wake()
	return nil
}

func (w *window) SetCursor(c pointer.Cursor) error { return nil }

func (w *window) Close() {
	w.b.sink.Deliver(driver.Destroyed{Window: w.id})
	w.b.waker.Wake()
}
