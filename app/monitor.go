// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"image"

	"golang.org/x/exp/slices"

	"github.com/openwl/owl/app/driver"
	"github.com/openwl/owl/unit"
)

// Monitor is an immutable snapshot of a physical display. After a
// MonitorsChangedEvent, previously obtained values are stale and must
// be re-queried; they are never mutated in place.
type Monitor struct {
	id       driver.MonitorID
	gen      uint64
	name     string
	position image.Point
	size     image.Point
	scale    float64
	refresh  []int
	primary  bool
}

// Name returns the display's human readable name.
func (m Monitor) Name() string { return m.name }

// Position returns the monitor's position in the virtual desktop, in
// physical pixels.
func (m Monitor) Position() image.Point { return m.position }

// PhysicalSize returns the monitor size in physical pixels.
func (m Monitor) PhysicalSize() image.Point { return m.size }

// LogicalSize returns the monitor size in logical pixels.
func (m Monitor) LogicalSize() unit.Size {
	return unit.Metric{Scale: m.scale}.DpSize(m.size)
}

// Scale returns the monitor's scale factor.
func (m Monitor) Scale() float64 { return m.scale }

// RefreshRates lists the supported refresh rates in millihertz.
func (m Monitor) RefreshRates() []int { return slices.Clone(m.refresh) }

// Primary reports whether this is the primary monitor.
func (m Monitor) Primary() bool { return m.primary }

// Valid reports whether m belongs to the loop's current display
// topology. A handle obtained before a MonitorsChangedEvent is stale
// and must be re-enumerated.
func (m Monitor) Valid(l *EventLoop) bool {
	return m.gen == l.registry.gen && m.gen != 0
}

// monitorRegistry is the loop-thread record of display topology.
// Enumeration order is stable within a generation: primary first,
// then by position.
type monitorRegistry struct {
	gen      uint64
	monitors []Monitor
}

func (r *monitorRegistry) update(infos []driver.MonitorInfo) {
	r.gen++
	r.monitors = r.monitors[:0]
	for _, in := range infos {
		scale := in.Scale
		if !(unit.Metric{Scale: scale}).Valid() {
			scale = 1
		}
		r.monitors = append(r.monitors, Monitor{
			id:       in.ID,
			gen:      r.gen,
			name:     in.Name,
			position: in.Position,
			size:     in.Size,
			scale:    scale,
			refresh:  slices.Clone(in.RefreshRates),
			primary:  in.Primary,
		})
	}
	slices.SortStableFunc(r.monitors, func(a, b Monitor) int {
		switch {
		case a.primary != b.primary:
			if a.primary {
				return -1
			}
			return 1
		case a.position.Y != b.position.Y:
			return a.position.Y - b.position.Y
		default:
			return a.position.X - b.position.X
		}
	})
}

func (r *monitorRegistry) list() []Monitor {
	return slices.Clone(r.monitors)
}

func (r *monitorRegistry) primary() (Monitor, bool) {
	for _, m := range r.monitors {
		if m.primary {
			return m, true
		}
	}
	if len(r.monitors) > 0 {
		return r.monitors[0], true
	}
	return Monitor{}, false
}

func (r *monitorRegistry) byID(id driver.MonitorID) (Monitor, bool) {
	for _, m := range r.monitors {
		if m.id == id {
			return m, true
		}
	}
	return Monitor{}, false
}

// at returns the monitor containing pos, or the one with the largest
// overlap with the rectangle at pos of the given size. Falls back to
// the primary monitor.
func (r *monitorRegistry) at(pos, size image.Point) (Monitor, bool) {
	best := -1
	bestArea := 0
	rect := image.Rectangle{Min: pos, Max: pos.Add(size)}
	for i, m := range r.monitors {
		mr := image.Rectangle{Min: m.position, Max: m.position.Add(m.size)}
		if a := area(rect.Intersect(mr)); a > bestArea {
			best, bestArea = i, a
		}
	}
	if best >= 0 {
		return r.monitors[best], true
	}
	return r.primary()
}

func area(r image.Rectangle) int {
	if r.Empty() {
		return 0
	}
	return r.Dx() * r.Dy()
}
