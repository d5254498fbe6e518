// SPDX-License-Identifier: Unlicense OR MIT

// Package input normalizes raw backend input into canonical events.
//
// The Router owns all input state that spans events: the modifier
// set, the pressed-key set used for repeat detection, per-window
// pointer containment, and the touch lifecycle table. It runs on the
// loop thread only.
package input

import (
	"image"
	"time"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/openwl/owl/io/device"
	"github.com/openwl/owl/io/event"
	"github.com/openwl/owl/io/key"
	"github.com/openwl/owl/io/pointer"
	"github.com/openwl/owl/unit"
)

// Viewport is the window geometry the router needs to express raw
// positions in the canonical coordinate system.
type Viewport struct {
	// Height is the window's inner height in physical pixels, for
	// flipping bottom-left origins.
	Height int
	// Metric converts physical positions to logical pixels.
	Metric unit.Metric
}

// Router converts raw input notifications into canonical events.
type Router struct {
	origin   pointer.Origin
	mods     key.Modifiers
	down     map[downKey]bool
	pointers map[ptrKey]*pointerState
	touches  map[touchKey]*touchState
}

type downKey struct {
	dev  device.ID
	code key.Code
}

type ptrKey struct {
	win event.WindowID
	dev device.ID
}

type touchKey struct {
	dev device.ID
	id  pointer.TouchID
}

type pointerState struct {
	inside  bool
	last    unit.Point
	buttons pointer.Buttons
}

type touchState struct {
	win  event.WindowID
	last unit.Point
}

// NewRouter returns a router for a backend with the given native
// coordinate origin.
func NewRouter(origin pointer.Origin) *Router {
	return &Router{
		origin:   origin,
		down:     make(map[downKey]bool),
		pointers: make(map[ptrKey]*pointerState),
		touches:  make(map[touchKey]*touchState),
	}
}

// Modifiers returns the current modifier set.
func (r *Router) Modifiers() key.Modifiers {
	return r.mods
}

// Key processes a raw key transition. At most one Press edge is
// produced per physical key-down: platform auto-repeat arrives as
// further pressed transitions and is turned into the Repeat marker.
// The modifier set changes only on matched press/release pairs, and a
// change is reported by a trailing ModifiersEvent.
func (r *Router) Key(win event.WindowID, dev device.ID, code key.Code, name key.Name, pressed bool) []event.Event {
	k := downKey{dev: dev, code: code}
	repeat := false
	matched := false
	if pressed {
		if r.down[k] {
			repeat = true
		} else {
			r.down[k] = true
			matched = true
		}
	} else {
		if r.down[k] {
			matched = true
		}
		delete(r.down, k)
	}
	state := key.Press
	if !pressed {
		state = key.Release
	}
	evs := []event.Event{key.Event{
		Window:    win,
		Device:    dev,
		Code:      code,
		Name:      name,
		Modifiers: r.mods,
		State:     state,
		Repeat:    repeat,
	}}
	if matched && code.Modifier() != 0 {
		var m key.Modifiers
		for dk := range r.down {
			m |= dk.code.Modifier()
		}
		if m != r.mods {
			r.mods = m
			evs = append(evs, key.ModifiersEvent{Window: win, Modifiers: m})
		}
	}
	return evs
}

// Move processes raw pointer motion. An Enter is synthesized before
// the first Move of a containment span when the backend does not
// report entry itself.
func (r *Router) Move(win event.WindowID, dev device.ID, vp Viewport, pos image.Point, t time.Duration) []event.Event {
	p := r.position(vp, pos)
	st := r.pointer(win, dev)
	var evs []event.Event
	if !st.inside {
		st.inside = true
		evs = append(evs, r.pointerEvent(pointer.Enter, win, dev, st, p, t))
	}
	st.last = p
	return append(evs, r.pointerEvent(pointer.Move, win, dev, st, p, t))
}

// Button processes a raw button transition.
func (r *Router) Button(win event.WindowID, dev device.ID, vp Viewport, btn pointer.Buttons, pressed bool, pos image.Point, t time.Duration) []event.Event {
	p := r.position(vp, pos)
	st := r.pointer(win, dev)
	var evs []event.Event
	if !st.inside {
		st.inside = true
		evs = append(evs, r.pointerEvent(pointer.Enter, win, dev, st, p, t))
	}
	if pressed {
		st.buttons |= btn
	} else {
		st.buttons &^= btn
	}
	st.last = p
	kind := pointer.Press
	if !pressed {
		kind = pointer.Release
	}
	e := r.pointerEvent(kind, win, dev, st, p, t)
	e.Button = btn
	return append(evs, e)
}

// Scroll processes raw wheel motion. Deltas follow the canonical Y
// down convention.
func (r *Router) Scroll(win event.WindowID, dev device.ID, vp Viewport, dx, dy float64, pos image.Point, t time.Duration) []event.Event {
	p := r.position(vp, pos)
	st := r.pointer(win, dev)
	var evs []event.Event
	if !st.inside {
		st.inside = true
		evs = append(evs, r.pointerEvent(pointer.Enter, win, dev, st, p, t))
	}
	st.last = p
	if r.origin == pointer.BottomLeft {
		dy = -dy
	}
	e := r.pointerEvent(pointer.Scroll, win, dev, st, p, t)
	e.Scroll = unit.Point{X: vp.Metric.Dpf(dx), Y: vp.Metric.Dpf(dy)}
	return append(evs, e)
}

// Enter processes a native pointer entry. Duplicate entries are
// dropped so Enter strictly precedes the first Move of a span.
func (r *Router) Enter(win event.WindowID, dev device.ID, vp Viewport, pos image.Point, t time.Duration) []event.Event {
	st := r.pointer(win, dev)
	if st.inside {
		return nil
	}
	st.inside = true
	p := r.position(vp, pos)
	st.last = p
	return []event.Event{r.pointerEvent(pointer.Enter, win, dev, st, p, t)}
}

// Leave processes a native pointer exit. The Leave carries the last
// observed position, so it strictly follows the span's last Move.
func (r *Router) Leave(win event.WindowID, dev device.ID, t time.Duration) []event.Event {
	st := r.pointer(win, dev)
	if !st.inside {
		return nil
	}
	st.inside = false
	return []event.Event{r.pointerEvent(pointer.Leave, win, dev, st, st.last, t)}
}

// Touch processes one raw step of a touch sequence and enforces the
// Started (Moved)* (Ended|Cancelled) lifecycle: a Started for an
// active ID and a Moved or terminal for an unknown ID are dropped.
func (r *Router) Touch(win event.WindowID, dev device.ID, id pointer.TouchID, phase pointer.Phase, vp Viewport, pos image.Point) []event.Event {
	k := touchKey{dev: dev, id: id}
	p := r.position(vp, pos)
	switch phase {
	case pointer.Started:
		if _, active := r.touches[k]; active {
			return nil
		}
		r.touches[k] = &touchState{win: win, last: p}
	case pointer.Moved:
		ts, active := r.touches[k]
		if !active {
			return nil
		}
		// The sequence stays on the window that saw its Started,
		// whatever window the backend names mid-sequence.
		win = ts.win
		ts.last = p
	case pointer.Ended, pointer.Cancelled:
		ts, active := r.touches[k]
		if !active {
			return nil
		}
		win = ts.win
		delete(r.touches, k)
	}
	return []event.Event{pointer.TouchEvent{
		Window:   win,
		Device:   dev,
		ID:       id,
		Phase:    phase,
		Position: p,
	}}
}

// DropWindow releases all input state bound to a destroyed window. A
// contained pointer produces a final Leave and every active touch its
// terminal Cancelled, keeping the lifecycle guarantees intact.
func (r *Router) DropWindow(win event.WindowID) []event.Event {
	var evs []event.Event
	pks := maps.Keys(r.pointers)
	slices.SortFunc(pks, func(a, b ptrKey) int { return int(a.dev) - int(b.dev) })
	for _, pk := range pks {
		if pk.win != win {
			continue
		}
		st := r.pointers[pk]
		if st.inside {
			evs = append(evs, r.pointerEvent(pointer.Leave, win, pk.dev, st, st.last, 0))
		}
		delete(r.pointers, pk)
	}
	tks := maps.Keys(r.touches)
	slices.SortFunc(tks, func(a, b touchKey) int {
		if a.dev != b.dev {
			return int(a.dev) - int(b.dev)
		}
		return int(a.id) - int(b.id)
	})
	for _, tk := range tks {
		ts := r.touches[tk]
		if ts.win != win {
			continue
		}
		evs = append(evs, pointer.TouchEvent{
			Window:   win,
			Device:   tk.dev,
			ID:       tk.id,
			Phase:    pointer.Cancelled,
			Position: ts.last,
		})
		delete(r.touches, tk)
	}
	return evs
}

func (r *Router) pointer(win event.WindowID, dev device.ID) *pointerState {
	k := ptrKey{win: win, dev: dev}
	st, ok := r.pointers[k]
	if !ok {
		st = new(pointerState)
		r.pointers[k] = st
	}
	return st
}

func (r *Router) position(vp Viewport, pos image.Point) unit.Point {
	if r.origin == pointer.BottomLeft {
		pos.Y = vp.Height - pos.Y
	}
	return vp.Metric.DpPoint(pos)
}

func (r *Router) pointerEvent(kind pointer.Kind, win event.WindowID, dev device.ID, st *pointerState, p unit.Point, t time.Duration) pointer.Event {
	return pointer.Event{
		Kind:      kind,
		Window:    win,
		Device:    dev,
		Source:    pointer.Mouse,
		Time:      t,
		Position:  p,
		Buttons:   st.buttons,
		Modifiers: r.mods,
	}
}
