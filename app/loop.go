// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"fmt"
	"image"
	"os"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
	"unicode"

	"golang.org/x/exp/slices"

	"github.com/openwl/owl/app/driver"
	"github.com/openwl/owl/io/device"
	"github.com/openwl/owl/io/event"
	"github.com/openwl/owl/io/input"
	"github.com/openwl/owl/io/key"
	"github.com/openwl/owl/io/pointer"
	"github.com/openwl/owl/io/system"
	"github.com/openwl/owl/unit"
)

// liveLoop guards against two event loops existing at once. The slot
// is freed when a loop exits, so sequential loops are fine.
var liveLoop atomic.Bool

// windowIDs allocates process-unique window identifiers. IDs are
// never reused, even across loops.
var windowIDs atomic.Uint64

type flowMode uint8

const (
	flowPoll flowMode = iota
	flowWait
	flowWaitUntil
)

type loopState uint8

const (
	stateIdle loopState = iota
	stateRunning
	stateExited
)

// request is a deferred window mutation, executed on the loop thread.
type request func(*EventLoop) []event.Event

// EventLoop owns the connection to the native windowing substrate and
// delivers canonical events to a handler on the constructing thread.
//
// NewEventLoop, NewWindow and Run must be called from the same
// goroutine; the constructor locks it to its OS thread because the
// native substrates require it.
type EventLoop struct {
	backend  driver.Backend
	caps     driver.Caps
	registry monitorRegistry
	router   *input.Router
	windows  map[WindowID]*windowState

	// mu guards the fields written from other goroutines.
	mu       sync.Mutex
	queue    []driver.Notification
	requests []request
	users    []any
	exited   bool

	// Loop thread only from here on.
	pending       []event.Event
	state         loopState
	dispatching   bool
	suspended     bool
	cause         system.StartCause
	mode          flowMode
	deadline      time.Time
	exitRequested bool
	exitCode      int
}

// NewEventLoop connects to the best available backend. The
// OWL_BACKEND environment variable, when set, names the backend
// directly and skips probing.
//
// At most one loop may be live at a time; a second construction
// returns ErrLoopRunning.
func NewEventLoop() (*EventLoop, error) {
	return newEventLoop(os.Getenv("OWL_BACKEND"))
}

func newEventLoop(preferred string) (*EventLoop, error) {
	if !liveLoop.CompareAndSwap(false, true) {
		return nil, ErrLoopRunning
	}
	reg, err := driver.Select(preferred)
	if err != nil {
		liveLoop.Store(false)
		return nil, err
	}
	runtime.LockOSThread()
	l := &EventLoop{
		windows: make(map[WindowID]*windowState),
	}
	backend, err := reg.Open(l)
	if err != nil {
		runtime.UnlockOSThread()
		liveLoop.Store(false)
		return nil, err
	}
	l.backend = backend
	l.caps = backend.Caps()
	l.registry.update(backend.Monitors())
	l.router = input.NewRouter(l.caps.Origin)
	return l, nil
}

// Deliver buffers a raw backend notification. It implements
// driver.Sink and is safe from any thread.
func (l *EventLoop) Deliver(n driver.Notification) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.exited {
		return
	}
	l.queue = append(l.queue, n)
}

// Backend returns the name of the selected backend.
func (l *EventLoop) Backend() string { return l.backend.Name() }

// Monitors returns the current display topology, primary first.
func (l *EventLoop) Monitors() []Monitor { return l.registry.list() }

// PrimaryMonitor returns the primary monitor, if any is attached.
func (l *EventLoop) PrimaryMonitor() (Monitor, bool) { return l.registry.primary() }

// NewWindow creates a window. It may be called before Run, from the
// constructing goroutine, or from the handler through Control.
//
// The new window's first event is a ResizeEvent with its initial
// inner size.
func (l *EventLoop) NewWindow(opts ...Option) (*Window, error) {
	if l.state == stateExited {
		return nil, ErrLoopExited
	}
	scale := 1.0
	if p, ok := l.registry.primary(); ok {
		scale = p.scale
	}
	build := func(scale float64) *driver.Config {
		m := unit.Metric{Scale: scale}
		cfg := defaultConfig(m)
		for _, o := range opts {
			o(m, cfg)
		}
		return cfg
	}
	cfg := build(scale)
	var pos image.Point
	if cfg.Position != nil {
		pos = *cfg.Position
	}
	target, onScreen := l.registry.at(pos, *cfg.Size)
	if onScreen && target.scale != scale {
		// The requested position lands on a monitor with a
		// different scale. Logical dimensions must convert with
		// that monitor's factor, so rebuild, but keep the position
		// that identified it.
		scale = target.scale
		cfg = build(scale)
		if cfg.Position != nil {
			cfg.Position = &pos
		}
	}
	if cfg.Size.X <= 0 || cfg.Size.Y <= 0 {
		return nil, &CreateError{
			Backend: l.backend.Name(),
			Err:     fmt.Errorf("non-positive inner size %v", *cfg.Size),
		}
	}
	id := WindowID(windowIDs.Add(1))
	drv, err := l.backend.NewWindow(id, cfg)
	if err != nil {
		return nil, &CreateError{Backend: l.backend.Name(), Err: err}
	}
	st := &windowState{
		id:          id,
		drv:         drv,
		title:       *cfg.Title,
		size:        *cfg.Size,
		scale:       scale,
		cursor:      pointer.CursorDefault,
		visible:     *cfg.Visible,
		decorated:   *cfg.Decorated,
		resizable:   *cfg.Resizable,
		alwaysOnTop: *cfg.AlwaysOnTop,
		minimized:   *cfg.Minimized,
		transparent: *cfg.Transparent,
		fs:          *cfg.Fullscreen,
	}
	if cfg.Position != nil {
		st.pos = *cfg.Position
	}
	if onScreen {
		st.monitor = target.id
	}
	l.windows[id] = st
	l.pending = append(l.pending, system.ResizeEvent{Window: id, Size: st.size})
	return &Window{id: id, loop: l}, nil
}

// Control is the capability handed to the handler. It is only valid
// during the handler call that received it.
type Control struct {
	loop *EventLoop
}

// Poll makes the loop run another iteration immediately.
func (c *Control) Poll() { c.loop.mode = flowPoll }

// Wait blocks the loop until a notification, a request or a proxy
// send arrives.
func (c *Control) Wait() { c.loop.mode = flowWait }

// WaitUntil blocks like Wait, but no later than t.
func (c *Control) WaitUntil(t time.Time) {
	c.loop.mode = flowWaitUntil
	c.loop.deadline = t
}

// Exit makes Run return after the current iteration. code is
// reported by ExitCode. Exit is terminal: the loop cannot run again.
func (c *Control) Exit(code int) {
	c.loop.exitRequested = true
	c.loop.exitCode = code
}

// NewWindow creates a window from within the handler.
func (c *Control) NewWindow(opts ...Option) (*Window, error) {
	return c.loop.NewWindow(opts...)
}

// Monitors returns the current display topology, primary first.
func (c *Control) Monitors() []Monitor { return c.loop.registry.list() }

// PrimaryMonitor returns the primary monitor, if any is attached.
func (c *Control) PrimaryMonitor() (Monitor, bool) { return c.loop.registry.primary() }

// Backend returns the name of the selected backend.
func (c *Control) Backend() string { return c.loop.backend.Name() }

// Run drives the loop until the handler calls Exit. Each iteration
// delivers a StartEvent, the batch of canonical events, and an
// IdleEvent, then honors the control flow chosen by the handler.
//
// Run always returns nil after a normal exit; the code passed to
// Exit is available through ExitCode. Run must be called on the
// constructing goroutine and panics when called from the handler.
func (l *EventLoop) Run(h func(event.Event, *Control)) error {
	if l.dispatching {
		panic("app: Run called from the event handler")
	}
	switch l.state {
	case stateRunning:
		return ErrLoopRunning
	case stateExited:
		return ErrLoopExited
	}
	l.state = stateRunning
	l.cause = system.CauseInit
	for {
		l.iterate(h)
		if l.exitRequested {
			break
		}
		l.wait()
	}
	l.shutdown()
	return nil
}

// ExitCode returns the code passed to Exit, once the loop has
// exited.
func (l *EventLoop) ExitCode() int { return l.exitCode }

// iterate runs one loop iteration: requests, then ingested
// notifications, then user events, framed by StartEvent and
// IdleEvent.
func (l *EventLoop) iterate(h func(event.Event, *Control)) {
	ctl := &Control{loop: l}
	l.emit(h, ctl, system.StartEvent{Cause: l.cause})

	var batch []event.Event
	flush := func() {
		batch = append(batch, l.pending...)
		l.pending = nil
	}
	flush()

	l.mu.Lock()
	var reqs []request
	if !l.suspended {
		reqs, l.requests = l.requests, nil
	}
	var notes []driver.Notification
	notes, l.queue = l.queue, nil
	var users []any
	users, l.users = l.users, nil
	l.mu.Unlock()

	for _, r := range reqs {
		batch = append(batch, r(l)...)
	}
	flush()
	for _, n := range notes {
		batch = append(batch, l.translate(n)...)
	}
	flush()
	for _, v := range users {
		batch = append(batch, UserEvent{Value: v})
	}

	batch = coalesce(batch)
	for i := 0; i < len(batch); i++ {
		ev := batch[i]
		l.emit(h, ctl, ev)
		if se, ok := ev.(system.ScaleEvent); ok {
			batch = l.applyScale(batch, i, se)
		}
	}
	// Diagnostics raised while dispatching, such as a failed
	// configure during a scale commit, still belong to this
	// iteration.
	tail := l.pending
	l.pending = nil
	for _, ev := range tail {
		l.emit(h, ctl, ev)
	}
	l.emit(h, ctl, system.IdleEvent{})
}

func (l *EventLoop) emit(h func(event.Event, *Control), ctl *Control, ev event.Event) {
	l.dispatching = true
	defer func() { l.dispatching = false }()
	h(ev, ctl)
}

// applyScale commits a scale change after its handler call returned:
// the possibly overwritten suggestion becomes the window size in the
// same step as the scale factor, and the confirming ResizeEvent is
// inserted directly after.
func (l *EventLoop) applyScale(batch []event.Event, i int, se system.ScaleEvent) []event.Event {
	st := l.windows[se.Window]
	if st == nil {
		return batch
	}
	size := *se.Suggested
	st.scale = se.Scale
	if size != st.size {
		st.size = size
		l.configure(st, &driver.Config{Size: &size})
	}
	return slices.Insert(batch, i+1, event.Event(system.ResizeEvent{Window: se.Window, Size: size}))
}

// coalesce collapses runs of ResizeEvents for the same window into
// the final one. Other events break a run.
func coalesce(batch []event.Event) []event.Event {
	out := batch[:0]
	for _, ev := range batch {
		if re, ok := ev.(system.ResizeEvent); ok && len(out) > 0 {
			if prev, ok := out[len(out)-1].(system.ResizeEvent); ok && prev.Window == re.Window {
				out[len(out)-1] = re
				continue
			}
		}
		out = append(out, ev)
	}
	return out
}

// wait blocks per the chosen control flow and records why the next
// iteration starts. Buffered work short-circuits blocking so that a
// request or send issued during dispatch is handled immediately.
func (l *EventLoop) wait() {
	now := time.Now()
	switch l.mode {
	case flowPoll:
		l.backend.Wait(&now)
		l.cause = system.CausePoll
	case flowWait:
		if l.buffered() {
			l.backend.Wait(&now)
		} else {
			l.backend.Wait(nil)
		}
		l.cause = system.CauseWaitTimeout
	case flowWaitUntil:
		if l.buffered() {
			l.backend.Wait(&now)
		} else {
			d := l.deadline
			l.backend.Wait(&d)
		}
		if !time.Now().Before(l.deadline) {
			l.cause = system.CauseResumeTimeReached
		} else {
			l.cause = system.CauseWaitTimeout
		}
	}
}

func (l *EventLoop) buffered() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	// Requests held during suspension are not deliverable until the
	// resume Stage notification arrives, and that notification wakes
	// the loop by itself.
	reqs := len(l.requests) > 0 && !l.suspended
	return len(l.queue) > 0 || reqs || len(l.users) > 0 || len(l.pending) > 0
}

// shutdown tears the loop down. The exited flag is set before the
// backend is released so that Proxy.Send and Deliver, which run
// under mu, can never reach a dead backend.
func (l *EventLoop) shutdown() {
	for _, st := range l.windows {
		st.drv.Close()
	}
	l.windows = make(map[WindowID]*windowState)
	l.mu.Lock()
	l.exited = true
	l.queue = nil
	l.requests = nil
	l.users = nil
	l.mu.Unlock()
	l.backend.Release()
	l.state = stateExited
	runtime.UnlockOSThread()
	liveLoop.Store(false)
}

// translate turns one raw notification into canonical events,
// updating the authoritative window state on the way. Notifications
// that merely echo state the loop already applied produce nothing.
func (l *EventLoop) translate(n driver.Notification) []event.Event {
	switch n := n.(type) {
	case driver.Resized:
		st := l.windows[n.Window]
		if st == nil || st.size == n.Size {
			return nil
		}
		st.size = n.Size
		return []event.Event{system.ResizeEvent{Window: n.Window, Size: n.Size}}

	case driver.Moved:
		st := l.windows[n.Window]
		if st == nil || st.pos == n.Position {
			return nil
		}
		st.pos = n.Position
		evs := []event.Event{system.MoveEvent{Window: n.Window, Position: n.Position}}
		return append(evs, l.resolveMonitor(st)...)

	case driver.CloseRequested:
		if l.windows[n.Window] == nil {
			return nil
		}
		return []event.Event{system.CloseEvent{Window: n.Window}}

	case driver.Destroyed:
		if l.windows[n.Window] == nil {
			return nil
		}
		delete(l.windows, n.Window)
		evs := l.router.DropWindow(n.Window)
		return append(evs, system.DestroyEvent{Window: n.Window})

	case driver.Focus:
		st := l.windows[n.Window]
		if st == nil || st.focused == n.Focused {
			return nil
		}
		st.focused = n.Focused
		return []event.Event{system.FocusEvent{Window: n.Window, Focused: n.Focused}}

	case driver.Occluded:
		st := l.windows[n.Window]
		if st == nil || st.occluded == n.Occluded {
			return nil
		}
		st.occluded = n.Occluded
		return []event.Event{system.OccludedEvent{Window: n.Window, Occluded: n.Occluded}}

	case driver.Key:
		if l.windows[n.Window] == nil {
			return nil
		}
		code := input.Lookup(n.Space, n.Code, n.DOM)
		name := keyName(code)
		if n.Rune != 0 {
			name = key.Name(string(unicode.ToUpper(n.Rune)))
		}
		return l.router.Key(n.Window, n.Device, code, name, n.Pressed)

	case driver.PointerMove:
		st := l.windows[n.Window]
		if st == nil {
			return nil
		}
		return l.router.Move(n.Window, n.Device, l.viewport(st), n.Position, n.Time)

	case driver.PointerButton:
		st := l.windows[n.Window]
		if st == nil {
			return nil
		}
		return l.router.Button(n.Window, n.Device, l.viewport(st), n.Button, n.Pressed, n.Position, n.Time)

	case driver.PointerScroll:
		st := l.windows[n.Window]
		if st == nil {
			return nil
		}
		return l.router.Scroll(n.Window, n.Device, l.viewport(st), n.DX, n.DY, n.Position, n.Time)

	case driver.PointerEnter:
		st := l.windows[n.Window]
		if st == nil {
			return nil
		}
		return l.router.Enter(n.Window, n.Device, l.viewport(st), n.Position, n.Time)

	case driver.PointerLeave:
		if l.windows[n.Window] == nil {
			return nil
		}
		return l.router.Leave(n.Window, n.Device, n.Time)

	case driver.Touch:
		st := l.windows[n.Window]
		if st == nil {
			return nil
		}
		return l.router.Touch(n.Window, n.Device, n.ID, n.Phase, l.viewport(st), n.Position)

	case driver.Stage:
		suspended := n.Stage == system.StagePaused
		if suspended == l.suspended {
			return nil
		}
		l.suspended = suspended
		return []event.Event{system.StageEvent{Stage: n.Stage}}

	case driver.Theme:
		if l.windows[n.Window] == nil {
			return nil
		}
		return []event.Event{system.ThemeEvent{Window: n.Window, Theme: n.Theme}}

	case driver.MonitorsChanged:
		l.registry.update(n.Monitors)
		evs := []event.Event{system.MonitorsChangedEvent{}}
		for _, id := range l.windowIDsSorted() {
			evs = append(evs, l.resolveMonitor(l.windows[id])...)
		}
		return evs

	case driver.DeviceAdded:
		return []event.Event{device.AddedEvent{Device: n.Device}}
	case driver.DeviceRemoved:
		return []event.Event{device.RemovedEvent{Device: n.Device}}
	case driver.DeviceMotion:
		return []event.Event{device.MotionEvent{Device: n.Device, DX: n.DX, DY: n.DY}}
	case driver.DeviceScroll:
		return []event.Event{device.ScrollEvent{Device: n.Device, DX: n.DX, DY: n.DY}}
	case driver.DeviceButton:
		return []event.Event{device.ButtonEvent{Device: n.Device, Button: n.Button, Pressed: n.Pressed}}
	case driver.DeviceKey:
		return []event.Event{device.KeyEvent{Device: n.Device, Code: n.Code, Pressed: n.Pressed}}

	case driver.Diagnostic:
		return []event.Event{system.DiagnosticEvent{Err: n.Err}}
	}
	return nil
}

// resolveMonitor re-binds st to the monitor it overlaps most and
// starts the scale protocol when the binding changes the scale
// factor. Fullscreen windows are pinned to their target monitor.
func (l *EventLoop) resolveMonitor(st *windowState) []event.Event {
	if st.fs != nil {
		return nil
	}
	mon, ok := l.registry.at(st.pos, st.size)
	if !ok {
		return nil
	}
	if mon.id == st.monitor && mon.scale == st.scale {
		return nil
	}
	st.monitor = mon.id
	if mon.scale == st.scale {
		return nil
	}
	logical := unit.Metric{Scale: st.scale}.DpSize(st.size)
	suggested := unit.Metric{Scale: mon.scale}.PxSize(logical)
	return []event.Event{system.ScaleEvent{Window: st.id, Scale: mon.scale, Suggested: &suggested}}
}

func (l *EventLoop) windowIDsSorted() []WindowID {
	ids := make([]WindowID, 0, len(l.windows))
	for id := range l.windows {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// keyName is the logical name for keys whose identity does not come
// from a rune, such as navigation keys.
func keyName(code key.Code) key.Name {
	switch code {
	case key.CodeArrowLeft:
		return key.NameLeftArrow
	case key.CodeArrowRight:
		return key.NameRightArrow
	case key.CodeArrowUp:
		return key.NameUpArrow
	case key.CodeArrowDown:
		return key.NameDownArrow
	case key.CodeEnter:
		return key.NameReturn
	case key.CodeNumpadEnter:
		return key.NameEnter
	case key.CodeEscape:
		return key.NameEscape
	case key.CodeHome:
		return key.NameHome
	case key.CodeEnd:
		return key.NameEnd
	case key.CodeBackspace:
		return key.NameDeleteBackward
	case key.CodeDelete:
		return key.NameDeleteForward
	case key.CodePageUp:
		return key.NamePageUp
	case key.CodePageDown:
		return key.NamePageDown
	case key.CodeTab:
		return key.NameTab
	case key.CodeSpaceBar:
		return key.NameSpace
	default:
		return key.Name(code.String())
	}
}

func (l *EventLoop) viewport(st *windowState) input.Viewport {
	return input.Viewport{
		Height: st.size.Y,
		Metric: unit.Metric{Scale: st.scale},
	}
}
