// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"errors"
	"image"
	"sync"
	"testing"
	"time"

	"github.com/openwl/owl/app/driver"
	"github.com/openwl/owl/io/event"
	"github.com/openwl/owl/io/pointer"
	"github.com/openwl/owl/io/system"
)

// fakeBackend is a scripted backend. Tests inject notifications with
// push and drive the loop from the handler.
type fakeBackend struct {
	sink     driver.Sink
	monitors []driver.MonitorInfo
	wake     chan struct{}

	mu       sync.Mutex
	windows  map[event.WindowID]*fakeWindow
	released bool
}

type fakeWindow struct {
	b       *fakeBackend
	id      event.WindowID
	configs []driver.Config
	closed  bool
}

var (
	registerFake sync.Once
	currentFake  *fakeBackend
)

// newFakeLoop builds a loop on a fresh fake backend. The default
// topology is one 1920x1080 monitor at scale 1.
func newFakeLoop(t *testing.T, monitors ...driver.MonitorInfo) (*EventLoop, *fakeBackend) {
	t.Helper()
	registerFake.Do(func() {
		driver.Register(driver.Registration{
			Name:     "fake",
			Priority: -1000,
			Probe:    func() bool { return false },
			Open: func(sink driver.Sink) (driver.Backend, error) {
				currentFake.sink = sink
				return currentFake, nil
			},
		})
	})
	if monitors == nil {
		monitors = []driver.MonitorInfo{{
			ID:      1,
			Name:    "Fake-1",
			Size:    image.Pt(1920, 1080),
			Scale:   1,
			Primary: true,
		}}
	}
	currentFake = &fakeBackend{
		monitors: monitors,
		wake:     make(chan struct{}, 1),
		windows:  make(map[event.WindowID]*fakeWindow),
	}
	l, err := newEventLoop("fake")
	if err != nil {
		t.Fatalf("newEventLoop: %v", err)
	}
	return l, currentFake
}

// push delivers notifications and wakes the loop, as a native event
// source would.
func (f *fakeBackend) push(ns ...driver.Notification) {
	for _, n := range ns {
		f.sink.Deliver(n)
	}
	f.Wake()
}

func (f *fakeBackend) Name() string { return "fake" }

func (f *fakeBackend) Caps() driver.Caps {
	return driver.Caps{Origin: pointer.TopLeft, EnterLeave: true, WindowIcons: true, AlwaysOnTop: true}
}

func (f *fakeBackend) Monitors() []driver.MonitorInfo { return f.monitors }

func (f *fakeBackend) NewWindow(id event.WindowID, cfg *driver.Config) (driver.Window, error) {
	w := &fakeWindow{b: f, id: id}
	f.mu.Lock()
	f.windows[id] = w
	f.mu.Unlock()
	return w, nil
}

func (f *fakeBackend) Wait(deadline *time.Time) {
	if deadline == nil {
		<-f.wake
		return
	}
	d := time.Until(*deadline)
	if d <= 0 {
		select {
		case <-f.wake:
		default:
		}
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-f.wake:
	case <-timer.C:
	}
}

func (f *fakeBackend) Wake() {
	select {
	case f.wake <- struct{}{}:
	default:
	}
}

func (f *fakeBackend) Release() {
	f.mu.Lock()
	f.released = true
	f.mu.Unlock()
}

func (w *fakeWindow) Handle() driver.Handle {
	return driver.Handle{Protocol: "fake", Surface: uintptr(w.id)}
}

func (w *fakeWindow) Configure(cfg *driver.Config) error {
	w.b.mu.Lock()
	w.configs = append(w.configs, *cfg)
	w.b.mu.Unlock()
	return nil
}

func (w *fakeWindow) SetCursor(c pointer.Cursor) error { return nil }

func (w *fakeWindow) Close() {
	w.b.mu.Lock()
	w.closed = true
	w.b.mu.Unlock()
	w.b.push(driver.Destroyed{Window: w.id})
}

// run drives l until script returns true at an IdleEvent. Every
// event is recorded.
func run(t *testing.T, l *EventLoop, script func(iter int, ctl *Control) bool) []event.Event {
	t.Helper()
	var got []event.Event
	iter := 0
	err := l.Run(func(ev event.Event, ctl *Control) {
		got = append(got, ev)
		if _, ok := ev.(system.IdleEvent); ok {
			iter++
			if script(iter, ctl) {
				ctl.Exit(0)
			}
		}
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return got
}

func TestInitialResize(t *testing.T) {
	l, _ := newFakeLoop(t)
	w, err := l.NewWindow()
	if err != nil {
		t.Fatalf("NewWindow: %v", err)
	}
	got := run(t, l, func(iter int, ctl *Control) bool { return true })

	if len(got) < 3 {
		t.Fatalf("got %d events, want at least Start, Resize, Idle", len(got))
	}
	se, ok := got[0].(system.StartEvent)
	if !ok || se.Cause != system.CauseInit {
		t.Errorf("first event = %v, want StartEvent{CauseInit}", got[0])
	}
	re, ok := got[1].(system.ResizeEvent)
	if !ok || re.Window != w.ID() || re.Size != image.Pt(800, 600) {
		t.Errorf("second event = %v, want ResizeEvent{%d, 800x600}", got[1], w.ID())
	}
	if _, ok := got[len(got)-1].(system.IdleEvent); !ok {
		t.Errorf("last event = %v, want IdleEvent", got[len(got)-1])
	}
}

func TestResizeCoalescing(t *testing.T) {
	l, fb := newFakeLoop(t)
	w, _ := l.NewWindow()
	got := run(t, l, func(iter int, ctl *Control) bool {
		if iter == 1 {
			fb.push(
				driver.Resized{Window: w.ID(), Size: image.Pt(100, 100)},
				driver.Resized{Window: w.ID(), Size: image.Pt(150, 150)},
				driver.Resized{Window: w.ID(), Size: image.Pt(200, 200)},
			)
			return false
		}
		return true
	})

	var resizes []system.ResizeEvent
	for _, ev := range got[3:] { // skip the creation iteration
		if re, ok := ev.(system.ResizeEvent); ok {
			resizes = append(resizes, re)
		}
	}
	if len(resizes) != 1 || resizes[0].Size != image.Pt(200, 200) {
		t.Fatalf("resizes after burst = %v, want the single final 200x200", resizes)
	}
}

func TestScaleProtocol(t *testing.T) {
	l, fb := newFakeLoop(t,
		driver.MonitorInfo{ID: 1, Name: "A", Size: image.Pt(1920, 1080), Scale: 1, Primary: true},
		driver.MonitorInfo{ID: 2, Name: "B", Position: image.Pt(1920, 0), Size: image.Pt(3840, 2160), Scale: 2},
	)
	w, _ := l.NewWindow(Position(100, 100))
	got := run(t, l, func(iter int, ctl *Control) bool {
		if iter == 1 {
			fb.push(driver.Moved{Window: w.ID(), Position: image.Pt(2000, 100)})
			return false
		}
		return true
	})

	// The move onto the scale-2 monitor yields Move, Scale, Resize
	// in that order, and the handler's size override wins.
	var idx []event.Event
	for _, ev := range got {
		switch ev.(type) {
		case system.MoveEvent, system.ScaleEvent, system.ResizeEvent:
			idx = append(idx, ev)
		}
	}
	// idx[0] is the creation resize.
	if len(idx) != 4 {
		t.Fatalf("geometry events = %v, want creation resize + move + scale + resize", idx)
	}
	if me, ok := idx[1].(system.MoveEvent); !ok || me.Position != image.Pt(2000, 100) {
		t.Errorf("event after move = %v, want MoveEvent at (2000,100)", idx[1])
	}
	se, ok := idx[2].(system.ScaleEvent)
	if !ok || se.Scale != 2 {
		t.Fatalf("event = %v, want ScaleEvent scale 2", idx[2])
	}
	re, ok := idx[3].(system.ResizeEvent)
	if !ok || re.Size != image.Pt(1600, 1200) {
		t.Errorf("event after scale = %v, want ResizeEvent 1600x1200", idx[3])
	}
	if w.InnerSize() != (image.Point{}) {
		// The loop has shut down; the window registry is gone.
		t.Errorf("window state survived shutdown")
	}
}

func TestScaleSuggestionOverride(t *testing.T) {
	l, fb := newFakeLoop(t,
		driver.MonitorInfo{ID: 1, Name: "A", Size: image.Pt(1920, 1080), Scale: 1, Primary: true},
		driver.MonitorInfo{ID: 2, Name: "B", Position: image.Pt(1920, 0), Size: image.Pt(3840, 2160), Scale: 2},
	)
	w, _ := l.NewWindow()
	var sized image.Point
	var scale float64
	iter := 0
	err := l.Run(func(ev event.Event, ctl *Control) {
		switch ev := ev.(type) {
		case system.ScaleEvent:
			*ev.Suggested = image.Pt(640, 480)
		case system.ResizeEvent:
			sized = ev.Size
		case system.IdleEvent:
			iter++
			switch iter {
			case 1:
				scale = w.Scale()
				fb.push(driver.Moved{Window: w.ID(), Position: image.Pt(2500, 100)})
			case 2:
				scale = w.Scale()
				sized = w.InnerSize()
				ctl.Exit(0)
			}
		}
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if scale != 2 {
		t.Errorf("scale after move = %g, want 2", scale)
	}
	if sized != image.Pt(640, 480) {
		t.Errorf("size after override = %v, want 640x480", sized)
	}
}

func TestCloseRequestIsAdvisory(t *testing.T) {
	l, fb := newFakeLoop(t)
	w, _ := l.NewWindow()
	sawClose := false
	sawDestroy := false
	aliveAfterClose := false
	got := run(t, l, func(iter int, ctl *Control) bool {
		switch iter {
		case 1:
			fb.push(driver.CloseRequested{Window: w.ID()})
			return false
		case 2:
			aliveAfterClose = l.windows[w.ID()] != nil
			w.Close()
			return false
		default:
			return l.windows[w.ID()] == nil
		}
	})
	for _, ev := range got {
		switch ev.(type) {
		case system.CloseEvent:
			sawClose = true
		case system.DestroyEvent:
			sawDestroy = true
		}
	}
	if !sawClose {
		t.Error("CloseRequested produced no CloseEvent")
	}
	if !aliveAfterClose {
		t.Error("window destroyed by a close request alone")
	}
	if !sawDestroy {
		t.Error("explicit Close produced no DestroyEvent")
	}
}

func TestProxyWakesWait(t *testing.T) {
	l, _ := newFakeLoop(t)
	proxy := l.Proxy()
	var user any
	var cause, cur system.StartCause
	armed := false
	err := l.Run(func(ev event.Event, ctl *Control) {
		switch ev := ev.(type) {
		case system.StartEvent:
			cur = ev.Cause
		case UserEvent:
			user = ev.Value
			cause = cur
		case system.IdleEvent:
			if user != nil {
				ctl.Exit(0)
				return
			}
			if !armed {
				armed = true
				go func() {
					time.Sleep(10 * time.Millisecond)
					if err := proxy.Send(42); err != nil {
						t.Errorf("Send: %v", err)
					}
				}()
			}
			ctl.Wait()
		}
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if user != 42 {
		t.Fatalf("user event = %v, want 42", user)
	}
	if cause != system.CauseWaitTimeout {
		t.Errorf("woken iteration cause = %v, want CauseWaitTimeout", cause)
	}
	if err := proxy.Send(1); !errors.Is(err, ErrLoopExited) {
		t.Errorf("Send after exit = %v, want ErrLoopExited", err)
	}
}

func TestWaitUntilCauses(t *testing.T) {
	l, _ := newFakeLoop(t)
	var causes []system.StartCause
	iter := 0
	err := l.Run(func(ev event.Event, ctl *Control) {
		switch ev := ev.(type) {
		case system.StartEvent:
			causes = append(causes, ev.Cause)
		case system.IdleEvent:
			iter++
			switch iter {
			case 1:
				ctl.WaitUntil(time.Now().Add(5 * time.Millisecond))
			case 2:
				ctl.Exit(0)
			}
		}
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := []system.StartCause{system.CauseInit, system.CauseResumeTimeReached}
	if len(causes) != 2 || causes[0] != want[0] || causes[1] != want[1] {
		t.Fatalf("causes = %v, want %v", causes, want)
	}
}

func TestPollCause(t *testing.T) {
	l, _ := newFakeLoop(t)
	var causes []system.StartCause
	err := l.Run(func(ev event.Event, ctl *Control) {
		switch ev := ev.(type) {
		case system.StartEvent:
			causes = append(causes, ev.Cause)
		case system.IdleEvent:
			if len(causes) == 2 {
				ctl.Exit(0)
			} else {
				ctl.Poll()
			}
		}
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if causes[1] != system.CausePoll {
		t.Errorf("second cause = %v, want CausePoll", causes[1])
	}
}

func TestFullscreenRoundTrip(t *testing.T) {
	l, fb := newFakeLoop(t)
	w, _ := l.NewWindow(Size(300, 200), Position(10, 20))
	type geom struct {
		pos  image.Point
		size image.Point
	}
	var during, after geom
	run(t, l, func(iter int, ctl *Control) bool {
		switch iter {
		case 1:
			w.SetFullscreen(&Fullscreen{})
			return false
		case 2:
			during = geom{pos: w.Position(), size: w.InnerSize()}
			w.SetFullscreen(nil)
			return false
		default:
			after = geom{pos: w.Position(), size: w.InnerSize()}
			return true
		}
	})
	if during.size != image.Pt(1920, 1080) || during.pos != image.Pt(0, 0) {
		t.Errorf("fullscreen geometry = %+v, want 1920x1080 at origin", during)
	}
	if after.size != image.Pt(300, 200) || after.pos != image.Pt(10, 20) {
		t.Errorf("restored geometry = %+v, want the exact pre-fullscreen 300x200 at (10,20)", after)
	}

	fb.mu.Lock()
	fw := fb.windows[w.ID()]
	var enter, exit bool
	for _, cfg := range fw.configs {
		if cfg.Fullscreen != nil {
			if *cfg.Fullscreen != nil {
				enter = true
			} else if enter {
				exit = true
			}
		}
	}
	fb.mu.Unlock()
	if !enter || !exit {
		t.Errorf("backend saw enter=%v exit=%v, want both", enter, exit)
	}
}

func TestFullscreenMonitorGoneFallsBack(t *testing.T) {
	l, fb := newFakeLoop(t,
		driver.MonitorInfo{ID: 1, Name: "A", Size: image.Pt(1920, 1080), Scale: 1, Primary: true},
		driver.MonitorInfo{ID: 2, Name: "B", Position: image.Pt(1920, 0), Size: image.Pt(1280, 720), Scale: 1},
	)
	w, _ := l.NewWindow(Position(2000, 100), Size(300, 200))
	var diag error
	got := run(t, l, func(iter int, ctl *Control) bool {
		switch iter {
		case 1:
			w.SetFullscreen(&Fullscreen{})
			return false
		case 2:
			// Unplug B while the window is fullscreen on it, then
			// leave fullscreen: the windowed position is gone too.
			fb.push(driver.MonitorsChanged{Monitors: fb.monitors[:1]})
			return false
		case 3:
			w.SetFullscreen(nil)
			return false
		default:
			return true
		}
	})
	for _, ev := range got {
		if de, ok := ev.(system.DiagnosticEvent); ok {
			diag = de.Err
		}
	}
	if diag == nil || !errors.Is(diag, ErrNotSupported) {
		t.Fatalf("diagnostic = %v, want one wrapping ErrNotSupported", diag)
	}
}

func TestWindowIDsUnique(t *testing.T) {
	l, _ := newFakeLoop(t)
	seen := make(map[WindowID]bool)
	for i := 0; i < 5; i++ {
		w, err := l.NewWindow()
		if err != nil {
			t.Fatalf("NewWindow: %v", err)
		}
		if seen[w.ID()] {
			t.Fatalf("duplicate window id %d", w.ID())
		}
		seen[w.ID()] = true
	}
	run(t, l, func(iter int, ctl *Control) bool { return true })
}

func TestSecondLoopFails(t *testing.T) {
	l, _ := newFakeLoop(t)
	if _, err := newEventLoop("fake"); !errors.Is(err, ErrLoopRunning) {
		t.Errorf("second loop = %v, want ErrLoopRunning", err)
	}
	run(t, l, func(iter int, ctl *Control) bool { return true })
}

func TestRunAfterExit(t *testing.T) {
	l, _ := newFakeLoop(t)
	run(t, l, func(iter int, ctl *Control) bool { return true })
	if err := l.Run(func(event.Event, *Control) {}); !errors.Is(err, ErrLoopExited) {
		t.Errorf("Run after exit = %v, want ErrLoopExited", err)
	}
}

func TestExitCode(t *testing.T) {
	l, _ := newFakeLoop(t)
	err := l.Run(func(ev event.Event, ctl *Control) {
		if _, ok := ev.(system.IdleEvent); ok {
			ctl.Exit(3)
		}
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := l.ExitCode(); got != 3 {
		t.Errorf("ExitCode = %d, want 3", got)
	}
}

func TestRunFromHandlerPanics(t *testing.T) {
	l, _ := newFakeLoop(t)
	defer func() {
		if recover() == nil {
			t.Error("nested Run did not panic")
		}
		// The panic escaped Run, so release the loop slot by hand
		// for the tests that follow.
		liveLoop.Store(false)
	}()
	l.Run(func(ev event.Event, ctl *Control) {
		l.Run(func(event.Event, *Control) {})
	})
}

func TestSuspendHoldsRequests(t *testing.T) {
	l, fb := newFakeLoop(t)
	w, _ := l.NewWindow()
	var stages []system.Stage
	got := run(t, l, func(iter int, ctl *Control) bool {
		switch iter {
		case 1:
			fb.push(driver.Stage{Stage: system.StagePaused})
			return false
		case 2:
			w.SetTitle("held")
			return false
		case 3:
			// The title request must not have reached the backend.
			fb.mu.Lock()
			n := len(fb.windows[w.ID()].configs)
			fb.mu.Unlock()
			if n != 0 {
				t.Errorf("backend got %d configures while suspended", n)
			}
			fb.push(driver.Stage{Stage: system.StageRunning})
			return false
		case 4:
			return false
		default:
			fb.mu.Lock()
			n := len(fb.windows[w.ID()].configs)
			fb.mu.Unlock()
			if n != 1 {
				t.Errorf("backend got %d configures after resume, want 1", n)
			}
			return true
		}
	})
	for _, ev := range got {
		if se, ok := ev.(system.StageEvent); ok {
			stages = append(stages, se.Stage)
		}
	}
	if len(stages) != 2 || stages[0] != system.StagePaused || stages[1] != system.StageRunning {
		t.Errorf("stages = %v, want paused then running", stages)
	}
}

// A request issued while the platform has the loop suspended is held,
// and a held request alone must not keep a Wait flow awake.
func TestSuspendedRequestDoesNotSpinWait(t *testing.T) {
	l, fb := newFakeLoop(t)
	w, _ := l.NewWindow()
	run(t, l, func(iter int, ctl *Control) bool {
		ctl.Wait()
		switch iter {
		case 1:
			fb.push(driver.Stage{Stage: system.StagePaused})
		case 2:
			w.SetTitle("held")
			go func() {
				time.Sleep(20 * time.Millisecond)
				fb.push(driver.Stage{Stage: system.StageRunning})
			}()
		default:
			fb.mu.Lock()
			n := len(fb.windows[w.ID()].configs)
			fb.mu.Unlock()
			if n == 1 {
				// The request flushes one iteration after the
				// resume. Any more iterations than that mean
				// the held request kept Wait from blocking.
				if iter > 8 {
					t.Errorf("loop ran %d iterations for one held request", iter)
				}
				return true
			}
			if iter > 1000 {
				t.Fatal("held request never flushed")
			}
		}
		return false
	})
}

func TestCreateOnSecondaryMonitorScale(t *testing.T) {
	l, _ := newFakeLoop(t,
		driver.MonitorInfo{ID: 1, Name: "Fake-1", Size: image.Pt(1920, 1080), Scale: 1, Primary: true},
		driver.MonitorInfo{ID: 2, Name: "Fake-2", Position: image.Pt(1920, 0), Size: image.Pt(3840, 2160), Scale: 2},
	)
	w, err := l.NewWindow(Position(2000, 100), Size(400, 300))
	if err != nil {
		t.Fatalf("NewWindow: %v", err)
	}
	if got := w.Scale(); got != 2 {
		t.Errorf("Scale() = %v, want the target monitor's 2", got)
	}
	if got := l.windows[w.ID()].monitor; got != 2 {
		t.Errorf("resolved monitor = %v, want 2", got)
	}
	got := run(t, l, func(iter int, ctl *Control) bool { return true })
	var sizes []image.Point
	for _, ev := range got {
		switch ev := ev.(type) {
		case system.ScaleEvent:
			t.Errorf("unexpected ScaleEvent %+v at creation", ev)
		case system.ResizeEvent:
			sizes = append(sizes, ev.Size)
		}
	}
	// 400x300 logical at scale 2.
	if len(sizes) != 1 || sizes[0] != image.Pt(800, 600) {
		t.Errorf("resize sizes = %v, want [(800,600)]", sizes)
	}
}

func TestNewWindowRejectsNonPositiveSize(t *testing.T) {
	l, _ := newFakeLoop(t)
	_, err := l.NewWindow(Size(0, 600))
	var ce *CreateError
	if !errors.As(err, &ce) {
		t.Fatalf("NewWindow(Size(0, 600)) = %v, want a CreateError", err)
	}
	// The failure leaves the loop usable.
	if _, err := l.NewWindow(); err != nil {
		t.Fatalf("NewWindow after rejected size: %v", err)
	}
	run(t, l, func(int, *Control) bool { return true })
}

func TestFocusRequestReachesBackend(t *testing.T) {
	l, fb := newFakeLoop(t)
	w, _ := l.NewWindow()
	run(t, l, func(iter int, ctl *Control) bool {
		if iter == 1 {
			w.Focus()
			return false
		}
		return true
	})
	fb.mu.Lock()
	defer fb.mu.Unlock()
	for _, cfg := range fb.windows[w.ID()].configs {
		if cfg.Focus != nil && *cfg.Focus {
			return
		}
	}
	t.Error("Focus request never reached the backend")
}

func TestMonitorValidAcrossHotPlug(t *testing.T) {
	l, fb := newFakeLoop(t)
	var before Monitor
	run(t, l, func(iter int, ctl *Control) bool {
		if iter == 1 {
			before, _ = ctl.PrimaryMonitor()
			fb.push(driver.MonitorsChanged{Monitors: fb.monitors})
			return false
		}
		if before.Valid(l) {
			t.Error("pre-hot-plug monitor handle still valid")
		}
		if p, _ := ctl.PrimaryMonitor(); !p.Valid(l) {
			t.Error("freshly enumerated monitor not valid")
		}
		return true
	})
}

func TestMonitorsChanged(t *testing.T) {
	l, fb := newFakeLoop(t)
	var gens int
	var names []string
	got := run(t, l, func(iter int, ctl *Control) bool {
		if iter == 1 {
			fb.push(driver.MonitorsChanged{Monitors: []driver.MonitorInfo{
				{ID: 1, Name: "Fake-1", Size: image.Pt(1920, 1080), Scale: 1, Primary: true},
				{ID: 2, Name: "Fake-2", Position: image.Pt(1920, 0), Size: image.Pt(1280, 720), Scale: 1},
			}})
			return false
		}
		for _, m := range ctl.Monitors() {
			names = append(names, m.Name())
		}
		return true
	})
	for _, ev := range got {
		if _, ok := ev.(system.MonitorsChangedEvent); ok {
			gens++
		}
	}
	if gens != 1 {
		t.Errorf("got %d MonitorsChangedEvents, want 1", gens)
	}
	if len(names) != 2 || names[0] != "Fake-1" {
		t.Errorf("monitors after hot-plug = %v, want primary first of two", names)
	}
}
