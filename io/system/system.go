// SPDX-License-Identifier: Unlicense OR MIT

// Package system contains window lifecycle and geometry events, and
// the events framing each event-loop iteration.
package system

import (
	"image"

	"github.com/openwl/owl/io/event"
)

// StartEvent is the first event of every loop iteration.
type StartEvent struct {
	Cause StartCause
}

// IdleEvent is the last event of every loop iteration: all pending
// events have been delivered and the loop is about to honor the
// chosen control flow.
type IdleEvent struct{}

// ResizeEvent reports the new inner size of a window, in physical
// pixels. Consecutive native resizes within one drain pass are
// coalesced into a single event carrying the final size.
type ResizeEvent struct {
	Window event.WindowID
	Size   image.Point
}

// MoveEvent reports the new position of a window in the virtual
// desktop, in physical pixels.
type MoveEvent struct {
	Window   event.WindowID
	Position image.Point
}

// CloseEvent is generated when the user requests that a window close.
// The window stays open unless the caller acts on the request.
type CloseEvent struct {
	Window event.WindowID
}

// DestroyEvent is the last event delivered for a window.
type DestroyEvent struct {
	Window event.WindowID
}

// FocusEvent reports a change of keyboard focus.
type FocusEvent struct {
	Window  event.WindowID
	Focused bool
}

// OccludedEvent reports whether a window is completely hidden by
// other windows.
type OccludedEvent struct {
	Window   event.WindowID
	Occluded bool
}

// ScaleEvent reports a scale factor change for a window, before any
// resize caused by it. Suggested points at the physical size the
// window will take; the handler may overwrite it synchronously, and
// the final size is applied atomically with the scale change before
// the following ResizeEvent.
type ScaleEvent struct {
	Window    event.WindowID
	Scale     float64
	Suggested *image.Point
}

// ThemeEvent reports a change of the system theme preference.
type ThemeEvent struct {
	Window event.WindowID
	Theme  Theme
}

// MonitorsChangedEvent is generated once per monitor hot-plug.
// Monitor handles obtained before the event are stale; re-enumerate
// instead of caching indices across it.
type MonitorsChangedEvent struct{}

// A StageEvent is generated when the platform suspends or resumes the
// whole loop, such as backgrounding on mobile.
type StageEvent struct {
	Stage Stage
}

// DiagnosticEvent surfaces a non-fatal error that cannot be returned
// to any caller, such as an ingest failure not attributable to a
// window. The loop continues after delivering it.
type DiagnosticEvent struct {
	Err error
}

// StartCause is the reason an iteration began.
type StartCause uint8

const (
	// CauseInit is the first iteration of a run.
	CauseInit StartCause = iota
	// CausePoll follows a Poll control flow.
	CausePoll
	// CauseWaitTimeout is a wait cut short by a notification or an
	// external wake.
	CauseWaitTimeout
	// CauseResumeTimeReached is a WaitUntil whose deadline expired.
	CauseResumeTimeReached
)

// Stage of an event loop.
type Stage uint8

const (
	// StagePaused is the stage of a suspended loop. Window mutation
	// requests are held until resume.
	StagePaused Stage = iota
	// StageRunning is the stage of a foreground loop.
	StageRunning
)

// Theme is a system-wide appearance preference.
type Theme uint8

const (
	ThemeLight Theme = iota
	ThemeDark
)

func (c StartCause) String() string {
	switch c {
	case CauseInit:
		return "Init"
	case CausePoll:
		return "Poll"
	case CauseWaitTimeout:
		return "WaitTimeout"
	case CauseResumeTimeReached:
		return "ResumeTimeReached"
	default:
		panic("invalid StartCause")
	}
}

func (s Stage) String() string {
	switch s {
	case StagePaused:
		return "StagePaused"
	case StageRunning:
		return "StageRunning"
	default:
		panic("invalid Stage")
	}
}

func (t Theme) String() string {
	switch t {
	case ThemeLight:
		return "Light"
	case ThemeDark:
		return "Dark"
	default:
		panic("invalid Theme")
	}
}

func (StartEvent) ImplementsEvent()           {}
func (IdleEvent) ImplementsEvent()            {}
func (ResizeEvent) ImplementsEvent()          {}
func (MoveEvent) ImplementsEvent()            {}
func (CloseEvent) ImplementsEvent()           {}
func (DestroyEvent) ImplementsEvent()         {}
func (FocusEvent) ImplementsEvent()           {}
func (OccludedEvent) ImplementsEvent()        {}
func (ScaleEvent) ImplementsEvent()           {}
func (ThemeEvent) ImplementsEvent()           {}
func (MonitorsChangedEvent) ImplementsEvent() {}
func (StageEvent) ImplementsEvent()           {}
func (DiagnosticEvent) ImplementsEvent()      {}
