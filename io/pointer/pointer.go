// SPDX-License-Identifier: Unlicense OR MIT

// Package pointer implements canonical mouse and touch events.
//
// Positions are always in the canonical coordinate system: logical
// pixels, top-left origin, Y down. Backends with other conventions
// have their coordinates converted before events reach a caller.
package pointer

import (
	"fmt"
	"strings"
	"time"

	"github.com/openwl/owl/io/device"
	"github.com/openwl/owl/io/event"
	"github.com/openwl/owl/io/key"
	"github.com/openwl/owl/unit"
)

// Event is a pointer event delivered to a window.
type Event struct {
	Kind   Kind
	Window event.WindowID
	// Device identifies the pointing device.
	Device device.ID
	Source Source
	// Time is when the event was received. The timestamp is relative
	// to an undefined base.
	Time time.Duration
	// Position is in the canonical coordinate system.
	Position unit.Point
	// Buttons is the set of depressed mouse buttons for this event.
	Buttons Buttons
	// Button is the button that changed state, for Press and Release.
	Button Buttons
	// Scroll is the scroll delta in logical pixels, for Scroll.
	Scroll unit.Point
	// Modifiers is the modifier set active when the event fired.
	Modifiers key.Modifiers
}

// TouchID distinguishes concurrent touches from one device. An ID is
// not reused while its touch sequence is active.
type TouchID uint64

// Phase is the lifecycle stage of a touch sequence. Every sequence is
// Started, then zero or more Moved, then exactly one of Ended or
// Cancelled.
type Phase uint8

const (
	Started Phase = iota
	Moved
	Ended
	Cancelled
)

// TouchEvent is one step of a touch sequence.
type TouchEvent struct {
	Window event.WindowID
	Device device.ID
	ID     TouchID
	Phase  Phase
	// Position is in the canonical coordinate system.
	Position unit.Point
}

// Kind of an Event.
type Kind uint8

const (
	// Move of a pointer inside the window.
	Move Kind = iota
	// Press of a pointer button.
	Press
	// Release of a pointer button.
	Release
	// Scroll of a wheel or trackpad.
	Scroll
	// Enter of a pointer into the window. Enter always precedes the
	// first Move of a containment span.
	Enter
	// Leave of a pointer out of the window. Leave always follows the
	// last Move of a containment span.
	Leave
)

// Source of an Event.
type Source uint8

const (
	// Mouse generated event.
	Mouse Source = iota
	// Touch generated event.
	Touch
)

// Buttons is a set of mouse buttons.
type Buttons uint8

const (
	// ButtonPrimary is the primary button, usually the left button
	// for a right-handed user.
	ButtonPrimary Buttons = 1 << iota
	// ButtonSecondary is the secondary button, usually the right
	// button for a right-handed user.
	ButtonSecondary
	// ButtonTertiary is the tertiary button, usually the middle
	// button.
	ButtonTertiary
)

// Contain reports whether b contains all of b2.
func (b Buttons) Contain(b2 Buttons) bool {
	return b&b2 == b2
}

// Origin is a native vertical coordinate convention.
type Origin uint8

const (
	// TopLeft origin, Y down: the canonical convention.
	TopLeft Origin = iota
	// BottomLeft origin, Y up, as used by AppKit.
	BottomLeft
)

// Cursor denotes a pre-defined cursor shape. The names correspond to
// CSS cursor naming.
type Cursor byte

const (
	// CursorDefault is the default cursor.
	CursorDefault Cursor = iota
	// CursorNone hides the cursor.
	CursorNone
	// CursorText is for selecting and inserting text.
	CursorText
	// CursorPointer is for a link.
	CursorPointer
	// CursorCrosshair is for a precise location.
	CursorCrosshair
	// CursorGrab is for content that can be dragged.
	CursorGrab
	// CursorGrabbing is for content being dragged.
	CursorGrabbing
	// CursorNotAllowed is shown when the action cannot be carried
	// out.
	CursorNotAllowed
	// CursorWait is shown while the program is busy.
	CursorWait
	// CursorColResize is for vertical resize.
	CursorColResize
	// CursorRowResize is for horizontal resize.
	CursorRowResize
	// CursorNorthSouthResize is for top-bottom resizing.
	CursorNorthSouthResize
	// CursorEastWestResize is for left-right resizing.
	CursorEastWestResize
	// CursorNorthEastResize is for top-right corner resizing.
	CursorNorthEastResize
	// CursorNorthWestResize is for top-left corner resizing.
	CursorNorthWestResize
	// CursorSouthEastResize is for bottom-right corner resizing.
	CursorSouthEastResize
	// CursorSouthWestResize is for bottom-left corner resizing.
	CursorSouthWestResize
)

func (k Kind) String() string {
	switch k {
	case Move:
		return "Move"
	case Press:
		return "Press"
	case Release:
		return "Release"
	case Scroll:
		return "Scroll"
	case Enter:
		return "Enter"
	case Leave:
		return "Leave"
	default:
		panic("invalid Kind")
	}
}

func (p Phase) String() string {
	switch p {
	case Started:
		return "Started"
	case Moved:
		return "Moved"
	case Ended:
		return "Ended"
	case Cancelled:
		return "Cancelled"
	default:
		panic("invalid Phase")
	}
}

func (s Source) String() string {
	switch s {
	case Mouse:
		return "Mouse"
	case Touch:
		return "Touch"
	default:
		panic("invalid Source")
	}
}

func (b Buttons) String() string {
	var strs []string
	if b.Contain(ButtonPrimary) {
		strs = append(strs, "Primary")
	}
	if b.Contain(ButtonSecondary) {
		strs = append(strs, "Secondary")
	}
	if b.Contain(ButtonTertiary) {
		strs = append(strs, "Tertiary")
	}
	return strings.Join(strs, "|")
}

func (e Event) String() string {
	return fmt.Sprintf("%v %v %v", e.Kind, e.Source, e.Position)
}

func (Event) ImplementsEvent()      {}
func (TouchEvent) ImplementsEvent() {}
