// SPDX-License-Identifier: Unlicense OR MIT

// Package key implements the platform-independent key model.
//
// A key carries two identities. Code is the physical identity: the
// position of the key on the keyboard, stable across layouts. Name is
// the logical identity: the character or function the key produces
// under the active layout, when the backend can report one.
package key

import (
	"strings"

	"github.com/openwl/owl/io/device"
	"github.com/openwl/owl/io/event"
)

// Event is generated when a key is pressed or released on a focused
// window.
type Event struct {
	// Window is the focused window.
	Window event.WindowID
	// Device identifies the keyboard.
	Device device.ID
	// Code is the physical key identity.
	Code Code
	// Name is the logical key under the active layout. It is empty
	// when the backend cannot resolve one.
	Name Name
	// Modifiers is the set of active modifiers when the key changed
	// state.
	Modifiers Modifiers
	// State is Press or Release.
	State State
	// Repeat reports platform auto-repeat of a held key. A repeat is
	// never a new press edge: the key has been down since the last
	// non-repeat Press.
	Repeat bool
}

// ModifiersEvent is generated when the modifier set changes. The set
// is tracked from matched press/release pairs only.
type ModifiersEvent struct {
	Window    event.WindowID
	Modifiers Modifiers
}

// Name is the identifier for the logical meaning of a key.
//
// For letters, the upper case form is used, via unicode.ToUpper.
type Name string

const (
	// Names for special keys.
	NameLeftArrow      Name = "←"
	NameRightArrow     Name = "→"
	NameUpArrow        Name = "↑"
	NameDownArrow      Name = "↓"
	NameReturn         Name = "⏎"
	NameEnter          Name = "⌤"
	NameEscape         Name = "⎋"
	NameHome           Name = "⇱"
	NameEnd            Name = "⇲"
	NameDeleteBackward Name = "⌫"
	NameDeleteForward  Name = "⌦"
	NamePageUp         Name = "⇞"
	NamePageDown       Name = "⇟"
	NameTab            Name = "⇥"
	NameSpace          Name = "Space"
)

// State is the state of a key during an event.
type State uint8

const (
	// Press is the state of a pressed key.
	Press State = iota
	// Release is the state of a released key.
	Release
)

// Modifiers is a set of modifier keys.
type Modifiers uint32

const (
	// ModCtrl is the ctrl modifier key.
	ModCtrl Modifiers = 1 << iota
	// ModShift is the shift modifier key.
	ModShift
	// ModAlt is the alt modifier key, or option on Apple keyboards.
	ModAlt
	// ModSuper is the "logo" modifier key, or command on Apple
	// keyboards.
	ModSuper
)

// Contain reports whether m contains all modifiers in m2.
func (m Modifiers) Contain(m2 Modifiers) bool {
	return m&m2 == m2
}

func (m Modifiers) String() string {
	var strs []string
	if m.Contain(ModCtrl) {
		strs = append(strs, "Ctrl")
	}
	if m.Contain(ModShift) {
		strs = append(strs, "Shift")
	}
	if m.Contain(ModAlt) {
		strs = append(strs, "Alt")
	}
	if m.Contain(ModSuper) {
		strs = append(strs, "Super")
	}
	return strings.Join(strs, "-")
}

func (s State) String() string {
	switch s {
	case Press:
		return "Press"
	case Release:
		return "Release"
	default:
		panic("invalid State")
	}
}

func (Event) ImplementsEvent()          {}
func (ModifiersEvent) ImplementsEvent() {}
