// SPDX-License-Identifier: Unlicense OR MIT

package input

import (
	"testing"

	"github.com/openwl/owl/io/key"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		space key.CodeSpace
		code  uint32
		dom   string
		want  key.Code
	}{
		{key.SpaceEvdev, 30, "", key.CodeKeyA},
		{key.SpaceEvdev, 1, "", key.CodeEscape},
		{key.SpaceWin32, 0x41, "", key.CodeKeyA},
		{key.SpaceMac, 0x00, "", key.CodeKeyA},
		{key.SpaceDOM, 0, "KeyA", key.CodeKeyA},
		{key.SpaceDOM, 0, "ShiftLeft", key.CodeShiftLeft},
		// Legacy DOM alias.
		{key.SpaceDOM, 0, "OSLeft", key.CodeSuperLeft},
		// Out-of-table codes degrade to CodeUnknown.
		{key.SpaceEvdev, 0xffff, "", key.CodeUnknown},
		{key.SpaceDOM, 0, "NoSuchKey", key.CodeUnknown},
	}
	for _, tc := range tests {
		if got := Lookup(tc.space, tc.code, tc.dom); got != tc.want {
			t.Errorf("Lookup(%v, %#x, %q) = %v, want %v", tc.space, tc.code, tc.dom, got, tc.want)
		}
	}
}

func TestEveryCodeHasADOMName(t *testing.T) {
	// The DOM table is built from Code.String, so every code must
	// round-trip through its own name.
	for c := key.Code(1); c.String() != "Unknown"; c++ {
		if got := Lookup(key.SpaceDOM, 0, c.String()); got != c {
			t.Errorf("DOM round trip of %v gave %v", c, got)
		}
	}
}
