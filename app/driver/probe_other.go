// SPDX-License-Identifier: Unlicense OR MIT

//go:build !linux || android

package driver

// Platforms with a single windowing substrate have nothing to probe;
// a registered backend is assumed usable.
func defaultProbe(name string) bool {
	return true
}
