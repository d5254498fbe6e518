// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"image"

	"github.com/openwl/owl/app/driver"
	"github.com/openwl/owl/unit"
)

// Option configures a window at creation. The metric converts
// logical dimensions using the scale factor of the monitor the window
// will open on.
type Option func(m unit.Metric, cfg *driver.Config)

// defaultConfig returns a fully populated creation configuration.
// Unset options keep these values: an 800x600 logical window, titled,
// decorated, resizable and visible.
func defaultConfig(m unit.Metric) *driver.Config {
	size := m.PxSize(unit.Size{Width: 800, Height: 600})
	var fs *driver.Fullscreen
	return &driver.Config{
		Title:       ptr("owl"),
		Size:        &size,
		Resizable:   ptr(true),
		Decorated:   ptr(true),
		Transparent: ptr(false),
		AlwaysOnTop: ptr(false),
		Visible:     ptr(true),
		Minimized:   ptr(false),
		Fullscreen:  &fs,
	}
}

// Title sets the title of the window.
func Title(t string) Option {
	return func(_ unit.Metric, cfg *driver.Config) {
		cfg.Title = &t
	}
}

// Size sets the inner size of the window in logical pixels.
// Non-positive dimensions cause NewWindow to fail with a CreateError.
func Size(w, h float64) Option {
	return func(m unit.Metric, cfg *driver.Config) {
		s := m.PxSize(unit.Size{Width: w, Height: h})
		cfg.Size = &s
	}
}

// PhysicalSize sets the inner size of the window in physical pixels,
// bypassing the monitor scale factor. Non-positive dimensions cause
// NewWindow to fail with a CreateError.
func PhysicalSize(s image.Point) Option {
	return func(_ unit.Metric, cfg *driver.Config) {
		cfg.Size = &s
	}
}

// MinSize sets the minimum inner size in logical pixels.
func MinSize(w, h float64) Option {
	return func(m unit.Metric, cfg *driver.Config) {
		s := m.PxSize(unit.Size{Width: w, Height: h})
		cfg.MinSize = &s
	}
}

// MaxSize sets the maximum inner size in logical pixels.
func MaxSize(w, h float64) Option {
	return func(m unit.Metric, cfg *driver.Config) {
		s := m.PxSize(unit.Size{Width: w, Height: h})
		cfg.MaxSize = &s
	}
}

// Position sets the initial window position in the virtual desktop,
// in logical pixels.
func Position(x, y float64) Option {
	return func(m unit.Metric, cfg *driver.Config) {
		p := m.PxPoint(unit.Point{X: x, Y: y})
		cfg.Position = &p
	}
}

// Resizable controls whether the user can resize the window.
func Resizable(enabled bool) Option {
	return func(_ unit.Metric, cfg *driver.Config) {
		cfg.Resizable = &enabled
	}
}

// Decorated controls whether the platform draws window decorations.
func Decorated(enabled bool) Option {
	return func(_ unit.Metric, cfg *driver.Config) {
		cfg.Decorated = &enabled
	}
}

// Transparent requests an alpha channel for the window surface.
func Transparent(enabled bool) Option {
	return func(_ unit.Metric, cfg *driver.Config) {
		cfg.Transparent = &enabled
	}
}

// AlwaysOnTop requests that the window stays above normal windows.
func AlwaysOnTop(enabled bool) Option {
	return func(_ unit.Metric, cfg *driver.Config) {
		cfg.AlwaysOnTop = &enabled
	}
}

// Visible controls whether the window is shown at creation.
func Visible(shown bool) Option {
	return func(_ unit.Metric, cfg *driver.Config) {
		cfg.Visible = &shown
	}
}

// Minimized starts the window minimized.
func Minimized(min bool) Option {
	return func(_ unit.Metric, cfg *driver.Config) {
		cfg.Minimized = &min
	}
}

// FullscreenMode starts the window in the given fullscreen mode.
func FullscreenMode(f *Fullscreen) Option {
	return func(_ unit.Metric, cfg *driver.Config) {
		var df *driver.Fullscreen
		if f != nil {
			df = &driver.Fullscreen{Monitor: f.Monitor.id, Borderless: f.Borderless}
		}
		cfg.Fullscreen = &df
	}
}

// Icon sets the window icon. The image is converted and scaled as
// needed; platforms without window icons ignore it.
func Icon(img image.Image) Option {
	return func(_ unit.Metric, cfg *driver.Config) {
		cfg.Icon = normalizeIcon(img)
	}
}

func ptr[T any](v T) *T {
	return &v
}
