// SPDX-License-Identifier: Unlicense OR MIT

/*
Package unit implements the canonical coordinate system.

Logical pixels are DPI independent; physical pixels are actual device
pixels. The two are related by a scale factor:

	physical = round(logical * scale)
	logical  = physical / scale

where round is half away from zero. The canonical origin is the top
left corner, X grows right and Y grows down, in both unit systems.

All conversions go through a Metric; no other package performs pixel
math of its own.
*/
package unit

import (
	"fmt"
	"image"
	"math"
)

// Metric converts between logical and physical pixels for one scale
// factor.
type Metric struct {
	// Scale is the number of physical pixels per logical pixel. It
	// must be positive and finite.
	Scale float64
}

// Point is a position in logical pixels.
type Point struct {
	X, Y float64
}

// Size is an extent in logical pixels.
type Size struct {
	Width, Height float64
}

// Valid reports whether the metric carries a usable scale factor.
func (m Metric) Valid() bool {
	return m.Scale > 0 && !math.IsInf(m.Scale, 1)
}

// Px converts a logical value to physical pixels, rounding half away
// from zero.
func (m Metric) Px(v float64) int {
	return int(math.Round(v * m.Scale))
}

// Dp converts a physical pixel count to a logical value.
func (m Metric) Dp(px int) float64 {
	return float64(px) / m.Scale
}

// Dpf converts a fractional physical distance, such as a scroll
// delta, to logical pixels.
func (m Metric) Dpf(px float64) float64 {
	return px / m.Scale
}

// PxPoint converts a logical point to physical pixels.
func (m Metric) PxPoint(p Point) image.Point {
	return image.Point{X: m.Px(p.X), Y: m.Px(p.Y)}
}

// PxSize converts a logical size to physical pixels.
func (m Metric) PxSize(s Size) image.Point {
	return image.Point{X: m.Px(s.Width), Y: m.Px(s.Height)}
}

// DpPoint converts a physical point to logical pixels.
func (m Metric) DpPoint(p image.Point) Point {
	return Point{X: m.Dp(p.X), Y: m.Dp(p.Y)}
}

// DpSize converts a physical size to logical pixels.
func (m Metric) DpSize(p image.Point) Size {
	return Size{Width: m.Dp(p.X), Height: m.Dp(p.Y)}
}

func (p Point) String() string {
	return fmt.Sprintf("(%g,%g)", p.X, p.Y)
}

func (s Size) String() string {
	return fmt.Sprintf("%gx%g", s.Width, s.Height)
}
