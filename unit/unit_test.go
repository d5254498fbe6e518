// SPDX-License-Identifier: Unlicense OR MIT

package unit

import (
	"math"
	"testing"
)

func TestPxRounding(t *testing.T) {
	m := Metric{Scale: 1}
	tests := []struct {
		v    float64
		want int
	}{
		{0, 0},
		{0.4, 0},
		{0.5, 1},
		{1.5, 2},
		{2.5, 3},
		{-0.5, -1},
		{-1.5, -2},
		{10.49, 10},
	}
	for _, tc := range tests {
		if got := m.Px(tc.v); got != tc.want {
			t.Errorf("Px(%g) = %d, want %d", tc.v, got, tc.want)
		}
	}
}

func TestPxScale(t *testing.T) {
	m := Metric{Scale: 1.5}
	if got := m.Px(100); got != 150 {
		t.Errorf("Px(100) at 1.5 = %d, want 150", got)
	}
	if got := m.Px(3); got != 5 {
		t.Errorf("Px(3) at 1.5 = %d, want 5 (4.5 rounds away from zero)", got)
	}
	if got := m.Px(-3); got != -5 {
		t.Errorf("Px(-3) at 1.5 = %d, want -5", got)
	}
}

func TestRoundTripWithinOnePixel(t *testing.T) {
	// Converting logical to physical and back must not drift by more
	// than one physical pixel's worth of logical distance.
	scales := []float64{0.5, 1, 1.25, 1.5, 2, 3}
	for _, scale := range scales {
		m := Metric{Scale: scale}
		for v := -50.0; v <= 50; v += 0.37 {
			back := m.Dp(m.Px(v))
			if diff := math.Abs(back - v); diff > 1/scale {
				t.Errorf("scale %g: round trip of %g drifted by %g logical px", scale, v, diff)
			}
		}
	}
}

func TestValid(t *testing.T) {
	for _, scale := range []float64{1, 0.5, 3} {
		if !(Metric{Scale: scale}).Valid() {
			t.Errorf("scale %g reported invalid", scale)
		}
	}
	for _, scale := range []float64{0, -1, math.Inf(1), math.NaN()} {
		if (Metric{Scale: scale}).Valid() {
			t.Errorf("scale %g reported valid", scale)
		}
	}
}

func TestDpf(t *testing.T) {
	m := Metric{Scale: 2}
	if got := m.Dpf(3); got != 1.5 {
		t.Errorf("Dpf(3) at 2 = %g, want 1.5", got)
	}
}
