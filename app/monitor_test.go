// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"image"
	"testing"

	"github.com/openwl/owl/app/driver"
)

func topology() []driver.MonitorInfo {
	return []driver.MonitorInfo{
		{ID: 2, Name: "right", Position: image.Pt(1920, 0), Size: image.Pt(1280, 720), Scale: 1},
		{ID: 1, Name: "main", Size: image.Pt(1920, 1080), Scale: 2, Primary: true},
		{ID: 3, Name: "left", Position: image.Pt(-1024, 0), Size: image.Pt(1024, 768), Scale: 1},
	}
}

func TestRegistryOrder(t *testing.T) {
	var r monitorRegistry
	r.update(topology())
	var names []string
	for _, m := range r.list() {
		names = append(names, m.Name())
	}
	want := []string{"main", "left", "right"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("enumeration = %v, want %v (primary first, then by position)", names, want)
		}
	}
	if p, ok := r.primary(); !ok || p.Name() != "main" {
		t.Errorf("primary = %v, %v", p.Name(), ok)
	}
}

func TestRegistrySanitizesScale(t *testing.T) {
	var r monitorRegistry
	r.update([]driver.MonitorInfo{{ID: 1, Name: "bad", Size: image.Pt(100, 100), Scale: -2, Primary: true}})
	if got := r.list()[0].Scale(); got != 1 {
		t.Errorf("invalid scale became %g, want 1", got)
	}
}

func TestRegistryAt(t *testing.T) {
	var r monitorRegistry
	r.update(topology())

	// Fully inside the right monitor.
	if m, ok := r.at(image.Pt(2000, 100), image.Pt(300, 200)); !ok || m.Name() != "right" {
		t.Errorf("at(2000,100) = %v, want right", m.Name())
	}
	// Straddling main and right, with most of the area on main.
	if m, ok := r.at(image.Pt(1700, 0), image.Pt(400, 400)); !ok || m.Name() != "main" {
		t.Errorf("straddling rect resolved to %v, want main by larger overlap", m.Name())
	}
	// Off every monitor: primary fallback.
	if m, ok := r.at(image.Pt(10000, 10000), image.Pt(10, 10)); !ok || m.Name() != "main" {
		t.Errorf("off-screen rect resolved to %v, want primary", m.Name())
	}
}

func TestRegistryGeneration(t *testing.T) {
	var r monitorRegistry
	r.update(topology())
	before := r.list()[0]
	r.update(topology()[:1])
	after := r.list()[0]
	if before.gen == after.gen {
		t.Error("generation did not advance across an update")
	}
	if _, ok := r.byID(1); ok {
		t.Error("byID found a monitor dropped by the update")
	}
	if _, ok := r.byID(2); !ok {
		t.Error("byID missed a surviving monitor")
	}
}
