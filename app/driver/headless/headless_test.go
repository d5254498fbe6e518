// SPDX-License-Identifier: Unlicense OR MIT

package headless

import (
	"image"
	"sync"
	"testing"
	"time"

	"github.com/openwl/owl/app/driver"
)

type recorder struct {
	mu    sync.Mutex
	notes []driver.Notification
}

func (r *recorder) Deliver(n driver.Notification) {
	r.mu.Lock()
	r.notes = append(r.notes, n)
	r.mu.Unlock()
}

func openBackend(t *testing.T) (driver.Backend, *recorder) {
	t.Helper()
	reg, err := driver.Select("headless")
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	sink := &recorder{}
	b, err := reg.Open(sink)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return b, sink
}

func TestMonitors(t *testing.T) {
	b, _ := openBackend(t)
	defer b.Release()
	ms := b.Monitors()
	if len(ms) != 1 || !ms[0].Primary || ms[0].Scale != 1 {
		t.Fatalf("monitors = %+v, want one primary at scale 1", ms)
	}
}

func TestConfigureEchoes(t *testing.T) {
	b, sink := openBackend(t)
	defer b.Release()
	size := image.Pt(640, 480)
	w, err := b.NewWindow(1, &driver.Config{Size: &size})
	if err != nil {
		t.Fatalf("NewWindow: %v", err)
	}
	grown := image.Pt(800, 600)
	w.Configure(&driver.Config{Size: &grown})
	w.Configure(&driver.Config{Size: &grown}) // no-op, no echo
	w.Close()

	sink.mu.Lock()
	defer sink.mu.Unlock()
	var resizes, destroys int
	for _, n := range sink.notes {
		switch n := n.(type) {
		case driver.Resized:
			resizes++
			if n.Size != grown {
				t.Errorf("echoed size = %v, want %v", n.Size, grown)
			}
		case driver.Destroyed:
			destroys++
		}
	}
	if resizes != 1 || destroys != 1 {
		t.Errorf("got %d resizes and %d destroys, want 1 and 1", resizes, destroys)
	}
}

func TestWakeUnblocksWait(t *testing.T) {
	b, _ := openBackend(t)
	defer b.Release()
	done := make(chan struct{})
	go func() {
		b.Wait(nil)
		close(done)
	}()
	time.Sleep(5 * time.Millisecond)
	b.Wake()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Wake did not unblock Wait")
	}
}
