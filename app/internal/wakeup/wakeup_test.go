// SPDX-License-Identifier: Unlicense OR MIT

package wakeup

import (
	"testing"
	"time"
)

func TestWakeBeforeWait(t *testing.T) {
	w, err := New()
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()
	w.Wake()
	deadline := time.Now().Add(5 * time.Second)
	start := time.Now()
	w.Wait(&deadline)
	if time.Since(start) > time.Second {
		t.Fatal("pending wake did not short-circuit the wait")
	}
}

func TestWakeFromOtherGoroutine(t *testing.T) {
	w, err := New()
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()
	go func() {
		time.Sleep(10 * time.Millisecond)
		w.Wake()
	}()
	done := make(chan struct{})
	go func() {
		w.Wait(nil)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("wake did not unblock an indefinite wait")
	}
}

func TestPastDeadlineDoesNotBlock(t *testing.T) {
	w, err := New()
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()
	past := time.Now().Add(-time.Second)
	start := time.Now()
	w.Wait(&past)
	if time.Since(start) > time.Second {
		t.Fatal("past deadline blocked")
	}
}

func TestDeadlineExpires(t *testing.T) {
	w, err := New()
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()
	deadline := time.Now().Add(20 * time.Millisecond)
	start := time.Now()
	w.Wait(&deadline)
	if elapsed := time.Since(start); elapsed < 10*time.Millisecond {
		t.Fatalf("wait returned after %v without a wake", elapsed)
	}
}

func TestWakeIsIdempotent(t *testing.T) {
	w, err := New()
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()
	for i := 0; i < 100; i++ {
		w.Wake()
	}
	deadline := time.Now().Add(time.Second)
	w.Wait(&deadline)
	// The burst collapses into one pending wake; a second wait must
	// time out instead of consuming a stale one.
	deadline = time.Now().Add(20 * time.Millisecond)
	start := time.Now()
	w.Wait(&deadline)
	if time.Since(start) < 10*time.Millisecond {
		t.Fatal("stale wake survived the draining wait")
	}
}
