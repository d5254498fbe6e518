// SPDX-License-Identifier: Unlicense OR MIT

/*
Package app provides platform-independent window management and event
delivery. It connects to the best available native backend, owns the
per-window state, and hands canonical events to a handler on a single
loop thread.

A minimal program creates a loop and a window, then runs:

	loop, err := app.NewEventLoop()
	if err != nil {
		log.Fatal(err)
	}
	win, err := loop.NewWindow(app.Title("hello"))
	if err != nil {
		log.Fatal(err)
	}
	loop.Run(func(ev event.Event, ctl *app.Control) {
		switch ev := ev.(type) {
		case system.CloseEvent:
			ctl.Exit(0)
		case system.IdleEvent:
			ctl.Wait()
		}
		_ = ev
	})
	os.Exit(loop.ExitCode())

Each iteration of the loop delivers a system.StartEvent, the
iteration's batch of events, and a system.IdleEvent. The handler
picks the control flow for the following iteration through Control:
Poll runs again immediately, Wait blocks until something happens,
WaitUntil bounds the block with a deadline.

The handler runs on the goroutine that constructed the loop, which is
locked to its OS thread. Window mutators are safe from any goroutine;
they queue a request that the loop thread forwards to the backend.
Proxy.Send injects user events from other goroutines and wakes a
blocked loop.

Sizes and positions in events are physical pixels. The unit package
converts between physical and logical pixels using each window's
scale factor; a system.ScaleEvent announces scale changes before the
resize they cause.
*/
package app
