// SPDX-License-Identifier: Unlicense OR MIT

package app

// UserEvent carries a value injected through a Proxy. User events are
// delivered in send order, after the iteration's native events.
type UserEvent struct {
	Value any
}

func (UserEvent) ImplementsEvent() {}

// Proxy injects events into the loop from any goroutine. Proxies are
// plain values; copying one yields another handle to the same loop.
type Proxy struct {
	loop *EventLoop
}

// Proxy returns a cross-goroutine handle to the loop.
func (l *EventLoop) Proxy() Proxy {
	return Proxy{loop: l}
}

// Send queues v for delivery as a UserEvent and wakes the loop, even
// when it is blocked in Wait or WaitUntil. It returns ErrLoopExited
// once the loop has exited.
func (p Proxy) Send(v any) error {
	l := p.loop
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.exited {
		return ErrLoopExited
	}
	l.users = append(l.users, v)
	l.backend.Wake()
	return nil
}
