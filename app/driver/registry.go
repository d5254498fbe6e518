// SPDX-License-Identifier: Unlicense OR MIT

package driver

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/exp/slices"
)

// ErrNoBackend is returned by Select when no registered backend's
// runtime is present.
var ErrNoBackend = errors.New("driver: no usable window backend found")

// Registration describes one backend available for selection.
type Registration struct {
	// Name identifies the backend, matched against explicit
	// preferences ("wayland", "x11", "win32", ...).
	Name string
	// Priority orders probing. Higher is tried first; on platforms
	// with several display-server protocols the preferred protocol
	// registers with the higher priority.
	Priority int
	// Probe reports whether the backend's runtime is present. A nil
	// Probe falls back to the platform default probe for Name.
	Probe func() bool
	// Open connects to the native substrate. Notifications are
	// pushed to sink from then on.
	Open func(sink Sink) (Backend, error)
}

var registry struct {
	sync.Mutex
	backends []Registration
}

// Register makes a backend available for selection. Backends call it
// from an init function.
func Register(r Registration) {
	if r.Name == "" || r.Open == nil {
		panic("driver: incomplete registration")
	}
	registry.Lock()
	defer registry.Unlock()
	registry.backends = append(registry.backends, r)
}

// Select resolves which backend to use. It is called once at loop
// construction and the result is immutable for the loop's lifetime.
//
// A non-empty preferred names a registered backend directly,
// bypassing probes. Otherwise registrations are tried in descending
// priority order and the first present runtime wins.
func Select(preferred string) (Registration, error) {
	registry.Lock()
	candidates := slices.Clone(registry.backends)
	registry.Unlock()

	if preferred != "" {
		for _, r := range candidates {
			if r.Name == preferred {
				return r, nil
			}
		}
		return Registration{}, fmt.Errorf("driver: backend %q is not registered: %w", preferred, ErrNoBackend)
	}

	slices.SortStableFunc(candidates, func(a, b Registration) int {
		return b.Priority - a.Priority
	})
	for _, r := range candidates {
		probe := r.Probe
		if probe == nil {
			name := r.Name
			probe = func() bool { return defaultProbe(name) }
		}
		if probe() {
			return r, nil
		}
	}
	return Registration{}, ErrNoBackend
}
