// Package state holds the rendered display state shared between the
// polling engine and the UI shell.
//
// The engine is the only writer; the UI and any other subscribers read
// copies. Phase tracks where the engine is in its poll cycle so the UI
// can show activity without ever blocking on a fetch.
package state

import (
	"sync"
	"time"
)

// Phase is the engine's position in the poll cycle.
type Phase int

const (
	// PhaseIdle means no poll has completed yet.
	PhaseIdle Phase = iota
	// PhaseFetching means a provider call is in flight.
	PhaseFetching
	// PhaseRendered means the last poll produced a snapshot.
	PhaseRendered
	// PhaseSigninRequired means the upstream session has expired.
	PhaseSigninRequired
	// PhaseError means the last poll failed for any other reason.
	PhaseError
)

// String returns a short name for logs and the diagnostics footer.
func (p Phase) String() string {
	switch p {
	case PhaseFetching:
		return "fetching"
	case PhaseRendered:
		return "rendered"
	case PhaseSigninRequired:
		return "signin required"
	case PhaseError:
		return "error"
	default:
		return "idle"
	}
}

// Display is the user-visible state: the status-bar title and a one-line
// status message.
type Display struct {
	Title     string
	Status    string
	Phase     Phase
	UpdatedAt time.Time
}

// Store coordinates concurrent access to the display state.
type Store struct {
	mu      sync.RWMutex
	display Display
	subs    []func(Display)
}

// Set replaces the display state and notifies subscribers. Callbacks run
// on the caller's goroutine after the lock is released.
func (s *Store) Set(d Display) {
	s.mu.Lock()
	s.display = d
	subs := s.subs
	s.mu.Unlock()

	for _, fn := range subs {
		fn(d)
	}
}

// Current returns a copy of the display state.
func (s *Store) Current() Display {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.display
}

// Subscribe registers a callback invoked after every Set. Subscribers
// must not call back into the Store's setter.
func (s *Store) Subscribe(fn func(Display)) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}
