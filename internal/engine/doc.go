// Package engine drives the poll-parse-render cycle.
//
// # Overview
//
// The engine is the only component with mutable orchestration state. On
// every tick (default 300s) or manual trigger it asks the provider for a
// snapshot, computes a title under the active display mode, and
// publishes a state.Display for the UI shell to render.
//
// # State machine
//
//	Idle -> Fetching -> {Rendered | SigninRequired | Error}
//
// and back to Fetching on the next tick or trigger. The sentinel titles
// are "Sign In" for an expired session and "$--" for everything else.
//
// # Concurrency
//
// Exactly one fetch is in flight at a time. A tick or RefreshNow that
// arrives while a fetch is running is dropped, never queued, so an
// impatient user cannot pile up provider processes. Fetches run on the
// engine's own goroutine; the UI only ever reads the state store.
//
// # Mode changes
//
// SetMode persists the preference, immediately re-renders the cached
// snapshot under the new formatter path, and then triggers a fresh
// fetch, preserving the reference behavior of fetching on every mode
// change.
//
// # Error policy
//
// No failure is fatal. Structured provider failures map onto the
// sign-in and error sentinels; baseline persistence failures are logged
// inside the baseline store and surface as a 0 delta. Retry is simply
// the next scheduled tick; there is no backoff.
package engine
