// Package provider fetches net-worth snapshots from the Simplifi helper
// script.
//
// # Overview
//
// The upstream session store is opaque to this application. All access
// goes through a helper executable that inspects the authenticated web
// session and prints a structured result. This package runs that helper,
// enforces a fetch timeout, and converts its output into typed results.
//
// # Provider contract
//
// The helper supports two modes:
//
//   - snapshot (--json): stdout is a single JSON object with the fields
//     ok, source, total, daily_percent, label, error_code, message
//   - diagnostics (--diagnostics): stdout is free-form text intended for
//     display and copy, never parsed
//
// # Result model
//
// A fetch produces exactly one of:
//
//   - *Snapshot: the helper reported ok=true with a total and percent
//   - *Error: the helper reported a structured failure (error_code),
//     the snapshot was incoherent, or the fetch timed out
//   - a plain error: the helper could not produce a snapshot at all
//     (process failure, unparseable stdout); the message carries the
//     helper's stderr, or a fixed fallback when stderr is empty
//
// Callers distinguish the structured case with errors.As. The split
// matters because a sign-in requirement is user-actionable while a
// crashed helper is not.
//
// # Timeouts
//
// Every invocation runs under a context deadline. A helper that exceeds
// it is killed and reported as a network_error, since the helper itself
// is network-bound.
package provider
