// Package app provides the orchestration layer for worthbar.
//
// # Overview
//
// This package is the composition root: it loads configuration and user
// preferences, builds the provider, baseline store, and polling engine,
// and hands the wired engine to the UI shell. Business logic lives in
// the domain packages (provider, baseline, format, engine, ui); app only
// connects them.
//
// # Initialization
//
//  1. Load config from ~/.config/worthbar/config.toml
//  2. Load user prefs (display mode, theme) from prefs.toml
//  3. Build the script provider with the configured fetch timeout
//  4. Build the baseline store in the data dir
//  5. Start the engine's poll loop
//  6. Run the TUI and block until the user exits or the context cancels
//
// # One-shot modes
//
// Besides the TUI, the package exposes the helper script's original
// command-line behavior:
//
//   - RunOnce fetches once and prints the compact label, caching it to
//     last_label.txt; on failure it falls back to the cached label, then
//     the "Sign In" sentinel, then "$--" with a non-zero exit code.
//   - RunDiagnostics prints the provider's diagnostics output verbatim.
//
// # Error Handling
//
// Configuration and wiring failures are fatal and returned from Run.
// Everything after startup is recoverable: poll failures render the
// error sentinels and the next tick retries.
package app
