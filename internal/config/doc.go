// Package config handles loading and parsing the worthbar configuration file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/worthbar/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # Default Values
//
//   - Poll interval: 300 seconds
//   - Fetch timeout: 30 seconds
//   - Data dir: ~/Library/Application Support/SimplifiWorthBar on macOS,
//     ~/.local/share/worthbar elsewhere
//   - Helper script: <data_dir>/get_networth_label.py
//
// # TOML Format
//
// Example config.toml:
//
//	script_path = "/opt/worthbar/get_networth_label.py"
//	poll_seconds = 300
//	fetch_timeout_seconds = 30
//	data_dir = "~/.local/share/worthbar"
//
// All fields are optional. Tilde expansion is performed automatically.
//
// Missing config files are NOT an error - defaults are used instead.
// This allows worthbar to work out-of-the-box without configuration.
package config
