// Package config loads ropectl settings.
//
// Settings come from three layers, later layers overriding earlier ones:
// built-in defaults, an optional TOML file, and ROPECTL_* environment
// variables. A missing config file is not an error.
//
// Example file:
//
//	[logging]
//	level = "debug"
//
//	[input]
//	normalize = "nfc"
//	rebalance = true
//
//	[snapshots]
//	limit = 16
//
//	[watch]
//	debounce = "250ms"
package config
