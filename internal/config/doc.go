// Package config loads carview configuration.
//
// # Sources
//
// Settings are resolved in this order, later sources winning:
//
//  1. Built-in defaults (Default)
//  2. The TOML file, ~/.config/carview/config.toml unless a path is given
//  3. Environment variables bound with BindEnv
//  4. Command-line flags bound to the same viper instance
//
// Load covers the first two; Overlay applies whatever a viper instance has
// set on top. A missing config file is not an error.
//
// # TOML Format
//
//	api_base_url   = "https://cars.example.com"
//	api_key        = "..."
//	api_key_header = "x-api-key"
//	timeout_ms     = 30000
//	assets_dir     = "front"
//	port           = "10000"
//	log_file       = "~/.local/state/carview/carview.log"
//	log_level      = "info"
//
// Every key is optional. Values are trimmed and paths get tilde expansion.
//
// # Environment
//
//	CARVIEW_API_URL, CARVIEW_API_KEY, CARVIEW_API_KEY_HEADER,
//	CARVIEW_TIMEOUT_MS, CARVIEW_ASSETS_DIR, PORT,
//	CARVIEW_LOG_FILE, CARVIEW_LOG_LEVEL
//
// # Errors
//
// Load fails on unreadable or unparsable files. Load and Overlay both fail
// when the result does not pass Validate: a non-positive timeout, an
// unknown log level or a port that is not a bare number.
package config
