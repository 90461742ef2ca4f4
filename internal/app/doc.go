// Package app is the composition root for carview.
//
// Run loads configuration, opens the file logger, builds the cars API client
// and hands everything to the TUI. It blocks until the user quits or the
// context is cancelled.
//
// Serve and ServeMockAPI run HTTP servers under an fx lifecycle: the listener
// is bound when the app starts, so a port already in use fails fast, and the
// server is shut down gracefully when the context is cancelled.
//
// Configuration comes from ~/.config/carview/config.toml with flags and
// environment variables layered on top through viper. See package config.
package app
