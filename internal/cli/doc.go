// Package cli defines the carview command line with cobra.
//
// The root command opens the TUI. Subcommands serve the web assets (serve),
// run an in-memory API (mockapi) and print the log file (logs). Flags that
// mirror config keys are bound to a viper instance together with the
// CARVIEW_* environment variables, and override the config file only when
// given.
package cli
