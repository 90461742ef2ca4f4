// Package logtail reads and formats the carview log file.
//
// carview writes zap JSON lines to its log file because the TUI owns the
// terminal. The logs command uses this package to show them:
//
//   - Read returns the last N lines, scanning backwards from the end of the
//     file so large logs cost no more than the lines asked for.
//   - Follow polls the file and delivers lines as they are appended. A
//     truncated or rotated file is read again from the start.
//   - Formatter.Format turns a JSON entry into
//     "2026-03-01 12:00:00 INFO  ui  car created id=c1", optionally colored
//     with lipgloss. Lines that are not JSON pass through unchanged.
//
// Read returns nil, nil for a missing file.
package logtail
