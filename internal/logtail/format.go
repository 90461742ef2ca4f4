package logtail

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Formatter turns zap JSON log lines into one-line human readable text.
type Formatter struct {
	Color bool
}

var (
	timeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	loggerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6495ED"))
	keyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
	levelStyles = map[string]lipgloss.Style{
		"DEBUG": lipgloss.NewStyle().Foreground(lipgloss.Color("#00BFFF")).Bold(true),
		"INFO":  lipgloss.NewStyle().Foreground(lipgloss.Color("#32CD32")).Bold(true),
		"WARN":  lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true),
		"ERROR": lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
	}
)

// reserved keys are printed in fixed positions, not as fields.
var reserved = map[string]bool{
	"level": true, "ts": true, "msg": true, "logger": true, "caller": true, "stacktrace": true,
}

// Format renders line. Lines that are not JSON objects come back unchanged.
//
//	{"level":"info","ts":1772366400.5,"logger":"ui","msg":"car created","id":"c1"}
//	2026-03-01 12:00:00 INFO  ui  car created id=c1
func (f Formatter) Format(line string) string {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "{") {
		return line
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(trimmed), &entry); err != nil {
		return line
	}

	var b strings.Builder
	if ts := formatTime(entry["ts"]); ts != "" {
		b.WriteString(f.style(timeStyle, ts))
		b.WriteByte(' ')
	}

	level := strings.ToUpper(asString(entry["level"]))
	if level == "" {
		level = "INFO"
	}
	b.WriteString(f.style(levelStyles[level], fmt.Sprintf("%-5s", level)))

	if name := asString(entry["logger"]); name != "" {
		b.WriteByte(' ')
		b.WriteString(f.style(loggerStyle, name))
	}
	b.WriteString("  ")
	msg, _ := entry["msg"].(string)
	b.WriteString(msg)

	keys := make([]string, 0, len(entry))
	for k := range entry {
		if !reserved[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteByte(' ')
		b.WriteString(f.style(keyStyle, k+"="))
		b.WriteString(asString(entry[k]))
	}
	return b.String()
}

func (f Formatter) style(s lipgloss.Style, text string) string {
	if !f.Color {
		return text
	}
	return s.Render(text)
}

// formatTime accepts zap's epoch-seconds float and ISO8601 strings.
func formatTime(v any) string {
	switch ts := v.(type) {
	case float64:
		sec, frac := math.Modf(ts)
		return time.Unix(int64(sec), int64(frac*1e9)).Local().Format("2006-01-02 15:04:05")
	case string:
		if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			return t.Local().Format("2006-01-02 15:04:05")
		}
		return ts
	default:
		return ""
	}
}

func asString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		if strings.ContainsAny(val, " \t") {
			return fmt.Sprintf("%q", val)
		}
		return val
	case float64:
		if val == math.Trunc(val) && math.Abs(val) < 1e15 {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%g", val)
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(data)
	}
}
