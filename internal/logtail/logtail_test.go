package logtail

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"
)

func writeLines(t *testing.T, n int, width int) (string, []string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "carview.log")
	var content strings.Builder
	var all []string
	for i := 1; i <= n; i++ {
		line := fmt.Sprintf("Line %d %s", i, strings.Repeat("x", width))
		content.WriteString(line + "\n")
		all = append(all, line)
	}
	if err := os.WriteFile(path, []byte(content.String()), 0o644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}
	return path, all
}

func TestRead(t *testing.T) {
	path, all := writeLines(t, 10, 0)

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{"read all (0)", 0, all},
		{"read all (negative)", -1, all},
		{"read partial (5)", 5, all[5:]},
		{"read exactly all (10)", 10, all},
		{"read more than exists (20)", 20, all},
		{"read one", 1, all[9:]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(path, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Fatalf("Read() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRead_SpansChunks(t *testing.T) {
	// 2000 lines of ~100 bytes is several chunks.
	path, all := writeLines(t, 2000, 90)

	got, err := Read(path, 700)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if !reflect.DeepEqual(got, all[1300:]) {
		t.Fatalf("Read(700) returned %d lines starting %q, want lines 1301..2000", len(got), got[0])
	}
}

func TestRead_NoTrailingNewline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "carview.log")
	if err := os.WriteFile(path, []byte("a\nb\nc"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := Read(path, 2)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if !reflect.DeepEqual(got, []string{"b", "c"}) {
		t.Fatalf("Read() = %v, want [b c]", got)
	}
}

func TestRead_MissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "nope.log"), 10)
	if err != nil || got != nil {
		t.Fatalf("Read(missing) = %v, %v; want nil, nil", got, err)
	}
}

func TestFollow_DeliversAppendedLines(t *testing.T) {
	path, _ := writeLines(t, 3, 0)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var got []string
	done := make(chan error, 1)
	go func() {
		done <- Follow(ctx, path, 10*time.Millisecond, func(line string) {
			mu.Lock()
			got = append(got, line)
			mu.Unlock()
		})
	}()

	time.Sleep(30 * time.Millisecond)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	_, _ = f.WriteString("new 1\nnew ")
	_ = f.Sync()
	time.Sleep(40 * time.Millisecond)
	_, _ = f.WriteString("2\n")
	_ = f.Close()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		mu.Lock()
		n := len(got)
		mu.Unlock()
		if n >= 2 {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Follow() error = %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if !reflect.DeepEqual(got, []string{"new 1", "new 2"}) {
		t.Fatalf("Follow delivered %q, want [new 1 new 2]", got)
	}
}

func TestFormat_ZapJSON(t *testing.T) {
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.Local)
	line := fmt.Sprintf(`{"level":"warn","ts":%d,"logger":"ui","msg":"list cars failed","error":"request timed out","count":3}`, ts.Unix())

	got := Formatter{}.Format(line)
	want := `2026-03-01 12:00:00 WARN  ui  list cars failed count=3 error="request timed out"`
	if got != want {
		t.Fatalf("Format() = %q, want %q", got, want)
	}
}

func TestFormat_PassesThroughPlainText(t *testing.T) {
	for _, line := range []string{"plain text", "{not json", ""} {
		if got := (Formatter{}).Format(line); got != line {
			t.Fatalf("Format(%q) = %q, want unchanged", line, got)
		}
	}
}

func TestFormat_ColorKeepsText(t *testing.T) {
	got := Formatter{Color: true}.Format(`{"level":"error","msg":"boom"}`)
	if !strings.Contains(got, "boom") || !strings.Contains(got, "ERROR") {
		t.Fatalf("Format(color) = %q, want level and message", got)
	}
}
