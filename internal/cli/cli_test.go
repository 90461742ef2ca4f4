package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	root, err := NewRootCmd()
	if err != nil {
		t.Fatalf("NewRootCmd() error = %v", err)
	}
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err = root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeLog(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "carview.log")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func noConfig(t *testing.T) string {
	return filepath.Join(t.TempDir(), "config.toml")
}

func TestSubcommands(t *testing.T) {
	root, err := NewRootCmd()
	if err != nil {
		t.Fatalf("NewRootCmd() error = %v", err)
	}
	for _, name := range []string{ServeCmdName, MockAPICmdName, LogsCmdName} {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Fatalf("Find(%q) = %v, %v", name, cmd, err)
		}
	}
}

func TestLogs_Raw(t *testing.T) {
	path := writeLog(t, "one", "two", "three")
	out, _, err := execute(t, "logs", "--config", noConfig(t), "--log-file", path, "-n", "2", "--raw")
	if err != nil {
		t.Fatalf("logs error = %v", err)
	}
	if out != "two\nthree\n" {
		t.Fatalf("logs output = %q, want last two lines", out)
	}
}

func TestLogs_FormatsJSON(t *testing.T) {
	ts := time.Date(2026, 3, 1, 9, 30, 0, 0, time.Local).Unix()
	path := writeLog(t, fmt.Sprintf(`{"level":"info","ts":%d,"logger":"carapi","msg":"car created","id":"c1"}`, ts))

	out, _, err := execute(t, "logs", "--config", noConfig(t), "--log-file", path)
	if err != nil {
		t.Fatalf("logs error = %v", err)
	}
	want := "2026-03-01 09:30:00 INFO  carapi  car created id=c1\n"
	if out != want {
		t.Fatalf("logs output = %q, want %q", out, want)
	}
}

func TestLogs_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.log")
	out, errOut, err := execute(t, "logs", "--config", noConfig(t), "--log-file", path)
	if err != nil {
		t.Fatalf("logs error = %v", err)
	}
	if out != "" || !strings.Contains(errOut, "no log entries") {
		t.Fatalf("stdout = %q, stderr = %q", out, errOut)
	}
}

func TestLogs_EnvSelectsFile(t *testing.T) {
	path := writeLog(t, "from env")
	t.Setenv("CARVIEW_LOG_FILE", path)

	out, _, err := execute(t, "logs", "--config", noConfig(t), "--raw")
	if err != nil {
		t.Fatalf("logs error = %v", err)
	}
	if out != "from env\n" {
		t.Fatalf("logs output = %q", out)
	}
}

func TestLogs_InvalidLevelFails(t *testing.T) {
	_, _, err := execute(t, "logs", "--config", noConfig(t), "--log-level", "loud")
	if err == nil {
		t.Fatal("expected error for unknown log level")
	}
}

func TestServe_MissingIndex(t *testing.T) {
	_, _, err := execute(t, "serve", "--config", noConfig(t), "--assets-dir", t.TempDir(), "--log-level", "error")
	if err == nil || !strings.Contains(err.Error(), "index.html") {
		t.Fatalf("serve error = %v, want missing index.html", err)
	}
}

func TestRejectsExtraArgs(t *testing.T) {
	if _, _, err := execute(t, "logs", "extra"); err == nil {
		t.Fatal("expected error for unexpected argument")
	}
}
