package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func writeAssets(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"index.html":      "<html>catalog</html>",
		"js/script.js":    "console.log('cars')",
		"css/style.css":   "body{}",
		"docs/index.html": "<html>docs</html>",
	}
	for name, body := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func get(t *testing.T, ts *httptest.Server, method, path string) (int, string) {
	t.Helper()
	req, err := http.NewRequest(method, ts.URL+path, nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, string(body)
}

func TestHandler_ServesAssetsAndFallsBack(t *testing.T) {
	h, err := NewHandler(writeAssets(t), nil)
	if err != nil {
		t.Fatalf("NewHandler: %v", err)
	}
	ts := httptest.NewServer(h)
	defer ts.Close()

	tests := []struct {
		name string
		path string
		want string
	}{
		{"root", "/", "<html>catalog</html>"},
		{"script", "/js/script.js", "console.log('cars')"},
		{"stylesheet", "/css/style.css", "body{}"},
		{"spa route", "/cars/42", "<html>catalog</html>"},
		{"missing asset", "/js/missing.js", "<html>catalog</html>"},
		{"directory index", "/docs/", "<html>docs</html>"},
		{"directory without index", "/js", "<html>catalog</html>"},
		{"traversal stays inside", "/../../etc/passwd", "<html>catalog</html>"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, body := get(t, ts, http.MethodGet, tc.path)
			if status != http.StatusOK {
				t.Fatalf("GET %s status = %d, want 200", tc.path, status)
			}
			if body != tc.want {
				t.Fatalf("GET %s body = %q, want %q", tc.path, body, tc.want)
			}
		})
	}
}

func TestHandler_Health(t *testing.T) {
	h, err := NewHandler(writeAssets(t), nil)
	if err != nil {
		t.Fatalf("NewHandler: %v", err)
	}
	ts := httptest.NewServer(h)
	defer ts.Close()

	status, body := get(t, ts, http.MethodGet, "/healthz")
	if status != http.StatusOK || !strings.Contains(body, `"ok"`) {
		t.Fatalf("GET /healthz = %d %q, want 200 with ok", status, body)
	}
}

func TestHandler_RejectsWrites(t *testing.T) {
	h, err := NewHandler(writeAssets(t), nil)
	if err != nil {
		t.Fatalf("NewHandler: %v", err)
	}
	ts := httptest.NewServer(h)
	defer ts.Close()

	status, _ := get(t, ts, http.MethodPost, "/cars")
	if status != http.StatusMethodNotAllowed {
		t.Fatalf("POST /cars status = %d, want 405", status)
	}
}

func TestHandler_LogsRequests(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	h, err := NewHandler(writeAssets(t), zap.New(core))
	if err != nil {
		t.Fatalf("NewHandler: %v", err)
	}
	ts := httptest.NewServer(h)
	defer ts.Close()

	get(t, ts, http.MethodGet, "/js/script.js")

	entries := logs.FilterMessage("request").All()
	if len(entries) != 1 {
		t.Fatalf("logged %d request entries, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["path"] != "/js/script.js" {
		t.Fatalf("logged path = %v, want /js/script.js", fields["path"])
	}
	if fields["status"] != int64(http.StatusOK) {
		t.Fatalf("logged status = %v, want 200", fields["status"])
	}
}

func TestNewHandler_RequiresIndex(t *testing.T) {
	if _, err := NewHandler(t.TempDir(), nil); err == nil {
		t.Fatal("NewHandler(empty dir) error = nil, want missing index.html")
	}
}

func TestNewHTTPServer_DefaultAddr(t *testing.T) {
	srv, err := NewHTTPServer(Options{Dir: writeAssets(t)})
	if err != nil {
		t.Fatalf("NewHTTPServer: %v", err)
	}
	if srv.Addr != ":"+DefaultPort {
		t.Fatalf("Addr = %q, want %q", srv.Addr, ":"+DefaultPort)
	}
}
