package app

import (
	"context"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"

	"github.com/five82/carview/internal/config"
)

func TestLoadConfig_FlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "api_base_url = \"http://file:3000\"\ntimeout_ms = 5000\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	v := viper.New()
	v.Set(config.KeyAPIBaseURL, "http://flag:4000")

	cfg, err := LoadConfig(path, v)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.APIBaseURL != "http://flag:4000" {
		t.Fatalf("APIBaseURL = %q, want flag value", cfg.APIBaseURL)
	}
	if cfg.Timeout != 5*time.Second {
		t.Fatalf("Timeout = %v, want file value 5s", cfg.Timeout)
	}
}

func TestLoadConfig_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("log_level = \"loud\"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := LoadConfig(path, nil)
	if err == nil || !strings.HasPrefix(err.Error(), "load config:") {
		t.Fatalf("LoadConfig() error = %v, want load config error", err)
	}
}

func TestNewClient_UsesConfig(t *testing.T) {
	cfg := config.Default()
	cfg.APIBaseURL = "http://cars.test:8080/"
	client, err := NewClient(cfg, nil)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	if client.BaseURL() != "http://cars.test:8080" {
		t.Fatalf("BaseURL() = %q", client.BaseURL())
	}
}

func TestNewLogger_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "carview.log")
	logger, err := NewLogger(path, "info")
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}
	logger.Debug("hidden")
	logger.Info("car created")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, `"msg":"car created"`) {
		t.Fatalf("log file = %q, want JSON entry", out)
	}
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug entry written at info level: %q", out)
	}
}

func TestNewLogger_RejectsUnknownLevel(t *testing.T) {
	if _, err := NewLogger("", "chatty"); err == nil {
		t.Fatal("NewLogger() expected error for unknown level")
	}
}

func freeAddr(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	addr := ln.Addr().String()
	_ = ln.Close()
	return addr
}

func TestServeMockAPI_StartsAndStops(t *testing.T) {
	addr := freeAddr(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- ServeMockAPI(ctx, MockOptions{Addr: addr, Seed: true, LogLevel: "error"})
	}()

	deadline := time.Now().Add(3 * time.Second)
	for {
		resp, err := http.Get("http://" + addr + "/health")
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("GET /health status = %d", resp.StatusCode)
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("mock API never came up: %v", err)
		}
		time.Sleep(20 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("ServeMockAPI() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("ServeMockAPI did not stop after cancel")
	}
}

func TestServeMockAPI_BadAddr(t *testing.T) {
	err := ServeMockAPI(context.Background(), MockOptions{Addr: "127.0.0.1:notaport", LogLevel: "error"})
	if err == nil || !strings.HasPrefix(err.Error(), "start:") {
		t.Fatalf("ServeMockAPI() error = %v, want start error", err)
	}
}

func TestServe_RequiresIndex(t *testing.T) {
	v := viper.New()
	v.Set(config.KeyAssetsDir, t.TempDir())
	v.Set(config.KeyLogLevel, "error")

	err := Serve(context.Background(), Options{ConfigPath: filepath.Join(t.TempDir(), "none.toml"), Viper: v})
	if err == nil || !strings.Contains(err.Error(), "index.html") {
		t.Fatalf("Serve() error = %v, want missing index error", err)
	}
}
