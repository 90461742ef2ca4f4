package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// Config holds everything carview reads from its config file, flags and
// environment.
type Config struct {
	APIBaseURL   string
	APIKey       string
	APIKeyHeader string
	Timeout      time.Duration
	AssetsDir    string
	Port         string
	LogFile      string
	LogLevel     string
}

// Keys shared by the TOML file, viper and the command-line flags.
const (
	KeyAPIBaseURL   = "api_base_url"
	KeyAPIKey       = "api_key"
	KeyAPIKeyHeader = "api_key_header"
	KeyTimeoutMS    = "timeout_ms"
	KeyAssetsDir    = "assets_dir"
	KeyPort         = "port"
	KeyLogFile      = "log_file"
	KeyLogLevel     = "log_level"
)

const (
	defaultConfigPath   = "~/.config/carview/config.toml"
	defaultAPIBaseURL   = "http://127.0.0.1:3000"
	defaultAPIKeyHeader = "x-api-key"
	defaultTimeout      = 30 * time.Second
	defaultAssetsDir    = "front"
	defaultPort         = "10000"
	defaultLogFile      = "~/.local/state/carview/carview.log"
	defaultLogLevel     = "info"
)

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		APIBaseURL:   defaultAPIBaseURL,
		APIKeyHeader: defaultAPIKeyHeader,
		Timeout:      defaultTimeout,
		AssetsDir:    defaultAssetsDir,
		Port:         defaultPort,
		LogFile:      mustExpand(defaultLogFile),
		LogLevel:     defaultLogLevel,
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return defaultConfigPath
}

type fileConfig struct {
	APIBaseURL   string `toml:"api_base_url"`
	APIKey       string `toml:"api_key"`
	APIKeyHeader string `toml:"api_key_header"`
	TimeoutMS    int64  `toml:"timeout_ms"`
	AssetsDir    string `toml:"assets_dir"`
	Port         string `toml:"port"`
	LogFile      string `toml:"log_file"`
	LogLevel     string `toml:"log_level"`
}

// Load reads the config file at path, or the default location when path is
// empty. A missing file yields the defaults.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw fileConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.APIBaseURL = orDefault(raw.APIBaseURL, cfg.APIBaseURL)
	cfg.APIKey = strings.TrimSpace(raw.APIKey)
	cfg.APIKeyHeader = orDefault(raw.APIKeyHeader, cfg.APIKeyHeader)
	if raw.TimeoutMS > 0 {
		cfg.Timeout = time.Duration(raw.TimeoutMS) * time.Millisecond
	}
	cfg.AssetsDir = orDefault(raw.AssetsDir, cfg.AssetsDir)
	cfg.Port = orDefault(raw.Port, cfg.Port)
	cfg.LogFile = mustExpand(orDefault(raw.LogFile, defaultLogFile))
	cfg.LogLevel = orDefault(raw.LogLevel, cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Overlay returns a copy of c with every key that v has set replacing the
// file value. v is expected to carry bound flags and environment variables.
func (c Config) Overlay(v *viper.Viper) (Config, error) {
	if v == nil {
		return c, nil
	}
	str := func(key, current string) string {
		if !v.IsSet(key) {
			return current
		}
		return orDefault(v.GetString(key), current)
	}

	c.APIBaseURL = str(KeyAPIBaseURL, c.APIBaseURL)
	if v.IsSet(KeyAPIKey) {
		c.APIKey = strings.TrimSpace(v.GetString(KeyAPIKey))
	}
	c.APIKeyHeader = str(KeyAPIKeyHeader, c.APIKeyHeader)
	if v.IsSet(KeyTimeoutMS) {
		if ms := v.GetInt64(KeyTimeoutMS); ms > 0 {
			c.Timeout = time.Duration(ms) * time.Millisecond
		}
	}
	c.AssetsDir = str(KeyAssetsDir, c.AssetsDir)
	c.Port = str(KeyPort, c.Port)
	if v.IsSet(KeyLogFile) {
		c.LogFile = mustExpand(orDefault(v.GetString(KeyLogFile), c.LogFile))
	}
	c.LogLevel = str(KeyLogLevel, c.LogLevel)

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// envNames maps each key to the environment variable that overrides it.
var envNames = []struct{ key, env string }{
	{KeyAPIBaseURL, "CARVIEW_API_URL"},
	{KeyAPIKey, "CARVIEW_API_KEY"},
	{KeyAPIKeyHeader, "CARVIEW_API_KEY_HEADER"},
	{KeyTimeoutMS, "CARVIEW_TIMEOUT_MS"},
	{KeyAssetsDir, "CARVIEW_ASSETS_DIR"},
	{KeyPort, "PORT"},
	{KeyLogFile, "CARVIEW_LOG_FILE"},
	{KeyLogLevel, "CARVIEW_LOG_LEVEL"},
}

// BindEnv binds the environment variables carview honours to v.
func BindEnv(v *viper.Viper) error {
	for _, e := range envNames {
		if err := v.BindEnv(e.key, e.env); err != nil {
			return fmt.Errorf("bind %s: %w", e.env, err)
		}
	}
	return nil
}

// Validate reports settings that cannot work.
func (c Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("%s must be positive", KeyTimeoutMS)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%s: %w", KeyLogLevel, err)
	}
	if strings.ContainsAny(c.Port, ": ") {
		return fmt.Errorf("%s must be a bare port number, got %q", KeyPort, c.Port)
	}
	return nil
}

// Addr returns the listen address for Port.
func (c Config) Addr() string {
	return ":" + c.Port
}

func orDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
