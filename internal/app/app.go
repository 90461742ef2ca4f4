package app

import (
	"context"
	"fmt"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/five82/carview/internal/carapi"
	"github.com/five82/carview/internal/config"
	"github.com/five82/carview/internal/prefs"
	"github.com/five82/carview/internal/ui"
)

// Options configure the carview application.
type Options struct {
	ConfigPath string       // empty uses ~/.config/carview/config.toml
	PrefsPath  string       // empty uses ~/.config/carview/prefs.toml
	Viper      *viper.Viper // flags and environment bound by the CLI; may be nil
}

// LoadConfig reads the config file and applies the overrides held by v.
func LoadConfig(path string, v *viper.Viper) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	cfg, err = cfg.Overlay(v)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// NewClient builds the cars API client described by cfg.
func NewClient(cfg config.Config, logger *zap.Logger) (*carapi.Client, error) {
	client, err := carapi.NewClient(carapi.Options{
		BaseURL:      cfg.APIBaseURL,
		APIKey:       cfg.APIKey,
		APIKeyHeader: cfg.APIKeyHeader,
		Timeout:      cfg.Timeout,
		Logger:       logger,
	})
	if err != nil {
		return nil, fmt.Errorf("init cars client: %w", err)
	}
	return client, nil
}

// Run boots the carview TUI until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := LoadConfig(opts.ConfigPath, opts.Viper)
	if err != nil {
		return err
	}

	logger, err := NewLogger(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	client, err := NewClient(cfg, logger.Named("carapi"))
	if err != nil {
		return err
	}

	userPrefs, _ := prefs.Load(opts.PrefsPath)

	logger.Info("starting carview",
		zap.String("api", client.BaseURL()),
		zap.Duration("timeout", cfg.Timeout),
		zap.Bool("api_key", cfg.APIKey != ""),
	)

	err = ui.Run(ui.Options{
		Context:   ctx,
		Cars:      client,
		Logger:    logger.Named("ui"),
		APILabel:  client.BaseURL(),
		ThemeName: userPrefs.Theme,
		PrefsPath: opts.PrefsPath,
	})
	if err != nil {
		logger.Error("ui exited with error", zap.Error(err))
		return fmt.Errorf("run ui: %w", err)
	}
	logger.Info("carview stopped")
	return nil
}
