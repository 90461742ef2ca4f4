package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/five82/carview/internal/config"
	"github.com/five82/carview/internal/mockapi"
	"github.com/five82/carview/internal/server"
)

const stopTimeout = 10 * time.Second

// DefaultMockAddr matches the default api_base_url so the TUI finds the mock
// API without configuration.
const DefaultMockAddr = "127.0.0.1:3000"

// MockOptions configure the mock API server.
type MockOptions struct {
	Addr         string // empty uses DefaultMockAddr
	APIKey       string
	APIKeyHeader string
	Bare         bool
	Delay        time.Duration
	Seed         bool
	LogLevel     string
}

// Serve runs the static asset server until ctx is cancelled.
func Serve(ctx context.Context, opts Options) error {
	cfg, err := LoadConfig(opts.ConfigPath, opts.Viper)
	if err != nil {
		return err
	}
	logger, err := NewLogger("", cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	return runLifecycle(ctx, logger,
		fx.Supply(cfg),
		fx.Provide(newStaticServer),
		fx.Invoke(registerHTTPServer),
	)
}

// ServeMockAPI runs the in-memory cars API until ctx is cancelled.
func ServeMockAPI(ctx context.Context, opts MockOptions) error {
	level := opts.LogLevel
	if level == "" {
		level = "info"
	}
	logger, err := NewLogger("", level)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	store := mockapi.NewStore()
	if opts.Seed {
		store.Seed()
	}

	return runLifecycle(ctx, logger,
		fx.Supply(store, opts),
		fx.Provide(newMockServer),
		fx.Invoke(registerHTTPServer),
	)
}

// runLifecycle starts an fx app built from options, waits for ctx and stops
// it again.
func runLifecycle(ctx context.Context, logger *zap.Logger, options ...fx.Option) error {
	options = append(options,
		fx.Supply(logger),
		fx.WithLogger(func(l *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: l.Named("fx").WithOptions(zap.IncreaseLevel(zap.WarnLevel))}
		}),
	)
	app := fx.New(options...)
	if err := app.Err(); err != nil {
		return fmt.Errorf("build app: %w", err)
	}

	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("start: %w", err)
	}
	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		return fmt.Errorf("stop: %w", err)
	}
	return nil
}

func newStaticServer(cfg config.Config, logger *zap.Logger) (*http.Server, error) {
	return server.NewHTTPServer(server.Options{
		Addr:   cfg.Addr(),
		Dir:    cfg.AssetsDir,
		Logger: logger.Named("static"),
	})
}

func newMockServer(store *mockapi.Store, opts MockOptions, logger *zap.Logger) *http.Server {
	addr := opts.Addr
	if addr == "" {
		addr = DefaultMockAddr
	}
	engine := mockapi.NewEngine(store, mockapi.Options{
		APIKey:       opts.APIKey,
		APIKeyHeader: opts.APIKeyHeader,
		Bare:         opts.Bare,
		Delay:        opts.Delay,
		Logger:       logger.Named("mockapi"),
	})
	return &http.Server{
		Addr:              addr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// registerHTTPServer binds srv when the app starts, so a taken port fails
// the start, and shuts it down when the app stops.
func registerHTTPServer(lc fx.Lifecycle, srv *http.Server, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := (&net.ListenConfig{}).Listen(ctx, "tcp", srv.Addr)
			if err != nil {
				return fmt.Errorf("listen %s: %w", srv.Addr, err)
			}
			logger.Info("Server starting", zap.String("addr", ln.Addr().String()))
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("Server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Server shutting down")
			return srv.Shutdown(ctx)
		},
	})
}
