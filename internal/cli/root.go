package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/five82/carview/internal/app"
	"github.com/five82/carview/internal/config"
)

const (
	RootCmdName  = "carview"
	RootCmdShort = "Browse, add and delete cars from a cars API"
	RootCmdLong  = `carview is a terminal client for a cars catalog API.

Run without a subcommand to open the catalog. Use "carview serve" to host the
web assets and "carview mockapi" to run an in-memory API for local work.`
)

// Flag names. Flags that mirror config keys are bound to viper under the key.
const (
	flagConfig       = "config"
	flagPrefs        = "prefs"
	flagAPIURL       = "api-url"
	flagAPIKey       = "api-key"
	flagAPIKeyHeader = "api-key-header"
	flagTimeoutMS    = "timeout-ms"
	flagLogFile      = "log-file"
	flagLogLevel     = "log-level"
)

// Execute runs the command line with args and returns the first error.
func Execute(ctx context.Context, args []string) error {
	root, err := NewRootCmd()
	if err != nil {
		return err
	}
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// NewRootCmd builds the carview command tree with its own viper instance.
func NewRootCmd() (*cobra.Command, error) {
	v := viper.New()
	if err := config.BindEnv(v); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	var paths struct {
		config string
		prefs  string
	}

	root := &cobra.Command{
		Use:           RootCmdName,
		Short:         RootCmdShort,
		Long:          RootCmdLong,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(cmd.Context(), app.Options{
				ConfigPath: paths.config,
				PrefsPath:  paths.prefs,
				Viper:      v,
			})
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&paths.config, flagConfig, "", "config file (default ~/.config/carview/config.toml)")
	pf.StringVar(&paths.prefs, flagPrefs, "", "preferences file (default ~/.config/carview/prefs.toml)")
	pf.String(flagAPIURL, "", "cars API base URL")
	pf.String(flagAPIKey, "", "API key sent with every request")
	pf.String(flagAPIKeyHeader, "", "header carrying the API key")
	pf.Int64(flagTimeoutMS, 0, "request timeout in milliseconds")
	pf.String(flagLogFile, "", "log file path")
	pf.String(flagLogLevel, "", "log level (debug, info, warn, error)")

	if err := bindFlags(v, pf.Lookup, map[string]string{
		config.KeyAPIBaseURL:   flagAPIURL,
		config.KeyAPIKey:       flagAPIKey,
		config.KeyAPIKeyHeader: flagAPIKeyHeader,
		config.KeyTimeoutMS:    flagTimeoutMS,
		config.KeyLogFile:      flagLogFile,
		config.KeyLogLevel:     flagLogLevel,
	}); err != nil {
		return nil, err
	}

	serve, err := newServeCmd(v, &paths.config)
	if err != nil {
		return nil, err
	}
	root.AddCommand(serve, newMockAPICmd(v), newLogsCmd(v, &paths.config))
	return root, nil
}
