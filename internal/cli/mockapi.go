package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/five82/carview/internal/app"
	"github.com/five82/carview/internal/config"
)

const (
	MockAPICmdName  = "mockapi"
	MockAPICmdShort = "Run an in-memory cars API for local development"
	MockAPICmdLong  = `Run an in-memory cars API on --addr.

The API serves GET, POST and DELETE under /api/cars and answers with the
{success, data, message} envelope, or with bare JSON when --bare is set.
When an API key is configured, requests must carry it in the API key header.
Data lives only as long as the process.`
)

func newMockAPICmd(v *viper.Viper) *cobra.Command {
	var opts app.MockOptions

	cmd := &cobra.Command{
		Use:   MockAPICmdName,
		Short: MockAPICmdShort,
		Long:  MockAPICmdLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.APIKey = v.GetString(config.KeyAPIKey)
			opts.APIKeyHeader = v.GetString(config.KeyAPIKeyHeader)
			opts.LogLevel = v.GetString(config.KeyLogLevel)
			return app.ServeMockAPI(cmd.Context(), opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.Addr, "addr", app.DefaultMockAddr, "listen address")
	f.BoolVar(&opts.Bare, "bare", false, "answer with bare JSON instead of the envelope")
	f.DurationVar(&opts.Delay, "delay", 0, "delay every /api response, e.g. 800ms")
	f.BoolVar(&opts.Seed, "seed", true, "start with sample cars")
	return cmd
}
