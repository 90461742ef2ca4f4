package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/five82/carview/internal/app"
	"github.com/five82/carview/internal/config"
)

const (
	ServeCmdName  = "serve"
	ServeCmdShort = "Serve the web front-end assets"
	ServeCmdLong  = `Serve the static front-end from the assets directory.

Known files are served as is. Any other GET returns index.html so the
single-page app can handle its own routes. The port defaults to 10000 and
can be set with --port or the PORT environment variable.`
)

func newServeCmd(v *viper.Viper, configPath *string) (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:   ServeCmdName,
		Short: ServeCmdShort,
		Long:  ServeCmdLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Serve(cmd.Context(), app.Options{ConfigPath: *configPath, Viper: v})
		},
	}
	cmd.Flags().String("assets-dir", "", "directory holding index.html and the app assets")
	cmd.Flags().String("port", "", "listen port")

	err := bindFlags(v, cmd.Flags().Lookup, map[string]string{
		config.KeyAssetsDir: "assets-dir",
		config.KeyPort:      "port",
	})
	if err != nil {
		return nil, err
	}
	return cmd, nil
}
