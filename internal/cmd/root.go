package cmd

import (
	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gudang/internal/config"
)

const configFlag = "config"

var rootFlags = map[string]cobraflags.Flag{
	configFlag: &cobraflags.StringFlag{
		Name:  configFlag,
		Value: "",
		Usage: "Path to a config file (yaml, json, toml or .env); environment variables override it",
	},
}

// NewRootCommand builds the gudang command tree. Running it without a
// subcommand starts the API server.
func NewRootCommand() *cobra.Command {
	serveCmd := newServeCommand()

	rootCmd := &cobra.Command{
		Use:   "gudang",
		Short: "Inventory catalog API",
		Long: `gudang serves the inventory catalog API: categories, products, prices
and guarded stock reduction.

Examples:
  gudang                           # same as "gudang serve"
  gudang serve --config gudang.yaml
  gudang migrate                   # create or update the database schema`,
		SilenceUsage: true,
		RunE:         serveCmd.RunE,
	}
	migrateCmd := newMigrateCommand()

	// Same flag set on every command so --config works before or after the
	// subcommand name.
	cobraflags.RegisterMap(rootCmd, rootFlags)
	cobraflags.RegisterMap(serveCmd, rootFlags)
	cobraflags.RegisterMap(migrateCmd, rootFlags)

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}

func loadConfig() (config.Config, error) {
	return config.Load(viper.New(), rootFlags[configFlag].GetString())
}
