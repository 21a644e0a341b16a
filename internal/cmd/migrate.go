package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"gudang/internal/database"
	"gudang/internal/logging"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and exit",
		Args:  cobra.NoArgs,
		RunE:  migrateCommand,
	}
}

func migrateCommand(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := logging.New(cfg.LogFormat, cfg.LogLevel)

	db, err := database.Open(cfg.DBDriver, cfg.DatabaseDSN, cfg.DBDebug, log)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		return err
	}
	log.InfoContext(cmd.Context(), "database schema is up to date",
		slog.String("db_driver", cfg.DBDriver))
	return nil
}
