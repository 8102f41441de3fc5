package cmd

import (
	"github.com/spf13/cobra"

	"github.com/osuc/buscaramos/db"
	"github.com/osuc/buscaramos/logger"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Crea las tablas que falten",
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := db.Open(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		if err := database.Migrate(cmd.Context()); err != nil {
			return err
		}
		logger.Info().Msg("Database schema is up to date")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
