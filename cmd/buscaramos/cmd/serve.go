package cmd

import (
	"github.com/spf13/cobra"

	"github.com/osuc/buscaramos/api"
	"github.com/osuc/buscaramos/db"
	"github.com/osuc/buscaramos/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Inicia la API HTTP",
	Long: `Inicia la API HTTP de requisitos.

Rutas:
  GET  /healthz
  GET  /api/v1/courses/:sigle/requisites
  GET  /api/v1/courses/:sigle/unlocks
  POST /api/v1/requisites/parse`,
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := db.Open(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		resolver, err := newResolver(database)
		if err != nil {
			return err
		}

		handler := api.NewHandler(service.New(database, resolver), database.Pool.Ping)
		return api.NewServer(cfg, handler).Run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
