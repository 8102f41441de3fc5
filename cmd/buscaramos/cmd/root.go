package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/osuc/buscaramos/config"
	"github.com/osuc/buscaramos/db"
	"github.com/osuc/buscaramos/logger"
	"github.com/osuc/buscaramos/requisites"
	"github.com/osuc/buscaramos/staticdata"
)

var (
	cfgFile string
	verbose bool
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "buscaramos",
	Short: "Requisitos de cursos UC",
	Long: `buscaramos lee los requisitos de los cursos de la UC, los convierte en
árboles de grupos Y/O y los sirve por HTTP.

Comandos:
  serve    - API HTTP
  scrape   - Descarga cursos y requisitos del catálogo
  migrate  - Crea las tablas de la base de datos
  parse    - Interpreta una expresión de requisitos`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		cfg = loaded

		level := logger.Level(cfg.Logging.Level)
		if verbose {
			level = logger.DebugLevel
		}
		logger.Configure(logger.Config{Level: level, Pretty: cfg.Logging.Pretty})
		return nil
	},
}

func Execute() error {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		printError("buscaramos", err)
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "Archivo de configuración")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Registro detallado")
}

func printError(msg string, err error) {
	fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
}

// newResolver builds the cached name resolver for the configured source.
// database may be nil when the source is the static data service.
func newResolver(database *db.Database) (requisites.Resolver, error) {
	var next requisites.Resolver
	switch cfg.Resolver.Source {
	case config.SourceDatabase:
		if database == nil {
			return nil, fmt.Errorf("name source %q needs a database", cfg.Resolver.Source)
		}
		next = database
	default:
		next = staticdata.NewClient(cfg.StaticData.BaseURL, cfg.StaticDataTimeout(), cfg.StaticData.Retries)
	}
	return requisites.NewCachedResolver(next, cfg.Resolver.CacheSize, cfg.CacheTTL()), nil
}
