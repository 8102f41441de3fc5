package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/osuc/buscaramos/catalog"
	"github.com/osuc/buscaramos/db"
	"github.com/osuc/buscaramos/logger"
)

var (
	scrapeSemester       string
	scrapePrefixes       []string
	scrapeSkipRequisites bool
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Descarga cursos y requisitos del catálogo",
	Long: `Descarga los cursos dictados en un semestre y sus requisitos, y los
guarda en la base de datos.

Ejemplos:
  buscaramos scrape --semester 2024-2 --prefix IIC,MAT
  buscaramos scrape --skip-requisites`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		semester := scrapeSemester
		if semester == "" {
			semester = cfg.Catalog.Semester
		}
		prefixes := scrapePrefixes
		if len(prefixes) == 0 {
			prefixes = cfg.Catalog.Prefixes
		}
		if len(prefixes) == 0 {
			return errors.New("no course prefixes to scrape")
		}

		database, err := db.Open(ctx, cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		client := &catalog.Client{BaseURL: cfg.Catalog.BaseURL, SearchURL: cfg.Catalog.SearchURL}

		semesters, err := client.ScrapeSemesters(ctx)
		if err != nil {
			return err
		}
		if err := database.InsertSemesters(ctx, semesters); err != nil {
			return err
		}
		if semester == "" {
			semester = semesters[0].Code
		}

		log := logger.With("semester", semester)

		courses := client.ScrapeAllCourses(ctx, semester, prefixes)
		if err := database.UpsertCourses(ctx, courses); err != nil {
			return err
		}
		log.Info().Int("courses", len(courses)).Msg("Scraped courses")

		if scrapeSkipRequisites {
			return nil
		}

		sigles := make([]string, 0, len(courses))
		for _, course := range courses {
			sigles = append(sigles, course.Sigle)
		}
		all := client.ScrapeAllRequisites(ctx, sigles)
		if err := database.UpsertRequisites(ctx, all); err != nil {
			return err
		}
		log.Info().Int("courses", len(all)).Int("failed", len(sigles)-len(all)).Msg("Scraped requisites")
		return nil
	},
}

func init() {
	scrapeCmd.Flags().StringVar(&scrapeSemester, "semester", "", "Semestre, por ejemplo 2024-2 (default: el más reciente)")
	scrapeCmd.Flags().StringSliceVar(&scrapePrefixes, "prefix", nil, "Prefijos de sigla a descargar")
	scrapeCmd.Flags().BoolVar(&scrapeSkipRequisites, "skip-requisites", false, "Descarga solo los cursos")
	rootCmd.AddCommand(scrapeCmd)
}
