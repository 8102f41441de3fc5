package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/osuc/buscaramos/render"
	"github.com/osuc/buscaramos/requisites"
	"github.com/osuc/buscaramos/service"
)

var (
	parseKind     string
	parseAnnotate bool
	parseJSON     bool
	parsePlain    bool
)

var parseCmd = &cobra.Command{
	Use:   "parse <expresión>",
	Short: "Interpreta una expresión de requisitos",
	Long: `Interpreta una expresión de requisitos y muestra el árbol resultante.

Ejemplos:
  buscaramos parse "(MAT1610 o MAT1620) y FIS1513"
  buscaramos parse --kind restrictions "(Nivel = Pregrado) o (Creditos >= 100)"
  buscaramos parse --annotate --json "IIC1103 o IIC1222(c)"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var resolver requisites.Resolver
		if parseAnnotate {
			r, err := newResolver(nil)
			if err != nil {
				return err
			}
			resolver = r
		}

		kind := service.Kind(parseKind)
		result, err := service.New(nil, resolver).Parse(cmd.Context(), kind, strings.Join(args, " "), parseAnnotate)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if parseJSON {
			encoder := json.NewEncoder(out)
			encoder.SetIndent("", "  ")
			if result.Courses != nil {
				return encoder.Encode(result.Courses)
			}
			return encoder.Encode(result.Rules)
		}

		if !result.Present {
			_, err := fmt.Fprintln(out, "No tiene")
			return err
		}

		theme := render.DefaultTheme()
		if parsePlain {
			theme = render.PlainTheme()
		}

		var block render.Block
		switch {
		case kind == service.KindEquivalences:
			block = render.BuildList(requisites.Flatten(*result.Courses))
		case result.Courses != nil:
			block = render.Build(*result.Courses)
		default:
			block = render.BuildRestrictions(*result.Rules)
		}
		return render.Text(out, block, theme)
	},
}

func init() {
	parseCmd.Flags().StringVarP(&parseKind, "kind", "k", string(service.KindPrerequisites), "prerequisites, restrictions o equivalences")
	parseCmd.Flags().BoolVarP(&parseAnnotate, "annotate", "a", false, "Resuelve los nombres de los cursos")
	parseCmd.Flags().BoolVar(&parseJSON, "json", false, "Escribe el árbol como JSON")
	parseCmd.Flags().BoolVar(&parsePlain, "plain", false, "Sin colores")
	rootCmd.AddCommand(parseCmd)
}
