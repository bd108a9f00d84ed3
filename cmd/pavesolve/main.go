package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"Pavex/internal/calc/importer"
	"Pavex/internal/calc/pavement"
	"Pavex/internal/catalog"
	"Pavex/internal/config"
)

var (
	configPath  string
	catalogPath string
	cfg         config.Config
)

var rootCmd = &cobra.Command{
	Use:   "pavesolve",
	Short: "Find the cheapest buildable pavement sections",
	Long: `pavesolve searches random course combinations for the cheapest pavement
sections that reach a required structural number, and manages the material
catalogs the search draws from.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c
		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file")

	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(materialsCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(templateCmd)
}

// loadMaterials reads a catalog file by extension, or returns the built-in
// catalog when path is empty.
func loadMaterials(path string) (catalog.Catalog, error) {
	if path == "" {
		return catalog.Default(), nil
	}
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		sheet, err := importer.ReadFile(path)
		if err != nil {
			return catalog.Catalog{}, err
		}
		for _, s := range sheet.Skipped {
			fmt.Fprintf(os.Stderr, "%s row %d skipped: %s\n", path, s.Row, s.Reason)
		}
		c := catalog.Catalog{Name: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)), Materials: sheet.Materials}
		return c, c.Validate()
	}
	return catalog.Load(path)
}

func solverDefaults() pavement.Options {
	return pavement.Options{
		Earthwork: pavement.Earthwork{
			EmbankmentCost: cfg.Earthwork.EmbankmentCost,
			ExcavationCost: cfg.Earthwork.ExcavationCost,
		},
		Population: cfg.Solver.Population,
		Limit:      cfg.Solver.Top,
		Tuning:     pavement.Tuning{MaxPasses: cfg.Solver.MaxPasses, Epsilon: cfg.Solver.Epsilon},
	}
}
