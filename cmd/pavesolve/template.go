package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"Pavex/internal/calc/importer"
)

var templateOut string

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Write a material sheet (.xlsx) to fill in and import",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadMaterials(catalogPath)
		if err != nil {
			return err
		}
		f, err := os.Create(templateOut)
		if err != nil {
			return err
		}
		if err := importer.Write(f, cat.Materials); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %d materials to %s\n", len(cat.Materials), templateOut)
		return nil
	},
}

func init() {
	templateCmd.Flags().StringVarP(&templateOut, "out", "o", "materials.xlsx", "output file")
	templateCmd.Flags().StringVar(&catalogPath, "catalog", "", "catalog file to start from; empty uses the built-in catalog")
}
