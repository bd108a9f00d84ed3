package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"Pavex/internal/calc/recommend"
)

var materialsCmd = &cobra.Command{
	Use:   "materials",
	Short: "Rank catalog materials by cost per unit of structural number",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadMaterials(catalogPath)
		if err != nil {
			return err
		}
		res, err := recommend.Materials(recommend.MaterialRecommendInput{Materials: cat.Materials})
		if err != nil {
			return err
		}
		printRanking(cmd.OutOrStdout(), res)
		return nil
	},
}

func init() {
	materialsCmd.Flags().StringVar(&catalogPath, "catalog", "", "catalog file (.yaml, .json or .xlsx)")
}

func printRanking(w io.Writer, res recommend.MaterialRecommendResult) {
	color.New(color.Bold).Fprintf(w, "%-4s %-40s %-9s %10s %10s\n", "#", "Material", "Role", "$/SY-in", "$/SN")
	for _, m := range res.Materials {
		line := fmt.Sprintf("%-4d %-40s %-9s %10.2f %10.2f", m.Rank, m.Name, m.Role, m.CostPerInch, m.CostPerSN)
		switch {
		case !m.Priced:
			color.New(color.FgYellow).Fprintln(w, line+"  (unpriced)")
		case res.Best[m.Role] == m.Name:
			color.New(color.FgGreen).Fprintln(w, line)
		default:
			fmt.Fprintln(w, line)
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, res.Notes)
}
