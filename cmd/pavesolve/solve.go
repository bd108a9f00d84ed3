package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"Pavex/internal/calc/pavement"
	"Pavex/internal/catalog"
	"Pavex/internal/logger"
)

var solveFlags struct {
	target     float64
	grade      float64
	embankment float64
	excavation float64
	seed       int64
	top        int
	population int
}

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Rank the cheapest sections reaching a structural number",
	Long: `Sample candidate sections from a material catalog, size each course
toward the target structural number, and print the buildable designs
cheapest first.

The catalog is the built-in one unless --catalog names a YAML, JSON or
.xlsx file.`,
	Args: cobra.NoArgs,
	RunE: runSolve,
}

func init() {
	f := solveCmd.Flags()
	f.Float64Var(&solveFlags.target, "target", catalog.DefaultTargetSN, "required structural number")
	f.StringVar(&catalogPath, "catalog", "", "catalog file (.yaml, .json or .xlsx)")
	f.Float64Var(&solveFlags.grade, "grade", 0, "design grade above the construction surface, inches")
	f.Float64Var(&solveFlags.embankment, "embankment", 0, "embankment cost $/cyd (0 uses config)")
	f.Float64Var(&solveFlags.excavation, "excavation", 0, "excavation cost $/cyd (0 uses config)")
	f.Int64Var(&solveFlags.seed, "seed", 0, "random seed; 0 draws one from the clock")
	f.IntVar(&solveFlags.top, "top", 10, "designs to print; 0 prints all")
	f.IntVar(&solveFlags.population, "population", 0, "candidates to sample (0 uses config)")
}

func runSolve(cmd *cobra.Command, args []string) error {
	log := logger.NewText(os.Stderr, cfg.App.Env)
	cat, err := loadMaterials(catalogPath)
	if err != nil {
		return err
	}

	opts := solverDefaults()
	opts.DesignGrade = solveFlags.grade
	if solveFlags.embankment != 0 {
		opts.EmbankmentCost = solveFlags.embankment
	}
	if solveFlags.excavation != 0 {
		opts.ExcavationCost = solveFlags.excavation
	}
	if solveFlags.population != 0 {
		opts.Population = solveFlags.population
	}
	opts.Limit = solveFlags.top
	opts.Seed = solveFlags.seed

	start := time.Now()
	res, err := pavement.Solve(cat.Materials, solveFlags.target, opts)
	if err != nil {
		return err
	}
	log.Debug("search done", "catalog", cat.Name, "elapsed", time.Since(start), "sampled", res.Stats.Sampled,
		"unique", res.Stats.Unique, "feasible", res.Stats.Feasible, "survivors", res.Stats.Survivors)

	printDesigns(cmd.OutOrStdout(), solveFlags.target, res)
	return nil
}

func printDesigns(w io.Writer, target float64, res pavement.Result) {
	bold := color.New(color.Bold)
	bold.Fprintf(w, "Target SN %.2f: %d buildable designs from %d candidates\n\n",
		target, res.Stats.Survivors, res.Stats.Sampled)
	if len(res.Designs) == 0 {
		color.New(color.FgYellow).Fprintln(w, "No buildable section found. Try a larger population or a richer catalog.")
		return
	}
	for i, d := range res.Designs {
		mark := color.GreenString("✓")
		if !d.Converged {
			mark = color.YellowString("~")
		}
		fmt.Fprintf(w, "%s #%d  SN %.2f  $%.2f/SY\n", mark, i+1, d.StructuralNumber, d.Cost)
		for _, c := range d.Section.Courses() {
			fmt.Fprintf(w, "      %5.1f in  %s\n", c.Thickness, c.Name)
		}
		if len(d.Unpriced) > 0 {
			color.New(color.FgYellow).Fprintf(w, "      unpriced: %v\n", d.Unpriced)
		}
	}
}
