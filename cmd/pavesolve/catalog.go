package main

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"Pavex/internal/catalog"
	"Pavex/internal/repo"
)

// defaultSQLitePath is used when no database is configured.
const defaultSQLitePath = "pavex.db"

var importFrom string

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage stored material catalogs",
}

var catalogImportCmd = &cobra.Command{
	Use:   "import NAME",
	Short: "Store a catalog file under NAME",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadMaterials(importFrom)
		if err != nil {
			return err
		}
		c.Name = args[0]
		store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.PutCatalog(cmd.Context(), c); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s stored catalog %q (%d materials)\n", color.GreenString("✓"), c.Name, len(c.Materials))
		return nil
	},
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored catalogs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer store.Close()
		list, err := store.ListCatalogs(cmd.Context())
		if err != nil {
			return err
		}
		printCatalogs(cmd.OutOrStdout(), list)
		return nil
	},
}

var catalogShowCmd = &cobra.Command{
	Use:   "show NAME",
	Short: "Print a stored catalog as YAML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer store.Close()
		c, err := store.GetCatalog(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return catalog.Encode(cmd.OutOrStdout(), c)
	},
}

func init() {
	catalogImportCmd.Flags().StringVar(&importFrom, "from", "", "catalog file (.yaml, .json or .xlsx); empty stores the built-in catalog")

	catalogCmd.AddCommand(catalogImportCmd)
	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogShowCmd)
}

// openStore opens the configured database, falling back to a local SQLite
// file when no DSN is set.
func openStore(ctx context.Context) (*repo.SQLRepository, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	driver, dsn := cfg.DB.Driver, cfg.DB.DSN
	if dsn == "" {
		driver, dsn = repo.DriverSQLite, defaultSQLitePath
	}
	return repo.Open(ctx, driver, dsn)
}

func printCatalogs(w io.Writer, list []repo.CatalogInfo) {
	if len(list) == 0 {
		fmt.Fprintln(w, "No stored catalogs. Run 'pavesolve catalog import NAME --from FILE' to add one.")
		return
	}
	color.New(color.Bold).Fprintf(w, "%-24s %9s  %-20s  %s\n", "Name", "Materials", "Updated", "Description")
	for _, c := range list {
		fmt.Fprintf(w, "%-24s %9d  %-20s  %s\n", c.Name, c.Materials, c.UpdatedAt.Format("2006-01-02 15:04:05"), c.Description)
	}
}
