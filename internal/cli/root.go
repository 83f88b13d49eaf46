// Package cli implements plantctl, a terminal front end to the plant catalog.
package cli

import (
	"fmt"
	"io"
	"os"
	"plant-pal/internal/adapter"
	"plant-pal/internal/config"
	"plant-pal/internal/core"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type app struct {
	catalogPath string
	noColor     bool
	store       core.CatalogStore
}

// NewRootCmd builds the plantctl command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "plantctl",
		Short: "Browse the Plant Pal catalog from the terminal",
		Long: `plantctl searches, filters and sorts the Plant Pal catalog.

It shares the server configuration: catalog.path from the file named by
PLANTPAL_CONFIG, or PLANTPAL_CATALOG_PATH, selects the catalog. An empty
path means the catalog built into the binary. --catalog overrides both.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.noColor {
				color.NoColor = true
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("catalog") {
				a.catalogPath = cfg.Catalog.Path
			}
			return a.load()
		},
	}
	root.PersistentFlags().StringVar(&a.catalogPath, "catalog", "", "Catalog YAML file (default: catalog.path from config)")
	root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable colored output")

	root.AddCommand(
		a.newSearchCmd(),
		a.newShowCmd(),
		a.newFacetsCmd(),
	)
	return root
}

// Execute is the entry point called from main.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}

func (a *app) load() error {
	if a.store != nil {
		return nil
	}
	var (
		repo *adapter.PlantRepo
		err  error
	)
	if a.catalogPath == "" {
		repo, err = adapter.DefaultCatalog()
	} else {
		repo, err = adapter.LoadCatalogFile(a.catalogPath)
	}
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}
	a.store = repo
	return nil
}

func header(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, color.New(color.Bold).Sprintf(format, args...))
}
