package cli

import (
	"fmt"
	"plant-pal/internal/core/model"
	"strings"

	"github.com/spf13/cobra"
)

func (a *app) newFacetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "facets",
		Short: "List the categories, difficulties, sizes and sort orders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v := a.store.Vocabulary()
			out := cmd.OutOrStdout()

			cats := []string{model.All}
			for _, c := range v.Categories {
				cats = append(cats, string(c))
			}
			levels := []string{model.All}
			for _, d := range v.Difficulties {
				levels = append(levels, string(d))
			}
			sizes := make([]string, 0, len(v.Sizes))
			for _, s := range v.Sizes {
				sizes = append(sizes, string(s))
			}

			header(out, "Categories")
			fmt.Fprintf(out, "  %s\n", strings.Join(cats, ", "))
			header(out, "Difficulties")
			fmt.Fprintf(out, "  %s\n", strings.Join(levels, ", "))
			header(out, "Sizes")
			fmt.Fprintf(out, "  %s\n", strings.Join(sizes, ", "))
			header(out, "Sort")
			for _, o := range v.SortOptions {
				fmt.Fprintf(out, "  %-11s %s\n", o.Key, o.Label)
			}
			return nil
		},
	}
}
