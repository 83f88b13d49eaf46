package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"plant-pal/internal/core"
	"plant-pal/internal/core/model"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func (a *app) newSearchCmd() *cobra.Command {
	var (
		category   string
		difficulty string
		sortKey    string
		jsonOut    bool
	)

	cmd := &cobra.Command{
		Use:   "search [text]",
		Short: "Filter and sort plants",
		Long: `Filter the catalog by free text, category and difficulty, then sort it.
The text matches plant names and descriptions, ignoring case.

Examples:
  plantctl search
  plantctl search fern --difficulty Hard
  plantctl search --category Indoor --sort price-low
  plantctl search lily --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := core.NewController(a.store)
			if len(args) > 0 {
				c.SetSearchText(args[0])
			}
			if err := c.SetCategory(model.Category(category)); err != nil {
				return withChoices(err, a.store.Vocabulary())
			}
			if err := c.SetDifficulty(model.Difficulty(difficulty)); err != nil {
				return withChoices(err, a.store.Vocabulary())
			}
			if err := c.SetSortKey(sortKey); err != nil {
				return withChoices(err, a.store.Vocabulary())
			}

			view := c.View()
			out := cmd.OutOrStdout()
			if jsonOut {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(view)
			}
			printView(out, view)
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", model.All, "Only plants in this category")
	cmd.Flags().StringVar(&difficulty, "difficulty", model.All, "Only plants at this care level")
	cmd.Flags().StringVar(&sortKey, "sort", string(model.SortName), "Sort order: name, price-low, price-high, difficulty")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func printView(w io.Writer, v model.ResultView) {
	header(w, "Showing %d of %d plants", v.MatchCount, v.TotalCount)
	if v.MatchCount == 0 {
		fmt.Fprintln(w, color.YellowString("No plants found. Try adjusting your search or filters."))
		return
	}
	for _, p := range v.Items {
		stock := ""
		if !p.InStock {
			stock = color.RedString("  out of stock")
		}
		fmt.Fprintf(w, "%4d  %s %-22s %s  %-10s %s%s\n",
			p.ID, p.Image, p.Name,
			color.GreenString("$%6.2f", p.Price),
			p.Category, color.CyanString(string(p.Difficulty)), stock)
	}
}

// withChoices appends the allowed values to a rejected flag value.
func withChoices(err error, v model.Vocabulary) error {
	var fe *core.FieldError
	if !errors.As(err, &fe) {
		return err
	}
	var choices []string
	switch fe.Field {
	case "category":
		choices = append(choices, model.All)
		for _, c := range v.Categories {
			choices = append(choices, string(c))
		}
	case "difficulty":
		choices = append(choices, model.All)
		for _, d := range v.Difficulties {
			choices = append(choices, string(d))
		}
	case "sort":
		for _, o := range v.SortOptions {
			choices = append(choices, string(o.Key))
		}
	}
	return fmt.Errorf("%w (choose from: %s)", err, strings.Join(choices, ", "))
}
