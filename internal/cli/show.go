package cli

import (
	"encoding/json"
	"fmt"
	"plant-pal/internal/core/model"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func (a *app) newShowCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one plant with its care guide",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid plant id %q", args[0])
			}
			p, err := a.store.ByID(id)
			if err != nil {
				return fmt.Errorf("plant %d: %w", id, model.ErrNotFound)
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(p)
			}

			header(out, "%s %s", p.Image, p.Name)
			fmt.Fprintln(out, p.Description)
			fmt.Fprintln(out)
			fmt.Fprintf(out, "  Price:      %s\n", color.GreenString("$%.2f", p.Price))
			fmt.Fprintf(out, "  Category:   %s\n", p.Category)
			fmt.Fprintf(out, "  Difficulty: %s\n", p.Difficulty)
			fmt.Fprintf(out, "  Light:      %s\n", p.Light)
			fmt.Fprintf(out, "  Water:      %s\n", p.Water)
			fmt.Fprintf(out, "  Size:       %s\n", p.Size)
			if p.InStock {
				fmt.Fprintf(out, "  Stock:      %s\n", color.GreenString("in stock"))
			} else {
				fmt.Fprintf(out, "  Stock:      %s\n", color.RedString("out of stock"))
			}
			if len(p.CareInstructions) > 0 {
				fmt.Fprintln(out)
				header(out, "Care")
				for _, s := range p.CareInstructions {
					fmt.Fprintf(out, "  - %s\n", s)
				}
			}
			if len(p.Benefits) > 0 {
				fmt.Fprintln(out)
				header(out, "Benefits")
				for _, s := range p.Benefits {
					fmt.Fprintf(out, "  - %s\n", s)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}
