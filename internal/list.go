package internal

import (
	"github.com/MrSnakeDoc/skipsel/internal/catalog"
	"github.com/MrSnakeDoc/skipsel/internal/list"
	"github.com/MrSnakeDoc/skipsel/internal/middleware"

	"github.com/spf13/cobra"
)

func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the skips available for a location",
		Long: `List the skips available for a postcode and area with their price breakdown.

Examples:
  skipsel list                          # Uses the configured location
  skipsel list -p NR32 -a Lowestoft     # Explicit location
  skipsel list --sort price --json      # Cheapest first, as JSON`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := middleware.Get[*catalog.Client](cmd, middleware.CtxKeyCatalog)
			if err != nil {
				return err
			}
			loc, err := middleware.Location(cmd)
			if err != nil {
				return err
			}

			jsonOut, err := cmd.Flags().GetBool("json")
			if err != nil {
				return err
			}
			sortKey, err := cmd.Flags().GetString("sort")
			if err != nil {
				return err
			}

			l := list.New(client, cmd.OutOrStdout())
			return l.Execute(cmd.Context(), loc, list.Options{JSON: jsonOut, Sort: sortKey})
		},
	}

	addLocationFlags(cmd)
	cmd.Flags().Bool("json", false, "Print skips as JSON")
	cmd.Flags().String("sort", "size", "Sort by size, price or hire")
	return cmd
}
