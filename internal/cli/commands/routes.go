package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/definepage/internal/routes"
)

// NewRoutesCommand creates the routes command.
func NewRoutesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "routes",
		Short: "Print the route table of the pages directory",
		Long: `Scan the pages directory and print one route per page component.

Each page gets a default name and path derived from its file path
(index -> /, [id] -> :id, [[id]] -> :id?, [...slug] -> :slug(.*)).
A page whose setup script calls the macro overrides them with the
literal name, path and alias it declares.

Use --output to choose the format: text, json, yaml`,
		Example: `  # Print the route table
  definepage routes

  # Route table as JSON for another tool
  definepage routes --output json

  # Scan a different directory
  definepage routes --pages-dir app/pages`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRoutes(cmd)
		},
	}

	return cmd
}

func runRoutes(cmd *cobra.Command) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	table, err := cmdCtx.RouteBuilder().Build(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to build route table: %w", err)
	}
	return routes.Render(cmd.OutOrStdout(), table, routes.Format(cmdCtx.Cfg.Output))
}
