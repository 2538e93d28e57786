package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/definepage/internal/routes"
)

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Rebuild the route table when pages change",
		Long: `Print the route table, then print it again every time a page component
is added, changed or removed. Runs until interrupted.

Extraction errors are reported and the previous table stays valid.`,
		Example: `  # Watch the configured pages directory
  definepage watch

  # Emit JSON on every change
  definepage watch --output json --debounce 250ms`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWatch(cmd, debounce)
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", routes.DefaultDebounce, "Quiet period before rebuilding")

	return cmd
}

func runWatch(cmd *cobra.Command, debounce time.Duration) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	format := routes.Format(cmdCtx.Cfg.Output)
	builder := cmdCtx.RouteBuilder()
	cmdCtx.Logger.Info("watching pages", "dir", builder.Dir())

	return builder.Watch(ctx, debounce, func(table *routes.Table, err error) {
		if err != nil {
			cmdCtx.Logger.Error("route table build failed", "error", err)
			return
		}
		if err := routes.Render(cmd.OutOrStdout(), table, format); err != nil {
			cmdCtx.Logger.Error("failed to render route table", "error", err)
		}
	})
}
