package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/definepage/internal/cli/config"
	"github.com/leapstack-labs/definepage/internal/routes"
	"github.com/leapstack-labs/definepage/pkg/definepage"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg         *config.Config
	Logger      *slog.Logger
	Transformer *definepage.Transformer
}

// NewCommandContext collects the config and logger stored by the root
// command. Commands run on their own (as in tests) load the config from the
// working directory instead.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	logger := config.GetLogger(cmd.Context())

	cfg := config.GetConfig(cmd.Context())
	if cfg == nil {
		var err error
		if cfg, err = config.LoadConfig("", cmd.Flags()); err != nil {
			return nil, err
		}
	}

	return &CommandContext{
		Cfg:         cfg,
		Logger:      logger,
		Transformer: cfg.NewTransformer(logger),
	}, nil
}

// RouteBuilder returns a route-table builder for the configured pages
// directory.
func (c *CommandContext) RouteBuilder() *routes.Builder {
	return routes.NewBuilder(routes.Options{
		PagesDir:    c.Cfg.PagesDir,
		Extensions:  c.Cfg.Extensions,
		Concurrency: c.Cfg.Concurrency,
		Transformer: c.Transformer,
		Logger:      c.Logger,
	})
}
