package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/seatchart/pkg/config"
	"github.com/matzehuels/seatchart/pkg/observability"
	"github.com/matzehuels/seatchart/pkg/pipeline"
	"github.com/matzehuels/seatchart/pkg/server"
)

// serveOpts holds the flags of the serve command.
type serveOpts struct {
	addr    string
	store   string
	noCache bool
}

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the seating chart HTTP API",
		Long: `Serve the HTTP API for parsing rosters, planning charts and keeping them in
the configured store. The server shuts down gracefully on interrupt.`,
		Example: `  seatchart serve
  seatchart serve --addr :9000 --store file`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.Config.Store
			if opts.store != "" {
				cfg.Backend = opts.store
				c.Config.Store = cfg
				if err := c.Config.Validate(); err != nil {
					return err
				}
			}
			if opts.addr != "" {
				c.Config.Server.Addr = opts.addr
			}
			return c.runServe(cmd.Context(), opts.noCache)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default: from config, :8080)")
	cmd.Flags().StringVar(&opts.store, "store", "", "chart store: memory, file, mongo (default: from config)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, noCache bool) error {
	hooks := observability.NewLogHooks(c.Logger)
	observability.SetPipelineHooks(hooks)
	observability.SetCacheHooks(hooks)
	defer observability.Reset()

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	st, err := c.Config.Store.Open(ctx, c.Logger)
	if err != nil {
		return err
	}
	defer st.Close()

	opts := serverOptions(c.Config)
	opts.Logger = c.Logger
	srv := server.New(runner, st, opts)
	c.Logger.Info("chart store ready", "backend", c.Config.Store.Backend, "cache", c.Config.Cache.Backend)
	return srv.ListenAndServe(ctx)
}

// serverOptions maps the config file onto server options.
func serverOptions(cfg *config.Config) server.Options {
	return server.Options{
		Addr:         cfg.Server.Addr,
		ReadTimeout:  cfg.Server.ReadTimeout.Duration,
		WriteTimeout: cfg.Server.WriteTimeout.Duration,
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
		Defaults: pipeline.Options{
			Layout:    cfg.Chart.Layout,
			Strict:    cfg.Chart.Strict,
			Staggered: cfg.Chart.Staggered,
			Flipped:   cfg.Chart.Flipped,
		},
	}
}
