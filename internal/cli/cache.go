package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/seatchart/pkg/cache"
	"github.com/matzehuels/seatchart/pkg/config"
	"github.com/matzehuels/seatchart/pkg/errors"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the chart and artifact cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached charts and rendered artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.Config.Cache
			if cfg.Backend == config.BackendNone {
				printInfo("Caching is disabled")
				return nil
			}
			ch, err := cfg.Open(cmd.Context(), c.Logger)
			if err != nil {
				return err
			}
			defer ch.Close()

			clearer, ok := ch.(cache.Clearer)
			if !ok {
				return errors.New(errors.ErrCodeUnsupported, "the %s cache cannot be cleared", cfg.Backend)
			}
			if err := clearer.Clear(cmd.Context()); err != nil {
				return err
			}
			printSuccess("Cleared the %s cache", cfg.Backend)
			if fc, ok := ch.(*cache.FileCache); ok {
				printDetail("Directory: %s", fc.Dir())
			}
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir(c.Config.Cache)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}

// cacheDir returns the directory of the file cache.
func cacheDir(cfg config.CacheConfig) (string, error) {
	if cfg.Backend != config.BackendFile {
		return "", errors.New(errors.ErrCodeUnsupported, "the %s cache has no directory", cfg.Backend)
	}
	if cfg.Dir != "" {
		return cfg.Dir, nil
	}
	return cache.DefaultDir()
}
