// Package cli implements the seatchart command-line interface.
package cli

import (
	"context"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/seatchart/pkg/buildinfo"
	"github.com/matzehuels/seatchart/pkg/cache"
	"github.com/matzehuels/seatchart/pkg/config"
	"github.com/matzehuels/seatchart/pkg/errors"
	"github.com/matzehuels/seatchart/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "seatchart"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is loaded before any subcommand runs.
	Config     *config.Config
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Seatchart arranges choir rosters into seating charts",
		Long: `Seatchart is a CLI tool for arranging a choir roster into a seating chart:
members are grouped by voice part, tallest at the back, and every part gets
its own block of seats.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/seatchart/config.toml)")

	// Register all subcommands
	root.AddCommand(c.generateCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.rosterCommand())
	root.AddCommand(c.dimsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use with the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	ch, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(ch, c.Config.Cache.Keyer(), c.Logger), nil
}

// newCache opens the configured cache. A cache that cannot be opened is
// logged and replaced by a null cache; caching never fails a command.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	ch, err := c.Config.Cache.Open(ctx, c.Logger)
	if err != nil {
		c.Logger.Warn("cache disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	return ch, nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// chartFlags are the placement and display flags shared by commands that
// plan charts.
type chartFlags struct {
	opts       pipeline.Options
	parts      string
	rowSizes   string
	formats    string
	aisleAfter int
}

func (f *chartFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.opts.Layout, "layout", pipeline.DefaultLayout, "layout: side-by-side, stacked")
	fl.StringVar(&f.parts, "parts", "", "part order, back/left first (comma-separated; default: order of appearance)")
	fl.IntVar(&f.opts.Rows, "rows", 0, "number of rows (default: automatic)")
	fl.IntVar(&f.opts.MaxPerRow, "max-per-row", 0, "seats per row (default: automatic)")
	fl.StringVar(&f.rowSizes, "row-sizes", "", "explicit row widths, back to front (comma-separated)")
	fl.BoolVar(&f.opts.Strict, "strict", false, "fail when a member does not fit")
	fl.BoolVar(&f.opts.Staggered, "stagger", false, "offset alternate rows by half a seat")
	fl.BoolVar(&f.opts.Flipped, "flip", false, "mirror the chart left to right")
	fl.BoolVar(&f.opts.Curved, "curved", false, "bend rows into an arc (images only)")
	fl.IntVar(&f.aisleAfter, "aisle-after", -1, "leave an aisle after this many seats")
	fl.StringVar(&f.opts.Title, "title", "", "chart title")
	fl.StringVarP(&f.formats, "format", "f", "", "output format(s): json (default), txt, dot, svg, png (comma-separated)")
}

// options resolves the flags into pipeline options, taking defaults from
// the config file for flags that were not given.
func (f *chartFlags) options(cmd *cobra.Command, cfg *config.Config) (pipeline.Options, error) {
	opts := f.opts
	fl := cmd.Flags()
	defaults := cfg.Chart

	if !fl.Changed("layout") && defaults.Layout != "" {
		opts.Layout = defaults.Layout
	}
	if !fl.Changed("strict") {
		opts.Strict = defaults.Strict
	}
	if !fl.Changed("stagger") {
		opts.Staggered = defaults.Staggered
	}
	if !fl.Changed("flip") {
		opts.Flipped = defaults.Flipped
	}

	opts.PartOrder = splitList(f.parts)
	if len(opts.PartOrder) == 0 {
		opts.PartOrder = defaults.PartOrder
	}

	sizes, err := parseInts(f.rowSizes)
	if err != nil {
		return opts, err
	}
	opts.RowSizes = sizes

	if f.aisleAfter >= 0 {
		n := f.aisleAfter
		opts.AisleAfter = &n
	}

	opts.Formats = splitList(f.formats)
	if len(opts.Formats) == 0 {
		opts.Formats = defaults.Formats
	}
	if err := pipeline.ValidateFormats(opts.Formats); err != nil {
		return opts, err
	}
	return opts, nil
}

// splitList splits a comma-separated flag value, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseInts parses a comma-separated list of non-negative integers.
func parseInts(s string) ([]int, error) {
	var out []int
	for _, field := range splitList(s) {
		n, err := strconv.Atoi(field)
		if err != nil || n < 0 {
			return nil, errors.New(errors.ErrCodeInvalidDimensions, "invalid row size %q", field)
		}
		out = append(out, n)
	}
	return out, nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string, fallback string) []string {
	if formats := splitList(s); len(formats) > 0 {
		return formats
	}
	return []string{fallback}
}

// outputPath returns where an artifact for input is written. Charts get a
// .chart.json suffix so they never overwrite a JSON roster.
func outputPath(base, format string) string {
	if format == pipeline.FormatJSON {
		return base + ".chart.json"
	}
	return base + "." + format
}

// basePath derives the base output path from the output flag and input
// file: a known extension is stripped from either.
func basePath(output, input string) string {
	path := output
	if path == "" {
		path = input
	}
	path = strings.TrimSuffix(path, ".chart.json")
	ext := filepath.Ext(path)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] || ext == ".csv" {
		return strings.TrimSuffix(path, ext)
	}
	return path
}
