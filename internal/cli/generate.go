package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"sort"
	"sync/atomic"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/seatchart/pkg/errors"
	"github.com/matzehuels/seatchart/pkg/pipeline"
	"github.com/matzehuels/seatchart/pkg/render"
	"github.com/matzehuels/seatchart/pkg/roster"
)

// maxParallelRosters bounds concurrent plans when several rosters are given.
const maxParallelRosters = 4

// generateOpts holds the flags of the generate command.
type generateOpts struct {
	chart   chartFlags
	output  string
	noCache bool
	refresh bool
	show    bool
}

// generateCommand creates the generate command, which plans one or more
// rosters and writes the requested artifacts next to each roster.
func (c *CLI) generateCommand() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "generate ROSTER...",
		Short: "Plan seating charts from roster files",
		Long: `Plan a seating chart for each roster (CSV with name, voice part and height
columns, or a JSON array of members) and write the requested formats.

Outputs are written next to the roster: choir.csv becomes choir.chart.json,
choir.svg and so on. Use -o to choose the base path for a single roster.`,
		Example: `  seatchart generate choir.csv
  seatchart generate choir.csv --layout stacked --parts Soprano,Alto,Tenor,Bass -f svg,txt
  seatchart generate choir.csv --row-sizes 10,12,14 --stagger --print
  seatchart generate concert/*.csv -f json,png`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.output != "" && len(args) > 1 {
				return errors.New(errors.ErrCodeInvalidInput, "--output needs a single roster, got %d", len(args))
			}
			popts, err := opts.chart.options(cmd, c.Config)
			if err != nil {
				return err
			}
			popts.Refresh = opts.refresh
			return c.runGenerate(cmd.Context(), args, popts, opts)
		},
	}

	opts.chart.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output base path (single roster only)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "replan even when a cached chart exists")
	cmd.Flags().BoolVar(&opts.show, "print", false, "print the chart as text after writing")

	return cmd
}

func (c *CLI) runGenerate(ctx context.Context, inputs []string, popts pipeline.Options, opts generateOpts) error {
	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)

	if len(inputs) == 1 {
		spinner := newSpinner(ctx, "Planning "+inputs[0]+"...")
		spinner.Start()
		res, err := c.generateOne(ctx, runner, inputs[0], popts, opts.output)
		spinner.Stop()
		if err != nil {
			reportCapacity(err)
			return err
		}
		printGenerated(inputs[0], res, opts.show)
		prog.done("Generated chart", "roster", inputs[0])
		return nil
	}

	results := make([]*generated, len(inputs))
	var finished atomic.Int32
	spinner := newSpinner(ctx, fmt.Sprintf("Planning 0/%d rosters...", len(inputs)))
	spinner.Start()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelRosters)
	for i, input := range inputs {
		g.Go(func() error {
			res, err := c.generateOne(gctx, runner, input, popts, "")
			if err != nil {
				return fmt.Errorf("%s: %w", input, err)
			}
			results[i] = res
			spinner.Update("Planning %d/%d rosters...", finished.Add(1), len(inputs))
			return nil
		})
	}
	err = g.Wait()
	spinner.Stop()
	if err != nil {
		reportCapacity(err)
		return err
	}

	for i, res := range results {
		printGenerated(inputs[i], res, opts.show)
	}
	prog.done(fmt.Sprintf("Generated %d charts", len(inputs)))
	return nil
}

// generated is the outcome of planning one roster.
type generated struct {
	result *pipeline.Result
	files  []string
}

func (c *CLI) generateOne(ctx context.Context, runner *pipeline.Runner, input string, popts pipeline.Options, output string) (*generated, error) {
	members, err := pipeline.LoadRoster(input)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("loaded roster", "path", input, "members", len(members))

	res, err := runner.Execute(ctx, members, popts)
	if err != nil {
		return nil, err
	}

	base := basePath(output, input)
	out := &generated{result: res}
	for _, format := range popts.Formats {
		path := outputPath(base, format)
		if err := os.WriteFile(path, res.Artifacts[format], 0o644); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
		}
		out.files = append(out.files, path)
	}
	return out, nil
}

func printGenerated(input string, g *generated, show bool) {
	res := g.result
	printSuccess("Seated %s", StyleHighlight.Render(input))
	for _, path := range g.files {
		printFile(path)
	}
	printStats(res.Stats.Placed, res.Stats.Unplaced, res.Stats.Rows, res.CacheInfo.PlanHit)
	if res.Stats.Unplaced > 0 {
		printUnplaced(res.Document.Unplaced)
	}
	if show {
		printNewline()
		fmt.Print(render.Text(res.Document))
	}
}

// printUnplaced lists members left without a seat.
func printUnplaced(members []roster.Member) {
	for _, m := range members {
		printDetail("unplaced: %s (%s, %s)", m.Name, m.Part, m.HeightDisplay())
	}
}

// reportCapacity lists the members that did not fit when err is a strict
// capacity failure.
func reportCapacity(err error) {
	var ce *errors.CapacityError
	if !stderrors.As(err, &ce) {
		return
	}
	printWarning("%d members do not fit", ce.Total)
	parts := make([]string, 0, len(ce.Unplaced))
	for part := range ce.Unplaced {
		parts = append(parts, part)
	}
	sort.Strings(parts)
	for _, part := range parts {
		printDetail("%s: %d", part, ce.Unplaced[part])
	}
}
