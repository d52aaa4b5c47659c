package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/seatchart/pkg/chart"
	"github.com/matzehuels/seatchart/pkg/errors"
	"github.com/matzehuels/seatchart/pkg/pipeline"
)

// renderOpts holds the flags of the render command. Display flags only
// override the document when given.
type renderOpts struct {
	output     string
	formats    string
	noCache    bool
	title      string
	staggered  bool
	flipped    bool
	curved     bool
	aisleAfter int
}

// renderCommand creates the render command, which draws a saved chart
// without replanning it.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render CHART",
		Short: "Render a saved chart to text or images",
		Long: `Render a chart document written by "seatchart generate" (or edited in
"seatchart view") without replanning it. Display flags override the
hints stored in the document.`,
		Example: `  seatchart render choir.chart.json -f svg
  seatchart render choir.chart.json -f png,txt --stagger --curved -o stage`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := chart.ReadFile(args[0])
			if err != nil {
				return err
			}
			opts.applyDisplay(cmd, doc)
			formats := parseFormats(opts.formats, pipeline.FormatSVG)
			if err := pipeline.ValidateFormats(formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], doc, formats, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output base path (default: next to the chart)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), png, txt, dot, json (comma-separated)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&opts.title, "title", "", "chart title")
	cmd.Flags().BoolVar(&opts.staggered, "stagger", false, "offset alternate rows by half a seat")
	cmd.Flags().BoolVar(&opts.flipped, "flip", false, "mirror the chart left to right")
	cmd.Flags().BoolVar(&opts.curved, "curved", false, "bend rows into an arc (images only)")
	cmd.Flags().IntVar(&opts.aisleAfter, "aisle-after", -1, "leave an aisle after this many seats")

	return cmd
}

func (o *renderOpts) applyDisplay(cmd *cobra.Command, doc *chart.Document) {
	fl := cmd.Flags()
	if fl.Changed("title") {
		doc.Title = o.title
	}
	if fl.Changed("stagger") {
		doc.Staggered = o.staggered
	}
	if fl.Changed("flip") {
		doc.Flipped = o.flipped
	}
	if fl.Changed("curved") {
		doc.Curved = o.curved
	}
	if fl.Changed("aisle-after") {
		if o.aisleAfter < 0 {
			doc.AisleAfter = nil
		} else {
			n := o.aisleAfter
			doc.AisleAfter = &n
		}
	}
}

func (c *CLI) runRender(ctx context.Context, input string, doc *chart.Document, formats []string, opts *renderOpts) error {
	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	spinner := newSpinner(ctx, "Rendering "+input+"...")
	spinner.Start()
	artifacts, hit, err := runner.RenderWithCacheInfo(ctx, doc, formats)
	spinner.Stop()
	if err != nil {
		return err
	}

	base := basePath(opts.output, input)
	printSuccess("Rendered %s", StyleHighlight.Render(input))
	for _, format := range formats {
		path := outputPath(base, format)
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
		}
		printFile(path)
	}
	printStats(len(doc.Members()), len(doc.Unplaced), len(doc.Rows), hit)
	prog.done("Rendered chart", "formats", formats)
	return nil
}
