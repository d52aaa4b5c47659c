package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/seatchart/pkg/errors"
	"github.com/matzehuels/seatchart/pkg/pipeline"
	"github.com/matzehuels/seatchart/pkg/roster"
)

// rosterCommand creates the roster command group.
func (c *CLI) rosterCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roster",
		Short: "Create and inspect rosters",
	}

	cmd.AddCommand(c.rosterRandomCommand())
	cmd.AddCommand(c.rosterPartsCommand())

	return cmd
}

// rosterRandomOpts holds the flags of "roster random".
type rosterRandomOpts struct {
	count        int
	parts        string
	distribution string
	minHeight    float64
	maxHeight    float64
	seed         uint64
	output       string
}

// rosterRandomCommand creates the "roster random" subcommand.
func (c *CLI) rosterRandomCommand() *cobra.Command {
	opts := rosterRandomOpts{count: roster.DefaultRandomCount}

	cmd := &cobra.Command{
		Use:   "random",
		Short: "Generate a random roster as CSV",
		Example: `  seatchart roster random -n 48 > choir.csv
  seatchart roster random --parts "Soprano 1,Soprano 2,Alto,Tenor,Bass" --seed 7 -o choir.csv
  seatchart roster random --distribution 12,10,6,8`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			members, err := opts.generate()
			if err != nil {
				return err
			}
			if opts.output == "" {
				return roster.WriteCSV(cmd.OutOrStdout(), members)
			}
			if err := roster.WriteCSVFile(opts.output, members); err != nil {
				return err
			}
			printSuccess("Wrote %d members", len(members))
			printFile(opts.output)
			printNextStep("Plan it", "seatchart generate "+opts.output)
			return nil
		},
	}

	fl := cmd.Flags()
	fl.IntVarP(&opts.count, "count", "n", opts.count, fmt.Sprintf("number of members (1-%d)", roster.MaxRandomCount))
	fl.StringVar(&opts.parts, "parts", "", "voice parts (comma-separated; default: Soprano,Alto,Tenor,Bass)")
	fl.StringVar(&opts.distribution, "distribution", "", "members per part, in part order (comma-separated; overrides --count)")
	fl.Float64Var(&opts.minHeight, "min-height", roster.DefaultMinHeight, "shortest height in inches")
	fl.Float64Var(&opts.maxHeight, "max-height", roster.DefaultMaxHeight, "tallest height in inches")
	fl.Uint64Var(&opts.seed, "seed", 0, "random seed (default: random)")
	fl.StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")

	return cmd
}

func (o *rosterRandomOpts) generate() ([]roster.Member, error) {
	parts := splitList(o.parts)
	if len(parts) == 0 {
		parts = roster.DefaultParts
	}
	dist, err := parseInts(o.distribution)
	if err != nil {
		return nil, err
	}
	total := o.count
	if len(dist) > 0 {
		total = 0
		for _, n := range dist {
			total += n
		}
	}
	if err := roster.ValidateRandomCount(total); err != nil {
		return nil, err
	}
	if o.minHeight <= 0 || o.maxHeight <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "heights must be positive")
	}
	return roster.Generate(roster.GenerateOptions{
		Count:        o.count,
		Parts:        parts,
		Distribution: dist,
		MinHeight:    o.minHeight,
		MaxHeight:    o.maxHeight,
		Seed:         o.seed,
	}), nil
}

// rosterPartsCommand creates the "roster parts" subcommand.
func (c *CLI) rosterPartsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "parts ROSTER",
		Short: "Summarize a roster by voice part",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			members, err := pipeline.LoadRoster(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), partsTable(members))
			return nil
		},
	}
}

// partsTable tabulates member counts and height ranges per part, in
// first-seen order.
func partsTable(members []roster.Member) string {
	parts := roster.UniqueParts(members)
	styles := partStyles(parts)

	type span struct{ lo, hi roster.Member }
	spans := make(map[string]*span, len(parts))
	for _, m := range members {
		s, ok := spans[m.Part]
		if !ok {
			spans[m.Part] = &span{lo: m, hi: m}
			continue
		}
		if m.Height < s.lo.Height {
			s.lo = m
		}
		if m.Height > s.hi.Height {
			s.hi = m
		}
	}

	counts := roster.CountByPart(members)
	rows := make([][]string, 0, len(parts)+1)
	for _, p := range parts {
		rows = append(rows, []string{p, strconv.Itoa(counts[p]), spans[p].lo.HeightDisplay(), spans[p].hi.HeightDisplay()})
	}
	rows = append(rows, []string{"Total", strconv.Itoa(len(members)), "", ""})

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(tableBorderStyle).
		Headers("Part", "Members", "Shortest", "Tallest").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return tableHeaderStyle.Padding(0, 1)
			}
			if col == 0 && row < len(parts) {
				return styles[parts[row]].Padding(0, 1)
			}
			return tableCellStyle
		})
	return t.Render()
}
