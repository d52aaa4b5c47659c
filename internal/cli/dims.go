package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/seatchart/pkg/pipeline"
	"github.com/matzehuels/seatchart/pkg/seating"
)

// dimsCommand creates the dims command, which reports the grid a roster
// would get without planning it.
func (c *CLI) dimsCommand() *cobra.Command {
	var flags chartFlags

	cmd := &cobra.Command{
		Use:   "dims ROSTER",
		Short: "Show the rows and seats a roster would be given",
		Example: `  seatchart dims choir.csv
  seatchart dims choir.csv --layout stacked --rows 4`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			members, err := pipeline.LoadRoster(args[0])
			if err != nil {
				return err
			}
			opts, err := flags.options(cmd, c.Config)
			if err != nil {
				return err
			}
			if err := opts.ValidateAndSetDefaults(members); err != nil {
				return err
			}

			rows, seats := pipeline.ResolveDimensions(members, opts)
			capacity := rows * seats
			if len(opts.RowSizes) > 0 {
				capacity = 0
				for _, n := range opts.RowSizes {
					capacity += n
				}
			}

			printKeyValue("Layout", opts.Layout)
			printKeyValue("Parts", fmt.Sprint(opts.PartOrder))
			printKeyValue("Members", fmt.Sprint(len(members)))
			printKeyValue("Rows", fmt.Sprint(rows))
			printKeyValue("Seats/row", fmt.Sprint(seats))
			printKeyValue("Capacity", fmt.Sprint(capacity))
			if opts.Mode() == seating.ModeSideBySide {
				printKeyValue("Min width", fmt.Sprint(seating.MinimumWidth(members, opts.PartOrder, rows)))
			}
			if capacity < len(members) {
				printWarning("%d members will not fit", len(members)-capacity)
			}
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
