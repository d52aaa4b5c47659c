package pipeline

import (
	"slices"

	"github.com/matzehuels/seatchart/pkg/chart"
	"github.com/matzehuels/seatchart/pkg/errors"
	"github.com/matzehuels/seatchart/pkg/roster"
	"github.com/matzehuels/seatchart/pkg/seating"
)

// =============================================================================
// Dimensions
// =============================================================================

// ResolveDimensions picks the grid for members. User rows and row widths
// win; otherwise the automatic size is used. For side-by-side charts
// without a user width, seats per row grow to the minimum width so no part's
// column band is cut short.
func ResolveDimensions(members []roster.Member, opts Options) (rows, seatsPerRow int) {
	if len(opts.RowSizes) > 0 {
		return len(opts.RowSizes), slices.Max(opts.RowSizes)
	}
	mode := opts.Mode()
	total := countInOrder(members, opts.PartOrder)
	rows, seatsPerRow = seating.DimensionsWithOverrides(total, len(opts.PartOrder), mode, opts.Rows, opts.MaxPerRow)
	if mode == seating.ModeSideBySide && opts.MaxPerRow == 0 {
		seatsPerRow = max(seatsPerRow, seating.MinimumWidth(members, opts.PartOrder, rows))
	}
	return rows, seatsPerRow
}

func countInOrder(members []roster.Member, order []string) int {
	n := 0
	for _, m := range members {
		if slices.Contains(order, m.Part) {
			n++
		}
	}
	return n
}

// =============================================================================
// Planning
// =============================================================================

// Plan places members without caching. Members are validated first. When
// opts.Strict is set and someone does not fit, the document is returned
// together with a CAPACITY_EXCEEDED error; otherwise the leftovers are
// listed in Document.Unplaced.
func Plan(members []roster.Member, opts Options) (*chart.Document, error) {
	if err := opts.ValidateAndSetDefaults(members); err != nil {
		return nil, err
	}
	if err := roster.ValidateAll(members); err != nil {
		return nil, err
	}

	rows, seatsPerRow := ResolveDimensions(members, opts)
	c, err := seating.Generate(members, seating.Config{
		Rows:        rows,
		SeatsPerRow: seatsPerRow,
		PartOrder:   opts.PartOrder,
		Mode:        opts.Mode(),
		RowSizes:    opts.RowSizes,
		Strict:      opts.Strict,
	})
	if c == nil {
		return nil, err
	}

	doc := chart.FromChart(c)
	doc.Layout = opts.Mode()
	doc.PartOrder = slices.Clone(opts.PartOrder)
	doc.Unplaced = seating.Unplaced(c, members, opts.PartOrder)
	opts.applyDisplay(doc)

	opts.Logger.Debug("placed roster",
		"layout", doc.Layout,
		"rows", rows,
		"seats_per_row", seatsPerRow,
		"seats", c.Size(),
		"placed", c.Placed(),
		"unplaced", len(doc.Unplaced))

	if err != nil && !errors.Is(err, errors.ErrCodeCapacityExceeded) {
		return nil, err
	}
	return doc, err
}
