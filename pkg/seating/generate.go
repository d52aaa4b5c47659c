package seating

import (
	"github.com/matzehuels/seatchart/pkg/errors"
	"github.com/matzehuels/seatchart/pkg/roster"
)

// Config describes the chart to build.
type Config struct {
	Rows        int
	SeatsPerRow int
	PartOrder   []string // left to right (side-by-side) or back to front (stacked)
	Mode        Mode

	// RowSizes optionally gives each row's width, back to front. When set,
	// Rows is len(RowSizes) and SeatsPerRow is ignored.
	RowSizes []int

	// Strict turns unplaced members into a CAPACITY_EXCEEDED error.
	Strict bool
}

// Validate checks the configuration without placing anyone.
func (c Config) Validate() error {
	if err := errors.ValidatePartOrder(c.PartOrder); err != nil {
		return err
	}
	if _, err := ParseMode(string(c.Mode)); err != nil {
		return err
	}
	if len(c.RowSizes) > 0 {
		return errors.ValidateRowSizes(c.RowSizes)
	}
	if c.Rows < 0 || c.SeatsPerRow < 0 {
		return errors.New(errors.ErrCodeInvalidDimensions, "invalid dimensions %dx%d", c.Rows, c.SeatsPerRow)
	}
	return nil
}

// allocate returns the empty chart the configuration describes.
func (c Config) allocate() Chart {
	if len(c.RowSizes) > 0 {
		return NewChart(c.RowSizes)
	}
	return NewUniformChart(c.Rows, c.SeatsPerRow)
}

// Generate allocates a chart and places members into it. Members whose part
// is not in cfg.PartOrder are ignored. Seats point into the members slice,
// which must not be modified while the chart is in use.
//
// When some members do not fit, the chart is returned as built; with
// cfg.Strict the error is a CAPACITY_EXCEEDED *errors.Error describing them.
func Generate(members []roster.Member, cfg Config) (Chart, error) {
	if cfg.Mode == "" {
		cfg.Mode = ModeSideBySide
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	g := groupByPart(members, cfg.PartOrder)
	c := cfg.allocate()
	rows := len(c)

	switch cfg.Mode {
	case ModeSideBySide:
		if len(cfg.RowSizes) > 0 {
			placeSideBySideVariable(c, g, cfg.PartOrder, cfg.RowSizes)
		} else {
			placeSideBySide(c, g, cfg.PartOrder, rows, cfg.SeatsPerRow)
		}
	case ModeStacked:
		placeStacked(c, g, cfg.PartOrder, rows, c.Widest())
	}

	if cfg.Strict {
		if missing := Unplaced(c, members, cfg.PartOrder); len(missing) > 0 {
			return c, errors.Capacity(roster.CountByPart(missing))
		}
	}
	return c, nil
}

// Unplaced returns the members of the parts in order that have no seat in c.
// Members are matched by value, so it also works on charts decoded from
// storage. Duplicated members are counted individually.
func Unplaced(c Chart, members []roster.Member, order []string) []roster.Member {
	inOrder := make(map[string]bool, len(order))
	for _, p := range order {
		inOrder[p] = true
	}
	seated := make(map[roster.Member]int)
	for _, m := range c.Members() {
		seated[m]++
	}
	var missing []roster.Member
	for _, m := range members {
		if !inOrder[m.Part] {
			continue
		}
		if seated[m] > 0 {
			seated[m]--
			continue
		}
		missing = append(missing, m)
	}
	return missing
}
