package seating

import (
	"github.com/matzehuels/seatchart/pkg/errors"
	"github.com/matzehuels/seatchart/pkg/roster"
)

// Mode selects how parts are arranged.
type Mode string

// Layout modes.
const (
	ModeSideBySide Mode = "side-by-side"
	ModeStacked    Mode = "stacked"
)

// ParseMode converts a layout name into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeSideBySide, ModeStacked:
		return Mode(s), nil
	case "":
		return ModeSideBySide, nil
	}
	return "", errors.New(errors.ErrCodeInvalidLayout, "invalid layout: %q (must be 'side-by-side' or 'stacked')", s)
}

// Seat is one slot in the chart. Row 0 is the back row.
type Seat struct {
	Row      int
	Position int
	Member   *roster.Member // nil when empty
}

// Empty reports whether nobody sits here.
func (s Seat) Empty() bool { return s.Member == nil }

// Chart holds the rows of seats, back to front.
type Chart [][]Seat

// NewChart allocates empty rows with the given widths.
func NewChart(widths []int) Chart {
	c := make(Chart, len(widths))
	for r, w := range widths {
		row := make([]Seat, w)
		for p := range row {
			row[p] = Seat{Row: r, Position: p}
		}
		c[r] = row
	}
	return c
}

// NewUniformChart allocates rows×seats empty seats.
func NewUniformChart(rows, seats int) Chart {
	widths := make([]int, rows)
	for i := range widths {
		widths[i] = seats
	}
	return NewChart(widths)
}

// Occupied returns the number of filled seats in row r.
func (c Chart) Occupied(r int) int {
	n := 0
	for _, s := range c[r] {
		if !s.Empty() {
			n++
		}
	}
	return n
}

// Counts returns the number of filled seats per row.
func (c Chart) Counts() []int {
	counts := make([]int, len(c))
	for r := range c {
		counts[r] = c.Occupied(r)
	}
	return counts
}

// Placed returns the total number of filled seats.
func (c Chart) Placed() int {
	n := 0
	for r := range c {
		n += c.Occupied(r)
	}
	return n
}

// Size returns the total number of seats.
func (c Chart) Size() int {
	n := 0
	for _, row := range c {
		n += len(row)
	}
	return n
}

// Widest returns the length of the longest row.
func (c Chart) Widest() int {
	widest := 0
	for _, row := range c {
		widest = max(widest, len(row))
	}
	return widest
}

// Members lists the seated members back to front, left to right.
func (c Chart) Members() []roster.Member {
	var out []roster.Member
	for _, row := range c {
		for _, s := range row {
			if !s.Empty() {
				out = append(out, *s.Member)
			}
		}
	}
	return out
}
