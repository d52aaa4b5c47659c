package chart

import (
	"time"

	"github.com/matzehuels/seatchart/pkg/roster"
	"github.com/matzehuels/seatchart/pkg/seating"
)

// Version is the current document format version.
const Version = 1

// Document is a placed chart plus the options it was built with.
type Document struct {
	Version int    `json:"version" bson:"version"`
	ID      string `json:"id,omitempty" bson:"_id,omitempty"`
	Title   string `json:"title,omitempty" bson:"title,omitempty"`

	// Placement
	Layout    seating.Mode    `json:"layout" bson:"layout"`
	PartOrder []string        `json:"part_order" bson:"part_order"`
	Rows      [][]Seat        `json:"rows" bson:"rows"`
	Unplaced  []roster.Member `json:"unplaced,omitempty" bson:"unplaced,omitempty"`

	// Display hints
	Flipped    bool `json:"flipped,omitempty" bson:"flipped,omitempty"`
	Staggered  bool `json:"staggered,omitempty" bson:"staggered,omitempty"`
	Curved     bool `json:"curved,omitempty" bson:"curved,omitempty"`
	AisleAfter *int `json:"aisle_after,omitempty" bson:"aisle_after,omitempty"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at,omitzero" bson:"updated_at,omitempty"`
}

// Seat is one encoded slot. Singer is null for an empty seat.
type Seat struct {
	Row      int            `json:"row" bson:"row"`
	Position int            `json:"position" bson:"position"`
	Singer   *roster.Member `json:"singer" bson:"singer"`
}

// FromChart encodes c. Members are copied, so the document does not alias
// the roster the chart was built from.
func FromChart(c seating.Chart) *Document {
	rows := make([][]Seat, len(c))
	for r, row := range c {
		rows[r] = make([]Seat, len(row))
		for p, s := range row {
			out := Seat{Row: s.Row, Position: s.Position}
			if !s.Empty() {
				m := *s.Member
				out.Singer = &m
			}
			rows[r][p] = out
		}
	}
	return &Document{
		Version:   Version,
		Layout:    seating.ModeSideBySide,
		Rows:      rows,
		CreatedAt: time.Now().UTC(),
	}
}

// Chart decodes the grid. Seats point at the document's members.
func (d *Document) Chart() seating.Chart {
	c := make(seating.Chart, len(d.Rows))
	for r, row := range d.Rows {
		c[r] = make([]seating.Seat, len(row))
		for p, s := range row {
			c[r][p] = seating.Seat{Row: s.Row, Position: s.Position, Member: s.Singer}
		}
	}
	return c
}

// Members lists the seated members back to front, left to right.
func (d *Document) Members() []roster.Member {
	var out []roster.Member
	for _, row := range d.Rows {
		for _, s := range row {
			if s.Singer != nil {
				out = append(out, *s.Singer)
			}
		}
	}
	return out
}

// Counts returns the number of filled seats per row.
func (d *Document) Counts() []int {
	counts := make([]int, len(d.Rows))
	for r, row := range d.Rows {
		for _, s := range row {
			if s.Singer != nil {
				counts[r]++
			}
		}
	}
	return counts
}

// Offsets returns the per-row half-seat shifts to draw, all false unless
// the document is staggered.
func (d *Document) Offsets() []bool {
	if !d.Staggered {
		return make([]bool, len(d.Rows))
	}
	return seating.StaggerOffsetsFromCounts(d.Counts())
}

// Widest returns the length of the longest row.
func (d *Document) Widest() int {
	widest := 0
	for _, row := range d.Rows {
		widest = max(widest, len(row))
	}
	return widest
}

// Parts returns the part order, falling back to the parts seen in the grid.
func (d *Document) Parts() []string {
	if len(d.PartOrder) > 0 {
		return d.PartOrder
	}
	return roster.UniqueParts(d.Members())
}
