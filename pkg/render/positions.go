package render

import (
	"math"

	"github.com/matzehuels/seatchart/pkg/chart"
)

// AisleWidth is the gap an aisle opens, in seat widths.
const AisleWidth = 1.0

// curveDepth is how far the middle of a curved row sits behind its ends.
const curveDepth = 0.75

// Cell is a seat with its drawing position in seat widths. X grows to the
// right, Y grows toward the back; the front row is at Y 0.
type Cell struct {
	chart.Seat
	X, Y float64
}

// Positions lays out every seat of doc, back row first. Within a row cells
// are in display order, which is reversed for flipped charts.
func Positions(doc *chart.Document) []Cell {
	widest := doc.Widest()
	offsets := doc.Offsets()
	n := len(doc.Rows)

	cells := make([]Cell, 0, widest*n)
	for r, row := range doc.Rows {
		x0 := float64(widest-len(row)) / 2
		if offsets[r] {
			x0 += 0.5
		}
		for i := range row {
			s := row[i]
			if doc.Flipped {
				s = row[len(row)-1-i]
			}
			x := x0 + float64(i)
			if doc.AisleAfter != nil && i >= *doc.AisleAfter {
				x += AisleWidth
			}
			cells = append(cells, Cell{Seat: s, X: x, Y: float64(n - 1 - r)})
		}
	}
	if doc.Curved {
		bend(cells)
	}
	return cells
}

// bend pushes cells back by a parabola centered on the chart.
func bend(cells []Cell) {
	if len(cells) == 0 {
		return
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, c := range cells {
		lo, hi = math.Min(lo, c.X), math.Max(hi, c.X)
	}
	center := (lo + hi) / 2
	half := math.Max((hi-lo)/2, 1)
	for i := range cells {
		d := (cells[i].X - center) / half
		cells[i].Y += curveDepth * (1 - d*d)
	}
}
