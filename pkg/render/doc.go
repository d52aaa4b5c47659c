// Package render draws seating chart documents.
//
// # Geometry
//
// [Positions] places every seat of a [chart.Document] on a plane measured in
// seat widths, honoring the document's display hints: rows of different
// lengths are centered, staggered rows shift by half a seat, flipped charts
// mirror left and right, an aisle opens a gap after a given position and
// curved charts bow the rows so the middle sits further back. The front row
// is drawn at the bottom, as the audience sees it.
//
// # Outputs
//
// [Text] prints a fixed-width grid for terminals and plain files. [ToDOT]
// emits a Graphviz graph with one pinned node per seat, colored by part,
// which [RenderSVG] and [RenderPNG] lay out with the neato engine:
//
//	dot := render.ToDOT(doc)
//	svg, err := render.RenderSVG(ctx, dot)
//
// [chart.Document]: github.com/matzehuels/seatchart/pkg/chart.Document
package render
