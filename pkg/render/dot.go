package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/seatchart/pkg/chart"
)

// Seat spacing in inches, the unit neato reads pinned positions in.
const (
	spacingX = 1.25
	spacingY = 0.9
)

var palette = []string{
	"#8ecae6", "#ffb703", "#90be6d", "#f28482",
	"#cdb4db", "#f6bd60", "#84a59d", "#b8c0ff",
}

const unknownColor = "#dddddd"

// PartColors assigns a fill color to each part, cycling the palette.
func PartColors(parts []string) map[string]string {
	colors := make(map[string]string, len(parts))
	for i, p := range parts {
		colors[p] = palette[i%len(palette)]
	}
	return colors
}

// ToDOT converts doc to a Graphviz graph with one node per seat, pinned at
// its [Positions] coordinate. Render it with [RenderSVG] or [RenderPNG].
func ToDOT(doc *chart.Document) string {
	var buf bytes.Buffer
	buf.WriteString("graph seating {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  pad=0.3;\n")
	if doc.Title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n  labelloc=t;\n  fontname=\"Helvetica\";\n  fontsize=18;\n", doc.Title)
	}
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fixedsize=true, width=1.1, height=0.6, fontname=\"Helvetica\", fontsize=10];\n")
	buf.WriteString("\n")

	colors := PartColors(doc.Parts())
	for _, c := range Positions(doc) {
		attrs := []string{fmt.Sprintf("pos=\"%.3f,%.3f!\"", c.X*spacingX, c.Y*spacingY)}
		attrs = append(attrs, seatAttrs(c.Seat, colors)...)
		fmt.Fprintf(&buf, "  r%dp%d [%s];\n", c.Row, c.Position, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func seatAttrs(s chart.Seat, colors map[string]string) []string {
	if s.Singer == nil {
		return []string{`label=""`, `style="rounded,dashed"`, `color="#bbbbbb"`, `fillcolor="transparent"`}
	}
	color, ok := colors[s.Singer.Part]
	if !ok {
		color = unknownColor
	}
	return []string{
		fmt.Sprintf("label=%q", s.Singer.Name+"\n"+s.Singer.Part),
		fmt.Sprintf("fillcolor=%q", color),
		fmt.Sprintf("tooltip=%q", s.Singer.Name+" ("+s.Singer.Part+", "+s.Singer.HeightDisplay()+")"),
	}
}
