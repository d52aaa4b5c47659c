package render

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/seatchart/pkg/chart"
)

// MaxNameWidth caps how many characters of a name the text grid shows.
const MaxNameWidth = 14

const emptySeat = "·"

// Text draws doc as a fixed-width grid, back row on top, followed by a
// legend of part tags. Curvature is not drawn.
func Text(doc *chart.Document) string {
	if len(doc.Rows) == 0 {
		return "(empty chart)\n"
	}
	tags := Abbreviations(doc.Parts())

	labels := make(map[chart.Ref]string)
	width := lipgloss.Width(emptySeat)
	for _, row := range doc.Rows {
		for _, s := range row {
			if s.Singer == nil {
				continue
			}
			tag, ok := tags[s.Singer.Part]
			if !ok {
				tag = "?"
			}
			l := truncate(s.Singer.Name, MaxNameWidth) + " " + tag
			labels[chart.Ref{Row: s.Row, Position: s.Position}] = l
			width = max(width, lipgloss.Width(l))
		}
	}
	// An even cell keeps half-seat offsets on whole columns.
	cell := width + 2
	if cell%2 != 0 {
		cell++
	}

	n := len(doc.Rows)
	lines := make([]columns, n)
	for _, c := range Positions(doc) {
		label, ok := labels[chart.Ref{Row: c.Row, Position: c.Position}]
		if !ok {
			label = emptySeat
		}
		at := int(math.Round(c.X*float64(cell))) + (cell-lipgloss.Width(label))/2
		lines[c.Row].put(at, label)
	}

	var b strings.Builder
	for r, line := range lines {
		fmt.Fprintf(&b, "Row %-3d%s\n", n-r, strings.TrimRight(line.String(), " "))
	}
	b.WriteString("\n")
	b.WriteString(legend(doc, tags))
	return b.String()
}

func legend(doc *chart.Document, tags map[string]string) string {
	parts := doc.Parts()
	entries := make([]string, 0, len(parts))
	counts := make(map[string]int, len(parts))
	for _, m := range doc.Members() {
		counts[m.Part]++
	}
	for _, p := range parts {
		entries = append(entries, fmt.Sprintf("%s = %s (%d)", tags[p], p, counts[p]))
	}
	out := strings.Join(entries, "  ") + "\n"
	if len(doc.Unplaced) > 0 {
		names := make([]string, len(doc.Unplaced))
		for i, m := range doc.Unplaced {
			names[i] = m.Name
		}
		slices.Sort(names)
		out += fmt.Sprintf("Unplaced (%d): %s\n", len(names), strings.Join(names, ", "))
	}
	return out
}

// columns is a line of display columns. A wide character fills its first
// column and leaves the following ones empty.
type columns []string

// put writes s starting at display column at, padding with spaces.
func (c *columns) put(at int, s string) {
	for _, r := range s {
		w := lipgloss.Width(string(r))
		if w == 0 && at > 0 && at <= len(*c) {
			(*c)[at-1] += string(r)
			continue
		}
		for len(*c) < at+max(w, 1) {
			*c = append(*c, " ")
		}
		(*c)[at] = string(r)
		for k := 1; k < w; k++ {
			(*c)[at+k] = ""
		}
		at += w
	}
}

func (c columns) String() string { return strings.Join(c, "") }

// truncate cuts s to at most n display columns, marking the cut with an
// ellipsis.
func truncate(s string, n int) string {
	if lipgloss.Width(s) <= n {
		return s
	}
	var b strings.Builder
	used := 0
	for _, r := range s {
		w := lipgloss.Width(string(r))
		if used+w > n-1 {
			break
		}
		b.WriteRune(r)
		used += w
	}
	return b.String() + "…"
}
