package seating

import (
	"cmp"
	"math"
	"slices"

	"github.com/matzehuels/seatchart/pkg/roster"
)

// groups maps a part to its members, tallest first. The pointers refer to
// the caller's roster slice.
type groups map[string][]*roster.Member

func groupByPart(members []roster.Member, order []string) groups {
	g := make(groups, len(order))
	for _, part := range order {
		g[part] = nil
	}
	for i := range members {
		if _, ok := g[members[i].Part]; ok {
			g[members[i].Part] = append(g[members[i].Part], &members[i])
		}
	}
	for _, list := range g {
		slices.SortStableFunc(list, func(a, b *roster.Member) int {
			return cmp.Compare(b.Height, a.Height)
		})
	}
	return g
}

func (g groups) total(order []string) int {
	n := 0
	for _, part := range order {
		n += len(g[part])
	}
	return n
}

// bandWidths returns ceil(count/rows) per part, in order.
func bandWidths(g groups, order []string, rows int) []int {
	widths := make([]int, len(order))
	for i, part := range order {
		widths[i] = ceilDiv(len(g[part]), rows)
	}
	return widths
}

// placeSideBySide gives each part a column band across all rows, packs the
// bands left to right and centers the block within seatsPerRow.
func placeSideBySide(c Chart, g groups, order []string, rows, seatsPerRow int) {
	if len(order) == 0 || rows <= 0 || g.total(order) == 0 {
		return
	}
	widths := bandWidths(g, order, rows)
	used := 0
	for _, w := range widths {
		used += w
	}

	pos := max((seatsPerRow-used)/2, 0)
	for i, part := range order {
		if widths[i] == 0 {
			continue
		}
		fillSection(c, g[part], section{top: 0, bottom: rows, left: pos, right: pos + widths[i]})
		pos += widths[i]
	}
}

// placeSideBySideVariable splits every row between the parts in proportion
// to their size. The last part takes whatever the rounding leaves so each
// row's shares add up to its declared width. Each part consumes its members
// through a cursor, spreading them evenly over the remaining rows.
func placeSideBySideVariable(c Chart, g groups, order []string, sizes []int) {
	total := g.total(order)
	if len(order) == 0 || len(sizes) == 0 || total == 0 {
		return
	}

	next := make(map[string]int, len(order))
	for r, width := range sizes {
		shares := rowShares(g, order, width, total)
		used := 0
		for _, s := range shares {
			used += s
		}

		pos := (width - used) / 2
		rowsLeft := len(sizes) - r
		for i, part := range order {
			share := shares[i]
			if share <= 0 {
				continue
			}
			if remaining := len(g[part]) - next[part]; remaining > 0 {
				n := min(share, ceilDiv(remaining, rowsLeft))
				start := pos + (share-n)/2
				for j := range n {
					if start+j >= len(c[r]) {
						break
					}
					c[r][start+j].Member = g[part][next[part]]
					next[part]++
				}
			}
			pos += share
		}
	}
}

// rowShares divides width between the parts proportionally, rounding half to
// even, with the last part absorbing the remainder.
func rowShares(g groups, order []string, width, total int) []int {
	shares := make([]int, len(order))
	remaining := width
	for i, part := range order {
		if i == len(order)-1 {
			shares[i] = remaining
			break
		}
		share := int(math.RoundToEven(float64(width) * float64(len(g[part])) / float64(total)))
		share = min(share, remaining)
		shares[i] = share
		remaining -= share
	}
	return shares
}

// bandRows returns how many rows each part gets in the stacked layout. The
// first rows%parts parts (the back-most) get one extra row.
func bandRows(rows, parts int) []int {
	if parts <= 0 {
		return nil
	}
	out := make([]int, parts)
	per, extra := rows/parts, rows%parts
	for i := range out {
		out[i] = per
		if i < extra {
			out[i]++
		}
	}
	return out
}

// placeStacked gives each part a horizontal band of whole rows, back to
// front in order, each spanning the full width.
func placeStacked(c Chart, g groups, order []string, rows, seatsPerRow int) {
	if len(order) == 0 {
		return
	}
	top := 0
	for i, n := range bandRows(rows, len(order)) {
		fillSection(c, g[order[i]], section{top: top, bottom: top + n, left: 0, right: seatsPerRow})
		top += n
	}
}
