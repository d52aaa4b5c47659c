package seating

import "github.com/matzehuels/seatchart/pkg/roster"

// section is a rectangle of the chart: rows [top, bottom), columns [left, right).
type section struct {
	top, bottom int
	left, right int
}

// widthIn returns the usable width of the section in row r, clipped to the
// row's actual length.
func (s section) widthIn(c Chart, r int) int {
	right := min(s.right, len(c[r]))
	return max(right-s.left, 0)
}

// fillSection seats group (tallest first) into s, back row first. While more
// than one row remains each row takes ceil(remaining/rowsLeft) members, so
// the spread is even with larger rows at the back; the last row takes the
// rest. Each row is centered in the section. Members beyond the section's
// capacity are not placed. It returns the number of members seated.
func fillSection(c Chart, group []*roster.Member, s section) int {
	bottom := min(s.bottom, len(c))
	if len(group) == 0 || s.right <= s.left || bottom <= s.top {
		return 0
	}

	placed := 0
	for r := s.top; r < bottom && placed < len(group); r++ {
		width := s.widthIn(c, r)
		remaining := len(group) - placed
		n := min(width, remaining)
		if rowsLeft := bottom - r; rowsLeft > 1 {
			n = min(width, ceilDiv(remaining, rowsLeft))
		}
		start := s.left + (width-n)/2
		for i := range n {
			c[r][start+i].Member = group[placed]
			placed++
		}
	}
	return placed
}
