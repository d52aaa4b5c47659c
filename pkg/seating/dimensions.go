package seating

import "github.com/matzehuels/seatchart/pkg/roster"

// TargetPerRow is the row density the automatic dimensions aim for.
const TargetPerRow = 12

// Dimensions picks a row count and seats per row for total members split
// into parts. Stacked layouts round rows up to a multiple of parts and
// side-by-side layouts round seats up to a multiple of parts, so every part
// gets an equal share. Adjustments only ever increase a dimension.
func Dimensions(total, parts int, mode Mode) (rows, seatsPerRow int) {
	parts = max(parts, 1)
	rows = max(2, ceilDiv(total, TargetPerRow))
	if mode == ModeStacked {
		rows = roundUpTo(rows, parts)
	}
	seatsPerRow = ceilDiv(total, rows)
	if mode == ModeSideBySide {
		seatsPerRow = roundUpTo(seatsPerRow, parts)
	}
	return rows, seatsPerRow
}

// DimensionsWithOverrides honors user-supplied rows and/or seats per row.
// A zero value means "not supplied". When both are given they are used as
// is; when one is given the other is derived with the same divisibility
// adjustment as [Dimensions]; when neither is given it falls back to
// [Dimensions].
func DimensionsWithOverrides(total, parts int, mode Mode, userRows, userMaxPerRow int) (rows, seatsPerRow int) {
	parts = max(parts, 1)
	switch {
	case userRows > 0 && userMaxPerRow > 0:
		return userRows, userMaxPerRow
	case userRows > 0:
		seatsPerRow = ceilDiv(total, userRows)
		if mode == ModeSideBySide {
			seatsPerRow = roundUpTo(seatsPerRow, parts)
		}
		return userRows, seatsPerRow
	case userMaxPerRow > 0:
		rows = ceilDiv(total, userMaxPerRow)
		if mode == ModeStacked {
			rows = roundUpTo(rows, parts)
		}
		return rows, userMaxPerRow
	}
	return Dimensions(total, parts, mode)
}

// MinimumWidth returns the seats per row the fixed-width side-by-side layout
// needs so that no part's column band is truncated: the sum over parts of
// ceil(count/rows). Members whose part is not in order are ignored.
func MinimumWidth(members []roster.Member, order []string, rows int) int {
	if rows <= 0 {
		return 0
	}
	counts := roster.CountByPart(members)
	width := 0
	for _, part := range order {
		width += ceilDiv(counts[part], rows)
	}
	return width
}

func ceilDiv(a, b int) int {
	if a <= 0 || b <= 0 {
		return 0
	}
	return (a + b - 1) / b
}

// roundUpTo increments n until it is divisible by m.
func roundUpTo(n, m int) int {
	for n%m != 0 {
		n++
	}
	return n
}
