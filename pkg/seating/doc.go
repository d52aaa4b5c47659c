// Package seating places a roster into a grid of seats.
//
// # Overview
//
// A [Chart] is a slice of rows ordered back to front; each row is a slice of
// [Seat] values ordered left to right. Rows may differ in length. Seats keep
// their row/position labels for the chart's lifetime; placement only sets
// the occupant.
//
// Members are grouped by part and each group is sorted tallest first. The
// groups are then laid out with one of two modes:
//
//   - [ModeSideBySide]: each part gets a column band spanning every row.
//     With explicit row sizes each row is instead split proportionally
//     between the parts.
//   - [ModeStacked]: each part gets a horizontal band of whole rows; back
//     bands receive the extra rows when the split is uneven.
//
// Inside a section, members fill back to front, spread evenly across the
// rows, and every row is centered. Centering uses floor division, so an odd
// leftover puts the extra empty seat on the right.
//
// # Dimensions
//
// [Dimensions] and [DimensionsWithOverrides] choose a row count and seats
// per row (about 12 per row, adjusted so parts split cleanly).
// [MinimumWidth] reports the width the fixed side-by-side layout needs so no
// band is truncated; callers widen to it before calling [Generate].
//
// # Capacity
//
// Placement never fails part way. Members that do not fit are left out and
// reported by [Unplaced]; with [Config.Strict] they turn into a
// CAPACITY_EXCEEDED error.
//
// # Presentation
//
// [StaggerOffsets] derives the brick-pattern half-seat nudge per row from the
// final occupancy. It does not affect placement.
package seating
