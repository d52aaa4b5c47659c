package seating

// StaggerOffsets reports, per row, whether the row should be drawn shifted
// by half a seat to get a brick pattern. Row 0 is never shifted. A row whose
// occupancy has the same parity as the row behind it would line up with it
// when centered, so its offset flips; a row with different parity is
// already staggered by centering and inherits the offset unchanged.
func StaggerOffsets(c Chart) []bool {
	return StaggerOffsetsFromCounts(c.Counts())
}

// StaggerOffsetsFromCounts is [StaggerOffsets] over per-row occupancy counts.
func StaggerOffsetsFromCounts(counts []int) []bool {
	offsets := make([]bool, len(counts))
	for r := 1; r < len(counts); r++ {
		if counts[r]%2 == counts[r-1]%2 {
			offsets[r] = !offsets[r-1]
		} else {
			offsets[r] = offsets[r-1]
		}
	}
	return offsets
}
