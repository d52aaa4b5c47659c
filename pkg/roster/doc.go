// Package roster models the people being seated and reads them from CSV.
//
// A [Member] is an immutable value: a name, a free-form part label (for a
// choir, the voice part) and a height in inches. Parts are not an enum;
// whatever labels appear in the roster are the parts, and [UniqueParts]
// reports them in first-seen order.
//
// # CSV
//
// Rosters are exchanged as CSV with a header row:
//
//	name,voice_part,height
//	Mary Smith,Soprano,64.5
//	John Brown,Bass,71
//
// [ReadCSV] skips rows with a blank field or an unparsable height rather
// than failing the whole file.
//
// # Test rosters
//
// [Generate] produces reproducible random rosters for demos and tests.
package roster
