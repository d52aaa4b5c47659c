package chart

import (
	"time"

	"github.com/matzehuels/seatchart/pkg/errors"
)

// Ref addresses a seat.
type Ref struct {
	Row      int `json:"row"`
	Position int `json:"position"`
}

// At returns the seat at ref.
func (d *Document) At(ref Ref) (*Seat, error) {
	if ref.Row < 0 || ref.Row >= len(d.Rows) || ref.Position < 0 || ref.Position >= len(d.Rows[ref.Row]) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no seat at row %d position %d", ref.Row, ref.Position)
	}
	return &d.Rows[ref.Row][ref.Position], nil
}

// Swap exchanges the occupants of two seats. Either may be empty, which
// makes it a move.
func (d *Document) Swap(a, b Ref) error {
	sa, err := d.At(a)
	if err != nil {
		return err
	}
	sb, err := d.At(b)
	if err != nil {
		return err
	}
	sa.Singer, sb.Singer = sb.Singer, sa.Singer
	d.UpdatedAt = time.Now().UTC()
	return nil
}
