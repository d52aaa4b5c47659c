package roster

import (
	"fmt"
	"math"

	"github.com/matzehuels/seatchart/pkg/errors"
)

// Member is a single person on the roster.
type Member struct {
	Name   string  `json:"name" bson:"name"`
	Part   string  `json:"voice_part" bson:"voice_part"`
	Height float64 `json:"height" bson:"height"` // inches
}

// Validate checks that the member can be placed.
func (m Member) Validate() error {
	if err := errors.ValidateLabel("name", m.Name); err != nil {
		return err
	}
	if err := errors.ValidateLabel("part", m.Part); err != nil {
		return err
	}
	if math.IsNaN(m.Height) || math.IsInf(m.Height, 0) || m.Height < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "invalid height %v for %s", m.Height, m.Name)
	}
	return nil
}

// HeightDisplay formats the height as feet and inches, e.g. 5'10" or 5'10.5".
func (m Member) HeightDisplay() string {
	feet := int(m.Height / 12)
	rem := m.Height - float64(feet)*12
	frac := rem - math.Floor(rem)
	switch {
	case frac == 0:
		return fmt.Sprintf("%d'%d\"", feet, int(rem))
	case frac == 0.5:
		return fmt.Sprintf("%d'%d.5\"", feet, int(rem))
	default:
		return fmt.Sprintf("%d'%.1f\"", feet, rem)
	}
}

// UniqueParts returns the distinct parts in first-seen order.
func UniqueParts(members []Member) []string {
	seen := make(map[string]bool)
	var parts []string
	for _, m := range members {
		if !seen[m.Part] {
			seen[m.Part] = true
			parts = append(parts, m.Part)
		}
	}
	return parts
}

// CountByPart returns how many members belong to each part.
func CountByPart(members []Member) map[string]int {
	counts := make(map[string]int)
	for _, m := range members {
		counts[m.Part]++
	}
	return counts
}

// ValidateAll validates every member, reporting the first failure.
func ValidateAll(members []Member) error {
	for i, m := range members {
		if err := m.Validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidRoster, err, "member %d", i+1)
		}
	}
	return nil
}
