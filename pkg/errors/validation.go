package errors

import (
	"strings"
	"unicode"
)

const maxLabelLength = 128

// ValidateLabel checks a free-form roster label (a member name or a part).
// Labels end up in filenames, DOT sources and HTML, so control characters
// and overlong values are rejected.
func ValidateLabel(kind, s string) error {
	if strings.TrimSpace(s) == "" {
		return New(ErrCodeInvalidInput, "%s cannot be empty", kind)
	}
	if len(s) > maxLabelLength {
		return New(ErrCodeInvalidInput, "%s too long (max %d characters)", kind, maxLabelLength)
	}
	for _, r := range s {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "%s contains invalid control characters", kind)
		}
	}
	return nil
}

// ValidatePartOrder checks that a part order is non-empty and has no
// duplicates or blank entries.
func ValidatePartOrder(order []string) error {
	if len(order) == 0 {
		return New(ErrCodeInvalidInput, "part order cannot be empty")
	}
	seen := make(map[string]bool, len(order))
	for _, p := range order {
		if err := ValidateLabel("part", p); err != nil {
			return err
		}
		if seen[p] {
			return New(ErrCodeInvalidInput, "part %q listed twice", p)
		}
		seen[p] = true
	}
	return nil
}

// ValidateRowSizes checks an explicit back-to-front list of row widths.
func ValidateRowSizes(sizes []int) error {
	for i, n := range sizes {
		if n < 0 {
			return New(ErrCodeInvalidDimensions, "row %d has negative width %d", i+1, n)
		}
	}
	return nil
}
