package chart

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"

	"github.com/matzehuels/seatchart/pkg/errors"
	"github.com/matzehuels/seatchart/pkg/seating"
)

// Marshal serializes a document to pretty-printed JSON.
func Marshal(d *Document) ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// Unmarshal parses and validates a document.
func Unmarshal(data []byte) (*Document, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidChart, err, "unmarshal chart")
	}
	if d.Version == 0 {
		d.Version = Version
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// Validate checks that every seat is labeled with its own coordinates and
// every occupant is a valid member.
func (d *Document) Validate() error {
	if d.Version > Version {
		return errors.New(errors.ErrCodeInvalidChart, "unsupported chart version %d", d.Version)
	}
	mode, err := seating.ParseMode(string(d.Layout))
	if err != nil {
		return err
	}
	d.Layout = mode
	for r, row := range d.Rows {
		for p, s := range row {
			if s.Row != r || s.Position != p {
				return errors.New(errors.ErrCodeInvalidChart, "seat [%d][%d] is labeled row %d position %d", r, p, s.Row, s.Position)
			}
			if s.Singer == nil {
				continue
			}
			if err := s.Singer.Validate(); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidChart, err, "seat [%d][%d]", r, p)
			}
		}
	}
	if d.AisleAfter != nil && *d.AisleAfter < 0 {
		return errors.New(errors.ErrCodeInvalidChart, "aisle position must not be negative")
	}
	return nil
}

// WriteFile writes a document as JSON.
func WriteFile(d *Document, path string) error {
	data, err := Marshal(d)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadFile reads and validates a document.
func ReadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "chart file %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Unmarshal(data)
}

// EncodeToken returns the compact JSON of d in URL-safe base64.
func EncodeToken(d *Document) (string, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return "", fmt.Errorf("encode chart: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

// DecodeToken reverses [EncodeToken].
func DecodeToken(token string) (*Document, error) {
	data, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidChart, err, "decode chart token")
	}
	return Unmarshal(data)
}
