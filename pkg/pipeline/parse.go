package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/seatchart/pkg/errors"
	"github.com/matzehuels/seatchart/pkg/roster"
)

// LoadRoster reads a roster file. Files ending in .json hold an array of
// members; anything else is read as CSV.
func LoadRoster(path string) ([]roster.Member, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		f, err := os.Open(path)
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "roster file %s", path)
		}
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()
		return ParseRosterJSON(f)
	}
	members, err := roster.ReadCSVFile(path)
	if err != nil {
		return nil, err
	}
	return checkRoster(members)
}

// ParseRoster reads a CSV roster.
func ParseRoster(r io.Reader) ([]roster.Member, error) {
	members, err := roster.ReadCSV(r)
	if err != nil {
		return nil, err
	}
	return checkRoster(members)
}

// ParseRosterJSON reads a JSON array of members.
func ParseRosterJSON(r io.Reader) ([]roster.Member, error) {
	var members []roster.Member
	if err := json.NewDecoder(r).Decode(&members); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRoster, err, "decode roster")
	}
	if err := roster.ValidateAll(members); err != nil {
		return nil, err
	}
	return checkRoster(members)
}

func checkRoster(members []roster.Member) ([]roster.Member, error) {
	if len(members) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidRoster, "no valid members found in roster")
	}
	return members, nil
}
