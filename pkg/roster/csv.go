package roster

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/matzehuels/seatchart/pkg/errors"
)

// Column names in roster CSV files.
const (
	ColumnName   = "name"
	ColumnPart   = "voice_part"
	ColumnHeight = "height"
)

// ReadCSV parses a roster from CSV. The header must contain name,
// voice_part and height (any order, extra columns ignored). Rows with a
// blank field or an unparsable height are skipped.
func ReadCSV(r io.Reader) ([]Member, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New(errors.ErrCodeInvalidRoster, "roster is empty")
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRoster, err, "read header")
	}

	idx := map[string]int{}
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, col := range []string{ColumnName, ColumnPart, ColumnHeight} {
		if _, ok := idx[col]; !ok {
			return nil, errors.New(errors.ErrCodeInvalidRoster, "missing %q column", col)
		}
	}

	field := func(rec []string, col string) string {
		i := idx[col]
		if i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var members []Member
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidRoster, err, "read row")
		}
		name, part, h := field(rec, ColumnName), field(rec, ColumnPart), field(rec, ColumnHeight)
		if name == "" || part == "" || h == "" {
			continue
		}
		height, err := strconv.ParseFloat(h, 64)
		if err != nil {
			continue
		}
		members = append(members, Member{Name: name, Part: part, Height: height})
	}
	return members, nil
}

// ReadCSVFile reads a roster from a CSV file.
func ReadCSVFile(path string) ([]Member, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "roster %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadCSV(f)
}

// WriteCSV writes members as CSV with a header row.
func WriteCSV(w io.Writer, members []Member) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{ColumnName, ColumnPart, ColumnHeight}); err != nil {
		return err
	}
	for _, m := range members {
		rec := []string{m.Name, m.Part, strconv.FormatFloat(m.Height, 'f', -1, 64)}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes members to a CSV file at path.
func WriteCSVFile(path string, members []Member) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteCSV(f, members); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
