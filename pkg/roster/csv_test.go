package roster

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/seatchart/pkg/errors"
)

func TestReadCSV(t *testing.T) {
	input := `name,voice_part,height
Mary Smith,Soprano,64.5
 John Brown , Bass ,71
,Alto,60
Ann Lee,Alto,
Bad Height,Tenor,tall
Zoe King,Alto,62
`
	got, err := ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadCSV() error: %v", err)
	}
	want := []Member{
		{"Mary Smith", "Soprano", 64.5},
		{"John Brown", "Bass", 71},
		{"Zoe King", "Alto", 62},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ReadCSV() mismatch (-want +got):\n%s", diff)
	}
}

func TestReadCSVColumnOrder(t *testing.T) {
	input := "height,extra,Voice_Part,Name\n70,x,Tenor,Tom\n"
	got, err := ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadCSV() error: %v", err)
	}
	want := []Member{{"Tom", "Tenor", 70}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ReadCSV() mismatch (-want +got):\n%s", diff)
	}
}

func TestReadCSVErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"missing height", "name,voice_part\nA,B\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.input))
			if !errors.Is(err, errors.ErrCodeInvalidRoster) {
				t.Errorf("ReadCSV() error = %v, want INVALID_ROSTER", err)
			}
		})
	}
}

func TestWriteCSVRoundTrip(t *testing.T) {
	members := []Member{{"Mary, Jr.", "Soprano 1", 64.5}, {"Tom", "Bass", 71}}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, members); err != nil {
		t.Fatalf("WriteCSV() error: %v", err)
	}
	got, err := ReadCSV(&buf)
	if err != nil {
		t.Fatalf("ReadCSV() error: %v", err)
	}
	if diff := cmp.Diff(members, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestCSVFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.csv")
	members := Generate(GenerateOptions{Count: 10, Parts: []string{"A", "B"}, Seed: 3})

	if err := WriteCSVFile(path, members); err != nil {
		t.Fatalf("WriteCSVFile() error: %v", err)
	}
	got, err := ReadCSVFile(path)
	if err != nil {
		t.Fatalf("ReadCSVFile() error: %v", err)
	}
	if diff := cmp.Diff(members, got); diff != "" {
		t.Errorf("file round trip mismatch (-want +got):\n%s", diff)
	}

	_, err = ReadCSVFile(filepath.Join(t.TempDir(), "missing.csv"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("ReadCSVFile(missing) error = %v, want FILE_NOT_FOUND", err)
	}
}
