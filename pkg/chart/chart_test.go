package chart

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/seatchart/pkg/errors"
	"github.com/matzehuels/seatchart/pkg/roster"
	"github.com/matzehuels/seatchart/pkg/seating"
)

func sampleChart(t *testing.T) ([]roster.Member, seating.Chart) {
	t.Helper()
	members := []roster.Member{
		{Name: "Ann", Part: "Alto", Height: 64},
		{Name: "Bea", Part: "Alto", Height: 62.5},
		{Name: "Cy", Part: "Bass", Height: 72},
	}
	c, err := seating.Generate(members, seating.Config{Rows: 2, SeatsPerRow: 3, PartOrder: []string{"Alto", "Bass"}})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	return members, c
}

func TestFromChartRoundTrip(t *testing.T) {
	members, c := sampleChart(t)
	doc := FromChart(c)
	doc.PartOrder = []string{"Alto", "Bass"}

	data, err := Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}

	if diff := cmp.Diff(doc.Rows, got.Rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(c.Members(), got.Chart().Members()); diff != "" {
		t.Errorf("members mismatch (-want +got):\n%s", diff)
	}
	if n := len(seating.Unplaced(got.Chart(), members, got.PartOrder)); n != 0 {
		t.Errorf("Unplaced() after round trip = %d, want 0", n)
	}
}

func TestFromChartCopiesMembers(t *testing.T) {
	members, c := sampleChart(t)
	doc := FromChart(c)
	for i := range members {
		members[i].Name = "changed"
	}
	for _, m := range doc.Members() {
		if m.Name == "changed" {
			t.Fatalf("document aliases the roster")
		}
	}
}

func TestEmptySeatEncodesNull(t *testing.T) {
	doc := FromChart(seating.NewUniformChart(1, 1))
	data, err := Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if !strings.Contains(string(data), `"singer": null`) {
		t.Errorf("empty seat not encoded as null:\n%s", data)
	}
}

func TestUpdatedAtOmittedUntilEdited(t *testing.T) {
	_, c := sampleChart(t)
	doc := FromChart(c)
	doc.CreatedAt = time.Date(2026, 4, 1, 19, 30, 0, 0, time.UTC)

	data, err := Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if strings.Contains(string(data), "updated_at") {
		t.Errorf("unedited document carries updated_at:\n%s", data)
	}

	doc.UpdatedAt = doc.CreatedAt.Add(time.Hour)
	if data, err = Marshal(doc); err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if !strings.Contains(string(data), `"updated_at": "2026-04-01T20:30:00Z"`) {
		t.Errorf("edited document missing updated_at:\n%s", data)
	}
}

func TestUnmarshalErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		code errors.Code
	}{
		{"bad json", `{`, errors.ErrCodeInvalidChart},
		{"mislabeled seat", `{"layout":"stacked","rows":[[{"row":0,"position":1,"singer":null}]]}`, errors.ErrCodeInvalidChart},
		{"bad singer", `{"rows":[[{"row":0,"position":0,"singer":{"name":"","voice_part":"A","height":60}}]]}`, errors.ErrCodeInvalidChart},
		{"bad layout", `{"layout":"circle","rows":[]}`, errors.ErrCodeInvalidLayout},
		{"future version", `{"version":99,"rows":[]}`, errors.ErrCodeInvalidChart},
		{"negative aisle", `{"rows":[],"aisle_after":-1}`, errors.ErrCodeInvalidChart},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unmarshal([]byte(tt.data))
			if !errors.Is(err, tt.code) {
				t.Errorf("Unmarshal() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestUnmarshalDefaults(t *testing.T) {
	doc, err := Unmarshal([]byte(`{"rows":[]}`))
	if err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if doc.Version != Version || doc.Layout != seating.ModeSideBySide {
		t.Errorf("defaults = (%d, %q), want (%d, %q)", doc.Version, doc.Layout, Version, seating.ModeSideBySide)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	_, c := sampleChart(t)
	doc := FromChart(c)
	aisle := 1
	doc.AisleAfter = &aisle
	doc.Staggered = true

	token, err := EncodeToken(doc)
	if err != nil {
		t.Fatalf("EncodeToken() error: %v", err)
	}
	got, err := DecodeToken(token)
	if err != nil {
		t.Fatalf("DecodeToken() error: %v", err)
	}
	if diff := cmp.Diff(doc, got); diff != "" {
		t.Errorf("token round trip mismatch (-want +got):\n%s", diff)
	}

	if _, err := DecodeToken("!!!"); !errors.Is(err, errors.ErrCodeInvalidChart) {
		t.Errorf("DecodeToken(garbage) error = %v, want INVALID_CHART", err)
	}
}

func TestFileRoundTrip(t *testing.T) {
	_, c := sampleChart(t)
	doc := FromChart(c)
	path := filepath.Join(t.TempDir(), "chart.json")

	if err := WriteFile(doc, path); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if diff := cmp.Diff(doc.Rows, got.Rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("ReadFile(missing) error = %v, want FILE_NOT_FOUND", err)
	}
	if _, statErr := os.Stat(path); statErr != nil {
		t.Errorf("chart file missing: %v", statErr)
	}
}

func TestSwap(t *testing.T) {
	_, c := sampleChart(t)
	doc := FromChart(c)
	before := doc.Rows[0][0].Singer

	if err := doc.Swap(Ref{0, 0}, Ref{1, 2}); err != nil {
		t.Fatalf("Swap() error: %v", err)
	}
	if doc.Rows[1][2].Singer != before {
		t.Errorf("Swap() did not move the occupant")
	}
	if doc.Rows[0][0].Singer != nil {
		t.Errorf("Swap() into an empty seat should leave the source empty")
	}
	if doc.UpdatedAt.IsZero() {
		t.Errorf("Swap() should set UpdatedAt")
	}
	if err := doc.Validate(); err != nil {
		t.Errorf("Validate() after Swap() error: %v", err)
	}

	if err := doc.Swap(Ref{0, 0}, Ref{5, 0}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Swap(out of range) error = %v, want INVALID_INPUT", err)
	}
}

func TestOffsets(t *testing.T) {
	doc := &Document{Rows: [][]Seat{
		{{0, 0, &roster.Member{Name: "a", Part: "A", Height: 1}}, {0, 1, &roster.Member{Name: "b", Part: "A", Height: 1}}},
		{{1, 0, &roster.Member{Name: "c", Part: "A", Height: 1}}, {1, 1, &roster.Member{Name: "d", Part: "A", Height: 1}}},
	}}
	if diff := cmp.Diff([]bool{false, false}, doc.Offsets()); diff != "" {
		t.Errorf("unstaggered Offsets() mismatch (-want +got):\n%s", diff)
	}
	doc.Staggered = true
	if diff := cmp.Diff([]bool{false, true}, doc.Offsets()); diff != "" {
		t.Errorf("staggered Offsets() mismatch (-want +got):\n%s", diff)
	}
}

func TestParts(t *testing.T) {
	_, c := sampleChart(t)
	doc := FromChart(c)
	if diff := cmp.Diff([]string{"Alto", "Bass"}, doc.Parts()); diff != "" {
		t.Errorf("Parts() fallback mismatch (-want +got):\n%s", diff)
	}
	doc.PartOrder = []string{"Bass", "Alto"}
	if diff := cmp.Diff([]string{"Bass", "Alto"}, doc.Parts()); diff != "" {
		t.Errorf("Parts() mismatch (-want +got):\n%s", diff)
	}
}
