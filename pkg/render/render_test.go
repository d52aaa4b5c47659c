package render

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/seatchart/pkg/chart"
	"github.com/matzehuels/seatchart/pkg/roster"
)

func member(name, part string) *roster.Member {
	return &roster.Member{Name: name, Part: part, Height: 66}
}

// row builds an encoded row; nil entries are empty seats.
func row(r int, members ...*roster.Member) []chart.Seat {
	out := make([]chart.Seat, len(members))
	for p, m := range members {
		out[p] = chart.Seat{Row: r, Position: p, Singer: m}
	}
	return out
}

func sampleDoc() *chart.Document {
	return &chart.Document{
		Version:   chart.Version,
		Layout:    "side-by-side",
		PartOrder: []string{"Alto", "Bass"},
		Rows: [][]chart.Seat{
			row(0, member("Ann", "Alto"), member("Cy", "Bass"), nil),
			row(1, member("Bea", "Alto"), nil, nil),
		},
	}
}

type xy struct{ X, Y float64 }

func coords(cells []Cell) []xy {
	out := make([]xy, len(cells))
	for i, c := range cells {
		out[i] = xy{c.X, c.Y}
	}
	return out
}

func TestPositions(t *testing.T) {
	a, b, c, d := member("a", "A"), member("b", "A"), member("c", "A"), member("d", "A")
	aisle := 2

	tests := []struct {
		name string
		doc  *chart.Document
		want []xy
	}{
		{
			name: "shorter row centered",
			doc:  &chart.Document{Rows: [][]chart.Seat{row(0, a, b, c), row(1, d)}},
			want: []xy{{0, 1}, {1, 1}, {2, 1}, {1, 0}},
		},
		{
			name: "aisle",
			doc:  &chart.Document{Rows: [][]chart.Seat{row(0, a, b, c, d)}, AisleAfter: &aisle},
			want: []xy{{0, 0}, {1, 0}, {3, 0}, {4, 0}},
		},
		{
			name: "staggered",
			doc:  &chart.Document{Rows: [][]chart.Seat{row(0, a, b), row(1, c, d)}, Staggered: true},
			want: []xy{{0, 1}, {1, 1}, {0.5, 0}, {1.5, 0}},
		},
		{
			name: "curved",
			doc:  &chart.Document{Rows: [][]chart.Seat{row(0, a, b, c)}, Curved: true},
			want: []xy{{0, 0}, {1, curveDepth}, {2, 0}},
		},
		{
			name: "empty",
			doc:  &chart.Document{},
			want: []xy{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, coords(Positions(tt.doc))); diff != "" {
				t.Errorf("Positions() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPositionsFlipped(t *testing.T) {
	doc := &chart.Document{Rows: [][]chart.Seat{row(0, member("a", "A"), member("b", "A"), member("c", "A"))}, Flipped: true}
	cells := Positions(doc)

	var got []string
	for _, c := range cells {
		got = append(got, c.Singer.Name)
	}
	if diff := cmp.Diff([]string{"c", "b", "a"}, got); diff != "" {
		t.Errorf("flipped order mismatch (-want +got):\n%s", diff)
	}
	if cells[0].Position != 2 || cells[0].X != 0 {
		t.Errorf("first cell = position %d at %v, want position 2 at 0", cells[0].Position, cells[0].X)
	}
}

func TestAbbreviations(t *testing.T) {
	tests := []struct {
		parts []string
		want  map[string]string
	}{
		{
			[]string{"Soprano", "Alto", "Tenor", "Bass"},
			map[string]string{"Soprano": "S", "Alto": "A", "Tenor": "T", "Bass": "B"},
		},
		{
			[]string{"Soprano 1", "Soprano 2", "alto"},
			map[string]string{"Soprano 1": "S1", "Soprano 2": "S2", "alto": "A"},
		},
		{
			[]string{"Bass", "Baritone", "Tenor"},
			map[string]string{"Bass": "Bas", "Baritone": "Bar", "Tenor": "T"},
		},
		{nil, map[string]string{}},
	}

	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, Abbreviations(tt.parts)); diff != "" {
			t.Errorf("Abbreviations(%v) mismatch (-want +got):\n%s", tt.parts, diff)
		}
	}
}

func TestText(t *testing.T) {
	want := "Row 2   Ann A    Cy B     ·\n" +
		"Row 1   Bea A     ·       ·\n" +
		"\n" +
		"A = Alto (2)  B = Bass (1)\n"

	if diff := cmp.Diff(want, Text(sampleDoc())); diff != "" {
		t.Errorf("Text() mismatch (-want +got):\n%s", diff)
	}
}

func TestTextUnplacedAndEmpty(t *testing.T) {
	doc := sampleDoc()
	doc.Unplaced = []roster.Member{{Name: "Zed", Part: "Bass", Height: 70}, {Name: "Amy", Part: "Alto", Height: 60}}
	if out := Text(doc); !strings.Contains(out, "Unplaced (2): Amy, Zed") {
		t.Errorf("Text() missing unplaced line:\n%s", out)
	}
	if out := Text(&chart.Document{}); out != "(empty chart)\n" {
		t.Errorf("Text(empty) = %q", out)
	}
}

func TestTextTruncatesNames(t *testing.T) {
	doc := &chart.Document{Rows: [][]chart.Seat{row(0, member("Maximiliana Montgomery", "Alto"))}}
	out := Text(doc)
	if !strings.Contains(out, "Maximiliana M… A") {
		t.Errorf("Text() did not truncate:\n%s", out)
	}
}

func TestTextAlignsWideNames(t *testing.T) {
	doc := &chart.Document{Rows: [][]chart.Seat{
		row(0, member("山田太郎", "Alto"), member("Zed", "Alto")),
		row(1, member("Anna", "Alto"), member("Zoe", "Alto")),
	}}
	lines := strings.Split(Text(doc), "\n")

	column := func(line, name string) int {
		i := strings.Index(line, name)
		if i < 0 {
			t.Fatalf("%q not found in %q", name, line)
		}
		return lipgloss.Width(line[:i])
	}
	back, front := column(lines[0], "Zed"), column(lines[1], "Zoe")
	if back != front {
		t.Errorf("second seat at column %d in back row, %d in front row:\n%s\n%s", back, front, lines[0], lines[1])
	}
}

func TestTruncateByDisplayWidth(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"Anna", 14, "Anna"},
		{"山田太郎", 8, "山田太郎"},
		{"山田太郎", 6, "山田…"},
		{"Maximiliana Montgomery", 14, "Maximiliana M…"},
	}
	for _, tt := range tests {
		got := truncate(tt.in, tt.n)
		if got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
		if w := lipgloss.Width(got); w > tt.n {
			t.Errorf("truncate(%q, %d) width = %d", tt.in, tt.n, w)
		}
	}
}

func TestToDOT(t *testing.T) {
	doc := sampleDoc()
	doc.Title = "Spring Concert"
	dot := ToDOT(doc)

	for _, want := range []string{
		"graph seating {",
		"layout=neato;",
		`label="Spring Concert";`,
		`r0p0 [pos="0.000,0.900!", label="Ann\nAlto", fillcolor="#8ecae6"`,
		`r0p1 [pos="1.250,0.900!", label="Cy\nBass", fillcolor="#ffb703"`,
		`r1p2 [pos="2.500,0.000!", label="", style="rounded,dashed"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q:\n%s", want, dot)
		}
	}
	if n := strings.Count(dot, "pos="); n != 6 {
		t.Errorf("ToDOT() has %d nodes, want 6", n)
	}
}

func TestPartColorsCycle(t *testing.T) {
	parts := make([]string, len(palette)+1)
	for i := range parts {
		parts[i] = string(rune('A' + i))
	}
	colors := PartColors(parts)
	if colors[parts[len(palette)]] != colors[parts[0]] {
		t.Errorf("palette should cycle")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := `<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`
	out := string(normalizeViewBox([]byte(in)))
	if !strings.Contains(out, `viewBox="0 0 100.00 50.00" width="100" height="50"`) {
		t.Errorf("normalizeViewBox() = %s", out)
	}
	if !strings.HasSuffix(out, "<g/></svg>") {
		t.Errorf("normalizeViewBox() changed the body: %s", out)
	}

	plain := `<svg><g/></svg>`
	if got := string(normalizeViewBox([]byte(plain))); got != plain {
		t.Errorf("normalizeViewBox() without viewBox = %s, want unchanged", got)
	}
}
