package cli

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/seatchart/pkg/chart"
	"github.com/matzehuels/seatchart/pkg/roster"
	"github.com/matzehuels/seatchart/pkg/seating"
)

func testChart() *chart.Document {
	c := seating.NewChart([]int{3, 3})
	c[0][0].Member = &roster.Member{Name: "Ann", Part: "Alto", Height: 66}
	c[0][1].Member = &roster.Member{Name: "Bea", Part: "Alto", Height: 64}
	c[1][2].Member = &roster.Member{Name: "Cid", Part: "Bass", Height: 72}
	doc := chart.FromChart(c)
	doc.PartOrder = []string{"Alto", "Bass"}
	return doc
}

func press(m chartModel, keys ...tea.KeyMsg) chartModel {
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(chartModel)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keySpace = tea.KeyMsg{Type: tea.KeySpace}
)

func TestChartModelMovement(t *testing.T) {
	m := newChartModel(testChart(), "c.chart.json")

	m = press(m, keyRight, keyRight, keyRight, keyRight)
	if m.col != 2 {
		t.Errorf("col = %d, want 2 (clamped to row width)", m.col)
	}
	m = press(m, keyDown, keyDown)
	if m.row != 1 {
		t.Errorf("row = %d, want 1", m.row)
	}
	m = press(m, runes("k"), runes("h"))
	if m.row != 0 || m.col != 1 {
		t.Errorf("cursor = (%d, %d), want (0, 1)", m.row, m.col)
	}
}

func TestChartModelSwap(t *testing.T) {
	m := newChartModel(testChart(), "c.chart.json")

	// Select Ann at (0,0), then swap with Cid at (1,2).
	m = press(m, keySpace, keyDown, keyRight, keyRight, keySpace)
	if !m.dirty {
		t.Error("dirty = false after swap, want true")
	}
	if m.selected != nil {
		t.Error("selection not cleared after swap")
	}
	if got := m.doc.Rows[0][0].Singer; got == nil || got.Name != "Cid" {
		t.Errorf("seat (0,0) = %v, want Cid", got)
	}
	if got := m.doc.Rows[1][2].Singer; got == nil || got.Name != "Ann" {
		t.Errorf("seat (1,2) = %v, want Ann", got)
	}
}

func TestChartModelDeselect(t *testing.T) {
	m := newChartModel(testChart(), "c.chart.json")
	m = press(m, keySpace, keySpace)
	if m.selected != nil || m.dirty {
		t.Errorf("selected = %v, dirty = %v; want nil, false", m.selected, m.dirty)
	}
}

func TestChartModelFlipMapsCursor(t *testing.T) {
	m := newChartModel(testChart(), "c.chart.json")
	m = press(m, runes("f"))
	if !m.doc.Flipped {
		t.Fatal("Flipped = false after f")
	}
	if got := m.ref(); got != (chart.Ref{Row: 0, Position: 2}) {
		t.Errorf("ref() = %+v, want row 0 position 2", got)
	}
}

func TestChartModelToggles(t *testing.T) {
	m := newChartModel(testChart(), "c.chart.json")
	m = press(m, runes("s"))
	if !m.doc.Staggered {
		t.Error("Staggered = false after s")
	}
	m = press(m, runes("s"))
	if m.doc.Staggered {
		t.Error("Staggered = true after second s")
	}
}

func TestChartModelWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.chart.json")
	m := newChartModel(testChart(), path)
	m = press(m, keySpace, keyRight, keySpace, runes("w"))
	if m.dirty {
		t.Error("dirty = true after write")
	}

	doc, err := chart.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if got := doc.Rows[0][0].Singer; got == nil || got.Name != "Bea" {
		t.Errorf("written seat (0,0) = %v, want Bea", got)
	}
}

func TestChartModelQuit(t *testing.T) {
	m := newChartModel(testChart(), "c.chart.json")
	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}

func TestChartModelView(t *testing.T) {
	m := newChartModel(testChart(), "c.chart.json")
	view := m.View()
	for _, want := range []string{"c.chart.json", "Ann", "Cid", "Row 2  Seat 1"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}

	empty := newChartModel(chart.FromChart(nil), "e.chart.json")
	if !strings.Contains(empty.View(), "(empty chart)") {
		t.Error("empty View() missing placeholder")
	}
}
