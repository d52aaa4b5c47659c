package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/seatchart/pkg/chart"
	"github.com/matzehuels/seatchart/pkg/render"
)

// Grid styles
var (
	gridCursorStyle   = lipgloss.NewStyle().Reverse(true).Bold(true)
	gridSelectedStyle = lipgloss.NewStyle().Underline(true).Bold(true).Foreground(colorYellow)
	gridEmptyStyle    = lipgloss.NewStyle().Foreground(colorDim)
	gridDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// gridNameWidth is how much of a name a grid cell shows.
const gridNameWidth = 8

// viewCommand creates the view command, an interactive chart editor.
func (c *CLI) viewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "view CHART",
		Short: "Browse and rearrange a saved chart interactively",
		Long: `Open a chart document in an interactive grid. Move with the arrow keys,
press space on two seats to swap them, and w to write the chart back.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := chart.ReadFile(args[0])
			if err != nil {
				return err
			}
			final, err := tea.NewProgram(newChartModel(doc, args[0]), tea.WithAltScreen()).Run()
			if err != nil {
				return err
			}
			if m, ok := final.(chartModel); ok && m.dirty {
				printWarning("Unsaved changes to %s were discarded", args[0])
			}
			return nil
		},
	}
}

// =============================================================================
// chartModel - Interactive chart editor
// =============================================================================

// chartModel is the bubbletea model for the chart editor. The cursor is
// kept in display coordinates: row 0 is the back row and column 0 the
// leftmost seat as drawn.
type chartModel struct {
	doc      *chart.Document
	path     string
	row, col int
	selected *chart.Ref
	dirty    bool
	status   string
	styles   map[string]lipgloss.Style
	tags     map[string]string
}

func newChartModel(doc *chart.Document, path string) chartModel {
	return chartModel{
		doc:    doc,
		path:   path,
		styles: partStyles(doc.Parts()),
		tags:   render.Abbreviations(doc.Parts()),
	}
}

func (m chartModel) Init() tea.Cmd {
	return nil
}

func (m chartModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || len(m.doc.Rows) == 0 {
		if ok && isQuit(key.String()) {
			return m, tea.Quit
		}
		return m, nil
	}

	m.status = ""
	switch s := key.String(); {
	case isQuit(s):
		return m, tea.Quit
	case s == "up" || s == "k":
		if m.row > 0 {
			m.row--
		}
	case s == "down" || s == "j":
		if m.row < len(m.doc.Rows)-1 {
			m.row++
		}
	case s == "left" || s == "h":
		if m.col > 0 {
			m.col--
		}
	case s == "right" || s == "l":
		m.col++
	case s == " " || s == "space" || s == "enter":
		m.toggleSelect()
	case s == "s":
		m.doc.Staggered = !m.doc.Staggered
		m.dirty = true
	case s == "f":
		m.doc.Flipped = !m.doc.Flipped
		m.dirty = true
	case s == "w":
		if err := chart.WriteFile(m.doc, m.path); err != nil {
			m.status = "write failed: " + err.Error()
		} else {
			m.dirty = false
			m.status = "wrote " + m.path
		}
	}
	m.col = min(m.col, len(m.doc.Rows[m.row])-1)
	m.col = max(m.col, 0)
	return m, nil
}

func isQuit(s string) bool {
	return s == "q" || s == "ctrl+c" || s == "esc"
}

// ref returns the seat under the cursor.
func (m chartModel) ref() chart.Ref {
	pos := m.col
	if m.doc.Flipped {
		pos = len(m.doc.Rows[m.row]) - 1 - m.col
	}
	return chart.Ref{Row: m.row, Position: pos}
}

func (m *chartModel) toggleSelect() {
	cur := m.ref()
	if m.selected == nil {
		m.selected = &cur
		return
	}
	if *m.selected == cur {
		m.selected = nil
		return
	}
	if err := m.doc.Swap(*m.selected, cur); err != nil {
		m.status = err.Error()
	} else {
		n := len(m.doc.Rows)
		m.dirty = true
		m.status = fmt.Sprintf("swapped row %d seat %d with row %d seat %d",
			n-m.selected.Row, m.selected.Position+1, n-cur.Row, cur.Position+1)
	}
	m.selected = nil
}

func (m chartModel) View() string {
	var b strings.Builder

	title := m.doc.Title
	if title == "" {
		title = m.path
	}
	if m.dirty {
		title += " *"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(gridDimStyle.Render("←↑↓→ move  space select/swap  s stagger  f flip  w write  q quit"))
	b.WriteString("\n\n")

	if len(m.doc.Rows) == 0 {
		b.WriteString(gridEmptyStyle.Render("(empty chart)"))
		b.WriteString("\n")
		return b.String()
	}

	offsets := m.doc.Offsets()
	cell := gridNameWidth + 4
	for r, row := range m.doc.Rows {
		if offsets[r] {
			b.WriteString(strings.Repeat(" ", cell/2))
		}
		for col := range row {
			pos := col
			if m.doc.Flipped {
				pos = len(row) - 1 - col
			}
			b.WriteString(m.cell(row[pos], r, col, cell))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.footer())
	return b.String()
}

func (m chartModel) cell(s chart.Seat, r, col, width int) string {
	label := "·"
	style := gridEmptyStyle
	if s.Singer != nil {
		label = m.tags[s.Singer.Part] + " " + truncateName(s.Singer.Name, gridNameWidth)
		if ps, ok := m.styles[s.Singer.Part]; ok {
			style = ps
		} else {
			style = lipgloss.NewStyle()
		}
	}
	switch {
	case r == m.row && col == m.col:
		style = gridCursorStyle
	case m.selected != nil && m.selected.Row == s.Row && m.selected.Position == s.Position:
		style = gridSelectedStyle
	}
	return style.Width(width - 1).Align(lipgloss.Center).Render(label) + " "
}

func (m chartModel) footer() string {
	cur := m.ref()
	seat, err := m.doc.At(cur)
	line := fmt.Sprintf("Row %d  Seat %d", len(m.doc.Rows)-cur.Row, cur.Position+1)
	if err == nil && seat.Singer != nil {
		line += "  " + StyleValue.Render(seat.Singer.Name) + "  " + seat.Singer.Part + "  " + seat.Singer.HeightDisplay()
	}
	if m.selected != nil {
		line += "  " + gridSelectedStyle.Render("selected")
	}
	if m.status != "" {
		line += "\n" + gridDimStyle.Render(m.status)
	}
	return line
}

func truncateName(name string, n int) string {
	r := []rune(name)
	if len(r) <= n {
		return name
	}
	return string(r[:n-1]) + "…"
}
