package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/seatchart/pkg/chart"
	"github.com/matzehuels/seatchart/pkg/render"
)

var (
	tableHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	tableBorderStyle = lipgloss.NewStyle().Foreground(colorDim)
	tableCellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// showCommand creates the show command, which prints a saved chart.
func (c *CLI) showCommand() *cobra.Command {
	var members bool

	cmd := &cobra.Command{
		Use:   "show CHART",
		Short: "Print a saved chart and its part summary",
		Example: `  seatchart show choir.chart.json
  seatchart show choir.chart.json --members`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := chart.ReadFile(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if doc.Title != "" {
				fmt.Fprintln(out, StyleTitle.Render(doc.Title))
				fmt.Fprintln(out)
			}
			fmt.Fprint(out, render.Text(doc))
			fmt.Fprintln(out)
			fmt.Fprintln(out, summaryTable(doc))
			if members {
				fmt.Fprintln(out, membersTable(doc))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&members, "members", false, "list every seated member")
	return cmd
}

// summaryTable tabulates seated and unplaced members per part.
func summaryTable(doc *chart.Document) string {
	seated := make(map[string]int)
	for _, m := range doc.Members() {
		seated[m.Part]++
	}
	unplaced := make(map[string]int)
	for _, m := range doc.Unplaced {
		unplaced[m.Part]++
	}

	styles := partStyles(doc.Parts())
	tags := render.Abbreviations(doc.Parts())
	var rows [][]string
	var totalSeated, totalUnplaced int
	for _, part := range doc.Parts() {
		rows = append(rows, []string{tags[part], part, strconv.Itoa(seated[part]), strconv.Itoa(unplaced[part])})
		totalSeated += seated[part]
		totalUnplaced += unplaced[part]
	}
	rows = append(rows, []string{"", "Total", strconv.Itoa(totalSeated), strconv.Itoa(totalUnplaced)})

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(tableBorderStyle).
		Headers("", "Part", "Seated", "Unplaced").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return tableHeaderStyle.Padding(0, 1)
			}
			if col == 0 && row < len(rows)-1 {
				if s, ok := styles[rows[row][1]]; ok {
					return s.Padding(0, 1)
				}
			}
			if col == 3 && rows[row][3] != "0" {
				return StyleWarning.Padding(0, 1)
			}
			return tableCellStyle
		})
	return t.Render()
}

// membersTable lists seated members back row first.
func membersTable(doc *chart.Document) string {
	n := len(doc.Rows)
	var rows [][]string
	for _, row := range doc.Rows {
		for _, s := range row {
			if s.Singer == nil {
				continue
			}
			rows = append(rows, []string{
				strconv.Itoa(n - s.Row),
				strconv.Itoa(s.Position + 1),
				s.Singer.Name,
				s.Singer.Part,
				s.Singer.HeightDisplay(),
			})
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(tableBorderStyle).
		Headers("Row", "Seat", "Name", "Part", "Height").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return tableHeaderStyle.Padding(0, 1)
			}
			return tableCellStyle
		})
	return t.Render()
}
